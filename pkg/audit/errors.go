package audit

import (
	"fmt"
	"strings"
)

// UnknownRuleError indicates an enabled rule entry names a rule that is not
// registered.
type UnknownRuleError struct {
	RuleID string

	// Registered lists the ids that are available, sorted.
	Registered []string
}

// Error returns the error message.
func (e *UnknownRuleError) Error() string {
	if len(e.Registered) == 0 {
		return fmt.Sprintf("unknown rule %q", e.RuleID)
	}
	return fmt.Sprintf("unknown rule %q (registered: %s)", e.RuleID, strings.Join(e.Registered, ", "))
}

// RuleError indicates a rule failed while evaluating the scan context.
type RuleError struct {
	RuleID string
	Cause  error
}

// Error returns the error message.
func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %s: evaluation failed: %v", e.RuleID, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *RuleError) Unwrap() error {
	return e.Cause
}

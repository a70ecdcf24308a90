package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNilConfig indicates Compile was called without a configuration.
var ErrNilConfig = errors.New("configuration is nil")

// CompileProblem is one failure found while compiling a configuration.
type CompileProblem struct {
	// Path is the configuration path of the offending value, e.g.
	// "defaults.severity.overrides[0].match.fqn_patterns[1]".
	Path string

	// Pattern is the offending pattern text, empty for non-pattern problems.
	Pattern string

	// Err is the underlying cause, usually a *pattern.PatternError.
	Err error
}

// Error returns the problem with its path.
func (p CompileProblem) Error() string {
	return fmt.Sprintf("%s: %v", p.Path, p.Err)
}

// Unwrap returns the underlying cause.
func (p CompileProblem) Unwrap() error {
	return p.Err
}

// ConfigCompileError reports every problem found while compiling a
// configuration, or a rule rejecting its own options.
type ConfigCompileError struct {
	Problems []CompileProblem
}

// Error returns the error message.
func (e *ConfigCompileError) Error() string {
	if len(e.Problems) == 0 {
		return "configuration compile failed"
	}
	if len(e.Problems) == 1 {
		return fmt.Sprintf("configuration compile failed: %s", e.Problems[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration compile failed with %d errors:\n", len(e.Problems)))
	for _, p := range e.Problems {
		sb.WriteString(fmt.Sprintf("  - %s\n", p.Error()))
	}
	return sb.String()
}

// Unwrap returns the causes of all problems.
func (e *ConfigCompileError) Unwrap() []error {
	errs := make([]error, 0, len(e.Problems))
	for _, p := range e.Problems {
		errs = append(errs, p.Err)
	}
	return errs
}

// NewRuleConfigError returns a ConfigCompileError scoped to the options of
// rule ruleID.
func NewRuleConfigError(ruleID string, cause error) *ConfigCompileError {
	return &ConfigCompileError{Problems: []CompileProblem{{
		Path: fmt.Sprintf("rules[%s].config", ruleID),
		Err:  cause,
	}}}
}

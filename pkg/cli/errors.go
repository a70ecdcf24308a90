package cli

import (
	"errors"
	"fmt"

	"mercator-hq/docguard/pkg/audit"
	"mercator-hq/docguard/pkg/config"
	"mercator-hq/docguard/pkg/model"
	"mercator-hq/docguard/pkg/policy/engine"
	"mercator-hq/docguard/pkg/source"
)

// ExitCode is a process exit status.
type ExitCode int

// Exit codes, one per error category.
const (
	ExitSuccess    ExitCode = 0
	ExitConfig     ExitCode = 10
	ExitScan       ExitCode = 20
	ExitRule       ExitCode = 30
	ExitFailure    ExitCode = 40
	ExitUnexpected ExitCode = 1
)

// ConfigError represents an error in configuration: a file that cannot be
// loaded or a flag that overrides a setting with an invalid value.
type ConfigError struct {
	Field   string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config error in %s: %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// CommandError represents an error from a command execution.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// FailureError reports a completed run whose issues reached the fail-on
// threshold.
type FailureError struct {
	Threshold model.Severity
	Issues    int
}

func (e *FailureError) Error() string {
	return fmt.Sprintf("%d issue(s) at or above %s", e.Issues, e.Threshold)
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// WrapConfigError creates a ConfigError with an underlying cause.
func WrapConfigError(field, message string, err error) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}

// ExitCodeFor maps err to an exit code. Errors wrapped in a CommandError
// are classified by their cause.
func ExitCodeFor(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}

	var (
		failure    *FailureError
		cfgErr     *ConfigError
		validation config.ValidationError
		compile    *engine.ConfigCompileError
		scan       *source.ScanError
		ruleErr    *audit.RuleError
		unknown    *audit.UnknownRuleError
	)

	switch {
	case errors.As(err, &failure):
		return ExitFailure
	case errors.As(err, &cfgErr), errors.As(err, &validation), errors.As(err, &compile):
		return ExitConfig
	case errors.As(err, &scan):
		return ExitScan
	case errors.As(err, &ruleErr), errors.As(err, &unknown):
		return ExitRule
	default:
		return ExitUnexpected
	}
}

package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"mercator-hq/docguard/pkg/model"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "fail_on.severity").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// structValidator returns the shared validator. Field names in errors
// follow the yaml tags so paths match what users write.
func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		validate.RegisterStructValidation(validatePolicyPayload, AnnotationPolicy{})
	})
	return validate
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
//
// Regular expressions are not checked here; they are compiled later and
// reported with their configuration path.
func Validate(cfg *Config) error {
	if cfg == nil {
		return ValidationError{Errors: []FieldError{{Field: "config", Message: "configuration is nil"}}}
	}

	err := structValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate configuration: %w", err)
	}

	out := ValidationError{Errors: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Errors = append(out.Errors, FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: describe(fe),
		})
	}
	return out
}

// validatePolicyPayload checks that each effect carries its payload.
func validatePolicyPayload(sl validator.StructLevel) {
	p := sl.Current().Interface().(AnnotationPolicy)
	switch p.Effect {
	case model.EffectSetSeverity:
		if p.ToSeverity == "" {
			sl.ReportError(p.ToSeverity, "to_severity", "ToSeverity", "required_if", "effect SET_SEVERITY")
		}
	case model.EffectShiftSeverity:
		if p.Shift == nil {
			sl.ReportError(p.Shift, "shift", "Shift", "required_if", "effect SHIFT_SEVERITY")
		}
	}
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "required_if":
		parts := strings.Fields(fe.Param())
		if len(parts) == 2 {
			return fmt.Sprintf("field is required when %s is %s", strings.ToLower(parts[0]), parts[1])
		}
		return "field is required"
	case "oneof":
		return fmt.Sprintf("invalid value %q (must be one of: %s)", fmt.Sprint(fe.Value()), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "unique":
		return fmt.Sprintf("duplicate %s values are not allowed", strings.ToLower(fe.Param()))
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

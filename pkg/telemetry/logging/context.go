package logging

import (
	"context"
	"log/slog"
)

// Context keys for common log fields.
type contextKey string

const (
	// RunIDKey is the context key for audit run IDs.
	RunIDKey contextKey = "run_id"

	// RuleIDKey is the context key for the rule being evaluated.
	RuleIDKey contextKey = "rule_id"
)

// WithRunID adds a run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// GetRunID retrieves the run ID from the context.
func GetRunID(ctx context.Context) string {
	if runID, ok := ctx.Value(RunIDKey).(string); ok {
		return runID
	}
	return ""
}

// WithRuleID adds a rule ID to the context.
func WithRuleID(ctx context.Context, ruleID string) context.Context {
	return context.WithValue(ctx, RuleIDKey, ruleID)
}

// GetRuleID retrieves the rule ID from the context.
func GetRuleID(ctx context.Context) string {
	if ruleID, ok := ctx.Value(RuleIDKey).(string); ok {
		return ruleID
	}
	return ""
}

// extractContextFields returns the context values as slog attributes.
func extractContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}

	var attrs []slog.Attr
	if v := GetRunID(ctx); v != "" {
		attrs = append(attrs, slog.String(string(RunIDKey), v))
	}
	if v := GetRuleID(ctx); v != "" {
		attrs = append(attrs, slog.String(string(RuleIDKey), v))
	}
	return attrs
}

// contextHandler adds context fields to every record logged with a
// *Context method.
type contextHandler struct {
	slog.Handler
}

func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs := extractContextFields(ctx); len(attrs) > 0 {
		r = r.Clone()
		r.AddAttrs(attrs...)
	}
	return h.Handler.Handle(ctx, r)
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{h.Handler.WithAttrs(attrs)}
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{h.Handler.WithGroup(name)}
}

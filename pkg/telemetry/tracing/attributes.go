package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Span names.
const (
	SpanLoad    = "docguard.config.load"
	SpanCompile = "docguard.config.compile"
	SpanScan    = "docguard.source.scan"
	SpanRun     = "docguard.audit.run"
	SpanRule    = "docguard.rule.evaluate"
	SpanSort    = "docguard.audit.sort"
)

// Attribute keys, all under the "docguard.*" namespace.
const (
	AttrRunID      = "docguard.run_id"
	AttrRoot       = "docguard.root"
	AttrRuleID     = "docguard.rule_id"
	AttrElements   = "docguard.elements"
	AttrFindings   = "docguard.findings"
	AttrSuppressed = "docguard.suppressed"
	AttrIssues     = "docguard.issues"
)

// SetScanAttributes sets scan attributes on a span.
func SetScanAttributes(span trace.Span, root string, elements int) {
	span.SetAttributes(
		attribute.String(AttrRoot, root),
		attribute.Int(AttrElements, elements),
	)
}

// SetRunAttributes sets run attributes on a span.
//
// Example:
//
//	SetRunAttributes(span, result.RunID, result.Stats.Elements, len(result.Issues))
func SetRunAttributes(span trace.Span, runID string, elements, issues int) {
	span.SetAttributes(
		attribute.String(AttrRunID, runID),
		attribute.Int(AttrElements, elements),
		attribute.Int(AttrIssues, issues),
	)
}

// SetRuleAttributes sets rule evaluation attributes on a span.
func SetRuleAttributes(span trace.Span, ruleID string, findings, suppressed int) {
	span.SetAttributes(
		attribute.String(AttrRuleID, ruleID),
		attribute.Int(AttrFindings, findings),
		attribute.Int(AttrSuppressed, suppressed),
	)
}

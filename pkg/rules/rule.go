package rules

import (
	"context"

	"mercator-hq/docguard/pkg/config"
	"mercator-hq/docguard/pkg/model"
	"mercator-hq/docguard/pkg/source"
)

// Rule checks a scan context and reports findings.
//
// A rule never decides severity. It reports what it found and the engine
// grades each finding from the configuration, so the same rule can produce
// different severities for different elements.
//
// Evaluate must not modify the scan context. An error is treated as a
// defect and aborts the run.
type Rule interface {
	// ID is the stable identifier used in configuration and reports.
	ID() string

	// Description is a one-line summary shown by "docguard rules".
	Description() string

	// Evaluate inspects sc. opts is the rule's configuration payload and may
	// be empty.
	Evaluate(ctx context.Context, sc *source.ScanContext, opts config.RuleOptions) ([]Finding, error)
}

// Finding is an ungraded observation about one element.
type Finding struct {
	Element model.Element
	Message string
}

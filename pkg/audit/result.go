package audit

import (
	"time"

	"mercator-hq/docguard/pkg/model"
	"mercator-hq/docguard/pkg/policy/engine"
)

// Result is the outcome of one audit run.
type Result struct {
	// RunID identifies the run in logs, traces and reports.
	RunID string `json:"run_id"`

	// Issues are sorted by source file, then display name. Issues of the
	// same element keep rule order.
	Issues []model.Issue `json:"issues"`

	Stats Stats `json:"stats"`
}

// Stats summarizes a run.
type Stats struct {
	// Elements is the size of the scan context.
	Elements int `json:"elements"`

	// Findings counts raw findings before scoping and resolution.
	Findings int `json:"findings"`

	// Suppressed counts findings that did not become issues.
	Suppressed int `json:"suppressed"`

	// BySeverity counts issues per severity. Every severity is present.
	BySeverity map[model.Severity]int `json:"by_severity"`

	Duration time.Duration `json:"duration_ns"`
}

// Failed reports whether any issue reaches threshold.
func (r *Result) Failed(threshold model.Severity) bool {
	return engine.ShouldFail(r.Issues, threshold)
}

func newStats(elements int) Stats {
	by := make(map[model.Severity]int)
	for _, sev := range model.AllSeverities() {
		by[sev] = 0
	}
	return Stats{Elements: elements, BySeverity: by}
}

package report

import (
	"encoding/json"
	"io"

	"mercator-hq/docguard/pkg/audit"
	"mercator-hq/docguard/pkg/model"
)

// JSONReporter writes a single JSON document.
type JSONReporter struct{}

// NewJSONReporter creates a JSON reporter.
func NewJSONReporter() *JSONReporter {
	return &JSONReporter{}
}

// Document is the JSON report layout.
type Document struct {
	RunID   string         `json:"run_id"`
	Issues  []Issue        `json:"issues"`
	Summary Summary        `json:"summary"`
	FailOn  model.Severity `json:"fail_on"`
	Failed  bool           `json:"failed"`
}

// Issue is one reported issue, flattened for consumers.
type Issue struct {
	Severity      model.Severity `json:"severity"`
	RuleID        string         `json:"rule_id"`
	Message       string         `json:"message"`
	Kind          model.Kind     `json:"kind"`
	QualifiedName string         `json:"qualified_name"`
	DisplayName   string         `json:"display_name"`
	File          string         `json:"file"`
	Line          int            `json:"line,omitempty"`
}

// Summary counts issues.
type Summary struct {
	Total      int                    `json:"total"`
	BySeverity map[model.Severity]int `json:"by_severity"`
	Elements   int                    `json:"elements"`
	Suppressed int                    `json:"suppressed"`
}

// NewDocument builds the JSON layout of res.
func NewDocument(res *audit.Result, threshold model.Severity) Document {
	doc := Document{
		RunID:  res.RunID,
		Issues: make([]Issue, 0, len(res.Issues)),
		Summary: Summary{
			Total:      len(res.Issues),
			BySeverity: make(map[model.Severity]int),
			Elements:   res.Stats.Elements,
			Suppressed: res.Stats.Suppressed,
		},
		FailOn: threshold,
		Failed: res.Failed(threshold),
	}

	for _, sev := range model.AllSeverities() {
		doc.Summary.BySeverity[sev] = 0
	}
	for _, is := range res.Issues {
		doc.Summary.BySeverity[is.Severity]++
		doc.Issues = append(doc.Issues, Issue{
			Severity:      is.Severity,
			RuleID:        is.RuleID,
			Message:       is.Message,
			Kind:          is.Element.Kind,
			QualifiedName: is.Element.QualifiedName,
			DisplayName:   is.Element.DisplayName,
			File:          is.Element.SourceFile,
			Line:          is.Element.Line,
		})
	}

	return doc
}

// Report implements Reporter.
func (r *JSONReporter) Report(w io.Writer, res *audit.Result, threshold model.Severity) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(res, threshold))
}

package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"mercator-hq/docguard/pkg/audit"
	"mercator-hq/docguard/pkg/model"
)

func sampleResult() *audit.Result {
	return &audit.Result{
		RunID: "run-1",
		Issues: []model.Issue{
			{
				Severity: model.SeverityError,
				RuleID:   "doc-presence",
				Message:  "Missing doc comment: shop.Client",
				Element: model.Element{
					Kind:          model.KindType,
					QualifiedName: "example.com/shop.Client",
					DisplayName:   "shop.Client",
					SourceFile:    "shop/client.go",
					Line:          12,
				},
			},
			{
				Severity: model.SeverityWarn,
				RuleID:   "doc-presence",
				Message:  "Missing doc comment: shop.Legacy",
				Element: model.Element{
					Kind:          model.KindFunction,
					QualifiedName: "example.com/shop.Legacy",
					DisplayName:   "shop.Legacy",
					SourceFile:    "shop/legacy.go",
				},
			},
		},
		Stats: audit.Stats{Elements: 10, Findings: 3, Suppressed: 1},
	}
}

func TestTextReporter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTextReporter(false).Report(&buf, sampleResult(), model.SeverityError); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	want := "[ERROR] Missing doc comment: shop.Client (doc-presence) - shop/client.go:12\n" +
		"[WARN] Missing doc comment: shop.Legacy (doc-presence) - shop/legacy.go\n" +
		"Issues: 2\n"
	if buf.String() != want {
		t.Errorf("Report() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestTextReporter_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTextReporter(false).Report(&buf, &audit.Result{}, model.SeverityError); err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if buf.String() != "Issues: 0\n" {
		t.Errorf("Report() = %q, want %q", buf.String(), "Issues: 0\n")
	}
}

func TestTextReporter_Color(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTextReporter(true).Report(&buf, sampleResult(), model.SeverityError); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "\x1b[") {
		t.Errorf("Report() has no ANSI escapes:\n%q", out)
	}
	if !strings.Contains(out, "Missing doc comment: shop.Client (doc-presence)") {
		t.Errorf("Report() lost the message:\n%q", out)
	}
}

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONReporter().Report(&buf, sampleResult(), model.SeverityError); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("Report() produced invalid JSON: %v", err)
	}

	if doc.RunID != "run-1" {
		t.Errorf("RunID = %q, want run-1", doc.RunID)
	}
	if !doc.Failed || doc.FailOn != model.SeverityError {
		t.Errorf("Failed, FailOn = %v, %s, want true, ERROR", doc.Failed, doc.FailOn)
	}
	if doc.Summary.Total != 2 || doc.Summary.Elements != 10 || doc.Summary.Suppressed != 1 {
		t.Errorf("Summary = %+v, want total 2, elements 10, suppressed 1", doc.Summary)
	}

	wantBy := map[model.Severity]int{model.SeverityInfo: 0, model.SeverityWarn: 1, model.SeverityError: 1}
	for sev, n := range wantBy {
		if got, ok := doc.Summary.BySeverity[sev]; !ok || got != n {
			t.Errorf("BySeverity[%s] = %d, %v, want %d", sev, got, ok, n)
		}
	}

	if len(doc.Issues) != 2 {
		t.Fatalf("len(Issues) = %d, want 2", len(doc.Issues))
	}
	first := doc.Issues[0]
	if first.File != "shop/client.go" || first.Line != 12 || first.Kind != model.KindType {
		t.Errorf("Issues[0] = %+v", first)
	}
}

func TestJSONReporter_NotFailedBelowThreshold(t *testing.T) {
	res := sampleResult()
	res.Issues = res.Issues[1:]

	doc := NewDocument(res, model.SeverityError)
	if doc.Failed {
		t.Error("Failed = true with only WARN issues and threshold ERROR")
	}
}

func TestJSONReporter_EmptyIssuesArray(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONReporter().Report(&buf, &audit.Result{RunID: "r"}, model.SeverityError); err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"issues": []`) {
		t.Errorf("Report() should encode an empty issues array:\n%s", buf.String())
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		format  Format
		want    string
		wantErr bool
	}{
		{FormatText, "*report.TextReporter", false},
		{"", "*report.TextReporter", false},
		{"JSON", "*report.JSONReporter", false},
		{"sarif", "", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			r, err := New(tt.format, Options{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := typeName(r); got != tt.want {
				t.Errorf("New() = %s, want %s", got, tt.want)
			}
		})
	}
}

func typeName(r Reporter) string {
	switch r.(type) {
	case *TextReporter:
		return "*report.TextReporter"
	case *JSONReporter:
		return "*report.JSONReporter"
	default:
		return "unknown"
	}
}

package audit

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mercator-hq/docguard/pkg/config"
	"mercator-hq/docguard/pkg/model"
	"mercator-hq/docguard/pkg/policy/engine"
	"mercator-hq/docguard/pkg/rules"
	"mercator-hq/docguard/pkg/source"
	"mercator-hq/docguard/pkg/telemetry/logging"
	"mercator-hq/docguard/pkg/telemetry/metrics"
)

// stubRule flags every element whose name is in names.
type stubRule struct {
	id    string
	names []string
	err   error
}

func (s *stubRule) ID() string          { return s.id }
func (s *stubRule) Description() string { return "stub" }

func (s *stubRule) Evaluate(_ context.Context, sc *source.ScanContext, _ config.RuleOptions) ([]rules.Finding, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []rules.Finding
	for _, el := range sc.Elements {
		for _, n := range s.names {
			if el.Name == n {
				out = append(out, rules.Finding{Element: el, Message: s.id + " " + el.Name})
			}
		}
	}
	return out, nil
}

func element(kind model.Kind, name, file string, vis model.Visibility, annotations ...string) model.Element {
	return model.Element{
		Kind:          kind,
		QualifiedName: "example.com/p." + name,
		DisplayName:   "p." + name,
		Name:          name,
		SourceFile:    file,
		Visibility:    vis,
		Package:       "example.com/p",
		Annotations:   annotations,
	}
}

// fixture holds elements spread over three files, out of order.
func fixture() *source.ScanContext {
	documented := element(model.KindFunction, "Doc", "a.go", model.VisibilityPublic)
	elements := []model.Element{
		element(model.KindType, "Zed", "b.go", model.VisibilityPublic),
		element(model.KindType, "Alpha", "a.go", model.VisibilityPublic),
		element(model.KindFunction, "Beta", "a.go", model.VisibilityProtected),
		element(model.KindFunction, "Gen", "a.go", model.VisibilityPublic, config.AnnotationGenerated),
		element(model.KindFunction, "Old", "c.go", model.VisibilityPublic, config.AnnotationDeprecated),
		documented,
	}
	return source.NewScanContext(elements, map[model.ElementKey]string{
		documented.Key(): "Doc does things.\n",
	})
}

func compile(t *testing.T, cfg *config.Config) *engine.CompiledConfig {
	t.Helper()
	cc, err := engine.Compile(cfg)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	return cc
}

func displayNames(issues []model.Issue) []string {
	out := make([]string, len(issues))
	for i, is := range issues {
		out[i] = is.Element.SourceFile + ":" + is.Element.DisplayName
	}
	return out
}

func TestRunner_Run(t *testing.T) {
	cc := compile(t, config.DefaultConfig())

	res, err := NewRunner(cc, rules.Default()).Run(context.Background(), fixture())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{"a.go:p.Alpha", "a.go:p.Beta", "b.go:p.Zed", "c.go:p.Old"}
	if got := displayNames(res.Issues); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Run() issues = %v, want %v", got, want)
	}

	wantSeverity := map[string]model.Severity{
		"p.Alpha": model.SeverityError,
		"p.Beta":  model.SeverityWarn,
		"p.Zed":   model.SeverityError,
		"p.Old":   model.SeverityWarn,
	}
	for _, is := range res.Issues {
		if is.Severity != wantSeverity[is.Element.DisplayName] {
			t.Errorf("%s severity = %s, want %s", is.Element.DisplayName, is.Severity, wantSeverity[is.Element.DisplayName])
		}
		if is.RuleID != rules.DocPresenceID {
			t.Errorf("%s rule = %s, want %s", is.Element.DisplayName, is.RuleID, rules.DocPresenceID)
		}
	}

	if res.RunID == "" {
		t.Error("RunID is empty")
	}

	stats := res.Stats
	if stats.Elements != 6 || stats.Findings != 5 || stats.Suppressed != 1 {
		t.Errorf("Stats = %+v, want 6 elements, 5 findings, 1 suppressed", stats)
	}
	if stats.BySeverity[model.SeverityError] != 2 || stats.BySeverity[model.SeverityWarn] != 2 {
		t.Errorf("BySeverity = %v, want ERROR:2 WARN:2", stats.BySeverity)
	}
	if n, ok := stats.BySeverity[model.SeverityInfo]; !ok || n != 0 {
		t.Errorf("BySeverity[INFO] = %d, %v, want 0, true", n, ok)
	}

	if !res.Failed(model.SeverityError) {
		t.Error("Failed(ERROR) = false, want true")
	}
}

func TestRunner_RunIDsDiffer(t *testing.T) {
	runner := NewRunner(compile(t, config.DefaultConfig()), nil)

	a, err := runner.Run(context.Background(), fixture())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	b, err := runner.Run(context.Background(), fixture())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if a.RunID == b.RunID {
		t.Errorf("RunID repeated across runs: %s", a.RunID)
	}
}

func TestRunner_EmptyScanContext(t *testing.T) {
	res, err := NewRunner(compile(t, config.DefaultConfig()), nil).Run(context.Background(), source.NewScanContext(nil, nil))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Issues == nil || len(res.Issues) != 0 {
		t.Errorf("Issues = %v, want empty non-nil slice", res.Issues)
	}
	if res.Failed(model.SeverityInfo) {
		t.Error("Failed(INFO) = true on an empty run")
	}
}

func TestRunner_RuleOrderWithinElement(t *testing.T) {
	reg := rules.NewRegistry()
	reg.MustRegister(&stubRule{id: "second", names: []string{"Alpha"}})
	reg.MustRegister(&stubRule{id: "first", names: []string{"Alpha", "Zed"}})

	cfg := config.DefaultConfig()
	cfg.Rules = []config.RuleConfig{{ID: "second"}, {ID: "first"}}

	res, err := NewRunner(compile(t, cfg), reg).Run(context.Background(), fixture())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var got []string
	for _, is := range res.Issues {
		got = append(got, is.RuleID+"@"+is.Element.Name)
	}
	want := []string{"second@Alpha", "first@Alpha", "first@Zed"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Run() issues = %v, want %v", got, want)
	}
}

func TestRunner_DisabledRuleSkipped(t *testing.T) {
	reg := rules.NewRegistry()
	reg.MustRegister(&stubRule{id: "broken", err: errors.New("boom")})

	disabled := false
	cfg := config.DefaultConfig()
	cfg.Rules = []config.RuleConfig{{ID: "broken", Enabled: &disabled}, {ID: "missing", Enabled: &disabled}}

	res, err := NewRunner(compile(t, cfg), reg).Run(context.Background(), fixture())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(res.Issues) != 0 {
		t.Errorf("Run() issues = %v, want none", displayNames(res.Issues))
	}
}

func TestRunner_Errors(t *testing.T) {
	cause := errors.New("boom")
	reg := rules.Default()
	reg.MustRegister(&stubRule{id: "broken", err: cause})

	badOptions, err := config.NewRuleOptions(map[string]any{"min_length": 0})
	if err != nil {
		t.Fatalf("NewRuleOptions() error = %v", err)
	}

	tests := []struct {
		name  string
		rules []config.RuleConfig
		check func(t *testing.T, err error)
	}{
		{
			name:  "unknown rule",
			rules: []config.RuleConfig{{ID: "doc-presence"}, {ID: "no-such-rule"}},
			check: func(t *testing.T, err error) {
				var target *UnknownRuleError
				if !errors.As(err, &target) {
					t.Fatalf("error = %v, want *UnknownRuleError", err)
				}
				if target.RuleID != "no-such-rule" {
					t.Errorf("RuleID = %q, want no-such-rule", target.RuleID)
				}
				if !strings.Contains(err.Error(), "doc-presence") {
					t.Errorf("error %q does not list registered rules", err)
				}
			},
		},
		{
			name:  "rule failure",
			rules: []config.RuleConfig{{ID: "broken"}},
			check: func(t *testing.T, err error) {
				var target *RuleError
				if !errors.As(err, &target) {
					t.Fatalf("error = %v, want *RuleError", err)
				}
				if target.RuleID != "broken" {
					t.Errorf("RuleID = %q, want broken", target.RuleID)
				}
				if !errors.Is(err, cause) {
					t.Errorf("error does not wrap cause")
				}
			},
		},
		{
			name:  "invalid rule options",
			rules: []config.RuleConfig{{ID: "doc-presence", Config: badOptions}},
			check: func(t *testing.T, err error) {
				var target *engine.ConfigCompileError
				if !errors.As(err, &target) {
					t.Fatalf("error = %v, want *engine.ConfigCompileError", err)
				}
				var ruleErr *RuleError
				if errors.As(err, &ruleErr) {
					t.Errorf("invalid options reported as *RuleError")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Rules = tt.rules

			res, err := NewRunner(compile(t, cfg), reg).Run(context.Background(), fixture())
			if err == nil {
				t.Fatal("Run() error = nil, want error")
			}
			if res != nil {
				t.Errorf("Run() result = %+v, want nil", res)
			}
			tt.check(t, err)
		})
	}
}

func TestRunner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(compile(t, config.DefaultConfig()), nil).Run(ctx, fixture())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestRunner_Metrics(t *testing.T) {
	collector := metrics.NewCollector(config.MetricsConfig{Enabled: true}, nil)
	cc := compile(t, config.DefaultConfig())

	if _, err := NewRunner(cc, nil, WithMetrics(collector)).Run(context.Background(), fixture()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "docguard.prom")
	if err := collector.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read textfile: %v", err)
	}

	for _, want := range []string{
		`docguard_runs_total{status="failed"} 1`,
		`docguard_issues_total{rule_id="doc-presence",severity="WARN"} 2`,
		`docguard_rule_findings_total{rule_id="doc-presence"} 5`,
		`docguard_rule_suppressed_total{rule_id="doc-presence"} 1`,
		`docguard_elements_scanned 6`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("textfile does not contain %q", want)
		}
	}
}

func TestRunner_LogsCarryRunID(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Config{Level: "debug", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("logging.New() error = %v", err)
	}

	res, err := NewRunner(compile(t, config.DefaultConfig()), nil, WithLogger(logger)).Run(context.Background(), fixture())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"run_id":"`+res.RunID+`"`) {
		t.Errorf("logs do not carry run_id %s:\n%s", res.RunID, out)
	}
	if !strings.Contains(out, `"rule_id":"doc-presence"`) {
		t.Errorf("rule logs do not carry rule_id:\n%s", out)
	}
}

package engine

import (
	"testing"

	"mercator-hq/docguard/pkg/config"
	"mercator-hq/docguard/pkg/model"
)

func intPtr(i int) *int { return &i }

// baseConfig returns a config reporting only PUBLIC elements at ERROR with
// no overrides or policies.
func baseConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Defaults.Severity.ByVisibility = map[model.Visibility]model.Severity{
		model.VisibilityPublic: model.SeverityError,
	}
	cfg.Defaults.AnnotationPolicies = nil
	cfg.Rules = []config.RuleConfig{{ID: "doc-presence"}}
	return cfg
}

func resolve(t *testing.T, cfg *config.Config, ruleID string, el model.Element) (model.Severity, bool) {
	t.Helper()
	cc, err := Compile(cfg)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	rule, ok := cc.Rule(ruleID)
	if !ok {
		t.Fatalf("rule %q not configured", ruleID)
	}
	return NewResolver(cc, nil).Resolve(rule, el)
}

func TestResolve_BaseSeverity(t *testing.T) {
	sev, ok := resolve(t, baseConfig(), "doc-presence", fooBar())
	if !ok || sev != model.SeverityError {
		t.Errorf("Resolve() = %s, %v, want ERROR, true", sev, ok)
	}
}

func TestResolve_MissingVisibilitySuppresses(t *testing.T) {
	matchBar := config.SeverityOverride{
		Match:    &config.Selector{SimpleNamePatterns: []string{"bar.*"}},
		Severity: model.SeverityWarn,
	}

	tests := []struct {
		name         string
		overrides    []config.SeverityOverride
		ruleSeverity model.Severity
		want         model.Severity
		wantOK       bool
	}{
		{
			name: "no overrides",
		},
		{
			name:      "matching selector override",
			overrides: []config.SeverityOverride{matchBar},
		},
		{
			name:      "global override",
			overrides: []config.SeverityOverride{{Severity: model.SeverityError}},
		},
		{
			name:         "rule severity reports",
			ruleSeverity: model.SeverityInfo,
			want:         model.SeverityInfo,
			wantOK:       true,
		},
		{
			name:         "rule severity beats matching override",
			overrides:    []config.SeverityOverride{matchBar},
			ruleSeverity: model.SeverityInfo,
			want:         model.SeverityInfo,
			wantOK:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			cfg.Defaults.Severity.Overrides = tt.overrides
			cfg.Rules[0].Severity = tt.ruleSeverity

			el := fooBar()
			el.Visibility = model.VisibilityProtected

			sev, ok := resolve(t, cfg, "doc-presence", el)
			if sev != tt.want || ok != tt.wantOK {
				t.Errorf("Resolve() = %q, %v, want %q, %v", sev, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResolve_OverridesLastMatchWins(t *testing.T) {
	cfg := baseConfig()
	cfg.Defaults.Severity.Overrides = []config.SeverityOverride{
		{Match: &config.Selector{Visibility: []model.Visibility{model.VisibilityPublic}}, Severity: model.SeverityWarn},
		{Match: &config.Selector{SimpleNamePatterns: []string{"bar.*"}}, Severity: model.SeverityError},
	}
	cfg.Defaults.Severity.ByVisibility[model.VisibilityPublic] = model.SeverityInfo

	if sev, _ := resolve(t, cfg, "doc-presence", fooBar()); sev != model.SeverityError {
		t.Errorf("Resolve() = %s, want ERROR", sev)
	}

	// Reversed order: WARN is declared last and wins.
	cfg.Defaults.Severity.Overrides[0], cfg.Defaults.Severity.Overrides[1] =
		cfg.Defaults.Severity.Overrides[1], cfg.Defaults.Severity.Overrides[0]
	if sev, _ := resolve(t, cfg, "doc-presence", fooBar()); sev != model.SeverityWarn {
		t.Errorf("Resolve() = %s, want WARN", sev)
	}
}

func TestResolve_OverrideNonMatchKeepsBase(t *testing.T) {
	cfg := baseConfig()
	cfg.Defaults.Severity.Overrides = []config.SeverityOverride{
		{Match: &config.Selector{Targets: []model.Kind{model.KindType}}, Severity: model.SeverityInfo},
	}
	if sev, _ := resolve(t, cfg, "doc-presence", fooBar()); sev != model.SeverityError {
		t.Errorf("Resolve() = %s, want ERROR", sev)
	}
}

func TestResolve_RuleSeverityBeatsOverrides(t *testing.T) {
	cfg := baseConfig()
	cfg.Defaults.Severity.Overrides = []config.SeverityOverride{{Severity: model.SeverityError}}
	cfg.Rules[0].Severity = model.SeverityWarn

	if sev, _ := resolve(t, cfg, "doc-presence", fooBar()); sev != model.SeverityWarn {
		t.Errorf("Resolve() = %s, want WARN", sev)
	}
}

func TestResolve_RuleScoping(t *testing.T) {
	cfg := baseConfig()
	cfg.Rules[0].When = &config.Selector{Targets: []model.Kind{model.KindType}}

	if _, ok := resolve(t, cfg, "doc-presence", fooBar()); ok {
		t.Error("finding outside the rule's when selector should be dropped")
	}
}

func TestResolve_AnnotationPolicies(t *testing.T) {
	generated := func() model.Element {
		el := fooBar()
		el.Annotations = []string{"pkg.Generated"}
		return el
	}

	tests := []struct {
		name     string
		policies []config.AnnotationPolicy
		ruleID   string
		want     model.Severity
		wantOK   bool
	}{
		{
			name: "suppress",
			policies: []config.AnnotationPolicy{
				{AnnotationPattern: `pkg\.Generated`, Targets: []model.Kind{model.KindMethod}, Effect: model.EffectSuppress},
			},
			wantOK: false,
		},
		{
			name: "suppress ignores other targets",
			policies: []config.AnnotationPolicy{
				{AnnotationPattern: `pkg\.Generated`, Targets: []model.Kind{model.KindType}, Effect: model.EffectSuppress},
			},
			want:   model.SeverityError,
			wantOK: true,
		},
		{
			name: "empty targets apply to all kinds",
			policies: []config.AnnotationPolicy{
				{AnnotationPattern: `pkg\.Generated`, Effect: model.EffectSuppress},
			},
			wantOK: false,
		},
		{
			name: "pattern is a full match",
			policies: []config.AnnotationPolicy{
				{AnnotationPattern: `Generated`, Effect: model.EffectSuppress},
			},
			want:   model.SeverityError,
			wantOK: true,
		},
		{
			name: "suppress short-circuits later policies",
			policies: []config.AnnotationPolicy{
				{AnnotationPattern: `pkg\.Generated`, Effect: model.EffectSuppress},
				{AnnotationPattern: `.*`, Effect: model.EffectSetSeverity, ToSeverity: model.SeverityError},
				{AnnotationPattern: `.*`, Effect: model.EffectShiftSeverity, Shift: intPtr(1)},
			},
			wantOK: false,
		},
		{
			name: "suppress rules listed",
			policies: []config.AnnotationPolicy{
				{AnnotationPattern: `pkg\..*`, Effect: model.EffectSuppressRules, Rules: []string{"doc-presence"}},
			},
			wantOK: false,
		},
		{
			name: "suppress rules not listed",
			policies: []config.AnnotationPolicy{
				{AnnotationPattern: `pkg\..*`, Effect: model.EffectSuppressRules, Rules: []string{"doc-name-prefix"}},
			},
			want:   model.SeverityError,
			wantOK: true,
		},
		{
			name: "suppress rules empty list means all",
			policies: []config.AnnotationPolicy{
				{AnnotationPattern: `pkg\..*`, Effect: model.EffectSuppressRules},
			},
			wantOK: false,
		},
		{
			name: "set then shift",
			policies: []config.AnnotationPolicy{
				{AnnotationPattern: `pkg\..*`, Effect: model.EffectSetSeverity, ToSeverity: model.SeverityWarn},
				{AnnotationPattern: `pkg\..*`, Effect: model.EffectShiftSeverity, Shift: intPtr(-1)},
			},
			want:   model.SeverityInfo,
			wantOK: true,
		},
		{
			name: "shift clamps at the bottom",
			policies: []config.AnnotationPolicy{
				{AnnotationPattern: `pkg\..*`, Effect: model.EffectSetSeverity, ToSeverity: model.SeverityInfo},
				{AnnotationPattern: `pkg\..*`, Effect: model.EffectShiftSeverity, Shift: intPtr(-100)},
			},
			want:   model.SeverityInfo,
			wantOK: true,
		},
		{
			name: "shift clamps at the top",
			policies: []config.AnnotationPolicy{
				{AnnotationPattern: `pkg\..*`, Effect: model.EffectShiftSeverity, Shift: intPtr(5)},
			},
			want:   model.SeverityError,
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			cfg.Defaults.AnnotationPolicies = tt.policies

			sev, ok := resolve(t, cfg, "doc-presence", generated())
			if ok != tt.wantOK || sev != tt.want {
				t.Errorf("Resolve() = %q, %v, want %q, %v", sev, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestShouldFail(t *testing.T) {
	issues := []model.Issue{
		{Severity: model.SeverityInfo},
		{Severity: model.SeverityWarn},
	}

	if ShouldFail(issues, model.SeverityError) {
		t.Error("ShouldFail(ERROR) = true, want false")
	}
	if !ShouldFail(issues, model.SeverityWarn) {
		t.Error("ShouldFail(WARN) = false, want true")
	}
	if ShouldFail(nil, model.SeverityInfo) {
		t.Error("ShouldFail(no issues) = true, want false")
	}
}

package engine

import (
	"log/slog"
	"slices"

	"mercator-hq/docguard/pkg/model"
)

// Resolver computes the effective severity of a finding, or decides to
// suppress it. It only reads the compiled configuration and may be shared
// between goroutines.
type Resolver struct {
	cfg    *CompiledConfig
	logger *slog.Logger
}

// NewResolver creates a resolver over cfg.
func NewResolver(cfg *CompiledConfig, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{cfg: cfg, logger: logger}
}

// InScope reports whether rule applies to el according to the rule's
// when selector.
func (r *Resolver) InScope(rule CompiledRule, el model.Element) bool {
	return rule.When.Matches(el)
}

// Resolve runs the full pipeline for a finding of rule on el. The boolean
// is false when the finding is suppressed.
func (r *Resolver) Resolve(rule CompiledRule, el model.Element) (model.Severity, bool) {
	if !r.InScope(rule, el) {
		return "", false
	}
	return r.Severity(rule, el)
}

// Severity computes the severity for a finding already in scope. Resolve
// checks scope first (step 4) and then calls Severity.
//
// The remaining steps run in a fixed order and later steps win:
//
//  1. base severity for the element's visibility
//  2. severity overrides, last match wins
//  3. the rule entry's own severity
//  5. annotation policies in declared order
//
// A visibility without a base severity suppresses the finding unless the
// rule entry sets its own severity; overrides alone never report it.
// SUPPRESS and a matching SUPPRESS_RULES stop processing immediately.
func (r *Resolver) Severity(rule CompiledRule, el model.Element) (model.Severity, bool) {
	sev, ok := r.cfg.Severity.ByVisibility[el.Visibility]
	if !ok && rule.Severity == "" {
		r.logger.Debug("no severity configured, suppressing",
			"rule_id", rule.ID,
			"element", el.QualifiedName,
			"visibility", el.Visibility,
		)
		return "", false
	}

	for _, o := range r.cfg.Severity.Overrides {
		if o.Match.Matches(el) {
			sev = o.Severity
		}
	}

	if rule.Severity != "" {
		sev = rule.Severity
	}

	for i, p := range r.cfg.Policies {
		if !p.Applies(el) {
			continue
		}

		switch p.Effect {
		case model.EffectSuppress:
			r.logSuppressed(i, rule, el)
			return "", false

		case model.EffectSuppressRules:
			if len(p.Rules) == 0 || slices.Contains(p.Rules, rule.ID) {
				r.logSuppressed(i, rule, el)
				return "", false
			}

		case model.EffectSetSeverity:
			sev = p.ToSeverity

		case model.EffectShiftSeverity:
			sev = sev.Shift(p.Shift)
		}
	}

	return sev, true
}

func (r *Resolver) logSuppressed(policy int, rule CompiledRule, el model.Element) {
	r.logger.Debug("finding suppressed by annotation policy",
		"policy", policy,
		"rule_id", rule.ID,
		"element", el.QualifiedName,
	)
}

// ShouldFail reports whether any issue reaches the fail-on threshold.
func ShouldFail(issues []model.Issue, threshold model.Severity) bool {
	for _, is := range issues {
		if is.Severity.AtLeast(threshold) {
			return true
		}
	}
	return false
}

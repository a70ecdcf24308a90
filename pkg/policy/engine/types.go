package engine

import (
	"slices"

	"mercator-hq/docguard/pkg/config"
	"mercator-hq/docguard/pkg/model"
	"mercator-hq/docguard/pkg/policy/pattern"
)

// CompiledConfig is the runtime form of a config.Config. Every pattern is
// compiled and every selector resolved. A CompiledConfig is never modified
// after Compile returns and may be shared freely between goroutines.
type CompiledConfig struct {
	// ProjectRoot is the directory to scan.
	ProjectRoot string

	// Scan holds the scope filters handed to the source analyzer.
	Scan CompiledScan

	// Severity holds base severities and overrides.
	Severity CompiledSeverityProfile

	// Policies are the annotation policies in declared order.
	Policies []CompiledAnnotationPolicy

	// Rules are the rule entries in declared order.
	Rules []CompiledRule

	// FailOn is the lowest severity that fails a run.
	FailOn model.Severity
}

// Rule returns the entry for id.
func (c *CompiledConfig) Rule(id string) (CompiledRule, bool) {
	for _, r := range c.Rules {
		if r.ID == id {
			return r, true
		}
	}
	return CompiledRule{}, false
}

// EnabledRules returns the entries switched on, in declared order.
func (c *CompiledConfig) EnabledRules() []CompiledRule {
	out := make([]CompiledRule, 0, len(c.Rules))
	for _, r := range c.Rules {
		if r.Enabled {
			out = append(out, r)
		}
	}
	return out
}

// CompiledScan is the compiled scan scope. Filters are never nil; a filter
// without patterns admits everything.
type CompiledScan struct {
	// Packages is matched against import paths.
	Packages *pattern.RegexFilter
	// TypeNames is matched against qualified type names.
	TypeNames *pattern.RegexFilter
	// TypeAnnotations is applied with set semantics to type annotations.
	TypeAnnotations *pattern.RegexFilter
	// MemberNames is matched against simple member names.
	MemberNames *pattern.RegexFilter
	// MemberAnnotations is applied with set semantics to member annotations.
	MemberAnnotations *pattern.RegexFilter

	TypeKinds   config.TypeKinds
	MemberKinds config.MemberKinds

	// Visibilities lists the visibility levels to report.
	Visibilities []model.Visibility

	IncludeInherited bool
}

// AllowsVisibility reports whether elements of visibility v are in scope.
func (s CompiledScan) AllowsVisibility(v model.Visibility) bool {
	return slices.Contains(s.Visibilities, v)
}

// CompiledSeverityProfile holds base severities and overrides.
type CompiledSeverityProfile struct {
	ByVisibility map[model.Visibility]model.Severity
	Overrides    []CompiledOverride
}

// CompiledOverride sets Severity on elements matching Match.
type CompiledOverride struct {
	// Match is nil when the override applies to every element.
	Match    *CompiledSelector
	Severity model.Severity
}

// CompiledAnnotationPolicy is an annotation policy with its pattern compiled.
type CompiledAnnotationPolicy struct {
	Pattern    *pattern.RegexSet
	Targets    []model.Kind
	Effect     model.Effect
	Rules      []string
	ToSeverity model.Severity
	Shift      int
}

// Applies reports whether the policy targets el: its kind is listed (or
// no kinds are listed) and one of its annotations matches the pattern.
func (p CompiledAnnotationPolicy) Applies(el model.Element) bool {
	if len(p.Targets) > 0 && !slices.Contains(p.Targets, el.Kind) {
		return false
	}
	return p.Pattern.MatchesAny(el.Annotations)
}

// CompiledRule is a compiled rule entry.
type CompiledRule struct {
	ID      string
	Enabled bool

	// Severity is empty when the entry does not override the severity.
	Severity model.Severity

	// When is nil when the rule applies to every element.
	When *CompiledSelector

	// Options is the rule's raw payload, decoded by the rule itself.
	Options config.RuleOptions
}

// CompiledSelector is a conjunction of optional dimensions. Nil or empty
// dimensions do not constrain the match. A nil *CompiledSelector matches
// every element.
type CompiledSelector struct {
	Targets       []model.Kind
	Visibilities  []model.Visibility
	MemberKinds   []model.MemberKind
	AccessorKinds []model.AccessorKind

	Packages    *pattern.RegexSet
	FQNs        *pattern.RegexSet
	SimpleNames *pattern.RegexSet
	Signatures  *pattern.RegexSet

	// Annotations is nil when the selector has no annotation dimension.
	Annotations *pattern.RegexFilter
}

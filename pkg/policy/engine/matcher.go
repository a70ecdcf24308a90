package engine

import (
	"slices"

	"mercator-hq/docguard/pkg/model"
	"mercator-hq/docguard/pkg/policy/pattern"
)

// MatchSelector reports whether el satisfies every populated dimension of
// sel. A nil selector matches every element.
func MatchSelector(sel *CompiledSelector, el model.Element) bool {
	return sel.Matches(el)
}

// Matches reports whether el satisfies every populated dimension of s.
// Cheap enum checks run before regular expressions.
func (s *CompiledSelector) Matches(el model.Element) bool {
	if s == nil {
		return true
	}

	if len(s.Targets) > 0 && !slices.Contains(s.Targets, el.Kind) {
		return false
	}
	if len(s.Visibilities) > 0 && !slices.Contains(s.Visibilities, el.Visibility) {
		return false
	}
	if len(s.MemberKinds) > 0 && !intersects(s.MemberKinds, el.MemberKinds) {
		return false
	}
	if len(s.AccessorKinds) > 0 && !intersects(s.AccessorKinds, el.AccessorKinds) {
		return false
	}

	if !matchDimension(s.Packages, el.Package) {
		return false
	}
	if !matchDimension(s.SimpleNames, el.Name) {
		return false
	}
	if !matchDimension(s.FQNs, el.QualifiedName) {
		return false
	}
	if !matchDimension(s.Signatures, el.Signature) {
		return false
	}

	if s.Annotations != nil && !s.Annotations.MatchesAny(el.Annotations) {
		return false
	}
	return true
}

// matchDimension treats an empty set as no constraint.
func matchDimension(set *pattern.RegexSet, value string) bool {
	return set.Empty() || set.Matches(value)
}

func intersects[T comparable](allowed, have []T) bool {
	for _, v := range have {
		if slices.Contains(allowed, v) {
			return true
		}
	}
	return false
}

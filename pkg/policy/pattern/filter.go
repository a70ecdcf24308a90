package pattern

import "fmt"

// RegexFilter pairs an include set with an exclude set.
//
// A nil *RegexFilter stands for an absent filter. Callers decide what an
// absent filter means; the filter methods themselves treat nil as matching
// nothing so that "absent" and "present but universal" stay distinct.
type RegexFilter struct {
	includes *RegexSet
	excludes *RegexSet
}

// NewFilter compiles include and exclude patterns into a RegexFilter.
// Errors identify which list the bad pattern came from.
func NewFilter(includes, excludes []string) (*RegexFilter, error) {
	inc, err := Compile(includes)
	if err != nil {
		return nil, fmt.Errorf("include: %w", err)
	}
	exc, err := Compile(excludes)
	if err != nil {
		return nil, fmt.Errorf("exclude: %w", err)
	}
	return &RegexFilter{includes: inc, excludes: exc}, nil
}

// NewFilterFromSets builds a filter from already compiled sets. Nil sets
// are treated as empty.
func NewFilterFromSets(includes, excludes *RegexSet) *RegexFilter {
	if includes == nil {
		includes = &RegexSet{}
	}
	if excludes == nil {
		excludes = &RegexSet{}
	}
	return &RegexFilter{includes: includes, excludes: excludes}
}

// Matches reports whether value passes the filter. Exclusion wins over
// inclusion, and an empty include set admits everything not excluded.
func (f *RegexFilter) Matches(value string) bool {
	if f == nil {
		return false
	}
	if f.excludes.Matches(value) {
		return false
	}
	return f.includes.Empty() || f.includes.Matches(value)
}

// MatchesAny reports whether at least one of values passes the filter.
// An empty value list is an absent value and never matches.
func (f *RegexFilter) MatchesAny(values []string) bool {
	for _, v := range values {
		if f.Matches(v) {
			return true
		}
	}
	return false
}

// Admits applies set semantics used for scope filtering: some value must
// match an include pattern (unless there are none) and no value may match
// an exclude pattern. A nil filter admits everything.
func (f *RegexFilter) Admits(values []string) bool {
	if f == nil {
		return true
	}
	if f.excludes.MatchesAny(values) {
		return false
	}
	return f.includes.Empty() || f.includes.MatchesAny(values)
}

// Includes returns the include set.
func (f *RegexFilter) Includes() *RegexSet {
	if f == nil {
		return nil
	}
	return f.includes
}

// Excludes returns the exclude set.
func (f *RegexFilter) Excludes() *RegexSet {
	if f == nil {
		return nil
	}
	return f.excludes
}

// Universal reports whether the filter has no patterns at all.
func (f *RegexFilter) Universal() bool {
	return f != nil && f.includes.Empty() && f.excludes.Empty()
}

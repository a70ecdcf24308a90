// Package pattern provides compiled include/exclude regular expression sets
// with whole-string matching.
//
// A pattern such as "foo" matches "foo" but not "foobar". Patterns are
// anchored at both ends when compiled, so callers write plain regular
// expressions without ^ and $.
package pattern

import (
	"fmt"
	"regexp"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cacheSize bounds the number of distinct compiled patterns kept for reuse.
const cacheSize = 1024

var compiled *lru.Cache[string, *regexp.Regexp]

func init() {
	c, err := lru.New[string, *regexp.Regexp](cacheSize)
	if err != nil {
		panic(fmt.Sprintf("pattern: failed to create regex cache: %v", err))
	}
	compiled = c
}

// PatternError reports a pattern that is not a valid regular expression.
type PatternError struct {
	// Pattern is the offending source text as written by the user.
	Pattern string
	// Index is the position of the pattern in its list.
	Index int
	// Err is the underlying regexp parse error.
	Err error
}

// Error returns the error message.
func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

// Unwrap returns the underlying cause.
func (e *PatternError) Unwrap() error {
	return e.Err
}

// RegexSet is an immutable list of compiled patterns.
type RegexSet struct {
	sources []string
	res     []*regexp.Regexp
}

// Compile compiles patterns into a RegexSet. It fails with a *PatternError
// for the first pattern that does not compile.
func Compile(patterns []string) (*RegexSet, error) {
	s := &RegexSet{
		sources: make([]string, 0, len(patterns)),
		res:     make([]*regexp.Regexp, 0, len(patterns)),
	}
	for i, p := range patterns {
		re, err := compileAnchored(p)
		if err != nil {
			return nil, &PatternError{Pattern: p, Index: i, Err: err}
		}
		s.sources = append(s.sources, p)
		s.res = append(s.res, re)
	}
	return s, nil
}

// MustCompile is like Compile but panics on error. It is meant for
// patterns known at build time.
func MustCompile(patterns ...string) *RegexSet {
	s, err := Compile(patterns)
	if err != nil {
		panic(err)
	}
	return s
}

func compileAnchored(p string) (*regexp.Regexp, error) {
	anchored := `^(?:` + p + `)$`
	if re, ok := compiled.Get(anchored); ok {
		return re, nil
	}
	re, err := regexp.Compile(anchored)
	if err != nil {
		// Report against the user's text, not the anchored wrapper.
		if _, perr := regexp.Compile(p); perr != nil {
			return nil, perr
		}
		return nil, err
	}
	compiled.Add(anchored, re)
	return re, nil
}

// Matches reports whether any pattern matches value in its entirety.
// An empty set matches nothing.
func (s *RegexSet) Matches(value string) bool {
	if s == nil {
		return false
	}
	for _, re := range s.res {
		if re.MatchString(value) {
			return true
		}
	}
	return false
}

// MatchesAny reports whether any pattern matches any of values.
func (s *RegexSet) MatchesAny(values []string) bool {
	for _, v := range values {
		if s.Matches(v) {
			return true
		}
	}
	return false
}

// Empty reports whether the set has no patterns.
func (s *RegexSet) Empty() bool {
	return s == nil || len(s.res) == 0
}

// Len returns the number of patterns.
func (s *RegexSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.res)
}

// Patterns returns the source patterns in declaration order.
func (s *RegexSet) Patterns() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.sources))
	copy(out, s.sources)
	return out
}

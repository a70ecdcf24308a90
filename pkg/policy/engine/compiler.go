package engine

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"mercator-hq/docguard/pkg/config"
	"mercator-hq/docguard/pkg/model"
	"mercator-hq/docguard/pkg/policy/pattern"
)

// Compile turns a validated configuration into its compiled form.
// It performs no I/O. Every invalid pattern is reported in a single
// *ConfigCompileError carrying the pattern and its configuration path.
func Compile(raw *config.Config) (*CompiledConfig, error) {
	if raw == nil {
		return nil, ErrNilConfig
	}

	c := &compiler{}
	out := &CompiledConfig{
		ProjectRoot: raw.ProjectRoot,
		Scan:        c.scan(raw.Scan),
		Severity:    c.severity(raw.Defaults.Severity),
		Policies:    c.policies(raw.Defaults.AnnotationPolicies),
		Rules:       c.rules(raw.Rules),
		FailOn:      raw.FailOn.Severity,
	}

	if len(c.problems) > 0 {
		return nil, &ConfigCompileError{Problems: c.problems}
	}
	return out, nil
}

// Compiler memoizes Compile by configuration identity. The same *config.Config
// must not be modified after it has been compiled.
type Compiler struct {
	mu    sync.Mutex
	cache map[*config.Config]*CompiledConfig
}

// NewCompiler creates a memoizing compiler.
func NewCompiler() *Compiler {
	return &Compiler{cache: make(map[*config.Config]*CompiledConfig)}
}

// Compile returns the cached result for raw or compiles it.
func (c *Compiler) Compile(raw *config.Config) (*CompiledConfig, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cc, ok := c.cache[raw]; ok {
		return cc, nil
	}
	cc, err := Compile(raw)
	if err != nil {
		return nil, err
	}
	c.cache[raw] = cc
	return cc, nil
}

// compiler accumulates problems while walking the configuration.
type compiler struct {
	problems []CompileProblem
}

func (c *compiler) fail(path, pat string, err error) {
	c.problems = append(c.problems, CompileProblem{Path: path, Pattern: pat, Err: err})
}

// set compiles a list of patterns found at path. Every bad entry is
// recorded, not just the first.
func (c *compiler) set(path string, patterns []string) *pattern.RegexSet {
	s, err := pattern.Compile(patterns)
	if err == nil {
		return s
	}
	for i, p := range patterns {
		if _, err := pattern.Compile([]string{p}); err != nil {
			var perr *pattern.PatternError
			if errors.As(err, &perr) {
				perr.Index = i
				err = perr
			}
			c.fail(fmt.Sprintf("%s[%d]", path, i), p, err)
		}
	}
	return nil
}

// single compiles a one-pattern field.
func (c *compiler) single(path, p string) *pattern.RegexSet {
	s, err := pattern.Compile([]string{p})
	if err != nil {
		c.fail(path, p, err)
		return nil
	}
	return s
}

func (c *compiler) filter(path string, f config.Filter) *pattern.RegexFilter {
	inc := c.set(path+".include", f.Include)
	exc := c.set(path+".exclude", f.Exclude)
	return pattern.NewFilterFromSets(inc, exc)
}

func (c *compiler) scan(s config.ScanConfig) CompiledScan {
	return CompiledScan{
		Packages:          c.filter("scan.packages", s.Packages),
		TypeNames:         c.filter("scan.types.names", s.Types.Names),
		TypeAnnotations:   c.filter("scan.types.annotations", s.Types.Annotations),
		MemberNames:       c.filter("scan.members.names", s.Members.Names),
		MemberAnnotations: c.filter("scan.members.annotations", s.Members.Annotations),
		TypeKinds:         s.Types.Include,
		MemberKinds:       s.Members.Include,
		Visibilities:      slices.Clone(s.Visibilities),
		IncludeInherited:  s.Members.IncludeInherited,
	}
}

func (c *compiler) severity(p config.SeverityProfile) CompiledSeverityProfile {
	out := CompiledSeverityProfile{
		ByVisibility: maps.Clone(p.ByVisibility),
		Overrides:    make([]CompiledOverride, 0, len(p.Overrides)),
	}
	if out.ByVisibility == nil {
		out.ByVisibility = map[model.Visibility]model.Severity{}
	}
	for i, o := range p.Overrides {
		out.Overrides = append(out.Overrides, CompiledOverride{
			Match:    c.selector(fmt.Sprintf("defaults.severity.overrides[%d].match", i), o.Match),
			Severity: o.Severity,
		})
	}
	return out
}

func (c *compiler) policies(ps []config.AnnotationPolicy) []CompiledAnnotationPolicy {
	out := make([]CompiledAnnotationPolicy, 0, len(ps))
	for i, p := range ps {
		cp := CompiledAnnotationPolicy{
			Pattern:    c.single(fmt.Sprintf("defaults.annotation_policies[%d].annotation_pattern", i), p.AnnotationPattern),
			Targets:    slices.Clone(p.Targets),
			Effect:     p.Effect,
			Rules:      slices.Clone(p.Rules),
			ToSeverity: p.ToSeverity,
		}
		if p.Shift != nil {
			cp.Shift = *p.Shift
		}
		out = append(out, cp)
	}
	return out
}

func (c *compiler) rules(rs []config.RuleConfig) []CompiledRule {
	out := make([]CompiledRule, 0, len(rs))
	for i, r := range rs {
		out = append(out, CompiledRule{
			ID:       r.ID,
			Enabled:  r.IsEnabled(),
			Severity: r.Severity,
			When:     c.selector(fmt.Sprintf("rules[%d].when", i), r.When),
			Options:  r.Config,
		})
	}
	return out
}

// selector compiles a selector. Enum dimensions are copied unchanged.
func (c *compiler) selector(path string, s *config.Selector) *CompiledSelector {
	if s == nil {
		return nil
	}

	cs := &CompiledSelector{
		Targets:       slices.Clone(s.Targets),
		Visibilities:  slices.Clone(s.Visibility),
		MemberKinds:   slices.Clone(s.MemberKinds),
		AccessorKinds: slices.Clone(s.AccessorKinds),
		Packages:      c.set(path+".package_patterns", s.PackagePatterns),
		FQNs:          c.set(path+".fqn_patterns", s.FQNPatterns),
		SimpleNames:   c.set(path+".simple_name_patterns", s.SimpleNamePatterns),
		Signatures:    c.set(path+".signature_patterns", s.SignaturePatterns),
	}
	if s.Annotations != nil {
		cs.Annotations = c.filter(path+".annotations", *s.Annotations)
	}
	return cs
}

// Package engine compiles docguard configuration into an immutable runtime
// form and decides, for every finding, whether it is reported and at which
// severity.
//
// # Architecture
//
// The engine has three layers:
//
//  1. Compiler - turns config.Config into a CompiledConfig with every
//     regular expression compiled and every selector resolved
//  2. Selector Matcher - evaluates a CompiledSelector against one element
//  3. Resolver - computes the effective severity of a (rule, element) pair
//
// # Resolution Flow
//
//	Finding(rule, element)
//	       ↓
//	rule.when matches element?       no → dropped
//	       ↓
//	by_visibility[element.visibility]  missing and no rule severity → suppressed
//	       ↓
//	overrides (declared order, last match wins)
//	       ↓
//	rule severity (if set)
//	       ↓
//	annotation policies (declared order)
//	  SUPPRESS                       → suppressed
//	  SUPPRESS_RULES (rule listed)   → suppressed
//	  SET_SEVERITY                   → severity = to_severity
//	  SHIFT_SEVERITY                 → severity moved, clamped to INFO..ERROR
//	       ↓
//	Severity
//
// # Basic Usage
//
//	cfg, err := config.LoadConfig(".docguard.yaml")
//	if err != nil {
//	    return err
//	}
//
//	compiled, err := engine.Compile(cfg)
//	if err != nil {
//	    // *engine.ConfigCompileError lists every bad pattern with its path
//	    return err
//	}
//
//	resolver := engine.NewResolver(compiled, logger)
//	rule, _ := compiled.Rule("doc-presence")
//	if sev, ok := resolver.Resolve(rule, element); ok {
//	    fmt.Println(sev)
//	}
//
// # Selectors
//
// A selector is a conjunction of optional dimensions: target kinds,
// visibilities, member kinds, accessor kinds, package, qualified name,
// simple name and signature patterns, and an annotation filter. Empty
// dimensions impose no constraint and a nil selector matches everything.
// Member and accessor kinds match when the element carries at least one of
// the listed values. The annotation filter matches when at least one of the
// element's annotations passes it.
//
// # Thread Safety
//
// CompiledConfig, CompiledSelector and Resolver are read-only after
// construction and safe for concurrent use.
package engine

package vet

import (
	"context"
	"flag"
	"fmt"
	"go/ast"
	"go/token"
	"strings"
	"sync"

	"golang.org/x/tools/go/analysis"

	"mercator-hq/docguard/pkg/audit"
	"mercator-hq/docguard/pkg/config"
	"mercator-hq/docguard/pkg/model"
	"mercator-hq/docguard/pkg/policy/engine"
	"mercator-hq/docguard/pkg/rules"
	"mercator-hq/docguard/pkg/source"
	"mercator-hq/docguard/pkg/telemetry/logging"
)

// Analyzer runs docguard on one package at a time.
var Analyzer = NewAnalyzer()

// NewAnalyzer returns a fresh analyzer with its own flag set and
// configuration cache.
//
// Flags:
//   - config: configuration file; empty means the built-in defaults
//   - severity: lowest severity reported (default INFO)
func NewAnalyzer() *analysis.Analyzer {
	c := &checker{configs: make(map[string]*engine.CompiledConfig)}

	a := &analysis.Analyzer{
		Name: "docguard",
		Doc:  "checks that exported declarations carry doc comments, graded by a docguard configuration",
		URL:  "https://mercator-hq.dev/docguard",
		Run:  c.run,
	}
	a.Flags.Init("docguard", flag.ExitOnError)
	a.Flags.StringVar(&c.configPath, "config", "", "docguard configuration file (default: built-in defaults)")
	a.Flags.StringVar(&c.minSeverity, "severity", string(model.SeverityInfo), "lowest severity reported: INFO, WARN, ERROR")
	return a
}

type checker struct {
	configPath  string
	minSeverity string

	mu      sync.Mutex
	configs map[string]*engine.CompiledConfig
}

// compiled loads and compiles the configuration once per path. Packages
// are analyzed concurrently, so the cache is guarded.
func (c *checker) compiled() (*engine.CompiledConfig, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cc, ok := c.configs[c.configPath]; ok {
		return cc, nil
	}
	cfg, err := config.LoadConfigWithEnvOverrides(c.configPath)
	if err != nil {
		return nil, err
	}
	cc, err := engine.Compile(cfg)
	if err != nil {
		return nil, err
	}
	c.configs[c.configPath] = cc
	return cc, nil
}

func (c *checker) run(pass *analysis.Pass) (interface{}, error) {
	threshold, err := model.ParseSeverity(c.minSeverity)
	if err != nil {
		return nil, fmt.Errorf("invalid -severity flag: %w", err)
	}
	cc, err := c.compiled()
	if err != nil {
		return nil, err
	}

	pkgPath := pass.Pkg.Path()
	if !cc.Scan.Packages.Matches(pkgPath) {
		return nil, nil
	}

	files, lines := sourceFiles(pass)
	if len(files) == 0 {
		return nil, nil
	}

	sc := source.Extract(pass.Fset, files, pkgPath, cc.Scan)
	res, err := audit.NewRunner(cc, rules.Default(), audit.WithLogger(logging.Discard())).Run(context.Background(), sc)
	if err != nil {
		return nil, err
	}

	for _, is := range res.Issues {
		if !is.Severity.AtLeast(threshold) {
			continue
		}
		pass.Reportf(position(lines, is.Element), "[%s] %s (%s)", is.Severity, is.Message, is.RuleID)
	}
	return nil, nil
}

// sourceFiles drops test files, which go vet includes in test variants of
// a package, and indexes the rest by file name.
func sourceFiles(pass *analysis.Pass) ([]*ast.File, map[string]*token.File) {
	var files []*ast.File
	lines := make(map[string]*token.File)
	for _, f := range pass.Files {
		tf := pass.Fset.File(f.Pos())
		if tf == nil || strings.HasSuffix(tf.Name(), "_test.go") {
			continue
		}
		files = append(files, f)
		lines[tf.Name()] = tf
	}
	return files, lines
}

func position(lines map[string]*token.File, el model.Element) token.Pos {
	tf, ok := lines[el.SourceFile]
	if !ok || el.Line < 1 || el.Line > tf.LineCount() {
		return token.NoPos
	}
	return tf.LineStart(el.Line)
}

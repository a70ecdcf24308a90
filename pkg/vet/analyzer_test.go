package vet

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/tools/go/analysis/analysistest"

	"mercator-hq/docguard/pkg/policy/engine"
)

func TestAnalyzer_Defaults(t *testing.T) {
	analysistest.Run(t, analysistest.TestData(), NewAnalyzer(), "a")
}

func TestAnalyzer_ConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docguard.yaml")
	cfg := "rules:\n  - id: doc-presence\n    enabled: false\n  - id: doc-name-prefix\n    enabled: true\n"
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	a := NewAnalyzer()
	if err := a.Flags.Set("config", path); err != nil {
		t.Fatalf("Flags.Set(config) error = %v", err)
	}
	analysistest.Run(t, analysistest.TestData(), a, "b")
}

func TestAnalyzer_SeverityFlag(t *testing.T) {
	a := NewAnalyzer()
	if err := a.Flags.Set("severity", "WARN"); err != nil {
		t.Fatalf("Flags.Set(severity) error = %v", err)
	}
	// ERROR issues still pass a WARN threshold, so the want comments hold.
	analysistest.Run(t, analysistest.TestData(), a, "a")
}

func TestChecker_CompiledCachesPerPath(t *testing.T) {
	c := &checker{configs: make(map[string]*engine.CompiledConfig)}

	first, err := c.compiled()
	if err != nil {
		t.Fatalf("compiled() error = %v", err)
	}
	second, err := c.compiled()
	if err != nil {
		t.Fatalf("compiled() error = %v", err)
	}
	if first != second {
		t.Error("compiled() recompiled the same configuration path")
	}

	c.configPath = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := c.compiled(); err == nil {
		t.Error("compiled() should fail for a missing configuration file")
	}
}

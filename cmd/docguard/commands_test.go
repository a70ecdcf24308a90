package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mercator-hq/docguard/pkg/cli"
)

func TestSchemaCommand(t *testing.T) {
	out, err := execute(t, "schema")
	if err != nil {
		t.Fatalf("schema error = %v", err)
	}

	var schema map[string]any
	if err := json.Unmarshal([]byte(out), &schema); err != nil {
		t.Fatalf("schema output is not JSON: %v", err)
	}
	if !strings.Contains(out, "project_root") {
		t.Error("schema does not describe project_root")
	}

	path := filepath.Join(t.TempDir(), "docguard.schema.json")
	if _, err := execute(t, "schema", "-o", path); err != nil {
		t.Fatalf("schema -o error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("schema file not written: %v", err)
	}
	if string(data) != out {
		t.Error("schema file differs from stdout output")
	}
}

func TestRulesCommand(t *testing.T) {
	out, err := execute(t, "rules")
	if err != nil {
		t.Fatalf("rules error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("rules printed %d lines, want header and 2 rules:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[1], "doc-name-prefix") || !strings.Contains(lines[1], "disabled") {
		t.Errorf("line 1 = %q, want doc-name-prefix disabled", lines[1])
	}
	if !strings.HasPrefix(lines[2], "doc-presence") || !strings.Contains(lines[2], "enabled") {
		t.Errorf("line 2 = %q, want doc-presence enabled", lines[2])
	}

	out, err = execute(t, "rules", "--format", "json")
	if err != nil {
		t.Fatalf("rules --format json error = %v", err)
	}
	var records []map[string]string
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("rules JSON invalid: %v", err)
	}
	if len(records) != 2 || records[1]["id"] != "doc-presence" {
		t.Errorf("rules JSON = %v", records)
	}
}

func TestConfigCommands(t *testing.T) {
	dir := writeModule(t, map[string]string{
		"shop.go":        documented,
		".docguard.yaml": "fail_on:\n  severity: WARN\n",
	})

	out, err := execute(t, "config", "validate", dir)
	if err != nil {
		t.Fatalf("config validate error = %v", err)
	}
	if !strings.Contains(out, ".docguard.yaml is valid") {
		t.Errorf("config validate output = %q", out)
	}

	out, err = execute(t, "config", "show", dir)
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	for _, want := range []string{"severity: WARN", "project_root: " + dir, "doc-presence"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show output does not contain %q:\n%s", want, out)
		}
	}

	bad := writeModule(t, map[string]string{
		".docguard.yaml": "defaults:\n  severity:\n    overrides:\n      - match:\n          fqn_patterns: [\"[\"]\n        severity: INFO\n",
	})
	_, err = execute(t, "config", "validate", bad)
	wantExitCode(t, err, cli.ExitConfig)
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mercator-hq/docguard/pkg/cli"
	"mercator-hq/docguard/pkg/report"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cfgFile = ""
	verbose = false
	scanFlags.format = "text"
	scanFlags.failOn = ""
	scanFlags.metricsFile = ""
	scanFlags.noColor = true
	schemaFlags.output = ""
	rulesFlags.format = "text"

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// writeModule creates a module rooted in a temp dir from rel path to content.
func writeModule(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	files["go.mod"] = "module example.com/shop\n\ngo 1.22\n"
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}
	return dir
}

const undocumentedMethod = `package shop

// Client talks to the shop.
type Client struct{}

func (c *Client) Do() error { return nil }

// Ping checks the connection.
func Ping() error { return nil }
`

const documented = `package shop

// Client talks to the shop.
type Client struct{}

// Do sends the request.
func (c *Client) Do() error { return nil }
`

const internalHelper = `package util

func Helper() {}
`

func wantExitCode(t *testing.T, err error, want cli.ExitCode) {
	t.Helper()
	if got := cli.ExitCodeFor(err); got != want {
		t.Errorf("exit code = %d, want %d (error: %v)", got, want, err)
	}
}

func TestScan_ReportsIssuesAndFails(t *testing.T) {
	dir := writeModule(t, map[string]string{"shop.go": undocumentedMethod})

	out, err := execute(t, "scan", dir)
	wantExitCode(t, err, cli.ExitFailure)

	want := "[ERROR] Missing doc comment: shop.Client.Do (doc-presence) - shop.go:6\nIssues: 1\n"
	if out != want {
		t.Errorf("scan output =\n%s\nwant\n%s", out, want)
	}
}

func TestScan_CleanModule(t *testing.T) {
	dir := writeModule(t, map[string]string{"shop.go": documented})

	out, err := execute(t, "scan", dir)
	if err != nil {
		t.Fatalf("scan error = %v", err)
	}
	if out != "Issues: 0\n" {
		t.Errorf("scan output = %q, want %q", out, "Issues: 0\n")
	}
}

func TestScan_JSON(t *testing.T) {
	dir := writeModule(t, map[string]string{"shop.go": undocumentedMethod})

	out, err := execute(t, "scan", dir, "--format", "json")
	wantExitCode(t, err, cli.ExitFailure)

	var doc report.Document
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("scan produced invalid JSON: %v\n%s", err, out)
	}
	if doc.RunID == "" || !doc.Failed || doc.Summary.Total != 1 {
		t.Errorf("report = %+v, want run id, failed, one issue", doc)
	}
	if doc.Issues[0].File != "shop.go" || doc.Issues[0].Line != 6 {
		t.Errorf("issue location = %s:%d, want shop.go:6", doc.Issues[0].File, doc.Issues[0].Line)
	}
}

func TestScan_FailOn(t *testing.T) {
	files := func() map[string]string {
		return map[string]string{
			"shop.go":               documented,
			"internal/util/util.go": internalHelper,
		}
	}

	t.Run("internal issue below default threshold", func(t *testing.T) {
		out, err := execute(t, "scan", writeModule(t, files()))
		if err != nil {
			t.Fatalf("scan error = %v", err)
		}
		if !strings.Contains(out, "[WARN] Missing doc comment: util.Helper") {
			t.Errorf("scan output = %q, want WARN issue for util.Helper", out)
		}
	})

	t.Run("flag lowers threshold", func(t *testing.T) {
		_, err := execute(t, "scan", writeModule(t, files()), "--fail-on", "warn")
		wantExitCode(t, err, cli.ExitFailure)
	})

	t.Run("config file lowers threshold", func(t *testing.T) {
		f := files()
		f[".docguard.yaml"] = "fail_on:\n  severity: WARN\n"
		_, err := execute(t, "scan", writeModule(t, f))
		wantExitCode(t, err, cli.ExitFailure)
	})

	t.Run("invalid flag", func(t *testing.T) {
		_, err := execute(t, "scan", writeModule(t, files()), "--fail-on", "LOUD")
		wantExitCode(t, err, cli.ExitConfig)
	})
}

func TestScan_ErrorExitCodes(t *testing.T) {
	tests := []struct {
		name   string
		config string
		want   cli.ExitCode
	}{
		{
			name:   "invalid config value",
			config: "rules:\n  - id: doc-presence\n    severity: LOUD\n",
			want:   cli.ExitConfig,
		},
		{
			name:   "unknown config key",
			config: "fail_no:\n  severity: WARN\n",
			want:   cli.ExitConfig,
		},
		{
			name:   "bad pattern",
			config: "scan:\n  packages:\n    include: [\"(\"]\n",
			want:   cli.ExitConfig,
		},
		{
			name:   "invalid rule options",
			config: "rules:\n  - id: doc-presence\n    config:\n      min_length: 0\n",
			want:   cli.ExitConfig,
		},
		{
			name:   "unknown rule",
			config: "rules:\n  - id: no-such-rule\n",
			want:   cli.ExitRule,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeModule(t, map[string]string{
				"shop.go":        documented,
				".docguard.yaml": tt.config,
			})
			_, err := execute(t, "scan", dir)
			wantExitCode(t, err, tt.want)
		})
	}
}

func TestScan_RootIsFile(t *testing.T) {
	dir := writeModule(t, map[string]string{"shop.go": documented})

	_, err := execute(t, "scan", filepath.Join(dir, "shop.go"))
	wantExitCode(t, err, cli.ExitScan)
}

func TestScan_ExplicitConfigFlag(t *testing.T) {
	dir := writeModule(t, map[string]string{"internal/util/util.go": internalHelper})
	cfg := filepath.Join(t.TempDir(), "strict.yaml")
	if err := os.WriteFile(cfg, []byte("fail_on:\n  severity: INFO\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := execute(t, "scan", dir, "--config", cfg)
	wantExitCode(t, err, cli.ExitFailure)

	_, err = execute(t, "scan", dir, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	wantExitCode(t, err, cli.ExitConfig)
}

func TestScan_MetricsFile(t *testing.T) {
	dir := writeModule(t, map[string]string{"shop.go": undocumentedMethod})
	path := filepath.Join(t.TempDir(), "docguard.prom")

	_, err := execute(t, "scan", dir, "--metrics-file", path)
	wantExitCode(t, err, cli.ExitFailure)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}
	for _, want := range []string{
		`docguard_runs_total{status="failed"} 1`,
		`docguard_issues_total{rule_id="doc-presence",severity="ERROR"} 1`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("metrics file does not contain %q", want)
		}
	}
}

func TestScan_UnsupportedFormat(t *testing.T) {
	dir := writeModule(t, map[string]string{"shop.go": documented})

	_, err := execute(t, "scan", dir, "--format", "xml")
	wantExitCode(t, err, cli.ExitConfig)
}

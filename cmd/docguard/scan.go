package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mercator-hq/docguard/pkg/audit"
	"mercator-hq/docguard/pkg/cli"
	"mercator-hq/docguard/pkg/model"
	"mercator-hq/docguard/pkg/policy/engine"
	"mercator-hq/docguard/pkg/report"
	"mercator-hq/docguard/pkg/rules"
	"mercator-hq/docguard/pkg/source"
	"mercator-hq/docguard/pkg/telemetry/metrics"
	"mercator-hq/docguard/pkg/telemetry/tracing"
)

var scanFlags struct {
	format      string
	failOn      string
	metricsFile string
	noColor     bool
}

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Audit the doc comments of a Go module",
	Long: `Scan Go sources under path (default: project_root from the configuration)
and report documentation issues.

Each issue is printed as:
  [SEVERITY] message (rule-id) - file:line

The command exits with code 40 when an issue reaches the fail-on severity.

Examples:
  # Scan the current module
  docguard scan

  # Scan a directory with an explicit configuration
  docguard scan ./pkg --config docguard.yaml

  # JSON output for CI/CD, failing on warnings
  docguard scan --format json --fail-on WARN

  # Write Prometheus metrics for node_exporter
  docguard scan --metrics-file /var/lib/node_exporter/docguard.prom`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVar(&scanFlags.format, "format", "text", "output format: text, json")
	scanCmd.Flags().StringVar(&scanFlags.failOn, "fail-on", "", "lowest severity that fails the run: INFO, WARN, ERROR (overrides fail_on.severity)")
	scanCmd.Flags().StringVar(&scanFlags.metricsFile, "metrics-file", "", "write Prometheus metrics to this file")
	scanCmd.Flags().BoolVar(&scanFlags.noColor, "no-color", false, "disable colored output")
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	format, err := cli.ParseOutputFormat(scanFlags.format, cli.FormatText, cli.FormatJSON)
	if err != nil {
		return err
	}

	cfg, _, err := loadConfig(args)
	if err != nil {
		return err
	}
	if scanFlags.failOn != "" {
		sev, err := model.ParseSeverity(scanFlags.failOn)
		if err != nil {
			return cli.NewConfigError("--fail-on", err.Error())
		}
		cfg.FailOn.Severity = sev
	}
	if scanFlags.metricsFile != "" {
		cfg.Telemetry.Metrics.Textfile = scanFlags.metricsFile
	}

	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}

	tracer, err := tracing.New(&cfg.Telemetry.Tracing, tracing.WithVersion(Version))
	if err != nil {
		return cli.WrapConfigError("telemetry.tracing", "failed to start tracing", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("failed to flush traces", "error", err)
		}
	}()

	_, compileSpan := tracer.Start(ctx, tracing.SpanCompile)
	cc, err := engine.Compile(cfg)
	tracing.SetStatus(compileSpan, err)
	compileSpan.End()
	if err != nil {
		return err
	}

	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled || cfg.Telemetry.Metrics.Textfile != "" {
		collector = metrics.NewCollector(cfg.Telemetry.Metrics, nil)
	}

	scanCtx, scanSpan := tracer.Start(ctx, tracing.SpanScan)
	sc, err := source.NewGoAnalyzer(logger).Scan(scanCtx, cc.ProjectRoot, cc.Scan)
	if err == nil {
		tracing.SetScanAttributes(scanSpan, cc.ProjectRoot, sc.Len())
	}
	tracing.SetStatus(scanSpan, err)
	scanSpan.End()
	if err != nil {
		return err
	}

	runner := audit.NewRunner(cc, rules.Default(),
		audit.WithLogger(logger),
		audit.WithMetrics(collector),
		audit.WithTracer(tracer),
	)
	res, err := runner.Run(ctx, sc)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	reporter, err := report.New(report.Format(format), report.Options{
		Color: !scanFlags.noColor && !color.NoColor && out == os.Stdout,
	})
	if err != nil {
		return cli.NewConfigError("--format", err.Error())
	}
	if err := reporter.Report(out, res, cc.FailOn); err != nil {
		return cli.NewCommandError("scan", fmt.Errorf("failed to write report: %w", err))
	}

	if path := cfg.Telemetry.Metrics.Textfile; path != "" {
		if err := collector.WriteTextfile(path); err != nil {
			logger.Warn("failed to write metrics", "path", path, "error", err)
		}
	}

	if res.Failed(cc.FailOn) {
		n := 0
		for _, is := range res.Issues {
			if is.Severity.AtLeast(cc.FailOn) {
				n++
			}
		}
		return &cli.FailureError{Threshold: cc.FailOn, Issues: n}
	}
	return nil
}

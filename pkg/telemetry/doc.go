// Package telemetry groups docguard's observability packages.
//
// # Components
//
//   - logging: slog loggers that carry run and rule ids from the context
//   - metrics: Prometheus collectors written to a textfile after each run
//   - tracing: OpenTelemetry spans for scans, runs and rule evaluations
//
// All three accept nil or disabled configurations and then cost next to
// nothing, so the audit runner never branches on whether telemetry is on.
//
// # Usage
//
//	logger, err := logging.FromConfig(cfg.Telemetry.Logging, os.Stderr)
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
//	defer tracer.Shutdown(context.Background())
//
//	var collector *metrics.Collector
//	if cfg.Telemetry.Metrics.Enabled {
//		collector = metrics.NewCollector(cfg.Telemetry.Metrics, nil)
//	}
package telemetry

package audit

import (
	"log/slog"

	"mercator-hq/docguard/pkg/telemetry/metrics"
	"mercator-hq/docguard/pkg/telemetry/tracing"
)

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger. Debug records carry the run id when the
// logger was built by the logging package.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics records rule evaluations, suppressions and issues on c.
func WithMetrics(c *metrics.Collector) Option {
	return func(r *Runner) { r.metrics = c }
}

// WithTracer opens a span per run and per rule evaluation on t.
func WithTracer(t *tracing.Tracer) Option {
	return func(r *Runner) { r.tracer = t }
}

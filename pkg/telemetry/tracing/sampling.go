package tracing

import (
	"fmt"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// createSampler creates a sampler for the given ratio.
//
// A ratio of 1 traces every run and 0 traces none. Anything in between is
// decided by TraceIDRatioBased on the trace ID hash. The sampler is wrapped
// in ParentBased so that a run started under a sampled parent span (for
// example a CI job that propagates its own trace) follows that decision.
func createSampler(ratio float64) (sdktrace.Sampler, error) {
	if ratio < 0.0 || ratio > 1.0 {
		return nil, fmt.Errorf("sample ratio must be between 0.0 and 1.0, got %f", ratio)
	}

	var base sdktrace.Sampler
	switch ratio {
	case 1.0:
		base = sdktrace.AlwaysSample()
	case 0.0:
		base = sdktrace.NeverSample()
	default:
		base = sdktrace.TraceIDRatioBased(ratio)
	}

	return sdktrace.ParentBased(base), nil
}

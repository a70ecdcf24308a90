// Package tracing provides OpenTelemetry tracing for docguard runs.
//
// # Overview
//
// A scan and an audit run each open one span, and every rule evaluation
// opens a child span of the run. Spans are exported over OTLP gRPC, so any
// OpenTelemetry collector (Jaeger, Tempo, Honeycomb) can receive them.
//
// # Span Hierarchy
//
//	docguard.source.scan (120ms)
//	docguard.audit.run (8ms)
//	├── docguard.rule.evaluate  docguard.rule_id=doc-presence
//	└── docguard.rule.evaluate  docguard.rule_id=doc-name-prefix
//
// # Configuration
//
//	telemetry:
//	  tracing:
//	    enabled: true
//	    endpoint: localhost:4317
//	    insecure: true
//	    service_name: docguard
//	    sample_ratio: 1.0
//
// # Usage
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, tracing.WithVersion(version))
//	if err != nil {
//		return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	ctx, span := tracer.Start(ctx, tracing.SpanRun)
//	defer span.End()
//	tracing.SetRunAttributes(span, runID, elements, issues)
//
// When tracing is disabled, or the *Tracer is nil, Start returns noop spans.
package tracing

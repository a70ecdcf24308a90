// Package metrics provides Prometheus metrics for docguard runs.
//
// # Overview
//
// docguard is a batch tool, so metrics are not scraped from an endpoint.
// Instead the collector is written once per run to a file in Prometheus text
// format, ready for node_exporter's textfile collector or a CI artifact.
//
// # Metrics Categories
//
//   - Run Metrics: run count by status, duration, scanned elements, issues
//   - Rule Metrics: evaluations, duration, raw findings, suppressed findings
//
// # Usage
//
//	collector := metrics.NewCollector(cfg.Telemetry.Metrics, nil)
//
//	collector.RecordRuleEvaluation("doc-presence", nil, 2*time.Millisecond, 10)
//	collector.RecordSuppressed("doc-presence", 4)
//	collector.RecordIssues(result.Issues)
//	collector.RecordRun(metrics.StatusSuccess, time.Since(start), sc.Len())
//
//	if err := collector.WriteTextfile("docguard.prom"); err != nil {
//		return err
//	}
//
// # Output
//
//	# HELP docguard_issues_total Total number of reported issues
//	# TYPE docguard_issues_total counter
//	docguard_issues_total{rule_id="doc-presence",severity="ERROR"} 6
package metrics

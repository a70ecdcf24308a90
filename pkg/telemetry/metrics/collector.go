package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/docguard/pkg/config"
	"mercator-hq/docguard/pkg/model"
)

// Run status label values.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusError   = "error"
)

// Collector records audit metrics into its own Prometheus registry.
// A nil *Collector is valid and records nothing, so callers can pass it
// around without checking whether metrics are enabled.
type Collector struct {
	config   config.MetricsConfig
	registry *prometheus.Registry

	runMetrics  *RunMetrics
	ruleMetrics *RuleMetrics
}

// NewCollector creates a metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is used.
//
// Example:
//
//	collector := metrics.NewCollector(cfg.Telemetry.Metrics, nil)
//	// ... run the audit ...
//	if err := collector.WriteTextfile("/var/lib/node_exporter/docguard.prom"); err != nil {
//		return err
//	}
func NewCollector(cfg config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}

	return &Collector{
		config:      cfg,
		registry:    registry,
		runMetrics:  NewRunMetrics(cfg.Namespace, registry),
		ruleMetrics: NewRuleMetrics(cfg.Namespace, registry),
	}
}

// RecordRun records a finished run.
//
// Parameters:
//   - status: StatusSuccess, StatusFailed (fail-on threshold reached) or StatusError
//   - duration: Time spent resolving and sorting
//   - elements: Size of the scan context
func (c *Collector) RecordRun(status string, duration time.Duration, elements int) {
	if c == nil {
		return
	}
	c.runMetrics.RecordRun(status, duration, elements)
}

// RecordIssues counts issues by rule and severity.
func (c *Collector) RecordIssues(issues []model.Issue) {
	if c == nil {
		return
	}
	for _, is := range issues {
		c.runMetrics.RecordIssue(is.RuleID, is.Severity.String())
	}
}

// RecordRuleEvaluation records one rule evaluation.
//
// Example:
//
//	collector.RecordRuleEvaluation("doc-presence", nil, 3*time.Millisecond, 12)
func (c *Collector) RecordRuleEvaluation(ruleID string, err error, duration time.Duration, findings int) {
	if c == nil {
		return
	}
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	c.ruleMetrics.RecordEvaluation(ruleID, status, duration, findings)
}

// RecordSuppressed records findings of ruleID that were not reported.
func (c *Collector) RecordSuppressed(ruleID string, n int) {
	if c == nil || n == 0 {
		return
	}
	c.ruleMetrics.RecordSuppressed(ruleID, n)
}

// WriteTextfile writes every metric in Prometheus text format to path,
// atomically, for node_exporter's textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	if c == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %q: %w", path, err)
	}
	return nil
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RuleMetrics tracks rule evaluation.
//
// Metrics:
//   - docguard_rule_evaluations_total: Rule evaluations by rule and status
//   - docguard_rule_evaluation_duration_seconds: Rule evaluation duration
//   - docguard_rule_findings_total: Raw findings reported by a rule
//   - docguard_rule_suppressed_total: Findings dropped by scoping or policies
type RuleMetrics struct {
	evaluationsTotal   *prometheus.CounterVec
	evaluationDuration *prometheus.HistogramVec
	findingsTotal      *prometheus.CounterVec
	suppressedTotal    *prometheus.CounterVec
}

// NewRuleMetrics creates and registers rule metrics with the provided registry.
func NewRuleMetrics(namespace string, registry *prometheus.Registry) *RuleMetrics {
	rm := &RuleMetrics{
		evaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "rule",
				Name:      "evaluations_total",
				Help:      "Total number of rule evaluations",
			},
			[]string{"rule_id", "status"},
		),

		evaluationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "rule",
				Name:      "evaluation_duration_seconds",
				Help:      "Duration of rule evaluation in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs to 26s
			},
			[]string{"rule_id"},
		),

		findingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "rule",
				Name:      "findings_total",
				Help:      "Total number of findings reported by rules before severity resolution",
			},
			[]string{"rule_id"},
		),

		suppressedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "rule",
				Name:      "suppressed_total",
				Help:      "Total number of findings dropped by rule scoping or annotation policies",
			},
			[]string{"rule_id"},
		),
	}

	registry.MustRegister(
		rm.evaluationsTotal,
		rm.evaluationDuration,
		rm.findingsTotal,
		rm.suppressedTotal,
	)

	return rm
}

// RecordEvaluation records one rule evaluation.
//
// Parameters:
//   - ruleID: Rule identifier
//   - status: "success" or "error"
//   - duration: Time taken by Evaluate
//   - findings: Number of raw findings returned
func (rm *RuleMetrics) RecordEvaluation(ruleID, status string, duration time.Duration, findings int) {
	rm.evaluationsTotal.WithLabelValues(ruleID, status).Inc()
	rm.evaluationDuration.WithLabelValues(ruleID).Observe(duration.Seconds())
	rm.findingsTotal.WithLabelValues(ruleID).Add(float64(findings))
}

// RecordSuppressed records findings of a rule that did not become issues.
func (rm *RuleMetrics) RecordSuppressed(ruleID string, n int) {
	rm.suppressedTotal.WithLabelValues(ruleID).Add(float64(n))
}

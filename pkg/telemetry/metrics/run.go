package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RunMetrics tracks whole audit runs.
//
// Metrics:
//   - docguard_runs_total: Runs by status ("success", "failed", "error")
//   - docguard_run_duration_seconds: Run duration
//   - docguard_elements_scanned: Elements in the last scan context
//   - docguard_issues_total: Reported issues by rule and severity
type RunMetrics struct {
	runsTotal       *prometheus.CounterVec
	runDuration     prometheus.Histogram
	elementsScanned prometheus.Gauge
	issuesTotal     *prometheus.CounterVec
}

// NewRunMetrics creates and registers run metrics with the provided registry.
func NewRunMetrics(namespace string, registry *prometheus.Registry) *RunMetrics {
	rm := &RunMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Total number of audit runs",
			},
			[]string{"status"},
		),

		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Duration of audit runs in seconds, excluding the scan",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
			},
		),

		elementsScanned: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "elements_scanned",
				Help:      "Number of elements in the scan context of the last run",
			},
		),

		issuesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "issues_total",
				Help:      "Total number of reported issues",
			},
			[]string{"rule_id", "severity"},
		),
	}

	registry.MustRegister(
		rm.runsTotal,
		rm.runDuration,
		rm.elementsScanned,
		rm.issuesTotal,
	)

	return rm
}

// RecordRun records a finished run.
func (rm *RunMetrics) RecordRun(status string, duration time.Duration, elements int) {
	rm.runsTotal.WithLabelValues(status).Inc()
	rm.runDuration.Observe(duration.Seconds())
	rm.elementsScanned.Set(float64(elements))
}

// RecordIssue records one reported issue.
func (rm *RunMetrics) RecordIssue(ruleID, severity string) {
	rm.issuesTotal.WithLabelValues(ruleID, severity).Inc()
}

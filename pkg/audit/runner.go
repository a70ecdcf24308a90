package audit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"mercator-hq/docguard/pkg/model"
	"mercator-hq/docguard/pkg/policy/engine"
	"mercator-hq/docguard/pkg/rules"
	"mercator-hq/docguard/pkg/source"
	"mercator-hq/docguard/pkg/telemetry/logging"
	"mercator-hq/docguard/pkg/telemetry/metrics"
	"mercator-hq/docguard/pkg/telemetry/tracing"
)

// Runner evaluates the configured rules against a scan context and resolves
// every finding into an issue. A Runner holds no per-run state and may be
// reused.
type Runner struct {
	cfg      *engine.CompiledConfig
	registry *rules.Registry
	resolver *engine.Resolver

	logger  *slog.Logger
	metrics *metrics.Collector
	tracer  *tracing.Tracer
}

// NewRunner creates a runner for cfg. A nil registry means rules.Default().
func NewRunner(cfg *engine.CompiledConfig, reg *rules.Registry, opts ...Option) *Runner {
	if reg == nil {
		reg = rules.Default()
	}

	r := &Runner{
		cfg:      cfg,
		registry: reg,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.resolver = engine.NewResolver(cfg, r.logger)

	return r
}

// Run evaluates every enabled rule entry in declared order.
//
// An enabled entry without a registered rule fails with *UnknownRuleError.
// A rule rejecting its options fails with *engine.ConfigCompileError and
// any other rule failure with *RuleError. No partial result is returned.
func (r *Runner) Run(ctx context.Context, sc *source.ScanContext) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()

	ctx = logging.WithRunID(ctx, runID)
	ctx, span := r.tracer.Start(ctx, tracing.SpanRun)
	defer span.End()

	res := &Result{RunID: runID, Issues: []model.Issue{}, Stats: newStats(sc.Len())}

	r.logger.DebugContext(ctx, "audit run started",
		"elements", sc.Len(),
		"rules", len(r.cfg.EnabledRules()),
	)

	for _, entry := range r.cfg.EnabledRules() {
		if err := ctx.Err(); err != nil {
			return nil, r.abort(span, start, sc, err)
		}

		rule, ok := r.registry.Lookup(entry.ID)
		if !ok {
			return nil, r.abort(span, start, sc, &UnknownRuleError{RuleID: entry.ID, Registered: r.registeredIDs()})
		}

		issues, findings, err := r.evaluate(ctx, rule, entry, sc)
		if err != nil {
			return nil, r.abort(span, start, sc, err)
		}

		res.Issues = append(res.Issues, issues...)
		res.Stats.Findings += findings
		res.Stats.Suppressed += findings - len(issues)
	}

	_, sortSpan := r.tracer.Start(ctx, tracing.SpanSort)
	sort.SliceStable(res.Issues, func(i, j int) bool {
		a, b := res.Issues[i].Element, res.Issues[j].Element
		if a.SourceFile != b.SourceFile {
			return a.SourceFile < b.SourceFile
		}
		return a.DisplayName < b.DisplayName
	})
	sortSpan.End()

	for _, is := range res.Issues {
		res.Stats.BySeverity[is.Severity]++
	}
	res.Stats.Duration = time.Since(start)

	status := metrics.StatusSuccess
	if res.Failed(r.cfg.FailOn) {
		status = metrics.StatusFailed
	}
	r.metrics.RecordIssues(res.Issues)
	r.metrics.RecordRun(status, res.Stats.Duration, sc.Len())

	tracing.SetRunAttributes(span, runID, sc.Len(), len(res.Issues))
	tracing.SetStatus(span, nil)

	r.logger.DebugContext(ctx, "audit run finished",
		"issues", len(res.Issues),
		"findings", res.Stats.Findings,
		"suppressed", res.Stats.Suppressed,
		"duration_ms", res.Stats.Duration.Milliseconds(),
	)

	return res, nil
}

// evaluate runs one rule and resolves its findings. It returns the issues
// and the raw finding count.
func (r *Runner) evaluate(ctx context.Context, rule rules.Rule, entry engine.CompiledRule, sc *source.ScanContext) ([]model.Issue, int, error) {
	ctx = logging.WithRuleID(ctx, entry.ID)
	ctx, span := r.tracer.Start(ctx, tracing.SpanRule)
	defer span.End()

	start := time.Now()
	findings, err := rule.Evaluate(ctx, sc, entry.Options)
	r.metrics.RecordRuleEvaluation(entry.ID, err, time.Since(start), len(findings))
	if err != nil {
		tracing.SetStatus(span, err)

		var cfgErr *engine.ConfigCompileError
		if errors.As(err, &cfgErr) {
			return nil, 0, err
		}
		return nil, 0, &RuleError{RuleID: entry.ID, Cause: err}
	}

	issues := make([]model.Issue, 0, len(findings))
	for _, f := range findings {
		sev, ok := r.resolver.Resolve(entry, f.Element)
		if !ok {
			continue
		}
		issues = append(issues, model.Issue{
			Severity: sev,
			RuleID:   entry.ID,
			Message:  f.Message,
			Element:  f.Element,
		})
	}

	suppressed := len(findings) - len(issues)
	r.metrics.RecordSuppressed(entry.ID, suppressed)
	tracing.SetRuleAttributes(span, entry.ID, len(findings), suppressed)
	tracing.SetStatus(span, nil)

	r.logger.DebugContext(ctx, "rule evaluated",
		"findings", len(findings),
		"issues", len(issues),
		"suppressed", suppressed,
	)

	return issues, len(findings), nil
}

func (r *Runner) abort(span trace.Span, start time.Time, sc *source.ScanContext, err error) error {
	r.metrics.RecordRun(metrics.StatusError, time.Since(start), sc.Len())
	tracing.SetStatus(span, err)
	return fmt.Errorf("audit run failed: %w", err)
}

func (r *Runner) registeredIDs() []string {
	all := r.registry.All()
	ids := make([]string, 0, len(all))
	for _, rule := range all {
		ids = append(ids, rule.ID())
	}
	return ids
}

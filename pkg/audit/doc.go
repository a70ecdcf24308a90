// Package audit runs rules over a scan context and turns their findings
// into issues.
//
// # Run Flow
//
//	ScanContext
//	    │
//	    ▼
//	for each enabled rule entry, in declared order
//	    │  rules.Registry.Lookup(id)        unknown id ─▶ *UnknownRuleError
//	    │  Rule.Evaluate(ctx, sc, options)  error ─────▶ *RuleError
//	    │
//	    ▼
//	for each finding
//	    │  Resolver.Resolve(entry, element) suppressed ─▶ dropped
//	    ▼
//	stable sort by (source file, display name)
//	    │
//	    ▼
//	Result{RunID, Issues, Stats}
//
// # Usage
//
//	cc, err := engine.Compile(cfg)
//	if err != nil {
//		return err
//	}
//	sc, err := source.NewGoAnalyzer(logger).Scan(ctx, cc.ProjectRoot, cc.Scan)
//	if err != nil {
//		return err
//	}
//
//	runner := audit.NewRunner(cc, rules.Default(), audit.WithLogger(logger))
//	res, err := runner.Run(ctx, sc)
//	if err != nil {
//		return err
//	}
//	if res.Failed(cc.FailOn) {
//		os.Exit(40)
//	}
package audit

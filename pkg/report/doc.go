// Package report renders audit results for people and for machines.
//
// The text format prints one line per issue, sorted the way the audit
// runner sorted them, then the issue count:
//
//	[ERROR] Missing doc comment: shop.Client (doc-presence) - shop/client.go:12
//	[WARN] Missing doc comment: shop.Legacy (doc-presence) - shop/legacy.go:3
//	Issues: 2
//
// The JSON format is a single document:
//
//	{
//	  "run_id": "5f0c…",
//	  "issues": [{"severity": "ERROR", "rule_id": "doc-presence", …}],
//	  "summary": {"total": 2, "by_severity": {"ERROR": 1, "INFO": 0, "WARN": 1}, …},
//	  "fail_on": "ERROR",
//	  "failed": true
//	}
package report

// Package rules defines the Rule contract, the rule registry and the
// built-in documentation rules.
//
// Built-in rules:
//
//	doc-presence     elements must carry a doc comment (option: min_length)
//	doc-name-prefix  doc comments must begin with the element name
//	                 (options: allow_articles, skip_kinds)
//
// Rule options come from the "config" key of a rule entry and are decoded by
// the rule itself. A payload the rule cannot use fails with a
// *engine.ConfigCompileError scoped to rules[<id>].config.
package rules

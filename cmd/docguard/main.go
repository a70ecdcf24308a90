// docguard audits the doc comments of a Go module's API.
//
// It scans the module's packages, runs the configured rules over every
// exported declaration and grades each finding from the configuration:
// base severities per visibility, overrides matched by selectors, and
// policies keyed on annotations such as "Deprecated" or generated files.
//
// Usage:
//
//	# Scan the current module with .docguard.yaml if present
//	docguard scan
//
//	# Scan another directory with an explicit configuration
//	docguard scan ./service --config docguard.yaml
//
//	# JSON report, fail on warnings
//	docguard scan --format json --fail-on WARN
//
//	# Print the configuration JSON Schema
//	docguard schema -o docguard.schema.json
//
// Exit codes: 0 success, 10 configuration, 20 scan, 30 rule, 40 fail-on
// threshold reached, 1 unexpected.
package main

func main() {
	Execute()
}

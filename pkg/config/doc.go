// Package config provides configuration management for docguard.
//
// This package handles loading, validating and describing the audit
// configuration from YAML files with environment variable overrides.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig(".docguard.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides(".docguard.yaml")
//
// The file is decoded on top of DefaultConfig. Mappings merge key by key,
// while lists and scalars replace the default value. Unknown keys are
// rejected.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention DOCGUARD_SECTION_FIELD.
// For example:
//
//   - DOCGUARD_PROJECT_ROOT overrides project_root
//   - DOCGUARD_FAIL_ON_SEVERITY overrides fail_on.severity
//   - DOCGUARD_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// # Validation
//
// Structural validation uses go-playground/validator struct tags. Errors
// carry yaml field paths:
//
//	configuration validation failed with 2 errors:
//	  - defaults.annotation_policies[0].to_severity: field is required when effect is SET_SEVERITY
//	  - rules: duplicate id values are not allowed
//
// Regular expressions are validated when the configuration is compiled by
// the policy engine.
//
// # Schema
//
// Schema derives a JSON Schema from Config for editor tooling.
//
// # Example Configuration
//
//	project_root: .
//	scan:
//	  packages:
//	    exclude: [".*/internal/testutil"]
//	defaults:
//	  severity:
//	    by_visibility:
//	      PUBLIC: ERROR
//	      PROTECTED: WARN
//	    overrides:
//	      - match:
//	          member_kinds: [CONSTANT, VARIABLE]
//	        severity: WARN
//	  annotation_policies:
//	    - annotation_pattern: Generated
//	      effect: SUPPRESS
//	rules:
//	  - id: doc-presence
//	    config:
//	      min_length: 10
//	fail_on:
//	  severity: ERROR
package config

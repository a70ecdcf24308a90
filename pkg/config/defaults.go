package config

import "mercator-hq/docguard/pkg/model"

// Default values for configuration fields.
const (
	DefaultProjectRoot = "."

	DefaultFailOnSeverity = model.SeverityError

	// Rule ids enabled or listed by default.
	DefaultRuleDocPresence   = "doc-presence"
	DefaultRuleDocNamePrefix = "doc-name-prefix"

	// Telemetry defaults
	DefaultLogLevel           = "warn"
	DefaultLogFormat          = "text"
	DefaultMetricsNamespace   = "docguard"
	DefaultTracingServiceName = "docguard"
	DefaultTracingSampleRatio = 1.0

	// Annotation names produced by the Go analyzer for well-known markers.
	AnnotationGenerated  = "Generated"
	AnnotationDeprecated = "Deprecated"
)

// DefaultConfig returns a fresh configuration holding every default value.
// User files are decoded on top of it, so structs and maps merge while lists
// and scalars are replaced.
func DefaultConfig() *Config {
	deprecatedShift := -1
	disabled := false

	return &Config{
		ProjectRoot: DefaultProjectRoot,
		Scan: ScanConfig{
			Types: TypeScanConfig{
				Include: TypeKinds{
					Structs:    true,
					Interfaces: true,
					FuncTypes:  true,
					Defined:    true,
					Aliases:    true,
					Errors:     true,
				},
			},
			Members: MemberScanConfig{
				Include: MemberKinds{
					Fields:       true,
					Methods:      true,
					Constructors: true,
					Functions:    true,
					Constants:    true,
					Variables:    true,
					Getters:      true,
					Setters:      true,
				},
			},
			Visibilities: []model.Visibility{model.VisibilityPublic, model.VisibilityProtected},
		},
		Defaults: DefaultsConfig{
			Severity: SeverityProfile{
				ByVisibility: map[model.Visibility]model.Severity{
					model.VisibilityPublic:    model.SeverityError,
					model.VisibilityProtected: model.SeverityWarn,
				},
			},
			AnnotationPolicies: []AnnotationPolicy{
				{
					AnnotationPattern: AnnotationGenerated,
					Effect:            model.EffectSuppress,
				},
				{
					AnnotationPattern: AnnotationDeprecated,
					Effect:            model.EffectShiftSeverity,
					Shift:             &deprecatedShift,
				},
			},
		},
		Rules: []RuleConfig{
			{ID: DefaultRuleDocPresence},
			{ID: DefaultRuleDocNamePrefix, Enabled: &disabled},
		},
		FailOn: FailOnConfig{Severity: DefaultFailOnSeverity},
		Telemetry: TelemetryConfig{
			Logging: LoggingConfig{
				Level:  DefaultLogLevel,
				Format: DefaultLogFormat,
			},
			Metrics: MetricsConfig{
				Namespace: DefaultMetricsNamespace,
			},
			Tracing: TracingConfig{
				ServiceName: DefaultTracingServiceName,
				SampleRatio: DefaultTracingSampleRatio,
			},
		},
	}
}

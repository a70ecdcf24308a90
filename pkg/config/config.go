package config

import "mercator-hq/docguard/pkg/model"

// Config is the root configuration structure for docguard.
// It describes what to scan, how findings are graded and which rules run.
type Config struct {
	// ProjectRoot is the directory scanned for Go sources. Relative paths
	// are resolved against the working directory.
	// Default: "."
	ProjectRoot string `yaml:"project_root" validate:"required"`

	// Scan restricts which packages, types and members are analyzed.
	Scan ScanConfig `yaml:"scan"`

	// Defaults holds the severity profile and annotation policies shared by
	// every rule.
	Defaults DefaultsConfig `yaml:"defaults"`

	// Rules toggles and configures individual rules. Rule ids must be unique.
	Rules []RuleConfig `yaml:"rules" validate:"unique=ID,dive"`

	// FailOn sets the minimum severity that makes a run fail.
	FailOn FailOnConfig `yaml:"fail_on"`

	// Telemetry contains logging, metrics and tracing settings.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ScanConfig is the scan scope.
type ScanConfig struct {
	// Packages filters packages by import path.
	Packages Filter `yaml:"packages"`

	// Types filters type declarations.
	Types TypeScanConfig `yaml:"types"`

	// Members filters fields, methods, functions and values.
	Members MemberScanConfig `yaml:"members"`

	// Visibilities lists which visibility levels are reported by the analyzer.
	// Default: [PUBLIC, PROTECTED]
	Visibilities []model.Visibility `yaml:"visibilities" validate:"dive,oneof=PUBLIC PROTECTED PACKAGE PRIVATE"`
}

// Filter is a pair of include and exclude regular expression lists.
// Patterns must match the whole value. An empty include list admits
// everything that is not excluded.
type Filter struct {
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// IsZero reports whether the filter has no patterns.
func (f Filter) IsZero() bool {
	return len(f.Include) == 0 && len(f.Exclude) == 0
}

// TypeScanConfig filters type declarations.
type TypeScanConfig struct {
	// Include toggles type categories.
	Include TypeKinds `yaml:"include"`

	// Names is matched against the qualified type name, e.g. "example.com/mod/pkg.Client".
	Names Filter `yaml:"names"`

	// Annotations is matched against the type's directive and marker names.
	Annotations Filter `yaml:"annotations"`
}

// TypeKinds toggles type categories.
type TypeKinds struct {
	Structs    bool `yaml:"structs"`
	Interfaces bool `yaml:"interfaces"`
	FuncTypes  bool `yaml:"func_types"`

	// Defined covers other defined types such as "type Mode int".
	Defined bool `yaml:"defined"`
	Aliases bool `yaml:"aliases"`

	// Errors admits types with an Error() string method even when their
	// underlying category is switched off.
	Errors bool `yaml:"errors"`
}

// MemberScanConfig filters member declarations.
type MemberScanConfig struct {
	// Include toggles member categories.
	Include MemberKinds `yaml:"include"`

	// Names is matched against the simple member name.
	Names Filter `yaml:"names"`

	// Annotations is matched against the member's directive and marker names.
	Annotations Filter `yaml:"annotations"`

	// IncludeInherited reports methods promoted through embedded types
	// declared in the same package.
	IncludeInherited bool `yaml:"include_inherited"`
}

// MemberKinds toggles member categories.
type MemberKinds struct {
	Fields       bool `yaml:"fields"`
	Methods      bool `yaml:"methods"`
	Constructors bool `yaml:"constructors"`
	Functions    bool `yaml:"functions"`
	Constants    bool `yaml:"constants"`
	Variables    bool `yaml:"variables"`

	// Getters and Setters switch accessor methods off independently of Methods.
	Getters bool `yaml:"getters"`
	Setters bool `yaml:"setters"`

	// Embedded covers embedded struct fields.
	Embedded bool `yaml:"embedded"`
}

// DefaultsConfig holds settings shared by all rules.
type DefaultsConfig struct {
	Severity           SeverityProfile    `yaml:"severity"`
	AnnotationPolicies []AnnotationPolicy `yaml:"annotation_policies" validate:"dive"`
}

// SeverityProfile assigns base severities.
type SeverityProfile struct {
	// ByVisibility maps a visibility level to its base severity. Elements
	// whose visibility has no entry are not reported unless the rule entry
	// sets its own severity. Overrides do not apply to them.
	ByVisibility map[model.Visibility]model.Severity `yaml:"by_visibility" validate:"dive,keys,oneof=PUBLIC PROTECTED PACKAGE PRIVATE,endkeys,oneof=INFO WARN ERROR"`

	// Overrides refine the base severity. They are applied in order and the
	// last matching override wins.
	Overrides []SeverityOverride `yaml:"overrides" validate:"dive"`
}

// SeverityOverride sets a severity for elements matching a selector.
type SeverityOverride struct {
	// Match selects elements. An absent selector matches everything.
	Match *Selector `yaml:"match,omitempty"`

	Severity model.Severity `yaml:"severity" validate:"required,oneof=INFO WARN ERROR"`
}

// AnnotationPolicy adjusts findings on elements carrying a matching annotation.
type AnnotationPolicy struct {
	// AnnotationPattern is matched against the element's annotation names.
	AnnotationPattern string `yaml:"annotation_pattern" validate:"required"`

	// Targets limits the policy to some element kinds. Empty means all kinds.
	Targets []model.Kind `yaml:"targets,omitempty" validate:"dive,oneof=TYPE FIELD METHOD CONSTRUCTOR RECORD_COMPONENT FUNCTION CONSTANT VARIABLE"`

	Effect model.Effect `yaml:"effect" validate:"required,oneof=SUPPRESS SUPPRESS_RULES SET_SEVERITY SHIFT_SEVERITY"`

	// Rules lists the rule ids affected by SUPPRESS_RULES. Empty means all rules.
	Rules []string `yaml:"rules,omitempty"`

	// ToSeverity is the new severity. Required for SET_SEVERITY.
	ToSeverity model.Severity `yaml:"to_severity,omitempty" validate:"omitempty,oneof=INFO WARN ERROR"`

	// Shift is the number of steps. Required for SHIFT_SEVERITY. Negative
	// values lower the severity.
	Shift *int `yaml:"shift,omitempty"`
}

// RuleConfig toggles and configures one rule.
type RuleConfig struct {
	ID string `yaml:"id" validate:"required"`

	// Enabled defaults to true when omitted.
	Enabled *bool `yaml:"enabled,omitempty"`

	// Severity replaces the severity computed from defaults when set.
	Severity model.Severity `yaml:"severity,omitempty" validate:"omitempty,oneof=INFO WARN ERROR"`

	// When restricts the rule to matching elements.
	When *Selector `yaml:"when,omitempty"`

	// Config is the rule-specific payload. Each rule decodes its own shape.
	Config RuleOptions `yaml:"config,omitempty"`
}

// IsEnabled reports whether the rule is switched on.
func (r RuleConfig) IsEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}

// Selector is a conjunction of optional dimensions. Empty dimensions do
// not constrain the match.
type Selector struct {
	Targets       []model.Kind         `yaml:"targets,omitempty" validate:"dive,oneof=TYPE FIELD METHOD CONSTRUCTOR RECORD_COMPONENT FUNCTION CONSTANT VARIABLE"`
	Visibility    []model.Visibility   `yaml:"visibility,omitempty" validate:"dive,oneof=PUBLIC PROTECTED PACKAGE PRIVATE"`
	MemberKinds   []model.MemberKind   `yaml:"member_kinds,omitempty" validate:"dive,oneof=FIELD METHOD CONSTRUCTOR RECORD_COMPONENT FUNCTION CONSTANT VARIABLE"`
	AccessorKinds []model.AccessorKind `yaml:"accessor_kinds,omitempty" validate:"dive,oneof=GETTER SETTER BOOLEAN_GETTER"`

	PackagePatterns    []string `yaml:"package_patterns,omitempty"`
	FQNPatterns        []string `yaml:"fqn_patterns,omitempty"`
	SimpleNamePatterns []string `yaml:"simple_name_patterns,omitempty"`
	SignaturePatterns  []string `yaml:"signature_patterns,omitempty"`

	// Annotations requires at least one annotation passing the filter.
	Annotations *Filter `yaml:"annotations,omitempty"`
}

// FailOnConfig sets the failure threshold.
type FailOnConfig struct {
	// Severity is the lowest severity that fails the run.
	// Default: ERROR
	Severity model.Severity `yaml:"severity" validate:"required,oneof=INFO WARN ERROR"`
}

// TelemetryConfig contains observability settings.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig configures structured logging. Logs are written to stderr.
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	// Default: "warn"
	Level string `yaml:"level" validate:"oneof=debug info warn error"`

	// Format is one of "json", "text", "console".
	// Default: "text"
	Format string `yaml:"format" validate:"oneof=json text console"`

	// AddSource includes file and line in log records.
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig configures Prometheus metrics for a run.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled,omitempty"`

	// Namespace prefixes every metric name.
	// Default: "docguard"
	Namespace string `yaml:"namespace"`

	// Textfile is written in Prometheus text format after each run, for
	// node_exporter's textfile collector. Setting it enables metrics.
	Textfile string `yaml:"textfile"`
}

// TracingConfig configures OpenTelemetry tracing.
type TracingConfig struct {
	Enabled bool `yaml:"enabled,omitempty"`

	// Endpoint is the OTLP gRPC collector address, e.g. "localhost:4317".
	Endpoint string `yaml:"endpoint" validate:"required_if=Enabled true"`

	// Insecure disables TLS towards the collector.
	Insecure bool `yaml:"insecure"`

	// ServiceName is reported as service.name.
	// Default: "docguard"
	ServiceName string `yaml:"service_name"`

	// SampleRatio is the fraction of runs traced, between 0 and 1.
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio" validate:"gte=0,lte=1"`
}

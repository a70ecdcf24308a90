package config

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"

	"mercator-hq/docguard/pkg/model"
)

// SchemaID identifies the generated schema.
const SchemaID = "https://mercator-hq.dev/schemas/docguard.schema.json"

// Schema derives a JSON Schema for the configuration file from the Config
// struct. Objects are closed, enum fields list their allowed values and
// rule payloads are free-form objects.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		FieldNameTag:               "yaml",
		RequiredFromJSONSchemaTags: true,
		Mapper:                     schemaMapper,
	}

	s := r.Reflect(&Config{})
	s.ID = jsonschema.ID(SchemaID)
	s.Title = "docguard configuration"
	s.Description = "Configuration for the docguard API documentation auditor."
	return s
}

// SchemaJSON returns the schema as indented JSON.
func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode schema: %w", err)
	}
	return append(data, '\n'), nil
}

var (
	severityType     = reflect.TypeOf(model.Severity(""))
	kindType         = reflect.TypeOf(model.Kind(""))
	memberKindType   = reflect.TypeOf(model.MemberKind(""))
	accessorKindType = reflect.TypeOf(model.AccessorKind(""))
	visibilityType   = reflect.TypeOf(model.Visibility(""))
	effectType       = reflect.TypeOf(model.Effect(""))
	ruleOptionsType  = reflect.TypeOf(RuleOptions{})
)

func schemaMapper(t reflect.Type) *jsonschema.Schema {
	switch t {
	case severityType:
		return enumSchema(model.AllSeverities())
	case kindType:
		return enumSchema(model.AllKinds())
	case memberKindType:
		return enumSchema(model.AllMemberKinds())
	case accessorKindType:
		return enumSchema(model.AllAccessorKinds())
	case visibilityType:
		return enumSchema(model.AllVisibilities())
	case effectType:
		return enumSchema(model.AllEffects())
	case ruleOptionsType:
		return &jsonschema.Schema{
			Type:        "object",
			Description: "Rule-specific options. The accepted keys depend on the rule.",
		}
	}
	return nil
}

func enumSchema[T ~string](values []T) *jsonschema.Schema {
	enum := make([]any, len(values))
	for i, v := range values {
		enum[i] = string(v)
	}
	return &jsonschema.Schema{Type: "string", Enum: enum}
}

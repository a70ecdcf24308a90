package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// RuleOptions is an opaque, rule-specific configuration payload. The loader
// keeps the raw YAML node and each rule decodes the shape it understands.
type RuleOptions struct {
	node *yaml.Node
}

// NewRuleOptions encodes v (typically a map or struct) into a payload.
func NewRuleOptions(v any) (RuleOptions, error) {
	var n yaml.Node
	if err := n.Encode(v); err != nil {
		return RuleOptions{}, fmt.Errorf("failed to encode rule options: %w", err)
	}
	return RuleOptions{node: &n}, nil
}

// UnmarshalYAML stores the node without interpreting it.
func (o *RuleOptions) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode && value.ShortTag() == "!!null" {
		o.node = nil
		return nil
	}
	n := *value
	o.node = &n
	return nil
}

// MarshalYAML returns the stored node.
func (o RuleOptions) MarshalYAML() (interface{}, error) {
	if o.node == nil {
		return nil, nil
	}
	return o.node, nil
}

// IsZero reports whether no payload was given.
func (o RuleOptions) IsZero() bool {
	return o.node == nil
}

// Decode decodes the payload into v. An empty payload leaves v untouched,
// so callers can pre-fill defaults.
func (o RuleOptions) Decode(v any) error {
	if o.node == nil {
		return nil
	}
	return o.node.Decode(v)
}

// Line returns the line of the payload in its source file, or 0.
func (o RuleOptions) Line() int {
	if o.node == nil {
		return 0
	}
	return o.node.Line
}

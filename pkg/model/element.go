package model

import "slices"

// ElementKey is the identity of an element within one scan.
type ElementKey struct {
	Kind          Kind
	QualifiedName string
}

// Element describes one scanned declaration together with the attributes
// selectors match on. Elements are built by a source analyzer and are not
// modified afterwards.
type Element struct {
	// Kind is the declaration kind.
	Kind Kind `json:"kind"`

	// QualifiedName is unique per kind within a scan, e.g.
	// "example.com/mod/pkg.Client.Do".
	QualifiedName string `json:"qualified_name"`

	// DisplayName is the short human-facing name, e.g. "pkg.Client.Do".
	DisplayName string `json:"display_name"`

	// Name is the simple identifier, e.g. "Do".
	Name string `json:"name"`

	// SourceFile is the path of the declaring file relative to the project root.
	SourceFile string `json:"source_file"`

	// Line is the 1-based line of the declaration, 0 when unknown.
	Line int `json:"line,omitempty"`

	Visibility    Visibility     `json:"visibility"`
	MemberKinds   []MemberKind   `json:"member_kinds,omitempty"`
	AccessorKinds []AccessorKind `json:"accessor_kinds,omitempty"`

	// Package is the import path of the declaring package.
	Package string `json:"package"`

	// Signature is a simplified, resolution-free rendering, e.g. "Do(context.Context, *Request) error".
	Signature string `json:"signature,omitempty"`

	// Annotations holds the directive and marker names attached to the declaration.
	Annotations []string `json:"annotations,omitempty"`
}

// Key returns the element identity.
func (e Element) Key() ElementKey {
	return ElementKey{Kind: e.Kind, QualifiedName: e.QualifiedName}
}

// HasMemberKind reports whether the element carries member kind k.
func (e Element) HasMemberKind(k MemberKind) bool {
	return slices.Contains(e.MemberKinds, k)
}

// HasAccessorKind reports whether the element carries accessor kind k.
func (e Element) HasAccessorKind(k AccessorKind) bool {
	return slices.Contains(e.AccessorKinds, k)
}

// Issue is a resolved finding ready for reporting.
type Issue struct {
	Severity Severity `json:"severity"`
	RuleID   string   `json:"rule_id"`
	Message  string   `json:"message"`
	Element  Element  `json:"element"`
}

package model

// Kind identifies what sort of declaration an element is.
type Kind string

const (
	KindType            Kind = "TYPE"
	KindField           Kind = "FIELD"
	KindMethod          Kind = "METHOD"
	KindConstructor     Kind = "CONSTRUCTOR"
	KindRecordComponent Kind = "RECORD_COMPONENT"
	KindFunction        Kind = "FUNCTION"
	KindConstant        Kind = "CONSTANT"
	KindVariable        Kind = "VARIABLE"
)

// AllKinds returns every element kind.
func AllKinds() []Kind {
	return []Kind{
		KindType, KindField, KindMethod, KindConstructor,
		KindRecordComponent, KindFunction, KindConstant, KindVariable,
	}
}

// MemberKind classifies a member declaration. An element may carry more
// than one, for example a constructor is also a function.
type MemberKind string

const (
	MemberField           MemberKind = "FIELD"
	MemberMethod          MemberKind = "METHOD"
	MemberConstructor     MemberKind = "CONSTRUCTOR"
	MemberRecordComponent MemberKind = "RECORD_COMPONENT"
	MemberFunction        MemberKind = "FUNCTION"
	MemberConstant        MemberKind = "CONSTANT"
	MemberVariable        MemberKind = "VARIABLE"
)

// AllMemberKinds returns every member kind.
func AllMemberKinds() []MemberKind {
	return []MemberKind{
		MemberField, MemberMethod, MemberConstructor, MemberRecordComponent,
		MemberFunction, MemberConstant, MemberVariable,
	}
}

// AccessorKind classifies accessor-style methods.
type AccessorKind string

const (
	AccessorGetter        AccessorKind = "GETTER"
	AccessorSetter        AccessorKind = "SETTER"
	AccessorBooleanGetter AccessorKind = "BOOLEAN_GETTER"
)

// AllAccessorKinds returns every accessor kind.
func AllAccessorKinds() []AccessorKind {
	return []AccessorKind{AccessorGetter, AccessorSetter, AccessorBooleanGetter}
}

// Visibility is how widely an element can be referenced.
//
// For Go sources PUBLIC means exported from an importable package,
// PROTECTED means exported below an internal/ directory and PACKAGE means
// unexported (or declared in package main). PRIVATE is accepted in
// configuration for completeness.
type Visibility string

const (
	VisibilityPublic    Visibility = "PUBLIC"
	VisibilityProtected Visibility = "PROTECTED"
	VisibilityPackage   Visibility = "PACKAGE"
	VisibilityPrivate   Visibility = "PRIVATE"
)

// AllVisibilities returns every visibility level, widest first.
func AllVisibilities() []Visibility {
	return []Visibility{VisibilityPublic, VisibilityProtected, VisibilityPackage, VisibilityPrivate}
}

// Effect is what an annotation policy does to a matching finding.
type Effect string

const (
	// EffectSuppress drops the finding and stops policy processing.
	EffectSuppress Effect = "SUPPRESS"
	// EffectSuppressRules drops findings of the listed rules (all rules when the list is empty).
	EffectSuppressRules Effect = "SUPPRESS_RULES"
	// EffectSetSeverity replaces the running severity.
	EffectSetSeverity Effect = "SET_SEVERITY"
	// EffectShiftSeverity moves the running severity along the scale.
	EffectShiftSeverity Effect = "SHIFT_SEVERITY"
)

// AllEffects returns every annotation policy effect.
func AllEffects() []Effect {
	return []Effect{EffectSuppress, EffectSuppressRules, EffectSetSeverity, EffectShiftSeverity}
}

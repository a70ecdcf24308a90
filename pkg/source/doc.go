// Package source scans Go source trees and describes their declarations as
// model.Element values together with their doc comments.
//
// The analyzer works on syntax only. It walks the project root, parses every
// non-test Go file with go/parser and resolves import paths from go.mod. No
// build or type checking takes place, so signatures are rendered as written.
//
// Declarations map onto element kinds as follows:
//
//	type T ...               TYPE
//	struct field             FIELD
//	embedded struct field    RECORD_COMPONENT
//	method, interface method METHOD
//	func NewT(...) *T        CONSTRUCTOR
//	other top-level func     FUNCTION
//	const / var              CONSTANT / VARIABLE
//
// Exported identifiers are PUBLIC, or PROTECTED when the package lives below
// an internal directory. Unexported identifiers and everything in package
// main are PACKAGE. Members never rank above their owner type.
package source

package source

import (
	"go/ast"
	"go/token"
	"go/types"
	"strings"
	"unicode"
	"unicode/utf8"

	"mercator-hq/docguard/pkg/config"
	"mercator-hq/docguard/pkg/model"
	"mercator-hq/docguard/pkg/policy/engine"
)

// Extract builds the elements of one package from its parsed files. All
// files must belong to the same package. Source locations are taken from
// fset, so callers control whether they are relative or absolute.
//
// Filters in scope that are nil admit everything.
func Extract(fset *token.FileSet, files []*ast.File, importPath string, scope engine.CompiledScan) *ScanContext {
	x := &extractor{
		fset:       fset,
		importPath: importPath,
		scope:      scope,
		types:      make(map[string]*typeDecl),
		methods:    make(map[string][]methodDecl),
		out:        NewScanContext(nil, nil),
		seen:       make(map[model.ElementKey]bool),
	}
	if len(files) == 0 {
		return x.out
	}
	x.pkgName = files[0].Name.Name
	x.index(files)

	for _, td := range x.order {
		x.emitType(td)
	}
	for _, f := range files {
		gen := ast.IsGenerated(f)
		for _, decl := range f.Decls {
			switch d := decl.(type) {
			case *ast.FuncDecl:
				if d.Recv == nil {
					x.emitFunc(d, gen)
				}
			case *ast.GenDecl:
				if d.Tok == token.CONST || d.Tok == token.VAR {
					x.emitValues(d, gen)
				}
			}
		}
	}
	return x.out
}

type typeDecl struct {
	spec      *ast.TypeSpec
	decl      *ast.GenDecl
	generated bool
	vis       model.Visibility
	inScope   bool
}

type methodDecl struct {
	fn        *ast.FuncDecl
	generated bool
}

type extractor struct {
	fset       *token.FileSet
	importPath string
	pkgName    string
	scope      engine.CompiledScan

	types   map[string]*typeDecl
	order   []*typeDecl
	methods map[string][]methodDecl

	out  *ScanContext
	seen map[model.ElementKey]bool
}

// index records type declarations and methods by receiver so that members
// can be emitted together with their owner.
func (x *extractor) index(files []*ast.File) {
	for _, f := range files {
		gen := ast.IsGenerated(f)
		for _, decl := range f.Decls {
			switch d := decl.(type) {
			case *ast.GenDecl:
				if d.Tok != token.TYPE {
					continue
				}
				for _, spec := range d.Specs {
					ts := spec.(*ast.TypeSpec)
					if _, dup := x.types[ts.Name.Name]; dup {
						continue
					}
					td := &typeDecl{
						spec:      ts,
						decl:      d,
						generated: gen,
						vis:       x.visibility(ts.Name.Name),
					}
					x.types[ts.Name.Name] = td
					x.order = append(x.order, td)
				}
			case *ast.FuncDecl:
				if d.Recv == nil || len(d.Recv.List) == 0 {
					continue
				}
				recv := baseTypeName(d.Recv.List[0].Type)
				x.methods[recv] = append(x.methods[recv], methodDecl{fn: d, generated: gen})
			}
		}
	}
}

func (x *extractor) emitType(td *typeDecl) {
	ts := td.spec
	name := ts.Name.Name
	doc := specDoc(ts.Doc, td.decl, nil)

	el := x.element(model.KindType, name, name, ts.Name.Pos(), td.vis)
	el.Signature = typeSignature(ts)
	el.Annotations = annotations(doc, td.generated)

	td.inScope = x.typeKindAllowed(ts) &&
		x.scope.AllowsVisibility(el.Visibility) &&
		(x.scope.TypeNames == nil || x.scope.TypeNames.Matches(el.QualifiedName)) &&
		x.scope.TypeAnnotations.Admits(el.Annotations)
	if !td.inScope {
		return
	}
	x.add(el, doc)

	switch t := ts.Type.(type) {
	case *ast.StructType:
		x.emitFields(td, t)
	case *ast.InterfaceType:
		x.emitInterfaceMethods(td, t)
	}

	declared := make(map[string]bool)
	for _, m := range x.methods[name] {
		declared[m.fn.Name.Name] = true
		x.emitMethod(td, m.fn, m.generated, m.fn.Name.Pos())
	}

	if x.scope.IncludeInherited {
		if st, ok := ts.Type.(*ast.StructType); ok {
			x.emitPromoted(td, st, declared)
		}
	}
}

func (x *extractor) typeKindAllowed(ts *ast.TypeSpec) bool {
	k := x.scope.TypeKinds
	var on bool
	if ts.Assign.IsValid() {
		on = k.Aliases
	} else {
		switch ts.Type.(type) {
		case *ast.StructType:
			on = k.Structs
		case *ast.InterfaceType:
			on = k.Interfaces
		case *ast.FuncType:
			on = k.FuncTypes
		default:
			on = k.Defined
		}
	}
	if !on && k.Errors && x.implementsError(ts.Name.Name) {
		on = true
	}
	return on
}

// implementsError reports whether the type declares Error() string.
func (x *extractor) implementsError(typeName string) bool {
	for _, m := range x.methods[typeName] {
		ft := m.fn.Type
		if m.fn.Name.Name != "Error" || fieldCount(ft.Params) != 0 || fieldCount(ft.Results) != 1 {
			continue
		}
		if id, ok := ft.Results.List[0].Type.(*ast.Ident); ok && id.Name == "string" {
			return true
		}
	}
	return false
}

func (x *extractor) emitFields(td *typeDecl, st *ast.StructType) {
	owner := td.spec.Name.Name
	inc := x.scope.MemberKinds

	for _, field := range st.Fields.List {
		doc := firstGroup(field.Doc, field.Comment)
		typ := types.ExprString(field.Type)

		if len(field.Names) == 0 {
			if !inc.Embedded {
				continue
			}
			name := baseTypeName(field.Type)
			if name == "" {
				continue
			}
			el := x.element(model.KindRecordComponent, owner+"."+name, name, field.Type.Pos(), minVisibility(x.visibility(name), td.vis))
			el.MemberKinds = []model.MemberKind{model.MemberRecordComponent}
			el.Signature = typ
			el.Annotations = annotations(doc, td.generated)
			x.addMember(el, doc)
			continue
		}

		if !inc.Fields {
			continue
		}
		for _, id := range field.Names {
			if id.Name == "_" {
				continue
			}
			el := x.element(model.KindField, owner+"."+id.Name, id.Name, id.Pos(), minVisibility(x.visibility(id.Name), td.vis))
			el.MemberKinds = []model.MemberKind{model.MemberField}
			el.Signature = id.Name + " " + typ
			el.Annotations = annotations(doc, td.generated)
			x.addMember(el, doc)
		}
	}
}

func (x *extractor) emitInterfaceMethods(td *typeDecl, it *ast.InterfaceType) {
	if !x.scope.MemberKinds.Methods {
		return
	}
	owner := td.spec.Name.Name
	for _, m := range it.Methods.List {
		ft, ok := m.Type.(*ast.FuncType)
		if !ok || len(m.Names) == 0 {
			continue
		}
		doc := firstGroup(m.Doc, m.Comment)
		for _, id := range m.Names {
			el := x.element(model.KindMethod, owner+"."+id.Name, id.Name, id.Pos(), minVisibility(x.visibility(id.Name), td.vis))
			el.MemberKinds = []model.MemberKind{model.MemberMethod}
			el.AccessorKinds = x.accessorKinds(id.Name, ft, nil)
			el.Signature = funcSignature(id.Name, ft)
			el.Annotations = annotations(doc, td.generated)
			if x.methodAllowed(el) {
				x.addMember(el, doc)
			}
		}
	}
}

// emitMethod emits fn as a method of td. pos is the reported location,
// which differs from fn for promoted methods.
func (x *extractor) emitMethod(td *typeDecl, fn *ast.FuncDecl, generated bool, pos token.Pos) {
	if !x.scope.MemberKinds.Methods {
		return
	}
	owner := td.spec.Name.Name
	name := fn.Name.Name
	doc := fn.Doc

	el := x.element(model.KindMethod, owner+"."+name, name, pos, minVisibility(x.visibility(name), td.vis))
	el.MemberKinds = []model.MemberKind{model.MemberMethod}
	el.AccessorKinds = x.accessorKinds(name, fn.Type, x.fieldNames(td))
	el.Signature = funcSignature(name, fn.Type)
	el.Annotations = annotations(doc, generated)
	if x.methodAllowed(el) {
		x.addMember(el, doc)
	}
}

// emitPromoted emits methods promoted from embedded types declared in the
// same package. Only one level of embedding is followed.
func (x *extractor) emitPromoted(td *typeDecl, st *ast.StructType, declared map[string]bool) {
	for _, field := range st.Fields.List {
		if len(field.Names) != 0 {
			continue
		}
		embedded := baseTypeName(field.Type)
		if _, local := x.types[embedded]; !local {
			continue
		}
		for _, m := range x.methods[embedded] {
			name := m.fn.Name.Name
			if declared[name] {
				continue
			}
			declared[name] = true
			x.emitMethod(td, m.fn, m.generated, m.fn.Name.Pos())
		}
	}
}

func (x *extractor) methodAllowed(el model.Element) bool {
	inc := x.scope.MemberKinds
	if !inc.Getters && el.HasAccessorKind(model.AccessorGetter) {
		return false
	}
	if !inc.Setters && el.HasAccessorKind(model.AccessorSetter) {
		return false
	}
	return true
}

func (x *extractor) emitFunc(fn *ast.FuncDecl, generated bool) {
	name := fn.Name.Name
	if name == "init" || name == "_" || (name == "main" && x.pkgName == "main") {
		return
	}

	kind, members := model.KindFunction, []model.MemberKind{model.MemberFunction}
	allowed := x.scope.MemberKinds.Functions
	if x.isConstructor(fn) {
		kind = model.KindConstructor
		members = []model.MemberKind{model.MemberConstructor, model.MemberFunction}
		allowed = x.scope.MemberKinds.Constructors
	}
	if !allowed {
		return
	}

	el := x.element(kind, name, name, fn.Name.Pos(), x.visibility(name))
	el.MemberKinds = members
	el.Signature = funcSignature(name, fn.Type)
	el.Annotations = annotations(fn.Doc, generated)
	x.addMember(el, fn.Doc)
}

// isConstructor reports whether fn is named New... and returns a type
// declared in this package as its first result.
func (x *extractor) isConstructor(fn *ast.FuncDecl) bool {
	if !strings.HasPrefix(fn.Name.Name, "New") || fieldCount(fn.Type.Results) == 0 {
		return false
	}
	_, ok := x.types[baseTypeName(fn.Type.Results.List[0].Type)]
	return ok
}

func (x *extractor) emitValues(d *ast.GenDecl, generated bool) {
	kind, member, keyword := model.KindVariable, model.MemberVariable, "var"
	allowed := x.scope.MemberKinds.Variables
	if d.Tok == token.CONST {
		kind, member, keyword = model.KindConstant, model.MemberConstant, "const"
		allowed = x.scope.MemberKinds.Constants
	}
	if !allowed {
		return
	}

	for _, spec := range d.Specs {
		vs := spec.(*ast.ValueSpec)
		doc := specDoc(vs.Doc, d, vs.Comment)
		for _, id := range vs.Names {
			if id.Name == "_" {
				continue
			}
			el := x.element(kind, id.Name, id.Name, id.Pos(), x.visibility(id.Name))
			el.MemberKinds = []model.MemberKind{member}
			el.Signature = keyword + " " + id.Name
			if vs.Type != nil {
				el.Signature += " " + types.ExprString(vs.Type)
			}
			el.Annotations = annotations(doc, generated)
			x.addMember(el, doc)
		}
	}
}

// element fills the identity and location fields. local is the name
// relative to the package, e.g. "Client.Do".
func (x *extractor) element(kind model.Kind, local, name string, pos token.Pos, vis model.Visibility) model.Element {
	p := x.fset.Position(pos)
	return model.Element{
		Kind:          kind,
		QualifiedName: x.importPath + "." + local,
		DisplayName:   x.pkgName + "." + local,
		Name:          name,
		SourceFile:    p.Filename,
		Line:          p.Line,
		Visibility:    vis,
		Package:       x.importPath,
	}
}

func (x *extractor) addMember(el model.Element, doc *ast.CommentGroup) {
	s := x.scope
	if !s.AllowsVisibility(el.Visibility) {
		return
	}
	if s.MemberNames != nil && !s.MemberNames.Matches(el.Name) {
		return
	}
	if !s.MemberAnnotations.Admits(el.Annotations) {
		return
	}
	x.add(el, doc)
}

func (x *extractor) add(el model.Element, doc *ast.CommentGroup) {
	key := el.Key()
	if x.seen[key] {
		return
	}
	x.seen[key] = true
	x.out.Elements = append(x.out.Elements, el)
	if doc != nil {
		x.out.docs[key] = doc.Text()
	}
}

// visibility maps Go export rules onto the visibility levels. Exported
// names in package main or below an internal directory are not importable
// from arbitrary modules, so they rank lower than PUBLIC.
func (x *extractor) visibility(name string) model.Visibility {
	switch {
	case !token.IsExported(name), x.pkgName == "main":
		return model.VisibilityPackage
	case isInternal(x.importPath):
		return model.VisibilityProtected
	default:
		return model.VisibilityPublic
	}
}

// fieldNames returns the named fields of a struct type, or nil.
func (x *extractor) fieldNames(td *typeDecl) map[string]bool {
	st, ok := td.spec.Type.(*ast.StructType)
	if !ok {
		return nil
	}
	names := make(map[string]bool)
	for _, f := range st.Fields.List {
		for _, id := range f.Names {
			names[strings.ToLower(id.Name)] = true
		}
	}
	return names
}

// accessorKinds classifies getters and setters.
//
// A getter takes no arguments, returns one value and is either named GetX
// or named after a field of its receiver. A getter returning bool, or an
// IsX/HasX method returning bool, is also a boolean getter. A setter is
// SetX with one argument returning nothing or an error.
func (x *extractor) accessorKinds(name string, ft *ast.FuncType, fields map[string]bool) []model.AccessorKind {
	params, results := fieldCount(ft.Params), fieldCount(ft.Results)

	if params == 0 && results == 1 {
		returnsBool := isIdent(ft.Results.List[0].Type, "bool")
		getter := hasWordPrefix(name, "Get") || fields[strings.ToLower(name)]
		if returnsBool && (hasWordPrefix(name, "Is") || hasWordPrefix(name, "Has")) {
			getter = true
		}
		switch {
		case getter && returnsBool:
			return []model.AccessorKind{model.AccessorGetter, model.AccessorBooleanGetter}
		case getter:
			return []model.AccessorKind{model.AccessorGetter}
		}
		return nil
	}

	if hasWordPrefix(name, "Set") && params == 1 &&
		(results == 0 || (results == 1 && isIdent(ft.Results.List[0].Type, "error"))) {
		return []model.AccessorKind{model.AccessorSetter}
	}
	return nil
}

func isInternal(importPath string) bool {
	return importPath == "internal" ||
		strings.HasPrefix(importPath, "internal/") ||
		strings.HasSuffix(importPath, "/internal") ||
		strings.Contains(importPath, "/internal/")
}

func minVisibility(a, b model.Visibility) model.Visibility {
	if visibilityRank(a) < visibilityRank(b) {
		return a
	}
	return b
}

func visibilityRank(v model.Visibility) int {
	switch v {
	case model.VisibilityPublic:
		return 3
	case model.VisibilityProtected:
		return 2
	case model.VisibilityPackage:
		return 1
	default:
		return 0
	}
}

// baseTypeName strips pointers, type arguments and package qualifiers.
func baseTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return baseTypeName(t.X)
	case *ast.IndexExpr:
		return baseTypeName(t.X)
	case *ast.IndexListExpr:
		return baseTypeName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.ParenExpr:
		return baseTypeName(t.X)
	}
	return ""
}

// fieldCount counts parameters or results, expanding grouped names.
func fieldCount(fl *ast.FieldList) int {
	if fl == nil {
		return 0
	}
	n := 0
	for _, f := range fl.List {
		if len(f.Names) == 0 {
			n++
		} else {
			n += len(f.Names)
		}
	}
	return n
}

func isIdent(expr ast.Expr, name string) bool {
	id, ok := expr.(*ast.Ident)
	return ok && id.Name == name
}

// hasWordPrefix reports whether name is prefix followed by an upper-case
// letter, so "Settle" is not a setter.
func hasWordPrefix(name, prefix string) bool {
	if !strings.HasPrefix(name, prefix) || len(name) == len(prefix) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(name[len(prefix):])
	return unicode.IsUpper(r)
}

// typeSignature renders a declaration header such as "type Client struct"
// or "type Mode int".
func typeSignature(ts *ast.TypeSpec) string {
	var sb strings.Builder
	sb.WriteString("type ")
	sb.WriteString(ts.Name.Name)
	if ts.TypeParams != nil {
		sb.WriteString(typeParams(ts.TypeParams))
	}
	if ts.Assign.IsValid() {
		sb.WriteString(" =")
	}
	sb.WriteString(" ")
	switch ts.Type.(type) {
	case *ast.StructType:
		sb.WriteString("struct")
	case *ast.InterfaceType:
		sb.WriteString("interface")
	default:
		sb.WriteString(types.ExprString(ts.Type))
	}
	return sb.String()
}

func typeParams(fl *ast.FieldList) string {
	var parts []string
	for _, f := range fl.List {
		names := make([]string, 0, len(f.Names))
		for _, n := range f.Names {
			names = append(names, n.Name)
		}
		parts = append(parts, strings.Join(names, ", ")+" "+types.ExprString(f.Type))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// funcSignature renders "Name(T1, T2) R" or "Name(T1) (R1, R2)". Parameter
// names are dropped; types are rendered as written.
func funcSignature(name string, ft *ast.FuncType) string {
	var sb strings.Builder
	sb.WriteString(name)
	if ft.TypeParams != nil {
		sb.WriteString(typeParams(ft.TypeParams))
	}
	sb.WriteString("(")
	sb.WriteString(strings.Join(fieldTypes(ft.Params), ", "))
	sb.WriteString(")")

	results := fieldTypes(ft.Results)
	switch len(results) {
	case 0:
	case 1:
		sb.WriteString(" " + results[0])
	default:
		sb.WriteString(" (" + strings.Join(results, ", ") + ")")
	}
	return sb.String()
}

func fieldTypes(fl *ast.FieldList) []string {
	if fl == nil {
		return nil
	}
	var out []string
	for _, f := range fl.List {
		t := types.ExprString(f.Type)
		n := max(len(f.Names), 1)
		for range n {
			out = append(out, t)
		}
	}
	return out
}

// specDoc picks the doc of a spec: its own doc comment, then the doc of
// the enclosing declaration, then a trailing line comment.
func specDoc(doc *ast.CommentGroup, decl *ast.GenDecl, trailing *ast.CommentGroup) *ast.CommentGroup {
	return firstGroup(doc, decl.Doc, trailing)
}

func firstGroup(groups ...*ast.CommentGroup) *ast.CommentGroup {
	for _, g := range groups {
		if g != nil && len(g.List) > 0 {
			return g
		}
	}
	return nil
}

// annotations collects directive names ("go:generate", "nolint:errcheck")
// and the Deprecated and Generated markers.
func annotations(doc *ast.CommentGroup, generated bool) []string {
	var out []string
	if doc != nil {
		for _, c := range doc.List {
			if d, ok := directive(c.Text); ok {
				out = append(out, d)
			}
		}
		if isDeprecated(doc.Text()) {
			out = append(out, config.AnnotationDeprecated)
		}
	}
	if generated {
		out = append(out, config.AnnotationGenerated)
	}
	return out
}

// directive returns the name of a "//name:arg" comment line.
func directive(text string) (string, bool) {
	if !strings.HasPrefix(text, "//") {
		return "", false
	}
	body := text[2:]
	fields := strings.Fields(body)
	if len(fields) == 0 || body[0] == ' ' {
		return "", false
	}
	word := fields[0]
	colon := strings.IndexByte(word, ':')
	if colon <= 0 || colon == len(word)-1 {
		return "", false
	}
	for _, r := range word[:colon] {
		if !('a' <= r && r <= 'z' || '0' <= r && r <= '9') {
			return "", false
		}
	}
	if r := word[colon+1]; !('a' <= r && r <= 'z') {
		return "", false
	}
	return word, true
}

// isDeprecated reports whether text has a paragraph starting with
// "Deprecated: ".
func isDeprecated(text string) bool {
	prevBlank := true
	for _, line := range strings.Split(text, "\n") {
		if prevBlank && strings.HasPrefix(line, "Deprecated: ") {
			return true
		}
		prevBlank = strings.TrimSpace(line) == ""
	}
	return false
}

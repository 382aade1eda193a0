// Package cparse turns C source text into the low-level graph. Like the
// Python side, parsing is delegated to tree-sitter; this package walks
// the syntax tree and lifts function definitions and struct declarations,
// of which the function definitions are what the unifier consumes.
// CPython API types such as PyObject* and PyListObject* are recognized
// and annotated so compatibility checks can see through the void-pointer
// surface.
package cparse

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"

	"pybridge/internal/hir"
)

// SyntaxError reports the first syntax error tree-sitter found.
type SyntaxError struct {
	File   string
	Line   int
	Column int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: C syntax error", e.File, e.Line, e.Column)
}

// ParseC parses C source and lifts it into the low-level graph.
func ParseC(source []byte, filename string) (*hir.CTranslationUnit, error) {
	root, err := parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	if root.HasError() {
		return nil, syntaxError(root, filename)
	}

	l := &lifter{source: source, filename: filename, nextID: 1}
	return l.translationUnit(root), nil
}

// DumpAST renders the concrete syntax tree for inspection.
func DumpAST(source []byte, filename string) (string, error) {
	root, err := parse(source)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", filename, err)
	}
	var b strings.Builder
	dumpNode(&b, root, source, 0)
	return b.String(), nil
}

func parse(source []byte) (*sitter.Node, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(c.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, err
	}
	return tree.RootNode(), nil
}

func syntaxError(root *sitter.Node, filename string) error {
	if bad := firstErrorNode(root); bad != nil {
		pt := bad.StartPoint()
		return &SyntaxError{File: filename, Line: int(pt.Row) + 1, Column: int(pt.Column) + 1}
	}
	return &SyntaxError{File: filename, Line: 1, Column: 1}
}

func firstErrorNode(node *sitter.Node) *sitter.Node {
	if node.Type() == "ERROR" || node.IsMissing() {
		return node
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if found := firstErrorNode(node.Child(i)); found != nil {
			return found
		}
	}
	return nil
}

func dumpNode(b *strings.Builder, node *sitter.Node, source []byte, depth int) {
	pt := node.StartPoint()
	b.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(b, "%s [%d:%d]", node.Type(), pt.Row+1, pt.Column+1)
	if node.Type() == "identifier" || node.Type() == "type_identifier" {
		fmt.Fprintf(b, " %q", node.Content(source))
	}
	b.WriteString("\n")
	for i := 0; i < int(node.NamedChildCount()); i++ {
		dumpNode(b, node.NamedChild(i), source, depth+1)
	}
}

type lifter struct {
	source   []byte
	filename string
	nextID   hir.NodeID
}

func (l *lifter) translationUnit(root *sitter.Node) *hir.CTranslationUnit {
	unit := &hir.CTranslationUnit{
		Name:     unitName(l.filename),
		Metadata: hir.MetadataAt(l.location(root)),
	}
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		switch child.Type() {
		case "function_definition":
			if fn := l.function(child); fn != nil {
				unit.Decls = append(unit.Decls, fn)
			}
		case "struct_specifier":
			if st := l.structDecl(child, ""); st != nil {
				unit.Decls = append(unit.Decls, st)
			}
		case "type_definition":
			spec := child.ChildByFieldName("type")
			if spec == nil || spec.Type() != "struct_specifier" {
				continue
			}
			typedefName := ""
			if d := child.ChildByFieldName("declarator"); d != nil {
				typedefName = d.Content(l.source)
			}
			if st := l.structDecl(spec, typedefName); st != nil {
				unit.Decls = append(unit.Decls, st)
			}
		}
	}
	return unit
}

// function lifts a function_definition. The declarator may be nested
// under pointer declarators for pointer-returning functions, so the walk
// peels those before reading the name and parameter list.
func (l *lifter) function(node *sitter.Node) *hir.CFunction {
	fn := &hir.CFunction{
		NodeID:     l.id(),
		Visibility: hir.Public,
		Metadata:   hir.MetadataAt(l.location(node)),
	}

	pointerDepth := 0
	decl := node.ChildByFieldName("declarator")
	for decl != nil && decl.Type() == "pointer_declarator" {
		pointerDepth++
		decl = decl.ChildByFieldName("declarator")
	}
	if decl == nil || decl.Type() != "function_declarator" {
		return nil
	}

	if name := decl.ChildByFieldName("declarator"); name != nil {
		fn.Name = name.Content(l.source)
	}
	fn.ReturnType = l.typeOf(node.ChildByFieldName("type"), pointerDepth)

	if params := decl.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			p := params.NamedChild(i)
			if p.Type() != "parameter_declaration" {
				continue
			}
			if param, ok := l.parameter(p); ok {
				fn.Params = append(fn.Params, param)
			}
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == "storage_class_specifier" {
			switch child.Content(l.source) {
			case "static":
				fn.Storage = hir.StorageStatic
				fn.Visibility = hir.ModuleLevel
			case "extern":
				fn.Storage = hir.StorageExtern
			}
		}
	}

	if body := node.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			if stmt := l.statement(body.NamedChild(i)); stmt != nil {
				fn.Body = append(fn.Body, stmt)
			}
		}
	}
	return fn
}

// structDecl lifts a struct_specifier with a body. The name comes from
// the typedef when one wraps the specifier, falling back to the struct
// tag; a bodiless specifier is a forward reference and lifts to nothing.
func (l *lifter) structDecl(node *sitter.Node, typedefName string) *hir.CStructDecl {
	body := node.ChildByFieldName("body")
	if body == nil {
		return nil
	}

	st := &hir.CStructDecl{
		NodeID:   l.id(),
		Metadata: hir.MetadataAt(l.location(node)),
	}
	if name := node.ChildByFieldName("name"); name != nil {
		st.Name = name.Content(l.source)
	}
	if typedefName != "" {
		st.Name = typedefName
	}

	for i := 0; i < int(body.NamedChildCount()); i++ {
		f := body.NamedChild(i)
		if f.Type() != "field_declaration" {
			continue
		}
		pointerDepth := 0
		decl := f.ChildByFieldName("declarator")
		for decl != nil && decl.Type() == "pointer_declarator" {
			pointerDepth++
			decl = decl.ChildByFieldName("declarator")
		}
		field := hir.CField{Type: l.typeOf(f.ChildByFieldName("type"), pointerDepth)}
		if decl != nil {
			field.Name = decl.Content(l.source)
		}
		st.Fields = append(st.Fields, field)
	}
	return st
}

func (l *lifter) parameter(node *sitter.Node) (hir.CParam, bool) {
	pointerDepth := 0
	decl := node.ChildByFieldName("declarator")
	for decl != nil && decl.Type() == "pointer_declarator" {
		pointerDepth++
		decl = decl.ChildByFieldName("declarator")
	}

	param := hir.CParam{Type: l.typeOf(node.ChildByFieldName("type"), pointerDepth)}
	if decl != nil && decl.Type() == "identifier" {
		param.Name = decl.Content(l.source)
	}
	if param.Name == "" && pointerDepth == 0 {
		// a bare "void" parameter list, not a real parameter
		if t := node.ChildByFieldName("type"); t != nil && t.Content(l.source) == "void" {
			return hir.CParam{}, false
		}
	}
	return param, true
}

func (l *lifter) statement(node *sitter.Node) hir.CHIR {
	switch node.Type() {
	case "return_statement":
		ret := &hir.CReturn{NodeID: l.id(), Metadata: hir.MetadataAt(l.location(node))}
		if node.NamedChildCount() > 0 {
			ret.Value = l.expression(node.NamedChild(0))
		}
		return ret
	case "expression_statement":
		if node.NamedChildCount() > 0 {
			return l.expression(node.NamedChild(0))
		}
		return nil
	default:
		return nil
	}
}

func (l *lifter) expression(node *sitter.Node) hir.CHIR {
	switch node.Type() {
	case "call_expression":
		call := &hir.CCall{NodeID: l.id(), Metadata: hir.MetadataAt(l.location(node))}
		if fn := node.ChildByFieldName("function"); fn != nil {
			call.Callee = l.expression(fn)
		}
		if args := node.ChildByFieldName("arguments"); args != nil {
			for i := 0; i < int(args.NamedChildCount()); i++ {
				if arg := l.expression(args.NamedChild(i)); arg != nil {
					call.Args = append(call.Args, arg)
				}
			}
		}
		return call
	case "identifier":
		return &hir.CVariable{
			NodeID:   l.id(),
			Name:     node.Content(l.source),
			Metadata: hir.MetadataAt(l.location(node)),
		}
	case "number_literal":
		text := node.Content(l.source)
		if strings.ContainsAny(text, ".eE") && !strings.HasPrefix(text, "0x") {
			v, _ := strconv.ParseFloat(text, 64)
			return &hir.CLiteral{NodeID: l.id(), Value: hir.FloatLiteral(v), Metadata: hir.MetadataAt(l.location(node))}
		}
		v, _ := strconv.ParseInt(text, 0, 64)
		return &hir.CLiteral{NodeID: l.id(), Value: hir.IntLiteral(v), Metadata: hir.MetadataAt(l.location(node))}
	case "string_literal":
		text := strings.Trim(node.Content(l.source), `"`)
		return &hir.CLiteral{NodeID: l.id(), Value: hir.StrLiteral(text), Metadata: hir.MetadataAt(l.location(node))}
	case "null":
		return &hir.CLiteral{NodeID: l.id(), Value: hir.NoneLiteral(), Metadata: hir.MetadataAt(l.location(node))}
	case "parenthesized_expression":
		if node.NamedChildCount() > 0 {
			return l.expression(node.NamedChild(0))
		}
		return nil
	default:
		return nil
	}
}

// typeOf resolves a type specifier node plus pointer depth into the type
// model. CPython object types are recognized by name whether written as
// the struct type or behind a pointer.
func (l *lifter) typeOf(node *sitter.Node, pointerDepth int) hir.Type {
	if node == nil {
		return hir.Unknown{}
	}
	name := node.Content(l.source)
	name = strings.TrimPrefix(name, "struct ")

	base := hir.ParseCTypeName(name)
	for i := 0; i < pointerDepth; i++ {
		if hir.IsCPythonTypeName(name) {
			// PyObject* et al. stay annotated as CPython handles; the
			// pointer is part of the API convention, not the type.
			return base
		}
		base = hir.CPointer{Inner: base}
	}
	return base
}

func (l *lifter) id() hir.NodeID {
	id := l.nextID
	l.nextID++
	return id
}

func (l *lifter) location(node *sitter.Node) hir.SourceLocation {
	pt := node.StartPoint()
	return hir.SourceLocation{
		File:     l.filename,
		Line:     int(pt.Row) + 1,
		Column:   int(pt.Column) + 1,
		Language: hir.LangC,
	}
}

func unitName(filename string) string {
	name := filename
	if i := strings.LastIndexAny(name, "/\\"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "."); i > 0 {
		name = name[:i]
	}
	if name == "" {
		return "unit"
	}
	return name
}

// Package pyparse turns Python source text into the dynamic-domain graph.
// Parsing itself is delegated to tree-sitter; this package only walks the
// concrete syntax tree and lifts the constructs the unifier understands.
package pyparse

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"pybridge/internal/hir"
)

// SyntaxError reports the first syntax error tree-sitter found.
type SyntaxError struct {
	File   string
	Line   int
	Column int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: Python syntax error", e.File, e.Line, e.Column)
}

// ParsePython parses Python source and lifts it into the dynamic graph.
// The module is named after the file, minus any directory and extension.
func ParsePython(source []byte, filename string) (*hir.PyModule, error) {
	root, err := parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	if root.HasError() {
		return nil, syntaxError(root, filename)
	}

	l := &lifter{source: source, filename: filename, nextID: 1}
	return l.module(root), nil
}

// DumpAST renders the concrete syntax tree for inspection. It does not
// lift anything; syntax errors show up as ERROR nodes in the dump.
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
	parser.SetLanguage(python.GetLanguage())
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
	if node.Type() == "identifier" {
		fmt.Fprintf(b, " %q", node.Content(source))
	}
	b.WriteString("\n")
	for i := 0; i < int(node.NamedChildCount()); i++ {
		dumpNode(b, node.NamedChild(i), source, depth+1)
	}
}

// lifter converts the syntax tree bottom-up, assigning fresh node IDs.
type lifter struct {
	source   []byte
	filename string
	nextID   hir.NodeID
}

func (l *lifter) module(root *sitter.Node) *hir.PyModule {
	mod := &hir.PyModule{
		Name:     moduleName(l.filename),
		Metadata: hir.MetadataAt(l.location(root)),
	}
	for i := 0; i < int(root.NamedChildCount()); i++ {
		if stmt := l.statement(root.NamedChild(i)); stmt != nil {
			mod.Body = append(mod.Body, stmt)
		}
	}
	return mod
}

func (l *lifter) statement(node *sitter.Node) hir.PythonHIR {
	switch node.Type() {
	case "function_definition":
		return l.function(node)
	case "expression_statement":
		if node.NamedChildCount() > 0 {
			return l.expression(node.NamedChild(0))
		}
		return nil
	case "return_statement":
		ret := &hir.PyReturn{NodeID: l.id(), Metadata: hir.MetadataAt(l.location(node))}
		if node.NamedChildCount() > 0 {
			ret.Value = l.expression(node.NamedChild(0))
		}
		return ret
	case "comment":
		return nil
	default:
		return l.expression(node)
	}
}

func (l *lifter) function(node *sitter.Node) *hir.PyFunction {
	fn := &hir.PyFunction{
		NodeID:     l.id(),
		Visibility: hir.Public,
		Metadata:   hir.MetadataAt(l.location(node)),
	}
	if name := node.ChildByFieldName("name"); name != nil {
		fn.Name = name.Content(l.source)
		if strings.HasPrefix(fn.Name, "_") {
			fn.Visibility = hir.Private
		}
	}
	if params := node.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			p := params.NamedChild(i)
			if p.Type() == "identifier" {
				fn.Params = append(fn.Params, hir.PyParam{Name: p.Content(l.source)})
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

func (l *lifter) expression(node *sitter.Node) hir.PythonHIR {
	switch node.Type() {
	case "call":
		return l.call(node)
	case "identifier":
		return &hir.PyVariable{
			NodeID:   l.id(),
			Name:     node.Content(l.source),
			Inferred: hir.Unknown{},
			Metadata: hir.MetadataAt(l.location(node)),
		}
	case "integer":
		v, _ := strconv.ParseInt(node.Content(l.source), 0, 64)
		return l.literal(node, hir.IntLiteral(v))
	case "float":
		v, _ := strconv.ParseFloat(node.Content(l.source), 64)
		return l.literal(node, hir.FloatLiteral(v))
	case "string":
		return l.literal(node, hir.StrLiteral(stringContent(node, l.source)))
	case "true":
		return l.literal(node, hir.BoolLiteral(true))
	case "false":
		return l.literal(node, hir.BoolLiteral(false))
	case "none":
		return l.literal(node, hir.NoneLiteral())
	case "parenthesized_expression":
		if node.NamedChildCount() > 0 {
			return l.expression(node.NamedChild(0))
		}
		return nil
	default:
		return nil
	}
}

// call lifts both plain calls and method calls. A method call such as
// my_list.append(item) becomes a call to append with my_list as the
// leading argument, which is the shape the unifier and the code
// generator expect.
func (l *lifter) call(node *sitter.Node) *hir.PyCall {
	call := &hir.PyCall{
		NodeID:   l.id(),
		Inferred: hir.Unknown{},
		Metadata: hir.MetadataAt(l.location(node)),
	}

	fn := node.ChildByFieldName("function")
	if fn != nil && fn.Type() == "attribute" {
		if attr := fn.ChildByFieldName("attribute"); attr != nil {
			call.Callee = &hir.PyVariable{
				NodeID:   l.id(),
				Name:     attr.Content(l.source),
				Inferred: hir.Unknown{},
				Metadata: hir.MetadataAt(l.location(attr)),
			}
		}
		if obj := fn.ChildByFieldName("object"); obj != nil {
			if recv := l.expression(obj); recv != nil {
				call.Args = append(call.Args, recv)
			}
		}
	} else if fn != nil {
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
}

func (l *lifter) literal(node *sitter.Node, value hir.LiteralValue) *hir.PyLiteral {
	return &hir.PyLiteral{
		NodeID:   l.id(),
		Value:    value,
		Metadata: hir.MetadataAt(l.location(node)),
	}
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
		Language: hir.LangPython,
	}
}

func moduleName(filename string) string {
	name := filename
	if i := strings.LastIndexAny(name, "/\\"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "."); i > 0 {
		name = name[:i]
	}
	if name == "" {
		return "module"
	}
	return name
}

// stringContent strips the quotes from a Python string literal.
func stringContent(node *sitter.Node, source []byte) string {
	text := node.Content(source)
	text = strings.TrimPrefix(text, `"""`)
	text = strings.TrimSuffix(text, `"""`)
	if len(text) >= 2 && (text[0] == '"' || text[0] == '\'') {
		text = text[1 : len(text)-1]
	}
	return text
}

package hir

import (
	"fmt"
	"strings"
)

// The dump functions render an indented one-node-per-line tree view of a
// graph. The debugger's visualize and inspect commands are the consumers;
// output is stable so it can be asserted against in tests.

// DumpPython renders a Python-side graph.
func DumpPython(node PythonHIR) string {
	var b strings.Builder
	dumpPython(&b, node, 0)
	return b.String()
}

func dumpPython(b *strings.Builder, node PythonHIR, depth int) {
	if node == nil {
		writeLine(b, depth, "<nil>")
		return
	}
	switch n := node.(type) {
	case *PyModule:
		writeLine(b, depth, fmt.Sprintf("Module %q", n.Name))
		for _, child := range n.Body {
			dumpPython(b, child, depth+1)
		}
	case *PyFunction:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.Name
		}
		writeLine(b, depth, fmt.Sprintf("Function %s(%s) #%d", n.Name, strings.Join(params, ", "), n.NodeID))
		for _, child := range n.Body {
			dumpPython(b, child, depth+1)
		}
	case *PyReturn:
		writeLine(b, depth, fmt.Sprintf("Return #%d", n.NodeID))
		if n.Value != nil {
			dumpPython(b, n.Value, depth+1)
		}
	case *PyCall:
		writeLine(b, depth, fmt.Sprintf("Call %s #%d", n.CalleeName(), n.NodeID))
		for _, arg := range n.Args {
			dumpPython(b, arg, depth+1)
		}
	case *PyVariable:
		writeLine(b, depth, fmt.Sprintf("Variable %s #%d", n.Name, n.NodeID))
	case *PyLiteral:
		writeLine(b, depth, fmt.Sprintf("Literal %s #%d", n.Value, n.NodeID))
	default:
		writeLine(b, depth, fmt.Sprintf("%T", node))
	}
}

// DumpC renders a C-side graph.
func DumpC(node CHIR) string {
	var b strings.Builder
	dumpC(&b, node, 0)
	return b.String()
}

func dumpC(b *strings.Builder, node CHIR, depth int) {
	if node == nil {
		writeLine(b, depth, "<nil>")
		return
	}
	switch n := node.(type) {
	case *CTranslationUnit:
		writeLine(b, depth, fmt.Sprintf("TranslationUnit %q", n.Name))
		for _, child := range n.Decls {
			dumpC(b, child, depth+1)
		}
	case *CFunction:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = fmt.Sprintf("%s %s", p.Type, p.Name)
		}
		sig := fmt.Sprintf("Function %s %s(%s) #%d", n.ReturnType, n.Name, strings.Join(params, ", "), n.NodeID)
		if n.Storage != StorageNone {
			sig = fmt.Sprintf("Function %s %s %s(%s) #%d", n.Storage, n.ReturnType, n.Name, strings.Join(params, ", "), n.NodeID)
		}
		writeLine(b, depth, sig)
		for _, child := range n.Body {
			dumpC(b, child, depth+1)
		}
	case *CStructDecl:
		writeLine(b, depth, fmt.Sprintf("Struct %s #%d", n.Name, n.NodeID))
		for _, f := range n.Fields {
			writeLine(b, depth+1, fmt.Sprintf("Field %s %s", f.Type, f.Name))
		}
	case *CCall:
		writeLine(b, depth, fmt.Sprintf("Call #%d", n.NodeID))
		dumpC(b, n.Callee, depth+1)
		for _, arg := range n.Args {
			dumpC(b, arg, depth+1)
		}
	case *CVariable:
		writeLine(b, depth, fmt.Sprintf("Variable %s #%d", n.Name, n.NodeID))
	case *CReturn:
		writeLine(b, depth, fmt.Sprintf("Return #%d", n.NodeID))
		if n.Value != nil {
			dumpC(b, n.Value, depth+1)
		}
	case *CLiteral:
		writeLine(b, depth, fmt.Sprintf("Literal %s #%d", n.Value, n.NodeID))
	default:
		writeLine(b, depth, fmt.Sprintf("%T", node))
	}
}

// DumpUnified renders a unified graph, including the cross-mapping state
// that drives boundary elimination.
func DumpUnified(node UnifiedHIR) string {
	var b strings.Builder
	dumpUnified(&b, node, 0)
	return b.String()
}

func dumpUnified(b *strings.Builder, node UnifiedHIR, depth int) {
	if node == nil {
		writeLine(b, depth, "<nil>")
		return
	}
	switch n := node.(type) {
	case *UnifiedModule:
		writeLine(b, depth, fmt.Sprintf("Module %q [%s]", n.Name, n.Source))
		for _, child := range n.Decls {
			dumpUnified(b, child, depth+1)
		}
	case *UnifiedFunction:
		writeLine(b, depth, fmt.Sprintf("Function %s -> %s [%s] #%d", n.Name, n.ReturnType, n.Source, n.NodeID))
		for _, child := range n.Body {
			dumpUnified(b, child, depth+1)
		}
	case *UnifiedCall:
		writeLine(b, depth, fmt.Sprintf("Call %s -> %s [%s => %s] #%d%s",
			n.Callee, n.InferredType, n.Source, n.TargetLang, n.NodeID, mappingSuffix(n.Mapping)))
		for _, note := range n.Metadata.notes() {
			writeLine(b, depth+1, "note: "+note)
		}
		for _, arg := range n.Args {
			dumpUnified(b, arg, depth+1)
		}
	case *UnifiedVariable:
		writeLine(b, depth, fmt.Sprintf("Variable %s: %s [%s] #%d", n.Name, n.VarType, n.Source, n.NodeID))
	case *UnifiedLiteral:
		writeLine(b, depth, fmt.Sprintf("Literal %s: %s [%s] #%d", n.Value, n.LitType, n.Source, n.NodeID))
	default:
		writeLine(b, depth, fmt.Sprintf("%T", node))
	}
}

func mappingSuffix(m *CrossMapping) string {
	if m == nil {
		return ""
	}
	state := "boundary pending"
	if m.BoundaryEliminated {
		state = "boundary eliminated"
	}
	return fmt.Sprintf(" {pattern %s, %s}", m.Pattern, state)
}

func (m *Metadata) notes() []string {
	if m == nil {
		return nil
	}
	return m.DebugNotes
}

func writeLine(b *strings.Builder, depth int, text string) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(text)
	b.WriteString("\n")
}

// Package codegen renders the optimized unified graph as Rust source.
// Only calls whose Python/C boundary has been eliminated are rendered;
// a call that still crosses the boundary is a pipeline-ordering bug and
// is reported, never papered over.
package codegen

import (
	"fmt"
	"strings"

	"pybridge/internal/hir"
)

// templates maps a pattern name to the rendered call form. The verb %s
// is the receiver. Argument spellings are fixed by the pattern: a push
// always takes item, an insert always takes index and item.
var templates = map[string]string{
	"len":        "%s.len()",
	"append":     "%s.push(item)",
	"dict_get":   "%s.get(&key)",
	"reverse":    "%s.reverse()",
	"clear":      "%s.clear()",
	"pop":        "%s.pop()",
	"insert":     "%s.insert(index, item)",
	"extend":     "%s.extend(other)",
	"dict_pop":   "%s.remove(&key)",
	"dict_clear": "%s.clear()",
	"dict_keys":  "%s.keys()",
}

// fallbackReceiver is used when a call carries no variable argument to
// name the receiver after.
const fallbackReceiver = "x"

// MissingMappingError reports a call node that reached code generation
// without a cross mapping. The unifier always attaches one, so this
// indicates a hand-built or corrupted graph.
type MissingMappingError struct {
	Callee string
}

func (e *MissingMappingError) Error() string {
	return fmt.Sprintf("cannot generate code for call %s: no cross mapping attached", e.Callee)
}

// BoundaryNotEliminatedError reports a call whose Python/C boundary was
// never eliminated. The optimizer must run before code generation.
type BoundaryNotEliminatedError struct {
	Callee  string
	Pattern string
}

func (e *BoundaryNotEliminatedError) Error() string {
	return fmt.Sprintf(
		"cannot generate code for call %s (pattern %s): boundary not eliminated, run the optimizer first",
		e.Callee, e.Pattern)
}

// NoTemplateError reports a pattern name with no rendering template.
type NoTemplateError struct {
	Pattern string
}

func (e *NoTemplateError) Error() string {
	return fmt.Sprintf("no code template for pattern %q", e.Pattern)
}

// Generate renders a unified node as Rust source text.
func Generate(node hir.UnifiedHIR) (string, error) {
	g := &generator{}
	if err := g.emit(node, 0); err != nil {
		return "", err
	}
	return g.out.String(), nil
}

type generator struct {
	out strings.Builder
}

func (g *generator) emit(node hir.UnifiedHIR, depth int) error {
	switch n := node.(type) {
	case *hir.UnifiedModule:
		return g.emitModule(n, depth)
	case *hir.UnifiedFunction:
		return g.emitFunction(n, depth)
	case *hir.UnifiedCall:
		code, err := renderCall(n)
		if err != nil {
			return err
		}
		g.line(depth, code)
		return nil
	case *hir.UnifiedVariable:
		g.line(depth, n.Name)
		return nil
	case *hir.UnifiedLiteral:
		g.line(depth, n.Value.String())
		return nil
	default:
		return fmt.Errorf("cannot generate code for node kind %s", node.UnifiedKind())
	}
}

func (g *generator) emitModule(m *hir.UnifiedModule, depth int) error {
	for i, decl := range m.Decls {
		if i > 0 {
			g.out.WriteString("\n")
		}
		if err := g.emit(decl, depth); err != nil {
			return err
		}
	}
	return nil
}

func (g *generator) emitFunction(fn *hir.UnifiedFunction, depth int) error {
	g.line(depth, fmt.Sprintf("fn %s(%s)%s {", fn.Name, renderParams(fn.Params), renderReturn(fn.ReturnType)))
	for _, stmt := range fn.Body {
		if err := g.emit(stmt, depth+1); err != nil {
			return err
		}
	}
	g.line(depth, "}")
	return nil
}

func (g *generator) line(depth int, text string) {
	g.out.WriteString(strings.Repeat("    ", depth))
	g.out.WriteString(text)
	g.out.WriteString("\n")
}

// renderCall produces the call expression for an eliminated unified call.
func renderCall(call *hir.UnifiedCall) (string, error) {
	if call.Mapping == nil {
		return "", &MissingMappingError{Callee: call.Callee}
	}
	if !call.Mapping.BoundaryEliminated {
		return "", &BoundaryNotEliminatedError{Callee: call.Callee, Pattern: call.Mapping.Pattern}
	}
	tmpl, ok := templates[call.Mapping.Pattern]
	if !ok {
		return "", &NoTemplateError{Pattern: call.Mapping.Pattern}
	}
	return fmt.Sprintf(tmpl, receiver(call.Args)), nil
}

// receiver names the value the generated method call is invoked on: the
// first variable argument when one exists, a placeholder otherwise.
func receiver(args []hir.UnifiedHIR) string {
	if len(args) > 0 {
		if v, ok := args[0].(*hir.UnifiedVariable); ok {
			return v.Name
		}
	}
	return fallbackReceiver
}

func renderParams(params []hir.UnifiedParam) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprintf("%s: %s", p.Name, p.Type)
	}
	return strings.Join(parts, ", ")
}

func renderReturn(t hir.Type) string {
	if t == nil {
		return ""
	}
	if _, ok := t.(hir.RustUnit); ok {
		return ""
	}
	return fmt.Sprintf(" -> %s", t)
}

// HasTemplate reports whether a rendering template exists for a pattern
// name. The registry tests use it to keep the table and the templates in
// lockstep.
func HasTemplate(pattern string) bool {
	_, ok := templates[pattern]
	return ok
}

// Package unify recognizes when a Python call and a C function implement
// the same operation and collapses the pair into a single call targeting
// Rust. Recognition is by exact name-pair lookup against the pattern
// table; anything outside the table is a reported, recoverable failure.
package unify

import (
	"fmt"

	"pybridge/internal/hir"
	"pybridge/internal/patterns"
)

// Unifier assigns node IDs to the unified graph it builds. A fresh
// Unifier starts its IDs at 1, so unifying the same inputs twice yields
// structurally identical output.
type Unifier struct {
	nextID hir.NodeID
}

// NewUnifier creates a unifier with a fresh ID sequence.
func NewUnifier() *Unifier {
	return &Unifier{nextID: 1}
}

// Unify consumes one Python call node and one C function node and
// produces the unified call, or a structured error. It has no side
// effects: the result depends only on the inputs and the static pattern
// table.
func Unify(python hir.PythonHIR, c hir.CHIR) (hir.UnifiedHIR, error) {
	return NewUnifier().Unify(python, c)
}

// Unify is the method form; see the package function.
func (u *Unifier) Unify(python hir.PythonHIR, c hir.CHIR) (hir.UnifiedHIR, error) {
	call, ok := python.(*hir.PyCall)
	if !ok {
		return nil, &IncompatibleNodesError{
			PythonKind: python.PyKind().String(),
			CKind:      c.CKind().String(),
		}
	}
	fn, ok := c.(*hir.CFunction)
	if !ok {
		return nil, &IncompatibleNodesError{
			PythonKind: python.PyKind().String(),
			CKind:      c.CKind().String(),
		}
	}

	pythonFn := call.CalleeName()
	pattern, ok := patterns.Find(pythonFn, fn.Name)
	if !ok {
		return nil, &NoPatternMatchError{
			PythonFn:    pythonFn,
			CFn:         fn.Name,
			Suggestions: patterns.FindSimilar(pythonFn, fn.Name),
		}
	}

	args, notes := u.convertArgs(call.Args)

	pyID := call.ID()
	cID := fn.ID()
	meta := hir.NewMetadata()
	meta.PatternUsed = pattern.Name
	meta.DebugNotes = notes
	if call.Metadata != nil && call.Metadata.Source != nil {
		loc := *call.Metadata.Source
		meta.Source = &loc
	}

	return &hir.UnifiedCall{
		NodeID:       u.nextNodeID(),
		TargetLang:   hir.LangRust,
		Callee:       pattern.Callee,
		Args:         args,
		InferredType: resultType(pattern),
		Source:       hir.LangPython,
		Mapping: &hir.CrossMapping{
			PythonNode:         &pyID,
			CNode:              &cID,
			Pattern:            pattern.Name,
			BoundaryEliminated: false,
		},
		Metadata: meta,
	}, nil
}

// convertArgs maps the Python-side argument nodes into the unified graph.
// Variables keep their names — losing them would degrade generated code
// to placeholder receivers. Literals convert best-effort. Any other node
// kind is dropped, and the drop is surfaced as a recoverable note rather
// than silently or fatally.
func (u *Unifier) convertArgs(args []hir.PythonHIR) ([]hir.UnifiedHIR, []string) {
	var out []hir.UnifiedHIR
	var notes []string

	for _, arg := range args {
		switch a := arg.(type) {
		case *hir.PyVariable:
			out = append(out, &hir.UnifiedVariable{
				NodeID:   u.nextNodeID(),
				Name:     a.Name,
				VarType:  hir.Unknown{},
				Source:   hir.LangPython,
				Metadata: hir.NewMetadata(),
			})
		case *hir.PyLiteral:
			out = append(out, &hir.UnifiedLiteral{
				NodeID:   u.nextNodeID(),
				Value:    a.Value,
				LitType:  literalType(a.Value),
				Source:   hir.LangPython,
				Metadata: hir.NewMetadata(),
			})
		default:
			notes = append(notes, fmt.Sprintf("dropped argument of kind %s: no conversion rule", arg.PyKind()))
		}
	}
	return out, notes
}

func (u *Unifier) nextNodeID() hir.NodeID {
	id := u.nextID
	u.nextID++
	return id
}

// resultType maps a pattern's declared result category onto the target
// type model.
func resultType(p patterns.Pattern) hir.Type {
	switch p.Result {
	case "usize":
		return hir.RustInt{Bits: 0, Signed: false}
	case "unit":
		return hir.RustUnit{}
	case "option":
		return hir.RustOption{Inner: hir.Unknown{}}
	case "keys":
		return hir.RustCustom{Name: "Keys"}
	default:
		return hir.Unknown{}
	}
}

func literalType(v hir.LiteralValue) hir.Type {
	switch v.Kind {
	case hir.LitInt:
		return hir.PyInt{}
	case hir.LitFloat:
		return hir.PyFloat{}
	case hir.LitStr:
		return hir.PyStr{}
	case hir.LitBool:
		return hir.PyBool{}
	case hir.LitNone:
		return hir.PyNone{}
	default:
		return hir.Unknown{}
	}
}

// Package optimize runs ordered rewrite passes over the unified graph.
// The only pass defined today eliminates the Python/C boundary on unified
// calls; the pipeline shape exists so later passes (dead-code elimination,
// inlining) can be appended without touching callers.
package optimize

import (
	"fmt"

	"pybridge/internal/hir"
)

// Pass is a single transformation over the unified graph.
type Pass interface {
	Name() string
	Description() string
	Apply(node hir.UnifiedHIR) (hir.UnifiedHIR, error)
}

// Pipeline runs passes in registration order.
type Pipeline struct {
	passes []Pass
}

// NewPipeline creates an empty pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// StandardPipeline creates the pipeline used by the compile path: exactly
// the boundary elimination pass.
func StandardPipeline() *Pipeline {
	p := NewPipeline()
	p.AddPass(&BoundaryElimination{})
	return p
}

// AddPass appends a pass.
func (p *Pipeline) AddPass(pass Pass) {
	p.passes = append(p.passes, pass)
}

// PassCount returns the number of registered passes.
func (p *Pipeline) PassCount() int {
	return len(p.passes)
}

// Run applies every pass in order, feeding each pass the previous pass's
// output.
func (p *Pipeline) Run(node hir.UnifiedHIR) (hir.UnifiedHIR, error) {
	var err error
	for _, pass := range p.passes {
		node, err = pass.Apply(node)
		if err != nil {
			return nil, fmt.Errorf("pass %s: %w", pass.Name(), err)
		}
	}
	return node, nil
}

// BoundaryElimination rewrites unified calls so they no longer cross the
// Python/C boundary: the target language becomes Rust and the mapping's
// BoundaryEliminated flag flips to true. The flag is monotone — a call
// whose boundary is already eliminated passes through untouched, and no
// pass ever clears it.
type BoundaryElimination struct{}

func (*BoundaryElimination) Name() string {
	return "BoundaryElimination"
}

func (*BoundaryElimination) Description() string {
	return "rewrites cross-language calls into pure Rust calls"
}

func (*BoundaryElimination) Apply(node hir.UnifiedHIR) (hir.UnifiedHIR, error) {
	return eliminate(node), nil
}

func eliminate(node hir.UnifiedHIR) hir.UnifiedHIR {
	call, ok := node.(*hir.UnifiedCall)
	if !ok {
		return node
	}

	mapping := call.Mapping
	if mapping != nil && !mapping.BoundaryEliminated {
		m := *mapping
		m.BoundaryEliminated = true
		mapping = &m
	}

	args := make([]hir.UnifiedHIR, len(call.Args))
	for i, arg := range call.Args {
		args[i] = eliminate(arg)
	}

	return &hir.UnifiedCall{
		NodeID:       call.NodeID,
		TargetLang:   hir.LangRust,
		Callee:       call.Callee,
		Args:         args,
		InferredType: call.InferredType,
		Source:       call.Source,
		Mapping:      mapping,
		Metadata:     call.Metadata,
	}
}

// CountEliminated reports how many calls in the graph have their boundary
// eliminated. The stepper compares this before and after the optimize
// phase to decide whether a boundary-elimination breakpoint fires.
func CountEliminated(node hir.UnifiedHIR) int {
	switch n := node.(type) {
	case *hir.UnifiedCall:
		count := 0
		if n.Mapping != nil && n.Mapping.BoundaryEliminated {
			count = 1
		}
		for _, arg := range n.Args {
			count += CountEliminated(arg)
		}
		return count
	case *hir.UnifiedFunction:
		count := 0
		for _, child := range n.Body {
			count += CountEliminated(child)
		}
		return count
	case *hir.UnifiedModule:
		count := 0
		for _, child := range n.Decls {
			count += CountEliminated(child)
		}
		return count
	default:
		return 0
	}
}

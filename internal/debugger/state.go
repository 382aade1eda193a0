// Package debugger drives a transpilation run one phase at a time and
// exposes the intermediate state after every phase. It is the engine
// behind the interactive debug REPL; the compile path uses the same
// stepper with Continue and no breakpoints.
package debugger

import (
	"fmt"

	"pybridge/internal/hir"
)

// Phase is a stage of the transpilation pipeline. Phases form a fixed
// linear sequence from Start to Complete.
type Phase int

const (
	PhaseStart Phase = iota
	PhasePythonParsed
	PhasePythonHIR
	PhaseCParsed
	PhaseCHIR
	PhaseUnifiedHIR
	PhaseOptimized
	PhaseRustGenerated
	PhaseComplete
)

// Name returns the human-readable phase name used in REPL output and
// phase breakpoints.
func (p Phase) Name() string {
	switch p {
	case PhaseStart:
		return "Start"
	case PhasePythonParsed:
		return "Python Parsed"
	case PhasePythonHIR:
		return "Python HIR"
	case PhaseCParsed:
		return "C Parsed"
	case PhaseCHIR:
		return "C HIR"
	case PhaseUnifiedHIR:
		return "Unified HIR"
	case PhaseOptimized:
		return "Optimized"
	case PhaseRustGenerated:
		return "Rust Generated"
	case PhaseComplete:
		return "Complete"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// next returns the following phase. ok is false at Complete.
func (p Phase) next() (Phase, bool) {
	if p >= PhaseComplete {
		return PhaseComplete, false
	}
	return p + 1, true
}

// Transformation records one completed step for the history listing.
type Transformation struct {
	From   Phase
	To     Phase
	Detail string
}

// TranspilationState is the full snapshot of a run. Every field after
// the inputs is filled in by the phase that produces it and never
// cleared; inspect commands read them directly.
type TranspilationState struct {
	Phase     Phase
	StepCount int

	PythonFile string
	CFile      string

	PythonSource []byte
	CSource      []byte

	PythonGraph  *hir.PyModule
	CGraph       *hir.CTranslationUnit
	UnifiedGraph hir.UnifiedHIR
	Optimized    hir.UnifiedHIR
	RustCode     string

	History []Transformation
}

// NewState creates a state positioned at Start for the given input files.
func NewState(pythonFile, cFile string) *TranspilationState {
	return &TranspilationState{
		Phase:      PhaseStart,
		PythonFile: pythonFile,
		CFile:      cFile,
	}
}

// IsComplete reports whether the run has reached the final phase.
func (s *TranspilationState) IsComplete() bool {
	return s.Phase == PhaseComplete
}

// advance moves to the next phase and records the step. The caller has
// already checked IsComplete.
func (s *TranspilationState) advance(detail string) Phase {
	next, _ := s.Phase.next()
	s.History = append(s.History, Transformation{From: s.Phase, To: next, Detail: detail})
	s.Phase = next
	s.StepCount++
	return next
}

package debugger

import (
	"fmt"
	"os"
	"strings"

	"pybridge/internal/codegen"
	"pybridge/internal/cparse"
	"pybridge/internal/hir"
	"pybridge/internal/optimize"
	"pybridge/internal/pyparse"
	"pybridge/internal/unify"
)

// Breakpoint halts Continue after the step it matches.
type Breakpoint struct {
	Kind     BreakpointKind
	Phase    string // BreakPhase: phase name, matched case-insensitively
	Function string // BreakFunction: function name
}

// BreakpointKind discriminates breakpoint types.
type BreakpointKind int

const (
	// BreakBoundary fires on the step that eliminates a boundary.
	BreakBoundary BreakpointKind = iota
	// BreakPhase fires when the named phase is reached.
	BreakPhase
	// BreakFunction is accepted but never fires; per-function stepping
	// needs node-level tracking the stepper does not do yet.
	BreakFunction
)

func (b Breakpoint) String() string {
	switch b.Kind {
	case BreakBoundary:
		return "Boundary Elimination"
	case BreakPhase:
		return "Phase: " + b.Phase
	case BreakFunction:
		return "Function: " + b.Function
	default:
		return "Unknown"
	}
}

// Stepper advances a transpilation run one phase per Step call.
type Stepper struct {
	state       *TranspilationState
	breakpoints []Breakpoint

	// boundaryFlipped is set by the optimize step when it eliminated at
	// least one boundary, and consumed by breakpoint checks for that
	// same step.
	boundaryFlipped bool
}

// NewStepper creates a stepper over the given state.
func NewStepper(state *TranspilationState) *Stepper {
	return &Stepper{state: state}
}

// State returns the current state snapshot.
func (st *Stepper) State() *TranspilationState {
	return st.state
}

// AddBreakpoint registers a breakpoint.
func (st *Stepper) AddBreakpoint(bp Breakpoint) {
	st.breakpoints = append(st.breakpoints, bp)
}

// Breakpoints lists registered breakpoints in registration order.
func (st *Stepper) Breakpoints() []Breakpoint {
	return st.breakpoints
}

// ClearBreakpoint removes the breakpoint at index. It reports whether
// the index was valid.
func (st *Stepper) ClearBreakpoint(index int) bool {
	if index < 0 || index >= len(st.breakpoints) {
		return false
	}
	st.breakpoints = append(st.breakpoints[:index], st.breakpoints[index+1:]...)
	return true
}

// Step advances exactly one phase. At Complete it is a no-op: the
// current phase comes back with stepped false and no error.
func (st *Stepper) Step() (Phase, bool, error) {
	next, ok := st.state.Phase.next()
	if !ok {
		return st.state.Phase, false, nil
	}

	st.boundaryFlipped = false
	detail, err := st.run(next)
	if err != nil {
		return st.state.Phase, false, err
	}
	st.state.advance(detail)
	return next, true, nil
}

// Continue steps until a breakpoint fires or the run completes.
func (st *Stepper) Continue() error {
	for !st.state.IsComplete() {
		if _, _, err := st.Step(); err != nil {
			return err
		}
		if st.breakpointHit() {
			return nil
		}
	}
	return nil
}

func (st *Stepper) breakpointHit() bool {
	for _, bp := range st.breakpoints {
		switch bp.Kind {
		case BreakBoundary:
			if st.boundaryFlipped {
				return true
			}
		case BreakPhase:
			if strings.EqualFold(st.state.Phase.Name(), bp.Phase) {
				return true
			}
		case BreakFunction:
			// declared but never matched
		}
	}
	return false
}

func (st *Stepper) run(phase Phase) (string, error) {
	switch phase {
	case PhasePythonParsed:
		return st.parsePython()
	case PhasePythonHIR:
		return "Python syntax tree lifted into the dynamic graph", nil
	case PhaseCParsed:
		return st.parseC()
	case PhaseCHIR:
		return "C syntax tree lifted into the low-level graph", nil
	case PhaseUnifiedHIR:
		return st.unify()
	case PhaseOptimized:
		return st.optimize()
	case PhaseRustGenerated:
		return st.generate()
	case PhaseComplete:
		return "transpilation finished", nil
	default:
		return "", fmt.Errorf("no action for phase %s", phase.Name())
	}
}

func (st *Stepper) parsePython() (string, error) {
	source, err := os.ReadFile(st.state.PythonFile)
	if err != nil {
		return "", fmt.Errorf("read Python input: %w", err)
	}
	st.state.PythonSource = source

	mod, err := pyparse.ParsePython(source, st.state.PythonFile)
	if err != nil {
		return "", err
	}
	st.state.PythonGraph = mod
	return fmt.Sprintf("parsed %s", st.state.PythonFile), nil
}

func (st *Stepper) parseC() (string, error) {
	source, err := os.ReadFile(st.state.CFile)
	if err != nil {
		return "", fmt.Errorf("read C input: %w", err)
	}
	st.state.CSource = source

	unit, err := cparse.ParseC(source, st.state.CFile)
	if err != nil {
		return "", err
	}
	st.state.CGraph = unit
	return fmt.Sprintf("parsed %s", st.state.CFile), nil
}

func (st *Stepper) unify() (string, error) {
	if st.state.PythonGraph == nil {
		return "", fmt.Errorf("no Python graph: step through the Python phases first")
	}
	if st.state.CGraph == nil {
		return "", fmt.Errorf("no C graph: step through the C phases first")
	}

	call, err := ExtractPythonCall(st.state.PythonGraph)
	if err != nil {
		return "", err
	}
	fn, err := ExtractCFunction(st.state.CGraph)
	if err != nil {
		return "", err
	}

	unified, err := unify.Unify(call, fn)
	if err != nil {
		return "", err
	}
	st.state.UnifiedGraph = unified

	pattern := ""
	if meta := unified.Meta(); meta != nil {
		pattern = meta.PatternUsed
	}
	return fmt.Sprintf("unified %s() with %s() via pattern %s", call.CalleeName(), fn.Name, pattern), nil
}

func (st *Stepper) optimize() (string, error) {
	if st.state.UnifiedGraph == nil {
		return "", fmt.Errorf("no unified graph: step through unification first")
	}

	before := optimize.CountEliminated(st.state.UnifiedGraph)
	optimized, err := optimize.StandardPipeline().Run(st.state.UnifiedGraph)
	if err != nil {
		return "", err
	}
	st.state.Optimized = optimized

	after := optimize.CountEliminated(optimized)
	if after > before {
		st.boundaryFlipped = true
		return fmt.Sprintf("eliminated %d boundary call(s)", after-before), nil
	}
	return "no boundaries left to eliminate", nil
}

func (st *Stepper) generate() (string, error) {
	if st.state.Optimized == nil {
		return "", fmt.Errorf("no optimized graph: step through optimization first")
	}

	code, err := codegen.Generate(st.state.Optimized)
	if err != nil {
		return "", err
	}
	st.state.RustCode = code
	return "generated Rust output", nil
}

// ExtractPythonCall finds the call node a run unifies: the first call in
// the module body, either directly, or as the returned expression (or
// first statement) of the first function.
func ExtractPythonCall(mod *hir.PyModule) (*hir.PyCall, error) {
	for _, stmt := range mod.Body {
		switch s := stmt.(type) {
		case *hir.PyCall:
			return s, nil
		case *hir.PyFunction:
			for _, inner := range s.Body {
				switch b := inner.(type) {
				case *hir.PyCall:
					return b, nil
				case *hir.PyReturn:
					if call, ok := b.Value.(*hir.PyCall); ok {
						return call, nil
					}
				}
			}
		}
	}
	return nil, &unify.UnsupportedConstructError{Domain: hir.LangPython, Kind: "module without a call"}
}

// ExtractCFunction finds the function definition a run unifies: the
// first function in the translation unit.
func ExtractCFunction(unit *hir.CTranslationUnit) (*hir.CFunction, error) {
	for _, decl := range unit.Decls {
		if fn, ok := decl.(*hir.CFunction); ok {
			return fn, nil
		}
	}
	return nil, &unify.UnsupportedConstructError{Domain: hir.LangC, Kind: "translation unit without a function"}
}

package unify

import (
	"fmt"
	"strings"

	"pybridge/internal/hir"
	"pybridge/internal/patterns"
)

// docPointer closes every unification error; the patterns command is the
// authoritative listing of supported operation pairs.
const docPointer = "For the full table of supported pairs, run: pybridge patterns"

// NoPatternMatchError reports that no registered pattern covers the
// requested Python/C name pair. Suggestions is never empty.
type NoPatternMatchError struct {
	PythonFn    string
	CFn         string
	Suggestions []patterns.Pattern
}

func (e *NoPatternMatchError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "cannot match Python function '%s' with C function '%s'\n", e.PythonFn, e.CFn)
	b.WriteString("\n")
	b.WriteString("Tried to unify:\n")
	fmt.Fprintf(&b, "  Python: %s()\n", e.PythonFn)
	fmt.Fprintf(&b, "  C:      %s()\n", e.CFn)
	b.WriteString("\n")
	b.WriteString("No known pattern matches this combination.\n")

	if len(e.Suggestions) > 0 {
		b.WriteString("\nSupported patterns:\n")
		for i, s := range e.Suggestions {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, s)
		}
	}

	b.WriteString("\n")
	b.WriteString(docPointer)
	return b.String()
}

// IncompatibleNodesError reports a category mismatch: one of the inputs is
// not a callable node of the expected kind.
type IncompatibleNodesError struct {
	PythonKind string
	CKind      string
}

func (e *IncompatibleNodesError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "cannot unify incompatible node kinds: Python %s with C %s\n", e.PythonKind, e.CKind)
	b.WriteString("\n")
	b.WriteString("Unification requires a Python call on one side and a C function\n")
	b.WriteString("definition on the other; make sure both inputs describe the same\n")
	b.WriteString("operation.\n")
	b.WriteString("\n")
	b.WriteString(docPointer)
	return b.String()
}

// UnsupportedConstructError reports a node kind that has no conversion
// rule in the named source domain.
type UnsupportedConstructError struct {
	Domain hir.Language
	Kind   string
}

func (e *UnsupportedConstructError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "unsupported %s construct: %s\n", e.Domain, e.Kind)
	b.WriteString("\n")
	fmt.Fprintf(&b, "This %s node kind has no unification rule yet. Supported inputs are\n", e.Domain)
	b.WriteString("calls to the registered operation pairs.\n")
	b.WriteString("\n")
	b.WriteString(docPointer)
	return b.String()
}

package hir

import "fmt"

// Language identifies which of the three domains a node or type belongs to.
// Every HIR node and every type carries its origin language.
type Language int

const (
	// LangPython is the dynamic source side.
	LangPython Language = iota
	// LangC is the low-level source side, including CPython implementation code.
	LangC
	// LangRust is the target representation.
	LangRust
)

func (l Language) String() string {
	switch l {
	case LangPython:
		return "Python"
	case LangC:
		return "C"
	case LangRust:
		return "Rust"
	default:
		return fmt.Sprintf("Language(%d)", int(l))
	}
}

// NodeID uniquely identifies a node within a process. IDs are used for
// cross-referencing between the Python, C, and unified graphs; holding a
// NodeID never implies ownership of the node it names.
type NodeID uint64

// SourceLocation points back into an input file for error reporting and
// the debugger's inspect output.
type SourceLocation struct {
	File     string
	Line     int // 1-indexed
	Column   int // 1-indexed
	Language Language
}

func (s SourceLocation) String() string {
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

// Visibility of a declaration.
type Visibility int

const (
	// Public declarations are exported.
	Public Visibility = iota
	// Private declarations are internal.
	Private
	// ModuleLevel covers Python module scope and C static storage.
	ModuleLevel
)

func (v Visibility) String() string {
	switch v {
	case Public:
		return "public"
	case Private:
		return "private"
	case ModuleLevel:
		return "module"
	default:
		return fmt.Sprintf("Visibility(%d)", int(v))
	}
}

package hir

import "fmt"

// UnifiedNodeKind discriminates UnifiedHIR variants.
type UnifiedNodeKind int

const (
	UnifiedModuleNode UnifiedNodeKind = iota
	UnifiedFunctionNode
	UnifiedCallNode
	UnifiedVariableNode
	UnifiedLiteralNode
)

func (k UnifiedNodeKind) String() string {
	switch k {
	case UnifiedModuleNode:
		return "Module"
	case UnifiedFunctionNode:
		return "Function"
	case UnifiedCallNode:
		return "Call"
	case UnifiedVariableNode:
		return "Variable"
	case UnifiedLiteralNode:
		return "Literal"
	default:
		return "Unknown"
	}
}

// CrossMapping records how a unified node relates back to the two source
// graphs. The node IDs are lookups into the Python and C graphs, never
// owning references.
//
// BoundaryEliminated only ever transitions false to true. It is the single
// source of truth the optimizer writes and the code generator reads.
type CrossMapping struct {
	PythonNode         *NodeID
	CNode              *NodeID
	Pattern            string // pattern name from the registry
	BoundaryEliminated bool
}

// UnifiedHIR is a node in the unified graph produced by the unifier. The
// graph is a tree; arguments are owned by their call.
type UnifiedHIR interface {
	ID() NodeID
	UnifiedKind() UnifiedNodeKind
	SourceLang() Language
	Meta() *Metadata
	isUnifiedHIR()
}

// UnifiedParam bridges a Python and a C parameter.
type UnifiedParam struct {
	Name       string
	Type       Type
	SourceLang Language
}

// UnifiedModule is a unified compilation unit.
type UnifiedModule struct {
	Name     string
	Source   Language
	Decls    []UnifiedHIR
	Metadata *Metadata
}

// UnifiedFunction is a function whose Python and C sides have been merged.
type UnifiedFunction struct {
	NodeID     NodeID
	Name       string
	Params     []UnifiedParam
	ReturnType Type
	Body       []UnifiedHIR
	Source     Language
	Metadata   *Metadata
}

// UnifiedCall is a call that may still cross the Python/C boundary, or —
// after boundary elimination — a pure target-domain call.
type UnifiedCall struct {
	NodeID       NodeID
	TargetLang   Language
	Callee       string
	Args         []UnifiedHIR
	InferredType Type
	Source       Language
	Mapping      *CrossMapping
	Metadata     *Metadata
}

// UnifiedVariable is a name reference carried over from one of the sources.
type UnifiedVariable struct {
	NodeID   NodeID
	Name     string
	VarType  Type
	Source   Language
	Metadata *Metadata
}

// UnifiedLiteral is a constant carried over from one of the sources.
type UnifiedLiteral struct {
	NodeID   NodeID
	Value    LiteralValue
	LitType  Type
	Source   Language
	Metadata *Metadata
}

func (*UnifiedModule) ID() NodeID     { return 0 }
func (n *UnifiedFunction) ID() NodeID { return n.NodeID }
func (n *UnifiedCall) ID() NodeID     { return n.NodeID }
func (n *UnifiedVariable) ID() NodeID { return n.NodeID }
func (n *UnifiedLiteral) ID() NodeID  { return n.NodeID }

func (*UnifiedModule) UnifiedKind() UnifiedNodeKind   { return UnifiedModuleNode }
func (*UnifiedFunction) UnifiedKind() UnifiedNodeKind { return UnifiedFunctionNode }
func (*UnifiedCall) UnifiedKind() UnifiedNodeKind     { return UnifiedCallNode }
func (*UnifiedVariable) UnifiedKind() UnifiedNodeKind { return UnifiedVariableNode }
func (*UnifiedLiteral) UnifiedKind() UnifiedNodeKind  { return UnifiedLiteralNode }

func (n *UnifiedModule) SourceLang() Language   { return n.Source }
func (n *UnifiedFunction) SourceLang() Language { return n.Source }
func (n *UnifiedCall) SourceLang() Language     { return n.Source }
func (n *UnifiedVariable) SourceLang() Language { return n.Source }
func (n *UnifiedLiteral) SourceLang() Language  { return n.Source }

func (n *UnifiedModule) Meta() *Metadata   { return n.Metadata }
func (n *UnifiedFunction) Meta() *Metadata { return n.Metadata }
func (n *UnifiedCall) Meta() *Metadata     { return n.Metadata }
func (n *UnifiedVariable) Meta() *Metadata { return n.Metadata }
func (n *UnifiedLiteral) Meta() *Metadata  { return n.Metadata }

func (*UnifiedModule) isUnifiedHIR()   {}
func (*UnifiedFunction) isUnifiedHIR() {}
func (*UnifiedCall) isUnifiedHIR()     {}
func (*UnifiedVariable) isUnifiedHIR() {}
func (*UnifiedLiteral) isUnifiedHIR()  {}

// LiteralKind discriminates literal values.
type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitFloat
	LitStr
	LitBool
	LitNone
)

// LiteralValue is a constant shared by all three graphs.
type LiteralValue struct {
	Kind  LiteralKind
	Int   int64
	Float float64
	Str   string
	Bool  bool
}

func (v LiteralValue) String() string {
	switch v.Kind {
	case LitInt:
		return fmt.Sprintf("%d", v.Int)
	case LitFloat:
		return fmt.Sprintf("%g", v.Float)
	case LitStr:
		return fmt.Sprintf("%q", v.Str)
	case LitBool:
		return fmt.Sprintf("%t", v.Bool)
	case LitNone:
		return "None"
	default:
		return "<invalid literal>"
	}
}

// IntLiteral builds an integer literal value.
func IntLiteral(v int64) LiteralValue { return LiteralValue{Kind: LitInt, Int: v} }

// StrLiteral builds a string literal value.
func StrLiteral(v string) LiteralValue { return LiteralValue{Kind: LitStr, Str: v} }

// FloatLiteral builds a float literal value.
func FloatLiteral(v float64) LiteralValue { return LiteralValue{Kind: LitFloat, Float: v} }

// BoolLiteral builds a boolean literal value.
func BoolLiteral(v bool) LiteralValue { return LiteralValue{Kind: LitBool, Bool: v} }

// NoneLiteral builds a None/NULL literal value.
func NoneLiteral() LiteralValue { return LiteralValue{Kind: LitNone} }

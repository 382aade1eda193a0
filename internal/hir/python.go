package hir

// PyNodeKind discriminates PythonHIR variants.
type PyNodeKind int

const (
	PyModuleNode PyNodeKind = iota
	PyFunctionNode
	PyReturnNode
	PyCallNode
	PyVariableNode
	PyLiteralNode
)

func (k PyNodeKind) String() string {
	switch k {
	case PyModuleNode:
		return "Module"
	case PyFunctionNode:
		return "Function"
	case PyReturnNode:
		return "Return"
	case PyCallNode:
		return "Call"
	case PyVariableNode:
		return "Variable"
	case PyLiteralNode:
		return "Literal"
	default:
		return "Unknown"
	}
}

// PythonHIR is a node in the dynamic-source graph. The graph is a tree:
// children are owned by their parent; NodeIDs referring into other graphs
// are lookups only.
type PythonHIR interface {
	ID() NodeID
	PyKind() PyNodeKind
	Meta() *Metadata
	isPythonHIR()
}

// PyParam is a function parameter on the Python side.
type PyParam struct {
	Name       string
	Annotation Type // nil when unannotated
}

// PyModule is a parsed Python compilation unit.
type PyModule struct {
	Name     string
	Body     []PythonHIR
	Metadata *Metadata
}

// PyFunction is a def.
type PyFunction struct {
	NodeID     NodeID
	Name       string
	Params     []PyParam
	ReturnType Type // nil when unannotated
	Body       []PythonHIR
	Visibility Visibility
	Metadata   *Metadata
}

// PyReturn is a return statement.
type PyReturn struct {
	NodeID   NodeID
	Value    PythonHIR // nil for a bare return
	Metadata *Metadata
}

// PyCall is a call expression.
type PyCall struct {
	NodeID   NodeID
	Callee   PythonHIR
	Args     []PythonHIR
	Inferred Type // nil until inference runs
	Metadata *Metadata
}

// PyVariable is a name reference.
type PyVariable struct {
	NodeID   NodeID
	Name     string
	Inferred Type
	Metadata *Metadata
}

// PyLiteral is a constant.
type PyLiteral struct {
	NodeID   NodeID
	Value    LiteralValue
	Metadata *Metadata
}

func (*PyModule) ID() NodeID     { return 0 }
func (n *PyFunction) ID() NodeID { return n.NodeID }
func (n *PyReturn) ID() NodeID   { return n.NodeID }
func (n *PyCall) ID() NodeID     { return n.NodeID }
func (n *PyVariable) ID() NodeID { return n.NodeID }
func (n *PyLiteral) ID() NodeID  { return n.NodeID }

func (*PyModule) PyKind() PyNodeKind   { return PyModuleNode }
func (*PyFunction) PyKind() PyNodeKind { return PyFunctionNode }
func (*PyReturn) PyKind() PyNodeKind   { return PyReturnNode }
func (*PyCall) PyKind() PyNodeKind     { return PyCallNode }
func (*PyVariable) PyKind() PyNodeKind { return PyVariableNode }
func (*PyLiteral) PyKind() PyNodeKind  { return PyLiteralNode }

func (n *PyModule) Meta() *Metadata   { return n.Metadata }
func (n *PyFunction) Meta() *Metadata { return n.Metadata }
func (n *PyReturn) Meta() *Metadata   { return n.Metadata }
func (n *PyCall) Meta() *Metadata     { return n.Metadata }
func (n *PyVariable) Meta() *Metadata { return n.Metadata }
func (n *PyLiteral) Meta() *Metadata  { return n.Metadata }

func (*PyModule) isPythonHIR()   {}
func (*PyFunction) isPythonHIR() {}
func (*PyReturn) isPythonHIR()   {}
func (*PyCall) isPythonHIR()     {}
func (*PyVariable) isPythonHIR() {}
func (*PyLiteral) isPythonHIR()  {}

// CalleeName returns the simple name a call targets, or a placeholder for
// callees that are not plain names.
func (n *PyCall) CalleeName() string {
	if v, ok := n.Callee.(*PyVariable); ok {
		return v.Name
	}
	return "<complex expression>"
}

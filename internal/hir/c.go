package hir

// CNodeKind discriminates CHIR variants.
type CNodeKind int

const (
	CTranslationUnitNode CNodeKind = iota
	CFunctionNode
	CStructDeclNode
	CCallNode
	CVariableNode
	CReturnNode
	CLiteralNode
)

func (k CNodeKind) String() string {
	switch k {
	case CTranslationUnitNode:
		return "TranslationUnit"
	case CFunctionNode:
		return "Function"
	case CStructDeclNode:
		return "Struct"
	case CCallNode:
		return "Call"
	case CVariableNode:
		return "Variable"
	case CReturnNode:
		return "Return"
	case CLiteralNode:
		return "Literal"
	default:
		return "Unknown"
	}
}

// StorageClass of a C declaration.
type StorageClass int

const (
	StorageNone StorageClass = iota
	StorageStatic
	StorageExtern
)

func (s StorageClass) String() string {
	switch s {
	case StorageStatic:
		return "static"
	case StorageExtern:
		return "extern"
	default:
		return ""
	}
}

// CHIR is a node in the low-level source graph.
type CHIR interface {
	ID() NodeID
	CKind() CNodeKind
	Meta() *Metadata
	isCHIR()
}

// CParam is a C function parameter.
type CParam struct {
	Name string
	Type Type
}

// CField is a struct field.
type CField struct {
	Name string
	Type Type
}

// CTranslationUnit is a parsed C file.
type CTranslationUnit struct {
	Name     string
	Decls    []CHIR
	Metadata *Metadata
}

// CFunction is a function definition.
type CFunction struct {
	NodeID     NodeID
	Name       string
	ReturnType Type
	Params     []CParam
	Body       []CHIR
	Storage    StorageClass
	Visibility Visibility
	Metadata   *Metadata
}

// CStructDecl is a struct definition.
type CStructDecl struct {
	NodeID   NodeID
	Name     string
	Fields   []CField
	Metadata *Metadata
}

// CCall is a call expression.
type CCall struct {
	NodeID   NodeID
	Callee   CHIR
	Args     []CHIR
	Metadata *Metadata
}

// CVariable is a name reference.
type CVariable struct {
	NodeID   NodeID
	Name     string
	VarType  Type // nil when not declared in scope
	Metadata *Metadata
}

// CReturn is a return statement.
type CReturn struct {
	NodeID   NodeID
	Value    CHIR // nil for a bare return
	Metadata *Metadata
}

// CLiteral is a constant.
type CLiteral struct {
	NodeID   NodeID
	Value    LiteralValue
	Metadata *Metadata
}

func (*CTranslationUnit) ID() NodeID { return 0 }
func (n *CFunction) ID() NodeID     { return n.NodeID }
func (n *CStructDecl) ID() NodeID   { return n.NodeID }
func (n *CCall) ID() NodeID         { return n.NodeID }
func (n *CVariable) ID() NodeID     { return n.NodeID }
func (n *CReturn) ID() NodeID       { return n.NodeID }
func (n *CLiteral) ID() NodeID      { return n.NodeID }

func (*CTranslationUnit) CKind() CNodeKind { return CTranslationUnitNode }
func (*CFunction) CKind() CNodeKind        { return CFunctionNode }
func (*CStructDecl) CKind() CNodeKind      { return CStructDeclNode }
func (*CCall) CKind() CNodeKind            { return CCallNode }
func (*CVariable) CKind() CNodeKind        { return CVariableNode }
func (*CReturn) CKind() CNodeKind          { return CReturnNode }
func (*CLiteral) CKind() CNodeKind         { return CLiteralNode }

func (n *CTranslationUnit) Meta() *Metadata { return n.Metadata }
func (n *CFunction) Meta() *Metadata        { return n.Metadata }
func (n *CStructDecl) Meta() *Metadata      { return n.Metadata }
func (n *CCall) Meta() *Metadata            { return n.Metadata }
func (n *CVariable) Meta() *Metadata        { return n.Metadata }
func (n *CReturn) Meta() *Metadata          { return n.Metadata }
func (n *CLiteral) Meta() *Metadata         { return n.Metadata }

func (*CTranslationUnit) isCHIR() {}
func (*CFunction) isCHIR()        {}
func (*CStructDecl) isCHIR()      {}
func (*CCall) isCHIR()            {}
func (*CVariable) isCHIR()        {}
func (*CReturn) isCHIR()          {}
func (*CLiteral) isCHIR()         {}

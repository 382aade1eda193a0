package hir

// Metadata is attached to a node at creation and treated as read-only
// afterwards. The debugger's inspect and visualize commands are its main
// consumers.
type Metadata struct {
	// Source is the location the node originated from, when known.
	Source *SourceLocation
	// PatternUsed names the unification pattern that produced the node,
	// empty for nodes that did not come out of the unifier.
	PatternUsed string
	// DebugNotes carries recoverable diagnostics gathered while the node
	// was built, e.g. arguments that could not be converted.
	DebugNotes []string
}

// NewMetadata creates empty metadata.
func NewMetadata() *Metadata {
	return &Metadata{}
}

// MetadataAt creates metadata holding a source location.
func MetadataAt(loc SourceLocation) *Metadata {
	return &Metadata{Source: &loc}
}

package ferr

import "fmt"

// NodePathEntry is one step in a SyntacticPosition's node path: the
// number of preceding siblings at that depth, and the node's name.
type NodePathEntry struct {
	SiblingIndex int
	Name         string
}

// SyntacticPosition locates an error or warning inside the node tree,
// independent of whether the tree is materialized.
type SyntacticPosition struct {
	// BytePos is the absolute byte offset of the error/warning.
	BytePos uint64
	// ComponentBytePos is the start offset of the enclosing node or
	// attribute.
	ComponentBytePos uint64
	// NodePath is the path from the root to the enclosing node.
	NodePath []NodePathEntry
	// AttributeIndex is set when the position points at an attribute.
	AttributeIndex *int
}

func (p SyntacticPosition) String() string {
	if p.AttributeIndex != nil {
		return fmt.Sprintf("byte %d (component at %d, path=%v, attr=%d)", p.BytePos, p.ComponentBytePos, p.NodePath, *p.AttributeIndex)
	}
	return fmt.Sprintf("byte %d (component at %d, path=%v)", p.BytePos, p.ComponentBytePos, p.NodePath)
}

// Package tree materializes a parsed (or hand-built) FBX node graph into
// an arena of nodes addressed by opaque NodeId handles, with node names
// interned into NameSym symbols. The DOM layer (package dom/v7400) is
// built entirely on top of this layer's read API; nothing below here
// knows about FBX object/connection semantics.
package tree

import "github.com/scigolib/fbx/low"

// NodeId is an opaque handle into a Tree's node arena. The zero value
// is RootID, the implicit root every Tree contains.
type NodeId uint32

// RootID is the NodeId of a Tree's implicit root node: an unnamed node
// with no attributes that owns every top-level node.
const RootID NodeId = 0

// NameSym is an interned node name. Two nodes share a NameSym if and
// only if their names compare byte-equal.
type NameSym uint32

type node struct {
	name       NameSym
	attributes []low.AttributeValue
	parent     NodeId
	firstChild NodeId
	lastChild  NodeId
	prevSib    NodeId
	nextSib    NodeId
	hasParent  bool
}

const noNode NodeId = ^NodeId(0)

// Tree is an arena of nodes built by a single producer (the tree loader
// or direct construction calls) and then read via NodeHandle. A Tree is
// safe for concurrent reads once construction has finished; it provides
// no synchronization for concurrent writes.
type Tree struct {
	nodes   []node
	names   []string
	nameIdx map[string]NameSym
}

// New returns an empty Tree containing only the implicit root.
func New() *Tree {
	t := &Tree{nameIdx: make(map[string]NameSym)}
	root := node{parent: noNode, firstChild: noNode, lastChild: noNode, prevSib: noNode, nextSib: noNode}
	t.nodes = append(t.nodes, root)
	return t
}

// Root returns a handle to the implicit root node.
func (t *Tree) Root() NodeHandle {
	return NodeHandle{id: RootID, tree: t}
}

// HandleFor returns a handle for an id already known to belong to this
// tree (e.g. one retrieved from a handle's ID() and stored elsewhere).
func (t *Tree) HandleFor(id NodeId) NodeHandle {
	return NodeHandle{id: id, tree: t}
}

func (t *Tree) intern(name string) NameSym {
	if sym, ok := t.nameIdx[name]; ok {
		return sym
	}
	sym := NameSym(len(t.names))
	t.names = append(t.names, name)
	t.nameIdx[name] = sym
	return sym
}

// lookupName returns the NameSym for name if it has ever been interned,
// without interning it. Used by ChildrenByName to short-circuit a
// lookup for a name that appears nowhere in the tree.
func (t *Tree) lookupName(name string) (NameSym, bool) {
	sym, ok := t.nameIdx[name]
	return sym, ok
}

func (t *Tree) nameOf(sym NameSym) string { return t.names[sym] }

// NumNodes returns the number of nodes in the arena, including the
// implicit root.
func (t *Tree) NumNodes() int { return len(t.nodes) }

package tree

import "github.com/scigolib/fbx/low"

func (t *Tree) newNode(name string, parent NodeId) NodeId {
	id := NodeId(len(t.nodes))
	t.nodes = append(t.nodes, node{
		name:      t.intern(name),
		parent:    parent,
		hasParent: true,
		firstChild: noNode, lastChild: noNode,
		prevSib: noNode, nextSib: noNode,
	})
	return id
}

// AppendNew creates a new node named name as the last child of parent
// and returns its id. parent must be a node already in this Tree.
func (t *Tree) AppendNew(parent NodeId, name string) NodeId {
	id := t.newNode(name, parent)
	p := &t.nodes[parent]
	if p.lastChild == noNode {
		p.firstChild = id
		p.lastChild = id
	} else {
		last := p.lastChild
		t.nodes[last].nextSib = id
		t.nodes[id].prevSib = last
		p.lastChild = id
	}
	return id
}

// PrependNew creates a new node named name as the first child of parent
// and returns its id.
func (t *Tree) PrependNew(parent NodeId, name string) NodeId {
	id := t.newNode(name, parent)
	p := &t.nodes[parent]
	if p.firstChild == noNode {
		p.firstChild = id
		p.lastChild = id
	} else {
		first := p.firstChild
		t.nodes[first].prevSib = id
		t.nodes[id].nextSib = first
		p.firstChild = id
	}
	return id
}

// InsertNewBefore creates a new node named name immediately before
// sibling, which must not be the implicit root (the root has no
// parent to insert a sibling under) and must already be in this Tree.
// It panics if sibling is RootID.
func (t *Tree) InsertNewBefore(sibling NodeId, name string) NodeId {
	if sibling == RootID {
		panic("tree: cannot insert a sibling of the implicit root")
	}
	parent := t.nodes[sibling].parent
	id := t.newNode(name, parent)
	prev := t.nodes[sibling].prevSib
	t.nodes[id].prevSib = prev
	t.nodes[id].nextSib = sibling
	t.nodes[sibling].prevSib = id
	if prev == noNode {
		t.nodes[parent].firstChild = id
	} else {
		t.nodes[prev].nextSib = id
	}
	return id
}

// InsertNewAfter creates a new node named name immediately after
// sibling. It panics if sibling is RootID.
func (t *Tree) InsertNewAfter(sibling NodeId, name string) NodeId {
	if sibling == RootID {
		panic("tree: cannot insert a sibling of the implicit root")
	}
	parent := t.nodes[sibling].parent
	id := t.newNode(name, parent)
	next := t.nodes[sibling].nextSib
	t.nodes[id].nextSib = next
	t.nodes[id].prevSib = sibling
	t.nodes[sibling].nextSib = id
	if next == noNode {
		t.nodes[parent].lastChild = id
	} else {
		t.nodes[next].prevSib = id
	}
	return id
}

// AppendAttribute appends v to id's attribute list.
func (t *Tree) AppendAttribute(id NodeId, v low.AttributeValue) {
	t.nodes[id].attributes = append(t.nodes[id].attributes, v)
}

package tree

import "github.com/scigolib/fbx/low"

// NodeHandle is a read-only view of one node, pairing a NodeId with the
// Tree that owns it. Handles are cheap to copy and safe to pass by
// value; they are only valid for the lifetime of the owning Tree.
type NodeHandle struct {
	id   NodeId
	tree *Tree
}

// ID returns the handle's underlying NodeId.
func (h NodeHandle) ID() NodeId { return h.id }

// IsRoot reports whether h is the implicit root.
func (h NodeHandle) IsRoot() bool { return h.id == RootID }

func (h NodeHandle) raw() *node { return &h.tree.nodes[h.id] }

// Name returns the node's name. The implicit root's name is "".
func (h NodeHandle) Name() string { return h.tree.nameOf(h.raw().name) }

// Attributes returns the node's attribute list. The slice is owned by
// the Tree and must not be mutated by the caller.
func (h NodeHandle) Attributes() []low.AttributeValue { return h.raw().attributes }

// Parent returns the node's parent and true, or the zero handle and
// false if h is the implicit root.
func (h NodeHandle) Parent() (NodeHandle, bool) {
	n := h.raw()
	if !n.hasParent {
		return NodeHandle{}, false
	}
	return NodeHandle{id: n.parent, tree: h.tree}, true
}

// FirstChild returns the node's first child and true, or false if it
// has no children.
func (h NodeHandle) FirstChild() (NodeHandle, bool) {
	return h.childHandle(h.raw().firstChild)
}

// LastChild returns the node's last child and true, or false if it has
// no children.
func (h NodeHandle) LastChild() (NodeHandle, bool) {
	return h.childHandle(h.raw().lastChild)
}

// PreviousSibling returns the node's previous sibling and true, or
// false if it is the first child (or the root).
func (h NodeHandle) PreviousSibling() (NodeHandle, bool) {
	return h.childHandle(h.raw().prevSib)
}

// NextSibling returns the node's next sibling and true, or false if it
// is the last child (or the root).
func (h NodeHandle) NextSibling() (NodeHandle, bool) {
	return h.childHandle(h.raw().nextSib)
}

func (h NodeHandle) childHandle(id NodeId) (NodeHandle, bool) {
	if id == noNode {
		return NodeHandle{}, false
	}
	return NodeHandle{id: id, tree: h.tree}, true
}

// Children returns an iterator function (compatible with a for range
// over func(yield func(NodeHandle) bool)) walking h's children in
// document order. Go's range-over-func form is used directly by
// callers on Go 1.23+; it can also be called directly with a yield
// function, which stops the walk by returning false.
func (h NodeHandle) Children() func(func(NodeHandle) bool) {
	return func(yield func(NodeHandle) bool) {
		cur, ok := h.FirstChild()
		for ok {
			if !yield(cur) {
				return
			}
			cur, ok = cur.NextSibling()
		}
	}
}

// ChildrenByName returns an iterator over h's children named name, in
// document order. If name has never been interned anywhere in the
// tree, it returns an iterator that yields nothing without walking the
// sibling list at all.
func (h NodeHandle) ChildrenByName(name string) func(func(NodeHandle) bool) {
	sym, ok := h.tree.lookupName(name)
	if !ok {
		return func(func(NodeHandle) bool) {}
	}
	return func(yield func(NodeHandle) bool) {
		cur, ok := h.FirstChild()
		for ok {
			if cur.raw().name == sym {
				if !yield(cur) {
					return
				}
			}
			cur, ok = cur.NextSibling()
		}
	}
}

// FirstChildByName returns the first child named name, or false if
// none exists.
func (h NodeHandle) FirstChildByName(name string) (NodeHandle, bool) {
	var found NodeHandle
	has := false
	h.ChildrenByName(name)(func(c NodeHandle) bool {
		found, has = c, true
		return false
	})
	return found, has
}

// StrictEq recursively compares h and other's names, attributes (via
// low.AttributeValue.StrictEqual, so NaN/Inf bit patterns must match
// exactly), and children in order.
func (h NodeHandle) StrictEq(other NodeHandle) bool {
	if h.Name() != other.Name() {
		return false
	}
	a, b := h.Attributes(), other.Attributes()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].StrictEqual(b[i]) {
			return false
		}
	}

	ca, oka := h.FirstChild()
	cb, okb := other.FirstChild()
	for oka && okb {
		if !ca.StrictEq(cb) {
			return false
		}
		ca, oka = ca.NextSibling()
		cb, okb = cb.NextSibling()
	}
	return oka == okb
}

package v7400

import (
	"strings"

	"github.com/scigolib/fbx/tree"
)

// objectNameSeparator splits a raw /Objects child's "name_class"
// attribute into its name and class components. FBX encodes it as
// "Name Class" in a single string attribute.
const objectNameSeparator = " "

// ObjectMeta is the per-object metadata extracted from one /Objects
// child (or /Documents/Document) node during Load.
type ObjectMeta struct {
	ID       ObjectId
	NodeID   tree.NodeId
	Name     string
	Class    ClassSym
	Subclass SubclassSym
}

// ObjectsCache indexes every object declared under /Objects (plus scene
// nodes declared under /Documents), keyed both by ObjectId and by the
// tree.NodeId of the node that declared it.
type ObjectsCache struct {
	classes    *symTable
	subclasses *symTable

	byID     map[ObjectId]*ObjectMeta
	byNodeID map[tree.NodeId]*ObjectMeta

	// documentNodeIDs holds the NodeId of every /Documents/Document
	// node, i.e. the scene roots.
	documentNodeIDs []tree.NodeId
}

func newObjectsCache() *ObjectsCache {
	return &ObjectsCache{
		classes:    newSymTable(),
		subclasses: newSymTable(),
		byID:       make(map[ObjectId]*ObjectMeta),
		byNodeID:   make(map[tree.NodeId]*ObjectMeta),
	}
}

// Object returns the metadata for id, or false if no object with that
// id exists.
func (c *ObjectsCache) Object(id ObjectId) (*ObjectMeta, bool) {
	m, ok := c.byID[id]
	return m, ok
}

// ObjectByNode returns the metadata for the object declared by the
// given tree node, or false if that node did not declare an object.
func (c *ObjectsCache) ObjectByNode(n tree.NodeId) (*ObjectMeta, bool) {
	m, ok := c.byNodeID[n]
	return m, ok
}

// ClassName returns the interned string for a ClassSym.
func (c *ObjectsCache) ClassName(s ClassSym) string { return c.classes.String(int(s)) }

// SubclassName returns the interned string for a SubclassSym.
func (c *ObjectsCache) SubclassName(s SubclassSym) string { return c.subclasses.String(int(s)) }

// DocumentNodeIDs returns the NodeId of every /Documents/Document node
// (scene roots), in declaration order.
func (c *ObjectsCache) DocumentNodeIDs() []tree.NodeId { return c.documentNodeIDs }

// splitNameClass splits raw on objectNameSeparator, returning ("", raw)
// if the separator is absent (some nodes, e.g. the Document node
// itself, use the whole string as the class with no name).
func splitNameClass(raw string) (name, class string) {
	if idx := strings.Index(raw, objectNameSeparator); idx >= 0 {
		return raw[:idx], raw[idx+len(objectNameSeparator):]
	}
	return "", raw
}

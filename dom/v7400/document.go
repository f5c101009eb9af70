package v7400

import (
	"io"

	"github.com/scigolib/fbx/ferr"
	"github.com/scigolib/fbx/tree"
)

// Document is the fully-indexed semantic object graph for one FBX 7.4/
// 7.5 file: the object table, the connection graph, and property
// template defaults, all built from a single pass over a tree.Tree.
// Immutable once returned by Load/LoadFromTree.
type Document struct {
	Tree        *tree.Tree
	Objects     *ObjectsCache
	Connections *ConnectionsCache
	Definitions *DefinitionsCache
}

// Load parses r as an FBX binary stream into a tree and then into a
// Document.
func Load(r io.Reader) (*Document, error) {
	t, _, err := tree.Load(r)
	if err != nil {
		return nil, err
	}
	return LoadFromTree(t)
}

// LoadFromTree builds a Document from an already-materialized tree,
// walking /Objects, /Documents, /Connections and /Definitions exactly
// once each.
func LoadFromTree(t *tree.Tree) (*Document, error) {
	doc := &Document{
		Tree:        t,
		Objects:     newObjectsCache(),
		Connections: newConnectionsCache(),
		Definitions: newDefinitionsCache(),
	}

	objectsNode, hasObjects := t.Root().FirstChildByName("Objects")
	if !hasObjects {
		return nil, ferr.New(ferr.NewMissingObjectsNode())
	}
	if err := doc.loadObjects(objectsNode); err != nil {
		return nil, err
	}

	documentsNode, hasDocuments := t.Root().FirstChildByName("Documents")
	if !hasDocuments {
		return nil, ferr.New(ferr.NewMissingDocumentsNode())
	}
	if err := doc.loadDocuments(documentsNode); err != nil {
		return nil, err
	}

	if connectionsNode, ok := t.Root().FirstChildByName("Connections"); ok {
		if err := doc.loadConnections(connectionsNode); err != nil {
			return nil, err
		}
	}
	doc.Connections.buildSortedIndices()

	if definitionsNode, ok := t.Root().FirstChildByName("Definitions"); ok {
		doc.loadDefinitions(definitionsNode)
	}

	return doc, nil
}

func (doc *Document) loadObjects(objectsNode tree.NodeHandle) error {
	var outerErr error
	objectsNode.Children()(func(child tree.NodeHandle) bool {
		attrs := child.Attributes()
		if len(attrs) < 3 {
			return true
		}
		idVal, ok := attrs[0].I64()
		if !ok {
			return true
		}
		rawNameClass, ok := attrs[1].String()
		if !ok {
			return true
		}
		subclassStr, ok := attrs[2].String()
		if !ok {
			return true
		}

		id := ObjectId(idVal)
		if _, exists := doc.Objects.byID[id]; exists {
			outerErr = ferr.New(ferr.NewDuplicateObjectId(int64(id)))
			return false
		}

		name, class := splitNameClass(rawNameClass)
		meta := &ObjectMeta{
			ID:       id,
			NodeID:   child.ID(),
			Name:     name,
			Class:    ClassSym(doc.Objects.classes.intern(class)),
			Subclass: SubclassSym(doc.Objects.subclasses.intern(subclassStr)),
		}
		doc.Objects.byID[id] = meta
		doc.Objects.byNodeID[child.ID()] = meta
		return true
	})
	return outerErr
}

func (doc *Document) loadDocuments(documentsNode tree.NodeHandle) error {
	var outerErr error
	documentsNode.ChildrenByName("Document")(func(child tree.NodeHandle) bool {
		attrs := child.Attributes()
		if len(attrs) < 1 {
			return true
		}
		idVal, ok := attrs[0].I64()
		if !ok {
			return true
		}
		id := ObjectId(idVal)

		if _, exists := doc.Objects.byID[id]; exists {
			outerErr = ferr.New(ferr.NewDuplicateObjectId(int64(id)))
			return false
		}

		name := ""
		class := "Document"
		if len(attrs) >= 2 {
			if rawNameClass, ok := attrs[1].String(); ok {
				name, class = splitNameClass(rawNameClass)
			}
		}

		meta := &ObjectMeta{
			ID:     id,
			NodeID: child.ID(),
			Name:   name,
			Class:  ClassSym(doc.Objects.classes.intern(class)),
		}
		doc.Objects.byID[id] = meta
		doc.Objects.byNodeID[child.ID()] = meta
		doc.Objects.documentNodeIDs = append(doc.Objects.documentNodeIDs, child.ID())
		return true
	})
	return outerErr
}

func (doc *Document) loadConnections(connectionsNode tree.NodeHandle) error {
	var outerErr error
	index := 0
	connectionsNode.ChildrenByName("C")(func(child tree.NodeHandle) bool {
		attrs := child.Attributes()
		if len(attrs) < 3 {
			return true
		}
		typeStr, ok := attrs[0].String()
		if !ok {
			return true
		}
		srcVal, ok := attrs[1].I64()
		if !ok {
			return true
		}
		destVal, ok := attrs[2].I64()
		if !ok {
			return true
		}
		destKind, srcKind, ok := connKindsFromTypeString(typeStr)
		if !ok {
			return true
		}

		var label *LabelSym
		if len(attrs) >= 4 {
			if labelStr, ok := attrs[3].String(); ok {
				sym := LabelSym(doc.Connections.labels.intern(labelStr))
				label = &sym
			}
		}

		src := ObjectId(srcVal)
		dest := ObjectId(destVal)
		if doc.isDuplicateConnection(src, dest, label) {
			outerErr = ferr.New(ferr.NewDuplicateConnection(int64(src), int64(dest)))
			return false
		}

		doc.Connections.connections = append(doc.Connections.connections, Connection{
			Index:           ConnectionIndex(index),
			Source:          src,
			Destination:     dest,
			SourceKind:      srcKind,
			DestinationKind: destKind,
			Label:           label,
		})
		index++
		return true
	})
	return outerErr
}

func (doc *Document) isDuplicateConnection(src, dest ObjectId, label *LabelSym) bool {
	for _, c := range doc.Connections.connections {
		if c.Source != src || c.Destination != dest {
			continue
		}
		if (c.Label == nil) != (label == nil) {
			continue
		}
		if c.Label != nil && label != nil && *c.Label != *label {
			continue
		}
		return true
	}
	return false
}

func (doc *Document) loadDefinitions(definitionsNode tree.NodeHandle) {
	definitionsNode.ChildrenByName("ObjectType")(func(objType tree.NodeHandle) bool {
		attrs := objType.Attributes()
		objectNodeName := ""
		if len(attrs) >= 1 {
			if s, ok := attrs[0].String(); ok {
				objectNodeName = s
			}
		}
		if objectNodeName == "" {
			doc.Definitions.skip(objType.ID(), SkippedMalformedObjectType)
			return true
		}

		objType.ChildrenByName("PropertyTemplate")(func(tmpl tree.NodeHandle) bool {
			tattrs := tmpl.Attributes()
			if len(tattrs) < 1 {
				doc.Definitions.skip(tmpl.ID(), SkippedMissingNativeType)
				return true
			}
			nativeType, ok := tattrs[0].String()
			if !ok || nativeType == "" {
				doc.Definitions.skip(tmpl.ID(), SkippedMissingNativeType)
				return true
			}
			props70, ok := tmpl.FirstChildByName("Properties70")
			if !ok {
				doc.Definitions.skip(tmpl.ID(), SkippedMissingProperties70)
				return true
			}
			doc.Definitions.register(objectNodeName, nativeType, props70.ID())
			return true
		})
		return true
	})
}

// PropertiesByNativeTypename looks up the effective Properties70 node
// for an object's native type: the object's own Properties70 child
// takes priority; if absent, the template registered for
// (objectNodeName, nativeType) is used; if neither exists,
// the second return is false.
func (doc *Document) PropertiesByNativeTypename(objectNodeName string, object tree.NodeHandle, nativeType string) (tree.NodeHandle, bool) {
	if own, ok := object.FirstChildByName("Properties70"); ok {
		return own, true
	}
	id, ok := doc.Definitions.Properties70For(objectNodeName, nativeType)
	if !ok {
		return tree.NodeHandle{}, false
	}
	return doc.Tree.HandleFor(id), true
}

package v7400

import "github.com/scigolib/fbx/tree"

// ObjectHandle pairs a Document with one of its object's metadata,
// giving callers access to both the object's own tree node and the
// document-wide caches needed to navigate its connections.
type ObjectHandle struct {
	Doc  *Document
	Meta *ObjectMeta
}

// Object returns a handle for id, or false if no such object exists.
func (doc *Document) Object(id ObjectId) (ObjectHandle, bool) {
	meta, ok := doc.Objects.Object(id)
	if !ok {
		return ObjectHandle{}, false
	}
	return ObjectHandle{Doc: doc, Meta: meta}, true
}

// Node returns the tree node that declared this object.
func (h ObjectHandle) Node() tree.NodeHandle { return h.Doc.Tree.HandleFor(h.Meta.NodeID) }

// Class returns the object's class string (e.g. "Model", "Geometry").
func (h ObjectHandle) Class() string { return h.Doc.Objects.ClassName(h.Meta.Class) }

// Subclass returns the object's subclass string (e.g. "Mesh", "Skin").
func (h ObjectHandle) Subclass() string { return h.Doc.Objects.SubclassName(h.Meta.Subclass) }

// destinationObjectsByLabel returns every object this one points to via
// an OO/OP outgoing connection whose label (nil meaning "no label")
// matches wantLabel, and whose class/subclass match classPred.
func (h ObjectHandle) destinationObjectsByLabel(wantLabel *string, classPred func(ObjectHandle) bool) []ObjectHandle {
	var out []ObjectHandle
	for _, c := range h.Doc.Connections.OutgoingConnections(h.Meta.ID) {
		if c.DestinationKind != ConnObject {
			continue
		}
		if !labelMatches(h.Doc, c.Label, wantLabel) {
			continue
		}
		dest, ok := h.Doc.Object(c.Destination)
		if !ok {
			continue
		}
		if classPred != nil && !classPred(dest) {
			continue
		}
		out = append(out, dest)
	}
	return out
}

// sourceObjectsByLabel is destinationObjectsByLabel's incoming-side
// counterpart: objects that connect to this one.
func (h ObjectHandle) sourceObjectsByLabel(wantLabel *string, classPred func(ObjectHandle) bool) []ObjectHandle {
	var out []ObjectHandle
	for _, c := range h.Doc.Connections.IncomingConnections(h.Meta.ID) {
		if c.SourceKind != ConnObject {
			continue
		}
		if !labelMatches(h.Doc, c.Label, wantLabel) {
			continue
		}
		src, ok := h.Doc.Object(c.Source)
		if !ok {
			continue
		}
		if classPred != nil && !classPred(src) {
			continue
		}
		out = append(out, src)
	}
	return out
}

func labelMatches(doc *Document, got *LabelSym, want *string) bool {
	if want == nil {
		return got == nil
	}
	if got == nil {
		return false
	}
	return doc.Connections.LabelName(*got) == *want
}

func classIs(class string) func(ObjectHandle) bool {
	return func(h ObjectHandle) bool { return h.Class() == class }
}

// --- Model navigation -------------------------------------------------

// ModelParent returns the parent Model this one is attached to via an
// unlabeled OO connection, if any.
func (h ObjectHandle) ModelParent() (ObjectHandle, bool) {
	parents := h.destinationObjectsByLabel(nil, classIs("Model"))
	if len(parents) == 0 {
		return ObjectHandle{}, false
	}
	return parents[0], true
}

// ChildModels returns every Model attached below this one via an
// unlabeled OO connection.
func (h ObjectHandle) ChildModels() []ObjectHandle {
	return h.sourceObjectsByLabel(nil, classIs("Model"))
}

// --- Geometry/Deformer (mesh <-> skin) navigation ----------------------

// SkinDeformers returns every Skin deformer attached to this geometry.
func (h ObjectHandle) SkinDeformers() []ObjectHandle {
	return h.sourceObjectsByLabel(nil, func(o ObjectHandle) bool {
		return o.Class() == "Deformer" && o.Subclass() == "Skin"
	})
}

// DeformedGeometry returns the geometry this Skin deformer is attached
// to, if any.
func (h ObjectHandle) DeformedGeometry() (ObjectHandle, bool) {
	dests := h.destinationObjectsByLabel(nil, classIs("Geometry"))
	if len(dests) == 0 {
		return ObjectHandle{}, false
	}
	return dests[0], true
}

// --- Texture/Video navigation -------------------------------------------

// ClipVideo returns the Video/Clip backing this Texture, if any.
func (h ObjectHandle) ClipVideo() (ObjectHandle, bool) {
	dests := h.destinationObjectsByLabel(nil, func(o ObjectHandle) bool {
		return o.Class() == "Video" && o.Subclass() == "Clip"
	})
	if len(dests) == 0 {
		return ObjectHandle{}, false
	}
	return dests[0], true
}

// --- Material/Texture navigation ----------------------------------------

// diffuseLabel is the connection label FBX uses for a material's
// diffuse color texture slot.
const diffuseLabel = "DiffuseColor"

// DiffuseTexture returns the Texture connected to this Material via the
// "DiffuseColor" labeled connection, if any.
func (h ObjectHandle) DiffuseTexture() (ObjectHandle, bool) {
	label := diffuseLabel
	dests := h.destinationObjectsByLabel(&label, classIs("Texture"))
	if len(dests) == 0 {
		return ObjectHandle{}, false
	}
	return dests[0], true
}

// --- Scene roots ---------------------------------------------------------

// SceneRoots returns a handle for every /Documents/Document node, i.e.
// every scene root object in the document.
func (doc *Document) SceneRoots() []ObjectHandle {
	ids := doc.Objects.DocumentNodeIDs()
	out := make([]ObjectHandle, 0, len(ids))
	for _, nodeID := range ids {
		meta, ok := doc.Objects.ObjectByNode(nodeID)
		if !ok {
			continue
		}
		out = append(out, ObjectHandle{Doc: doc, Meta: meta})
	}
	return out
}

package v7400

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scigolib/fbx/ferr"
	"github.com/scigolib/fbx/low"
	"github.com/scigolib/fbx/tree"
)

// buildMinimalScene constructs:
//
//	Objects
//	  Model: "Model::Cube", "Mesh" (id 1)
//	  Geometry: "Geometry::CubeMesh", "Mesh" (id 3)
//	Documents
//	  Document (id 2)
//	Connections
//	  C "OO" 1 3   (Model attached under Geometry's destination slot, for test purposes)
func buildMinimalScene(t *testing.T) *tree.Tree {
	t.Helper()
	tr := tree.New()

	objects := tr.AppendNew(tree.RootID, "Objects")
	model := tr.AppendNew(objects, "Model")
	tr.AppendAttribute(model, low.NewI64(1))
	tr.AppendAttribute(model, low.NewString("Model::Cube\x00\x01Model"))
	tr.AppendAttribute(model, low.NewString("Mesh"))

	geometry := tr.AppendNew(objects, "Geometry")
	tr.AppendAttribute(geometry, low.NewI64(3))
	tr.AppendAttribute(geometry, low.NewString("Geometry::CubeMesh\x00\x01Geometry"))
	tr.AppendAttribute(geometry, low.NewString("Mesh"))

	documents := tr.AppendNew(tree.RootID, "Documents")
	doc := tr.AppendNew(documents, "Document")
	tr.AppendAttribute(doc, low.NewI64(2))
	tr.AppendAttribute(doc, low.NewString("Scene\x00\x01Document"))

	connections := tr.AppendNew(tree.RootID, "Connections")
	c := tr.AppendNew(connections, "C")
	tr.AppendAttribute(c, low.NewString("OO"))
	tr.AppendAttribute(c, low.NewI64(1))
	tr.AppendAttribute(c, low.NewI64(3))

	return tr
}

func TestLoadFromTree_IndexesObjects(t *testing.T) {
	doc, err := LoadFromTree(buildMinimalScene(t))
	require.NoError(t, err)

	model, ok := doc.Object(1)
	require.True(t, ok)
	require.Equal(t, "Model::Cube", model.Meta.Name)
	require.Equal(t, "Model", model.Class())
	require.Equal(t, "Mesh", model.Subclass())

	geo, ok := doc.Object(3)
	require.True(t, ok)
	require.Equal(t, "Geometry", geo.Class())
}

func TestLoadFromTree_SceneRoots(t *testing.T) {
	doc, err := LoadFromTree(buildMinimalScene(t))
	require.NoError(t, err)

	roots := doc.SceneRoots()
	require.Len(t, roots, 1)
	require.EqualValues(t, 2, roots[0].Meta.ID)
	require.Equal(t, "Scene", roots[0].Meta.Name)
}

func TestLoadFromTree_MissingObjectsNode(t *testing.T) {
	tr := tree.New()
	tr.AppendNew(tree.RootID, "Documents")
	_, err := LoadFromTree(tr)
	require.Error(t, err)
	require.ErrorIs(t, err, ferr.NewMissingObjectsNode())
}

func TestLoadFromTree_MissingDocumentsNode(t *testing.T) {
	tr := tree.New()
	tr.AppendNew(tree.RootID, "Objects")
	_, err := LoadFromTree(tr)
	require.Error(t, err)
	require.ErrorIs(t, err, ferr.NewMissingDocumentsNode())
}

func TestLoadFromTree_DuplicateObjectId(t *testing.T) {
	tr := tree.New()
	objects := tr.AppendNew(tree.RootID, "Objects")
	for i := 0; i < 2; i++ {
		n := tr.AppendNew(objects, "Model")
		tr.AppendAttribute(n, low.NewI64(5))
		tr.AppendAttribute(n, low.NewString("A\x00\x01Model"))
		tr.AppendAttribute(n, low.NewString(""))
	}
	tr.AppendNew(tree.RootID, "Documents")

	_, err := LoadFromTree(tr)
	require.Error(t, err)
	require.ErrorIs(t, err, ferr.NewDuplicateObjectId(0))
}

func TestConnections_OutgoingAndIncoming(t *testing.T) {
	doc, err := LoadFromTree(buildMinimalScene(t))
	require.NoError(t, err)

	out := doc.Connections.OutgoingConnections(1)
	require.Len(t, out, 1)
	require.EqualValues(t, 3, out[0].Destination)

	in := doc.Connections.IncomingConnections(3)
	require.Len(t, in, 1)
	require.EqualValues(t, 1, in[0].Source)

	require.Empty(t, doc.Connections.OutgoingConnections(3))
	require.Empty(t, doc.Connections.IncomingConnections(1))
}

func TestConnections_IncomingUsesDestSortedIndex(t *testing.T) {
	// Build a graph where src-sorted and dest-sorted order diverge:
	// many objects point at a single high-id destination, and that
	// destination also has one low-id outgoing connection. A buggy
	// implementation that reuses the source-sorted index for incoming
	// lookups will fail to find the 40→20 connection.
	tr := tree.New()
	objects := tr.AppendNew(tree.RootID, "Objects")
	newObj := func(id int64) {
		n := tr.AppendNew(objects, "Model")
		tr.AppendAttribute(n, low.NewI64(id))
		tr.AppendAttribute(n, low.NewString("X\x00\x01Model"))
		tr.AppendAttribute(n, low.NewString(""))
	}
	for _, id := range []int64{10, 20, 30, 40} {
		newObj(id)
	}
	tr.AppendNew(tree.RootID, "Documents")

	connections := tr.AppendNew(tree.RootID, "Connections")
	addConn := func(src, dest int64) {
		c := tr.AppendNew(connections, "C")
		tr.AppendAttribute(c, low.NewString("OO"))
		tr.AppendAttribute(c, low.NewI64(src))
		tr.AppendAttribute(c, low.NewI64(dest))
	}
	addConn(10, 40)
	addConn(20, 40)
	addConn(30, 40)
	addConn(40, 20)

	doc, err := LoadFromTree(tr)
	require.NoError(t, err)

	in := doc.Connections.IncomingConnections(40)
	require.Len(t, in, 3)

	require.Len(t, doc.Connections.IncomingConnections(20), 1)
	require.Empty(t, doc.Connections.IncomingConnections(10))
}

func TestDuplicateConnectionRejected(t *testing.T) {
	tr := buildMinimalScene(t)
	connections, ok := tr.Root().FirstChildByName("Connections")
	require.True(t, ok)
	c := tr.AppendNew(connections.ID(), "C")
	tr.AppendAttribute(c, low.NewString("OO"))
	tr.AppendAttribute(c, low.NewI64(1))
	tr.AppendAttribute(c, low.NewI64(3))

	_, err := LoadFromTree(tr)
	require.Error(t, err)
}

func TestDefinitions_DirectThenTemplateLookup(t *testing.T) {
	tr := tree.New()
	objects := tr.AppendNew(tree.RootID, "Objects")
	model := tr.AppendNew(objects, "Model")
	tr.AppendAttribute(model, low.NewI64(1))
	tr.AppendAttribute(model, low.NewString("M\x00\x01Model"))
	tr.AppendAttribute(model, low.NewString(""))
	tr.AppendNew(tree.RootID, "Documents")

	definitions := tr.AppendNew(tree.RootID, "Definitions")
	objType := tr.AppendNew(definitions, "ObjectType")
	tr.AppendAttribute(objType, low.NewString("Model"))
	tmpl := tr.AppendNew(objType, "PropertyTemplate")
	tr.AppendAttribute(tmpl, low.NewString("FbxNode"))
	props := tr.AppendNew(tmpl, "Properties70")
	tr.AppendAttribute(props, low.NewString("marker"))

	doc, err := LoadFromTree(tr)
	require.NoError(t, err)

	h, ok := doc.Object(1)
	require.True(t, ok)

	resolved, ok := doc.PropertiesByNativeTypename("Model", h.Node(), "FbxNode")
	require.True(t, ok)
	require.Equal(t, props, resolved.ID())
}

func TestDefinitions_OwnPropertiesTakePriorityOverTemplate(t *testing.T) {
	tr := tree.New()
	objects := tr.AppendNew(tree.RootID, "Objects")
	model := tr.AppendNew(objects, "Model")
	tr.AppendAttribute(model, low.NewI64(1))
	tr.AppendAttribute(model, low.NewString("M\x00\x01Model"))
	tr.AppendAttribute(model, low.NewString(""))
	ownProps := tr.AppendNew(model, "Properties70")
	tr.AppendNew(tree.RootID, "Documents")

	definitions := tr.AppendNew(tree.RootID, "Definitions")
	objType := tr.AppendNew(definitions, "ObjectType")
	tr.AppendAttribute(objType, low.NewString("Model"))
	tmpl := tr.AppendNew(objType, "PropertyTemplate")
	tr.AppendAttribute(tmpl, low.NewString("FbxNode"))
	tmplProps := tr.AppendNew(tmpl, "Properties70")
	tr.AppendAttribute(tmplProps, low.NewString("marker"))

	doc, err := LoadFromTree(tr)
	require.NoError(t, err)

	h, ok := doc.Object(1)
	require.True(t, ok)
	resolved, ok := doc.PropertiesByNativeTypename("Model", h.Node(), "FbxNode")
	require.True(t, ok)
	require.Equal(t, ownProps, resolved.ID())
}

func TestTypedDispatch(t *testing.T) {
	doc, err := LoadFromTree(buildMinimalScene(t))
	require.NoError(t, err)

	model, ok := doc.Object(1)
	require.True(t, ok)
	kind, ok := model.Typed()
	require.True(t, ok)
	require.Equal(t, KindModelMesh, kind)

	geo, ok := doc.Object(3)
	require.True(t, ok)
	kind, ok = geo.Typed()
	require.True(t, ok)
	require.Equal(t, KindGeometryMesh, kind)
}

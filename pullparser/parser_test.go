package pullparser

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scigolib/fbx/ferr"
	"github.com/scigolib/fbx/low"
)

func TestNextEvent_EmptyDocument(t *testing.T) {
	data := buildDocument(low.V7_4, nil)
	p, err := NewFromReader(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, low.FbxVersion(low.V7_4), p.FbxVersion())

	ev, err := p.NextEvent()
	require.NoError(t, err)
	require.Equal(t, EventEndFbx, ev.Kind)
	require.NoError(t, ev.FooterErr)
}

func TestNextEvent_SingleNodeWithScalarAttribute(t *testing.T) {
	data := buildDocument(low.V7_4, []testNode{
		{name: "Version", attrs: [][]byte{encI32(7400)}},
	})
	p, err := NewFromReader(bytes.NewReader(data))
	require.NoError(t, err)

	ev, err := p.NextEvent()
	require.NoError(t, err)
	require.Equal(t, EventStartNode, ev.Kind)
	require.Equal(t, "Version", ev.Name)
	require.EqualValues(t, 1, ev.Attributes.TotalCount())

	v, ok, err := LoadNext[int32](ev.Attributes, NumericLoader[int32]{Strict: true})
	require.NoError(t, err)
	require.True(t, ok)
	require.EqualValues(t, 7400, v)

	ev, err = p.NextEvent()
	require.NoError(t, err)
	require.Equal(t, EventEndNode, ev.Kind)

	ev, err = p.NextEvent()
	require.NoError(t, err)
	require.Equal(t, EventEndFbx, ev.Kind)
}

func TestNextEvent_NestedNodes(t *testing.T) {
	data := buildDocument(low.V7_4, []testNode{
		{
			name: "Objects",
			children: []testNode{
				{name: "Model", attrs: [][]byte{encString("Cube")}},
			},
		},
	})
	p, err := NewFromReader(bytes.NewReader(data))
	require.NoError(t, err)

	ev, err := p.NextEvent()
	require.NoError(t, err)
	require.Equal(t, EventStartNode, ev.Kind)
	require.Equal(t, "Objects", ev.Name)
	require.Equal(t, 1, p.CurrentDepth())

	ev, err = p.NextEvent()
	require.NoError(t, err)
	require.Equal(t, EventStartNode, ev.Kind)
	require.Equal(t, "Model", ev.Name)
	require.Equal(t, 2, p.CurrentDepth())

	name, ok, err := LoadNext[string](ev.Attributes, NewStringLoader())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Cube", name)

	ev, err = p.NextEvent() // end Model
	require.NoError(t, err)
	require.Equal(t, EventEndNode, ev.Kind)

	ev, err = p.NextEvent() // end Objects
	require.NoError(t, err)
	require.Equal(t, EventEndNode, ev.Kind)

	ev, err = p.NextEvent()
	require.NoError(t, err)
	require.Equal(t, EventEndFbx, ev.Kind)
}

func TestNextEvent_SkipsUnreadAttributes(t *testing.T) {
	data := buildDocument(low.V7_4, []testNode{
		{name: "P", attrs: [][]byte{encI32(1), encI32(2), encI32(3)}},
	})
	p, err := NewFromReader(bytes.NewReader(data))
	require.NoError(t, err)

	ev, err := p.NextEvent()
	require.NoError(t, err)
	require.EqualValues(t, 3, ev.Attributes.TotalCount())
	// Deliberately never call LoadNext: NextEvent must skip the rest.

	ev, err = p.NextEvent()
	require.NoError(t, err)
	require.Equal(t, EventEndNode, ev.Kind)
}

func TestNextEvent_CompressedArrayAttribute(t *testing.T) {
	vals := []int32{10, 20, 30, 40}
	data := buildDocument(low.V7_4, []testNode{
		{name: "Indices", attrs: [][]byte{encArrI32(true, vals)}},
	})
	p, err := NewFromReader(bytes.NewReader(data))
	require.NoError(t, err)

	ev, err := p.NextEvent()
	require.NoError(t, err)

	got, ok, err := LoadNext[low.AttributeValue](ev.Attributes, NewDirectLoader())
	require.NoError(t, err)
	require.True(t, ok)
	arr, isArr := got.ArrI32()
	require.True(t, isArr)
	require.Equal(t, vals, arr)
}

func TestNextEvent_EmptyNodeNameWarns(t *testing.T) {
	data := buildDocument(low.V7_4, []testNode{{name: ""}})
	p, err := NewFromReader(bytes.NewReader(data))
	require.NoError(t, err)

	var warnings []ferr.WarningKind
	p.SetWarningHandler(func(w ferr.Warning, pos ferr.SyntacticPosition) error {
		warnings = append(warnings, w.Kind)
		return nil
	})

	ev, err := p.NextEvent()
	require.NoError(t, err)
	require.Equal(t, EventStartNode, ev.Kind)
	require.Contains(t, warnings, ferr.WarnEmptyNodeName)
}

func TestNextEvent_MissingEndMarkerWarns(t *testing.T) {
	data := buildDocument(low.V7_4, []testNode{{name: "Leaf", omitEndMarker: true}})
	p, err := NewFromReader(bytes.NewReader(data))
	require.NoError(t, err)

	var warnings []ferr.WarningKind
	p.SetWarningHandler(func(w ferr.Warning, pos ferr.SyntacticPosition) error {
		warnings = append(warnings, w.Kind)
		return nil
	})

	ev, err := p.NextEvent()
	require.NoError(t, err)
	require.Equal(t, EventStartNode, ev.Kind)

	ev, err = p.NextEvent()
	require.NoError(t, err)
	require.Equal(t, EventEndNode, ev.Kind)
	require.Contains(t, warnings, ferr.WarnMissingNodeEndMarker)
}

func TestNextEvent_WarningPromotedToError(t *testing.T) {
	data := buildDocument(low.V7_4, []testNode{{name: ""}})
	p, err := NewFromReader(bytes.NewReader(data))
	require.NoError(t, err)

	p.SetWarningHandler(func(w ferr.Warning, pos ferr.SyntacticPosition) error {
		return w
	})

	_, err = p.NextEvent()
	require.Error(t, err)

	// The parser must now be permanently aborted.
	_, err = p.NextEvent()
	require.ErrorIs(t, err, ferr.ErrAlreadyAborted)
}

func TestUnsupportedVersionRejected(t *testing.T) {
	var buf bytes.Buffer
	hdr := low.FbxHeader{Version: low.FbxVersion(6100)}
	require.NoError(t, hdr.Write(&buf))

	_, err := NewFromReader(&buf)
	require.Error(t, err)
}

package writer

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scigolib/fbx/ferr"
	"github.com/scigolib/fbx/low"
	"github.com/scigolib/fbx/pullparser"
	"github.com/scigolib/fbx/tree"
)

func TestEmptyDocument_ExactByteLayout(t *testing.T) {
	f := &memFile{}
	w, err := NewWriter(f, low.V7_4)
	require.NoError(t, err)
	require.NoError(t, w.Finalize(nil, -1))

	out := f.Bytes()
	require.True(t, bytes.HasPrefix(out, low.Magic))

	versionOff := len(low.Magic)
	gotVersion := low.FbxVersion(
		uint32(out[versionOff]) | uint32(out[versionOff+1])<<8 |
			uint32(out[versionOff+2])<<16 | uint32(out[versionOff+3])<<24,
	)
	require.Equal(t, low.V7_4, gotVersion)

	require.Zero(t, len(out)%16, "file length must be a multiple of 16")
}

func TestSingleEmptyNode_RoundTrips(t *testing.T) {
	f := &memFile{}
	w, err := NewWriter(f, low.V7_4)
	require.NoError(t, err)

	_, err = w.NewNode("Empty")
	require.NoError(t, err)
	require.NoError(t, w.CloseNode())
	require.NoError(t, w.Finalize(nil, -1))

	p, err := pullparser.NewFromSeekableReader(newReadSeeker(f.Bytes()))
	require.NoError(t, err)

	ev, err := p.NextEvent()
	require.NoError(t, err)
	require.Equal(t, pullparser.EventStartNode, ev.Kind)
	require.Equal(t, "Empty", ev.Name)
	require.EqualValues(t, 0, ev.Attributes.TotalCount())

	ev, err = p.NextEvent()
	require.NoError(t, err)
	require.Equal(t, pullparser.EventEndNode, ev.Kind)

	ev, err = p.NextEvent()
	require.NoError(t, err)
	require.Equal(t, pullparser.EventEndFbx, ev.Kind)
	require.NoError(t, ev.FooterErr)
}

func TestSixAttributeRoundTrip(t *testing.T) {
	f := &memFile{}
	w, err := NewWriter(f, low.V7_4)
	require.NoError(t, err)

	attrs, err := w.NewNode("Mixed")
	require.NoError(t, err)
	require.NoError(t, attrs.AppendBool(true))
	require.NoError(t, attrs.AppendI32(42))
	require.NoError(t, attrs.AppendI64(-1))
	require.NoError(t, attrs.AppendF64(math.NaN()))
	require.NoError(t, attrs.AppendArrF32FromSlice([]float32{float32(1), float32(2)}, false))
	require.NoError(t, attrs.AppendStringDirect("hello"))
	require.NoError(t, w.CloseNode())
	require.NoError(t, w.Finalize(nil, -1))

	tr, footer, err := loadTreeFromBytes(t, f.Bytes())
	require.NoError(t, err)
	require.Equal(t, low.V7_4, footer.Version)

	root := tr.Root()
	child, ok := root.FirstChild()
	require.True(t, ok)
	require.Equal(t, "Mixed", child.Name())

	attrVals := child.Attributes()
	require.Len(t, attrVals, 6)

	b, ok := attrVals[0].Bool()
	require.True(t, ok)
	require.True(t, b)

	s, ok := attrVals[5].String()
	require.True(t, ok)
	require.Equal(t, "hello", s)
}

func TestCompressedArrayRoundTrip(t *testing.T) {
	f := &memFile{}
	w, err := NewWriter(f, low.V7_4)
	require.NoError(t, err)

	vals := make([]int32, 200)
	for i := range vals {
		vals[i] = int32(i)
	}

	attrs, err := w.NewNode("Indices")
	require.NoError(t, err)
	require.NoError(t, attrs.AppendArrI32FromSlice(vals, true))
	require.NoError(t, w.CloseNode())
	require.NoError(t, w.Finalize(nil, -1))

	tr, _, err := loadTreeFromBytes(t, f.Bytes())
	require.NoError(t, err)

	child, ok := tr.Root().FirstChild()
	require.True(t, ok)
	got, ok := child.Attributes()[0].ArrI32()
	require.True(t, ok)
	require.Equal(t, vals, got)
}

func TestCloseNode_WithoutOpenNode_Errors(t *testing.T) {
	f := &memFile{}
	w, err := NewWriter(f, low.V7_4)
	require.NoError(t, err)
	require.Error(t, w.CloseNode())
}

func TestFinalize_RefusesWithOpenNode(t *testing.T) {
	f := &memFile{}
	w, err := NewWriter(f, low.V7_4)
	require.NoError(t, err)
	_, err = w.NewNode("Unclosed")
	require.NoError(t, err)
	require.Error(t, w.Finalize(nil, -1))
}

func TestV74_TooManyAttributes_Rejected(t *testing.T) {
	f := &memFile{}
	w, err := NewWriter(f, low.V7_4)
	require.NoError(t, err)
	node := &openNode{name: "X", numAttributes: 1<<32 + 1}
	w.stack = append(w.stack, node)

	err = w.CloseNode()
	require.Error(t, err)
	var writerErr *ferr.WriterError
	require.ErrorAs(t, err, &writerErr)
}

func loadTreeFromBytes(t *testing.T, data []byte) (*tree.Tree, low.Footer, error) {
	t.Helper()
	return tree.Load(bytes.NewReader(data))
}

func newReadSeeker(b []byte) *memFile {
	return &memFile{buf: b}
}

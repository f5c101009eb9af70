package tree_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scigolib/fbx/low"
	"github.com/scigolib/fbx/tree"
	"github.com/scigolib/fbx/writer"
)

func TestLoad_RoundTripsThroughWriter(t *testing.T) {
	f := &memBuf{}
	w, err := writer.NewWriter(f, low.V7_4)
	require.NoError(t, err)

	attrs, err := w.NewNode("Objects")
	require.NoError(t, err)
	require.NoError(t, attrs.AppendI32(3))
	child, err := w.NewNode("Model")
	require.NoError(t, err)
	require.NoError(t, child.AppendStringDirect("Cube"))
	require.NoError(t, w.CloseNode())
	require.NoError(t, w.CloseNode())
	require.NoError(t, w.Finalize(nil, -1))

	got, footer, err := tree.Load(f.reader())
	require.NoError(t, err)
	require.Equal(t, low.V7_4, footer.Version)

	objects, ok := got.Root().FirstChildByName("Objects")
	require.True(t, ok)
	require.EqualValues(t, 3, mustI32(t, objects.Attributes()[0]))

	model, ok := objects.FirstChildByName("Model")
	require.True(t, ok)
	s, ok := model.Attributes()[0].String()
	require.True(t, ok)
	require.Equal(t, "Cube", s)
}

func mustI32(t *testing.T, v low.AttributeValue) int32 {
	t.Helper()
	x, ok := v.I32()
	require.True(t, ok)
	return x
}

type memBuf struct {
	buf []byte
	pos int
}

func (m *memBuf) Write(p []byte) (int, error) {
	end := m.pos + len(p)
	if end > len(m.buf) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}
	copy(m.buf[m.pos:end], p)
	m.pos = end
	return len(p), nil
}

func (m *memBuf) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case 0:
		target = offset
	case 1:
		target = int64(m.pos) + offset
	case 2:
		target = int64(len(m.buf)) + offset
	}
	m.pos = int(target)
	return target, nil
}

func (m *memBuf) reader() *bytesReader { return &bytesReader{data: m.buf} }

type bytesReader struct {
	data []byte
	pos  int
}

func (r *bytesReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

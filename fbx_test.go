package fbx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scigolib/fbx/low"
)

func TestSniff_SupportedVersion(t *testing.T) {
	f := &memFile{}
	w, err := NewWriter(f, low.V7_4)
	require.NoError(t, err)
	require.NoError(t, w.Finalize(nil, -1))

	version, variant, err := Sniff(bytes.NewReader(f.buf))
	require.NoError(t, err)
	require.Equal(t, low.V7_4, version)
	require.Equal(t, VariantV7400, variant)
}

func TestSniff_UnsupportedVersion(t *testing.T) {
	f := &memFile{}
	w, err := NewWriter(f, low.FbxVersion(6000))
	require.NoError(t, err)
	require.NoError(t, w.Finalize(nil, -1))

	_, _, err = Sniff(bytes.NewReader(f.buf))
	require.Error(t, err)
}

func TestIsFbxFile(t *testing.T) {
	f := &memFile{}
	w, err := NewWriter(f, low.V7_4)
	require.NoError(t, err)
	require.NoError(t, w.Finalize(nil, -1))

	require.True(t, IsFbxFile(bytes.NewReader(f.buf)))
	require.False(t, IsFbxFile(bytes.NewReader([]byte("not an fbx file"))))
}

func TestLoadTree_EndToEnd(t *testing.T) {
	f := &memFile{}
	w, err := NewWriter(f, low.V7_4)
	require.NoError(t, err)

	attrs, err := w.NewNode("Creator")
	require.NoError(t, err)
	require.NoError(t, attrs.AppendStringDirect("unit test"))
	require.NoError(t, w.CloseNode())
	require.NoError(t, w.Finalize(nil, -1))

	tr, footer, err := LoadTree(bytes.NewReader(f.buf))
	require.NoError(t, err)
	require.Equal(t, low.V7_4, footer.Version)

	child, ok := tr.Root().FirstChildByName("Creator")
	require.True(t, ok)
	s, ok := child.Attributes()[0].String()
	require.True(t, ok)
	require.Equal(t, "unit test", s)
}

type memFile struct {
	buf []byte
	pos int
}

func (m *memFile) Write(p []byte) (int, error) {
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

func (m *memFile) Seek(offset int64, whence int) (int64, error) {
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

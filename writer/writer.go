// Package writer emits the FBX binary wire format: the exact inverse of
// package pullparser. Node headers are written as zeroed placeholders
// and back-patched once a node's true end offset and attribute region
// length are known, the same way the array and special attribute
// headers are back-patched once their payload length is known.
package writer

import (
	"fmt"
	"io"

	"github.com/scigolib/fbx/ferr"
	"github.com/scigolib/fbx/internal/utils"
	"github.com/scigolib/fbx/low"
)

type openNode struct {
	name          string
	headerPos     uint64
	bodyPos       uint64
	numAttributes uint64
	hasChild      bool
}

// Writer emits a single FBX binary document to a seekable sink. Nodes
// must be opened and closed in a strict stack discipline; Finalize
// refuses to run while any node is still open.
type Writer struct {
	sink    *sink
	version low.FbxVersion
	stack   []*openNode
}

// NewWriter writes the file header (magic + version) and returns a
// Writer ready to accept top-level nodes via NewNode.
func NewWriter(w io.WriteSeeker, version low.FbxVersion) (*Writer, error) {
	s := newSink(w)
	hdr := low.FbxHeader{Version: version}
	if err := hdr.Write(s); err != nil {
		return nil, err
	}
	return &Writer{sink: s, version: version}, nil
}

// Version returns the FBX version this writer targets.
func (w *Writer) Version() low.FbxVersion { return w.version }

// Depth returns the number of currently open nodes.
func (w *Writer) Depth() int { return len(w.stack) }

func (w *Writer) current() *openNode {
	if len(w.stack) == 0 {
		return nil
	}
	return w.stack[len(w.stack)-1]
}

// NewNode opens a node named name as a child of the currently open node
// (or as a top-level node if none is open), writing its placeholder
// header and name, and returns an AttributesWriter to populate it.
func (w *Writer) NewNode(name string) (*AttributesWriter, error) {
	if parent := w.current(); parent != nil {
		parent.hasChild = true
	}

	headerPos := w.sink.Position()
	placeholder := low.NodeHeader{BytelenName: uint8(len(name))}
	if err := placeholder.Write(w.sink, w.version); err != nil {
		return nil, err
	}
	if _, err := w.sink.Write([]byte(name)); err != nil {
		return nil, utils.WrapError("write node name", err)
	}

	node := &openNode{name: name, headerPos: headerPos, bodyPos: w.sink.Position()}
	w.stack = append(w.stack, node)
	return &AttributesWriter{w: w, node: node}, nil
}

// CloseNode finalizes the currently open node: emits its end marker if
// the node has children or zero attributes, then back-patches its
// header with the true end offset and attribute-region length.
func (w *Writer) CloseNode() error {
	node := w.current()
	if node == nil {
		return fmt.Errorf("writer: CloseNode called with no node open")
	}

	attrsEndPos := w.sink.Position()
	bytelenAttributes := attrsEndPos - node.bodyPos

	needsEndMarker := node.hasChild || node.numAttributes == 0
	if needsEndMarker {
		if _, err := w.sink.Write(low.EndMarkerBytes(w.version)); err != nil {
			return utils.WrapError("write node end marker", err)
		}
	}

	endOffset := w.sink.Position()

	if !w.version.HasWideNodeHeader() {
		if !utils.FitsU32(endOffset) {
			return ferr.NewFileTooLarge(endOffset)
		}
		if !utils.FitsU32(node.numAttributes) {
			return ferr.NewTooManyAttributes(node.numAttributes)
		}
		if !utils.FitsU32(bytelenAttributes) {
			return ferr.NewAttributeTooLong(bytelenAttributes)
		}
	}

	header := low.NodeHeader{
		EndOffset:         endOffset,
		NumAttributes:     node.numAttributes,
		BytelenAttributes: bytelenAttributes,
		BytelenName:       uint8(len(node.name)),
	}

	savedPos := w.sink.Position()
	if err := w.sink.SeekTo(node.headerPos); err != nil {
		return err
	}
	if err := header.Write(w.sink, w.version); err != nil {
		return err
	}
	if err := w.sink.SeekTo(savedPos); err != nil {
		return err
	}

	w.stack = w.stack[:len(w.stack)-1]
	return nil
}

// Finalize writes the implicit root's end marker and the file footer.
// unknown1 may be nil to use the default value; forcedPaddingLen < 0
// uses the standard `(-offset) mod 16` calculation.
func (w *Writer) Finalize(unknown1 *[16]byte, forcedPaddingLen int) error {
	if len(w.stack) != 0 {
		return fmt.Errorf("writer: Finalize called with %d node(s) still open", len(w.stack))
	}
	if _, err := w.sink.Write(low.EndMarkerBytes(w.version)); err != nil {
		return utils.WrapError("write root end marker", err)
	}
	return low.WriteFooter(w.sink, w.version, w.sink.Position(), unknown1, forcedPaddingLen)
}

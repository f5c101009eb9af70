package pullparser

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"math"

	"github.com/scigolib/fbx/low"
)

// testNode describes a node tree to synthesize into wire bytes. It
// exists only to drive these tests; production code never builds
// documents this way (see the writer package).
type testNode struct {
	name          string
	attrs         [][]byte
	children      []testNode
	omitEndMarker bool
}

func encBool(v bool) []byte {
	b := byte(0)
	if v {
		b = 1
	}
	return []byte{'C', b}
}

func encI32(v int32) []byte {
	buf := make([]byte, 5)
	buf[0] = 'I'
	binary.LittleEndian.PutUint32(buf[1:], uint32(v))
	return buf
}

func encI64(v int64) []byte {
	buf := make([]byte, 9)
	buf[0] = 'L'
	binary.LittleEndian.PutUint64(buf[1:], uint64(v))
	return buf
}

func encF64(v float64) []byte {
	buf := make([]byte, 9)
	buf[0] = 'D'
	binary.LittleEndian.PutUint64(buf[1:], math.Float64bits(v))
	return buf
}

func encString(s string) []byte {
	header := low.SpecialAttributeHeader{Bytelen: uint32(len(s))}
	var buf bytes.Buffer
	buf.WriteByte('S')
	_ = header.Write(&buf)
	buf.WriteString(s)
	return buf.Bytes()
}

func encArrI32(compressed bool, vals []int32) []byte {
	payload := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(payload[i*4:], uint32(v))
	}
	enc := low.Direct
	if compressed {
		var zbuf bytes.Buffer
		zw := zlib.NewWriter(&zbuf)
		_, _ = zw.Write(payload)
		_ = zw.Close()
		payload = zbuf.Bytes()
		enc = low.ZlibEncoding
	}
	header := low.ArrayAttributeHeader{ElementsCount: uint32(len(vals)), Encoding: enc, Bytelen: uint32(len(payload))}
	var buf bytes.Buffer
	buf.WriteByte('i')
	_ = header.Write(&buf)
	buf.Write(payload)
	return buf.Bytes()
}

func encodeNode(n testNode, v low.FbxVersion, startOffset uint64) []byte {
	headerLen := low.WireLen(v) + len(n.name)

	var attrsBytes []byte
	for _, a := range n.attrs {
		attrsBytes = append(attrsBytes, a...)
	}

	var childrenBytes []byte
	childOffset := startOffset + uint64(headerLen) + uint64(len(attrsBytes))
	for _, c := range n.children {
		cb := encodeNode(c, v, childOffset)
		childrenBytes = append(childrenBytes, cb...)
		childOffset += uint64(len(cb))
	}

	var endMarker []byte
	if !n.omitEndMarker {
		endMarker = low.EndMarkerBytes(v)
	}

	totalLen := headerLen + len(attrsBytes) + len(childrenBytes) + len(endMarker)
	endOffset := startOffset + uint64(totalLen)

	header := low.NodeHeader{
		EndOffset:         endOffset,
		NumAttributes:     uint64(len(n.attrs)),
		BytelenAttributes: uint64(len(attrsBytes)),
		BytelenName:       uint8(len(n.name)),
	}

	var buf bytes.Buffer
	_ = header.Write(&buf, v)
	buf.WriteString(n.name)
	buf.Write(attrsBytes)
	buf.Write(childrenBytes)
	buf.Write(endMarker)
	return buf.Bytes()
}

func buildDocument(v low.FbxVersion, topLevel []testNode) []byte {
	var buf bytes.Buffer
	hdr := low.FbxHeader{Version: v}
	_ = hdr.Write(&buf)
	offset := uint64(buf.Len())
	for _, n := range topLevel {
		nb := encodeNode(n, v, offset)
		buf.Write(nb)
		offset += uint64(len(nb))
	}
	rootEnd := low.EndMarkerBytes(v)
	buf.Write(rootEnd)
	offset += uint64(len(rootEnd))
	_ = low.WriteFooter(&buf, v, offset, nil, -1)
	return buf.Bytes()
}

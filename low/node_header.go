package low

import (
	"io"
	"unicode/utf8"

	"github.com/scigolib/fbx/ferr"
	"github.com/scigolib/fbx/internal/utils"
)

// ReadNodeName reads and validates a node's name, which immediately
// follows its NodeHeader on the wire. An empty name (nameLen == 0) is
// valid here — callers decide whether to warn about it.
func ReadNodeName(r io.Reader, nameLen uint8) (string, error) {
	if nameLen == 0 {
		return "", nil
	}
	buf := make([]byte, nameLen)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", utils.WrapError("read node name", err)
	}
	if !utf8.Valid(buf) {
		return "", ferr.NewInvalidNodeNameEncoding(errInvalidUTF8)
	}
	return string(buf), nil
}

var errInvalidUTF8 = utf8Error{}

type utf8Error struct{}

func (utf8Error) Error() string { return "invalid UTF-8 byte sequence" }

// NodeHeader is the fixed-layout prefix of every node. EndOffset,
// NumAttributes and BytelenAttributes are u32 on the wire for V7_4 and
// u64 for V7_5+; BytelenName is always u8. An all-zero header is the
// node-end marker.
type NodeHeader struct {
	EndOffset         uint64
	NumAttributes     uint64
	BytelenAttributes uint64
	BytelenName       uint8
}

// IsEnd reports whether h is the all-zero node-end marker.
func (h NodeHeader) IsEnd() bool {
	return h.EndOffset == 0 && h.NumAttributes == 0 && h.BytelenAttributes == 0 && h.BytelenName == 0
}

// WireLen returns the number of bytes a NodeHeader occupies on the wire
// for the given version (excluding the name bytes that follow it).
func WireLen(v FbxVersion) int {
	if v.HasWideNodeHeader() {
		return 8 + 8 + 8 + 1
	}
	return 4 + 4 + 4 + 1
}

// ReadNodeHeader reads a NodeHeader for the given version.
func ReadNodeHeader(r io.Reader, v FbxVersion) (NodeHeader, error) {
	var h NodeHeader
	if v.HasWideNodeHeader() {
		end, err := utils.ReadU64LE(r)
		if err != nil {
			return h, utils.WrapError("read node end_offset", err)
		}
		num, err := utils.ReadU64LE(r)
		if err != nil {
			return h, utils.WrapError("read node num_attributes", err)
		}
		blen, err := utils.ReadU64LE(r)
		if err != nil {
			return h, utils.WrapError("read node bytelen_attributes", err)
		}
		h.EndOffset, h.NumAttributes, h.BytelenAttributes = end, num, blen
	} else {
		end, err := utils.ReadU32LE(r)
		if err != nil {
			return h, utils.WrapError("read node end_offset", err)
		}
		num, err := utils.ReadU32LE(r)
		if err != nil {
			return h, utils.WrapError("read node num_attributes", err)
		}
		blen, err := utils.ReadU32LE(r)
		if err != nil {
			return h, utils.WrapError("read node bytelen_attributes", err)
		}
		h.EndOffset, h.NumAttributes, h.BytelenAttributes = uint64(end), uint64(num), uint64(blen)
	}
	nameLen, err := utils.ReadU8(r)
	if err != nil {
		return h, utils.WrapError("read node bytelen_name", err)
	}
	h.BytelenName = nameLen
	return h, nil
}

// Write emits h for the given version. For V7_4, callers must have
// already verified the three wide fields fit in u32 (see
// internal/utils.FitsU32); Write itself does not re-check.
func (h NodeHeader) Write(w io.Writer, v FbxVersion) error {
	if v.HasWideNodeHeader() {
		buf := utils.GetBuffer(8)
		defer utils.ReleaseBuffer(buf)
		for _, field := range []uint64{h.EndOffset, h.NumAttributes, h.BytelenAttributes} {
			utils.PutU64LE(buf, field)
			if _, err := w.Write(buf); err != nil {
				return utils.WrapError("write node header field", err)
			}
		}
	} else {
		buf := utils.GetBuffer(4)
		defer utils.ReleaseBuffer(buf)
		for _, field := range []uint64{h.EndOffset, h.NumAttributes, h.BytelenAttributes} {
			utils.PutU32LE(buf, uint32(field))
			if _, err := w.Write(buf); err != nil {
				return utils.WrapError("write node header field", err)
			}
		}
	}
	if _, err := w.Write([]byte{h.BytelenName}); err != nil {
		return utils.WrapError("write node bytelen_name", err)
	}
	return nil
}

// EndMarkerBytes returns the raw all-zero node-end marker for the given
// version.
func EndMarkerBytes(v FbxVersion) []byte {
	return make([]byte, WireLen(v))
}

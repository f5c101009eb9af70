package low

import (
	"io"

	"github.com/scigolib/fbx/ferr"
	"github.com/scigolib/fbx/internal/utils"
)

// magicText is the printable portion of the magic sequence: "Kaydara
// FBX Binary" followed by two spaces.
const magicText = "Kaydara FBX Binary  "

// Magic is the 23-byte magic sequence every FBX binary file begins with.
var Magic = append([]byte(magicText), 0x00, 0x1a, 0x00)

// FbxHeaderLen is the total byte length of the file header (magic plus
// the 4-byte version field).
var FbxHeaderLen = len(Magic) + 4

// FbxHeader is the fixed-layout prefix of every FBX binary file.
type FbxHeader struct {
	Version FbxVersion
}

// Len returns FbxHeaderLen.
func (FbxHeader) Len() int { return FbxHeaderLen }

// LoadFbxHeader reads and validates the magic sequence, then the
// version field.
func LoadFbxHeader(r io.Reader) (FbxHeader, error) {
	buf := utils.GetBuffer(len(Magic))
	defer utils.ReleaseBuffer(buf)
	if _, err := io.ReadFull(r, buf); err != nil {
		return FbxHeader{}, utils.WrapError("read magic", err)
	}
	for i := range Magic {
		if buf[i] != Magic[i] {
			return FbxHeader{}, ferr.NewUnexpectedAttribute("FBX magic bytes", "non-matching header")
		}
	}
	raw, err := utils.ReadU32LE(r)
	if err != nil {
		return FbxHeader{}, utils.WrapError("read fbx version", err)
	}
	return FbxHeader{Version: FbxVersion(raw)}, nil
}

// Write emits the magic sequence followed by the version field.
func (h FbxHeader) Write(w io.Writer) error {
	if _, err := w.Write(Magic); err != nil {
		return utils.WrapError("write magic", err)
	}
	buf := utils.GetBuffer(4)
	defer utils.ReleaseBuffer(buf)
	utils.PutU32LE(buf, h.Version.Raw())
	if _, err := w.Write(buf); err != nil {
		return utils.WrapError("write fbx version", err)
	}
	return nil
}

package low

import (
	"io"

	"github.com/scigolib/fbx/ferr"
	"github.com/scigolib/fbx/internal/utils"
)

// unknown1Mask is the expected upper nibble of each byte of the
// footer's first unknown field.
var unknown1Mask = [16]byte{
	0xf0, 0xb0, 0xa0, 0x00, 0xd0, 0xc0, 0xd0, 0x60,
	0xb0, 0x70, 0xf0, 0x80, 0x10, 0xf0, 0x20, 0x70,
}

// DefaultUnknown1 is the default value written for the footer's first
// unknown field when the caller does not supply one. Its upper nibbles
// match unknown1Mask.
var DefaultUnknown1 = [16]byte{
	0xf0, 0xb1, 0xa2, 0x03, 0xd4, 0xc5, 0xd6, 0x67,
	0xb8, 0x79, 0xfa, 0x8b, 0x1c, 0xfd, 0x2e, 0x7f,
}

// Unknown3 is the fixed trailing magic of every FBX binary footer.
var Unknown3 = [16]byte{
	0xf8, 0x5a, 0x8c, 0x6a, 0xde, 0xf5, 0xd9, 0x7e,
	0xec, 0xe9, 0x0c, 0xe3, 0x75, 0x8f, 0x29, 0x0b,
}

// Footer is the fixed-layout block ending every FBX binary file.
type Footer struct {
	Unknown1   [16]byte
	PaddingLen uint8
	Unknown2   [4]byte
	Version    FbxVersion
	Unknown3   [16]byte
}

// FooterWarningKind classifies a non-fatal footer anomaly.
type FooterWarningKind int

const (
	// FooterUnexpectedFieldValue: unknown1's upper nibble didn't match
	// the expected mask at some byte.
	FooterUnexpectedFieldValue FooterWarningKind = iota
	// FooterInvalidPaddingLength: the actual padding length didn't
	// match (-offset) mod 16, but the footer otherwise validated.
	FooterInvalidPaddingLength
)

// FooterWarning is a non-fatal footer anomaly detected during ReadFooter.
// ByteOffset is relative to the start of the footer (0 = first byte of
// unknown1); callers with an absolute position add their own base.
type FooterWarning struct {
	Kind       FooterWarningKind
	ByteOffset uint64
	Expected   int
	Got        int
}

const footerBufLen = 144

// ReadFooter reads and validates a footer immediately following the
// last top-level node-end marker. expectedVersion is the version parsed
// from the file header; a mismatched embedded version is BrokenFbxFooter.
func ReadFooter(r io.Reader, expectedVersion FbxVersion) (Footer, []FooterWarning, error) {
	var warnings []FooterWarning
	var footer Footer

	unknown1 := make([]byte, 16)
	if _, err := io.ReadFull(r, unknown1); err != nil {
		return footer, warnings, utils.WrapError("read footer unknown1", err)
	}
	copy(footer.Unknown1[:], unknown1)
	for i, b := range unknown1 {
		if b&0xf0 != unknown1Mask[i] {
			warnings = append(warnings, FooterWarning{Kind: FooterUnexpectedFieldValue, ByteOffset: uint64(i)})
			break
		}
	}

	buf := make([]byte, footerBufLen)
	if _, err := io.ReadFull(r, buf); err != nil {
		return footer, warnings, utils.WrapError("read footer trailer", err)
	}

	const searchOffset = footerBufLen - 16
	unknown3Pos := -1
	for i := searchOffset; i < footerBufLen; i++ {
		if buf[i] != 0 {
			unknown3Pos = i
			break
		}
	}
	if unknown3Pos == -1 {
		return footer, warnings, ferr.ErrBrokenFbxFooter
	}

	paddingLen := unknown3Pos & 0x0f
	if paddingLen >= 16 || unknown3Pos != paddingLen+128 {
		return footer, warnings, ferr.ErrBrokenFbxFooter
	}

	padding := buf[:paddingLen]
	for _, b := range padding {
		if b != 0 {
			return footer, warnings, ferr.ErrBrokenFbxFooter
		}
	}

	var unknown2 [4]byte
	copy(unknown2[:], buf[paddingLen:paddingLen+4])
	if unknown2 != ([4]byte{}) {
		return footer, warnings, ferr.ErrBrokenFbxFooter
	}

	versionRaw := uint32(buf[paddingLen+4]) | uint32(buf[paddingLen+5])<<8 |
		uint32(buf[paddingLen+6])<<16 | uint32(buf[paddingLen+7])<<24
	version := FbxVersion(versionRaw)
	if version != expectedVersion {
		return footer, warnings, ferr.ErrBrokenFbxFooter
	}

	zeroes120 := buf[paddingLen+8 : paddingLen+128]
	for _, b := range zeroes120 {
		if b != 0 {
			return footer, warnings, ferr.ErrBrokenFbxFooter
		}
	}

	var unknown3 [16]byte
	unknown3Part := buf[paddingLen+128:]
	copy(unknown3[:], unknown3Part)
	if len(unknown3Part) < 16 {
		if _, err := io.ReadFull(r, unknown3[len(unknown3Part):]); err != nil {
			return footer, warnings, utils.WrapError("read footer unknown3 tail", err)
		}
	}
	if unknown3 != Unknown3 {
		return footer, warnings, ferr.ErrBrokenFbxFooter
	}

	footer.PaddingLen = uint8(paddingLen)
	footer.Unknown2 = unknown2
	footer.Version = version
	footer.Unknown3 = unknown3

	return footer, warnings, nil
}

// ExpectedPaddingLen computes the padding length a well-formed file
// must use, given the absolute offset at which the padding begins
// (immediately after the footer's first 16-byte unknown field).
func ExpectedPaddingLen(paddingStartOffset uint64) int {
	return int((-paddingStartOffset) & 0x0f)
}

// CheckPaddingLen returns a FooterInvalidPaddingLength warning if actual
// does not match the expected padding length for paddingStartOffset.
func CheckPaddingLen(paddingStartOffset uint64, actual int) *FooterWarning {
	expected := ExpectedPaddingLen(paddingStartOffset)
	if expected == actual {
		return nil
	}
	return &FooterWarning{Kind: FooterInvalidPaddingLength, Expected: expected, Got: actual}
}

// WriteFooter emits unknown1, padding (to a 16-byte-from-file-start
// boundary unless forcedPaddingLen is non-negative), 4 zero bytes, the
// version, 120 zero bytes, and Unknown3. currentOffset is the absolute
// file offset at the point WriteFooter is called (i.e. immediately
// after the root node-end marker); it is needed to compute the default
// padding length.
func WriteFooter(w io.Writer, version FbxVersion, currentOffset uint64, unknown1 *[16]byte, forcedPaddingLen int) error {
	u1 := DefaultUnknown1
	if unknown1 != nil {
		u1 = *unknown1
	}
	if _, err := w.Write(u1[:]); err != nil {
		return utils.WrapError("write footer unknown1", err)
	}

	paddingLen := ExpectedPaddingLen(currentOffset + 16)
	if forcedPaddingLen >= 0 {
		paddingLen = forcedPaddingLen
	}
	if _, err := w.Write(make([]byte, paddingLen)); err != nil {
		return utils.WrapError("write footer padding", err)
	}

	if _, err := w.Write(make([]byte, 4)); err != nil {
		return utils.WrapError("write footer unknown2", err)
	}

	buf := utils.GetBuffer(4)
	defer utils.ReleaseBuffer(buf)
	utils.PutU32LE(buf, version.Raw())
	if _, err := w.Write(buf); err != nil {
		return utils.WrapError("write footer version", err)
	}

	if _, err := w.Write(make([]byte, 120)); err != nil {
		return utils.WrapError("write footer zero padding", err)
	}

	if _, err := w.Write(Unknown3[:]); err != nil {
		return utils.WrapError("write footer unknown3", err)
	}

	return nil
}

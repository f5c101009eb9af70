package low

import (
	"io"

	"github.com/scigolib/fbx/ferr"
	"github.com/scigolib/fbx/internal/utils"
)

// ArrayAttributeEncoding is the wire encoding word for a packed array
// attribute's payload.
type ArrayAttributeEncoding uint32

const (
	// Direct means the payload is raw little-endian elements.
	Direct ArrayAttributeEncoding = 0
	// ZlibEncoding means the payload is a zlib stream wrapping the same.
	ZlibEncoding ArrayAttributeEncoding = 1
)

// ArrayAttributeHeader precedes the payload of every packed-array
// attribute.
type ArrayAttributeHeader struct {
	ElementsCount uint32
	Encoding      ArrayAttributeEncoding
	Bytelen       uint32
}

// ReadArrayAttributeHeader reads the 3xu32 LE header.
func ReadArrayAttributeHeader(r io.Reader) (ArrayAttributeHeader, error) {
	count, err := utils.ReadU32LE(r)
	if err != nil {
		return ArrayAttributeHeader{}, utils.WrapError("read array elements_count", err)
	}
	enc, err := utils.ReadU32LE(r)
	if err != nil {
		return ArrayAttributeHeader{}, utils.WrapError("read array encoding", err)
	}
	if enc != uint32(Direct) && enc != uint32(ZlibEncoding) {
		return ArrayAttributeHeader{}, ferr.NewInvalidArrayAttributeEncoding(enc)
	}
	bytelen, err := utils.ReadU32LE(r)
	if err != nil {
		return ArrayAttributeHeader{}, utils.WrapError("read array bytelen", err)
	}
	return ArrayAttributeHeader{ElementsCount: count, Encoding: ArrayAttributeEncoding(enc), Bytelen: bytelen}, nil
}

// Write emits the 3xu32 LE header.
func (h ArrayAttributeHeader) Write(w io.Writer) error {
	buf := utils.GetBuffer(4)
	defer utils.ReleaseBuffer(buf)
	for _, field := range []uint32{h.ElementsCount, uint32(h.Encoding), h.Bytelen} {
		utils.PutU32LE(buf, field)
		if _, err := w.Write(buf); err != nil {
			return utils.WrapError("write array attribute header", err)
		}
	}
	return nil
}

// SpecialAttributeHeader precedes the payload of Binary and String
// attributes: a single u32 LE length prefix.
type SpecialAttributeHeader struct {
	Bytelen uint32
}

// ReadSpecialAttributeHeader reads the u32 LE length prefix.
func ReadSpecialAttributeHeader(r io.Reader) (SpecialAttributeHeader, error) {
	bytelen, err := utils.ReadU32LE(r)
	if err != nil {
		return SpecialAttributeHeader{}, utils.WrapError("read special attribute bytelen", err)
	}
	return SpecialAttributeHeader{Bytelen: bytelen}, nil
}

// Write emits the u32 LE length prefix.
func (h SpecialAttributeHeader) Write(w io.Writer) error {
	buf := utils.GetBuffer(4)
	defer utils.ReleaseBuffer(buf)
	utils.PutU32LE(buf, h.Bytelen)
	if _, err := w.Write(buf); err != nil {
		return utils.WrapError("write special attribute header", err)
	}
	return nil
}

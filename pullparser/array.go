package pullparser

import (
	"compress/zlib"
	"encoding/binary"
	"io"
	"math"

	"github.com/scigolib/fbx/ferr"
	"github.com/scigolib/fbx/low"
)

// arrayStreamDecoder wraps a packed array attribute's raw payload reader,
// transparently unwrapping the zlib container when the header says the
// payload is compressed.
func arrayStreamDecoder(r io.Reader, encoding low.ArrayAttributeEncoding) (io.Reader, error) {
	switch encoding {
	case low.Direct:
		return r, nil
	case low.ZlibEncoding:
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, ferr.NewBrokenCompression(ferr.Zlib, err)
		}
		return zr, nil
	default:
		return nil, ferr.NewInvalidArrayAttributeEncoding(uint32(encoding))
	}
}

// numericElements returns a Seq that decodes count little-endian elements
// of size elemSize from r using decode, reporting a BrokenCompression-free
// io error if the stream underruns.
func numericElements[T any](r io.Reader, count uint32, elemSize int, decode func([]byte) T) Seq[T] {
	rest := count
	buf := make([]byte, elemSize)
	hasError := false
	return func() (T, bool, error) {
		var zero T
		if hasError || rest == 0 {
			return zero, false, nil
		}
		if _, err := io.ReadFull(r, buf); err != nil {
			hasError = true
			return zero, false, ferr.New(err)
		}
		rest--
		return decode(buf), true, nil
	}
}

// I32Elements decodes a direct-or-zlib i32 array payload.
func I32Elements(r io.Reader, count uint32) Seq[int32] {
	return numericElements(r, count, 4, func(b []byte) int32 {
		return int32(binary.LittleEndian.Uint32(b))
	})
}

// I64Elements decodes a direct-or-zlib i64 array payload.
func I64Elements(r io.Reader, count uint32) Seq[int64] {
	return numericElements(r, count, 8, func(b []byte) int64 {
		return int64(binary.LittleEndian.Uint64(b))
	})
}

// F32Elements decodes a direct-or-zlib f32 array payload.
func F32Elements(r io.Reader, count uint32) Seq[float32] {
	return numericElements(r, count, 4, func(b []byte) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(b))
	})
}

// F64Elements decodes a direct-or-zlib f64 array payload.
func F64Elements(r io.Reader, count uint32) Seq[float64] {
	return numericElements(r, count, 8, func(b []byte) float64 {
		return math.Float64frombits(binary.LittleEndian.Uint64(b))
	})
}

// BoolElements decodes a boolean array payload, one byte per element. A
// byte whose value is neither 'T' nor 'Y' is still accepted as
// true/false by its low bit, and reported via sawIncorrect so the caller
// can emit IncorrectBooleanRepresentation exactly once per attribute.
func BoolElements(r io.Reader, count uint32, sawIncorrect *bool) Seq[bool] {
	rest := count
	buf := make([]byte, 1)
	hasError := false
	return func() (bool, bool, error) {
		if hasError || rest == 0 {
			return false, false, nil
		}
		if _, err := io.ReadFull(r, buf); err != nil {
			hasError = true
			return false, false, ferr.New(err)
		}
		rest--
		if buf[0] != 'T' && buf[0] != 'Y' && sawIncorrect != nil {
			*sawIncorrect = true
		}
		return buf[0]&0x01 != 0, true, nil
	}
}

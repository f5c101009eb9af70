package writer

import (
	"compress/zlib"
	"encoding/binary"
	"io"
	"math"

	"github.com/scigolib/fbx/ferr"
	"github.com/scigolib/fbx/internal/utils"
	"github.com/scigolib/fbx/low"
)

// AttributesWriter appends attributes to the node that produced it. It
// becomes invalid once the owning Writer's CloseNode is called for that
// node; callers must not retain it past that point.
type AttributesWriter struct {
	w    *Writer
	node *openNode
}

func (a *AttributesWriter) writeTypeCode(t low.AttributeType) error {
	if _, err := a.w.sink.Write([]byte{t.Code()}); err != nil {
		return utils.WrapError("write attribute type code", err)
	}
	return nil
}

func (a *AttributesWriter) countAttribute() {
	a.node.numAttributes++
}

// AppendBool appends a scalar boolean, encoded as 'Y' (true) or 'T'
// (false); the reader takes the value from the byte's low bit.
func (a *AttributesWriter) AppendBool(v bool) error {
	if err := a.writeTypeCode(low.Bool); err != nil {
		return err
	}
	b := byte('T')
	if v {
		b = 'Y'
	}
	if _, err := a.w.sink.Write([]byte{b}); err != nil {
		return utils.WrapError("write bool attribute", err)
	}
	a.countAttribute()
	return nil
}

func (a *AttributesWriter) appendFixed(t low.AttributeType, buf []byte) error {
	if err := a.writeTypeCode(t); err != nil {
		return err
	}
	if _, err := a.w.sink.Write(buf); err != nil {
		return utils.WrapError("write scalar attribute", err)
	}
	a.countAttribute()
	return nil
}

// AppendI16 appends a scalar 16-bit integer.
func (a *AttributesWriter) AppendI16(v int16) error {
	buf := make([]byte, 2)
	binary.LittleEndian.PutUint16(buf, uint16(v))
	return a.appendFixed(low.I16, buf)
}

// AppendI32 appends a scalar 32-bit integer.
func (a *AttributesWriter) AppendI32(v int32) error {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(v))
	return a.appendFixed(low.I32, buf)
}

// AppendI64 appends a scalar 64-bit integer.
func (a *AttributesWriter) AppendI64(v int64) error {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(v))
	return a.appendFixed(low.I64, buf)
}

// AppendF32 appends a scalar 32-bit float.
func (a *AttributesWriter) AppendF32(v float32) error {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
	return a.appendFixed(low.F32, buf)
}

// AppendF64 appends a scalar 64-bit float.
func (a *AttributesWriter) AppendF64(v float64) error {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, math.Float64bits(v))
	return a.appendFixed(low.F64, buf)
}

// AppendBinaryDirect appends a Binary attribute whose payload is
// already fully in memory.
func (a *AttributesWriter) AppendBinaryDirect(data []byte) error {
	return a.appendSpecialFromReader(low.Binary, newByteReader(data))
}

// AppendStringDirect appends a String attribute whose payload is
// already fully in memory.
func (a *AttributesWriter) AppendStringDirect(s string) error {
	return a.appendSpecialFromReader(low.String, newByteReader([]byte(s)))
}

// AppendBinaryFromReader streams a Binary attribute's payload from r.
func (a *AttributesWriter) AppendBinaryFromReader(r io.Reader) error {
	return a.appendSpecialFromReader(low.Binary, r)
}

// AppendStringFromReader streams a String attribute's payload from r.
func (a *AttributesWriter) AppendStringFromReader(r io.Reader) error {
	return a.appendSpecialFromReader(low.String, r)
}

func (a *AttributesWriter) appendSpecialFromReader(t low.AttributeType, r io.Reader) error {
	if err := a.writeTypeCode(t); err != nil {
		return err
	}

	headerPos := a.w.sink.Position()
	placeholder := low.SpecialAttributeHeader{}
	if err := placeholder.Write(a.w.sink); err != nil {
		return err
	}
	payloadStart := a.w.sink.Position()

	n, err := io.Copy(a.w.sink, r)
	if err != nil {
		return utils.WrapError("stream special attribute payload", err)
	}
	bytelen := uint64(n)
	if !utils.FitsU32(bytelen) {
		return ferr.NewAttributeTooLong(bytelen)
	}

	return a.backpatchU32Header(headerPos, payloadStart+n, func() error {
		return low.SpecialAttributeHeader{Bytelen: uint32(bytelen)}.Write(a.w.sink)
	}, func() { a.countAttribute() })
}

// backpatchU32Header seeks back to headerPos, invokes write to emit the
// real header, then seeks forward to resumePos and runs onDone. It
// centralizes the seek-back/seek-forward dance shared by every
// variable-length attribute kind.
func (a *AttributesWriter) backpatchU32Header(headerPos, resumePos uint64, write func() error, onDone func()) error {
	if err := a.w.sink.SeekTo(headerPos); err != nil {
		return err
	}
	if err := write(); err != nil {
		return err
	}
	if err := a.w.sink.SeekTo(resumePos); err != nil {
		return err
	}
	onDone()
	return nil
}

type byteReader struct {
	b []byte
}

func newByteReader(b []byte) *byteReader { return &byteReader{b: b} }

func (r *byteReader) Read(p []byte) (int, error) {
	if len(r.b) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.b)
	r.b = r.b[n:]
	return n, nil
}

// arrayAppender writes one array attribute's payload, tracking the
// element count and byte length it back-patches into the placeholder
// ArrayAttributeHeader once the stream finishes.
type arrayAppender struct {
	a        *AttributesWriter
	encoding low.ArrayAttributeEncoding
	count    uint32
}

func (a *AttributesWriter) beginArray(t low.AttributeType, compress bool) (*arrayAppender, uint64, io.Writer, error) {
	if err := a.writeTypeCode(t); err != nil {
		return nil, 0, nil, err
	}
	headerPos := a.w.sink.Position()
	placeholder := low.ArrayAttributeHeader{}
	if err := placeholder.Write(a.w.sink); err != nil {
		return nil, 0, nil, err
	}

	encoding := low.Direct
	var dst io.Writer = a.w.sink
	if compress {
		encoding = low.ZlibEncoding
	}
	return &arrayAppender{a: a, encoding: encoding}, headerPos, dst, nil
}

func (ap *arrayAppender) finish(headerPos uint64, payloadStart uint64, payloadLen uint64) error {
	if !utils.FitsU32(uint64(ap.count)) {
		return ferr.NewTooManyArrayAttributeElements(uint64(ap.count))
	}
	if !utils.FitsU32(payloadLen) {
		return ferr.NewAttributeTooLong(payloadLen)
	}
	resumePos := payloadStart + payloadLen
	return ap.a.backpatchU32Header(headerPos, resumePos, func() error {
		return low.ArrayAttributeHeader{
			ElementsCount: ap.count,
			Encoding:      ap.encoding,
			Bytelen:       uint32(payloadLen),
		}.Write(ap.a.w.sink)
	}, func() { ap.a.countAttribute() })
}

func writeArrayPayload(dst io.Writer, compress bool, n int, elemSize int, put func(buf []byte, i int)) (io.Writer, func() error, error) {
	var zw *zlib.Writer
	target := dst
	if compress {
		zw = zlib.NewWriter(dst)
		target = zw
	}
	buf := make([]byte, elemSize)
	for i := 0; i < n; i++ {
		put(buf, i)
		if _, err := target.Write(buf); err != nil {
			return nil, nil, utils.WrapError("write array element", err)
		}
	}
	closer := func() error { return nil }
	if zw != nil {
		closer = zw.Close
	}
	return target, closer, nil
}

// AppendArrI32FromSlice appends a packed i32 array, optionally
// zlib-compressed.
func (a *AttributesWriter) AppendArrI32FromSlice(vals []int32, compress bool) error {
	ap, headerPos, dst, err := a.beginArray(low.ArrI32, compress)
	if err != nil {
		return err
	}
	payloadStart := a.w.sink.Position()
	_, closer, err := writeArrayPayload(dst, compress, len(vals), 4, func(buf []byte, i int) {
		binary.LittleEndian.PutUint32(buf, uint32(vals[i]))
	})
	if err != nil {
		return err
	}
	if err := closer(); err != nil {
		return utils.WrapError("close array compressor", err)
	}
	ap.count = uint32(len(vals))
	return ap.finish(headerPos, payloadStart, a.w.sink.Position()-payloadStart)
}

// AppendArrI64FromSlice appends a packed i64 array, optionally
// zlib-compressed.
func (a *AttributesWriter) AppendArrI64FromSlice(vals []int64, compress bool) error {
	ap, headerPos, dst, err := a.beginArray(low.ArrI64, compress)
	if err != nil {
		return err
	}
	payloadStart := a.w.sink.Position()
	_, closer, err := writeArrayPayload(dst, compress, len(vals), 8, func(buf []byte, i int) {
		binary.LittleEndian.PutUint64(buf, uint64(vals[i]))
	})
	if err != nil {
		return err
	}
	if err := closer(); err != nil {
		return utils.WrapError("close array compressor", err)
	}
	ap.count = uint32(len(vals))
	return ap.finish(headerPos, payloadStart, a.w.sink.Position()-payloadStart)
}

// AppendArrF32FromSlice appends a packed f32 array, optionally
// zlib-compressed.
func (a *AttributesWriter) AppendArrF32FromSlice(vals []float32, compress bool) error {
	ap, headerPos, dst, err := a.beginArray(low.ArrF32, compress)
	if err != nil {
		return err
	}
	payloadStart := a.w.sink.Position()
	_, closer, err := writeArrayPayload(dst, compress, len(vals), 4, func(buf []byte, i int) {
		binary.LittleEndian.PutUint32(buf, math.Float32bits(vals[i]))
	})
	if err != nil {
		return err
	}
	if err := closer(); err != nil {
		return utils.WrapError("close array compressor", err)
	}
	ap.count = uint32(len(vals))
	return ap.finish(headerPos, payloadStart, a.w.sink.Position()-payloadStart)
}

// AppendArrF64FromSlice appends a packed f64 array, optionally
// zlib-compressed.
func (a *AttributesWriter) AppendArrF64FromSlice(vals []float64, compress bool) error {
	ap, headerPos, dst, err := a.beginArray(low.ArrF64, compress)
	if err != nil {
		return err
	}
	payloadStart := a.w.sink.Position()
	_, closer, err := writeArrayPayload(dst, compress, len(vals), 8, func(buf []byte, i int) {
		binary.LittleEndian.PutUint64(buf, math.Float64bits(vals[i]))
	})
	if err != nil {
		return err
	}
	if err := closer(); err != nil {
		return utils.WrapError("close array compressor", err)
	}
	ap.count = uint32(len(vals))
	return ap.finish(headerPos, payloadStart, a.w.sink.Position()-payloadStart)
}

// AppendArrBoolFromSlice appends a packed boolean array, optionally
// zlib-compressed. Each element is written as 'Y'/'T' like AppendBool.
func (a *AttributesWriter) AppendArrBoolFromSlice(vals []bool, compress bool) error {
	ap, headerPos, dst, err := a.beginArray(low.ArrBool, compress)
	if err != nil {
		return err
	}
	payloadStart := a.w.sink.Position()
	_, closer, err := writeArrayPayload(dst, compress, len(vals), 1, func(buf []byte, i int) {
		if vals[i] {
			buf[0] = 'Y'
		} else {
			buf[0] = 'T'
		}
	})
	if err != nil {
		return err
	}
	if err := closer(); err != nil {
		return utils.WrapError("close array compressor", err)
	}
	ap.count = uint32(len(vals))
	return ap.finish(headerPos, payloadStart, a.w.sink.Position()-payloadStart)
}

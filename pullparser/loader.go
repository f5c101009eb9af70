package pullparser

import (
	"io"

	"github.com/scigolib/fbx/ferr"
)

// Seq is a pull-style sequence of decoded array elements. Calling next
// returns the next element, false once exhausted, and a non-nil error
// if decoding failed — in which case the loader should stop pulling and
// propagate the error. A loader may stop before exhausting the
// sequence; the parser advances past the attribute's declared byte
// length regardless.
type Seq[T any] func() (value T, ok bool, err error)

// AttributeLoader is a single-use visitor over one node attribute. The
// Load* method matching the attribute's wire kind is called with its
// value; every other Load* method is never called for that attribute.
// Output is the loader's result type.
type AttributeLoader[T any] interface {
	// Expecting describes, for error messages, what this loader accepts.
	Expecting() string

	LoadBool(bool) (T, error)
	LoadI16(int16) (T, error)
	LoadI32(int32) (T, error)
	LoadI64(int64) (T, error)
	LoadF32(float32) (T, error)
	LoadF64(float64) (T, error)

	LoadSeqBool(elems Seq[bool], length int) (T, error)
	LoadSeqI32(elems Seq[int32], length int) (T, error)
	LoadSeqI64(elems Seq[int64], length int) (T, error)
	LoadSeqF32(elems Seq[float32], length int) (T, error)
	LoadSeqF64(elems Seq[float64], length int) (T, error)

	LoadBinary(r io.Reader, length uint64) (T, error)
	LoadString(r io.Reader, length uint64) (T, error)
}

// UnimplementedLoader implements AttributeLoader[T] with every method
// returning UnexpectedAttribute. Embed it and override the methods a
// concrete loader actually handles.
type UnimplementedLoader[T any] struct {
	// ExpectingText is returned by Expecting and used in every error
	// message produced by the unoverridden default methods.
	ExpectingText string
}

func (u UnimplementedLoader[T]) Expecting() string { return u.ExpectingText }

func (u UnimplementedLoader[T]) unexpected(got string) (T, error) {
	var zero T
	return zero, ferr.NewUnexpectedAttribute(u.ExpectingText, got)
}

func (u UnimplementedLoader[T]) LoadBool(bool) (T, error) { return u.unexpected("boolean") }
func (u UnimplementedLoader[T]) LoadI16(int16) (T, error) { return u.unexpected("i16") }
func (u UnimplementedLoader[T]) LoadI32(int32) (T, error) { return u.unexpected("i32") }
func (u UnimplementedLoader[T]) LoadI64(int64) (T, error) { return u.unexpected("i64") }
func (u UnimplementedLoader[T]) LoadF32(float32) (T, error) { return u.unexpected("f32") }
func (u UnimplementedLoader[T]) LoadF64(float64) (T, error) { return u.unexpected("f64") }

func (u UnimplementedLoader[T]) LoadSeqBool(Seq[bool], int) (T, error) {
	return u.unexpected("boolean array")
}
func (u UnimplementedLoader[T]) LoadSeqI32(Seq[int32], int) (T, error) {
	return u.unexpected("i32 array")
}
func (u UnimplementedLoader[T]) LoadSeqI64(Seq[int64], int) (T, error) {
	return u.unexpected("i64 array")
}
func (u UnimplementedLoader[T]) LoadSeqF32(Seq[float32], int) (T, error) {
	return u.unexpected("f32 array")
}
func (u UnimplementedLoader[T]) LoadSeqF64(Seq[float64], int) (T, error) {
	return u.unexpected("f64 array")
}

func (u UnimplementedLoader[T]) LoadBinary(io.Reader, uint64) (T, error) {
	return u.unexpected("binary data")
}
func (u UnimplementedLoader[T]) LoadString(io.Reader, uint64) (T, error) {
	return u.unexpected("string data")
}

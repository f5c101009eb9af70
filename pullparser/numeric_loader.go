package pullparser

import (
	"io"

	"github.com/scigolib/fbx/ferr"
)

// Numeric is the set of scalar/array element kinds NumericLoader can
// target. There is no virtual dispatch through a generic method in Go,
// so NumericLoader type-switches on its own zero value to decide which
// wire kinds it accepts.
type Numeric interface {
	~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// NumericLoader loads a single numeric scalar as T. In Strict mode it
// accepts only the exact wire type matching T (an i32 attribute loads
// as int32, never silently widened). In permissive mode it accepts any
// narrower or same-width integer type (i16 widens to int32 or int64;
// i32 widens to int64) and allows float32 to load as float64 (float64
// does not load as float32), matching the
// common pattern of FBX exporters emitting either width for the same
// semantic field.
type NumericLoader[T Numeric] struct {
	Strict bool
}

func (l NumericLoader[T]) Expecting() string {
	var zero T
	name := numericTypeName(zero)
	if l.Strict {
		return "single " + name + " (strict)"
	}
	return "single " + name + " (widening allowed)"
}

func numericTypeName(zero any) string {
	switch zero.(type) {
	case int16:
		return "i16"
	case int32:
		return "i32"
	case int64:
		return "i64"
	case float32:
		return "f32"
	case float64:
		return "f64"
	default:
		return "numeric"
	}
}

func (l NumericLoader[T]) unexpected(got string) (T, error) {
	var zero T
	return zero, ferr.NewUnexpectedAttribute(l.Expecting(), got)
}

func (l NumericLoader[T]) LoadI16(v int16) (T, error) {
	var zero T
	switch any(zero).(type) {
	case int16:
		return any(v).(T), nil
	case int32:
		if !l.Strict {
			return any(int32(v)).(T), nil
		}
	case int64:
		if !l.Strict {
			return any(int64(v)).(T), nil
		}
	}
	return l.unexpected("i16")
}

func (l NumericLoader[T]) LoadI32(v int32) (T, error) {
	var zero T
	switch any(zero).(type) {
	case int32:
		return any(v).(T), nil
	case int64:
		if !l.Strict {
			return any(int64(v)).(T), nil
		}
	}
	return l.unexpected("i32")
}

func (l NumericLoader[T]) LoadI64(v int64) (T, error) {
	var zero T
	if _, ok := any(zero).(int64); ok {
		return any(v).(T), nil
	}
	return l.unexpected("i64")
}

func (l NumericLoader[T]) LoadF32(v float32) (T, error) {
	var zero T
	switch any(zero).(type) {
	case float32:
		return any(v).(T), nil
	case float64:
		if !l.Strict {
			return any(float64(v)).(T), nil
		}
	}
	return l.unexpected("f32")
}

func (l NumericLoader[T]) LoadF64(v float64) (T, error) {
	var zero T
	if _, ok := any(zero).(float64); ok {
		return any(v).(T), nil
	}
	return l.unexpected("f64")
}

func (l NumericLoader[T]) LoadBool(bool) (T, error)              { return l.unexpected("boolean") }
func (l NumericLoader[T]) LoadSeqBool(Seq[bool], int) (T, error) { return l.unexpected("boolean array") }
func (l NumericLoader[T]) LoadSeqI32(Seq[int32], int) (T, error) { return l.unexpected("i32 array") }
func (l NumericLoader[T]) LoadSeqI64(Seq[int64], int) (T, error) { return l.unexpected("i64 array") }
func (l NumericLoader[T]) LoadSeqF32(Seq[float32], int) (T, error) {
	return l.unexpected("f32 array")
}
func (l NumericLoader[T]) LoadSeqF64(Seq[float64], int) (T, error) {
	return l.unexpected("f64 array")
}

func (l NumericLoader[T]) LoadBinary(r io.Reader, length uint64) (T, error) {
	return l.unexpected("binary data")
}

func (l NumericLoader[T]) LoadString(r io.Reader, length uint64) (T, error) {
	return l.unexpected("string data")
}

// NumericArrayLoader loads a packed numeric array as []T, with the same
// Strict/permissive width-conversion policy as NumericLoader.
type NumericArrayLoader[T Numeric] struct {
	Strict bool
}

func (l NumericArrayLoader[T]) Expecting() string {
	var zero T
	name := numericTypeName(zero)
	if l.Strict {
		return name + " array (strict)"
	}
	return name + " array (widening allowed)"
}

func (l NumericArrayLoader[T]) unexpected(got string) ([]T, error) {
	return nil, ferr.NewUnexpectedAttribute(l.Expecting(), got)
}

func (l NumericArrayLoader[T]) LoadBool(bool) ([]T, error) { return l.unexpected("boolean") }
func (l NumericArrayLoader[T]) LoadI16(int16) ([]T, error) { return l.unexpected("i16") }
func (l NumericArrayLoader[T]) LoadI32(int32) ([]T, error) { return l.unexpected("i32") }
func (l NumericArrayLoader[T]) LoadI64(int64) ([]T, error) { return l.unexpected("i64") }
func (l NumericArrayLoader[T]) LoadF32(float32) ([]T, error) { return l.unexpected("f32") }
func (l NumericArrayLoader[T]) LoadF64(float64) ([]T, error) { return l.unexpected("f64") }

func (l NumericArrayLoader[T]) LoadSeqBool(Seq[bool], int) ([]T, error) {
	return l.unexpected("boolean array")
}

func (l NumericArrayLoader[T]) LoadSeqI32(elems Seq[int32], length int) ([]T, error) {
	var zero T
	switch any(zero).(type) {
	case int32:
		return collect[int32, T](elems, length, func(v int32) T { return any(v).(T) })
	case int64:
		if !l.Strict {
			return collect[int32, T](elems, length, func(v int32) T { return any(int64(v)).(T) })
		}
	}
	return l.unexpected("i32 array")
}

func (l NumericArrayLoader[T]) LoadSeqI64(elems Seq[int64], length int) ([]T, error) {
	var zero T
	if _, ok := any(zero).(int64); ok {
		return collect[int64, T](elems, length, func(v int64) T { return any(v).(T) })
	}
	return l.unexpected("i64 array")
}

func (l NumericArrayLoader[T]) LoadSeqF32(elems Seq[float32], length int) ([]T, error) {
	var zero T
	switch any(zero).(type) {
	case float32:
		return collect[float32, T](elems, length, func(v float32) T { return any(v).(T) })
	case float64:
		if !l.Strict {
			return collect[float32, T](elems, length, func(v float32) T { return any(float64(v)).(T) })
		}
	}
	return l.unexpected("f32 array")
}

func (l NumericArrayLoader[T]) LoadSeqF64(elems Seq[float64], length int) ([]T, error) {
	var zero T
	if _, ok := any(zero).(float64); ok {
		return collect[float64, T](elems, length, func(v float64) T { return any(v).(T) })
	}
	return l.unexpected("f64 array")
}

func (l NumericArrayLoader[T]) LoadBinary(r io.Reader, length uint64) ([]T, error) {
	return l.unexpected("binary data")
}

func (l NumericArrayLoader[T]) LoadString(r io.Reader, length uint64) ([]T, error) {
	return l.unexpected("string data")
}

func collect[S, T any](elems Seq[S], length int, convert func(S) T) ([]T, error) {
	out := make([]T, 0, length)
	for {
		v, ok, err := elems()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out = append(out, convert(v))
	}
	return out, nil
}

package low

import "math"

// AttributeValue is a fully-materialized node attribute: one variant
// per AttributeType. Exactly one of the typed fields is meaningful,
// selected by Type.
type AttributeValue struct {
	Type AttributeType

	boolVal bool
	i16Val  int16
	i32Val  int32
	i64Val  int64
	f32Val  float32
	f64Val  float64

	arrBool []bool
	arrI32  []int32
	arrI64  []int64
	arrF32  []float32
	arrF64  []float64

	binary []byte
	text   string
}

func NewBool(v bool) AttributeValue       { return AttributeValue{Type: Bool, boolVal: v} }
func NewI16(v int16) AttributeValue       { return AttributeValue{Type: I16, i16Val: v} }
func NewI32(v int32) AttributeValue       { return AttributeValue{Type: I32, i32Val: v} }
func NewI64(v int64) AttributeValue       { return AttributeValue{Type: I64, i64Val: v} }
func NewF32(v float32) AttributeValue     { return AttributeValue{Type: F32, f32Val: v} }
func NewF64(v float64) AttributeValue     { return AttributeValue{Type: F64, f64Val: v} }
func NewArrBool(v []bool) AttributeValue  { return AttributeValue{Type: ArrBool, arrBool: v} }
func NewArrI32(v []int32) AttributeValue  { return AttributeValue{Type: ArrI32, arrI32: v} }
func NewArrI64(v []int64) AttributeValue  { return AttributeValue{Type: ArrI64, arrI64: v} }
func NewArrF32(v []float32) AttributeValue { return AttributeValue{Type: ArrF32, arrF32: v} }
func NewArrF64(v []float64) AttributeValue { return AttributeValue{Type: ArrF64, arrF64: v} }
func NewBinary(v []byte) AttributeValue   { return AttributeValue{Type: Binary, binary: v} }
func NewString(v string) AttributeValue   { return AttributeValue{Type: String, text: v} }

func (v AttributeValue) Bool() (bool, bool)          { return v.boolVal, v.Type == Bool }
func (v AttributeValue) I16() (int16, bool)          { return v.i16Val, v.Type == I16 }
func (v AttributeValue) I32() (int32, bool)          { return v.i32Val, v.Type == I32 }
func (v AttributeValue) I64() (int64, bool)          { return v.i64Val, v.Type == I64 }
func (v AttributeValue) F32() (float32, bool)        { return v.f32Val, v.Type == F32 }
func (v AttributeValue) F64() (float64, bool)        { return v.f64Val, v.Type == F64 }
func (v AttributeValue) ArrBool() ([]bool, bool)     { return v.arrBool, v.Type == ArrBool }
func (v AttributeValue) ArrI32() ([]int32, bool)     { return v.arrI32, v.Type == ArrI32 }
func (v AttributeValue) ArrI64() ([]int64, bool)     { return v.arrI64, v.Type == ArrI64 }
func (v AttributeValue) ArrF32() ([]float32, bool)   { return v.arrF32, v.Type == ArrF32 }
func (v AttributeValue) ArrF64() ([]float64, bool)   { return v.arrF64, v.Type == ArrF64 }
func (v AttributeValue) Binary() ([]byte, bool)      { return v.binary, v.Type == Binary }
func (v AttributeValue) String() (string, bool)      { return v.text, v.Type == String }

// StrictEqual compares two attribute values for bit-exact equality:
// F32/F64 (scalar or array element) compare by bit pattern, so that two
// NaNs with identical bit patterns are considered equal.
func (v AttributeValue) StrictEqual(other AttributeValue) bool {
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case Bool:
		return v.boolVal == other.boolVal
	case I16:
		return v.i16Val == other.i16Val
	case I32:
		return v.i32Val == other.i32Val
	case I64:
		return v.i64Val == other.i64Val
	case F32:
		return math.Float32bits(v.f32Val) == math.Float32bits(other.f32Val)
	case F64:
		return math.Float64bits(v.f64Val) == math.Float64bits(other.f64Val)
	case ArrBool:
		return boolSliceEqual(v.arrBool, other.arrBool)
	case ArrI32:
		return i32SliceEqual(v.arrI32, other.arrI32)
	case ArrI64:
		return i64SliceEqual(v.arrI64, other.arrI64)
	case ArrF32:
		return f32SliceStrictEqual(v.arrF32, other.arrF32)
	case ArrF64:
		return f64SliceStrictEqual(v.arrF64, other.arrF64)
	case Binary:
		return bytesEqual(v.binary, other.binary)
	case String:
		return v.text == other.text
	default:
		return false
	}
}

func boolSliceEqual(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func i32SliceEqual(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func i64SliceEqual(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func f32SliceStrictEqual(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Float32bits(a[i]) != math.Float32bits(b[i]) {
			return false
		}
	}
	return true
}

func f64SliceStrictEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Float64bits(a[i]) != math.Float64bits(b[i]) {
			return false
		}
	}
	return true
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

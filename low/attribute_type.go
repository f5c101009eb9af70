package low

import "github.com/scigolib/fbx/ferr"

// AttributeType is the closed set of node attribute kinds the wire
// format defines.
type AttributeType int

const (
	Bool AttributeType = iota
	I16
	I32
	I64
	F32
	F64
	ArrBool
	ArrI32
	ArrI64
	ArrF32
	ArrF64
	Binary
	String
)

// AttributeTypeFromCode maps a 1-byte wire type code to an
// AttributeType, or reports InvalidAttributeTypeCode.
func AttributeTypeFromCode(code byte) (AttributeType, error) {
	switch code {
	case 'C':
		return Bool, nil
	case 'Y':
		return I16, nil
	case 'I':
		return I32, nil
	case 'L':
		return I64, nil
	case 'F':
		return F32, nil
	case 'D':
		return F64, nil
	case 'b':
		return ArrBool, nil
	case 'i':
		return ArrI32, nil
	case 'l':
		return ArrI64, nil
	case 'f':
		return ArrF32, nil
	case 'd':
		return ArrF64, nil
	case 'R':
		return Binary, nil
	case 'S':
		return String, nil
	default:
		return 0, ferr.NewInvalidAttributeTypeCode(code)
	}
}

// Code returns the 1-byte wire type code for t.
func (t AttributeType) Code() byte {
	switch t {
	case Bool:
		return 'C'
	case I16:
		return 'Y'
	case I32:
		return 'I'
	case I64:
		return 'L'
	case F32:
		return 'F'
	case F64:
		return 'D'
	case ArrBool:
		return 'b'
	case ArrI32:
		return 'i'
	case ArrI64:
		return 'l'
	case ArrF32:
		return 'f'
	case ArrF64:
		return 'd'
	case Binary:
		return 'R'
	case String:
		return 'S'
	default:
		return 0
	}
}

// IsArray reports whether t is one of the packed-array kinds.
func (t AttributeType) IsArray() bool {
	switch t {
	case ArrBool, ArrI32, ArrI64, ArrF32, ArrF64:
		return true
	default:
		return false
	}
}

func (t AttributeType) String() string {
	switch t {
	case Bool:
		return "Bool"
	case I16:
		return "I16"
	case I32:
		return "I32"
	case I64:
		return "I64"
	case F32:
		return "F32"
	case F64:
		return "F64"
	case ArrBool:
		return "ArrBool"
	case ArrI32:
		return "ArrI32"
	case ArrI64:
		return "ArrI64"
	case ArrF32:
		return "ArrF32"
	case ArrF64:
		return "ArrF64"
	case Binary:
		return "Binary"
	case String:
		return "String"
	default:
		return "Unknown"
	}
}

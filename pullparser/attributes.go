package pullparser

import (
	"io"

	"github.com/scigolib/fbx/ferr"
	"github.com/scigolib/fbx/low"
)

// Attributes iterates the attributes of the node whose StartNode event
// was just returned. Attributes not consumed via LoadNext before the
// next NextEvent call are skipped automatically.
type Attributes struct {
	totalCount          uint64
	restCount           uint64
	nextAttrStartOffset uint64
	parser              *Parser
}

func newAttributes(p *Parser, count uint64) *Attributes {
	return &Attributes{totalCount: count, restCount: count, parser: p}
}

// TotalCount returns the attribute count declared in the node header.
func (a *Attributes) TotalCount() uint64 { return a.totalCount }

// RestCount returns how many attributes remain unread.
func (a *Attributes) RestCount() uint64 { return a.restCount }

// skipRest advances the source past any attributes the caller never
// loaded, without producing values. Called by the parser before it reads
// the next node header.
func (a *Attributes) skipRest() error {
	loader := NewTypeLoader()
	for a.restCount > 0 {
		if _, _, err := LoadNext[low.AttributeType](a, loader); err != nil {
			return err
		}
	}
	return nil
}

func (a *Attributes) readNextAttrType() (low.AttributeType, error) {
	buf := make([]byte, 1)
	if _, err := io.ReadFull(a.parser.source, buf); err != nil {
		return 0, ferr.New(err)
	}
	return low.AttributeTypeFromCode(buf[0])
}

// LoadNext reads the next attribute, if any, dispatching its wire value
// to the matching loader method. ok is false once the node's attributes
// are exhausted, in which case value is the zero value and err is nil.
func LoadNext[T any](a *Attributes, loader AttributeLoader[T]) (value T, ok bool, err error) {
	var zero T
	if err := a.parser.checkRunning(); err != nil {
		return zero, false, err
	}
	if a.restCount == 0 {
		return zero, false, nil
	}

	attrType, err := a.readNextAttrType()
	if err != nil {
		a.parser.abort(err)
		return zero, false, err
	}

	v, err := loadNextImpl(a, attrType, loader)
	if err != nil {
		a.parser.abort(err)
		return zero, false, err
	}

	if err := a.parser.source.SkipToAbsolute(a.nextAttrStartOffset); err != nil {
		a.parser.abort(err)
		return zero, false, err
	}

	a.restCount--
	return v, true, nil
}

// scalarStart records that the attribute just read has no separate
// length-prefixed payload: the next attribute starts immediately after
// the current source position.
func (a *Attributes) scalarStart() {
	a.nextAttrStartOffset = a.parser.source.Position()
}

func loadNextImpl[T any](a *Attributes, attrType low.AttributeType, loader AttributeLoader[T]) (T, error) {
	var zero T
	src := a.parser.source

	switch attrType {
	case low.Bool:
		buf := make([]byte, 1)
		if _, err := io.ReadFull(src, buf); err != nil {
			return zero, ferr.New(err)
		}
		a.scalarStart()
		if buf[0] != 'T' && buf[0] != 'Y' {
			if werr := a.parser.warn(ferr.Warning{Kind: ferr.WarnIncorrectBooleanRepresentation, Got: int(buf[0])}); werr != nil {
				return zero, werr
			}
		}
		return loader.LoadBool(buf[0]&0x01 != 0)

	case low.I16:
		v, err := readI16(src)
		if err != nil {
			return zero, err
		}
		a.scalarStart()
		return loader.LoadI16(v)

	case low.I32:
		v, err := readI32(src)
		if err != nil {
			return zero, err
		}
		a.scalarStart()
		return loader.LoadI32(v)

	case low.I64:
		v, err := readI64(src)
		if err != nil {
			return zero, err
		}
		a.scalarStart()
		return loader.LoadI64(v)

	case low.F32:
		v, err := readF32(src)
		if err != nil {
			return zero, err
		}
		a.scalarStart()
		return loader.LoadF32(v)

	case low.F64:
		v, err := readF64(src)
		if err != nil {
			return zero, err
		}
		a.scalarStart()
		return loader.LoadF64(v)

	case low.ArrBool, low.ArrI32, low.ArrI64, low.ArrF32, low.ArrF64:
		header, err := low.ReadArrayAttributeHeader(src)
		if err != nil {
			return zero, err
		}
		payloadStart := src.Position()
		a.nextAttrStartOffset = payloadStart + uint64(header.Bytelen)
		payload := io.LimitReader(src, int64(header.Bytelen))
		decoded, err := arrayStreamDecoder(payload, header.Encoding)
		if err != nil {
			return zero, err
		}
		switch attrType {
		case low.ArrBool:
			var sawIncorrect bool
			elems := BoolElements(decoded, header.ElementsCount, &sawIncorrect)
			v, err := loader.LoadSeqBool(elems, int(header.ElementsCount))
			if err != nil {
				return zero, err
			}
			if sawIncorrect {
				if werr := a.parser.warn(ferr.Warning{Kind: ferr.WarnIncorrectBooleanRepresentation}); werr != nil {
					return zero, werr
				}
			}
			return v, nil
		case low.ArrI32:
			return loader.LoadSeqI32(I32Elements(decoded, header.ElementsCount), int(header.ElementsCount))
		case low.ArrI64:
			return loader.LoadSeqI64(I64Elements(decoded, header.ElementsCount), int(header.ElementsCount))
		case low.ArrF32:
			return loader.LoadSeqF32(F32Elements(decoded, header.ElementsCount), int(header.ElementsCount))
		default: // ArrF64
			return loader.LoadSeqF64(F64Elements(decoded, header.ElementsCount), int(header.ElementsCount))
		}

	case low.Binary:
		header, err := low.ReadSpecialAttributeHeader(src)
		if err != nil {
			return zero, err
		}
		payloadStart := src.Position()
		a.nextAttrStartOffset = payloadStart + uint64(header.Bytelen)
		return loader.LoadBinary(io.LimitReader(src, int64(header.Bytelen)), uint64(header.Bytelen))

	case low.String:
		header, err := low.ReadSpecialAttributeHeader(src)
		if err != nil {
			return zero, err
		}
		payloadStart := src.Position()
		a.nextAttrStartOffset = payloadStart + uint64(header.Bytelen)
		return loader.LoadString(io.LimitReader(src, int64(header.Bytelen)), uint64(header.Bytelen))

	default:
		return zero, ferr.NewInvalidAttributeTypeCode(attrType.Code())
	}
}

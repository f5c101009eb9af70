package ferr

import "fmt"

// WriterError reports a value the writer cannot represent on the wire,
// as opposed to a misuse of the writer API (which is an OperationError).
type WriterError struct {
	kind  writerKind
	limit uint64
	value uint64
}

type writerKind int

const (
	// FileTooLarge: a V7_4 node's end_offset does not fit in u32.
	writerFileTooLarge writerKind = iota
	// TooManyAttributes: a node's attribute count does not fit the
	// target version's width (u32 for V7_4).
	writerTooManyAttributes
	// TooManyArrayAttributeElements: an array attribute's element count
	// does not fit in u32.
	writerTooManyArrayElements
	// AttributeTooLong: a Binary/String/array payload's byte length does
	// not fit in u32.
	writerAttributeTooLong
)

func NewFileTooLarge(offset uint64) error {
	return &WriterError{kind: writerFileTooLarge, value: offset, limit: 0xffffffff}
}

func NewTooManyAttributes(count uint64) error {
	return &WriterError{kind: writerTooManyAttributes, value: count, limit: 0xffffffff}
}

func NewTooManyArrayAttributeElements(count uint64) error {
	return &WriterError{kind: writerTooManyArrayElements, value: count, limit: 0xffffffff}
}

func NewAttributeTooLong(bytelen uint64) error {
	return &WriterError{kind: writerAttributeTooLong, value: bytelen, limit: 0xffffffff}
}

func (e *WriterError) Error() string {
	switch e.kind {
	case writerFileTooLarge:
		return fmt.Sprintf("file too large for this format version: offset %d exceeds limit %d", e.value, e.limit)
	case writerTooManyAttributes:
		return fmt.Sprintf("too many attributes for this format version: %d exceeds limit %d", e.value, e.limit)
	case writerTooManyArrayElements:
		return fmt.Sprintf("array attribute has too many elements: %d exceeds limit %d", e.value, e.limit)
	case writerAttributeTooLong:
		return fmt.Sprintf("attribute payload too long: %d bytes exceeds limit %d", e.value, e.limit)
	default:
		return "writer error"
	}
}

func (e *WriterError) Is(target error) bool {
	other, ok := target.(*WriterError)
	if !ok {
		return false
	}
	return e.kind == other.kind
}

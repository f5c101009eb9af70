package ferr

import "fmt"

// WarningKind classifies a non-fatal parsing warning.
type WarningKind int

const (
	// WarnEmptyNodeName is reported when a node's name length is zero.
	WarnEmptyNodeName WarningKind = iota
	// WarnIncorrectBooleanRepresentation is reported when a Bool
	// attribute's raw byte is not 'T' or 'Y' (the low bit is still
	// honored for the decoded value).
	WarnIncorrectBooleanRepresentation
	// WarnInvalidFooterPaddingLength is reported when the footer's
	// padding does not match the expected `(-pos) mod 16` length but
	// the footer is otherwise well-formed.
	WarnInvalidFooterPaddingLength
	// WarnUnexpectedFooterFieldValue is reported when a footer "unknown"
	// field's upper nibble does not match the known mask.
	WarnUnexpectedFooterFieldValue
	// WarnMissingNodeEndMarker is reported when a node that has
	// children, or has zero attributes, omits its end marker.
	WarnMissingNodeEndMarker
	// WarnExtraNodeEndMarker is reported when a node with attributes and
	// no children is followed by an end marker anyway.
	WarnExtraNodeEndMarker
)

func (k WarningKind) String() string {
	switch k {
	case WarnEmptyNodeName:
		return "empty node name"
	case WarnIncorrectBooleanRepresentation:
		return "incorrect boolean representation"
	case WarnInvalidFooterPaddingLength:
		return "invalid footer padding length"
	case WarnUnexpectedFooterFieldValue:
		return "unexpected footer field value"
	case WarnMissingNodeEndMarker:
		return "missing node end marker"
	case WarnExtraNodeEndMarker:
		return "extra node end marker"
	default:
		return "unknown warning"
	}
}

// Warning is a non-fatal condition encountered while parsing. A
// WarningHandler may promote it to a hard error by returning non-nil.
type Warning struct {
	Kind WarningKind
	// Expected and Got are populated for WarnInvalidFooterPaddingLength;
	// zero otherwise.
	Expected int
	Got      int
}

func (w Warning) Error() string {
	switch w.Kind {
	case WarnInvalidFooterPaddingLength:
		return fmt.Sprintf("invalid footer padding length: expected %d bytes, got %d bytes", w.Expected, w.Got)
	default:
		return w.Kind.String()
	}
}

// WarningHandler receives a warning and its position. Returning a
// non-nil error promotes the warning to a hard parse error.
type WarningHandler func(Warning, SyntacticPosition) error

package writer

import (
	"fmt"

	"github.com/scigolib/fbx/low"
	"github.com/scigolib/fbx/tree"
)

// WriteTree serializes t's top-level children (the implicit root itself
// is never emitted as a node) into w. It does not call w.Finalize. Arrays
// are written uncompressed; use WriteTreeCompressed for zlib-packed arrays.
func WriteTree(w *Writer, t *tree.Tree) error {
	return writeChildren(w, t.Root(), false)
}

// WriteTreeCompressed is WriteTree but every array attribute is
// zlib-compressed.
func WriteTreeCompressed(w *Writer, t *tree.Tree) error {
	return writeChildren(w, t.Root(), true)
}

func writeChildren(w *Writer, parent tree.NodeHandle, compress bool) error {
	var err error
	parent.Children()(func(child tree.NodeHandle) bool {
		err = writeNode(w, child, compress)
		return err == nil
	})
	if err != nil {
		return err
	}
	return nil
}

func writeNode(w *Writer, h tree.NodeHandle, compress bool) error {
	attrsWriter, err := w.NewNode(h.Name())
	if err != nil {
		return err
	}
	for _, attr := range h.Attributes() {
		if err := appendAttribute(attrsWriter, attr, compress); err != nil {
			return err
		}
	}
	if err := writeChildren(w, h, compress); err != nil {
		return err
	}
	return w.CloseNode()
}

func appendAttribute(a *AttributesWriter, v low.AttributeValue, compress bool) error {
	switch v.Type {
	case low.Bool:
		x, _ := v.Bool()
		return a.AppendBool(x)
	case low.I16:
		x, _ := v.I16()
		return a.AppendI16(x)
	case low.I32:
		x, _ := v.I32()
		return a.AppendI32(x)
	case low.I64:
		x, _ := v.I64()
		return a.AppendI64(x)
	case low.F32:
		x, _ := v.F32()
		return a.AppendF32(x)
	case low.F64:
		x, _ := v.F64()
		return a.AppendF64(x)
	case low.ArrBool:
		x, _ := v.ArrBool()
		return a.AppendArrBoolFromSlice(x, compress)
	case low.ArrI32:
		x, _ := v.ArrI32()
		return a.AppendArrI32FromSlice(x, compress)
	case low.ArrI64:
		x, _ := v.ArrI64()
		return a.AppendArrI64FromSlice(x, compress)
	case low.ArrF32:
		x, _ := v.ArrF32()
		return a.AppendArrF32FromSlice(x, compress)
	case low.ArrF64:
		x, _ := v.ArrF64()
		return a.AppendArrF64FromSlice(x, compress)
	case low.Binary:
		x, _ := v.Binary()
		return a.AppendBinaryDirect(x)
	case low.String:
		x, _ := v.String()
		return a.AppendStringDirect(x)
	default:
		return fmt.Errorf("writer: unknown attribute type %v", v.Type)
	}
}

package tree

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scigolib/fbx/low"
)

func TestAppendNew_OrdersChildrenAndLinksSiblings(t *testing.T) {
	tr := New()
	a := tr.AppendNew(RootID, "A")
	b := tr.AppendNew(RootID, "B")
	c := tr.AppendNew(RootID, "C")

	var names []string
	tr.Root().Children()(func(h NodeHandle) bool {
		names = append(names, h.Name())
		return true
	})
	require.Equal(t, []string{"A", "B", "C"}, names)

	bHandle := NodeHandle{id: b, tree: tr}
	prev, ok := bHandle.PreviousSibling()
	require.True(t, ok)
	require.Equal(t, a, prev.ID())

	next, ok := bHandle.NextSibling()
	require.True(t, ok)
	require.Equal(t, c, next.ID())
}

func TestPrependNew(t *testing.T) {
	tr := New()
	tr.AppendNew(RootID, "A")
	tr.PrependNew(RootID, "Zero")

	first, ok := tr.Root().FirstChild()
	require.True(t, ok)
	require.Equal(t, "Zero", first.Name())
}

func TestInsertNewBefore_And_After(t *testing.T) {
	tr := New()
	mid := tr.AppendNew(RootID, "Mid")
	tr.InsertNewBefore(mid, "Before")
	tr.InsertNewAfter(mid, "After")

	var names []string
	tr.Root().Children()(func(h NodeHandle) bool {
		names = append(names, h.Name())
		return true
	})
	require.Equal(t, []string{"Before", "Mid", "After"}, names)
}

func TestInsertNewBefore_RootPanics(t *testing.T) {
	tr := New()
	require.Panics(t, func() { tr.InsertNewBefore(RootID, "X") })
}

func TestChildrenByName_UninternedNameYieldsNothing(t *testing.T) {
	tr := New()
	tr.AppendNew(RootID, "A")

	calls := 0
	tr.Root().ChildrenByName("NeverUsed")(func(NodeHandle) bool {
		calls++
		return true
	})
	require.Zero(t, calls)
}

func TestChildrenByName_FiltersByName(t *testing.T) {
	tr := New()
	tr.AppendNew(RootID, "Model")
	tr.AppendNew(RootID, "Geometry")
	tr.AppendNew(RootID, "Model")

	var ids []NodeId
	tr.Root().ChildrenByName("Model")(func(h NodeHandle) bool {
		ids = append(ids, h.ID())
		return true
	})
	require.Len(t, ids, 2)
}

func TestFirstChildByName(t *testing.T) {
	tr := New()
	tr.AppendNew(RootID, "Geometry")
	want := tr.AppendNew(RootID, "Model")

	got, ok := tr.Root().FirstChildByName("Model")
	require.True(t, ok)
	require.Equal(t, want, got.ID())

	_, ok = tr.Root().FirstChildByName("Missing")
	require.False(t, ok)
}

func TestAppendAttribute(t *testing.T) {
	tr := New()
	n := tr.AppendNew(RootID, "Version")
	tr.AppendAttribute(n, low.NewI32(7400))

	h := NodeHandle{id: n, tree: tr}
	require.Len(t, h.Attributes(), 1)
	v, ok := h.Attributes()[0].I32()
	require.True(t, ok)
	require.EqualValues(t, 7400, v)
}

func TestParent(t *testing.T) {
	tr := New()
	child := tr.AppendNew(RootID, "Child")
	h := NodeHandle{id: child, tree: tr}

	parent, ok := h.Parent()
	require.True(t, ok)
	require.True(t, parent.IsRoot())

	_, ok = tr.Root().Parent()
	require.False(t, ok)
}

func TestStrictEq(t *testing.T) {
	t1 := New()
	a := t1.AppendNew(RootID, "A")
	t1.AppendAttribute(a, low.NewF64(1.5))
	t1.AppendNew(a, "Child")

	t2 := New()
	b := t2.AppendNew(RootID, "A")
	t2.AppendAttribute(b, low.NewF64(1.5))
	t2.AppendNew(b, "Child")

	require.True(t, t1.Root().StrictEq(t2.Root()))

	t3 := New()
	c := t3.AppendNew(RootID, "A")
	t3.AppendAttribute(c, low.NewF64(1.6))
	require.False(t, t1.Root().StrictEq(t3.Root()))
}

func TestStrictEq_NaNBitPatternMustMatch(t *testing.T) {
	t1 := New()
	n1 := t1.AppendNew(RootID, "N")
	t1.AppendAttribute(n1, low.NewF64(nanWithPayload(1)))

	t2 := New()
	n2 := t2.AppendNew(RootID, "N")
	t2.AppendAttribute(n2, low.NewF64(nanWithPayload(1)))

	require.True(t, t1.Root().StrictEq(t2.Root()))

	t3 := New()
	n3 := t3.AppendNew(RootID, "N")
	t3.AppendAttribute(n3, low.NewF64(nanWithPayload(2)))
	require.False(t, t1.Root().StrictEq(t3.Root()))
}

func nanWithPayload(payload uint64) float64 {
	bits := uint64(0x7ff8000000000000) | payload
	return math.Float64frombits(bits)
}

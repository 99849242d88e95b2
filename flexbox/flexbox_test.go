package flexbox

import "testing"

// newChild attaches a fresh node with the given explicit size.
func newChild(parent *Node, width, height Value) *Node {
	n := NewNode()
	n.Style.Width = width
	n.Style.Height = height
	parent.AppendChild(n)
	return n
}

func TestDefaultStyle(t *testing.T) {
	s := DefaultStyle()
	if s.FlexDirection != FlexDirectionRow {
		t.Errorf("default direction should be row, got %v", s.FlexDirection)
	}
	if s.Wrap != FlexWrapNowrap {
		t.Errorf("default wrap should be nowrap, got %v", s.Wrap)
	}
	if s.JustifyContent != JustifyFlexStart {
		t.Errorf("default justify-content should be flex-start, got %v", s.JustifyContent)
	}
	if s.AlignItems != AlignItemsStretch {
		t.Errorf("default align-items should be stretch, got %v", s.AlignItems)
	}
	if s.FlexShrink != 1 {
		t.Errorf("default flex-shrink should be 1, got %v", s.FlexShrink)
	}
	if s.Width.IsDefined() {
		t.Error("default width should be undefined")
	}
}

func TestValueUndefinedDistinctFromZero(t *testing.T) {
	if Points(0).Unit == UnitUndefined {
		t.Error("Points(0) must not be undefined")
	}
	if _, ok := Undefined.Resolve(100); ok {
		t.Error("undefined value should not resolve")
	}
	if v, ok := Points(0).Resolve(100); !ok || v != 0 {
		t.Errorf("Points(0) should resolve to 0, got (%v, %v)", v, ok)
	}
	if v, ok := Percent(50).Resolve(200); !ok || v != 100 {
		t.Errorf("Percent(50) of 200 should be 100, got (%v, %v)", v, ok)
	}
}

func TestRowLayoutExplicitSizes(t *testing.T) {
	root := NewNode()
	a := newChild(root, Points(100), Points(50))
	b := newChild(root, Points(80), Points(40))

	CalculateLayout(root, 400, 300, DirectionLTR)

	if l := a.Layout(); l.Left != 0 || l.Top != 0 || l.Width != 100 || l.Height != 50 {
		t.Errorf("first child layout: got %+v", l)
	}
	if l := b.Layout(); l.Left != 100 || l.Top != 0 || l.Width != 80 || l.Height != 40 {
		t.Errorf("second child layout: got %+v", l)
	}
	if l := root.Layout(); l.Width != 400 || l.Height != 300 {
		t.Errorf("root layout: got %+v", l)
	}
}

func TestColumnLayout(t *testing.T) {
	root := NewNode()
	root.Style.FlexDirection = FlexDirectionColumn
	a := newChild(root, Points(100), Points(50))
	b := newChild(root, Points(100), Points(60))

	CalculateLayout(root, 400, 300, DirectionLTR)

	if l := a.Layout(); l.Top != 0 {
		t.Errorf("first child top: got %v, expected 0", l.Top)
	}
	if l := b.Layout(); l.Top != 50 {
		t.Errorf("second child top: got %v, expected 50", l.Top)
	}
}

func TestJustifyCenter(t *testing.T) {
	root := NewNode()
	root.Style.JustifyContent = JustifyCenter
	a := newChild(root, Points(100), Points(50))

	CalculateLayout(root, 400, 300, DirectionLTR)

	if l := a.Layout(); l.Left != 150 {
		t.Errorf("centered child left: got %v, expected 150", l.Left)
	}
}

func TestJustifySpaceBetween(t *testing.T) {
	root := NewNode()
	root.Style.JustifyContent = JustifySpaceBetween
	a := newChild(root, Points(100), Points(50))
	b := newChild(root, Points(100), Points(50))

	CalculateLayout(root, 400, 300, DirectionLTR)

	if l := a.Layout(); l.Left != 0 {
		t.Errorf("first child left: got %v, expected 0", l.Left)
	}
	if l := b.Layout(); l.Left != 300 {
		t.Errorf("second child left: got %v, expected 300", l.Left)
	}
}

func TestFlexGrowDistribution(t *testing.T) {
	root := NewNode()
	a := newChild(root, Points(100), Points(50))
	a.Style.FlexGrow = 1
	b := newChild(root, Points(100), Points(50))
	b.Style.FlexGrow = 3

	CalculateLayout(root, 600, 300, DirectionLTR)

	// 400 free space split 1:3.
	if l := a.Layout(); l.Width != 200 {
		t.Errorf("grow 1 width: got %v, expected 200", l.Width)
	}
	if l := b.Layout(); l.Width != 400 {
		t.Errorf("grow 3 width: got %v, expected 400", l.Width)
	}
}

func TestFlexShrinkDistribution(t *testing.T) {
	root := NewNode()
	a := newChild(root, Points(300), Points(50))
	b := newChild(root, Points(300), Points(50))

	CalculateLayout(root, 400, 300, DirectionLTR)

	// 200 deficit, equal base sizes and shrink factors.
	if l := a.Layout(); l.Width != 200 {
		t.Errorf("shrunk width: got %v, expected 200", l.Width)
	}
	if l := b.Layout(); l.Left != 200 || l.Width != 200 {
		t.Errorf("second shrunk child: got %+v", l)
	}
}

func TestFlexBasisOverridesWidth(t *testing.T) {
	root := NewNode()
	a := newChild(root, Points(100), Points(50))
	a.Style.FlexBasis = Points(250)

	CalculateLayout(root, 400, 300, DirectionLTR)

	if l := a.Layout(); l.Width != 250 {
		t.Errorf("basis width: got %v, expected 250", l.Width)
	}
}

func TestPercentWidth(t *testing.T) {
	root := NewNode()
	a := newChild(root, Percent(50), Points(50))

	CalculateLayout(root, 400, 300, DirectionLTR)

	if l := a.Layout(); l.Width != 200 {
		t.Errorf("percent width: got %v, expected 200", l.Width)
	}
}

func TestMinMaxClamp(t *testing.T) {
	root := NewNode()
	a := newChild(root, Points(100), Points(50))
	a.Style.MaxWidth = Points(80)
	b := newChild(root, Points(10), Points(50))
	b.Style.MinWidth = Points(40)

	CalculateLayout(root, 400, 300, DirectionLTR)

	if l := a.Layout(); l.Width != 80 {
		t.Errorf("max-clamped width: got %v, expected 80", l.Width)
	}
	if l := b.Layout(); l.Width != 40 {
		t.Errorf("min-clamped width: got %v, expected 40", l.Width)
	}
}

func TestMargins(t *testing.T) {
	root := NewNode()
	a := newChild(root, Points(100), Points(50))
	a.Style.Margin[EdgeLeft] = Points(10)
	a.Style.Margin[EdgeTop] = Points(5)
	b := newChild(root, Points(100), Points(50))

	CalculateLayout(root, 400, 300, DirectionLTR)

	if l := a.Layout(); l.Left != 10 || l.Top != 5 {
		t.Errorf("margined child: got %+v", l)
	}
	if l := b.Layout(); l.Left != 110 {
		t.Errorf("sibling after margin: got %v, expected 110", l.Left)
	}
}

func TestContainerPadding(t *testing.T) {
	root := NewNode()
	root.Style.Padding[EdgeLeft] = Points(20)
	root.Style.Padding[EdgeTop] = Points(10)
	a := newChild(root, Points(100), Points(50))

	CalculateLayout(root, 400, 300, DirectionLTR)

	if l := a.Layout(); l.Left != 20 || l.Top != 10 {
		t.Errorf("padded container child: got %+v", l)
	}
}

func TestWrap(t *testing.T) {
	root := NewNode()
	root.Style.Wrap = FlexWrapWrap
	a := newChild(root, Points(200), Points(50))
	b := newChild(root, Points(200), Points(50))
	c := newChild(root, Points(200), Points(50))

	CalculateLayout(root, 400, 300, DirectionLTR)

	if l := a.Layout(); l.Top != 0 {
		t.Errorf("first line top: got %v", l.Top)
	}
	if l := b.Layout(); l.Left != 200 || l.Top != 0 {
		t.Errorf("second item should share line one: got %+v", l)
	}
	if l := c.Layout(); l.Left != 0 || l.Top != 50 {
		t.Errorf("third item should wrap: got %+v", l)
	}
}

func TestRowReverse(t *testing.T) {
	root := NewNode()
	root.Style.FlexDirection = FlexDirectionRowReverse
	a := newChild(root, Points(100), Points(50))

	CalculateLayout(root, 400, 300, DirectionLTR)

	if l := a.Layout(); l.Left != 300 {
		t.Errorf("row-reverse child left: got %v, expected 300", l.Left)
	}
}

func TestRowReverseJustify(t *testing.T) {
	root := NewNode()
	root.Style.FlexDirection = FlexDirectionRowReverse
	root.Style.JustifyContent = JustifyCenter
	a := newChild(root, Points(100), Points(50))

	CalculateLayout(root, 400, 300, DirectionLTR)

	if l := a.Layout(); l.Left != 150 {
		t.Errorf("row-reverse centered child left: got %v, expected 150", l.Left)
	}

	root.Style.JustifyContent = JustifyFlexEnd
	CalculateLayout(root, 400, 300, DirectionLTR)

	// flex-end packs toward the reversed main axis end, the left edge.
	if l := a.Layout(); l.Left != 0 {
		t.Errorf("row-reverse flex-end child left: got %v, expected 0", l.Left)
	}
}

func TestColumnReverseJustifyCenter(t *testing.T) {
	root := NewNode()
	root.Style.FlexDirection = FlexDirectionColumnReverse
	root.Style.JustifyContent = JustifyCenter
	a := newChild(root, Points(100), Points(50))

	CalculateLayout(root, 400, 300, DirectionLTR)

	if l := a.Layout(); l.Top != 125 {
		t.Errorf("column-reverse centered child top: got %v, expected 125", l.Top)
	}
}

func TestRTLMirrorsRow(t *testing.T) {
	root := NewNode()
	a := newChild(root, Points(100), Points(50))

	CalculateLayout(root, 400, 300, DirectionRTL)

	if l := a.Layout(); l.Left != 300 {
		t.Errorf("rtl child left: got %v, expected 300", l.Left)
	}
}

func TestRTLDoesNotAffectColumn(t *testing.T) {
	root := NewNode()
	root.Style.FlexDirection = FlexDirectionColumn
	a := newChild(root, Points(100), Points(50))

	CalculateLayout(root, 400, 300, DirectionRTL)

	if l := a.Layout(); l.Top != 0 || l.Left != 0 {
		t.Errorf("rtl column child: got %+v", l)
	}
}

func TestOrderSorting(t *testing.T) {
	root := NewNode()
	a := newChild(root, Points(100), Points(50))
	a.Style.Order = 2
	b := newChild(root, Points(100), Points(50))
	b.Style.Order = 1

	CalculateLayout(root, 400, 300, DirectionLTR)

	if l := b.Layout(); l.Left != 0 {
		t.Errorf("order 1 should come first: got %v", l.Left)
	}
	if l := a.Layout(); l.Left != 100 {
		t.Errorf("order 2 should come second: got %v", l.Left)
	}
}

func TestAlignItemsCenterCross(t *testing.T) {
	root := NewNode()
	root.Style.AlignItems = AlignItemsCenter
	a := newChild(root, Points(100), Points(50))

	CalculateLayout(root, 400, 300, DirectionLTR)

	if l := a.Layout(); l.Top != 125 {
		t.Errorf("cross-centered child top: got %v, expected 125", l.Top)
	}
}

func TestStretchCross(t *testing.T) {
	root := NewNode()
	a := newChild(root, Points(100), Undefined)
	b := newChild(root, Points(100), Points(120))

	CalculateLayout(root, 400, 300, DirectionLTR)

	// Single-line container: the line spans the whole inner cross size.
	if l := a.Layout(); l.Height != 300 {
		t.Errorf("stretched child height: got %v, expected 300", l.Height)
	}
	if l := b.Layout(); l.Height != 120 {
		t.Errorf("explicit child height should stay: got %v", l.Height)
	}
}

func TestContentDerivedSizeFromChildren(t *testing.T) {
	root := NewNode()
	group := NewNode()
	root.AppendChild(group)
	newChild(group, Points(100), Points(50))
	newChild(group, Points(60), Points(80))

	CalculateLayout(root, 400, 300, DirectionLTR)

	// Row group: widths sum, heights max.
	if l := group.Layout(); l.Width != 160 {
		t.Errorf("derived group width: got %v, expected 160", l.Width)
	}
}

func TestNestedChildrenPositionedRelativeToParent(t *testing.T) {
	root := NewNode()
	group := NewNode()
	group.Style.Width = Points(200)
	group.Style.Height = Points(100)
	root.AppendChild(group)
	inner := newChild(group, Points(50), Points(50))

	CalculateLayout(root, 400, 300, DirectionLTR)

	if l := inner.Layout(); l.Left != 0 || l.Top != 0 {
		t.Errorf("nested child should be relative to its parent: got %+v", l)
	}
}

func TestDeterministicRepeatedLayout(t *testing.T) {
	root := NewNode()
	a := newChild(root, Points(100), Points(50))
	a.Style.FlexGrow = 1
	newChild(root, Points(80), Points(40))

	CalculateLayout(root, 400, 300, DirectionLTR)
	first := a.Layout()
	CalculateLayout(root, 400, 300, DirectionLTR)
	second := a.Layout()

	if first != second {
		t.Errorf("repeated layout diverged: %+v then %+v", first, second)
	}
}

func TestNegativeRootSizePassesThrough(t *testing.T) {
	root := NewNode()
	newChild(root, Points(100), Points(50))

	CalculateLayout(root, -10, 0, DirectionLTR)

	if l := root.Layout(); l.Width != -10 || l.Height != 0 {
		t.Errorf("root size should pass through unclamped: got %+v", l)
	}
}

func TestNodeTreeOps(t *testing.T) {
	parent := NewNode()
	a, b := NewNode(), NewNode()
	parent.AppendChild(a)
	parent.InsertChild(b, 0)

	if parent.ChildCount() != 2 {
		t.Fatalf("expected 2 children, got %d", parent.ChildCount())
	}
	if parent.Child(0) != b {
		t.Error("insert at 0 should come first")
	}

	other := NewNode()
	other.AppendChild(a)
	if a.Parent() != other {
		t.Error("re-appending should move the node")
	}
	if parent.ChildCount() != 1 {
		t.Errorf("old parent should have 1 child, got %d", parent.ChildCount())
	}

	parent.RemoveChild(a) // not a child anymore, must be a no-op
	if parent.ChildCount() != 1 {
		t.Error("removing a non-child should be a no-op")
	}
}

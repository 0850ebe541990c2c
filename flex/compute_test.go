package flex

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sized(w, h float64) Style {
	s := DefaultStyle()
	s.Width, s.Height = Points(w), Points(h)
	return s
}

func tree(t *testing.T, root Style, children ...*Node) (*Node, []*Node) {
	t.Helper()
	r := NewNode(root)
	for _, c := range children {
		require.NoError(t, r.AddChild(c))
	}
	return r, children
}

// intrinsic returns a measure func reporting a fixed content size, clamped
// like a text or image leaf.
func intrinsic(w, h float64) MeasureFunc {
	fit := func(v, avail float64, mode MeasureMode) float64 {
		switch mode {
		case MeasureExactly:
			return avail
		case MeasureAtMost:
			return math.Min(v, avail)
		default:
			return v
		}
	}
	return func(aw float64, wm MeasureMode, ah float64, hm MeasureMode) Size {
		return Size{fit(w, aw, wm), fit(h, ah, hm)}
	}
}

func assertLayout(t *testing.T, want Layout, n *Node) {
	t.Helper()
	got := n.Layout()
	assert.InDelta(t, want.X, got.X, 1e-6, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-6, "y")
	assert.InDelta(t, want.Width, got.Width, 1e-6, "width")
	assert.InDelta(t, want.Height, got.Height, 1e-6, "height")
}

func TestGrowFillsRemainingSpace(t *testing.T) {
	fixed := DefaultStyle()
	fixed.Width = Points(20)
	grow := DefaultStyle()
	grow.FlexGrow = 1

	root, kids := tree(t, DefaultStyle(), NewNode(fixed), NewNode(grow))
	require.NoError(t, Compute(root, 100, 50))

	assertLayout(t, Layout{0, 0, 100, 50}, root)
	assertLayout(t, Layout{0, 0, 20, 50}, kids[0])
	assertLayout(t, Layout{20, 0, 80, 50}, kids[1])
}

func TestJustifyContent(t *testing.T) {
	cases := []struct {
		justify Justify
		xs      []float64
	}{
		{JustifyFlexStart, []float64{0, 10, 20}},
		{JustifyFlexEnd, []float64{70, 80, 90}},
		{JustifyCenter, []float64{35, 45, 55}},
		{JustifySpaceBetween, []float64{0, 45, 90}},
		{JustifySpaceAround, []float64{70.0 / 6, 10 + 70.0/6 + 70.0/3, 20 + 70.0/6 + 140.0/3}},
		{JustifySpaceEvenly, []float64{17.5, 45, 72.5}},
	}
	for _, tc := range cases {
		rs := DefaultStyle()
		rs.JustifyContent = tc.justify
		root, kids := tree(t, rs, NewNode(sized(10, 10)), NewNode(sized(10, 10)), NewNode(sized(10, 10)))
		require.NoError(t, Compute(root, 100, 10))
		for i, k := range kids {
			assert.InDelta(t, tc.xs[i], k.Layout().X, 1e-6, "justify %d item %d", tc.justify, i)
		}
	}
}

func TestColumnAlignCenter(t *testing.T) {
	rs := DefaultStyle()
	rs.FlexDirection = Column
	rs.AlignItems = AlignCenter
	root, kids := tree(t, rs, NewNode(sized(20, 10)), NewNode(sized(40, 10)))
	require.NoError(t, Compute(root, 100, 100))

	assertLayout(t, Layout{40, 0, 20, 10}, kids[0])
	assertLayout(t, Layout{30, 10, 40, 10}, kids[1])
}

func TestShrinkWeightedByBasis(t *testing.T) {
	rs := DefaultStyle()
	rs.AlignItems = AlignFlexStart
	a := NewLeaf(DefaultStyle(), intrinsic(40, 10))
	b := NewLeaf(DefaultStyle(), intrinsic(60, 10))
	root, _ := tree(t, rs, a, b)
	require.NoError(t, Compute(root, 80, 50))

	assertLayout(t, Layout{0, 0, 32, 10}, a)
	assertLayout(t, Layout{32, 0, 48, 10}, b)
}

func TestMaxSizeFreezesItem(t *testing.T) {
	capped := DefaultStyle()
	capped.FlexGrow = 1
	capped.MaxWidth = Points(30)
	free := DefaultStyle()
	free.FlexGrow = 1

	root, kids := tree(t, DefaultStyle(), NewNode(capped), NewNode(free))
	require.NoError(t, Compute(root, 100, 10))

	assertLayout(t, Layout{0, 0, 30, 10}, kids[0])
	assertLayout(t, Layout{30, 0, 70, 10}, kids[1])
}

func TestWrapAndWrapReverse(t *testing.T) {
	for _, wrap := range []Wrap{WrapForward, WrapReverse} {
		rs := DefaultStyle()
		rs.FlexWrap = wrap
		rs.AlignContent = AlignFlexStart
		root, kids := tree(t, rs, NewNode(sized(40, 20)), NewNode(sized(40, 20)), NewNode(sized(40, 20)))
		require.NoError(t, Compute(root, 100, 100))

		if wrap == WrapForward {
			assertLayout(t, Layout{0, 0, 40, 20}, kids[0])
			assertLayout(t, Layout{40, 0, 40, 20}, kids[1])
			assertLayout(t, Layout{0, 20, 40, 20}, kids[2])
		} else {
			assertLayout(t, Layout{0, 80, 40, 20}, kids[0])
			assertLayout(t, Layout{40, 80, 40, 20}, kids[1])
			assertLayout(t, Layout{0, 60, 40, 20}, kids[2])
		}
	}
}

func TestAlignContentStretchSplitsFreeSpace(t *testing.T) {
	rs := DefaultStyle()
	rs.FlexWrap = WrapForward
	child := DefaultStyle()
	child.Width = Points(60)
	root, kids := tree(t, rs, NewNode(child), NewNode(child))
	require.NoError(t, Compute(root, 100, 100))

	assertLayout(t, Layout{0, 0, 60, 50}, kids[0])
	assertLayout(t, Layout{0, 50, 60, 50}, kids[1])
}

func TestPaddingMarginAndPercent(t *testing.T) {
	rs := DefaultStyle()
	rs.Padding = EdgeAll(Points(10))
	cs := DefaultStyle()
	cs.Width = Percent(0.5)
	cs.Height = Points(20)
	cs.Margin = Edges{Start: Points(5)}

	root, kids := tree(t, rs, NewNode(cs))
	require.NoError(t, Compute(root, 100, 100))
	assertLayout(t, Layout{15, 10, 40, 20}, kids[0])
}

func TestNestedPercentResolvesAgainstParent(t *testing.T) {
	cs := DefaultStyle()
	cs.Width = Percent(0.5)
	cs.Height = Percent(1)
	gs := DefaultStyle()
	gs.Width = Percent(0.5)

	child := NewNode(cs)
	grand := NewNode(gs)
	require.NoError(t, child.AddChild(grand))
	root, _ := tree(t, DefaultStyle(), child)
	require.NoError(t, Compute(root, 200, 100))

	assertLayout(t, Layout{0, 0, 100, 100}, child)
	assertLayout(t, Layout{0, 0, 50, 100}, grand)
}

func TestAbsoluteAgainstPaddingBox(t *testing.T) {
	abs := sized(10, 10)
	abs.PositionType = PositionAbsolute
	abs.Position = Edges{End: Points(5), Bottom: Points(5)}

	flow := DefaultStyle()
	flow.FlexGrow = 1

	root, kids := tree(t, DefaultStyle(), NewNode(abs), NewNode(flow))
	require.NoError(t, Compute(root, 100, 100))

	assertLayout(t, Layout{85, 85, 10, 10}, kids[0])
	assertLayout(t, Layout{0, 0, 100, 100}, kids[1])
}

func TestRelativeOffset(t *testing.T) {
	cs := sized(10, 10)
	cs.Position = Edges{Start: Points(3), Top: Points(4)}
	root, kids := tree(t, DefaultStyle(), NewNode(cs))
	require.NoError(t, Compute(root, 100, 100))
	assertLayout(t, Layout{3, 4, 10, 10}, kids[0])
}

func TestRTLReversesRow(t *testing.T) {
	rs := DefaultStyle()
	rs.Direction = DirectionRTL
	a := DefaultStyle()
	a.Width = Points(10)
	b := DefaultStyle()
	b.Width = Points(20)
	root, kids := tree(t, rs, NewNode(a), NewNode(b))
	require.NoError(t, Compute(root, 100, 30))

	assertLayout(t, Layout{90, 0, 10, 30}, kids[0])
	assertLayout(t, Layout{70, 0, 20, 30}, kids[1])
}

func TestColumnReverse(t *testing.T) {
	rs := DefaultStyle()
	rs.FlexDirection = ColumnReverse
	root, kids := tree(t, rs, NewNode(sized(10, 10)), NewNode(sized(10, 20)))
	require.NoError(t, Compute(root, 50, 100))

	assertLayout(t, Layout{0, 90, 10, 10}, kids[0])
	assertLayout(t, Layout{0, 70, 10, 20}, kids[1])
}

func TestDisplayNoneTakesNoSpace(t *testing.T) {
	hidden := sized(30, 30)
	hidden.Display = DisplayNone
	root, kids := tree(t, DefaultStyle(), NewNode(hidden), NewNode(sized(10, 10)))
	require.NoError(t, Compute(root, 100, 100))

	assertLayout(t, Layout{}, kids[0])
	assertLayout(t, Layout{0, 0, 10, 10}, kids[1])
}

func TestAspectRatio(t *testing.T) {
	cs := DefaultStyle()
	cs.Width = Points(40)
	cs.AspectRatio = 2
	rs := DefaultStyle()
	rs.AlignItems = AlignFlexStart
	root, kids := tree(t, rs, NewNode(cs))
	require.NoError(t, Compute(root, 100, 100))
	assertLayout(t, Layout{0, 0, 40, 20}, kids[0])
}

func TestLeafReceivesConstraintModes(t *testing.T) {
	type call struct {
		w, h   float64
		wm, hm MeasureMode
	}
	var calls []call
	leaf := NewLeaf(DefaultStyle(), func(w float64, wm MeasureMode, h float64, hm MeasureMode) Size {
		calls = append(calls, call{w, h, wm, hm})
		return intrinsic(30, 12)(w, wm, h, hm)
	})
	rs := DefaultStyle()
	rs.AlignItems = AlignFlexStart
	root, _ := tree(t, rs, leaf)
	require.NoError(t, Compute(root, 100, 50))

	require.NotEmpty(t, calls)
	first := calls[0]
	assert.Equal(t, MeasureAtMost, first.wm)
	assert.Equal(t, MeasureAtMost, first.hm)
	assert.Equal(t, 100.0, first.w)
	assert.Equal(t, 50.0, first.h)
	assertLayout(t, Layout{0, 0, 30, 12}, leaf)
}

func TestComputeIsIdempotent(t *testing.T) {
	rs := DefaultStyle()
	rs.FlexWrap = WrapForward
	root, kids := tree(t, rs,
		NewLeaf(DefaultStyle(), intrinsic(70, 10)),
		NewLeaf(DefaultStyle(), intrinsic(50, 15)),
		NewNode(sized(20, 20)),
	)
	require.NoError(t, Compute(root, 100, 60))
	first := make([]Layout, len(kids))
	for i, k := range kids {
		first[i] = k.Layout()
	}
	require.NoError(t, Compute(root, 100, 60))
	for i, k := range kids {
		assert.Equal(t, first[i], k.Layout())
	}
}

func TestComputeRejectsIndefiniteViewport(t *testing.T) {
	root := NewNode(DefaultStyle())
	for _, v := range []float64{math.NaN(), math.Inf(1), -1} {
		err := Compute(root, v, 10)
		assert.True(t, errors.Is(err, ErrIndefiniteViewport), "width %v", v)
	}
}

func TestComputeReportsDivergence(t *testing.T) {
	leaf := NewLeaf(DefaultStyle(), func(float64, MeasureMode, float64, MeasureMode) Size {
		return Size{math.NaN(), 1}
	})
	root, _ := tree(t, DefaultStyle(), leaf)
	err := Compute(root, 10, 10)
	assert.True(t, errors.Is(err, ErrDiverged))
}

func TestAddChildErrors(t *testing.T) {
	leaf := NewLeaf(DefaultStyle(), intrinsic(1, 1))
	assert.ErrorIs(t, leaf.AddChild(NewNode(DefaultStyle())), ErrLeafChild)

	a := NewNode(DefaultStyle())
	b := NewNode(DefaultStyle())
	require.NoError(t, a.AddChild(b))
	assert.ErrorIs(t, b.AddChild(a), ErrCycle)
	assert.ErrorIs(t, a.AddChild(a), ErrCycle)

	other := NewNode(DefaultStyle())
	assert.ErrorIs(t, other.AddChild(b), ErrHasParent)
	assert.Same(t, a, b.Parent())
	assert.Len(t, a.Children(), 1)
}

package flex

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrIndefiniteViewport is returned when Compute gets a non-finite or negative size.
	ErrIndefiniteViewport = errors.New("flex: viewport must be finite and non-negative")
	// ErrDiverged is returned when the solved geometry is not finite.
	ErrDiverged = errors.New("flex: layout produced non-finite geometry")
)

var nan = math.NaN()

func defined(v float64) bool { return !math.IsNaN(v) }

// sub subtracts d from v, keeping NaN and clamping at zero.
func sub(v, d float64) float64 {
	if !defined(v) {
		return v
	}
	return math.Max(v-d, 0)
}

// clamp applies max then min, so min wins when they conflict.
func clamp(v, lo, hi float64) float64 {
	if !defined(v) {
		return v
	}
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// minDefined returns the smaller of two values ignoring NaN and +Inf on b.
func minDefined(a, b float64) float64 {
	if math.IsInf(b, 1) || !defined(b) {
		return a
	}
	if !defined(a) {
		return b
	}
	return math.Min(a, b)
}

// Compute solves the tree rooted at root for a viewport of width x height.
// The root takes its own style size when it resolves, otherwise the viewport.
func Compute(root *Node, width, height float64) error {
	if root == nil {
		return errors.New("flex: nil root")
	}
	if !finite(width) || !finite(height) || width < 0 || height < 0 {
		return fmt.Errorf("%w: %gx%g", ErrIndefiniteViewport, width, height)
	}
	root.reset()

	c := &computer{}
	viewport := Size{width, height}
	c.prepare(root, viewport, DirectionLTR)

	s := root.styleSize()
	lo, hi := root.bounds()
	w := s.Width
	if !defined(w) {
		w = width - root.margin.horizontal()
	}
	h := s.Height
	if !defined(h) {
		h = height - root.margin.vertical()
	}
	size := Size{clamp(w, lo.Width, hi.Width), clamp(h, lo.Height, hi.Height)}

	c.layoutNode(root, size, size, true)
	root.layout = Layout{X: root.margin.Left, Y: root.margin.Top, Width: size.Width, Height: size.Height}
	if c.err != nil {
		return c.err
	}
	return checkFinite(root)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func checkFinite(n *Node) error {
	l := n.layout
	if !finite(l.X) || !finite(l.Y) || !finite(l.Width) || !finite(l.Height) {
		return fmt.Errorf("%w: %+v", ErrDiverged, l)
	}
	for _, c := range n.children {
		if err := checkFinite(c); err != nil {
			return err
		}
	}
	return nil
}

type computer struct {
	err error
}

func (c *computer) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

// prepare resolves the values of n that depend on its owner: direction,
// margin, padding and border. Percent edges resolve against the owner width.
func (c *computer) prepare(n *Node, ownerInner Size, ownerDir Direction) {
	n.dir = n.style.Direction
	if n.dir == DirectionInherit {
		n.dir = ownerDir
	}
	if n.dir == DirectionInherit {
		n.dir = DirectionLTR
	}
	n.parentInner = ownerInner
	n.margin, n.marginAuto = resolveEdges(n.style.Margin, ownerInner.Width, n.dir)
	pad, _ := resolveEdges(n.style.Padding, ownerInner.Width, n.dir)
	n.padding = nonNegative(pad)
	border, _ := resolveEdges(n.style.Border, ownerInner.Width, n.dir)
	n.border = nonNegative(border)
}

// styleSize resolves width/height against the owner, applying the aspect ratio
// when only one axis is known.
func (n *Node) styleSize() Size {
	w := n.style.Width.resolve(n.parentInner.Width)
	h := n.style.Height.resolve(n.parentInner.Height)
	if r := n.style.AspectRatio; defined(r) && r > 0 {
		switch {
		case defined(w) && !defined(h):
			h = w / r
		case defined(h) && !defined(w):
			w = h * r
		}
	}
	return Size{w, h}
}

// bounds returns the border-box min and max sizes. Min never drops below
// padding plus border; a missing max is +Inf.
func (n *Node) bounds() (lo, hi Size) {
	pb := n.padding.add(n.border)
	minW := n.style.MinWidth.resolve(n.parentInner.Width)
	minH := n.style.MinHeight.resolve(n.parentInner.Height)
	maxW := n.style.MaxWidth.resolve(n.parentInner.Width)
	maxH := n.style.MaxHeight.resolve(n.parentInner.Height)
	if !defined(minW) {
		minW = 0
	}
	if !defined(minH) {
		minH = 0
	}
	if !defined(maxW) {
		maxW = math.Inf(1)
	}
	if !defined(maxH) {
		maxH = math.Inf(1)
	}
	return Size{math.Max(minW, pb.horizontal()), math.Max(minH, pb.vertical())}, Size{maxW, maxH}
}

// layoutNode returns the border-box size of n. known holds axes fixed by the
// caller, avail the space the caller can offer; NaN means unknown. With
// perform set, the children of n receive their final geometry.
func (c *computer) layoutNode(n *Node, known, avail Size, perform bool) Size {
	if !perform {
		if s, ok := n.cached(known, avail); ok {
			return s
		}
	}
	var size Size
	if n.measure != nil {
		size = c.measureLeaf(n, known, avail)
	} else {
		size = c.layoutFlex(n, known, avail, perform)
	}
	n.store(known, avail, size)
	return size
}

func axisConstraint(known, avail, pb float64) (float64, MeasureMode) {
	switch {
	case defined(known):
		return math.Max(known-pb, 0), MeasureExactly
	case defined(avail):
		return math.Max(avail-pb, 0), MeasureAtMost
	default:
		return nan, MeasureUndefined
	}
}

func (c *computer) measureLeaf(n *Node, known, avail Size) Size {
	if defined(known.Width) && defined(known.Height) {
		return known
	}
	pb := n.padding.add(n.border)
	w, wMode := axisConstraint(known.Width, avail.Width, pb.horizontal())
	h, hMode := axisConstraint(known.Height, avail.Height, pb.vertical())
	m := n.measure(w, wMode, h, hMode)
	if !finite(m.Width) || !finite(m.Height) {
		c.fail(fmt.Errorf("%w: measured %gx%g", ErrDiverged, m.Width, m.Height))
		m = Size{}
	}
	out := known
	if !defined(out.Width) {
		out.Width = math.Max(m.Width, 0) + pb.horizontal()
	}
	if !defined(out.Height) {
		out.Height = math.Max(m.Height, 0) + pb.vertical()
	}
	return out
}

// hide zeroes the geometry of a display:none subtree.
func hide(n *Node) {
	n.layout = Layout{}
	for _, c := range n.children {
		hide(c)
	}
}

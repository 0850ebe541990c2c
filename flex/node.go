package flex

import (
	"errors"
	"math"
)

var (
	// ErrLeafChild is returned when adding a child to a measured leaf.
	ErrLeafChild = errors.New("flex: measured leaf nodes cannot have children")
	// ErrHasParent is returned when the child already belongs to a tree.
	ErrHasParent = errors.New("flex: node already has a parent")
	// ErrCycle is returned when the child is the node itself or one of its ancestors.
	ErrCycle = errors.New("flex: adding the node would create a cycle")
)

// MeasureMode describes the constraint a measured leaf receives on one axis.
type MeasureMode uint8

const (
	// MeasureUndefined: no constraint, the size passed in is NaN.
	MeasureUndefined MeasureMode = iota
	// MeasureExactly: the leaf will get exactly the size passed in.
	MeasureExactly
	// MeasureAtMost: the leaf may use up to the size passed in.
	MeasureAtMost
)

func (m MeasureMode) String() string {
	switch m {
	case MeasureExactly:
		return "exactly"
	case MeasureAtMost:
		return "at-most"
	default:
		return "undefined"
	}
}

// Size is a width/height pair. NaN marks an unknown axis.
type Size struct {
	Width, Height float64
}

// MeasureFunc returns the content size of a leaf (without padding and border)
// for the given per-axis constraints.
type MeasureFunc func(width float64, widthMode MeasureMode, height float64, heightMode MeasureMode) Size

// Layout is the solved border box of a node, relative to its parent's border box.
type Layout struct {
	X, Y, Width, Height float64
}

// Node is one element of the solver tree.
type Node struct {
	style    Style
	measure  MeasureFunc
	parent   *Node
	children []*Node

	layout Layout

	// resolved by the parent before each layout call
	dir         Direction
	margin      box
	marginAuto  [4]bool
	padding     box
	border      box
	parentInner Size

	cache []cacheEntry
}

// NewNode returns a container node.
func NewNode(style Style) *Node {
	return &Node{style: style}
}

// NewLeaf returns a leaf whose content size comes from measure.
func NewLeaf(style Style, measure MeasureFunc) *Node {
	return &Node{style: style, measure: measure}
}

// Style returns the node's style.
func (n *Node) Style() Style { return n.style }

// SetStyle replaces the node's style.
func (n *Node) SetStyle(s Style) { n.style = s }

// Parent returns the owning node, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the children in order. The slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// AddChild appends child to n.
func (n *Node) AddChild(child *Node) error {
	if child == nil {
		return errors.New("flex: nil child")
	}
	if n.measure != nil {
		return ErrLeafChild
	}
	for p := n; p != nil; p = p.parent {
		if p == child {
			return ErrCycle
		}
	}
	if child.parent != nil {
		return ErrHasParent
	}
	child.parent = n
	n.children = append(n.children, child)
	return nil
}

// Layout returns the geometry from the last Compute.
func (n *Node) Layout() Layout { return n.layout }

// box is a resolved physical edge set.
type box struct {
	Left, Right, Top, Bottom float64
}

func (b box) horizontal() float64 { return b.Left + b.Right }
func (b box) vertical() float64   { return b.Top + b.Bottom }

func (b box) add(o box) box {
	return box{b.Left + o.Left, b.Right + o.Right, b.Top + o.Top, b.Bottom + o.Bottom}
}

const (
	edgeLeft = iota
	edgeRight
	edgeTop
	edgeBottom
)

// resolveEdges maps logical edges onto physical ones. Auto and undefined
// values resolve to zero; autos are reported separately.
func resolveEdges(e Edges, ref float64, dir Direction) (box, [4]bool) {
	start, end := e.Start, e.End
	if dir == DirectionRTL {
		start, end = end, start
	}
	vals := [4]Value{start, end, e.Top, e.Bottom}
	var out [4]float64
	var autos [4]bool
	for i, v := range vals {
		autos[i] = v.Unit == UnitAuto
		r := v.resolve(ref)
		if math.IsNaN(r) {
			r = 0
		}
		out[i] = r
	}
	return box{out[edgeLeft], out[edgeRight], out[edgeTop], out[edgeBottom]}, autos
}

func nonNegative(b box) box {
	return box{math.Max(b.Left, 0), math.Max(b.Right, 0), math.Max(b.Top, 0), math.Max(b.Bottom, 0)}
}

type cacheEntry struct {
	known, avail, parent Size
	size                 Size
}

func (n *Node) cached(known, avail Size) (Size, bool) {
	for _, e := range n.cache {
		if sameSize(e.known, known) && sameSize(e.avail, avail) && sameSize(e.parent, n.parentInner) {
			return e.size, true
		}
	}
	return Size{}, false
}

const maxCacheEntries = 16

func (n *Node) store(known, avail, size Size) {
	if len(n.cache) >= maxCacheEntries {
		n.cache = n.cache[1:]
	}
	n.cache = append(n.cache, cacheEntry{known: known, avail: avail, parent: n.parentInner, size: size})
}

func (n *Node) reset() {
	n.cache = n.cache[:0]
	n.layout = Layout{}
	for _, c := range n.children {
		c.reset()
	}
}

func sameSize(a, b Size) bool { return sameFloat(a.Width, b.Width) && sameFloat(a.Height, b.Height) }

func sameFloat(a, b float64) bool { return a == b || (math.IsNaN(a) && math.IsNaN(b)) }

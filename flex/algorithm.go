package flex

import "math"

// lineEpsilon absorbs float noise when deciding whether an item still fits a line.
const lineEpsilon = 1e-7

// axis maps main/cross questions onto width/height for one container.
type axis struct {
	row     bool
	reverse bool
}

func (a axis) main(s Size) float64 {
	if a.row {
		return s.Width
	}
	return s.Height
}

func (a axis) cross(s Size) float64 {
	if a.row {
		return s.Height
	}
	return s.Width
}

func (a axis) size(main, cross float64) Size {
	if a.row {
		return Size{main, cross}
	}
	return Size{cross, main}
}

func (a axis) mainSum(b box) float64 {
	if a.row {
		return b.horizontal()
	}
	return b.vertical()
}

func (a axis) crossSum(b box) float64 {
	if a.row {
		return b.vertical()
	}
	return b.horizontal()
}

// mainLead and crossLead return the physical top/left edge on each axis.
func (a axis) mainLead(b box) float64 {
	if a.row {
		return b.Left
	}
	return b.Top
}

func (a axis) crossLead(b box) float64 {
	if a.row {
		return b.Top
	}
	return b.Left
}

// mainEdges returns the flow-relative start and end edge indexes.
func (a axis) mainEdges() (start, end int) {
	switch {
	case a.row && a.reverse:
		return edgeRight, edgeLeft
	case a.row:
		return edgeLeft, edgeRight
	case a.reverse:
		return edgeBottom, edgeTop
	default:
		return edgeTop, edgeBottom
	}
}

func (a axis) crossEdges(wrapReverse bool) (start, end int) {
	switch {
	case a.row && wrapReverse:
		return edgeBottom, edgeTop
	case a.row:
		return edgeTop, edgeBottom
	case wrapReverse:
		return edgeRight, edgeLeft
	default:
		return edgeLeft, edgeRight
	}
}

func (b box) at(edge int) float64 {
	switch edge {
	case edgeLeft:
		return b.Left
	case edgeRight:
		return b.Right
	case edgeTop:
		return b.Top
	default:
		return b.Bottom
	}
}

// item is the per-call working state of one in-flow child.
type item struct {
	node   *Node
	size   Size
	lo, hi Size
	margin box
	auto   [4]bool
	align  Align

	basis     float64
	hypoMain  float64
	main      float64
	hypoCross float64
	cross     float64

	frozen    bool
	violation float64

	mainPos, crossPos float64
}

type flexLine struct {
	items []*item
	cross float64
	pos   float64
}

func (it *item) stretches(ax axis, wrapReverse bool) bool {
	if it.align != AlignStretch || defined(ax.cross(it.size)) {
		return false
	}
	cs, ce := ax.crossEdges(wrapReverse)
	return !it.auto[cs] && !it.auto[ce]
}

func (c *computer) layoutFlex(n *Node, known, avail Size, perform bool) Size {
	st := &n.style
	dirn := st.FlexDirection
	if n.dir == DirectionRTL {
		switch dirn {
		case Row:
			dirn = RowReverse
		case RowReverse:
			dirn = Row
		}
	}
	ax := axis{row: dirn == Row || dirn == RowReverse, reverse: dirn == RowReverse || dirn == ColumnReverse}
	wrapRev := st.FlexWrap == WrapReverse
	singleLine := st.FlexWrap == NoWrap

	pb := n.padding.add(n.border)
	lo, hi := n.bounds()
	innerMin := Size{lo.Width - pb.horizontal(), lo.Height - pb.vertical()}
	innerMax := Size{math.Max(hi.Width-pb.horizontal(), 0), math.Max(hi.Height-pb.vertical(), 0)}

	inner := Size{sub(known.Width, pb.horizontal()), sub(known.Height, pb.vertical())}
	innerAvail := Size{
		minDefined(sub(avail.Width, pb.horizontal()), innerMax.Width),
		minDefined(sub(avail.Height, pb.vertical()), innerMax.Height),
	}

	definiteMain, definiteCross := ax.main(inner), ax.cross(inner)
	availMain, availCross := definiteMain, definiteCross
	if !defined(availMain) {
		availMain = ax.main(innerAvail)
	}
	if !defined(availCross) {
		availCross = ax.cross(innerAvail)
	}

	// 1. flex items and their hypothetical main sizes
	var items []*item
	var absolute []*Node
	for _, ch := range n.children {
		c.prepare(ch, inner, n.dir)
		switch {
		case ch.style.Display == DisplayNone:
			if perform {
				hide(ch)
			}
		case ch.style.PositionType == PositionAbsolute:
			absolute = append(absolute, ch)
		default:
			items = append(items, c.newItem(n, ch, ax, definiteMain, definiteCross, availMain, availCross))
		}
	}

	// 2. lines and the container main size
	lines := collectLines(items, availMain, !singleLine, ax)
	containerMain := definiteMain
	if !defined(containerMain) {
		longest := 0.0
		for _, l := range lines {
			sum := 0.0
			for _, it := range l.items {
				sum += it.hypoMain + ax.mainSum(it.margin)
			}
			longest = math.Max(longest, sum)
		}
		if defined(availMain) && longest > availMain {
			longest = availMain
		}
		containerMain = clamp(longest, ax.main(innerMin), ax.main(innerMax))
	}
	for _, l := range lines {
		resolveFlexible(l, containerMain, ax)
	}

	// 3. hypothetical cross sizes and line cross sizes
	for _, l := range lines {
		for _, it := range l.items {
			cs := ax.cross(it.size)
			if r := it.node.style.AspectRatio; !defined(cs) && defined(r) && r > 0 {
				if ax.row {
					cs = it.main / r
				} else {
					cs = it.main * r
				}
			}
			if !defined(cs) {
				s := c.layoutNode(it.node, ax.size(it.main, nan), ax.size(it.main, sub(availCross, ax.crossSum(it.margin))), false)
				cs = ax.cross(s)
			}
			it.hypoCross = clamp(cs, ax.cross(it.lo), ax.cross(it.hi))
			l.cross = math.Max(l.cross, it.hypoCross+ax.crossSum(it.margin))
		}
	}

	containerCross := definiteCross
	if !defined(containerCross) {
		total := 0.0
		for _, l := range lines {
			total += l.cross
		}
		containerCross = clamp(total, ax.cross(innerMin), ax.cross(innerMax))
	}
	if singleLine {
		lines[0].cross = containerCross
		lines[0].pos = 0
	} else {
		alignLines(lines, containerCross, st.AlignContent)
	}

	// 4. stretch, then main and cross offsets inside each line
	ms, me := ax.mainEdges()
	cs, ce := ax.crossEdges(wrapRev)
	for _, l := range lines {
		used := 0.0
		autos := 0
		for _, it := range l.items {
			if it.stretches(ax, wrapRev) {
				it.cross = clamp(math.Max(l.cross-ax.crossSum(it.margin), 0), ax.cross(it.lo), ax.cross(it.hi))
			} else {
				it.cross = it.hypoCross
			}
			used += it.main + ax.mainSum(it.margin)
			if it.auto[ms] {
				autos++
			}
			if it.auto[me] {
				autos++
			}
		}

		free := containerMain - used
		var start, gap, share float64
		if autos > 0 && free > 0 {
			share = free / float64(autos)
		} else {
			start, gap = justify(st.JustifyContent, free, len(l.items))
		}
		pos := start
		for _, it := range l.items {
			if it.auto[ms] {
				pos += share
			}
			pos += it.margin.at(ms)
			it.mainPos = pos
			pos += it.main + it.margin.at(me) + gap
			if it.auto[me] {
				pos += share
			}

			crossFree := l.cross - it.cross - ax.crossSum(it.margin)
			var off float64
			switch {
			case it.auto[cs] && it.auto[ce]:
				off = math.Max(crossFree, 0) / 2
			case it.auto[cs]:
				off = math.Max(crossFree, 0)
			case it.auto[ce]:
			case it.align == AlignFlexEnd:
				off = crossFree
			case it.align == AlignCenter:
				off = crossFree / 2
			}
			it.crossPos = l.pos + it.margin.at(cs) + off
		}
	}

	size := ax.size(containerMain+ax.mainSum(pb), containerCross+ax.crossSum(pb))
	if defined(known.Width) {
		size.Width = known.Width
	}
	if defined(known.Height) {
		size.Height = known.Height
	}
	if !perform {
		return size
	}

	// 5. final geometry
	for _, l := range lines {
		for _, it := range l.items {
			mainPos := it.mainPos
			if ax.reverse {
				mainPos = containerMain - it.mainPos - it.main
			}
			crossPos := it.crossPos
			if wrapRev {
				crossPos = containerCross - it.crossPos - it.cross
			}
			childSize := ax.size(it.main, it.cross)
			c.layoutNode(it.node, childSize, childSize, true)

			at := ax.size(ax.mainLead(pb)+mainPos, ax.crossLead(pb)+crossPos)
			dx, dy := relativeOffset(it.node)
			it.node.layout = Layout{X: at.Width + dx, Y: at.Height + dy, Width: childSize.Width, Height: childSize.Height}
		}
	}
	c.layoutAbsolute(n, absolute, size, ax, wrapRev)
	return size
}

func (c *computer) newItem(n, ch *Node, ax axis, definiteMain, definiteCross, availMain, availCross float64) *item {
	it := &item{node: ch, size: ch.styleSize(), margin: ch.margin, auto: ch.marginAuto}
	it.lo, it.hi = ch.bounds()
	it.align = ch.style.AlignSelf
	if it.align == AlignAuto {
		it.align = n.style.AlignItems
	}
	if it.align == AlignAuto {
		it.align = AlignStretch
	}

	mainMargin, crossMargin := ax.mainSum(it.margin), ax.crossSum(it.margin)
	basis := ch.style.FlexBasis.resolve(definiteMain)
	if !defined(basis) {
		basis = ax.main(it.size)
	}
	if !defined(basis) {
		crossKnown := ax.cross(it.size)
		if !defined(crossKnown) && n.style.FlexWrap == NoWrap && defined(definiteCross) && it.stretches(ax, false) {
			crossKnown = clamp(math.Max(definiteCross-crossMargin, 0), ax.cross(it.lo), ax.cross(it.hi))
		}
		if r := ch.style.AspectRatio; defined(crossKnown) && defined(r) && r > 0 {
			if ax.row {
				basis = crossKnown * r
			} else {
				basis = crossKnown / r
			}
		} else {
			s := c.layoutNode(ch, ax.size(nan, crossKnown), ax.size(sub(availMain, mainMargin), sub(availCross, crossMargin)), false)
			basis = ax.main(s)
		}
	}
	it.basis = math.Max(basis, ax.mainSum(ch.padding.add(ch.border)))
	it.hypoMain = clamp(it.basis, ax.main(it.lo), ax.main(it.hi))
	return it
}

func collectLines(items []*item, availMain float64, wrap bool, ax axis) []*flexLine {
	if !wrap || !defined(availMain) || len(items) == 0 {
		return []*flexLine{{items: items}}
	}
	var lines []*flexLine
	cur := &flexLine{}
	used := 0.0
	for _, it := range items {
		outer := it.hypoMain + ax.mainSum(it.margin)
		if len(cur.items) > 0 && used+outer > availMain+lineEpsilon {
			lines = append(lines, cur)
			cur = &flexLine{}
			used = 0
		}
		cur.items = append(cur.items, it)
		used += outer
	}
	return append(lines, cur)
}

// resolveFlexible distributes the free space of a line by flex-grow or
// flex-shrink, freezing items that hit their min or max size.
func resolveFlexible(l *flexLine, mainSize float64, ax axis) {
	used := 0.0
	for _, it := range l.items {
		used += it.hypoMain + ax.mainSum(it.margin)
	}
	growing := used < mainSize
	for _, it := range l.items {
		it.main = it.hypoMain
		factor := it.node.style.FlexShrink
		if growing {
			factor = it.node.style.FlexGrow
		}
		it.frozen = factor <= 0 ||
			(growing && it.basis > it.hypoMain) ||
			(!growing && it.basis < it.hypoMain)
	}
	initialFree := freeSpace(l, mainSize, ax)

	for range len(l.items) + 1 {
		active := false
		var sumGrow, sumShrink float64
		for _, it := range l.items {
			if it.frozen {
				continue
			}
			active = true
			sumGrow += it.node.style.FlexGrow
			sumShrink += it.node.style.FlexShrink * it.basis
		}
		if !active {
			return
		}

		free := freeSpace(l, mainSize, ax)
		if growing && sumGrow < 1 {
			if scaled := initialFree * sumGrow; math.Abs(scaled) < math.Abs(free) {
				free = scaled
			}
		}

		total := 0.0
		for _, it := range l.items {
			if it.frozen {
				continue
			}
			target := it.basis
			switch {
			case growing && sumGrow > 0:
				target += free * it.node.style.FlexGrow / sumGrow
			case !growing && sumShrink > 0:
				target += free * it.node.style.FlexShrink * it.basis / sumShrink
			}
			clamped := clamp(math.Max(target, 0), ax.main(it.lo), ax.main(it.hi))
			it.violation = clamped - target
			it.main = clamped
			total += it.violation
		}
		for _, it := range l.items {
			if it.frozen {
				continue
			}
			switch {
			case math.Abs(total) < lineEpsilon:
				it.frozen = true
			case total > 0 && it.violation > 0:
				it.frozen = true
			case total < 0 && it.violation < 0:
				it.frozen = true
			}
		}
	}
}

func freeSpace(l *flexLine, mainSize float64, ax axis) float64 {
	used := 0.0
	for _, it := range l.items {
		if it.frozen {
			used += it.main
		} else {
			used += it.basis
		}
		used += ax.mainSum(it.margin)
	}
	return mainSize - used
}

// justify returns the leading offset and the gap between items.
func justify(j Justify, free float64, count int) (start, gap float64) {
	switch j {
	case JustifyFlexEnd:
		return free, 0
	case JustifyCenter:
		return free / 2, 0
	}
	if free <= 0 || count == 0 {
		return 0, 0
	}
	switch j {
	case JustifySpaceBetween:
		if count > 1 {
			return 0, free / float64(count-1)
		}
	case JustifySpaceAround:
		g := free / float64(count)
		return g / 2, g
	case JustifySpaceEvenly:
		g := free / float64(count+1)
		return g, g
	}
	return 0, 0
}

func alignLines(lines []*flexLine, crossSize float64, align Align) {
	total := 0.0
	for _, l := range lines {
		total += l.cross
	}
	free := crossSize - total
	count := float64(len(lines))
	var start, gap float64
	switch align {
	case AlignStretch:
		if free > 0 {
			for _, l := range lines {
				l.cross += free / count
			}
		}
	case AlignFlexEnd:
		start = free
	case AlignCenter:
		start = free / 2
	case AlignSpaceBetween:
		if free > 0 && len(lines) > 1 {
			gap = free / (count - 1)
		}
	case AlignSpaceAround:
		if free > 0 {
			gap = free / count
			start = gap / 2
		}
	}
	pos := start
	for _, l := range lines {
		l.pos = pos
		pos += l.cross + gap
	}
}

// insets resolves the position edges; NaN marks an unset edge.
func insets(n *Node, ref Size) (left, right, top, bottom float64) {
	start, end := n.style.Position.Start, n.style.Position.End
	if n.dir == DirectionRTL {
		start, end = end, start
	}
	return start.resolve(ref.Width), end.resolve(ref.Width),
		n.style.Position.Top.resolve(ref.Height), n.style.Position.Bottom.resolve(ref.Height)
}

func relativeOffset(n *Node) (dx, dy float64) {
	left, right, top, bottom := insets(n, n.parentInner)
	switch {
	case defined(left):
		dx = left
	case defined(right):
		dx = -right
	}
	switch {
	case defined(top):
		dy = top
	case defined(bottom):
		dy = -bottom
	}
	return dx, dy
}

// layoutAbsolute places out-of-flow children against the padding box of n.
func (c *computer) layoutAbsolute(n *Node, children []*Node, size Size, ax axis, wrapRev bool) {
	if len(children) == 0 {
		return
	}
	pb := n.padding.add(n.border)
	cb := Size{math.Max(size.Width-n.border.horizontal(), 0), math.Max(size.Height-n.border.vertical(), 0)}
	content := Size{math.Max(size.Width-pb.horizontal(), 0), math.Max(size.Height-pb.vertical(), 0)}

	for _, ch := range children {
		c.prepare(ch, cb, n.dir)
		s := ch.styleSize()
		lo, hi := ch.bounds()
		m := ch.margin
		left, right, top, bottom := insets(ch, cb)

		w, h := s.Width, s.Height
		if !defined(w) && defined(left) && defined(right) {
			w = math.Max(cb.Width-left-right-m.horizontal(), 0)
		}
		if !defined(h) && defined(top) && defined(bottom) {
			h = math.Max(cb.Height-top-bottom-m.vertical(), 0)
		}
		if r := ch.style.AspectRatio; defined(r) && r > 0 {
			switch {
			case defined(w) && !defined(h):
				h = w / r
			case defined(h) && !defined(w):
				w = h * r
			}
		}
		w, h = clamp(w, lo.Width, hi.Width), clamp(h, lo.Height, hi.Height)
		if !defined(w) || !defined(h) {
			measured := c.layoutNode(ch, Size{w, h}, Size{sub(cb.Width, m.horizontal()), sub(cb.Height, m.vertical())}, false)
			w, h = clamp(measured.Width, lo.Width, hi.Width), clamp(measured.Height, lo.Height, hi.Height)
		}
		final := Size{w, h}
		c.layoutNode(ch, final, final, true)

		static := staticPosition(n, ch, final, content, ax, wrapRev)
		x, y := static.Width, static.Height
		switch {
		case defined(left):
			x = n.border.Left + left + m.Left
		case defined(right):
			x = size.Width - n.border.Right - right - m.Right - w
		}
		switch {
		case defined(top):
			y = n.border.Top + top + m.Top
		case defined(bottom):
			y = size.Height - n.border.Bottom - bottom - m.Bottom - h
		}
		ch.layout = Layout{X: x, Y: y, Width: w, Height: h}
	}
}

// staticPosition places an absolute child as if it were the only flex item.
func staticPosition(n, ch *Node, final, content Size, ax axis, wrapRev bool) Size {
	pb := n.padding.add(n.border)
	m := ch.margin

	mainFree := ax.main(content) - ax.main(final) - ax.mainSum(m)
	var mainOff float64
	switch n.style.JustifyContent {
	case JustifyFlexEnd:
		mainOff = mainFree
	case JustifyCenter:
		mainOff = mainFree / 2
	}
	if ax.reverse {
		mainOff = mainFree - mainOff
	}

	align := ch.style.AlignSelf
	if align == AlignAuto {
		align = n.style.AlignItems
	}
	crossFree := ax.cross(content) - ax.cross(final) - ax.crossSum(m)
	var crossOff float64
	switch align {
	case AlignFlexEnd:
		crossOff = crossFree
	case AlignCenter:
		crossOff = crossFree / 2
	}
	if wrapRev {
		crossOff = crossFree - crossOff
	}
	return ax.size(ax.mainLead(pb)+ax.mainLead(m)+mainOff, ax.crossLead(pb)+ax.crossLead(m)+crossOff)
}

// Package flexbox is a deterministic flexbox constraint solver over a tree
// of nodes. Given per-node property sets and a root size and direction, it
// computes per-node (left, top, width, height) in solver units, with offsets
// relative to each node's parent.
// Reference: https://drafts.csswg.org/css-flexbox-1/
package flexbox

import "sort"

// CalculateLayout solves the whole tree rooted at root. The root's width and
// height are taken verbatim from the available size unless the root style
// sets explicit dimensions; zero or negative sizes pass through unclamped.
func CalculateLayout(root *Node, availableWidth, availableHeight float64, dir Direction) {
	if root == nil {
		return
	}
	w := availableWidth
	if v, ok := root.Style.Width.Resolve(availableWidth); ok {
		w = v
	}
	h := availableHeight
	if v, ok := root.Style.Height.Resolve(availableHeight); ok {
		h = v
	}
	root.layout = Rect{Left: 0, Top: 0, Width: w, Height: h}
	layoutChildren(root, dir)
}

// flexItem holds per-item state during one container's layout pass.
type flexItem struct {
	node      *Node
	order     int
	grow      float64
	shrink    float64
	alignSelf AlignSelf

	marginMainStart  float64
	marginMainEnd    float64
	marginCrossStart float64
	marginCrossEnd   float64

	hypoMain  float64
	mainSize  float64
	crossSize float64
}

// flexLine groups the items laid out along one run of the main axis.
type flexLine struct {
	items     []*flexItem
	crossSize float64
}

// justifyInfo holds justify-content spacing for one line.
type justifyInfo struct {
	startOffset  float64
	betweenSpace float64
}

// layoutChildren lays out n's children inside n's content box, then recurses
// into each child. n's own layout rect must already be set.
func layoutChildren(n *Node, dir Direction) {
	if len(n.children) == 0 {
		return
	}

	style := n.Style
	padTop := resolveEdge(style.Padding, EdgeTop, n.layout.Width)
	padRight := resolveEdge(style.Padding, EdgeRight, n.layout.Width)
	padBottom := resolveEdge(style.Padding, EdgeBottom, n.layout.Width)
	padLeft := resolveEdge(style.Padding, EdgeLeft, n.layout.Width)

	innerW := n.layout.Width - padLeft - padRight
	innerH := n.layout.Height - padTop - padBottom

	isRow := style.FlexDirection.IsRow()
	availableMain, availableCross := innerW, innerH
	if !isRow {
		availableMain, availableCross = innerH, innerW
	}

	items := collectItems(n, isRow, innerW, availableMain)
	if len(items) == 0 {
		return
	}

	lines := collectLines(items, style.Wrap, availableMain)
	singleLine := style.Wrap == FlexWrapNowrap
	for _, line := range lines {
		resolveFlexibleLengths(line, isRow, availableMain)
		determineLineCrossSize(line, style.AlignItems, isRow, availableCross, singleLine)
	}

	infos := make([]*justifyInfo, len(lines))
	for i, line := range lines {
		infos[i] = justifyMainAxis(line, style.JustifyContent, availableMain)
	}

	positionItems(lines, infos, style, dir, isRow,
		padLeft, padTop, innerW, availableMain)

	for _, item := range items {
		layoutChildren(item.node, dir)
	}
}

// collectItems gathers the container's children as flex items, resolves
// their margins and flex factors, computes hypothetical main sizes, and
// sorts by the order property (stable, so registration order breaks ties).
func collectItems(n *Node, isRow bool, innerW, availableMain float64) []*flexItem {
	items := make([]*flexItem, 0, len(n.children))

	for _, child := range n.children {
		cs := child.Style
		item := &flexItem{
			node:      child,
			order:     cs.Order,
			grow:      cs.FlexGrow,
			shrink:    cs.FlexShrink,
			alignSelf: cs.AlignSelf,
		}

		// Percent margins resolve against the container's inline size.
		mTop := resolveEdge(cs.Margin, EdgeTop, innerW)
		mRight := resolveEdge(cs.Margin, EdgeRight, innerW)
		mBottom := resolveEdge(cs.Margin, EdgeBottom, innerW)
		mLeft := resolveEdge(cs.Margin, EdgeLeft, innerW)
		if isRow {
			item.marginMainStart, item.marginMainEnd = mLeft, mRight
			item.marginCrossStart, item.marginCrossEnd = mTop, mBottom
		} else {
			item.marginMainStart, item.marginMainEnd = mTop, mBottom
			item.marginCrossStart, item.marginCrossEnd = mLeft, mRight
		}

		item.hypoMain = hypotheticalMainSize(child, isRow, availableMain)
		item.mainSize = item.hypoMain
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].order < items[j].order
	})

	return items
}

// hypotheticalMainSize determines an item's base main size: flex-basis,
// else the explicit main dimension, else the content-derived size; then
// clamps by the item's min/max main constraints.
func hypotheticalMainSize(child *Node, isRow bool, availableMain float64) float64 {
	cs := child.Style

	base, ok := cs.FlexBasis.Resolve(availableMain)
	if !ok {
		dim := cs.Height
		if isRow {
			dim = cs.Width
		}
		if v, defined := dim.Resolve(availableMain); defined {
			base = v
		} else {
			w, h := intrinsicSize(child)
			if isRow {
				base = w
			} else {
				base = h
			}
		}
	}

	return clampMain(cs, isRow, base, availableMain)
}

// intrinsicSize returns a node's content-derived width and height. Explicit
// point dimensions win; otherwise a node with children sums child sizes
// along its own main axis and takes the maximum along its cross axis, the
// solver's bottom-up sizing. Leaves without explicit sizes measure zero
// here; callers that can measure rendered content write explicit sizes
// before solving.
func intrinsicSize(n *Node) (w, h float64) {
	explicitW := n.Style.Width.Unit == UnitPoint
	explicitH := n.Style.Height.Unit == UnitPoint
	if explicitW {
		w = n.Style.Width.Amount
	}
	if explicitH {
		h = n.Style.Height.Amount
	}
	if explicitW && explicitH {
		return w, h
	}

	if len(n.children) > 0 {
		isRow := n.Style.FlexDirection.IsRow()
		var contentW, contentH float64
		for _, child := range n.children {
			cw, ch := intrinsicSize(child)
			// Only point margins participate in intrinsic sizing; there is
			// no reference size to resolve percentages against yet.
			mh := pointEdge(child.Style.Margin, EdgeLeft) + pointEdge(child.Style.Margin, EdgeRight)
			mv := pointEdge(child.Style.Margin, EdgeTop) + pointEdge(child.Style.Margin, EdgeBottom)
			if isRow {
				contentW += cw + mh
				if ch+mv > contentH {
					contentH = ch + mv
				}
			} else {
				contentH += ch + mv
				if cw+mh > contentW {
					contentW = cw + mh
				}
			}
		}
		contentW += pointEdge(n.Style.Padding, EdgeLeft) + pointEdge(n.Style.Padding, EdgeRight)
		contentH += pointEdge(n.Style.Padding, EdgeTop) + pointEdge(n.Style.Padding, EdgeBottom)
		if !explicitW {
			w = contentW
		}
		if !explicitH {
			h = contentH
		}
	}

	return w, h
}

// collectLines groups items into flex lines. Without wrapping all items
// share one line; wrap-reverse flips the line order.
func collectLines(items []*flexItem, wrap FlexWrap, availableMain float64) []*flexLine {
	if wrap == FlexWrapNowrap {
		return []*flexLine{{items: items}}
	}

	var lines []*flexLine
	var current *flexLine
	var currentMain float64

	for _, item := range items {
		outer := item.hypoMain + item.marginMainStart + item.marginMainEnd
		if current == nil {
			current = &flexLine{items: []*flexItem{item}}
			currentMain = outer
		} else if currentMain+outer > availableMain {
			lines = append(lines, current)
			current = &flexLine{items: []*flexItem{item}}
			currentMain = outer
		} else {
			current.items = append(current.items, item)
			currentMain += outer
		}
	}
	if current != nil {
		lines = append(lines, current)
	}

	if wrap == FlexWrapWrapReverse {
		for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
			lines[i], lines[j] = lines[j], lines[i]
		}
	}

	return lines
}

// resolveFlexibleLengths distributes free main-axis space by flex-grow, or
// deficit by flex-shrink weighted by base size, clamping each result to the
// item's min/max main constraints.
func resolveFlexibleLengths(line *flexLine, isRow bool, availableMain float64) {
	items := line.items
	if len(items) == 0 {
		return
	}

	usedMain := 0.0
	for _, item := range items {
		usedMain += item.hypoMain + item.marginMainStart + item.marginMainEnd
	}
	freeSpace := availableMain - usedMain
	growing := freeSpace > 0

	totalFlex := 0.0
	for _, item := range items {
		if growing {
			totalFlex += item.grow
		} else {
			totalFlex += item.shrink * item.hypoMain
		}
	}

	if totalFlex == 0 {
		for _, item := range items {
			item.mainSize = item.hypoMain
		}
		return
	}

	for _, item := range items {
		target := item.hypoMain
		if growing {
			if item.grow > 0 {
				target += freeSpace * item.grow / totalFlex
			}
		} else if item.shrink > 0 {
			target += freeSpace * item.shrink * item.hypoMain / totalFlex
		}

		target = clampMain(item.node.Style, isRow, target, availableMain)
		if target < 0 {
			target = 0
		}
		item.mainSize = target
	}
}

// determineLineCrossSize computes each item's cross size, the line's cross
// size, and applies stretch to items with an auto cross dimension. A
// single-line container's one line spans the whole inner cross size.
func determineLineCrossSize(line *flexLine, alignItems AlignItems, isRow bool, availableCross float64, singleLine bool) {
	maxCross := 0.0

	for _, item := range line.items {
		cs := item.node.Style
		dim := cs.Width
		if isRow {
			dim = cs.Height
		}
		cross, defined := dim.Resolve(availableCross)
		if !defined {
			w, h := intrinsicSize(item.node)
			if isRow {
				cross = h
			} else {
				cross = w
			}
		}
		cross = clampCross(cs, isRow, cross, availableCross)
		item.crossSize = cross

		outer := cross + item.marginCrossStart + item.marginCrossEnd
		if outer > maxCross {
			maxCross = outer
		}
	}

	line.crossSize = maxCross
	if singleLine && availableCross > 0 {
		line.crossSize = availableCross
	}

	for _, item := range line.items {
		cs := item.node.Style
		dim := cs.Width
		if isRow {
			dim = cs.Height
		}
		if dim.IsDefined() {
			continue
		}
		if resolveAlignSelf(item.alignSelf, alignItems) == AlignSelfStretch {
			stretched := line.crossSize - item.marginCrossStart - item.marginCrossEnd
			item.crossSize = clampCross(cs, isRow, stretched, availableCross)
		}
	}
}

// justifyMainAxis computes the leading offset and between-item spacing for
// one line according to justify-content.
func justifyMainAxis(line *flexLine, justify JustifyContent, availableMain float64) *justifyInfo {
	info := &justifyInfo{}
	if len(line.items) == 0 {
		return info
	}

	usedMain := 0.0
	for _, item := range line.items {
		usedMain += item.mainSize + item.marginMainStart + item.marginMainEnd
	}
	freeSpace := availableMain - usedMain
	if freeSpace < 0 {
		freeSpace = 0
	}

	numItems := len(line.items)
	switch justify {
	case JustifyFlexEnd:
		info.startOffset = freeSpace
	case JustifyCenter:
		info.startOffset = freeSpace / 2
	case JustifySpaceBetween:
		if numItems > 1 {
			info.betweenSpace = freeSpace / float64(numItems-1)
		}
	case JustifySpaceAround:
		info.betweenSpace = freeSpace / float64(numItems)
		info.startOffset = info.betweenSpace / 2
	case JustifySpaceEvenly:
		info.betweenSpace = freeSpace / float64(numItems+1)
		info.startOffset = info.betweenSpace
	}

	return info
}

// positionItems writes each item's final layout rect, relative to the
// parent node's origin. Reverse directions flow from the main-axis end, and
// RTL mirrors the main axis of row containers.
func positionItems(lines []*flexLine, infos []*justifyInfo, style Style, dir Direction, isRow bool,
	padLeft, padTop, innerW, availableMain float64) {

	isReverse := style.FlexDirection.IsReverse()
	padMainStart, padCrossStart := padLeft, padTop
	if !isRow {
		padMainStart, padCrossStart = padTop, padLeft
	}

	crossPos := 0.0
	for lineIdx, line := range lines {
		info := infos[lineIdx]

		var lineMainPos float64
		if isReverse {
			// Reverse flows from the main-axis end; the justify offset
			// pulls the whole line back toward the start.
			lineMainPos = availableMain - info.startOffset
		} else {
			lineMainPos = info.startOffset
		}

		for i, item := range line.items {
			var itemMainPos float64
			if isReverse {
				lineMainPos -= item.mainSize + item.marginMainEnd
				itemMainPos = lineMainPos
				lineMainPos -= item.marginMainStart
				if i < len(line.items)-1 {
					lineMainPos -= info.betweenSpace
				}
			} else {
				itemMainPos = lineMainPos + item.marginMainStart
				lineMainPos = itemMainPos + item.mainSize + item.marginMainEnd
				if i < len(line.items)-1 {
					lineMainPos += info.betweenSpace
				}
			}

			var itemCrossPos float64
			switch resolveAlignSelf(item.alignSelf, style.AlignItems) {
			case AlignSelfFlexEnd:
				itemCrossPos = crossPos + line.crossSize - item.crossSize - item.marginCrossEnd
			case AlignSelfCenter:
				itemCrossPos = crossPos + (line.crossSize-item.crossSize)/2
			default: // flex-start and stretch
				itemCrossPos = crossPos + item.marginCrossStart
			}

			if isRow && dir == DirectionRTL {
				itemMainPos = availableMain - itemMainPos - item.mainSize
			}

			mainSize, crossSize := item.mainSize, item.crossSize
			if mainSize < 0 {
				mainSize = 0
			}
			if crossSize < 0 {
				crossSize = 0
			}

			if isRow {
				item.node.layout = Rect{
					Left:   padMainStart + itemMainPos,
					Top:    padCrossStart + itemCrossPos,
					Width:  mainSize,
					Height: crossSize,
				}
			} else {
				item.node.layout = Rect{
					Left:   padCrossStart + itemCrossPos,
					Top:    padMainStart + itemMainPos,
					Width:  crossSize,
					Height: mainSize,
				}
			}
		}

		crossPos += line.crossSize
	}
}

// resolveAlignSelf collapses auto to the container's align-items value.
func resolveAlignSelf(self AlignSelf, alignItems AlignItems) AlignSelf {
	if self != AlignSelfAuto {
		return self
	}
	switch alignItems {
	case AlignItemsFlexStart:
		return AlignSelfFlexStart
	case AlignItemsFlexEnd:
		return AlignSelfFlexEnd
	case AlignItemsCenter:
		return AlignSelfCenter
	default:
		return AlignSelfStretch
	}
}

// clampMain applies the min/max constraints of the main axis.
func clampMain(cs Style, isRow bool, size, reference float64) float64 {
	minV, maxV := cs.MinHeight, cs.MaxHeight
	if isRow {
		minV, maxV = cs.MinWidth, cs.MaxWidth
	}
	return clamp(size, minV, maxV, reference)
}

// clampCross applies the min/max constraints of the cross axis.
func clampCross(cs Style, isRow bool, size, reference float64) float64 {
	minV, maxV := cs.MinWidth, cs.MaxWidth
	if isRow {
		minV, maxV = cs.MinHeight, cs.MaxHeight
	}
	return clamp(size, minV, maxV, reference)
}

func clamp(size float64, minV, maxV Value, reference float64) float64 {
	if v, ok := maxV.Resolve(reference); ok && size > v {
		size = v
	}
	if v, ok := minV.Resolve(reference); ok && size < v {
		size = v
	}
	return size
}

func resolveEdge(edges EdgeValues, edge Edge, reference float64) float64 {
	v, _ := edges[edge].Resolve(reference)
	return v
}

func pointEdge(edges EdgeValues, edge Edge) float64 {
	if edges[edge].Unit == UnitPoint {
		return edges[edge].Amount
	}
	return 0
}

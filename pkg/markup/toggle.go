package markup

const (
	markStart = 1
	markEnd   = 2
)

// Toggle adds style to, or removes it from, exactly the characters in
// [start, end). The style is removed when every selected character already
// carries it; otherwise it is applied to the characters that lack it. The
// flattened text never changes. Toggle returns the new tree and the restored
// selection. A collapsed or invalid selection returns a normalized copy.
//
// A Link style with an empty Href removes whatever links cover the selection.
func Toggle(t Tree, start, end int, style Style) (Tree, int, int) {
	start, end = clampRange(t, start, end)
	if start == end || !style.Kind.Valid() {
		return Normalize(t), start, end
	}

	work := t.Clone()
	work = splitLeavesAt(work, start)
	work = splitLeavesAt(work, end)
	work = insertMarkers(work, start, end)

	match := style.Same
	if style.Kind == Link && style.Href == "" {
		match = func(s Style) bool { return s.Kind == Link }
	}

	switch {
	case fullyCovered(work, start, end, match):
		work = unwrapRange(work, start, end, match)
	case style.Kind == Link && style.Href == "":
	default:
		if style.Kind == Link {
			work = unwrapRange(work, start, end, func(s Style) bool {
				return s.Kind == Link && s.Href != style.Href
			})
		}
		work = wrapRange(work, start, end, style)
	}

	work = Normalize(work)
	newStart, newEnd := restoreMarkers(work, start, end)
	return Normalize(stripMarkers(work)), newStart, newEnd
}

func splitLeavesAt(t Tree, at int) Tree {
	pos := 0
	return Tree(splitNodes(t, at, &pos))
}

func splitNodes(nodes []*Node, at int, pos *int) []*Node {
	out := make([]*Node, 0, len(nodes)+1)
	for _, n := range nodes {
		switch n.Kind {
		case TextNode:
			l := n.runeLen()
			if *pos < at && at < *pos+l {
				k := at - *pos
				out = append(out, NewText(sliceRunes(n.Text, 0, k)), NewText(sliceRunes(n.Text, k, l)))
			} else {
				out = append(out, n)
			}
			*pos += l
		case SpanNode:
			n.Children = splitNodes(n.Children, at, pos)
			out = append(out, n)
		default:
			out = append(out, n)
		}
	}
	return out
}

func insideLeaves(t Tree, start, end int) []leafRef {
	var out []leafRef
	for _, l := range collectLeaves(t) {
		if l.node.Kind != TextNode || l.node.runeLen() == 0 {
			continue
		}
		if l.start >= start && l.end() <= end {
			out = append(out, l)
		}
	}
	return out
}

func fullyCovered(t Tree, start, end int, match func(Style) bool) bool {
	inside := insideLeaves(t, start, end)
	if len(inside) == 0 {
		return false
	}
	for _, l := range inside {
		if !l.hasAncestor(match) {
			return false
		}
	}
	return true
}

// insertMarkers places zero-width markers right before the first selected
// leaf and right after the last one, inside their containers.
func insertMarkers(t Tree, start, end int) Tree {
	inside := insideLeaves(t, start, end)
	if len(inside) == 0 {
		return append(t, &Node{Kind: markerNode, mark: markStart}, &Node{Kind: markerNode, mark: markEnd})
	}
	first, lastLeaf := inside[0], inside[len(inside)-1]
	t = insertBeside(t, lastLeaf.path, 1, &Node{Kind: markerNode, mark: markEnd})
	t = insertBeside(t, first.path, 0, &Node{Kind: markerNode, mark: markStart})
	return t
}

func insertBeside(t Tree, path []int, after int, n *Node) Tree {
	parent := path[:len(path)-1]
	idx := path[len(path)-1] + after
	siblings, ok := t.container(parent)
	if !ok {
		return t
	}
	next := make([]*Node, 0, len(siblings)+1)
	next = append(next, siblings[:idx]...)
	next = append(next, n)
	next = append(next, siblings[idx:]...)
	return t.setContainer(parent, next)
}

func restoreMarkers(t Tree, start, end int) (int, int) {
	for _, l := range collectLeaves(t) {
		if l.node.Kind != markerNode {
			continue
		}
		switch l.node.mark {
		case markStart:
			start = l.start
		case markEnd:
			end = l.start
		}
	}
	return start, end
}

func stripMarkers(nodes []*Node) Tree {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		switch n.Kind {
		case markerNode:
			continue
		case SpanNode:
			n.Children = stripMarkers(n.Children)
		}
		out = append(out, n)
	}
	return Tree(out)
}

// unwrapRange lifts the characters in [start, end) out of every span whose
// style satisfies match. A span reaching outside the range is split so the
// outside parts keep the style.
func unwrapRange(t Tree, start, end int, match func(Style) bool) Tree {
	limit := countNodes(t) + 1
	for i := 0; i < limit; i++ {
		var target []int
		for _, l := range insideLeaves(t, start, end) {
			if depth := l.closestAncestor(match); depth >= 0 {
				target = l.path[:depth+1]
				break
			}
		}
		if target == nil {
			break
		}
		t = liftSpan(t, target, start, end)
	}
	return t
}

func liftSpan(t Tree, path []int, start, end int) Tree {
	span := t.nodeAt(path)
	spanStart, _ := startOf(t, path)
	spanLen := span.runeLen()
	from := clampInt(start-spanStart, 0, spanLen)
	to := clampInt(end-spanStart, 0, spanLen)

	var parts []*Node
	if from > 0 {
		pos := 0
		if kids := clipNodes(span.Children, 0, from, &pos, false); len(kids) > 0 {
			parts = append(parts, &Node{Kind: SpanNode, Style: span.Style, Children: kids})
		}
	}
	pos := 0
	parts = append(parts, clipNodes(span.Children, from, to, &pos, to == spanLen)...)
	if to < spanLen {
		pos = 0
		if kids := clipNodes(span.Children, to, spanLen, &pos, true); len(kids) > 0 {
			parts = append(parts, &Node{Kind: SpanNode, Style: span.Style, Children: kids})
		}
	}

	parent := path[:len(path)-1]
	idx := path[len(path)-1]
	siblings, ok := t.container(parent)
	if !ok {
		return t
	}
	next := make([]*Node, 0, len(siblings)+len(parts))
	next = append(next, siblings[:idx]...)
	next = append(next, parts...)
	next = append(next, siblings[idx+1:]...)
	return t.setContainer(parent, next)
}

func wrapRange(t Tree, start, end int, style Style) Tree {
	for _, l := range insideLeaves(t, start, end) {
		if l.hasAncestor(style.Same) {
			continue
		}
		parent := l.path[:len(l.path)-1]
		idx := l.path[len(l.path)-1]
		siblings, ok := t.container(parent)
		if !ok {
			continue
		}
		siblings[idx] = NewSpan(style, l.node)
	}
	return t
}

package markup

// ActiveStyles reports the styles in effect over [start, end). For a caret
// (start == end) only the leaf the caret resolves to is consulted; otherwise
// the styles of every leaf the selection touches are combined.
func ActiveStyles(t Tree, start, end int) StyleSet {
	start, end = clampRange(t, start, end)
	var set StyleSet
	if start == end {
		p := PositionAt(t, start)
		for _, a := range ancestorsAt(t, p.Path) {
			set = set.With(a.Style.Kind)
		}
		return set
	}
	for _, l := range collectLeaves(t) {
		if l.node.Kind != TextNode || l.node.runeLen() == 0 {
			continue
		}
		if l.start >= end || l.end() <= start {
			continue
		}
		for _, a := range l.ancestors {
			set = set.With(a.Style.Kind)
		}
	}
	return set
}

// LinkAt returns the target of the innermost link under the caret.
func LinkAt(t Tree, offset int) (string, bool) {
	p := PositionAt(t, offset)
	anc := ancestorsAt(t, p.Path)
	for i := len(anc) - 1; i >= 0; i-- {
		if anc[i].Style.Kind == Link {
			return anc[i].Style.Href, true
		}
	}
	return "", false
}

func ancestorsAt(t Tree, path []int) []*Node {
	var out []*Node
	nodes := []*Node(t)
	for _, idx := range path {
		if idx < 0 || idx >= len(nodes) {
			return out
		}
		n := nodes[idx]
		if n.Kind == SpanNode {
			out = append(out, n)
		}
		nodes = n.Children
	}
	return out
}

// Run is a stretch of text with one set of styles, in document order.
type Run struct {
	Text   string
	Start  int
	Styles StyleSet
	Href   string
}

func (r Run) End() int {
	return r.Start + len([]rune(r.Text))
}

// Runs flattens t into styled text runs. Adjacent leaves with equal styling
// are joined.
func Runs(t Tree) []Run {
	var out []Run
	for _, l := range collectLeaves(t) {
		if l.node.Kind != TextNode || l.node.Text == "" {
			continue
		}
		r := Run{Text: l.node.Text, Start: l.start}
		for _, a := range l.ancestors {
			r.Styles = r.Styles.With(a.Style.Kind)
			if a.Style.Kind == Link {
				r.Href = a.Style.Href
			}
		}
		if n := len(out); n > 0 && out[n-1].Styles == r.Styles && out[n-1].Href == r.Href && out[n-1].End() == r.Start {
			out[n-1].Text += r.Text
			continue
		}
		out = append(out, r)
	}
	return out
}

// Covered reports whether every character in [start, end) sits inside a span
// of kind. An empty range is never covered.
func Covered(t Tree, start, end int, kind StyleKind) bool {
	start, end = clampRange(t, start, end)
	if start == end {
		return false
	}
	work := splitLeavesAt(splitLeavesAt(t.Clone(), start), end)
	return fullyCovered(work, start, end, func(s Style) bool { return s.Kind == kind })
}

package markup

// Position addresses a point in a tree. Path indexes from the forest down to
// a node. When the node is a text leaf, Offset counts runes into the leaf.
// When the node is a span, or Path is empty (the forest), Offset is a child
// index, the way host selections address element boundaries.
type Position struct {
	Path   []int
	Offset int
}

func (p Position) Equal(o Position) bool {
	if p.Offset != o.Offset || len(p.Path) != len(o.Path) {
		return false
	}
	for i := range p.Path {
		if p.Path[i] != o.Path[i] {
			return false
		}
	}
	return true
}

// OffsetAt converts a tree position into a character offset over the
// flattened text. Positions that do not address the tree yield 0.
func OffsetAt(t Tree, p Position) int {
	var node *Node
	children := []*Node(t)
	if len(p.Path) > 0 {
		node = t.nodeAt(p.Path)
		if node == nil {
			return 0
		}
		children = node.Children
	}
	base, ok := startOf(t, p.Path)
	if !ok {
		return 0
	}
	if node != nil && node.Kind != SpanNode {
		if p.Offset < 0 || p.Offset > node.runeLen() {
			return 0
		}
		return base + p.Offset
	}
	if p.Offset < 0 || p.Offset > len(children) {
		return 0
	}
	return base + textLen(children[:p.Offset])
}

// startOf returns the flattened offset at which the node addressed by path
// begins.
func startOf(t Tree, path []int) (int, bool) {
	pos := 0
	nodes := []*Node(t)
	for _, idx := range path {
		if idx < 0 || idx >= len(nodes) {
			return 0, false
		}
		pos += textLen(nodes[:idx])
		nodes = nodes[idx].Children
	}
	return pos, true
}

// PositionAt resolves a character offset to a position inside a text leaf.
// An offset on the boundary between two leaves resolves to the end of the
// earlier leaf. Offsets past the end clamp to the end of the last leaf.
func PositionAt(t Tree, offset int) Position {
	if offset < 0 {
		offset = 0
	}
	var lastLeaf *leafRef
	for _, l := range collectLeaves(t) {
		if l.node.Kind != TextNode {
			continue
		}
		l := l
		if l.end() >= offset {
			return Position{Path: l.path, Offset: offset - l.start}
		}
		lastLeaf = &l
	}
	if lastLeaf == nil {
		return Position{Offset: len(t)}
	}
	return Position{Path: lastLeaf.path, Offset: lastLeaf.node.runeLen()}
}

func PlaceCaretAtStart(t Tree) Position {
	return PositionAt(t, 0)
}

func PlaceCaretAtEnd(t Tree) Position {
	return PositionAt(t, t.Len())
}

func PlaceCaretAtOffset(t Tree, offset int) Position {
	return PositionAt(t, offset)
}

package markup

import "unicode/utf8"

// clipNodes copies the part of nodes that covers characters [from, to).
// pos carries the running offset across calls. Markers sitting at an offset
// inside the range are kept; keepEnd also keeps markers at exactly to.
func clipNodes(nodes []*Node, from, to int, pos *int, keepEnd bool) []*Node {
	var out []*Node
	for _, n := range nodes {
		switch n.Kind {
		case TextNode:
			l := n.runeLen()
			s := *pos
			lo, hi := max(s, from), min(s+l, to)
			if lo < hi {
				out = append(out, NewText(sliceRunes(n.Text, lo-s, hi-s)))
			}
			*pos = s + l
		case SpanNode:
			kids := clipNodes(n.Children, from, to, pos, keepEnd)
			if len(kids) > 0 {
				out = append(out, &Node{Kind: SpanNode, Style: n.Style, Children: kids})
			}
		case markerNode:
			if (*pos >= from && *pos < to) || (keepEnd && *pos == to) {
				out = append(out, n)
			}
		}
	}
	return out
}

func Slice(t Tree, start, end int) Tree {
	start, end = clampRange(t, start, end)
	pos := 0
	return Normalize(Tree(clipNodes(t, start, end, &pos, false)))
}

// Split cuts t at offset. Styles that cover the cut are repeated on both sides.
func Split(t Tree, offset int) (Tree, Tree) {
	n := t.Len()
	offset = clampInt(offset, 0, n)
	return Slice(t, 0, offset), Slice(t, offset, n)
}

func Concat(a, b Tree) Tree {
	joined := make(Tree, 0, len(a)+len(b))
	joined = append(joined, a.Clone()...)
	joined = append(joined, b.Clone()...)
	return Normalize(joined)
}

func DeleteRange(t Tree, start, end int) Tree {
	start, end = clampRange(t, start, end)
	if start == end {
		return Normalize(t)
	}
	left, _ := Split(t, start)
	_, right := Split(t, end)
	return Concat(left, right)
}

// InsertText inserts s at offset. The new characters take the styles of the
// leaf the offset resolves to, so typing at the end of a bold run stays bold.
func InsertText(t Tree, offset int, s string) Tree {
	out := t.Clone()
	if s == "" {
		return Normalize(out)
	}
	offset = clampInt(offset, 0, out.Len())
	p := PositionAt(out, offset)
	leaf := out.nodeAt(p.Path)
	if leaf == nil || leaf.Kind != TextNode {
		out = append(out, NewText(s))
		return Normalize(out)
	}
	r := []rune(leaf.Text)
	k := clampInt(p.Offset, 0, len(r))
	leaf.Text = string(r[:k]) + s + string(r[k:])
	return Normalize(out)
}

func ReplaceRange(t Tree, start, end int, s string) (Tree, int) {
	start, _ = clampRange(t, start, end)
	out := DeleteRange(t, start, end)
	return InsertText(out, start, s), start + utf8.RuneCountInString(s)
}

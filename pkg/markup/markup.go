// Package markup models the inline content of a text block as a forest of
// styled spans over plain text leaves.
package markup

import (
	"strings"
	"unicode/utf8"
)

type StyleKind uint8

const (
	Bold StyleKind = iota + 1
	Italic
	Code
	Highlight
	Link
)

var styleNames = map[StyleKind]string{
	Bold:      "bold",
	Italic:    "italic",
	Code:      "code",
	Highlight: "highlight",
	Link:      "link",
}

func (k StyleKind) String() string {
	if name, ok := styleNames[k]; ok {
		return name
	}
	return "unknown"
}

func (k StyleKind) Valid() bool {
	return k >= Bold && k <= Link
}

func ParseStyleKind(name string) (StyleKind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range styleNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

type Style struct {
	Kind StyleKind
	Href string
}

func StyleOf(kind StyleKind) Style {
	return Style{Kind: kind}
}

func LinkTo(href string) Style {
	return Style{Kind: Link, Href: href}
}

// Same reports whether two styles are the same style for nesting and merging.
// Links are only the same when their targets match.
func (s Style) Same(o Style) bool {
	if s.Kind != o.Kind {
		return false
	}
	if s.Kind == Link {
		return s.Href == o.Href
	}
	return true
}

type StyleSet uint8

func (s StyleSet) Has(k StyleKind) bool {
	return k.Valid() && s&(1<<k) != 0
}

func (s StyleSet) With(k StyleKind) StyleSet {
	if !k.Valid() {
		return s
	}
	return s | 1<<k
}

func (s StyleSet) Kinds() []StyleKind {
	var out []StyleKind
	for k := Bold; k <= Link; k++ {
		if s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

func (s StyleSet) String() string {
	kinds := s.Kinds()
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, k.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}

type NodeKind uint8

const (
	TextNode NodeKind = iota
	SpanNode
	markerNode
)

type Node struct {
	Kind     NodeKind
	Text     string
	Style    Style
	Children []*Node

	mark int
}

func NewText(s string) *Node {
	return &Node{Kind: TextNode, Text: s}
}

func NewSpan(style Style, children ...*Node) *Node {
	return &Node{Kind: SpanNode, Style: style, Children: children}
}

func (n *Node) runeLen() int {
	switch n.Kind {
	case TextNode:
		return utf8.RuneCountInString(n.Text)
	case SpanNode:
		total := 0
		for _, c := range n.Children {
			total += c.runeLen()
		}
		return total
	}
	return 0
}

func (n *Node) clone() *Node {
	c := *n
	if n.Children != nil {
		c.Children = cloneNodes(n.Children)
	}
	return &c
}

func cloneNodes(nodes []*Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		out = append(out, n.clone())
	}
	return out
}

func countNodes(nodes []*Node) int {
	total := 0
	for _, n := range nodes {
		total++
		total += countNodes(n.Children)
	}
	return total
}

// Tree is the inline content of one block. Trees are treated as values:
// every function in this package returns a new tree and leaves its input alone.
type Tree []*Node

func Plain(s string) Tree {
	if s == "" {
		return Tree{}
	}
	return Tree{NewText(s)}
}

func (t Tree) Clone() Tree {
	return Tree(cloneNodes(t))
}

func (t Tree) Text() string {
	var b strings.Builder
	writeText(&b, t)
	return b.String()
}

func writeText(b *strings.Builder, nodes []*Node) {
	for _, n := range nodes {
		switch n.Kind {
		case TextNode:
			b.WriteString(n.Text)
		case SpanNode:
			writeText(b, n.Children)
		}
	}
}

func (t Tree) Len() int {
	total := 0
	for _, n := range t {
		total += n.runeLen()
	}
	return total
}

func (t Tree) IsEmpty() bool {
	return t.Len() == 0
}

func (t Tree) nodeAt(path []int) *Node {
	nodes := []*Node(t)
	var cur *Node
	for _, idx := range path {
		if idx < 0 || idx >= len(nodes) {
			return nil
		}
		cur = nodes[idx]
		nodes = cur.Children
	}
	return cur
}

// container returns the child list addressed by path: the forest itself for
// an empty path, otherwise the children of the span at path.
func (t Tree) container(path []int) ([]*Node, bool) {
	if len(path) == 0 {
		return t, true
	}
	n := t.nodeAt(path)
	if n == nil || n.Kind != SpanNode {
		return nil, false
	}
	return n.Children, true
}

func (t Tree) setContainer(path []int, nodes []*Node) Tree {
	if len(path) == 0 {
		return Tree(nodes)
	}
	if n := t.nodeAt(path); n != nil {
		n.Children = nodes
	}
	return t
}

type leafRef struct {
	node      *Node
	path      []int
	start     int
	ancestors []*Node
}

func (l leafRef) end() int {
	return l.start + l.node.runeLen()
}

func (l leafRef) hasAncestor(match func(Style) bool) bool {
	return l.closestAncestor(match) >= 0
}

// closestAncestor returns the depth of the innermost span above the leaf whose
// style satisfies match, or -1.
func (l leafRef) closestAncestor(match func(Style) bool) int {
	for i := len(l.ancestors) - 1; i >= 0; i-- {
		if match(l.ancestors[i].Style) {
			return i
		}
	}
	return -1
}

func collectLeaves(t Tree) []leafRef {
	var out []leafRef
	pos := 0
	var walk func(nodes []*Node, path []int, anc []*Node)
	walk = func(nodes []*Node, path []int, anc []*Node) {
		for i, n := range nodes {
			p := append(append([]int(nil), path...), i)
			switch n.Kind {
			case SpanNode:
				walk(n.Children, p, append(append([]*Node(nil), anc...), n))
			default:
				out = append(out, leafRef{node: n, path: p, start: pos, ancestors: anc})
				pos += n.runeLen()
			}
		}
	}
	walk(t, nil, nil)
	return out
}

func sliceRunes(s string, from, to int) string {
	r := []rune(s)
	if from < 0 {
		from = 0
	}
	if to > len(r) {
		to = len(r)
	}
	if from >= to {
		return ""
	}
	return string(r[from:to])
}

func clampRange(t Tree, start, end int) (int, int) {
	n := t.Len()
	start = clampInt(start, 0, n)
	end = clampInt(end, 0, n)
	if start > end {
		start, end = end, start
	}
	return start, end
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

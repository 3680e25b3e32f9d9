package markup

import (
	"errors"
	"fmt"
)

var (
	ErrEmptySpan     = errors.New("markup: span has no text")
	ErrNestedSpan    = errors.New("markup: span nested inside a span of the same style")
	ErrAdjacentSpans = errors.New("markup: adjacent sibling spans share a style")
	ErrEmptyLink     = errors.New("markup: link without href")
	ErrUnknownStyle  = errors.New("markup: unknown style")
)

// Normalize returns a copy of t with empty text and empty spans removed,
// redundant nested spans flattened, and adjacent equal spans and adjacent
// text leaves merged. Passes repeat until nothing changes.
func Normalize(t Tree) Tree {
	out := cloneNodes(t)
	limit := countNodes(out) + 1
	for i := 0; i < limit; i++ {
		var changed bool
		out, changed = normalizeNodes(out, nil)
		if !changed {
			break
		}
	}
	return Tree(out)
}

func normalizeNodes(nodes []*Node, anc []Style) ([]*Node, bool) {
	out := make([]*Node, 0, len(nodes))
	changed := false
	for _, n := range nodes {
		if n == nil {
			changed = true
			continue
		}
		switch n.Kind {
		case TextNode:
			if n.Text == "" {
				changed = true
				continue
			}
			if prev := last(out); prev != nil && prev.Kind == TextNode {
				prev.Text += n.Text
				changed = true
				continue
			}
			out = append(out, n)
		case SpanNode:
			kids, c := normalizeNodes(n.Children, append(anc, n.Style))
			changed = changed || c
			if !spanStyleValid(n.Style) || hasSame(anc, n.Style) || textLen(kids) == 0 {
				out = append(out, kids...)
				changed = true
				continue
			}
			if prev := last(out); prev != nil && prev.Kind == SpanNode && prev.Style.Same(n.Style) {
				prev.Children = append(prev.Children, kids...)
				changed = true
				continue
			}
			n.Children = kids
			out = append(out, n)
		default:
			out = append(out, n)
		}
	}
	return out, changed
}

func last(nodes []*Node) *Node {
	if len(nodes) == 0 {
		return nil
	}
	return nodes[len(nodes)-1]
}

func hasSame(anc []Style, s Style) bool {
	for _, a := range anc {
		if a.Same(s) {
			return true
		}
	}
	return false
}

func textLen(nodes []*Node) int {
	total := 0
	for _, n := range nodes {
		total += n.runeLen()
	}
	return total
}

func spanStyleValid(s Style) bool {
	if !s.Kind.Valid() {
		return false
	}
	return s.Kind != Link || s.Href != ""
}

// Validate reports the first structural violation found in t.
func Validate(t Tree) error {
	return validateNodes(t, nil, "")
}

func validateNodes(nodes []*Node, anc []Style, at string) error {
	for i, n := range nodes {
		here := fmt.Sprintf("%s/%d", at, i)
		if n == nil || n.Kind != SpanNode {
			continue
		}
		switch {
		case !n.Style.Kind.Valid():
			return fmt.Errorf("%w at %s", ErrUnknownStyle, here)
		case n.Style.Kind == Link && n.Style.Href == "":
			return fmt.Errorf("%w at %s", ErrEmptyLink, here)
		case n.runeLen() == 0:
			return fmt.Errorf("%w at %s", ErrEmptySpan, here)
		case hasSame(anc, n.Style):
			return fmt.Errorf("%w at %s (%s)", ErrNestedSpan, here, n.Style.Kind)
		}
		if i > 0 {
			if prev := nodes[i-1]; prev != nil && prev.Kind == SpanNode && prev.Style.Same(n.Style) {
				return fmt.Errorf("%w at %s (%s)", ErrAdjacentSpans, here, n.Style.Kind)
			}
		}
		if err := validateNodes(n.Children, append(anc, n.Style), here); err != nil {
			return err
		}
	}
	return nil
}

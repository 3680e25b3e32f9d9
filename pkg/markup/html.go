package markup

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var ErrMalformedHTML = errors.New("markup: malformed inline html")

var inlinePolicy = newInlinePolicy()

func newInlinePolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("strong", "b", "em", "i", "code", "mark", "br")
	p.AllowAttrs("href").OnElements("a")
	p.AllowURLSchemes("http", "https", "mailto")
	p.AllowRelativeURLs(true)
	p.RequireParseableURLs(true)
	return p
}

var styleTags = map[StyleKind]atom.Atom{
	Bold:      atom.Strong,
	Italic:    atom.Em,
	Code:      atom.Code,
	Highlight: atom.Mark,
	Link:      atom.A,
}

// ParseHTML reads inline content written with strong, em, code, mark and
// a[href]. b and i are read as bold and italic. Any other markup is dropped
// and its text kept.
func ParseHTML(s string) (Tree, error) {
	if strings.TrimSpace(s) == "" {
		return Plain(s), nil
	}
	clean := inlinePolicy.Sanitize(s)
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(clean), ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedHTML, err)
	}
	var t Tree
	for _, n := range nodes {
		t = append(t, fromHTML(n)...)
	}
	return Normalize(t), nil
}

func fromHTML(n *html.Node) []*Node {
	switch n.Type {
	case html.TextNode:
		return []*Node{NewText(n.Data)}
	case html.ElementNode:
	default:
		return nil
	}
	var kids []*Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		kids = append(kids, fromHTML(c)...)
	}
	switch n.DataAtom {
	case atom.Strong, atom.B:
		return []*Node{NewSpan(StyleOf(Bold), kids...)}
	case atom.Em, atom.I:
		return []*Node{NewSpan(StyleOf(Italic), kids...)}
	case atom.Code:
		return []*Node{NewSpan(StyleOf(Code), kids...)}
	case atom.Mark:
		return []*Node{NewSpan(StyleOf(Highlight), kids...)}
	case atom.A:
		if href := attr(n, "href"); href != "" {
			return []*Node{NewSpan(LinkTo(href), kids...)}
		}
	case atom.Br:
		return []*Node{NewText("\n")}
	}
	return kids
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// RenderHTML writes t using the canonical inline tags.
func RenderHTML(t Tree) string {
	var buf bytes.Buffer
	for _, n := range Normalize(t) {
		_ = html.Render(&buf, toHTML(n))
	}
	return buf.String()
}

func toHTML(n *Node) *html.Node {
	if n.Kind == TextNode {
		return &html.Node{Type: html.TextNode, Data: n.Text}
	}
	tag := styleTags[n.Style.Kind]
	el := &html.Node{Type: html.ElementNode, Data: tag.String(), DataAtom: tag}
	if n.Style.Kind == Link {
		el.Attr = []html.Attribute{{Key: "href", Val: n.Style.Href}}
	}
	for _, c := range n.Children {
		el.AppendChild(toHTML(c))
	}
	return el
}

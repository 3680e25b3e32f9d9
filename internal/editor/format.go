package editor

import (
	"postedit/pkg/markup"
	"postedit/pkg/postdoc"
)

// Selection is a character range inside one block. Start == End is a caret.
type Selection struct {
	Block int
	Start int
	End   int
}

func Caret(block, offset int) Selection {
	return Selection{Block: block, Start: offset, End: offset}
}

func (s Selection) Collapsed() bool {
	return s.Start == s.End
}

func (s Selection) ordered() Selection {
	if s.Start > s.End {
		s.Start, s.End = s.End, s.Start
	}
	return s
}

// ToggleFormat applies or removes style over sel inside its block and
// returns the new document with the restored selection.
func ToggleFormat(doc *postdoc.Document, sel Selection, style markup.Style) (*postdoc.Document, Selection) {
	out := working(doc)
	sel = sel.ordered()
	if !out.ValidIndex(sel.Block) || sel.Collapsed() {
		return out, sel
	}
	b := &out.Blocks[sel.Block]
	if !b.HasContent() {
		return out, sel
	}
	tree, start, end := markup.Toggle(b.Content, sel.Start, sel.End, style)
	b.Content = tree
	return out, Selection{Block: sel.Block, Start: start, End: end}
}

func ActiveStyles(doc *postdoc.Document, sel Selection) markup.StyleSet {
	sel = sel.ordered()
	if !doc.ValidIndex(sel.Block) || !doc.Blocks[sel.Block].HasContent() {
		return 0
	}
	return markup.ActiveStyles(doc.Blocks[sel.Block].Content, sel.Start, sel.End)
}

func SelectionText(doc *postdoc.Document, sel Selection) string {
	sel = sel.ordered()
	if !doc.ValidIndex(sel.Block) || !doc.Blocks[sel.Block].HasContent() {
		return ""
	}
	return markup.Slice(doc.Blocks[sel.Block].Content, sel.Start, sel.End).Text()
}

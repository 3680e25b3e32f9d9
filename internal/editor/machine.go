package editor

import (
	"strings"
	"unicode"

	"postedit/pkg/markup"
	"postedit/pkg/postdoc"
)

type CommandMenu struct {
	Open     bool
	Selected int
}

type Command struct {
	Label string
	Kind  postdoc.BlockKind
	Level int
}

var Commands = []Command{
	{Label: "Paragraph", Kind: postdoc.BlockKindParagraph},
	{Label: "Heading 1", Kind: postdoc.BlockKindHeader, Level: 1},
	{Label: "Heading 2", Kind: postdoc.BlockKindHeader, Level: 2},
	{Label: "Heading 3", Kind: postdoc.BlockKindHeader, Level: 3},
	{Label: "Code", Kind: postdoc.BlockKindCode},
	{Label: "Image", Kind: postdoc.BlockKindImage},
	{Label: "Separator", Kind: postdoc.BlockKindSeparator},
}

type CaretPlacement uint8

const (
	CaretNone CaretPlacement = iota
	CaretStart
	CaretEnd
	CaretOffset
	CaretRange
)

// Focus tells the host what happened to a key. When Handled is false the host
// should apply its own default behaviour (moving the caret inside a block,
// extending a selection, and so on).
type Focus struct {
	Handled bool
	Block   int
	Caret   CaretPlacement
	Offset  int
	End     int
}

// Resolve turns the placement into a character offset inside doc.
func (f Focus) Resolve(doc *postdoc.Document) int {
	if !doc.ValidIndex(f.Block) {
		return 0
	}
	switch f.Caret {
	case CaretEnd:
		return doc.Blocks[f.Block].Content.Len()
	case CaretOffset, CaretRange:
		return f.Offset
	}
	return 0
}

type KeyInput struct {
	Event       KeyEvent
	Selection   Selection
	AtTextStart bool
	AtTextEnd   bool
}

type dispatch struct {
	doc   *postdoc.Document
	in    KeyInput
	menu  CommandMenu
	idx   int
	start int
	end   int
}

// DispatchKey interprets one key event against the active block and the
// command menu state. The input document is left untouched.
func DispatchKey(doc *postdoc.Document, in KeyInput, menu CommandMenu) (*postdoc.Document, CommandMenu, Focus) {
	out := working(doc)
	sel := in.Selection.ordered()
	if !out.ValidIndex(sel.Block) {
		return out, menu, Focus{Block: sel.Block}
	}
	n := out.Blocks[sel.Block].Content.Len()
	d := &dispatch{
		doc:   out,
		in:    in,
		menu:  menu,
		idx:   sel.Block,
		start: clampInt(sel.Start, 0, n),
		end:   clampInt(sel.End, 0, n),
	}

	var f Focus
	switch in.Event.Key {
	case KeyEnter:
		f = d.enter()
	case KeyBackspace:
		f = d.backspace()
	case KeyDelete:
		f = d.deleteForward()
	case KeyArrowUp:
		f = d.arrowUp()
	case KeyArrowDown:
		f = d.arrowDown()
	case KeyTab:
		f = d.tab()
	case KeyEscape:
		f = d.escape()
	case KeyRune:
		f = d.typeRune()
	}
	if !f.Handled {
		f.Block = d.idx
	}
	if f.Handled && d.doc.ValidIndex(f.Block) {
		d.doc.Active = f.Block
	}
	return d.doc, d.menu, f
}

func (d *dispatch) block() postdoc.Block {
	return d.doc.Blocks[d.idx]
}

func (d *dispatch) setContent(t markup.Tree) {
	d.doc.Blocks[d.idx].Content = t
	if d.menu.Open && !strings.HasPrefix(t.Text(), "/") {
		d.closeMenu()
	}
}

func (d *dispatch) closeMenu() {
	d.menu = CommandMenu{}
}

func (d *dispatch) insertText(s string) Focus {
	tree, caret := markup.ReplaceRange(d.block().Content, d.start, d.end, s)
	d.setContent(tree)
	return focusAt(d.idx, caret)
}

func (d *dispatch) deleteRange(start, end int) Focus {
	d.setContent(markup.DeleteRange(d.block().Content, start, end))
	return focusAt(d.idx, start)
}

func focusAt(block, offset int) Focus {
	return Focus{Handled: true, Block: block, Caret: CaretOffset, Offset: offset}
}

func (d *dispatch) focusEnd(block int) Focus {
	if d.doc.ValidIndex(block) && d.doc.Blocks[block].HasContent() {
		return Focus{Handled: true, Block: block, Caret: CaretEnd}
	}
	return Focus{Handled: true, Block: block, Caret: CaretNone}
}

func (d *dispatch) focusStart(block int) Focus {
	if d.doc.ValidIndex(block) && d.doc.Blocks[block].HasContent() {
		return Focus{Handled: true, Block: block, Caret: CaretStart}
	}
	return Focus{Handled: true, Block: block, Caret: CaretNone}
}

func (d *dispatch) stay() Focus {
	return focusAt(d.idx, d.start)
}

func (d *dispatch) enter() Focus {
	if d.menu.Open {
		return d.applyCommand()
	}
	b := d.block()
	switch {
	case b.Kind == postdoc.BlockKindCode:
		return d.insertText("\n")
	case !b.HasContent():
		d.doc = InsertBlock(d.doc, postdoc.NewBlock(postdoc.BlockKindParagraph, 0), d.idx)
		return d.focusStart(d.idx + 1)
	}
	rest := markup.DeleteRange(b.Content, d.start, d.end)
	head, tail := markup.Split(rest, d.start)
	d.doc.Blocks[d.idx].Content = head
	next := postdoc.NewBlock(postdoc.BlockKindParagraph, 0)
	next.Content = tail
	d.doc = InsertBlock(d.doc, next, d.idx)
	return d.focusStart(d.idx + 1)
}

func (d *dispatch) applyCommand() Focus {
	cmd := Commands[clampInt(d.menu.Selected, 0, len(Commands)-1)]
	d.closeMenu()
	b := d.block()
	if b.HasContent() && strings.HasPrefix(b.Text(), "/") {
		d.doc.Blocks[d.idx].Content = markup.DeleteRange(b.Content, 0, 1)
	}
	d.doc = ConvertBlockType(d.doc, d.idx, cmd.Kind, cmd.Level)
	return d.focusEnd(d.idx)
}

func (d *dispatch) backspace() Focus {
	b := d.block()
	text := b.Text()
	switch {
	case d.menu.Open && b.HasContent() && text == "/":
		d.doc.Blocks[d.idx].Content = markup.Tree{}
		d.closeMenu()
		return focusAt(d.idx, 0)
	case b.HasContent() && text == "" && d.idx != 0:
		d.doc = DeleteBlock(d.doc, d.idx)
		return d.focusEnd(d.idx - 1)
	case !b.HasContent():
		return d.removeObject()
	case d.start != d.end:
		return d.deleteRange(d.start, d.end)
	case d.start > 0:
		return d.deleteRange(d.start-1, d.start)
	case d.idx > 0 && d.doc.Blocks[d.idx-1].HasContent():
		return d.mergeInto(d.idx - 1)
	}
	return Focus{}
}

func (d *dispatch) deleteForward() Focus {
	b := d.block()
	n := b.Content.Len()
	switch {
	case !b.HasContent():
		return d.removeObject()
	case d.start != d.end:
		return d.deleteRange(d.start, d.end)
	case d.start < n:
		return d.deleteRange(d.start, d.start+1)
	case d.doc.ValidIndex(d.idx+1) && d.doc.Blocks[d.idx+1].HasContent():
		d.idx++
		return d.mergeInto(d.idx - 1)
	}
	return Focus{}
}

// removeObject deletes a focused image or separator block.
func (d *dispatch) removeObject() Focus {
	d.doc = DeleteBlock(d.doc, d.idx)
	if d.idx == 0 {
		return d.focusStart(0)
	}
	return d.focusEnd(d.idx - 1)
}

// mergeInto appends the current block's content to the block at target and
// removes the current block.
func (d *dispatch) mergeInto(target int) Focus {
	join := d.doc.Blocks[target].Content.Len()
	d.doc.Blocks[target].Content = markup.Concat(d.doc.Blocks[target].Content, d.block().Content)
	d.doc = DeleteBlock(d.doc, d.idx)
	return focusAt(target, join)
}

func (d *dispatch) arrowUp() Focus {
	if d.menu.Open {
		d.menu.Selected = (d.menu.Selected - 1 + len(Commands)) % len(Commands)
		return d.stay()
	}
	if d.in.Event.Modifiers.Has(ModShift) {
		return Focus{}
	}
	b := d.block()
	atStart := d.in.AtTextStart
	switch {
	case !b.HasContent():
		atStart = true
	case b.Kind == postdoc.BlockKindCode:
		atStart = d.start == 0
	}
	if !atStart || d.idx == 0 {
		return Focus{}
	}
	return d.focusEnd(d.idx - 1)
}

func (d *dispatch) arrowDown() Focus {
	if d.menu.Open {
		d.menu.Selected = (d.menu.Selected + 1) % len(Commands)
		return d.stay()
	}
	if d.in.Event.Modifiers.Has(ModShift) {
		return Focus{}
	}
	b := d.block()
	atEnd := d.in.AtTextEnd
	switch {
	case !b.HasContent():
		atEnd = true
	case b.Kind == postdoc.BlockKindCode:
		atEnd = d.end == b.Content.Len()
	}
	if !atEnd || !d.doc.ValidIndex(d.idx+1) {
		return Focus{}
	}
	return d.focusStart(d.idx + 1)
}

func (d *dispatch) tab() Focus {
	if d.block().Kind != postdoc.BlockKindCode || d.in.Event.Modifiers != ModNone {
		return Focus{}
	}
	return d.insertText("\t")
}

func (d *dispatch) escape() Focus {
	if !d.menu.Open {
		return Focus{}
	}
	d.closeMenu()
	return d.stay()
}

var shortcutStyles = map[rune]markup.StyleKind{
	'b': markup.Bold,
	'i': markup.Italic,
	'e': markup.Code,
	'h': markup.Highlight,
}

func (d *dispatch) typeRune() Focus {
	ev := d.in.Event
	if ev.Modifiers.Command() {
		kind, ok := shortcutStyles[unicode.ToLower(ev.Rune)]
		if !ok || !d.block().HasContent() {
			return Focus{}
		}
		var sel Selection
		d.doc, sel = ToggleFormat(d.doc, Selection{Block: d.idx, Start: d.start, End: d.end}, markup.StyleOf(kind))
		return Focus{Handled: true, Block: d.idx, Caret: CaretRange, Offset: sel.Start, End: sel.End}
	}
	if !ev.IsText() || !d.block().HasContent() {
		return Focus{}
	}

	kind := d.block().Kind
	before := d.block().Text()
	f := d.insertText(string(ev.Rune))
	after := d.block().Text()

	switch {
	case ev.Rune == '/' && before == "" && after == "/" && (kind == postdoc.BlockKindParagraph || kind == postdoc.BlockKindHeader):
		d.menu = CommandMenu{Open: true}
	case ev.Rune == '/' && before == "/" && after == "//":
		d.closeMenu()
	case ev.Rune == '`' && kind == postdoc.BlockKindParagraph && after == "``":
		d.doc.Blocks[d.idx].Content = markup.Tree{}
		d.doc = ConvertBlockType(d.doc, d.idx, postdoc.BlockKindCode, 0)
		return focusAt(d.idx, 0)
	}
	return f
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

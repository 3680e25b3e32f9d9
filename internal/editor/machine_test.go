package editor

import (
	"testing"

	"postedit/pkg/markup"
	"postedit/pkg/postdoc"
)

func key(doc *postdoc.Document, sel Selection, menu CommandMenu, ev KeyEvent) (*postdoc.Document, CommandMenu, Focus) {
	return DispatchKey(doc, KeyInput{Event: ev, Selection: sel, AtTextStart: true, AtTextEnd: true}, menu)
}

func texts(doc *postdoc.Document) []string {
	out := make([]string, len(doc.Blocks))
	for i, b := range doc.Blocks {
		out[i] = b.Text()
	}
	return out
}

func TestSlashOpensMenuAndBackspaceClosesIt(t *testing.T) {
	doc := postdoc.New("")
	doc, menu, f := key(doc, Caret(0, 0), CommandMenu{}, RuneEvent('/'))
	if !menu.Open {
		t.Fatal("expected command menu to open")
	}
	if !f.Handled || f.Resolve(doc) != 1 {
		t.Fatalf("unexpected focus: %+v", f)
	}

	doc, menu, f = key(doc, Caret(0, 1), menu, SpecialEvent(KeyBackspace, ModNone))
	if menu.Open {
		t.Fatal("expected command menu to close")
	}
	if got := doc.Blocks[0].Text(); got != "" {
		t.Fatalf("expected empty block, got %q", got)
	}
	if doc.Len() != 1 || !f.Handled || f.Resolve(doc) != 0 {
		t.Fatalf("unexpected state: len %d focus %+v", doc.Len(), f)
	}
}

func TestSecondSlashClosesMenu(t *testing.T) {
	doc, menu, _ := key(postdoc.New(""), Caret(0, 0), CommandMenu{}, RuneEvent('/'))
	doc, menu, _ = key(doc, Caret(0, 1), menu, RuneEvent('/'))
	if menu.Open {
		t.Fatal("expected menu closed after //")
	}
	if got := doc.Blocks[0].Text(); got != "//" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestSlashInCodeBlockIsText(t *testing.T) {
	doc := docOf(textBlock(postdoc.BlockKindCode, ""))
	doc, menu, _ := key(doc, Caret(0, 0), CommandMenu{}, RuneEvent('/'))
	if menu.Open || doc.Blocks[0].Text() != "/" {
		t.Fatalf("unexpected state: menu %v text %q", menu.Open, doc.Blocks[0].Text())
	}
}

func TestTypingAwayFromSlashClosesMenu(t *testing.T) {
	doc, menu, _ := key(postdoc.New(""), Caret(0, 0), CommandMenu{}, RuneEvent('/'))
	doc, menu, _ = key(doc, Caret(0, 0), menu, RuneEvent('x'))
	if menu.Open {
		t.Fatal("menu should close once the block stops starting with /")
	}
	if got := doc.Blocks[0].Text(); got != "x/" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestBacktickPairConvertsToCode(t *testing.T) {
	doc := postdoc.New("")
	id := doc.Blocks[0].ID
	doc, menu, _ := key(doc, Caret(0, 0), CommandMenu{}, RuneEvent('`'))
	doc, _, f := key(doc, Caret(0, 1), menu, RuneEvent('`'))

	b := doc.Blocks[0]
	if b.Kind != postdoc.BlockKindCode || b.Text() != "" {
		t.Fatalf("expected empty code block, got %s %q", b.Kind, b.Text())
	}
	if b.ID == id {
		t.Fatal("converted block kept its id")
	}
	if !f.Handled || f.Block != 0 || f.Resolve(doc) != 0 {
		t.Fatalf("unexpected focus: %+v", f)
	}
}

func TestEnterSplitsParagraph(t *testing.T) {
	doc := docOf(textBlock(postdoc.BlockKindParagraph, "hello"))
	out, _, f := key(doc, Caret(0, 5), CommandMenu{}, SpecialEvent(KeyEnter, ModNone))
	if got := texts(out); len(got) != 2 || got[0] != "hello" || got[1] != "" {
		t.Fatalf("unexpected blocks: %q", got)
	}
	if out.Blocks[1].Kind != postdoc.BlockKindParagraph || out.Active != 1 {
		t.Fatalf("expected active new paragraph, got %s active %d", out.Blocks[1].Kind, out.Active)
	}
	if f.Block != 1 || f.Caret != CaretStart {
		t.Fatalf("unexpected focus: %+v", f)
	}

	out, _, _ = key(doc, Caret(0, 2), CommandMenu{}, SpecialEvent(KeyEnter, ModNone))
	if got := texts(out); got[0] != "he" || got[1] != "llo" {
		t.Fatalf("unexpected split: %q", got)
	}
}

func TestEnterSplitKeepsStyles(t *testing.T) {
	b := postdoc.NewBlock(postdoc.BlockKindHeader, 2)
	b.Content = markup.Tree{markup.NewSpan(markup.StyleOf(markup.Bold), markup.NewText("abcd"))}
	out, _, _ := key(docOf(b), Caret(0, 2), CommandMenu{}, SpecialEvent(KeyEnter, ModNone))
	if got := markup.RenderHTML(out.Blocks[1].Content); got != "<strong>cd</strong>" {
		t.Fatalf("unexpected tail: %s", got)
	}
	if out.Blocks[0].Kind != postdoc.BlockKindHeader || out.Blocks[1].Kind != postdoc.BlockKindParagraph {
		t.Fatal("split should keep the header and continue with a paragraph")
	}
}

func TestEnterInCodeInsertsNewline(t *testing.T) {
	doc := docOf(textBlock(postdoc.BlockKindCode, "ab"))
	out, _, f := key(doc, Caret(0, 2), CommandMenu{}, SpecialEvent(KeyEnter, ModNone))
	if out.Len() != 1 || out.Blocks[0].Text() != "ab\n" {
		t.Fatalf("unexpected code block: %q", texts(out))
	}
	if f.Resolve(out) != 3 {
		t.Fatalf("unexpected caret: %+v", f)
	}
}

func TestEnterOnImageAddsParagraph(t *testing.T) {
	doc := docOf(postdoc.NewBlock(postdoc.BlockKindImage, 0))
	out, _, f := key(doc, Caret(0, 0), CommandMenu{}, SpecialEvent(KeyEnter, ModNone))
	if out.Len() != 2 || out.Blocks[1].Kind != postdoc.BlockKindParagraph {
		t.Fatalf("unexpected blocks: %v", kinds(out))
	}
	if f.Block != 1 || f.Caret != CaretStart {
		t.Fatalf("unexpected focus: %+v", f)
	}
}

func TestBackspace(t *testing.T) {
	two := docOf(textBlock(postdoc.BlockKindParagraph, "ab"), textBlock(postdoc.BlockKindParagraph, ""))

	out, _, f := key(two, Caret(1, 0), CommandMenu{}, SpecialEvent(KeyBackspace, ModNone))
	if out.Len() != 1 || f.Block != 0 || f.Caret != CaretEnd || f.Resolve(out) != 2 {
		t.Fatalf("empty block not removed: len %d focus %+v", out.Len(), f)
	}

	single := postdoc.New("")
	out, _, f = key(single, Caret(0, 0), CommandMenu{}, SpecialEvent(KeyBackspace, ModNone))
	if out.Len() != 1 || f.Handled {
		t.Fatalf("first empty block must stay: len %d focus %+v", out.Len(), f)
	}

	merge := docOf(textBlock(postdoc.BlockKindParagraph, "ab"), textBlock(postdoc.BlockKindParagraph, "cd"))
	out, _, f = key(merge, Caret(1, 0), CommandMenu{}, SpecialEvent(KeyBackspace, ModNone))
	if got := texts(out); len(got) != 1 || got[0] != "abcd" {
		t.Fatalf("unexpected merge: %q", got)
	}
	if f.Block != 0 || f.Resolve(out) != 2 {
		t.Fatalf("unexpected focus: %+v", f)
	}

	out, _, f = key(merge, Caret(0, 1), CommandMenu{}, SpecialEvent(KeyBackspace, ModNone))
	if out.Blocks[0].Text() != "b" || f.Resolve(out) != 0 {
		t.Fatalf("unexpected char delete: %q %+v", out.Blocks[0].Text(), f)
	}

	out, _, f = key(docOf(textBlock(postdoc.BlockKindParagraph, "hello")), Selection{Block: 0, Start: 4, End: 1}, CommandMenu{}, SpecialEvent(KeyBackspace, ModNone))
	if out.Blocks[0].Text() != "ho" || f.Resolve(out) != 1 {
		t.Fatalf("unexpected selection delete: %q %+v", out.Blocks[0].Text(), f)
	}
}

func TestBackspaceRemovesImage(t *testing.T) {
	doc := docOf(textBlock(postdoc.BlockKindParagraph, "ab"), postdoc.NewBlock(postdoc.BlockKindImage, 0))
	out, _, f := key(doc, Caret(1, 0), CommandMenu{}, SpecialEvent(KeyBackspace, ModNone))
	if out.Len() != 1 || out.Blocks[0].Kind != postdoc.BlockKindParagraph {
		t.Fatalf("image not removed: %v", kinds(out))
	}
	if f.Block != 0 || f.Caret != CaretEnd {
		t.Fatalf("unexpected focus: %+v", f)
	}
}

func TestDeleteForward(t *testing.T) {
	doc := docOf(textBlock(postdoc.BlockKindParagraph, "ab"), textBlock(postdoc.BlockKindParagraph, "cd"))
	out, _, f := key(doc, Caret(0, 2), CommandMenu{}, SpecialEvent(KeyDelete, ModNone))
	if got := texts(out); len(got) != 1 || got[0] != "abcd" {
		t.Fatalf("unexpected merge: %q", got)
	}
	if f.Block != 0 || f.Resolve(out) != 2 {
		t.Fatalf("unexpected focus: %+v", f)
	}

	out, _, _ = key(doc, Caret(0, 0), CommandMenu{}, SpecialEvent(KeyDelete, ModNone))
	if out.Blocks[0].Text() != "b" {
		t.Fatalf("unexpected delete: %q", out.Blocks[0].Text())
	}

	_, _, f = key(doc, Caret(1, 2), CommandMenu{}, SpecialEvent(KeyDelete, ModNone))
	if f.Handled {
		t.Fatal("delete at the end of the last block should not be handled")
	}
}

func TestArrowsCrossBlocks(t *testing.T) {
	doc := docOf(textBlock(postdoc.BlockKindParagraph, "ab"), textBlock(postdoc.BlockKindParagraph, "cd"))

	out, _, f := DispatchKey(doc, KeyInput{Event: SpecialEvent(KeyArrowUp, ModNone), Selection: Caret(1, 0), AtTextStart: true}, CommandMenu{})
	if f.Block != 0 || f.Caret != CaretEnd || f.Resolve(out) != 2 || out.Active != 0 {
		t.Fatalf("unexpected up focus: %+v", f)
	}

	_, _, f = DispatchKey(doc, KeyInput{Event: SpecialEvent(KeyArrowUp, ModNone), Selection: Caret(1, 1)}, CommandMenu{})
	if f.Handled {
		t.Fatal("arrow up inside text should be left to the host")
	}

	_, _, f = DispatchKey(doc, KeyInput{Event: SpecialEvent(KeyArrowDown, ModNone), Selection: Caret(0, 2), AtTextEnd: true}, CommandMenu{})
	if f.Block != 1 || f.Caret != CaretStart {
		t.Fatalf("unexpected down focus: %+v", f)
	}

	_, _, f = DispatchKey(doc, KeyInput{Event: SpecialEvent(KeyArrowDown, ModShift), Selection: Caret(0, 2), AtTextEnd: true}, CommandMenu{})
	if f.Handled {
		t.Fatal("shift+arrow should extend the selection in the host")
	}

	_, _, f = key(doc, Caret(0, 0), CommandMenu{}, SpecialEvent(KeyArrowUp, ModNone))
	if f.Handled {
		t.Fatal("arrow up from the first block should not be handled")
	}
}

func TestArrowsInCodeUseCaretOffset(t *testing.T) {
	doc := docOf(textBlock(postdoc.BlockKindParagraph, "p"), textBlock(postdoc.BlockKindCode, "a\nb"))
	_, _, f := key(doc, Caret(1, 2), CommandMenu{}, SpecialEvent(KeyArrowUp, ModNone))
	if f.Handled {
		t.Fatal("code block should only leave from offset 0")
	}
	_, _, f = key(doc, Caret(1, 0), CommandMenu{}, SpecialEvent(KeyArrowUp, ModNone))
	if !f.Handled || f.Block != 0 {
		t.Fatalf("unexpected focus: %+v", f)
	}
}

func TestMenuNavigationAndApply(t *testing.T) {
	doc, menu, _ := key(postdoc.New(""), Caret(0, 0), CommandMenu{}, RuneEvent('/'))

	_, up, _ := key(doc, Caret(0, 1), menu, SpecialEvent(KeyArrowUp, ModNone))
	if up.Selected != len(Commands)-1 {
		t.Fatalf("expected wrap to last command, got %d", up.Selected)
	}
	_, down, _ := key(doc, Caret(0, 1), up, SpecialEvent(KeyArrowDown, ModNone))
	if down.Selected != 0 {
		t.Fatalf("expected wrap to first command, got %d", down.Selected)
	}

	menu.Selected = 2
	out, menu, f := key(doc, Caret(0, 1), menu, SpecialEvent(KeyEnter, ModNone))
	b := out.Blocks[0]
	if menu.Open || b.Kind != postdoc.BlockKindHeader || b.Level != 2 || b.Text() != "" {
		t.Fatalf("unexpected result: menu %v block %s/%d %q", menu.Open, b.Kind, b.Level, b.Text())
	}
	if f.Caret != CaretEnd {
		t.Fatalf("unexpected focus: %+v", f)
	}

	out, _, f = key(doc, Caret(0, 1), CommandMenu{Open: true, Selected: 5}, SpecialEvent(KeyEnter, ModNone))
	if out.Blocks[0].Kind != postdoc.BlockKindImage || f.Caret != CaretNone {
		t.Fatalf("unexpected image command result: %s %+v", out.Blocks[0].Kind, f)
	}
}

func TestEscapeClosesMenu(t *testing.T) {
	doc, menu, _ := key(postdoc.New(""), Caret(0, 0), CommandMenu{}, RuneEvent('/'))
	out, menu, f := key(doc, Caret(0, 1), menu, SpecialEvent(KeyEscape, ModNone))
	if menu.Open || !f.Handled || out.Blocks[0].Text() != "/" {
		t.Fatalf("unexpected escape: menu %v focus %+v", menu.Open, f)
	}
	_, _, f = key(out, Caret(0, 1), menu, SpecialEvent(KeyEscape, ModNone))
	if f.Handled {
		t.Fatal("escape without a menu should not be handled")
	}
}

func TestTabOnlyIndentsCode(t *testing.T) {
	code := docOf(textBlock(postdoc.BlockKindCode, "x"))
	out, _, f := key(code, Caret(0, 0), CommandMenu{}, SpecialEvent(KeyTab, ModNone))
	if out.Blocks[0].Text() != "\tx" || f.Resolve(out) != 1 {
		t.Fatalf("unexpected tab: %q %+v", out.Blocks[0].Text(), f)
	}
	_, _, f = key(docOf(textBlock(postdoc.BlockKindParagraph, "x")), Caret(0, 0), CommandMenu{}, SpecialEvent(KeyTab, ModNone))
	if f.Handled {
		t.Fatal("tab in a paragraph should not be handled")
	}
}

func TestFormatShortcut(t *testing.T) {
	doc := docOf(textBlock(postdoc.BlockKindParagraph, "Hello World"))
	ev := KeyEvent{Key: KeyRune, Rune: 'b', Modifiers: ModCtrl}
	out, _, f := key(doc, Selection{Block: 0, Start: 0, End: 5}, CommandMenu{}, ev)
	if got := markup.RenderHTML(out.Blocks[0].Content); got != "<strong>Hello</strong> World" {
		t.Fatalf("unexpected content: %s", got)
	}
	if f.Caret != CaretRange || f.Offset != 0 || f.End != 5 {
		t.Fatalf("selection not kept: %+v", f)
	}
	if doc.Blocks[0].Text() != "Hello World" || markup.RenderHTML(doc.Blocks[0].Content) != "Hello World" {
		t.Fatal("input document was modified")
	}

	_, _, f = key(doc, Caret(0, 0), CommandMenu{}, KeyEvent{Key: KeyRune, Rune: 'q', Modifiers: ModMeta})
	if f.Handled {
		t.Fatal("unknown shortcut should not be handled")
	}
}

func TestInvalidSelectionIsIgnored(t *testing.T) {
	doc := postdoc.New("")
	out, _, f := key(doc, Caret(3, 0), CommandMenu{}, RuneEvent('a'))
	if f.Handled || out.Blocks[0].Text() != "" {
		t.Fatalf("unexpected result: %+v", f)
	}
}

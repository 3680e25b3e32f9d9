package editor

import (
	"testing"

	"postedit/pkg/markup"
	"postedit/pkg/postdoc"
)

func textBlock(kind postdoc.BlockKind, text string) postdoc.Block {
	b := postdoc.NewBlock(kind, 1)
	b.Content = markup.Plain(text)
	return b
}

func docOf(blocks ...postdoc.Block) *postdoc.Document {
	return &postdoc.Document{Blocks: blocks, Active: 0}
}

func kinds(doc *postdoc.Document) []postdoc.BlockKind {
	out := make([]postdoc.BlockKind, len(doc.Blocks))
	for i, b := range doc.Blocks {
		out[i] = b.Kind
	}
	return out
}

func sameKinds(a, b []postdoc.BlockKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestReorderKeepsActiveOnMovedBlock(t *testing.T) {
	doc := docOf(
		textBlock(postdoc.BlockKindHeader, "Title"),
		textBlock(postdoc.BlockKindParagraph, "body"),
		postdoc.NewBlock(postdoc.BlockKindImage, 0),
	)
	out := ReorderBlock(doc, 0, 2)

	want := []postdoc.BlockKind{postdoc.BlockKindParagraph, postdoc.BlockKindImage, postdoc.BlockKindHeader}
	if got := kinds(out); !sameKinds(got, want) {
		t.Fatalf("unexpected order: %v", got)
	}
	if out.Active != 2 {
		t.Fatalf("expected active 2, got %d", out.Active)
	}
	if doc.Blocks[0].Kind != postdoc.BlockKindHeader || doc.Active != 0 {
		t.Fatal("input document was modified")
	}
}

func TestReorderShiftsOtherActiveBlock(t *testing.T) {
	doc := docOf(
		textBlock(postdoc.BlockKindParagraph, "a"),
		textBlock(postdoc.BlockKindParagraph, "b"),
		textBlock(postdoc.BlockKindParagraph, "c"),
	)
	doc.Active = 1
	out := ReorderBlock(doc, 0, 2)
	if out.Active != 0 || out.Blocks[out.Active].Text() != "b" {
		t.Fatalf("active moved off its block: %d", out.Active)
	}
	out = ReorderBlock(doc, 2, 0)
	if out.Active != 2 || out.Blocks[out.Active].Text() != "b" {
		t.Fatalf("active moved off its block: %d", out.Active)
	}
}

func TestDeleteOnlyBlockLeavesEmptyParagraph(t *testing.T) {
	doc := docOf(textBlock(postdoc.BlockKindHeader, "gone"))
	out := DeleteBlock(doc, 0)
	if out.Len() != 1 {
		t.Fatalf("expected one block, got %d", out.Len())
	}
	b := out.Blocks[0]
	if b.Kind != postdoc.BlockKindParagraph || b.Text() != "" || b.ID == "" {
		t.Fatalf("unexpected replacement block: %+v", b)
	}
	if out.Active != 0 {
		t.Fatalf("expected active 0, got %d", out.Active)
	}
}

func TestDeleteFocusesPreviousBlock(t *testing.T) {
	doc := docOf(
		textBlock(postdoc.BlockKindParagraph, "a"),
		textBlock(postdoc.BlockKindParagraph, "b"),
		textBlock(postdoc.BlockKindParagraph, "c"),
	)
	if out := DeleteBlock(doc, 2); out.Active != 1 || out.Len() != 2 {
		t.Fatalf("unexpected result: active %d len %d", out.Active, out.Len())
	}
	if out := DeleteBlock(doc, 0); out.Active != 0 || out.Blocks[0].Text() != "b" {
		t.Fatalf("unexpected result: active %d first %q", out.Active, out.Blocks[0].Text())
	}
}

func TestOutOfRangeOperationsAreNoops(t *testing.T) {
	doc := docOf(textBlock(postdoc.BlockKindParagraph, "keep"))
	for name, out := range map[string]*postdoc.Document{
		"delete":   DeleteBlock(doc, 4),
		"reorder":  ReorderBlock(doc, 0, 3),
		"content":  UpdateBlockContent(doc, -1, markup.Plain("x")),
		"convert":  ConvertBlockType(doc, 2, postdoc.BlockKindCode, 0),
		"active":   SetActiveBlock(doc, 9),
		"language": SetCodeLanguage(doc, 0, "go"),
		"level":    SetHeaderLevel(doc, 0, 2),
		"image":    UpdateImage(doc, 0, "a.png", ""),
	} {
		if out.Len() != 1 || out.Blocks[0].Text() != "keep" || out.Blocks[0].ID != doc.Blocks[0].ID {
			t.Fatalf("%s changed the document", name)
		}
		if out.Blocks[0].Kind != postdoc.BlockKindParagraph || out.Blocks[0].Language != "" || out.Blocks[0].URL != "" {
			t.Fatalf("%s changed the block", name)
		}
	}
}

func TestInsertBlockAssignsFreshID(t *testing.T) {
	doc := docOf(textBlock(postdoc.BlockKindParagraph, "a"))
	b := textBlock(postdoc.BlockKindParagraph, "b")
	b.ID = "fixed"

	out := InsertBlock(doc, b, 0)
	if out.Len() != 2 || out.Active != 1 {
		t.Fatalf("unexpected result: len %d active %d", out.Len(), out.Active)
	}
	if out.Blocks[1].ID == "fixed" || out.Blocks[1].ID == "" {
		t.Fatalf("expected fresh id, got %q", out.Blocks[1].ID)
	}

	out = InsertBlock(doc, b, Prepend)
	if out.Blocks[0].Text() != "b" || out.Active != 0 {
		t.Fatalf("prepend failed: %q active %d", out.Blocks[0].Text(), out.Active)
	}
	out = InsertBlock(doc, b, 42)
	if out.Blocks[out.Len()-1].Text() != "b" || out.Active != out.Len()-1 {
		t.Fatal("insert past the end should append")
	}
}

func TestUpdateBlockContentNormalizes(t *testing.T) {
	doc := docOf(textBlock(postdoc.BlockKindParagraph, ""))
	messy := markup.Tree{
		markup.NewSpan(markup.StyleOf(markup.Bold), markup.NewText("a")),
		markup.NewSpan(markup.StyleOf(markup.Bold), markup.NewText("b")),
		markup.NewSpan(markup.StyleOf(markup.Italic)),
	}
	out := UpdateBlockContent(doc, 0, messy)
	if err := markup.Validate(out.Blocks[0].Content); err != nil {
		t.Fatalf("content not normalized: %v", err)
	}
	if got := markup.RenderHTML(out.Blocks[0].Content); got != "<strong>ab</strong>" {
		t.Fatalf("unexpected content: %s", got)
	}
}

func TestDuplicateBlockCopiesContent(t *testing.T) {
	doc := docOf(textBlock(postdoc.BlockKindCode, "x := 1"))
	doc.Blocks[0].Language = "go"
	out := DuplicateBlock(doc, 0)
	if out.Len() != 2 || out.Active != 1 {
		t.Fatalf("unexpected result: len %d active %d", out.Len(), out.Active)
	}
	orig, dup := out.Blocks[0], out.Blocks[1]
	if dup.ID == orig.ID {
		t.Fatal("duplicate shares the original id")
	}
	if dup.Text() != "x := 1" || dup.Language != "go" || dup.Kind != postdoc.BlockKindCode {
		t.Fatalf("unexpected duplicate: %+v", dup)
	}
}

func TestConvertBlockType(t *testing.T) {
	doc := docOf(textBlock(postdoc.BlockKindParagraph, "hello"))
	out := ConvertBlockType(doc, 0, postdoc.BlockKindHeader, 2)
	b := out.Blocks[0]
	if b.Kind != postdoc.BlockKindHeader || b.Level != 2 || b.Text() != "hello" {
		t.Fatalf("unexpected header: %+v", b)
	}
	if b.ID == doc.Blocks[0].ID {
		t.Fatal("converted block kept its id")
	}

	out = ConvertBlockType(out, 0, postdoc.BlockKindSeparator, 0)
	if b := out.Blocks[0]; b.Kind != postdoc.BlockKindSeparator || b.Content != nil {
		t.Fatalf("unexpected separator: %+v", b)
	}

	code := docOf(textBlock(postdoc.BlockKindCode, "print(1)"))
	code.Blocks[0].Language = "python"
	out = ConvertBlockType(code, 0, postdoc.BlockKindCode, 0)
	if out.Blocks[0].Language != "python" {
		t.Fatalf("language lost: %q", out.Blocks[0].Language)
	}
}

func TestHeaderLevelAndLanguage(t *testing.T) {
	doc := docOf(textBlock(postdoc.BlockKindHeader, "h"), textBlock(postdoc.BlockKindCode, ""))
	if out := SetHeaderLevel(doc, 0, 9); out.Blocks[0].Level != postdoc.MaxHeaderLevel {
		t.Fatalf("expected clamped level, got %d", out.Blocks[0].Level)
	}
	if out := SetCodeLanguage(doc, 1, "Golang"); out.Blocks[1].Language != "go" {
		t.Fatalf("expected go, got %q", out.Blocks[1].Language)
	}
}

func TestUpdateTitleAndImage(t *testing.T) {
	doc := docOf(postdoc.NewBlock(postdoc.BlockKindImage, 0))
	out := UpdateImage(UpdateTitle(doc, "Post"), 0, "https://example.com/a.png", "a cat")
	if out.Title != "Post" || out.Blocks[0].URL != "https://example.com/a.png" || out.Blocks[0].Alt != "a cat" {
		t.Fatalf("unexpected document: %+v", out)
	}
	if doc.Title != "" || doc.Blocks[0].URL != "" {
		t.Fatal("input document was modified")
	}
}

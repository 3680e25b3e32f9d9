package editor

import (
	"postedit/internal/highlight"
	"postedit/pkg/markup"
	"postedit/pkg/postdoc"
)

// Prepend as the after index of InsertBlock puts the block first.
const Prepend = -1

func working(doc *postdoc.Document) *postdoc.Document {
	if doc == nil {
		return postdoc.New("")
	}
	return postdoc.Clone(doc)
}

func NewBlock(kind postdoc.BlockKind, level int) postdoc.Block {
	return postdoc.NewBlock(kind, level)
}

func UpdateTitle(doc *postdoc.Document, title string) *postdoc.Document {
	out := working(doc)
	out.Title = title
	return out
}

// InsertBlock inserts b after the given index and makes it active. The block
// always receives a fresh id. An index past the end appends.
func InsertBlock(doc *postdoc.Document, b postdoc.Block, after int) *postdoc.Document {
	out := working(doc)
	b = b.Clone()
	b.ID = postdoc.NewID()
	if b.HasContent() {
		b.Content = markup.Normalize(b.Content)
	}
	at := after + 1
	if after < 0 {
		at = 0
	}
	if at > len(out.Blocks) {
		at = len(out.Blocks)
	}
	out.Blocks = append(out.Blocks, postdoc.Block{})
	copy(out.Blocks[at+1:], out.Blocks[at:])
	out.Blocks[at] = b
	out.Active = at
	return out
}

func UpdateBlockContent(doc *postdoc.Document, index int, content markup.Tree) *postdoc.Document {
	out := working(doc)
	if !out.ValidIndex(index) || !out.Blocks[index].HasContent() {
		return out
	}
	out.Blocks[index].Content = markup.Normalize(content)
	return out
}

func UpdateImage(doc *postdoc.Document, index int, url, alt string) *postdoc.Document {
	out := working(doc)
	if !out.ValidIndex(index) || out.Blocks[index].Kind != postdoc.BlockKindImage {
		return out
	}
	out.Blocks[index].URL = url
	out.Blocks[index].Alt = alt
	return out
}

func SetCodeLanguage(doc *postdoc.Document, index int, language string) *postdoc.Document {
	out := working(doc)
	if !out.ValidIndex(index) || out.Blocks[index].Kind != postdoc.BlockKindCode {
		return out
	}
	out.Blocks[index].Language = highlight.Normalize(language)
	return out
}

func SetHeaderLevel(doc *postdoc.Document, index, level int) *postdoc.Document {
	out := working(doc)
	if !out.ValidIndex(index) || out.Blocks[index].Kind != postdoc.BlockKindHeader {
		return out
	}
	out.Blocks[index].Level = postdoc.ClampLevel(level)
	return out
}

// DeleteBlock removes the block at index. Removing the only block leaves a
// fresh empty paragraph behind.
func DeleteBlock(doc *postdoc.Document, index int) *postdoc.Document {
	out := working(doc)
	if !out.ValidIndex(index) {
		return out
	}
	if len(out.Blocks) == 1 {
		out.Blocks = []postdoc.Block{postdoc.NewBlock(postdoc.BlockKindParagraph, 0)}
		out.Active = 0
		return out
	}
	out.Blocks = append(out.Blocks[:index], out.Blocks[index+1:]...)
	out.Active = max(index-1, 0)
	return out
}

// ReorderBlock moves the block at src to dst. The active index keeps pointing
// at the block that was active before the move.
func ReorderBlock(doc *postdoc.Document, src, dst int) *postdoc.Document {
	out := working(doc)
	if !out.ValidIndex(src) || !out.ValidIndex(dst) || src == dst {
		return out
	}
	moved := out.Blocks[src]
	out.Blocks = append(out.Blocks[:src], out.Blocks[src+1:]...)
	out.Blocks = append(out.Blocks, postdoc.Block{})
	copy(out.Blocks[dst+1:], out.Blocks[dst:])
	out.Blocks[dst] = moved

	switch a := out.Active; {
	case a == src:
		out.Active = dst
	case src < a && a <= dst:
		out.Active = a - 1
	case dst <= a && a < src:
		out.Active = a + 1
	}
	return out
}

func DuplicateBlock(doc *postdoc.Document, index int) *postdoc.Document {
	if !doc.ValidIndex(index) {
		return working(doc)
	}
	return InsertBlock(doc, doc.Blocks[index], index)
}

// ConvertBlockType rebuilds the block at index as kind. Inline content
// survives between text kinds and is dropped otherwise. The converted block
// gets a new id.
func ConvertBlockType(doc *postdoc.Document, index int, kind postdoc.BlockKind, level int) *postdoc.Document {
	out := working(doc)
	if !out.ValidIndex(index) || !kind.Valid() {
		return out
	}
	old := out.Blocks[index]
	b := postdoc.NewBlock(kind, level)
	if kind.HasContent() && old.HasContent() {
		b.Content = old.Content
	}
	if kind == postdoc.BlockKindHeader && old.Kind == postdoc.BlockKindHeader && level == 0 {
		b.Level = old.Level
	}
	if kind == postdoc.BlockKindCode {
		b.Language = old.Language
		if b.Language == "" {
			b.Language = highlight.Detect(b.Content.Text())
		}
	}
	out.Blocks[index] = b
	return out
}

func SetActiveBlock(doc *postdoc.Document, index int) *postdoc.Document {
	out := working(doc)
	if index != postdoc.NoActive && !out.ValidIndex(index) {
		return out
	}
	out.Active = index
	return out
}

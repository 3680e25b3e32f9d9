package postdoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"postedit/pkg/markup"
)

type wireDocument struct {
	Title  string      `json:"title"`
	Blocks []wireBlock `json:"blocks"`
}

type wireBlock struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Level    int    `json:"level,omitempty"`
	Content  string `json:"content,omitempty"`
	Language string `json:"language,omitempty"`
	URL      string `json:"url,omitempty"`
	Alt      string `json:"alt,omitempty"`
}

func toWire(doc *Document) wireDocument {
	w := wireDocument{Title: doc.Title, Blocks: make([]wireBlock, 0, len(doc.Blocks))}
	for _, b := range doc.Blocks {
		wb := wireBlock{ID: b.ID, Type: b.Kind.String()}
		switch b.Kind {
		case BlockKindHeader:
			wb.Level = b.Level
			wb.Content = markup.RenderHTML(b.Content)
		case BlockKindParagraph:
			wb.Content = markup.RenderHTML(b.Content)
		case BlockKindCode:
			wb.Content = markup.RenderHTML(b.Content)
			wb.Language = b.Language
		case BlockKindImage:
			wb.URL = b.URL
			wb.Alt = b.Alt
		}
		w.Blocks = append(w.Blocks, wb)
	}
	return w
}

func fromWire(w wireDocument) (*Document, error) {
	doc := &Document{Title: w.Title, Active: NoActive, Blocks: make([]Block, 0, len(w.Blocks))}
	seen := make(map[string]struct{}, len(w.Blocks))
	for i, wb := range w.Blocks {
		kind, err := ParseBlockKind(wb.Type)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		b := Block{ID: wb.ID, Kind: kind}
		if _, dup := seen[b.ID]; dup || b.ID == "" {
			b.ID = NewID()
		}
		seen[b.ID] = struct{}{}
		if kind.HasContent() {
			b.Content, err = markup.ParseHTML(wb.Content)
			if err != nil {
				return nil, fmt.Errorf("block %d: %w", i, err)
			}
		}
		switch kind {
		case BlockKindHeader:
			b.Level = ClampLevel(wb.Level)
		case BlockKindCode:
			b.Language = wb.Language
		case BlockKindImage:
			b.URL = wb.URL
			b.Alt = wb.Alt
		}
		doc.Blocks = append(doc.Blocks, b)
	}
	if len(doc.Blocks) == 0 {
		doc.Blocks = append(doc.Blocks, NewBlock(BlockKindParagraph, 0))
	}
	return doc, nil
}

func Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func Unmarshal(data []byte) (*Document, error) {
	var w wireDocument
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("postdoc: decode: %w", err)
	}
	return fromWire(w)
}

func Encode(wr io.Writer, doc *Document) error {
	if doc == nil {
		return ErrNilDocument
	}
	enc := json.NewEncoder(wr)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(toWire(doc))
}

func Decode(r io.Reader) (*Document, error) {
	var w wireDocument
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return nil, fmt.Errorf("postdoc: decode: %w", err)
	}
	return fromWire(w)
}

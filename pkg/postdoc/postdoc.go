// Package postdoc holds the block document model of a post and its
// on-disk encoding.
package postdoc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofrs/uuid"

	"postedit/pkg/markup"
)

type BlockKind uint8

const (
	BlockKindParagraph BlockKind = iota
	BlockKindHeader
	BlockKindCode
	BlockKindImage
	BlockKindSeparator
)

const (
	NoActive = -1

	MinHeaderLevel = 1
	MaxHeaderLevel = 3
)

var blockKindNames = [...]string{
	BlockKindParagraph: "paragraph",
	BlockKindHeader:    "header",
	BlockKindCode:      "code",
	BlockKindImage:     "image",
	BlockKindSeparator: "separator",
}

func (k BlockKind) String() string {
	if int(k) < len(blockKindNames) {
		return blockKindNames[k]
	}
	return fmt.Sprintf("BlockKind(%d)", uint8(k))
}

func (k BlockKind) Valid() bool {
	return k <= BlockKindSeparator
}

// HasContent reports whether blocks of this kind carry inline text.
func (k BlockKind) HasContent() bool {
	return k == BlockKindParagraph || k == BlockKindHeader || k == BlockKindCode
}

func ParseBlockKind(name string) (BlockKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range blockKindNames {
		if n == name {
			return BlockKind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBlockType, name)
}

type Block struct {
	ID       string
	Kind     BlockKind
	Level    int
	Content  markup.Tree
	Language string
	URL      string
	Alt      string
}

func (b Block) HasContent() bool {
	return b.Kind.HasContent()
}

func (b Block) Text() string {
	if !b.HasContent() {
		return ""
	}
	return b.Content.Text()
}

func (b Block) Clone() Block {
	out := b
	if b.Content != nil {
		out.Content = b.Content.Clone()
	}
	return out
}

type Document struct {
	Title  string
	Blocks []Block
	Active int
}

var (
	ErrNilDocument      = errors.New("postdoc: document is nil")
	ErrNoBlocks         = errors.New("postdoc: document has no blocks")
	ErrMissingID        = errors.New("postdoc: block id is empty")
	ErrDuplicateID      = errors.New("postdoc: duplicate block id")
	ErrUnknownBlockType = errors.New("postdoc: unknown block type")
	ErrInvalidLevel     = errors.New("postdoc: header level out of range")
	ErrActiveOutOfRange = errors.New("postdoc: active block out of range")
)

func NewID() string {
	return uuid.Must(uuid.NewV4()).String()
}

func ClampLevel(level int) int {
	if level < MinHeaderLevel {
		return MinHeaderLevel
	}
	if level > MaxHeaderLevel {
		return MaxHeaderLevel
	}
	return level
}

// NewBlock creates an empty block of the given kind with a fresh id.
func NewBlock(kind BlockKind, level int) Block {
	if !kind.Valid() {
		kind = BlockKindParagraph
	}
	b := Block{ID: NewID(), Kind: kind}
	if kind == BlockKindHeader {
		b.Level = ClampLevel(level)
	}
	if kind.HasContent() {
		b.Content = markup.Tree{}
	}
	return b
}

func New(title string) *Document {
	return &Document{Title: title, Blocks: []Block{NewBlock(BlockKindParagraph, 0)}, Active: 0}
}

func Clone(doc *Document) *Document {
	if doc == nil {
		return nil
	}
	out := &Document{Title: doc.Title, Active: doc.Active, Blocks: make([]Block, len(doc.Blocks))}
	for i, b := range doc.Blocks {
		out.Blocks[i] = b.Clone()
	}
	return out
}

func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Blocks)
}

func (d *Document) ValidIndex(i int) bool {
	return d != nil && i >= 0 && i < len(d.Blocks)
}

func (d *Document) ActiveBlock() (Block, bool) {
	if !d.ValidIndex(d.Active) {
		return Block{}, false
	}
	return d.Blocks[d.Active], true
}

func Validate(doc *Document) error {
	if doc == nil {
		return ErrNilDocument
	}
	if len(doc.Blocks) == 0 {
		return ErrNoBlocks
	}
	seen := make(map[string]struct{}, len(doc.Blocks))
	for i, b := range doc.Blocks {
		if b.ID == "" {
			return fmt.Errorf("%w: block %d", ErrMissingID, i)
		}
		if _, dup := seen[b.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateID, b.ID)
		}
		seen[b.ID] = struct{}{}
		if !b.Kind.Valid() {
			return fmt.Errorf("%w: block %d kind %d", ErrUnknownBlockType, i, b.Kind)
		}
		if b.Kind == BlockKindHeader && (b.Level < MinHeaderLevel || b.Level > MaxHeaderLevel) {
			return fmt.Errorf("%w: block %d level %d", ErrInvalidLevel, i, b.Level)
		}
		if b.HasContent() {
			if err := markup.Validate(b.Content); err != nil {
				return fmt.Errorf("postdoc: block %d: %w", i, err)
			}
		}
	}
	if doc.Active != NoActive && !doc.ValidIndex(doc.Active) {
		return fmt.Errorf("%w: %d of %d", ErrActiveOutOfRange, doc.Active, len(doc.Blocks))
	}
	return nil
}

package editor

import (
	"strings"

	"go.uber.org/zap"

	"postedit/pkg/markup"
	"postedit/pkg/postdoc"
)

// Session is the single editing session a host owns. It threads the document,
// selection and command menu through the pure editor functions.
type Session struct {
	Doc  *postdoc.Document
	Menu CommandMenu

	block  int
	anchor int
	head   int
	log    *zap.Logger
}

func NewSession(doc *postdoc.Document, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{log: log}
	s.Replace(doc)
	return s
}

// Replace swaps in a new document and focuses its first block.
func (s *Session) Replace(doc *postdoc.Document) {
	if doc == nil {
		doc = postdoc.New("")
	}
	s.Doc = SetActiveBlock(doc, 0)
	s.Menu = CommandMenu{}
	s.block, s.anchor, s.head = 0, 0, 0
	s.log.Info("document loaded", zap.String("title", s.Doc.Title), zap.Int("blocks", s.Doc.Len()))
}

func (s *Session) Selection() Selection {
	return Selection{Block: s.block, Start: s.anchor, End: s.head}.ordered()
}

func (s *Session) ActiveBlock() int {
	return s.block
}

func (s *Session) Head() int {
	return s.head
}

func (s *Session) blockLen(i int) int {
	if !s.Doc.ValidIndex(i) {
		return 0
	}
	return s.Doc.Blocks[i].Content.Len()
}

func (s *Session) SetCaret(block, offset int) {
	s.SetSelection(Caret(block, offset))
}

func (s *Session) SetSelection(sel Selection) {
	if !s.Doc.ValidIndex(sel.Block) {
		s.log.Debug("selection ignored", zap.Int("block", sel.Block))
		return
	}
	n := s.blockLen(sel.Block)
	s.block = sel.Block
	s.anchor = clampInt(sel.Start, 0, n)
	s.head = clampInt(sel.End, 0, n)
	s.Doc.Active = sel.Block
}

// ExtendTo moves the head of the selection, keeping the anchor.
func (s *Session) ExtendTo(offset int) {
	s.head = clampInt(offset, 0, s.blockLen(s.block))
}

func (s *Session) moveHead(offset int, extend bool) {
	s.ExtendTo(offset)
	if !extend {
		s.anchor = s.head
	}
}

func (s *Session) MoveLeft(extend bool) {
	sel := s.Selection()
	if !extend && !sel.Collapsed() {
		s.moveHead(sel.Start, false)
		return
	}
	s.moveHead(s.head-1, extend)
}

func (s *Session) MoveRight(extend bool) {
	sel := s.Selection()
	if !extend && !sel.Collapsed() {
		s.moveHead(sel.End, false)
		return
	}
	s.moveHead(s.head+1, extend)
}

func (s *Session) MoveLineStart(extend bool) {
	text := []rune(s.blockText())
	i := clampInt(s.head, 0, len(text))
	for i > 0 && text[i-1] != '\n' {
		i--
	}
	s.moveHead(i, extend)
}

func (s *Session) MoveLineEnd(extend bool) {
	text := []rune(s.blockText())
	i := clampInt(s.head, 0, len(text))
	for i < len(text) && text[i] != '\n' {
		i++
	}
	s.moveHead(i, extend)
}

func (s *Session) SelectAll() {
	s.anchor = 0
	s.head = s.blockLen(s.block)
}

func (s *Session) blockText() string {
	if !s.Doc.ValidIndex(s.block) {
		return ""
	}
	return s.Doc.Blocks[s.block].Text()
}

// lineFlags reports whether the head sits on the first and on the last line
// of the active block.
func (s *Session) lineFlags() (bool, bool) {
	text := []rune(s.blockText())
	head := clampInt(s.head, 0, len(text))
	before := string(text[:head])
	after := string(text[head:])
	return !strings.Contains(before, "\n"), !strings.Contains(after, "\n")
}

// Dispatch runs a key through the block state machine and applies the focus
// it asks for. Keys the machine leaves alone fall back to caret movement.
func (s *Session) Dispatch(ev KeyEvent) Focus {
	atStart, atEnd := s.lineFlags()
	in := KeyInput{
		Event:       ev,
		Selection:   Selection{Block: s.block, Start: s.anchor, End: s.head},
		AtTextStart: atStart,
		AtTextEnd:   atEnd,
	}
	before := s.Doc.Len()
	doc, menu, f := DispatchKey(s.Doc, in, s.Menu)
	s.Doc, s.Menu = doc, menu
	if !f.Handled {
		s.fallback(ev)
		s.log.Debug("key not handled by block machine", zap.Stringer("key", ev))
		return f
	}
	s.applyFocus(f)
	if after := s.Doc.Len(); after != before {
		s.log.Info("block structure changed", zap.Stringer("key", ev), zap.Int("blocks", after), zap.Int("active", s.block))
	}
	return f
}

func (s *Session) applyFocus(f Focus) {
	if !s.Doc.ValidIndex(f.Block) {
		return
	}
	s.block = f.Block
	s.Doc.Active = f.Block
	if f.Caret == CaretRange {
		s.anchor, s.head = f.Offset, f.End
		return
	}
	off := clampInt(f.Resolve(s.Doc), 0, s.blockLen(f.Block))
	s.anchor, s.head = off, off
}

func (s *Session) fallback(ev KeyEvent) {
	extend := ev.Modifiers.Has(ModShift)
	switch ev.Key {
	case KeyArrowUp:
		s.moveVertical(-1, extend)
	case KeyArrowDown:
		s.moveVertical(1, extend)
	}
}

func (s *Session) moveVertical(dir int, extend bool) {
	lines := strings.Split(s.blockText(), "\n")
	line, col := 0, s.head
	for line < len(lines)-1 && col > len([]rune(lines[line])) {
		col -= len([]rune(lines[line])) + 1
		line++
	}
	target := line + dir
	if target < 0 || target >= len(lines) {
		if dir < 0 {
			s.moveHead(0, extend)
		} else {
			s.moveHead(s.blockLen(s.block), extend)
		}
		return
	}
	offset := 0
	for i := 0; i < target; i++ {
		offset += len([]rune(lines[i])) + 1
	}
	s.moveHead(offset+min(col, len([]rune(lines[target]))), extend)
}

func (s *Session) Toggle(style markup.Style) {
	sel := s.Selection()
	if sel.Collapsed() {
		s.log.Debug("toggle ignored on collapsed selection", zap.Stringer("style", style.Kind))
		return
	}
	doc, restored := ToggleFormat(s.Doc, sel, style)
	s.Doc = doc
	s.anchor, s.head = restored.Start, restored.End
}

func (s *Session) ActiveStyles() markup.StyleSet {
	return ActiveStyles(s.Doc, s.Selection())
}

// SelectionLinked reports whether a link covers the whole selection.
func (s *Session) SelectionLinked() bool {
	sel := s.Selection()
	if !s.Doc.ValidIndex(sel.Block) || !s.Doc.Blocks[sel.Block].HasContent() {
		return false
	}
	return markup.Covered(s.Doc.Blocks[sel.Block].Content, sel.Start, sel.End, markup.Link)
}

func (s *Session) LinkAtCaret() (string, bool) {
	if !s.Doc.ValidIndex(s.block) || !s.Doc.Blocks[s.block].HasContent() {
		return "", false
	}
	return markup.LinkAt(s.Doc.Blocks[s.block].Content, s.head)
}

func (s *Session) SelectedText() string {
	return SelectionText(s.Doc, s.Selection())
}

// InsertText replaces the selection with text, as a paste does.
func (s *Session) InsertText(text string) {
	if text == "" || !s.Doc.ValidIndex(s.block) || !s.Doc.Blocks[s.block].HasContent() {
		return
	}
	sel := s.Selection()
	tree, caret := markup.ReplaceRange(s.Doc.Blocks[s.block].Content, sel.Start, sel.End, text)
	s.Doc = UpdateBlockContent(s.Doc, s.block, tree)
	s.anchor, s.head = caret, caret
}

func (s *Session) DeleteSelection() {
	sel := s.Selection()
	if sel.Collapsed() || !s.Doc.ValidIndex(s.block) {
		return
	}
	s.Doc = UpdateBlockContent(s.Doc, s.block, markup.DeleteRange(s.Doc.Blocks[s.block].Content, sel.Start, sel.End))
	s.anchor, s.head = sel.Start, sel.Start
}

// PasteImage puts url into the active image block when it has none yet,
// otherwise into a new image block after the active one.
func (s *Session) PasteImage(url, alt string) {
	if b, ok := s.Doc.ActiveBlock(); ok && b.Kind == postdoc.BlockKindImage && b.URL == "" {
		s.Doc = UpdateImage(s.Doc, s.block, url, alt)
		return
	}
	img := postdoc.NewBlock(postdoc.BlockKindImage, 0)
	img.URL, img.Alt = url, alt
	s.Doc = InsertBlock(s.Doc, img, s.block)
	s.block, s.anchor, s.head = s.Doc.Active, 0, 0
	s.log.Info("image block inserted", zap.Int("index", s.block))
}

func (s *Session) SetImage(url, alt string) {
	s.Doc = UpdateImage(s.Doc, s.block, url, alt)
}

func (s *Session) SetCodeLanguage(language string) {
	s.Doc = SetCodeLanguage(s.Doc, s.block, language)
}

func (s *Session) SetTitle(title string) {
	s.Doc = UpdateTitle(s.Doc, title)
}

func (s *Session) Convert(kind postdoc.BlockKind, level int) {
	s.Doc = ConvertBlockType(s.Doc, s.block, kind, level)
	s.clampSelection()
	s.log.Info("block converted", zap.Int("index", s.block), zap.Stringer("kind", kind))
}

func (s *Session) Duplicate() {
	s.Doc = DuplicateBlock(s.Doc, s.block)
	s.SetCaret(s.Doc.Active, 0)
}

func (s *Session) DeleteActive() {
	s.Doc = DeleteBlock(s.Doc, s.block)
	s.SetCaret(s.Doc.Active, s.blockLen(s.Doc.Active))
}

// MoveActive shifts the active block up (delta < 0) or down.
func (s *Session) MoveActive(delta int) {
	dst := s.block + delta
	if !s.Doc.ValidIndex(dst) {
		s.log.Debug("reorder ignored", zap.Int("from", s.block), zap.Int("to", dst))
		return
	}
	s.Doc = ReorderBlock(s.Doc, s.block, dst)
	s.block = s.Doc.Active
}

func (s *Session) clampSelection() {
	n := s.blockLen(s.block)
	s.anchor = clampInt(s.anchor, 0, n)
	s.head = clampInt(s.head, 0, n)
}

package app

import (
	"image/color"
	"math"
	"strings"
	"unicode/utf8"

	"golang.org/x/image/font"

	"postedit/internal/highlight"
	"postedit/internal/render"
	"postedit/pkg/markup"
	"postedit/pkg/postdoc"
)

var headerSizes = [...]float64{1: 28, 2: 22, 3: 18}

type piece struct {
	text      string
	face      font.Face
	color     color.RGBA
	fill      color.RGBA
	underline bool
}

type segment struct {
	start     int
	end       int
	text      string
	face      font.Face
	width     int
	color     color.RGBA
	fill      color.RGBA
	underline bool
}

type lineLayout struct {
	block    int
	start    int
	runes    int
	segments []segment
	docX     int
	docY     int
	viewX    int
	y        int
	baseline int
	height   int
	ascent   int
	width    int
}

func (l lineLayout) end() int {
	return l.start + l.runes
}

type blockLayout struct {
	index int
	kind  postdoc.BlockKind
	docY  int
	y     int
	h     int
}

func (a *App) scale() float32 {
	return a.uiScales[a.uiScaleIdx]
}

func (a *App) dp(v int) int {
	return int(float32(v) * a.scale())
}

func (a *App) baseStyle(b postdoc.Block) faceStyle {
	size := a.cfg.Editor.FontSize
	switch b.Kind {
	case postdoc.BlockKindHeader:
		return faceStyle{size: size * headerSizes[postdoc.ClampLevel(b.Level)] / 16, bold: true}
	case postdoc.BlockKindCode:
		return faceStyle{size: size * 0.9, mono: true}
	}
	return faceStyle{size: size}
}

func (a *App) contentPieces(b postdoc.Block) []piece {
	base := a.baseStyle(b)
	if b.Kind == postdoc.BlockKindCode {
		face := a.fonts.face(base, a.scale())
		var out []piece
		for _, tok := range highlight.Tokens(b.Text(), b.Language, a.cfg.Editor.CodeTheme, a.theme.Text) {
			st := base
			st.bold = tok.Bold
			out = append(out, piece{text: tok.Text, face: a.fonts.face(st, a.scale()), color: tok.Color})
		}
		if len(out) == 0 {
			out = append(out, piece{face: face, color: a.theme.Text})
		}
		return out
	}
	var out []piece
	for _, r := range markup.Runs(b.Content) {
		st := base
		p := piece{text: r.Text, color: a.theme.Text}
		if r.Styles.Has(markup.Bold) {
			st.bold = true
		}
		if r.Styles.Has(markup.Italic) {
			st.italic = true
		}
		if r.Styles.Has(markup.Code) {
			st.mono = true
			st.size *= 0.9
			p.fill = a.theme.InlineCode
		}
		if r.Styles.Has(markup.Highlight) {
			p.fill = a.theme.Highlight
		}
		if r.Styles.Has(markup.Link) {
			p.color = a.theme.Link
			p.underline = true
		}
		p.face = a.fonts.face(st, a.scale())
		out = append(out, p)
	}
	return out
}

// layoutText breaks pieces into lines at newlines, starting at docY.
func (a *App) layoutText(block int, pieces []piece, base font.Face, docX, docY int) ([]lineLayout, int) {
	var lines []lineLayout
	pos := 0
	cur := lineLayout{block: block, docX: docX}
	gap := max(a.dp(4), 2)
	flush := func() {
		m := base.Metrics()
		asc, des := m.Ascent.Round(), m.Descent.Round()
		for _, s := range cur.segments {
			sm := s.face.Metrics()
			asc = max(asc, sm.Ascent.Round())
			des = max(des, sm.Descent.Round())
		}
		cur.ascent = asc
		cur.height = max(asc+des+a.dp(6), 18)
		cur.docY = docY
		docY += cur.height + gap
		lines = append(lines, cur)
	}
	for _, p := range pieces {
		for i, part := range strings.Split(p.text, "\n") {
			if i > 0 {
				flush()
				pos++
				cur = lineLayout{block: block, start: pos, docX: docX}
			}
			if part == "" {
				continue
			}
			n := utf8.RuneCountInString(part)
			w := measure(p.face, part)
			cur.segments = append(cur.segments, segment{
				start:     cur.runes,
				end:       cur.runes + n,
				text:      part,
				face:      p.face,
				width:     w,
				color:     p.color,
				fill:      p.fill,
				underline: p.underline,
			})
			cur.runes += n
			cur.width += w
			pos += n
		}
	}
	flush()
	return lines, docY
}

func (a *App) objectHeight(b postdoc.Block, width int) int {
	if b.Kind == postdoc.BlockKindSeparator {
		return a.dp(28)
	}
	if img := a.imageFor(b.URL); img != nil {
		iw, ih := img.Bounds().Dx(), img.Bounds().Dy()
		if iw > 0 && ih > 0 {
			s := math.Min(1, float64(width)/float64(iw))
			return min(int(float64(ih)*s), a.dp(420)) + a.dp(8)
		}
	}
	return a.dp(72)
}

func (a *App) layoutDocument() {
	a.lines = a.lines[:0]
	a.blocks = a.blocks[:0]
	if a.contentRect.Empty() {
		return
	}
	docY := 4
	blockGap := max(a.dp(10), 6)
	maxWidth := 0
	for i, b := range a.session.Doc.Blocks {
		bl := blockLayout{index: i, kind: b.Kind, docY: docY}
		if b.HasContent() {
			docX := 8
			if b.Kind == postdoc.BlockKindCode {
				docX = 8 + a.dp(12)
				docY += a.dp(8)
			}
			base := a.fonts.face(a.baseStyle(b), a.scale())
			lines, next := a.layoutText(i, a.contentPieces(b), base, docX, docY)
			for _, l := range lines {
				maxWidth = max(maxWidth, l.docX+l.width)
			}
			a.lines = append(a.lines, lines...)
			docY = next
			if b.Kind == postdoc.BlockKindCode {
				docY += a.dp(8)
			}
		} else {
			h := a.objectHeight(b, a.contentRect.W-24)
			a.lines = append(a.lines, lineLayout{block: i, docX: 8, docY: docY, height: h})
			docY += h
		}
		bl.h = docY - bl.docY
		a.blocks = append(a.blocks, bl)
		docY += blockGap
	}

	a.maxY = math.Max(0, float64(docY+6-a.contentRect.H))
	a.maxX = math.Max(0, float64(maxWidth-(a.contentRect.W-12)))
	a.clampScroll()

	for i := range a.lines {
		l := &a.lines[i]
		l.y = a.contentRect.Y + l.docY - int(a.scrollY)
		l.viewX = a.contentRect.X + l.docX - int(a.scrollX)
		l.baseline = l.y + l.ascent + 1
	}
	for i := range a.blocks {
		a.blocks[i].y = a.contentRect.Y + a.blocks[i].docY - int(a.scrollY)
	}
}

func (a *App) blockRect(i int) render.Rect {
	if i < 0 || i >= len(a.blocks) {
		return render.Rect{}
	}
	b := a.blocks[i]
	return render.Rect{X: a.contentRect.X + 2, Y: b.y, W: a.contentRect.W - 4, H: b.h}
}

func (a *App) hitTest(x, y int) (int, int) {
	if len(a.lines) == 0 {
		return a.session.ActiveBlock(), a.session.Head()
	}
	first := a.lines[0]
	if y <= first.y {
		return first.block, first.start + a.runeAtX(first, x-first.viewX)
	}
	for _, l := range a.lines {
		if y >= l.y && y <= l.y+l.height {
			return l.block, l.start + a.runeAtX(l, x-l.viewX)
		}
	}
	for i := len(a.lines) - 1; i >= 0; i-- {
		if l := a.lines[i]; y > l.y {
			return l.block, l.start + a.runeAtX(l, x-l.viewX)
		}
	}
	return first.block, first.start
}

func (a *App) lineAdvance(l lineLayout, rel int) int {
	if rel <= 0 {
		return 0
	}
	if rel >= l.runes {
		return l.width
	}
	advance := 0
	for _, s := range l.segments {
		if rel >= s.end {
			advance += s.width
			continue
		}
		if rel > s.start {
			advance += measure(s.face, string([]rune(s.text)[:rel-s.start]))
		}
		break
	}
	return advance
}

func (a *App) runeAtX(l lineLayout, relX int) int {
	if relX <= 0 {
		return 0
	}
	x := 0
	for _, s := range l.segments {
		if relX > x+s.width {
			x += s.width
			continue
		}
		pos := s.start
		for _, r := range s.text {
			rw := measure(s.face, string(r))
			if relX < x+rw/2 {
				return pos
			}
			x += rw
			pos++
		}
		return s.end
	}
	return l.runes
}

func (a *App) caretLine(block, offset int) (lineLayout, bool) {
	for _, l := range a.lines {
		if l.block == block && offset >= l.start && offset <= l.end() {
			return l, true
		}
	}
	return lineLayout{}, false
}

func (a *App) clampScroll() {
	a.scrollX = math.Min(math.Max(a.scrollX, 0), a.maxX)
	a.scrollY = math.Min(math.Max(a.scrollY, 0), a.maxY)
}

func (a *App) ensureCaretVisible() {
	if a.contentRect.Empty() {
		return
	}
	l, ok := a.caretLine(a.session.ActiveBlock(), a.session.Head())
	if !ok {
		return
	}
	top, bottom := float64(l.docY), float64(l.docY+l.height)
	if top < a.scrollY {
		a.scrollY = top
	}
	if bottom > a.scrollY+float64(a.contentRect.H) {
		a.scrollY = bottom - float64(a.contentRect.H)
	}
	caretX := float64(l.docX + a.lineAdvance(l, a.session.Head()-l.start))
	viewW := float64(a.contentRect.W - 12)
	padding := 16.0
	if caretX < a.scrollX+padding {
		a.scrollX = math.Max(0, caretX-padding)
	}
	if caretX > a.scrollX+viewW-padding {
		a.scrollX = caretX - viewW + padding
	}
	a.clampScroll()
}

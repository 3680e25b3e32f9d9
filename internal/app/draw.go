package app

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"

	"postedit/internal/editor"
	"postedit/internal/render"
	"postedit/internal/ui"
	"postedit/pkg/markup"
	"postedit/pkg/postdoc"
)

var (
	labelColor  = color.RGBA{R: 44, G: 58, B: 82, A: 255}
	statusColor = color.RGBA{R: 42, G: 56, B: 80, A: 255}
	errorColor  = color.RGBA{R: 165, G: 35, B: 35, A: 255}
	dialogLine  = color.RGBA{R: 160, G: 176, B: 198, A: 255}
	dimOverlay  = color.RGBA{A: 90}
)

func (a *App) Draw(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if a.frameBuffer == nil || a.frameBuffer.W != w || a.frameBuffer.H != h {
		a.frameBuffer = render.NewFrameBuffer(w, h)
		a.canvas = ebiten.NewImage(w, h)
	}

	a.layout = ui.DrawShell(a.frameBuffer, a.theme, a.scale())
	a.contentRect = a.layout.Content
	menuFace := a.uiFace(11, false)
	toolbarFace := a.uiFace(11, false)
	statusFace := a.uiFace(10, false)

	a.layoutTopActions(menuFace)
	a.layoutToolbar(toolbarFace)
	a.layoutDocument()
	a.drawBlockChrome()
	a.drawSelectionAndCaret()
	a.drawScrollbars()

	a.canvas.WritePixels(a.frameBuffer.Pixels)
	screen.DrawImage(a.canvas, nil)

	a.drawButtonLabels(screen, menuFace, a.topActions, color.RGBA{R: 244, G: 248, B: 255, A: 255})
	a.drawButtonLabels(screen, toolbarFace, a.toolbarActions, labelColor)
	a.drawTitle(screen)
	a.drawDocumentText(screen)
	a.drawCommandMenu(screen)
	a.drawStatus(screen, statusFace, h)

	if a.prompt.active() {
		a.drawPrompt(screen, w, h)
	}
	if a.showHelp {
		a.drawHelpOverlay(screen, toolbarFace)
	}
}

func (a *App) uiFace(size int, bold bool) font.Face {
	return a.fonts.face(faceStyle{size: float64(size), bold: bold}, a.scale())
}

func (a *App) layoutTopActions(face font.Face) {
	a.topActions = a.topActions[:0]
	x := 10
	y := 4
	h := max(a.layout.Menu.H-8, 24)
	buttons := []actionButton{
		{id: "new", label: "New"},
		{id: "open", label: "Open"},
		{id: "save", label: "Save"},
		{id: "save_as", label: "Save As"},
		{id: "compress", label: "Compress", active: a.compression},
		{id: "encrypt", label: "Encrypt", active: a.encryption},
		{id: "scale_down", label: "A-"},
		{id: "scale_up", label: "A+"},
		{id: "help", label: "Help", active: a.showHelp},
	}
	mx, my := ebiten.CursorPosition()
	for _, btn := range buttons {
		w := max(measure(face, btn.label)+28, 64)
		r := render.Rect{X: x, Y: y, W: w, H: h}
		bg := color.RGBA{R: 46, G: 84, B: 145, A: 255}
		if btn.active {
			bg = color.RGBA{R: 71, G: 116, B: 186, A: 255}
		}
		if r.Contains(mx, my) {
			bg = color.RGBA{R: 58, G: 102, B: 172, A: 255}
		}
		a.frameBuffer.FillRect(r, bg)
		a.frameBuffer.StrokeRect(r, 1, color.RGBA{R: 27, G: 54, B: 97, A: 255})
		btn.r = r
		a.topActions = append(a.topActions, btn)
		x += w + 8
	}
}

func (a *App) layoutToolbar(face font.Face) {
	a.toolbarActions = a.toolbarActions[:0]
	x := 14
	y := a.layout.Toolbar.Y + 8
	h := max(a.layout.Toolbar.H-16, 24)
	mx, my := ebiten.CursorPosition()

	styles := a.session.ActiveStyles()
	block, _ := a.session.Doc.ActiveBlock()
	isKind := func(k postdoc.BlockKind, level int) bool {
		return block.Kind == k && (level == 0 || block.Level == level)
	}

	add := func(id, label string, active bool) {
		w := max(measure(face, label)+20, 40)
		r := render.Rect{X: x, Y: y, W: w, H: h}
		bg := color.RGBA{R: 241, G: 245, B: 251, A: 255}
		if active {
			bg = a.theme.ButtonActive
		}
		if r.Contains(mx, my) {
			bg = a.theme.ButtonHover
		}
		a.frameBuffer.FillRect(r, bg)
		a.frameBuffer.StrokeRect(r, 1, color.RGBA{R: 181, G: 194, B: 214, A: 255})
		a.toolbarActions = append(a.toolbarActions, actionButton{id: id, label: label, r: r, active: active})
		x += w + 6
	}

	add("bold", "Bold", styles.Has(markup.Bold))
	add("italic", "Italic", styles.Has(markup.Italic))
	add("code", "Code", styles.Has(markup.Code))
	add("highlight", "Highlight", styles.Has(markup.Highlight))
	add("link", "Link", styles.Has(markup.Link))
	x += 10
	add("paragraph", "P", isKind(postdoc.BlockKindParagraph, 0))
	add("h1", "H1", isKind(postdoc.BlockKindHeader, 1))
	add("h2", "H2", isKind(postdoc.BlockKindHeader, 2))
	add("h3", "H3", isKind(postdoc.BlockKindHeader, 3))
	add("code_block", "</>", isKind(postdoc.BlockKindCode, 0))
	add("image", "Image", isKind(postdoc.BlockKindImage, 0))
	add("separator", "---", isKind(postdoc.BlockKindSeparator, 0))
	if block.Kind == postdoc.BlockKindCode {
		lang := block.Language
		if lang == "" {
			lang = "plain"
		}
		add("language", lang, false)
	}
	x += 10
	add("up", "Up", false)
	add("down", "Down", false)
	add("duplicate", "Dup", false)
	add("delete", "Del", false)
}

func (a *App) drawButtonLabels(screen *ebiten.Image, face font.Face, buttons []actionButton, clr color.RGBA) {
	ascent := face.Metrics().Ascent.Round()
	descent := face.Metrics().Descent.Round()
	for _, btn := range buttons {
		tw := measure(face, btn.label)
		x := btn.r.X + (btn.r.W-tw)/2
		baseline := btn.r.Y + (btn.r.H+ascent+descent)/2 - descent
		text.Draw(screen, btn.label, face, x, baseline, clr)
	}
}

func (a *App) drawTitle(screen *ebiten.Image) {
	face := a.fonts.face(faceStyle{size: 24, bold: true}, a.scale())
	title, clr := a.session.Doc.Title, a.theme.Text
	if title == "" {
		title, clr = "Untitled post", a.theme.MutedText
	}
	r := a.layout.Title
	baseline := r.Y + (r.H+face.Metrics().Ascent.Round())/2 - 2
	text.Draw(screen, title, face, r.X+8, baseline, clr)
}

// drawBlockChrome paints block backgrounds and the active block marker into
// the frame buffer.
func (a *App) drawBlockChrome() {
	active := a.session.ActiveBlock()
	for _, bl := range a.blocks {
		r := a.blockRect(bl.index)
		isObject := !a.session.Doc.Blocks[bl.index].HasContent()
		if bl.index == active && isObject {
			a.fillWithinContent(r, a.theme.ActiveBlock)
		}
		switch bl.kind {
		case postdoc.BlockKindCode:
			a.fillWithinContent(r, a.theme.CodeBackground)
			a.strokeWithinContent(r, a.theme.Separator)
		case postdoc.BlockKindSeparator:
			line := render.Rect{X: r.X + a.dp(8), Y: r.Y + r.H/2, W: r.W - a.dp(16), H: max(a.dp(2), 1)}
			a.fillWithinContent(line, a.theme.Separator)
		case postdoc.BlockKindImage:
			a.strokeWithinContent(r.Inset(a.dp(2)), a.theme.Border)
		}
		if bl.index != active {
			continue
		}
		if isObject {
			a.strokeWithinContent(r, a.theme.Accent)
		}
		marker := render.Rect{X: a.contentRect.X - a.dp(8), Y: r.Y, W: max(a.dp(3), 2), H: r.H}
		a.frameBuffer.FillRectClipped(marker, a.layout.Page, a.theme.Accent)
	}
}

func (a *App) drawSelectionAndCaret() {
	sel := a.session.Selection()
	if !sel.Collapsed() {
		for _, l := range a.lines {
			if l.block != sel.Block {
				continue
			}
			from, to := max(sel.Start, l.start), min(sel.End, l.end())
			if to <= from {
				continue
			}
			x0 := l.viewX + a.lineAdvance(l, from-l.start)
			x1 := l.viewX + a.lineAdvance(l, to-l.start)
			a.fillWithinContent(render.Rect{X: x0, Y: l.y + 1, W: x1 - x0, H: l.height - 2}, a.theme.Selection)
		}
		return
	}
	if (a.frameTick/30)%2 == 1 || a.prompt.active() {
		return
	}
	b, ok := a.session.Doc.ActiveBlock()
	if !ok || !b.HasContent() {
		return
	}
	if l, ok := a.caretLine(sel.Block, sel.Start); ok {
		x := l.viewX + a.lineAdvance(l, sel.Start-l.start)
		a.fillWithinContent(render.Rect{X: x, Y: l.y + 2, W: max(a.dp(1), 1), H: max(2, l.height-4)}, a.theme.Caret)
	}
}

func (a *App) drawScrollbars() {
	c := a.contentRect
	if c.Empty() {
		return
	}
	track := color.RGBA{R: 231, G: 236, B: 244, A: 255}
	thumb := color.RGBA{R: 156, G: 170, B: 190, A: 255}
	if a.maxY > 0 {
		tr := render.Rect{X: c.X + c.W - 6, Y: c.Y + 2, W: 4, H: c.H - 8}
		a.frameBuffer.FillRect(tr, track)
		thumbH := max(24, int(float64(tr.H)*float64(c.H)/(float64(c.H)+a.maxY)))
		thumbY := tr.Y + int((a.scrollY/a.maxY)*float64(tr.H-thumbH))
		a.frameBuffer.FillRect(render.Rect{X: tr.X, Y: thumbY, W: 4, H: thumbH}, thumb)
	}
	if a.maxX > 0 {
		tr := render.Rect{X: c.X + 2, Y: c.Y + c.H - 6, W: c.W - 8, H: 4}
		a.frameBuffer.FillRect(tr, track)
		thumbW := max(24, int(float64(tr.W)*float64(c.W)/(float64(c.W)+a.maxX)))
		thumbX := tr.X + int((a.scrollX/a.maxX)*float64(tr.W-thumbW))
		a.frameBuffer.FillRect(render.Rect{X: thumbX, Y: tr.Y, W: thumbW, H: 4}, thumb)
	}
}

func (a *App) drawDocumentText(screen *ebiten.Image) {
	c := a.contentRect
	if c.Empty() {
		return
	}
	if a.docLayer == nil || a.docLayer.Bounds().Dx() != c.W || a.docLayer.Bounds().Dy() != c.H {
		a.docLayer = ebiten.NewImage(max(1, c.W), max(1, c.H))
	}
	a.docLayer.Clear()

	for _, l := range a.lines {
		relY := l.y - c.Y
		if relY+l.height < 0 || relY > c.H {
			continue
		}
		b := a.session.Doc.Blocks[l.block]
		if !b.HasContent() {
			if b.Kind == postdoc.BlockKindImage {
				a.drawImageBlock(b, l.viewX-c.X, relY, c.W-24, l.height)
			}
			continue
		}
		if l.runes == 0 && b.Content.IsEmpty() && l.block == a.session.ActiveBlock() && b.Kind != postdoc.BlockKindCode {
			hint := a.fonts.face(a.baseStyle(b), a.scale())
			text.Draw(a.docLayer, "Type / for commands", hint, l.viewX-c.X, l.baseline-c.Y, a.theme.MutedText)
			continue
		}
		x := l.viewX - c.X
		baseline := l.baseline - c.Y
		for _, seg := range l.segments {
			m := seg.face.Metrics()
			if seg.fill.A > 0 && seg.width > 0 {
				top := baseline - m.Ascent.Round()
				a.drawFilledRectOnScreen(a.docLayer, x, top, seg.width, max(m.Ascent.Round()+m.Descent.Round(), 12), seg.fill)
			}
			text.Draw(a.docLayer, seg.text, seg.face, x, baseline, seg.color)
			if seg.underline {
				uy := float64(baseline + max(1, m.Descent.Round()/2))
				ebitenutil.DrawLine(a.docLayer, float64(x), uy, float64(x+seg.width), uy, seg.color)
			}
			x += seg.width
		}
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(c.X), float64(c.Y))
	screen.DrawImage(a.docLayer, op)
}

func (a *App) drawImageBlock(b postdoc.Block, x, y, maxW, h int) {
	if img := a.imageFor(b.URL); img != nil {
		iw, ih := img.Bounds().Dx(), img.Bounds().Dy()
		s := math.Min(1, float64(maxW)/float64(iw))
		s = math.Min(s, float64(h-a.dp(8))/float64(ih))
		op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
		op.GeoM.Scale(s, s)
		op.GeoM.Translate(float64(x), float64(y+a.dp(4)))
		a.docLayer.DrawImage(img, op)
		return
	}
	face := a.uiFace(11, false)
	label := "Empty image. Use Image in the toolbar or paste a picture."
	switch {
	case postdoc.IsDataURL(b.URL):
		label = "Embedded image could not be decoded"
	case b.URL != "":
		label = "Image: " + b.URL
	}
	if b.Alt != "" {
		label += " (" + b.Alt + ")"
	}
	text.Draw(a.docLayer, label, face, x+a.dp(8), y+h/2+face.Metrics().Ascent.Round()/2, a.theme.MutedText)
}

func (a *App) drawCommandMenu(screen *ebiten.Image) {
	a.menuItems = a.menuItems[:0]
	if !a.session.Menu.Open {
		return
	}
	l, ok := a.caretLine(a.session.ActiveBlock(), a.session.Head())
	if !ok {
		return
	}
	face := a.uiFace(11, false)
	itemH := a.dp(26)
	w := a.dp(190)
	h := itemH*len(editor.Commands) + a.dp(8)
	x := l.viewX
	y := l.y + l.height + 2
	if y+h > a.layout.Status.Y {
		y = max(l.y-h-2, 0)
	}
	box := render.Rect{X: x, Y: y, W: w, H: h}
	a.drawFilledRectOnScreen(screen, box.X, box.Y, box.W, box.H, a.theme.MenuBackground)
	a.strokeOnScreen(screen, box, dialogLine)
	for i, cmd := range editor.Commands {
		r := render.Rect{X: x + 4, Y: y + a.dp(4) + i*itemH, W: w - 8, H: itemH}
		if i == a.session.Menu.Selected {
			a.drawFilledRectOnScreen(screen, r.X, r.Y, r.W, r.H, a.theme.MenuSelected)
		}
		text.Draw(screen, cmd.Label, face, r.X+a.dp(10), r.Y+(r.H+face.Metrics().Ascent.Round())/2-1, labelColor)
		a.menuItems = append(a.menuItems, r)
	}
}

func (a *App) drawStatus(screen *ebiten.Image, face font.Face, h int) {
	name := a.filePath
	if name == "" {
		name = "Untitled"
	} else {
		name = filepath.Base(name)
	}
	kind := "no block"
	if b, ok := a.session.Doc.ActiveBlock(); ok {
		kind = blockLabel(b)
	}
	styles := "plain"
	if set := a.session.ActiveStyles(); set != 0 {
		styles = strings.Trim(set.String(), "{}")
	}
	var flags []string
	if a.compression {
		flags = append(flags, "compressed")
	}
	if a.encryption {
		flags = append(flags, "encrypted")
	}
	if len(flags) == 0 {
		flags = append(flags, "raw")
	}
	left := fmt.Sprintf("[ Block %d/%d ] [ %s ] [ Caret %d ] [ %s ]",
		a.session.ActiveBlock()+1, a.session.Doc.Len(), kind, a.session.Head(), styles)
	right := fmt.Sprintf("[ %s ] [ %s ] [ %s ]", name, strings.Join(flags, ", "), a.status)
	baseline := h - a.layout.Status.H/2 + face.Metrics().Ascent.Round()/2
	text.Draw(screen, left, face, 12, baseline, statusColor)
	text.Draw(screen, right, face, max(measure(face, left)+36, a.dp(360)), baseline, statusColor)
}

func blockLabel(b postdoc.Block) string {
	switch b.Kind {
	case postdoc.BlockKindHeader:
		return fmt.Sprintf("Heading %d", postdoc.ClampLevel(b.Level))
	case postdoc.BlockKindCode:
		if b.Language != "" {
			return "Code " + b.Language
		}
		return "Code"
	}
	k := b.Kind.String()
	return strings.ToUpper(k[:1]) + k[1:]
}

func (a *App) layoutPromptBounds(w, h int) {
	pw := min(a.dp(460), w-40)
	ph := min(a.dp(200), h-40)
	px := (w - pw) / 2
	py := (h - ph) / 2
	a.prompt.box = render.Rect{X: px, Y: py, W: pw, H: ph}
	a.prompt.field = render.Rect{X: px + 20, Y: py + a.dp(84), W: pw - 40, H: a.dp(34)}
	a.prompt.ok = render.Rect{X: px + pw - a.dp(186), Y: py + ph - a.dp(46), W: a.dp(80), H: a.dp(30)}
	a.prompt.cancel = render.Rect{X: px + pw - a.dp(96), Y: py + ph - a.dp(46), W: a.dp(80), H: a.dp(30)}
}

func (a *App) drawPrompt(screen *ebiten.Image, w, h int) {
	a.layoutPromptBounds(w, h)
	p := a.prompt
	a.drawFilledRectOnScreen(screen, 0, 0, w, h, dimOverlay)
	a.drawFilledRectOnScreen(screen, p.box.X, p.box.Y, p.box.W, p.box.H, a.theme.MenuBackground)
	a.strokeOnScreen(screen, p.box, dialogLine)

	titleFace := a.uiFace(12, true)
	labelFace := a.uiFace(10, false)
	text.Draw(screen, p.title, titleFace, p.box.X+20, p.box.Y+a.dp(30), color.RGBA{R: 24, G: 38, B: 56, A: 255})
	if p.path != "" {
		text.Draw(screen, "File: "+filepath.Base(p.path), labelFace, p.box.X+20, p.box.Y+a.dp(54), labelColor)
	}
	text.Draw(screen, p.label, labelFace, p.box.X+20, p.box.Y+a.dp(74), labelColor)

	a.drawFilledRectOnScreen(screen, p.field.X, p.field.Y, p.field.W, p.field.H, color.RGBA{R: 244, G: 249, B: 255, A: 255})
	a.strokeOnScreen(screen, p.field, color.RGBA{R: 77, G: 134, B: 205, A: 255})
	shown := p.input
	if p.masked {
		shown = strings.Repeat("*", utf8.RuneCountInString(p.input))
	}
	for shown != "" && measure(labelFace, shown) > p.field.W-16 {
		_, size := utf8.DecodeRuneInString(shown)
		shown = shown[size:]
	}
	baseline := p.field.Y + (p.field.H+labelFace.Metrics().Ascent.Round())/2 - 1
	text.Draw(screen, shown, labelFace, p.field.X+8, baseline, statusColor)
	if (a.frameTick/30)%2 == 0 {
		cx := float64(p.field.X + 8 + measure(labelFace, shown))
		ebitenutil.DrawLine(screen, cx, float64(p.field.Y+7), cx, float64(p.field.Y+p.field.H-7), a.theme.Caret)
	}
	if p.err != "" {
		text.Draw(screen, p.err, labelFace, p.box.X+20, p.field.Y+p.field.H+a.dp(22), errorColor)
	}

	okLabel := "OK"
	if p.kind == promptPassword {
		okLabel = "Open"
	}
	a.drawFilledRectOnScreen(screen, p.ok.X, p.ok.Y, p.ok.W, p.ok.H, color.RGBA{R: 217, G: 233, B: 250, A: 255})
	a.drawFilledRectOnScreen(screen, p.cancel.X, p.cancel.Y, p.cancel.W, p.cancel.H, color.RGBA{R: 236, G: 241, B: 248, A: 255})
	a.drawButtonLabels(screen, labelFace, []actionButton{
		{label: okLabel, r: p.ok},
		{label: "Cancel", r: p.cancel},
	}, labelColor)
}

func (a *App) drawHelpOverlay(screen *ebiten.Image, face font.Face) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	pw := min(int(float64(w)*0.68), w-40)
	ph := min(int(float64(h)*0.72), h-40)
	a.helpRect = render.Rect{X: (w - pw) / 2, Y: (h - ph) / 2, W: pw, H: ph}
	a.helpClose = render.Rect{X: a.helpRect.X + pw - a.dp(94), Y: a.helpRect.Y + 12, W: a.dp(78), H: a.dp(30)}
	r := a.helpRect

	a.drawFilledRectOnScreen(screen, 0, 0, w, h, dimOverlay)
	a.drawFilledRectOnScreen(screen, r.X, r.Y, r.W, r.H, color.RGBA{R: 250, G: 251, B: 253, A: 255})
	a.strokeOnScreen(screen, r, dialogLine)
	a.drawFilledRectOnScreen(screen, a.helpClose.X, a.helpClose.Y, a.helpClose.W, a.helpClose.H, color.RGBA{R: 236, G: 241, B: 248, A: 255})
	a.drawButtonLabels(screen, face, []actionButton{{label: "Close", r: a.helpClose}}, labelColor)

	text.Draw(screen, "Help", a.uiFace(12, true), r.X+22, r.Y+a.dp(30), color.RGBA{R: 30, G: 45, B: 67, A: 255})
	lines := []string{
		"Ctrl+S: Save | Ctrl+Shift+S: Save As | Ctrl+O: Open | Ctrl+N: New",
		"Ctrl+B / Ctrl+I / Ctrl+E / Ctrl+H: Bold / Italic / Code / Highlight",
		"Ctrl+K: Link the selection, again to remove it",
		"Type / at the start of an empty block to change its type",
		"Type `text` to turn it into inline code",
		"Enter splits a block, Backspace at the start merges it",
		"Alt+Up / Alt+Down: Move block | Ctrl+D: Duplicate block",
		"Ctrl+C / Ctrl+X / Ctrl+V: Copy / Cut / Paste text or images",
		"Click the title to rename the post",
		"Mouse wheel: vertical scroll | Shift+wheel: horizontal",
		"F1 or Esc closes this dialog",
	}
	y := r.Y + a.dp(62)
	labelFace := a.uiFace(10, false)
	for _, l := range lines {
		text.Draw(screen, l, labelFace, r.X+20, y, color.RGBA{R: 48, G: 60, B: 78, A: 255})
		y += a.dp(24)
	}
}

// drawFilledRectOnScreen draws a filled rectangle one horizontal line at a
// time.
func (a *App) drawFilledRectOnScreen(screen *ebiten.Image, x, y, w, h int, c color.RGBA) {
	for yy := y; yy < y+h; yy++ {
		ebitenutil.DrawLine(screen, float64(x), float64(yy), float64(x+w), float64(yy), c)
	}
}

func (a *App) strokeOnScreen(screen *ebiten.Image, r render.Rect, c color.RGBA) {
	x0, y0, x1, y1 := float64(r.X), float64(r.Y), float64(r.X+r.W), float64(r.Y+r.H)
	ebitenutil.DrawLine(screen, x0, y0, x1, y0, c)
	ebitenutil.DrawLine(screen, x0, y1, x1, y1, c)
	ebitenutil.DrawLine(screen, x0, y0, x0, y1, c)
	ebitenutil.DrawLine(screen, x1, y0, x1, y1, c)
}

func (a *App) fillWithinContent(r render.Rect, c color.RGBA) {
	a.frameBuffer.FillRectClipped(r, a.contentRect, c)
}

func (a *App) strokeWithinContent(r render.Rect, c color.RGBA) {
	clip := a.contentRect
	a.frameBuffer.FillRectClipped(render.Rect{X: r.X, Y: r.Y, W: r.W, H: 1}, clip, c)
	a.frameBuffer.FillRectClipped(render.Rect{X: r.X, Y: r.Y + r.H - 1, W: r.W, H: 1}, clip, c)
	a.frameBuffer.FillRectClipped(render.Rect{X: r.X, Y: r.Y, W: 1, H: r.H}, clip, c)
	a.frameBuffer.FillRectClipped(render.Rect{X: r.X + r.W - 1, Y: r.Y, W: 1, H: r.H}, clip, c)
}

package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"postedit/internal/config"
	"postedit/internal/editor"
	"postedit/internal/render"
	"postedit/internal/ui"
	"postedit/pkg/markup"
	"postedit/pkg/postdoc"
)

type actionButton struct {
	id     string
	label  string
	r      render.Rect
	active bool
}

type promptKind uint8

const (
	promptNone promptKind = iota
	promptPassword
	promptEncrypt
	promptLink
	promptLanguage
	promptImage
	promptTitle
)

type prompt struct {
	kind   promptKind
	title  string
	label  string
	input  string
	err    string
	path   string
	masked bool
	box    render.Rect
	field  render.Rect
	ok     render.Rect
	cancel render.Rect
}

func (p prompt) active() bool {
	return p.kind != promptNone
}

type App struct {
	cfg     config.Config
	log     *zap.Logger
	theme   ui.Theme
	session *editor.Session

	frameBuffer *render.FrameBuffer
	canvas      *ebiten.Image
	docLayer    *ebiten.Image

	fonts  fontBank
	images map[string]*ebiten.Image

	uiScales   []float32
	uiScaleIdx int
	filePath   string
	status     string
	frameTick  uint64

	showHelp  bool
	helpRect  render.Rect
	helpClose render.Rect

	topActions     []actionButton
	toolbarActions []actionButton
	menuItems      []render.Rect
	layout         ui.Layout
	contentRect    render.Rect
	lines          []lineLayout
	blocks         []blockLayout

	compression bool
	encryption  bool
	password    string
	prompt      prompt

	scrollX float64
	scrollY float64
	maxX    float64
	maxY    float64

	dragSelecting bool

	screenW int
	screenH int
}

func New(cfg config.Config, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		cfg:            cfg,
		log:            log,
		theme:          ui.DefaultTheme(),
		session:        editor.NewSession(postdoc.New(""), log.Named("session")),
		fonts:          newFontBank(),
		images:         map[string]*ebiten.Image{},
		uiScales:       []float32{1.0, 1.25, 1.5, 2.0},
		status:         "Untitled post",
		topActions:     make([]actionButton, 0, 16),
		toolbarActions: make([]actionButton, 0, 24),
		lines:          make([]lineLayout, 0, 128),
		blocks:         make([]blockLayout, 0, 32),
		compression:    cfg.Storage.Compression,
	}
}

func (a *App) Run() error {
	ebiten.SetWindowTitle(a.cfg.Window.Title)
	ebiten.SetWindowSize(a.cfg.Window.Width, a.cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(640, 420, -1, -1)
	if err := ebiten.RunGame(a); err != nil {
		return fmt.Errorf("run game loop: %w", err)
	}
	return nil
}

// Open loads the document at path, asking for a password when it is
// encrypted.
func (a *App) Open(path string) error {
	path = filepath.Clean(path)
	info, err := postdoc.InspectEnvelope(path)
	if err != nil {
		return err
	}
	if info.Encrypted && a.password == "" {
		a.openPrompt(promptPassword, "Password Required", "Enter password to open "+filepath.Base(path)+":", "", true)
		a.prompt.path = path
		a.status = "Password required to open encrypted post"
		return nil
	}
	return a.loadFile(path, a.password, info)
}

func (a *App) loadFile(path, password string, info postdoc.EnvelopeInfo) error {
	doc, err := postdoc.LoadWithOptions(path, postdoc.LoadOptions{Password: password})
	if err != nil {
		return err
	}
	a.session.Replace(doc)
	a.filePath = path
	a.password = password
	a.compression = info.Wrapped && info.Compressed
	a.encryption = info.Wrapped && info.Encrypted
	a.images = map[string]*ebiten.Image{}
	a.scrollX, a.scrollY = 0, 0
	a.status = "Opened " + filepath.Base(path)
	a.log.Info("document opened", zap.String("path", path), zap.Bool("encrypted", a.encryption), zap.Int("blocks", doc.Len()))
	return nil
}

func (a *App) Update() error {
	a.frameTick++
	mods := currentModifiers()
	ctrl := mods.Command()
	shift := mods.Has(editor.ModShift)
	alt := mods.Has(editor.ModAlt)

	if a.prompt.active() {
		a.updatePrompt(ctrl)
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		a.showHelp = !a.showHelp
	}
	if a.showHelp {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			a.showHelp = false
		}
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			x, y := ebiten.CursorPosition()
			if !a.helpRect.Contains(x, y) || a.helpClose.Contains(x, y) {
				a.showHelp = false
			}
		}
		return nil
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	wheelX, wheelY := ebiten.Wheel()
	if shift && wheelY != 0 {
		a.scrollX -= wheelY * 48
	} else if wheelY != 0 {
		a.scrollY -= wheelY * 42
	}
	if wheelX != 0 {
		a.scrollX -= wheelX * 48
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) {
		a.scrollY += float64(a.contentRect.H) * 0.8
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		a.scrollY -= float64(a.contentRect.H) * 0.8
	}
	a.clampScroll()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		a.handleClick(x, y, shift)
		return nil
	}
	if a.dragSelecting && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if block, offset := a.hitTest(x, y); block == a.session.ActiveBlock() {
			a.session.ExtendTo(offset)
		}
		a.ensureCaretVisible()
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		a.dragSelecting = false
	}

	if ctrl && a.handleShortcut(shift) {
		a.ensureCaretVisible()
		return nil
	}

	for _, ev := range blockKeyEvents(mods) {
		if alt && (ev.Key == editor.KeyArrowUp || ev.Key == editor.KeyArrowDown) {
			delta := 1
			if ev.Key == editor.KeyArrowUp {
				delta = -1
			}
			a.session.MoveActive(delta)
			continue
		}
		if ev.Key == editor.KeyTab && ev.Modifiers == editor.ModNone && a.activeKind() == postdoc.BlockKindCode {
			a.session.InsertText(a.cfg.Editor.TabText)
			continue
		}
		a.session.Dispatch(ev)
	}

	switch {
	case repeating(ebiten.KeyArrowLeft):
		a.session.MoveLeft(shift)
	case repeating(ebiten.KeyArrowRight):
		a.session.MoveRight(shift)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		if ctrl {
			a.session.SetCaret(0, 0)
		} else {
			a.session.MoveLineStart(shift)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		a.session.MoveLineEnd(shift)
	}

	if !ctrl {
		for _, r := range ebiten.AppendInputChars(nil) {
			if r < 0x20 || r == 0x7F || !utf8.ValidRune(r) {
				continue
			}
			a.session.Dispatch(editor.RuneEvent(r))
		}
	}

	a.ensureCaretVisible()
	return nil
}

func (a *App) handleClick(x, y int, shift bool) {
	if i, ok := a.menuItemAt(x, y); ok {
		a.session.Menu.Selected = i
		a.session.Dispatch(editor.SpecialEvent(editor.KeyEnter, editor.ModNone))
		return
	}
	for _, group := range [][]actionButton{a.topActions, a.toolbarActions} {
		for _, btn := range group {
			if btn.r.Contains(x, y) {
				a.invokeAction(btn.id)
				return
			}
		}
	}
	if a.layout.Title.Contains(x, y) {
		a.openPrompt(promptTitle, "Post Title", "Title:", a.session.Doc.Title, false)
		return
	}
	if !a.contentRect.Contains(x, y) {
		return
	}
	block, offset := a.hitTest(x, y)
	a.session.Menu = editor.CommandMenu{}
	if shift && block == a.session.ActiveBlock() {
		a.session.ExtendTo(offset)
	} else {
		a.session.SetCaret(block, offset)
	}
	a.dragSelecting = true
}

func (a *App) menuItemAt(x, y int) (int, bool) {
	if !a.session.Menu.Open {
		return 0, false
	}
	for i, r := range a.menuItems {
		if r.Contains(x, y) {
			return i, true
		}
	}
	return 0, false
}

func (a *App) handleShortcut(shift bool) bool {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		a.invokeAction("new")
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		a.invokeAction("open")
	case inpututil.IsKeyJustPressed(ebiten.KeyS) && shift:
		a.invokeAction("save_as")
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		a.invokeAction("save")
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		a.session.SelectAll()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		a.copySelection(false)
	case inpututil.IsKeyJustPressed(ebiten.KeyX):
		a.copySelection(true)
	case inpututil.IsKeyJustPressed(ebiten.KeyV):
		a.paste()
	case inpututil.IsKeyJustPressed(ebiten.KeyK):
		a.invokeAction("link")
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		a.invokeAction("duplicate")
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyKPAdd):
		a.invokeAction("scale_up")
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract):
		a.invokeAction("scale_down")
	default:
		return false
	}
	return true
}

func (a *App) invokeAction(id string) {
	switch id {
	case "new":
		a.session.Replace(postdoc.New(""))
		a.filePath = ""
		a.password = ""
		a.encryption = false
		a.compression = a.cfg.Storage.Compression
		a.images = map[string]*ebiten.Image{}
		a.scrollX, a.scrollY = 0, 0
		a.status = "New post"
	case "open":
		if err := a.openDocumentDialog(); err != nil {
			a.fail("Open failed", err)
		}
	case "save":
		if err := a.saveDocument(false); err != nil {
			a.fail("Save failed", err)
		}
	case "save_as":
		if err := a.saveDocument(true); err != nil {
			a.fail("Save As failed", err)
		}
	case "compress":
		a.compression = !a.compression
		a.status = fmt.Sprintf("Compression %s", onOff(a.compression))
	case "encrypt":
		if a.encryption {
			a.encryption = false
			a.status = "Encryption off"
			return
		}
		a.openPrompt(promptEncrypt, "Encrypt Post", "Password used when saving:", "", true)
	case "scale_up", "scale_down":
		delta := 1
		if id == "scale_down" {
			delta = -1
		}
		a.bumpUIScale(delta)
		a.status = fmt.Sprintf("UI scale %.0f%%", a.scale()*100)
	case "help":
		a.showHelp = !a.showHelp
	case "bold":
		a.toggle(markup.Bold)
	case "italic":
		a.toggle(markup.Italic)
	case "code":
		a.toggle(markup.Code)
	case "highlight":
		a.toggle(markup.Highlight)
	case "link":
		switch {
		case a.session.Selection().Collapsed():
			a.status = "Select text to link"
		case a.session.SelectionLinked():
			a.session.Toggle(markup.LinkTo(""))
			a.status = "Link removed"
		default:
			href, ok := a.session.LinkAtCaret()
			if !ok {
				href = "https://"
			}
			a.openPrompt(promptLink, "Insert Link", "Link target:", href, false)
		}
	case "paragraph":
		a.session.Convert(postdoc.BlockKindParagraph, 0)
	case "h1", "h2", "h3":
		a.session.Convert(postdoc.BlockKindHeader, int(id[1]-'0'))
	case "code_block":
		a.session.Convert(postdoc.BlockKindCode, 0)
	case "image":
		if b, ok := a.session.Doc.ActiveBlock(); !ok || b.Kind != postdoc.BlockKindImage {
			a.session.Convert(postdoc.BlockKindImage, 0)
		}
		b, _ := a.session.Doc.ActiveBlock()
		a.openPrompt(promptImage, "Image", "Image URL or file path:", b.URL, false)
	case "separator":
		a.session.Convert(postdoc.BlockKindSeparator, 0)
	case "language":
		b, _ := a.session.Doc.ActiveBlock()
		a.openPrompt(promptLanguage, "Code Language", "Language:", b.Language, false)
	case "up":
		a.session.MoveActive(-1)
	case "down":
		a.session.MoveActive(1)
	case "duplicate":
		a.session.Duplicate()
	case "delete":
		a.session.DeleteActive()
	}
}

func (a *App) toggle(kind markup.StyleKind) {
	if a.session.Selection().Collapsed() {
		a.status = "Select text to format"
		return
	}
	a.session.Toggle(markup.StyleOf(kind))
	a.status = fmt.Sprintf("%s %s", kind, onOff(a.session.ActiveStyles().Has(kind)))
}

func (a *App) activeKind() postdoc.BlockKind {
	b, ok := a.session.Doc.ActiveBlock()
	if !ok {
		return postdoc.BlockKindParagraph
	}
	return b.Kind
}

func (a *App) fail(what string, err error) {
	a.status = what + ": " + err.Error()
	a.log.Warn(strings.ToLower(what), zap.Error(err))
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func (a *App) openPrompt(kind promptKind, title, label, initial string, masked bool) {
	a.prompt = prompt{kind: kind, title: title, label: label, input: initial, masked: masked}
	a.dragSelecting = false
}

func (a *App) closePrompt() {
	a.prompt = prompt{}
}

func (a *App) updatePrompt(ctrl bool) {
	limit := 2048
	if a.prompt.masked {
		limit = 128
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.closePrompt()
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		switch {
		case !a.prompt.box.Contains(x, y), a.prompt.cancel.Contains(x, y):
			a.closePrompt()
			return
		case a.prompt.ok.Contains(x, y):
			a.submitPrompt()
			return
		}
	}
	if repeating(ebiten.KeyBackspace) && a.prompt.input != "" {
		_, size := utf8.DecodeLastRuneInString(a.prompt.input)
		a.prompt.input = a.prompt.input[:len(a.prompt.input)-max(size, 1)]
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		if clip, err := readClipboardText(); err == nil {
			a.prompt.input += strings.TrimSpace(clip)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyKPEnter) {
		a.submitPrompt()
		return
	}
	if !ctrl {
		for _, r := range ebiten.AppendInputChars(nil) {
			if r < 0x20 || r == 0x7F || !utf8.ValidRune(r) {
				continue
			}
			a.prompt.input += string(r)
		}
	}
	if utf8.RuneCountInString(a.prompt.input) > limit {
		a.prompt.input = string([]rune(a.prompt.input)[:limit])
	}
}

func (a *App) submitPrompt() {
	p := a.prompt
	input := strings.TrimSpace(p.input)
	switch p.kind {
	case promptPassword:
		info, err := postdoc.InspectEnvelope(p.path)
		if err == nil {
			err = a.loadFile(p.path, p.input, info)
		}
		if errors.Is(err, postdoc.ErrPasswordRequired) || errors.Is(err, postdoc.ErrInvalidPassword) {
			a.prompt.err = "Incorrect password. Try again."
			return
		}
		if err != nil {
			a.fail("Open failed", err)
		}
	case promptEncrypt:
		if p.input == "" {
			a.prompt.err = "Password cannot be empty."
			return
		}
		a.password = p.input
		a.encryption = true
		a.status = "Encryption on"
	case promptLink:
		if input == "" {
			a.prompt.err = "Link target cannot be empty."
			return
		}
		a.session.Toggle(markup.LinkTo(input))
	case promptLanguage:
		a.session.SetCodeLanguage(input)
		if b, _ := a.session.Doc.ActiveBlock(); input != "" && b.Language == "" {
			a.status = "Unknown language " + input
		}
	case promptImage:
		b, _ := a.session.Doc.ActiveBlock()
		a.session.SetImage(input, b.Alt)
	case promptTitle:
		a.session.SetTitle(input)
	}
	a.closePrompt()
}

func (a *App) openDocumentDialog() error {
	path, err := dialog.File().Filter("Post documents", strings.TrimPrefix(a.cfg.Storage.Extension, ".")).Title("Open post").Load()
	if errors.Is(err, dialog.ErrCancelled) {
		return nil
	}
	if err != nil {
		return err
	}
	a.password = ""
	return a.Open(path)
}

func (a *App) saveDocument(saveAs bool) error {
	path := a.filePath
	if saveAs || path == "" {
		p, err := dialog.File().Filter("Post documents", strings.TrimPrefix(a.cfg.Storage.Extension, ".")).Title("Save post").Save()
		if errors.Is(err, dialog.ErrCancelled) {
			return nil
		}
		if err != nil {
			return err
		}
		path = p
		if filepath.Ext(path) == "" {
			path += a.cfg.Storage.Extension
		}
	}
	if path == "" {
		return errors.New("no file selected")
	}
	opts := postdoc.SaveOptions{
		Compression: a.compression,
		Encryption:  postdoc.EncryptionOptions{Enabled: a.encryption, Password: a.password},
	}
	if err := postdoc.SaveWithOptions(path, a.session.Doc, opts); err != nil {
		return err
	}
	a.filePath = path
	a.status = "Saved " + filepath.Base(path)
	a.log.Info("document saved", zap.String("path", path), zap.Bool("compressed", a.compression), zap.Bool("encrypted", a.encryption))
	return nil
}

func (a *App) bumpUIScale(delta int) {
	prev := a.uiScaleIdx
	a.uiScaleIdx = min(max(a.uiScaleIdx+delta, 0), len(a.uiScales)-1)
	if prev != a.uiScaleIdx {
		a.fonts.reset()
	}
}

func (a *App) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	a.screenW = max(outsideWidth, 640)
	a.screenH = max(outsideHeight, 420)
	return a.screenW, a.screenH
}

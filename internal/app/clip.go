package app

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	imgclip "golang.design/x/clipboard"

	"postedit/pkg/postdoc"
)

var (
	imageClipOnce sync.Once
	imageClipErr  error
)

// clipboardImage returns PNG bytes when the system clipboard holds an image.
func clipboardImage() []byte {
	imageClipOnce.Do(func() { imageClipErr = imgclip.Init() })
	if imageClipErr != nil {
		return nil
	}
	return imgclip.Read(imgclip.FmtImage)
}

func readClipboardText() (string, error) {
	text, err := clipboard.ReadAll()
	return strings.ReplaceAll(text, "\r\n", "\n"), err
}

func (a *App) copySelection(cut bool) {
	sel := a.session.Selection()
	if sel.Collapsed() {
		return
	}
	if err := clipboard.WriteAll(a.session.SelectedText()); err != nil {
		a.status = "Copy failed: " + err.Error()
		a.log.Warn("clipboard write failed", zap.Error(err))
		return
	}
	if cut {
		a.session.DeleteSelection()
	}
}

func (a *App) paste() {
	if png := clipboardImage(); len(png) > 0 {
		a.session.PasteImage(postdoc.DataURL("image/png", png), "")
		a.status = "Image pasted"
		return
	}
	text, err := readClipboardText()
	if err != nil {
		a.status = "Paste failed: " + err.Error()
		a.log.Warn("clipboard read failed", zap.Error(err))
		return
	}
	if text != "" {
		a.session.InsertText(text)
	}
}

// imageFor decodes and caches the picture of an image block. Remote URLs are
// not fetched; local files and data: URLs are shown.
func (a *App) imageFor(url string) *ebiten.Image {
	if url == "" {
		return nil
	}
	if img, ok := a.images[url]; ok {
		return img
	}
	var data []byte
	var err error
	switch {
	case postdoc.IsDataURL(url):
		_, data, err = postdoc.ParseDataURL(url)
	case strings.HasPrefix(url, "file://"):
		data, err = os.ReadFile(strings.TrimPrefix(url, "file://"))
	case !strings.Contains(url, "://"):
		data, err = os.ReadFile(url)
	default:
		a.images[url] = nil
		return nil
	}
	if err != nil {
		a.log.Debug("image not loaded", zap.Error(err))
		a.images[url] = nil
		return nil
	}
	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		a.log.Debug("image not decoded", zap.Error(err))
		a.images[url] = nil
		return nil
	}
	img := ebiten.NewImageFromImage(decoded)
	a.images[url] = img
	return img
}

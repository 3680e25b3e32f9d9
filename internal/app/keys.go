package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"postedit/internal/editor"
)

var specialKeys = map[ebiten.Key]editor.Key{
	ebiten.KeyEnter:     editor.KeyEnter,
	ebiten.KeyKPEnter:   editor.KeyEnter,
	ebiten.KeyBackspace: editor.KeyBackspace,
	ebiten.KeyDelete:    editor.KeyDelete,
	ebiten.KeyArrowUp:   editor.KeyArrowUp,
	ebiten.KeyArrowDown: editor.KeyArrowDown,
	ebiten.KeyTab:       editor.KeyTab,
	ebiten.KeyEscape:    editor.KeyEscape,
}

// formatKeys are the Ctrl/Meta letters the block machine turns into inline
// formatting.
var formatKeys = map[ebiten.Key]rune{
	ebiten.KeyB: 'b',
	ebiten.KeyI: 'i',
	ebiten.KeyE: 'e',
	ebiten.KeyH: 'h',
}

func currentModifiers() editor.Modifier {
	var m editor.Modifier
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		m |= editor.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		m |= editor.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		m |= editor.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		m |= editor.ModMeta
	}
	return m
}

// repeating reports a key press plus key repeat after a short delay.
func repeating(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d > 30 && d%3 == 0)
}

// blockKeyEvents collects the special keys pressed this frame as editor
// events.
func blockKeyEvents(mods editor.Modifier) []editor.KeyEvent {
	var out []editor.KeyEvent
	for _, k := range []ebiten.Key{
		ebiten.KeyEnter, ebiten.KeyKPEnter, ebiten.KeyBackspace, ebiten.KeyDelete,
		ebiten.KeyArrowUp, ebiten.KeyArrowDown, ebiten.KeyTab, ebiten.KeyEscape,
	} {
		if repeating(k) {
			out = append(out, editor.SpecialEvent(specialKeys[k], mods))
		}
	}
	if mods.Command() {
		for k, r := range formatKeys {
			if inpututil.IsKeyJustPressed(k) {
				out = append(out, editor.KeyEvent{Key: editor.KeyRune, Rune: r, Modifiers: mods})
			}
		}
	}
	return out
}

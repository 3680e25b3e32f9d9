package editor

import "strings"

type Key uint8

const (
	KeyNone Key = iota
	KeyRune
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyArrowUp
	KeyArrowDown
	KeyTab
	KeyEscape
)

var keyNames = [...]string{
	KeyNone:      "None",
	KeyRune:      "Rune",
	KeyEnter:     "Enter",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyArrowUp:   "ArrowUp",
	KeyArrowDown: "ArrowDown",
	KeyTab:       "Tab",
	KeyEscape:    "Escape",
}

func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "Unknown"
}

type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta

	ModNone Modifier = 0
)

func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// Command reports whether a shortcut modifier (Ctrl or Meta) is held.
func (m Modifier) Command() bool {
	return m.Has(ModCtrl) || m.Has(ModMeta)
}

func (m Modifier) String() string {
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	if m.Has(ModMeta) {
		parts = append(parts, "Meta")
	}
	return strings.Join(parts, "+")
}

type KeyEvent struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

func RuneEvent(r rune) KeyEvent {
	return KeyEvent{Key: KeyRune, Rune: r}
}

func SpecialEvent(k Key, mods Modifier) KeyEvent {
	return KeyEvent{Key: k, Modifiers: mods}
}

// IsText reports whether the event types a character into the block.
func (e KeyEvent) IsText() bool {
	return e.Key == KeyRune && e.Rune != 0 && !e.Modifiers.Command() && !e.Modifiers.Has(ModAlt)
}

func (e KeyEvent) String() string {
	name := e.Key.String()
	if e.Key == KeyRune {
		name = string(e.Rune)
	}
	if mods := e.Modifiers.String(); mods != "" {
		return mods + "+" + name
	}
	return name
}

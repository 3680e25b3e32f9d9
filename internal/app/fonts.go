package app

import (
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

type faceStyle struct {
	size   float64
	bold   bool
	italic bool
	mono   bool
}

type fontKey struct {
	style faceStyle
	scale int
}

type fontBank struct {
	regular    *opentype.Font
	bold       *opentype.Font
	italic     *opentype.Font
	boldItalic *opentype.Font
	mono       *opentype.Font
	monoBold   *opentype.Font
	cache      map[fontKey]font.Face
}

func newFontBank() fontBank {
	bank := fontBank{cache: map[fontKey]font.Face{}}
	parse := func(ttf []byte) *opentype.Font {
		f, err := opentype.Parse(ttf)
		if err != nil {
			return nil
		}
		return f
	}
	bank.regular = parse(goregular.TTF)
	bank.bold = parse(gobold.TTF)
	bank.italic = parse(goitalic.TTF)
	bank.boldItalic = parse(gobolditalic.TTF)
	bank.mono = parse(gomono.TTF)
	bank.monoBold = parse(gomonobold.TTF)
	return bank
}

func (b *fontBank) face(style faceStyle, scale float32) font.Face {
	key := fontKey{style: style, scale: int(math.Round(float64(scale) * 1000))}
	if f, ok := b.cache[key]; ok {
		return f
	}
	var base *opentype.Font
	switch {
	case style.mono && style.bold:
		base = b.monoBold
	case style.mono:
		base = b.mono
	case style.bold && style.italic:
		base = b.boldItalic
	case style.bold:
		base = b.bold
	case style.italic:
		base = b.italic
	default:
		base = b.regular
	}
	if base == nil {
		return basicfont.Face7x13
	}
	opts := &opentype.FaceOptions{Size: style.size * float64(scale), DPI: 72, Hinting: font.HintingFull}
	face, err := opentype.NewFace(base, opts)
	if err != nil {
		return basicfont.Face7x13
	}
	b.cache[key] = face
	return face
}

func (b *fontBank) reset() {
	b.cache = map[fontKey]font.Face{}
}

// measure returns the pixel advance of s in face.
func measure(face font.Face, s string) int {
	if face == nil || s == "" {
		return 0
	}
	adv := font.MeasureString(face, s)
	return max((int(adv)+32)>>6, 0)
}

package highlight

import (
	"image/color"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const DefaultTheme = "github"

type Token struct {
	Text   string
	Color  color.RGBA
	Bold   bool
	Italic bool
}

var (
	cacheMu sync.RWMutex
	cache   = map[string][]Token{}
)

// Normalize maps a language name, alias or file name to the canonical
// lexer name in lower case. Unknown languages yield "".
func Normalize(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	lex := lexers.Get(name)
	if lex == nil {
		return ""
	}
	return strings.ToLower(lex.Config().Name)
}

// Detect guesses the language of source. It returns "" when no lexer
// recognises it.
func Detect(source string) string {
	if strings.TrimSpace(source) == "" {
		return ""
	}
	lex := lexers.Analyse(source)
	if lex == nil {
		return ""
	}
	return strings.ToLower(lex.Config().Name)
}

func Tokens(source, language, theme string, fallback color.RGBA) []Token {
	key := language + "\x00" + theme + "\x00" + source
	cacheMu.RLock()
	if toks, ok := cache[key]; ok {
		cacheMu.RUnlock()
		return toks
	}
	cacheMu.RUnlock()

	toks := tokenise(source, language, theme, fallback)

	cacheMu.Lock()
	if len(cache) > 512 {
		cache = map[string][]Token{}
	}
	cache[key] = toks
	cacheMu.Unlock()
	return toks
}

func tokenise(source, language, theme string, fallback color.RGBA) []Token {
	plain := []Token{{Text: source, Color: fallback}}
	lex := lexers.Get(language)
	if lex == nil {
		return plain
	}
	lex = chroma.Coalesce(lex)
	sty := styles.Get(theme)
	it, err := lex.Tokenise(nil, source)
	if err != nil {
		return plain
	}
	var out []Token
	for tok := it(); tok != chroma.EOF; tok = it() {
		entry := sty.Get(tok.Type)
		t := Token{Text: tok.Value, Color: fallback, Bold: entry.Bold == chroma.Yes, Italic: entry.Italic == chroma.Yes}
		if entry.Colour.IsSet() {
			t.Color = color.RGBA{R: entry.Colour.Red(), G: entry.Colour.Green(), B: entry.Colour.Blue(), A: 0xff}
		}
		out = append(out, t)
	}
	return out
}

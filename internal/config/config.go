// Package config loads the editor settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

var ErrParse = errors.New("config: parse error")

type Window struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

type Editor struct {
	FontSize  float64 `toml:"font_size"`
	CodeTheme string  `toml:"code_theme"`
	TabText   string  `toml:"tab_text"`
}

type Storage struct {
	Compression bool   `toml:"compression"`
	Extension   string `toml:"extension"`
}

type Log struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

type Config struct {
	Window  Window  `toml:"window"`
	Editor  Editor  `toml:"editor"`
	Storage Storage `toml:"storage"`
	Log     Log     `toml:"log"`
}

func Default() Config {
	return Config{
		Window:  Window{Title: "Post Editor", Width: 1100, Height: 760},
		Editor:  Editor{FontSize: 16, CodeTheme: "github", TabText: "    "},
		Storage: Storage{Compression: true, Extension: ".post"},
		Log:     Log{Level: "info"},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("config: reading %s: %w", path, err)
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Default(), fmt.Errorf("%w: line %d column %d: %s", ErrParse, row, col, derr.Error())
		}
		return Default(), fmt.Errorf("%w: %v", ErrParse, err)
	}
	return cfg.Validate(), nil
}

// Validate replaces out-of-range values with their defaults.
func (c Config) Validate() Config {
	def := Default()
	if strings.TrimSpace(c.Window.Title) == "" {
		c.Window.Title = def.Window.Title
	}
	if c.Window.Width < 320 || c.Window.Width > 8192 {
		c.Window.Width = def.Window.Width
	}
	if c.Window.Height < 240 || c.Window.Height > 8192 {
		c.Window.Height = def.Window.Height
	}
	if c.Editor.FontSize < 8 || c.Editor.FontSize > 72 {
		c.Editor.FontSize = def.Editor.FontSize
	}
	if strings.TrimSpace(c.Editor.CodeTheme) == "" {
		c.Editor.CodeTheme = def.Editor.CodeTheme
	}
	if c.Editor.TabText == "" {
		c.Editor.TabText = def.Editor.TabText
	}
	if c.Storage.Extension == "" {
		c.Storage.Extension = def.Storage.Extension
	}
	if !strings.HasPrefix(c.Storage.Extension, ".") {
		c.Storage.Extension = "." + c.Storage.Extension
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
		c.Log.Level = strings.ToLower(c.Log.Level)
	default:
		c.Log.Level = def.Log.Level
	}
	return c
}

func (c Config) Encode(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(c)
}

// Package config loads the memowall CLI configuration file.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/arran4/memowall"
)

// MaxInputSize limits config input to prevent memory exhaustion (1MB).
var MaxInputSize = 1 << 20

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrInvalidColor   = errors.New("invalid color")
	ErrInvalidSize    = errors.New("invalid canvas size")
)

// Config mirrors memowall.RenderOptions plus CLI-only settings.
type Config struct {
	Canvas   CanvasConfig  `yaml:"canvas"`
	Font     FontConfig    `yaml:"font"`
	Margins  MarginsConfig `yaml:"margins"`
	Layout   LayoutConfig  `yaml:"layout"`
	Markdown *bool         `yaml:"markdown"`
	Dialect  string        `yaml:"dialect"` // "memo" (default) or "commonmark"
	Theme    ThemeConfig   `yaml:"theme"`
	Wrap     WrapConfig    `yaml:"wrap"`
}

type CanvasConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type FontConfig struct {
	Size    int    `yaml:"size"`
	Regular string `yaml:"regular"` // TTF/OTF/TTC path, empty = Go Regular
	Bold    string `yaml:"bold"`
	Mono    string `yaml:"mono"`
}

type MarginsConfig struct {
	Left   *int `yaml:"left"`
	Right  *int `yaml:"right"`
	Top    *int `yaml:"top"`
	Bottom *int `yaml:"bottom"`
}

type LayoutConfig struct {
	AutoScale *bool   `yaml:"autoScale"`
	MinScale  float64 `yaml:"minScale"`
}

// ThemeConfig picks a built-in theme and optionally overrides colors with
// #RRGGBB values.
type ThemeConfig struct {
	Name           string `yaml:"name"`
	Background     string `yaml:"background"`
	Text           string `yaml:"text"`
	Quote          string `yaml:"quote"`
	Code           string `yaml:"code"`
	CodeBackground string `yaml:"codeBackground"`
	QuoteBar       string `yaml:"quoteBar"`
	Grid           string `yaml:"grid"`
}

type WrapConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"`   // "chars" (default) or "pixels"
	Output  string `yaml:"output"` // where to persist the wrapped text
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Canvas: CanvasConfig{Width: memowall.DefaultWidth, Height: memowall.DefaultHeight},
		Font:   FontConfig{Size: memowall.DefaultFontSize},
		Theme:  ThemeConfig{Name: "light"},
		Wrap:   WrapConfig{Mode: "chars"},
	}
}

// Load reads a YAML config file on top of Default. Unknown fields are
// rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config data on top of Default.
func Parse(data []byte) (*Config, error) {
	if len(data) > MaxInputSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrConfigParse, len(data), MaxInputSize)
	}
	cfg := Default()
	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return cfg, nil
}

// ParseSize parses "WIDTHxHEIGHT".
func ParseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}
	w, errW := strconv.Atoi(strings.TrimSpace(ws))
	h, errH := strconv.Atoi(strings.TrimSpace(hs))
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}
	return w, h, nil
}

// ParseColor parses "#RRGGBB" or "RRGGBB".
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}

// Theme resolves the named theme and applies color overrides.
func (t ThemeConfig) Theme() (memowall.Theme, error) {
	th, err := memowall.ThemeByName(t.Name)
	if err != nil {
		return th, err
	}
	overrides := []struct {
		hex string
		dst *color.Color
	}{
		{t.Background, &th.Background},
		{t.Text, &th.Text},
		{t.Quote, &th.Quote},
		{t.Code, &th.Code},
		{t.CodeBackground, &th.CodeBackground},
		{t.QuoteBar, &th.QuoteBar},
		{t.Grid, &th.Grid},
	}
	for _, o := range overrides {
		if o.hex == "" {
			continue
		}
		c, err := ParseColor(o.hex)
		if err != nil {
			return th, err
		}
		*o.dst = c
	}
	return th, nil
}

// Margins applies configured margins over memowall.DefaultMargins.
func (m MarginsConfig) Margins() memowall.Margins {
	out := memowall.DefaultMargins
	if m.Left != nil {
		out.Left = *m.Left
	}
	if m.Right != nil {
		out.Right = *m.Right
	}
	if m.Top != nil {
		out.Top = *m.Top
	}
	if m.Bottom != nil {
		out.Bottom = *m.Bottom
	}
	return out
}

// RenderOptions converts the configuration into library options, loading
// the configured fonts.
func (c *Config) RenderOptions() (memowall.RenderOptions, error) {
	th, err := c.Theme.Theme()
	if err != nil {
		return memowall.RenderOptions{}, err
	}
	dialect, err := memowall.ParseDialect(c.Dialect)
	if err != nil {
		return memowall.RenderOptions{}, err
	}
	fonts, err := memowall.LoadFonts(memowall.FontConfig{
		RegularPath: c.Font.Regular,
		BoldPath:    c.Font.Bold,
		MonoPath:    c.Font.Mono,
	})
	if err != nil {
		return memowall.RenderOptions{}, err
	}
	margins := c.Margins.Margins()
	return memowall.RenderOptions{
		Width:     c.Canvas.Width,
		Height:    c.Canvas.Height,
		FontSize:  c.Font.Size,
		Margins:   &margins,
		AutoScale: c.Layout.AutoScale,
		MinScale:  c.Layout.MinScale,
		Markdown:  c.Markdown,
		Dialect:   dialect,
		Theme:     th,
		Fonts:     fonts,
	}, nil
}

package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/arran4/memowall"
)

func TestParseEmptyIsDefault(t *testing.T) {
	cfg, err := Parse([]byte("  \n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseOverlaysDefaults(t *testing.T) {
	data := []byte(`
canvas:
  width: 1920
  height: 1080
font:
  size: 40
margins:
  left: 100
layout:
  autoScale: false
  minScale: 0.6
theme:
  name: dark
  codeBackground: "#101010"
wrap:
  enabled: true
  mode: pixels
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Canvas.Width != 1920 || cfg.Canvas.Height != 1080 {
		t.Errorf("canvas = %+v", cfg.Canvas)
	}
	if cfg.Font.Size != 40 {
		t.Errorf("font size = %d, want 40", cfg.Font.Size)
	}
	if cfg.Layout.AutoScale == nil || *cfg.Layout.AutoScale {
		t.Errorf("autoScale = %v, want false", cfg.Layout.AutoScale)
	}
	want := memowall.Margins{Left: 100, Right: 50, Top: 50, Bottom: 50}
	if got := cfg.Margins.Margins(); got != want {
		t.Errorf("margins = %+v, want %+v", got, want)
	}
	th, err := cfg.Theme.Theme()
	if err != nil {
		t.Fatalf("Theme: %v", err)
	}
	if th.CodeBackground != (color.RGBA{0x10, 0x10, 0x10, 0xFF}) {
		t.Errorf("code background = %v", th.CodeBackground)
	}
	if th.Background != memowall.DarkTheme.Background {
		t.Errorf("background = %v, want dark theme", th.Background)
	}
	if !cfg.Wrap.Enabled || cfg.Wrap.Mode != "pixels" {
		t.Errorf("wrap = %+v", cfg.Wrap)
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("canvas:\n  depth: 3\n"))
	if !errors.Is(err, ErrConfigParse) {
		t.Fatalf("err = %v, want ErrConfigParse", err)
	}
}

func TestParseRejectsOversizedInput(t *testing.T) {
	old := MaxInputSize
	MaxInputSize = 8
	defer func() { MaxInputSize = old }()
	if _, err := Parse([]byte("font:\n  size: 12\n")); !errors.Is(err, ErrConfigParse) {
		t.Fatalf("err = %v, want ErrConfigParse", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "memowall.yaml")
	if err := os.WriteFile(path, []byte("font:\n  size: 24\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Font.Size != 24 {
		t.Errorf("font size = %d, want 24", cfg.Font.Size)
	}
	if _, err := Load(filepath.Join(dir, "nope.yaml")); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("missing file: err = %v, want ErrConfigNotFound", err)
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		w, h    int
		wantErr bool
	}{
		{"1280x720", 1280, 720, false},
		{" 1920X1080 ", 1920, 1080, false},
		{"800 x 600", 800, 600, false},
		{"1280", 0, 0, true},
		{"0x720", 0, 0, true},
		{"axb", 0, 0, true},
	}
	for _, tt := range tests {
		w, h, err := ParseSize(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidSize) {
				t.Errorf("ParseSize(%q) err = %v, want ErrInvalidSize", tt.in, err)
			}
			continue
		}
		if err != nil || w != tt.w || h != tt.h {
			t.Errorf("ParseSize(%q) = %d, %d, %v", tt.in, w, h, err)
		}
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#c81e1e")
	if err != nil {
		t.Fatalf("ParseColor: %v", err)
	}
	if c != (color.RGBA{0xC8, 0x1E, 0x1E, 0xFF}) {
		t.Errorf("got %v", c)
	}
	for _, bad := range []string{"", "#fff", "#gggggg", "#12345678"} {
		if _, err := ParseColor(bad); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseColor(%q) err = %v, want ErrInvalidColor", bad, err)
		}
	}
}

func TestThemeUnknownName(t *testing.T) {
	if _, err := (ThemeConfig{Name: "sepia"}).Theme(); err == nil {
		t.Fatal("expected error")
	}
}

func TestRenderOptions(t *testing.T) {
	cfg := Default()
	cfg.Dialect = "commonmark"
	opts, err := cfg.RenderOptions()
	if err != nil {
		t.Fatalf("RenderOptions: %v", err)
	}
	if opts.Width != memowall.DefaultWidth || opts.FontSize != memowall.DefaultFontSize {
		t.Errorf("opts = %dx%d @ %d", opts.Width, opts.Height, opts.FontSize)
	}
	if opts.Dialect != memowall.DialectCommonMark {
		t.Errorf("dialect = %q", opts.Dialect)
	}
	if opts.Fonts.Regular == nil || opts.Fonts.Bold == nil || opts.Fonts.Mono == nil {
		t.Error("bundled fonts not loaded")
	}
}

func TestRenderOptionsFontError(t *testing.T) {
	cfg := Default()
	cfg.Font.Bold = filepath.Join(t.TempDir(), "missing.ttf")
	if _, err := cfg.RenderOptions(); !errors.Is(err, memowall.ErrFontLoad) {
		t.Fatalf("err = %v, want ErrFontLoad", err)
	}
}

package memowall

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// faceDPI makes a face's point size equal its pixel size.
const faceDPI = 72

// FontAsset is a parsed font file that can produce faces at any size.
// TrueType files go through freetype; OpenType/CFF fonts and .ttc
// collections go through x/image/font/opentype.
type FontAsset struct {
	Name string
	tt   *truetype.Font
	ot   *opentype.Font
}

// NewFace returns a face of the asset at size pixels.
func (a *FontAsset) NewFace(size int) (font.Face, error) {
	if size < 1 {
		size = 1
	}
	if a.tt != nil {
		return truetype.NewFace(a.tt, &truetype.Options{Size: float64(size), DPI: faceDPI, Hinting: font.HintingFull}), nil
	}
	face, err := opentype.NewFace(a.ot, &opentype.FaceOptions{Size: float64(size), DPI: faceDPI, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFontLoad, a.Name, err)
	}
	return face, nil
}

// ParseFontAsset parses TTF, OTF or TTC data. For collections the first
// font is used.
func ParseFontAsset(name string, data []byte) (*FontAsset, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s: empty font data", ErrFontLoad, name)
	}
	if bytes.HasPrefix(data, []byte("ttcf")) {
		coll, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrFontLoad, name, err)
		}
		ot, err := coll.Font(0)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrFontLoad, name, err)
		}
		return &FontAsset{Name: name, ot: ot}, nil
	}
	if tt, err := truetype.Parse(data); err == nil {
		return &FontAsset{Name: name, tt: tt}, nil
	}
	ot, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFontLoad, name, err)
	}
	return &FontAsset{Name: name, ot: ot}, nil
}

// Fonts is the fixed style-to-font mapping: regular for prose, bold for
// headings and strong text, mono for code blocks.
type Fonts struct {
	Regular *FontAsset
	Bold    *FontAsset
	Mono    *FontAsset
}

func (f Fonts) complete() bool {
	return f.Regular != nil && f.Bold != nil && f.Mono != nil
}

// FontConfig names font files. Empty paths select the bundled Go fonts.
type FontConfig struct {
	RegularPath string
	BoldPath    string
	MonoPath    string
}

func loadAsset(path string, bundled []byte, bundledName string) (*FontAsset, error) {
	if path == "" {
		return ParseFontAsset(bundledName, bundled)
	}
	b, err := os.ReadFile(path) // #nosec G304 -- font path is user configuration
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFontLoad, err)
	}
	return ParseFontAsset(filepath.Base(path), b)
}

// LoadFonts loads the three families. A missing bold or mono file is fatal.
// A regular file that does not exist falls back to the bold family.
func LoadFonts(cfg FontConfig) (Fonts, error) {
	var f Fonts
	var err error

	f.Bold, err = loadAsset(cfg.BoldPath, gobold.TTF, "Go Bold")
	if err != nil {
		return f, err
	}
	f.Regular, err = loadAsset(cfg.RegularPath, goregular.TTF, "Go Regular")
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return f, err
		}
		Logger().Warn("regular font unavailable, using bold family", "path", cfg.RegularPath, "err", err)
		f.Regular = f.Bold
	}
	f.Mono, err = loadAsset(cfg.MonoPath, gomono.TTF, "Go Mono")
	if err != nil {
		return f, err
	}
	return f, nil
}

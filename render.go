package memowall

import (
	"fmt"
	"image"
)

// Defaults applied to zero-valued RenderOptions fields.
const (
	DefaultWidth    = 1280
	DefaultHeight   = 720
	DefaultFontSize = 36
)

// RenderOptions configure how memo text is rendered to an image.
type RenderOptions struct {
	Width    int
	Height   int
	FontSize int // base font size in pixels
	Margins  *Margins
	// AutoScale shrinks content that would overflow the canvas. Default on.
	AutoScale *bool
	MinScale  float64
	// Markdown enables markup interpretation. Default on; when off every
	// line is drawn literally.
	Markdown *bool
	Dialect  Dialect
	Theme    Theme
	Fonts    Fonts
	// Resolver, when set, is used instead of one built from Fonts. It must
	// not be shared between concurrent renders.
	Resolver *Resolver
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func (opts RenderOptions) withDefaults() (RenderOptions, error) {
	if opts.Width == 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height == 0 {
		opts.Height = DefaultHeight
	}
	if opts.Width < 0 || opts.Height < 0 {
		return opts, fmt.Errorf("%w: %dx%d", ErrInvalidCanvas, opts.Width, opts.Height)
	}
	if opts.FontSize == 0 {
		opts.FontSize = DefaultFontSize
	}
	if opts.FontSize < 0 {
		return opts, fmt.Errorf("%w: %d", ErrInvalidFontSize, opts.FontSize)
	}
	if opts.Margins == nil {
		m := DefaultMargins
		opts.Margins = &m
	}
	if opts.MinScale == 0 {
		opts.MinScale = DefaultMinScale
	}
	if opts.MinScale < 0 || opts.MinScale > 1 {
		return opts, fmt.Errorf("%w: %v", ErrInvalidScale, opts.MinScale)
	}
	opts.Theme = opts.Theme.withDefaults()
	return opts, nil
}

func (opts RenderOptions) layoutOptions() LayoutOptions {
	return LayoutOptions{
		FontSize:  opts.FontSize,
		Width:     opts.Width,
		Height:    opts.Height,
		Margins:   *opts.Margins,
		AutoScale: boolOr(opts.AutoScale, true),
		MinScale:  opts.MinScale,
	}
}

func (opts RenderOptions) resolver() (*Resolver, error) {
	if opts.Resolver != nil {
		return opts.Resolver, nil
	}
	// Fill in missing fonts using the bundled defaults.
	fonts := opts.Fonts
	if !fonts.complete() {
		fallback, err := LoadFonts(FontConfig{})
		if err != nil {
			return nil, err
		}
		if fonts.Regular == nil {
			fonts.Regular = fallback.Regular
		}
		if fonts.Bold == nil {
			fonts.Bold = fallback.Bold
		}
		if fonts.Mono == nil {
			fonts.Mono = fallback.Mono
		}
	}
	return NewResolver(fonts)
}

// ParseText builds a Document according to the markdown switch and dialect
// in opts.
func ParseText(text string, opts RenderOptions) Document {
	if !boolOr(opts.Markdown, true) {
		return ParseLiteral(text)
	}
	if opts.Dialect == DialectCommonMark {
		return ParseCommonMark([]byte(text))
	}
	return Parse(text)
}

// Render converts memo text into an image of exactly Width x Height.
// Zero values enable defaults (1280x720, 36px base font, margins
// 200/50/50/50, auto-scale down to 0.5, light theme, bundled fonts).
func Render(data []byte, opts RenderOptions) (*image.RGBA, error) {
	img, _, err := RenderDocument(ParseText(string(data), opts), opts)
	return img, err
}

// RenderDocument lays out and rasterizes an already parsed Document and
// also returns the layout it used.
func RenderDocument(doc Document, opts RenderOptions) (*image.RGBA, LayoutResult, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, LayoutResult{}, err
	}
	res, err := opts.resolver()
	if err != nil {
		return nil, LayoutResult{}, err
	}
	lo := opts.layoutOptions()
	lay, err := Layout(doc, res, lo)
	if err != nil {
		return nil, LayoutResult{}, err
	}
	img, err := Rasterize(doc, lay, res, opts.Theme, lo)
	if err != nil {
		return nil, LayoutResult{}, err
	}
	return img, lay, nil
}

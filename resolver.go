package memowall

import (
	"fmt"

	"golang.org/x/image/font"
)

// Measurer reports the pixel extent of a string in one font at one size.
type Measurer interface {
	Measure(s string) (width, height int)
}

// Metrics resolves styles to measurers. Resolver is the production
// implementation; layout tests substitute fixed metrics.
type Metrics interface {
	Resolve(style StyleTag, baseSize int) (Measurer, error)
	ResolveMono(baseSize int) (Measurer, error)
}

// Face is a font face at a fixed pixel size.
type Face struct {
	font.Face
	Size int
}

// Measure returns the advance width and the ascent+descent height of s.
// Empty strings measure zero in both directions.
func (f *Face) Measure(s string) (width, height int) {
	if s == "" {
		return 0, 0
	}
	return font.MeasureString(f.Face, s).Ceil(), f.LineHeight()
}

// LineHeight is ascent+descent in pixels.
func (f *Face) LineHeight() int {
	m := f.Metrics()
	return (m.Ascent + m.Descent).Ceil()
}

// Ascent is the distance from the top of the line box to the baseline.
func (f *Face) Ascent() int {
	return f.Metrics().Ascent.Ceil()
}

type faceKey struct {
	family fontFamily
	size   int
}

// Resolver maps styles to faces and caches faces by family and pixel size.
// The cache is emptied whenever the base size changes, which happens once
// per scale-factor change. A Resolver is not safe for concurrent use.
type Resolver struct {
	fonts    Fonts
	baseSize int
	faces    map[faceKey]*Face
}

// NewResolver returns a resolver over a complete font set.
func NewResolver(fonts Fonts) (*Resolver, error) {
	if !fonts.complete() {
		return nil, fmt.Errorf("%w: incomplete font configuration", ErrFontLoad)
	}
	return &Resolver{fonts: fonts, faces: make(map[faceKey]*Face)}, nil
}

func (r *Resolver) setBaseSize(size int) {
	if size == r.baseSize {
		return
	}
	r.baseSize = size
	clear(r.faces)
}

// Resolve returns the face for style at round(baseSize * multiplier).
func (r *Resolver) Resolve(style StyleTag, baseSize int) (Measurer, error) {
	return r.Face(style, baseSize)
}

// ResolveMono returns the monospace face used for code-block lines.
func (r *Resolver) ResolveMono(baseSize int) (Measurer, error) {
	return r.MonoFace(baseSize)
}

// Face is Resolve with the concrete type, for drawing.
func (r *Resolver) Face(style StyleTag, baseSize int) (*Face, error) {
	return r.face(style.family(), style.SizeFor(baseSize), baseSize)
}

// MonoFace is ResolveMono with the concrete type, for drawing.
func (r *Resolver) MonoFace(baseSize int) (*Face, error) {
	return r.face(familyMono, StyleCode.SizeFor(baseSize), baseSize)
}

func (r *Resolver) face(fam fontFamily, size, baseSize int) (*Face, error) {
	r.setBaseSize(baseSize)
	key := faceKey{family: fam, size: size}
	if f, ok := r.faces[key]; ok {
		return f, nil
	}
	asset := r.asset(fam)
	ff, err := asset.NewFace(size)
	if err != nil {
		return nil, err
	}
	Logger().Debug("face cache miss", "family", fam, "size", size, "font", asset.Name)
	f := &Face{Face: ff, Size: size}
	r.faces[key] = f
	return f, nil
}

func (r *Resolver) asset(fam fontFamily) *FontAsset {
	switch fam {
	case familyBold:
		return r.fonts.Bold
	case familyMono:
		return r.fonts.Mono
	default:
		return r.fonts.Regular
	}
}

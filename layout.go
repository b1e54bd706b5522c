package memowall

import (
	"fmt"
	"math"
)

// Margins are canvas insets in pixels.
type Margins struct {
	Left, Right, Top, Bottom int
}

// DefaultMargins leaves a wide left gutter for desktop icons.
var DefaultMargins = Margins{Left: 200, Right: 50, Top: 50, Bottom: 50}

// Fixed horizontal geometry, in pixels.
const (
	listIndentStep = 20
	listIndentBase = 30
	quoteIndent    = 20
	quoteBarWidth  = 4
	codePadLeft    = 10
	codePadY       = 5
	cellPadding    = 8
)

// DefaultMinScale is the lower bound of the auto-scale factor.
const DefaultMinScale = 0.5

// LayoutOptions configures Layout.
type LayoutOptions struct {
	FontSize  int // base font size before scaling
	Width     int
	Height    int
	Margins   Margins
	AutoScale bool
	MinScale  float64
}

// Placement is the computed box of one Document line. X is the text
// origin; Width runs from X to the right margin.
type Placement struct {
	X, Y          int
	Width, Height int
}

// CodeRegion is the vertical span of a run of consecutive code lines.
type CodeRegion struct {
	StartY, EndY int
}

// LayoutResult is derived fresh on every call and aligned 1:1 with the
// Document.
type LayoutResult struct {
	Scale       float64
	FontSize    int // round(base * Scale)
	LineSpacing int
	Placements  []Placement
	CodeRegions []CodeRegion
}

func lineSpacingFor(size int) int {
	return int(math.Round(float64(size) * 0.5))
}

// lineHeight applies the per-line height rules at base size.
func lineHeight(l Line, m Metrics, base, spacing int) (int, error) {
	switch v := l.(type) {
	case CodeLine:
		mono, err := m.ResolveMono(base)
		if err != nil {
			return 0, err
		}
		_, h := mono.Measure(v.Text)
		if v.Text == "" || h == 0 {
			h = base
		}
		return h, nil
	case TableLine:
		if v.Row.IsSeparator {
			return spacing, nil
		}
		return base + spacing, nil
	}

	h := 0
	for _, seg := range Segments(l) {
		if seg.Text == "" {
			continue
		}
		face, err := m.Resolve(seg.Style, base)
		if err != nil {
			return 0, err
		}
		if _, sh := face.Measure(seg.Text); sh > h {
			h = sh
		}
	}
	if h == 0 {
		h = base
	}
	if _, ok := l.(Heading); ok {
		h += spacing / 2
	}
	return h, nil
}

// measureDocument is pass 1: the total height of doc at base size.
func measureDocument(doc Document, m Metrics, base int) (int, error) {
	spacing := lineSpacingFor(base)
	total := 0
	for _, l := range doc {
		h, err := lineHeight(l, m, base, spacing)
		if err != nil {
			return 0, err
		}
		total += h
	}
	return total, nil
}

// scaleFor is the one-shot fit decision: the ratio of available to needed
// height, clamped below by minScale and above by 1.
func scaleFor(total, available int, minScale float64) float64 {
	if total <= 0 {
		return 1.0
	}
	if available <= 0 {
		return minScale
	}
	if total <= available {
		return 1.0
	}
	return math.Max(float64(available)/float64(total), minScale)
}

// Layout measures doc, chooses a scale factor and places every line.
// Content still taller than the canvas at MinScale overflows the bottom.
func Layout(doc Document, m Metrics, opts LayoutOptions) (LayoutResult, error) {
	if opts.FontSize <= 0 {
		return LayoutResult{}, fmt.Errorf("%w: %d", ErrInvalidFontSize, opts.FontSize)
	}
	minScale := opts.MinScale
	if minScale == 0 {
		minScale = DefaultMinScale
	}
	if minScale < 0 || minScale > 1 {
		return LayoutResult{}, fmt.Errorf("%w: %v", ErrInvalidScale, minScale)
	}
	if len(doc) == 0 {
		return LayoutResult{Scale: 1.0, FontSize: opts.FontSize, LineSpacing: lineSpacingFor(opts.FontSize)}, nil
	}

	scale := 1.0
	if opts.AutoScale {
		total, err := measureDocument(doc, m, opts.FontSize)
		if err != nil {
			return LayoutResult{}, err
		}
		available := opts.Height - opts.Margins.Top - opts.Margins.Bottom
		scale = scaleFor(total, available, minScale)
		Logger().Debug("layout measured", "total", total, "available", available, "scale", scale)
	}
	return place(doc, m, opts, scale)
}

// place is pass 2: it records every line's box at the scaled size and
// collects code regions.
func place(doc Document, m Metrics, opts LayoutOptions, scale float64) (LayoutResult, error) {
	size := int(math.Round(float64(opts.FontSize) * scale))
	spacing := lineSpacingFor(size)
	res := LayoutResult{
		Scale:       scale,
		FontSize:    size,
		LineSpacing: spacing,
		Placements:  make([]Placement, 0, len(doc)),
	}
	left := opts.Margins.Left
	right := opts.Width - opts.Margins.Right
	y := opts.Margins.Top
	inCode := false
	for _, l := range doc {
		h, err := lineHeight(l, m, size, spacing)
		if err != nil {
			return LayoutResult{}, err
		}
		x := left
		switch v := l.(type) {
		case ListItem:
			x = left + v.Indent*listIndentStep + listIndentBase
		case Quote:
			x = left + quoteIndent
		}
		res.Placements = append(res.Placements, Placement{X: x, Y: y, Width: right - x, Height: h})

		if _, ok := l.(CodeLine); ok {
			if !inCode {
				res.CodeRegions = append(res.CodeRegions, CodeRegion{StartY: y})
				inCode = true
			}
			res.CodeRegions[len(res.CodeRegions)-1].EndY = y + h
		} else {
			inCode = false
		}
		y += h
	}
	Logger().Debug("layout placed", "lines", len(doc), "fontSize", size, "bottom", y)
	return res, nil
}

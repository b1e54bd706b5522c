package memowall

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/golang/freetype"
	"golang.org/x/image/font"
)

// ---- Styles & theme ----

// Theme holds the canvas colors. Nil fields fall back to LightTheme.
type Theme struct {
	Background     color.Color
	Text           color.Color
	Quote          color.Color
	Code           color.Color
	CodeBackground color.Color
	QuoteBar       color.Color
	Grid           color.Color
}

var (
	// Light theme defaults
	lightTheme = Theme{
		Background:     color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
		Text:           color.RGBA{0x00, 0x00, 0x00, 0xFF},
		Quote:          color.RGBA{0x80, 0x80, 0x80, 0xFF},
		Code:           color.RGBA{0xC8, 0x1E, 0x1E, 0xFF},
		CodeBackground: color.RGBA{0xF0, 0xF0, 0xF0, 0xFF},
		QuoteBar:       color.RGBA{0xB4, 0xB4, 0xB4, 0xFF},
		Grid:           color.RGBA{0xAA, 0xAA, 0xAA, 0xFF},
	}
	// Dark theme defaults
	darkTheme = Theme{
		Background:     color.RGBA{0x12, 0x12, 0x14, 0xFF},
		Text:           color.RGBA{0xEE, 0xEE, 0xF0, 0xFF},
		Quote:          color.RGBA{0x9A, 0x9A, 0xA0, 0xFF},
		Code:           color.RGBA{0xFF, 0x7B, 0x72, 0xFF},
		CodeBackground: color.RGBA{0x1E, 0x1E, 0x22, 0xFF},
		QuoteBar:       color.RGBA{0x44, 0x44, 0x48, 0xFF},
		Grid:           color.RGBA{0x55, 0x55, 0x5A, 0xFF},
	}
)

// LightTheme and DarkTheme expose the built-in themes for convenience.
var (
	LightTheme = lightTheme
	DarkTheme  = darkTheme
)

// ThemeByName returns a built-in theme by name ("light" or "dark").
func ThemeByName(name string) (Theme, error) {
	switch strings.ToLower(name) {
	case "light", "":
		return lightTheme, nil
	case "dark":
		return darkTheme, nil
	default:
		return Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
}

// withDefaults fills every unset color from the light theme.
func (th Theme) withDefaults() Theme {
	fields := []struct {
		dst *color.Color
		def color.Color
	}{
		{&th.Background, lightTheme.Background},
		{&th.Text, lightTheme.Text},
		{&th.Quote, lightTheme.Quote},
		{&th.Code, lightTheme.Code},
		{&th.CodeBackground, lightTheme.CodeBackground},
		{&th.QuoteBar, lightTheme.QuoteBar},
		{&th.Grid, lightTheme.Grid},
	}
	for _, f := range fields {
		if *f.dst == nil {
			*f.dst = f.def
		}
	}
	return th
}

func (th Theme) colorFor(style StyleTag) color.Color {
	switch style {
	case StyleQuote:
		return th.Quote
	case StyleCode:
		return th.Code
	default:
		return th.Text
	}
}

// ---- Rasterizer ----

type canvas struct {
	img *image.RGBA
	th  Theme
	res *Resolver
	lay LayoutResult
}

func (c *canvas) fill(r image.Rectangle, col color.Color) {
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Src)
}

// drawText draws s with its line box top at y and returns the advance.
func (c *canvas) drawText(face *Face, col color.Color, s string, x, y int) int {
	if s == "" {
		return 0
	}
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  freetype.Pt(x, y+face.Ascent()),
	}
	d.DrawString(s)
	return font.MeasureString(face, s).Ceil()
}

// Rasterize paints doc at the placements in lay onto a new canvas of
// opts.Width x opts.Height. Output depends only on its inputs.
func Rasterize(doc Document, lay LayoutResult, res *Resolver, th Theme, opts LayoutOptions) (*image.RGBA, error) {
	th = th.withDefaults()
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	c := &canvas{img: img, th: th, res: res, lay: lay}
	c.fill(img.Bounds(), th.Background)

	panelLeft := opts.Margins.Left - codePadLeft
	panelRight := opts.Width - opts.Margins.Right
	for _, cr := range lay.CodeRegions {
		c.fill(image.Rect(panelLeft, cr.StartY-codePadY, panelRight, cr.EndY+codePadY), th.CodeBackground)
	}

	for i, l := range doc {
		if i >= len(lay.Placements) {
			break
		}
		p := lay.Placements[i]
		var err error
		switch v := l.(type) {
		case TableLine:
			err = c.drawTableRow(v.Row, p)
		case CodeLine:
			err = c.drawCodeLine(v.Text, p)
		case Quote:
			c.fill(image.Rect(opts.Margins.Left, p.Y, opts.Margins.Left+quoteBarWidth, p.Y+p.Height), th.QuoteBar)
			err = c.drawSegments(v.Segments, p)
		default:
			err = c.drawSegments(Segments(l), p)
		}
		if err != nil {
			return nil, err
		}
	}
	return img, nil
}

func (c *canvas) drawSegments(segs []Segment, p Placement) error {
	x := p.X
	for _, seg := range segs {
		face, err := c.res.Face(seg.Style, c.lay.FontSize)
		if err != nil {
			return err
		}
		x += c.drawText(face, c.th.colorFor(seg.Style), seg.Text, x, p.Y)
	}
	return nil
}

func (c *canvas) drawCodeLine(text string, p Placement) error {
	face, err := c.res.MonoFace(c.lay.FontSize)
	if err != nil {
		return err
	}
	c.drawText(face, c.th.Text, text, p.X, p.Y)
	return nil
}

func (c *canvas) drawTableRow(row TableRow, p Placement) error {
	cols := len(row.Cells)
	if cols == 0 {
		return nil
	}
	colWidth := p.Width / cols
	if row.IsSeparator {
		mid := p.Y + p.Height/2
		c.fill(image.Rect(p.X, mid, p.X+colWidth*cols, mid+1), c.th.Grid)
		return nil
	}
	style := StyleNormal
	if row.IsHeader {
		style = StyleBold
	}
	face, err := c.res.Face(style, c.lay.FontSize)
	if err != nil {
		return err
	}
	for i := 0; i <= cols; i++ {
		x := p.X + i*colWidth
		c.fill(image.Rect(x, p.Y, x+1, p.Y+p.Height), c.th.Grid)
	}
	top := p.Y + c.lay.LineSpacing/2
	for i, cell := range row.Cells {
		c.drawText(face, c.th.Text, cell, p.X+i*colWidth+cellPadding, top)
	}
	return nil
}

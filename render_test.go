package memowall

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"
)

func countNot(img *image.RGBA, r image.Rectangle, bg color.RGBA) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y) != bg {
				n++
			}
		}
	}
	return n
}

var white = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}

func TestRenderSample(t *testing.T) {
	img, err := Render([]byte("# Title\n\nNormal **bold** text"), RenderOptions{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 1280, 720) {
		t.Fatalf("bounds = %v, want 1280x720", got)
	}
	if img.RGBAAt(0, 0) != white {
		t.Errorf("corner = %v, want background", img.RGBAAt(0, 0))
	}
	if countNot(img, img.Bounds(), white) == 0 {
		t.Error("canvas is blank")
	}
	// Nothing is drawn inside the left margin.
	if n := countNot(img, image.Rect(0, 0, 190, 720), white); n != 0 {
		t.Errorf("%d pixels drawn in the left margin", n)
	}
}

func TestRenderDeterministic(t *testing.T) {
	src := []byte("# A\n- b\n> c\n```\nd\n```\n| e | f |\n|---|---|\n| g | h |")
	a, err := Render(src, RenderOptions{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	b, err := Render(src, RenderOptions{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("identical input produced different images")
	}
}

func TestRenderEmptyDocumentIsBlank(t *testing.T) {
	img, lay, err := RenderDocument(Document{}, RenderOptions{Width: 320, Height: 200})
	if err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}
	if lay.Scale != 1.0 {
		t.Errorf("Scale = %v, want 1", lay.Scale)
	}
	if n := countNot(img, img.Bounds(), white); n != 0 {
		t.Errorf("%d non-background pixels on an empty document", n)
	}
}

func TestRenderCodePanelAndQuoteBar(t *testing.T) {
	doc := Parse("```\ncode\n```\n> quoted")
	img, lay, err := RenderDocument(doc, RenderOptions{})
	if err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}
	if len(lay.CodeRegions) != 1 {
		t.Fatalf("code regions = %d, want 1", len(lay.CodeRegions))
	}
	cr := lay.CodeRegions[0]
	if got := img.RGBAAt(195, cr.StartY); got != LightTheme.CodeBackground {
		t.Errorf("panel pixel = %v, want %v", got, LightTheme.CodeBackground)
	}
	if got := img.RGBAAt(195, cr.StartY-codePadY); got != LightTheme.CodeBackground {
		t.Errorf("panel top padding = %v, want %v", got, LightTheme.CodeBackground)
	}
	q := lay.Placements[1]
	if got := img.RGBAAt(DefaultMargins.Left+1, q.Y+1); got != LightTheme.QuoteBar {
		t.Errorf("quote bar pixel = %v, want %v", got, LightTheme.QuoteBar)
	}
}

func TestRenderDarkTheme(t *testing.T) {
	img, err := Render([]byte("hi"), RenderOptions{Theme: DarkTheme})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := img.RGBAAt(0, 0); got != DarkTheme.Background {
		t.Errorf("background = %v, want %v", got, DarkTheme.Background)
	}
}

func TestRenderPartialTheme(t *testing.T) {
	bg := color.RGBA{0x20, 0x40, 0x60, 0xFF}
	doc := Parse("> q\n```\nx\n```\n| a | b |\n|---|---|")
	img, lay, err := RenderDocument(doc, RenderOptions{Theme: Theme{Background: bg}})
	if err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}
	if got := img.RGBAAt(0, 0); got != bg {
		t.Errorf("background = %v, want %v", got, bg)
	}
	if got := img.RGBAAt(195, lay.CodeRegions[0].StartY); got != LightTheme.CodeBackground {
		t.Errorf("unset code background = %v, want light default %v", got, LightTheme.CodeBackground)
	}
	if got := img.RGBAAt(DefaultMargins.Left+1, lay.Placements[0].Y+1); got != LightTheme.QuoteBar {
		t.Errorf("unset quote bar = %v, want light default %v", got, LightTheme.QuoteBar)
	}
}

func TestRenderHeadingEmphasisUsesHeadingSize(t *testing.T) {
	_, plain, err := RenderDocument(Parse("# Hello World"), RenderOptions{})
	if err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}
	_, bold, err := RenderDocument(Parse("# Hello **World**"), RenderOptions{})
	if err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}
	if plain.Placements[0].Height != bold.Placements[0].Height {
		t.Errorf("heading height %d with emphasis, want %d", bold.Placements[0].Height, plain.Placements[0].Height)
	}
}

func TestRenderScalesLongDocuments(t *testing.T) {
	src := strings.Repeat("line\n", 100)
	_, lay, err := RenderDocument(Parse(src), RenderOptions{})
	if err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}
	if lay.Scale >= 1 || lay.Scale < DefaultMinScale {
		t.Errorf("Scale = %v, want in [%v, 1)", lay.Scale, DefaultMinScale)
	}
	off := false
	_, lay, err = RenderDocument(Parse(src), RenderOptions{AutoScale: &off})
	if err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}
	if lay.Scale != 1 {
		t.Errorf("Scale with auto-scale off = %v, want 1", lay.Scale)
	}
}

func TestParseTextSwitches(t *testing.T) {
	off := false
	doc := ParseText("# Title", RenderOptions{Markdown: &off})
	if _, ok := doc[0].(Plain); !ok {
		t.Errorf("markdown off: got %T, want Plain", doc[0])
	}
	doc = ParseText("# Title", RenderOptions{})
	if _, ok := doc[0].(Heading); !ok {
		t.Errorf("memo dialect: got %T, want Heading", doc[0])
	}
	doc = ParseText("1. one", RenderOptions{Dialect: DialectCommonMark})
	if _, ok := doc[0].(ListItem); !ok {
		t.Errorf("commonmark dialect: got %T, want ListItem", doc[0])
	}
}

func TestRenderRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name string
		opts RenderOptions
		want error
	}{
		{"negative width", RenderOptions{Width: -1}, ErrInvalidCanvas},
		{"negative font", RenderOptions{FontSize: -4}, ErrInvalidFontSize},
		{"min scale above one", RenderOptions{MinScale: 2}, ErrInvalidScale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Render([]byte("x"), tt.opts); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestThemeByName(t *testing.T) {
	if th, err := ThemeByName("DARK"); err != nil || th != DarkTheme {
		t.Errorf("ThemeByName(DARK) = %v, %v", th, err)
	}
	if _, err := ThemeByName("sepia"); !errors.Is(err, ErrUnknownTheme) {
		t.Errorf("ThemeByName(sepia) err = %v, want ErrUnknownTheme", err)
	}
}

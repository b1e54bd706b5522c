// Package termimg shows a rendered canvas inline in terminals that speak
// the kitty, iTerm2 or sixel image protocols.
package termimg

import (
	"image"
	"image/color/palette"
	"io"
	"os"
	"strings"

	"github.com/BourgeoisBear/rasterm"
	"golang.org/x/image/draw"
)

// MaxWidth bounds the preview width in pixels.
const MaxWidth = 800

// Capability is a terminal image protocol.
type Capability int

const (
	CapNone Capability = iota
	CapKitty
	CapITerm
	CapSixel
)

func (c Capability) String() string {
	switch c {
	case CapKitty:
		return "kitty"
	case CapITerm:
		return "iterm"
	case CapSixel:
		return "sixel"
	default:
		return "none"
	}
}

// Detect inspects the environment. Order: kitty, iTerm, sixel.
func Detect() Capability {
	return detect(os.Getenv)
}

func detect(getenv func(string) string) Capability {
	if getenv("KITTY_WINDOW_ID") != "" || strings.Contains(getenv("TERM"), "kitty") {
		return CapKitty
	}
	termProgram := getenv("TERM_PROGRAM")
	switch termProgram {
	case "iTerm.app", "WezTerm":
		return CapITerm
	case "ghostty":
		return CapKitty
	}
	if getenv("LC_TERMINAL") == "iTerm2" {
		return CapITerm
	}
	term := getenv("TERM")
	if strings.Contains(term, "sixel") || strings.Contains(term, "mlterm") {
		return CapSixel
	}
	return CapNone
}

// Scale shrinks img to maxWidth keeping the aspect ratio. Narrower images
// are returned unchanged.
func Scale(img image.Image, maxWidth int) image.Image {
	b := img.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return img
	}
	h := max(b.Dy()*maxWidth/b.Dx(), 1)
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// Write sends img to w using capability c. It reports false when the
// terminal has no image support and nothing was written.
func Write(w io.Writer, img image.Image, c Capability) (bool, error) {
	img = Scale(img, MaxWidth)
	switch c {
	case CapKitty:
		return true, rasterm.KittyWriteImage(w, img, rasterm.KittyImgOpts{})
	case CapITerm:
		return true, rasterm.ItermWriteImage(w, img)
	case CapSixel:
		b := img.Bounds()
		pal := image.NewPaletted(b, palette.WebSafe)
		draw.FloydSteinberg.Draw(pal, b, img, b.Min)
		return true, rasterm.SixelWriteImage(w, pal)
	default:
		return false, nil
	}
}

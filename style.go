package memowall

import "math"

// StyleTag is the resolved style of an inline segment.
type StyleTag int

const (
	StyleNormal StyleTag = iota
	StyleBold
	StyleItalic
	StyleCode
	StyleHeading1
	StyleHeading2
	StyleHeading3
	StyleQuote
)

func (s StyleTag) String() string {
	switch s {
	case StyleNormal:
		return "normal"
	case StyleBold:
		return "bold"
	case StyleItalic:
		return "italic"
	case StyleCode:
		return "code"
	case StyleHeading1:
		return "h1"
	case StyleHeading2:
		return "h2"
	case StyleHeading3:
		return "h3"
	case StyleQuote:
		return "quote"
	default:
		return "unknown"
	}
}

// headingStyle maps a heading level (1-3) to its style tag.
func headingStyle(level int) StyleTag {
	switch level {
	case 1:
		return StyleHeading1
	case 2:
		return StyleHeading2
	default:
		return StyleHeading3
	}
}

// Multiplier returns the font size multiplier applied to the base size.
func (s StyleTag) Multiplier() float64 {
	switch s {
	case StyleHeading1:
		return 1.8
	case StyleHeading2:
		return 1.5
	case StyleHeading3:
		return 1.2
	case StyleCode:
		return 0.9
	default:
		return 1.0
	}
}

// SizeFor returns round(base * multiplier).
func (s StyleTag) SizeFor(base int) int {
	return int(math.Round(float64(base) * s.Multiplier()))
}

type fontFamily int

const (
	familyRegular fontFamily = iota
	familyBold
	familyMono
)

func (f fontFamily) String() string {
	switch f {
	case familyBold:
		return "bold"
	case familyMono:
		return "mono"
	default:
		return "regular"
	}
}

// family picks the font family for prose. Inline code spans stay on the
// regular family; only code-block lines use mono (see Resolver.ResolveMono).
func (s StyleTag) family() fontFamily {
	switch s {
	case StyleHeading1, StyleHeading2, StyleHeading3, StyleBold:
		return familyBold
	default:
		return familyRegular
	}
}

package memowall

import (
	"math"
	"strings"
	"unicode"
)

// Character budget bounds and the right-edge safety buffer.
const (
	minCharsPerLine = 10
	maxCharsPerLine = 200
	charBuffer      = 20
	// charWidthRatio approximates a full-width glyph as 0.7 em.
	charWidthRatio = 0.7
)

// MaxCharsForWidth estimates how many characters fit on one line of a
// canvas canvasWidth wide, minus margins, keeping a 20 character buffer.
// The result is always within [10, 200].
func MaxCharsForWidth(canvasWidth int, fontSize float64, margins int) int {
	if fontSize <= 0 {
		return minCharsPerLine
	}
	n := int(math.Floor(float64(canvasWidth-margins)/(fontSize*charWidthRatio))) - charBuffer
	return max(minCharsPerLine, min(n, maxCharsPerLine))
}

// Wrap hard-splits every line longer than maxChars runes into maxChars
// chunks. Existing newlines are kept; words are not respected.
func Wrap(text string, maxChars int) string {
	if maxChars <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		r := []rune(line)
		if len(r) <= maxChars {
			out = append(out, line)
			continue
		}
		for start := 0; start < len(r); start += maxChars {
			end := min(start+maxChars, len(r))
			out = append(out, string(r[start:end]))
		}
	}
	return strings.Join(out, "\n")
}

// WrapMeasured wraps text so that each line measures at most maxWidth
// pixels in m. Whitespace runs are preserved and tokens wider than a line
// are broken by rune.
func WrapMeasured(text string, m Measurer, maxWidth int) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, ln := range lines {
		if ln == "" || maxWidth <= 0 || width(m, ln) <= maxWidth {
			out = append(out, ln)
			continue
		}
		out = append(out, wrapLinePreservingSpaces(m, ln, maxWidth)...)
	}
	return strings.Join(out, "\n")
}

func width(m Measurer, s string) int {
	w, _ := m.Measure(s)
	return w
}

func wrapLinePreservingSpaces(m Measurer, line string, maxWidth int) []string {
	tokens := splitTextPreserveSpaces(line)
	var result []string
	var current strings.Builder
	currentWidth := 0

	flush := func() {
		result = append(result, current.String())
		current.Reset()
		currentWidth = 0
	}

	for _, token := range tokens {
		tokenWidth := width(m, token)
		if tokenWidth > maxWidth {
			if current.Len() > 0 {
				flush()
			}
			result = append(result, breakLongToken(m, token, maxWidth)...)
			continue
		}
		if currentWidth+tokenWidth > maxWidth && current.Len() > 0 {
			flush()
		}
		current.WriteString(token)
		currentWidth += tokenWidth
	}
	if current.Len() > 0 {
		flush()
	}
	if len(result) == 0 {
		result = append(result, "")
	}
	return result
}

func breakLongToken(m Measurer, token string, maxWidth int) []string {
	var parts []string
	var current strings.Builder
	w := 0
	for _, r := range token {
		ch := string(r)
		cw := width(m, ch)
		if w+cw > maxWidth && current.Len() > 0 {
			parts = append(parts, current.String())
			current.Reset()
			w = 0
		}
		current.WriteString(ch)
		w += cw
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

// splitTextPreserveSpaces splits s into alternating runs of whitespace and
// non-whitespace.
func splitTextPreserveSpaces(s string) []string {
	var parts []string
	var current strings.Builder
	lastSpace := false
	for i, r := range s {
		isSpace := unicode.IsSpace(r)
		if i > 0 && isSpace != lastSpace {
			parts = append(parts, current.String())
			current.Reset()
		}
		current.WriteRune(r)
		lastSpace = isSpace
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

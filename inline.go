package memowall

import (
	"regexp"
	"strings"
)

type spanKind int

const (
	spanBold spanKind = iota
	spanItalic
	spanCode
)

// span is a matched inline token. start/end cover the delimiters, content
// is the text between them.
type span struct {
	kind       spanKind
	start, end int
	content    string
}

// matchBold matches **...** at i with the shortest non-empty body.
func matchBold(s string, i int) (span, bool) {
	if !strings.HasPrefix(s[i:], "**") {
		return span{}, false
	}
	for j := i + 3; j+2 <= len(s); j++ {
		if s[j] == '*' && s[j+1] == '*' {
			return span{kind: spanBold, start: i, end: j + 2, content: s[i+2 : j]}, true
		}
	}
	return span{}, false
}

// isLoneStar reports whether s[i] is a '*' with no '*' on either side.
func isLoneStar(s string, i int) bool {
	if s[i] != '*' {
		return false
	}
	if i > 0 && s[i-1] == '*' {
		return false
	}
	if i+1 < len(s) && s[i+1] == '*' {
		return false
	}
	return true
}

// matchItalic matches a single-star span. Neither delimiter may touch
// another star, so ** tokens are never taken apart here.
func matchItalic(s string, i int) (span, bool) {
	if !isLoneStar(s, i) {
		return span{}, false
	}
	for j := i + 2; j < len(s); j++ {
		if isLoneStar(s, j) {
			return span{kind: spanItalic, start: i, end: j + 1, content: s[i+1 : j]}, true
		}
	}
	return span{}, false
}

func matchCode(s string, i int) (span, bool) {
	if s[i] != '`' {
		return span{}, false
	}
	j := strings.IndexByte(s[i+1:], '`')
	if j <= 0 {
		return span{}, false
	}
	end := i + 1 + j
	return span{kind: spanCode, start: i, end: end + 1, content: s[i+1 : end]}, true
}

type matcher func(s string, i int) (span, bool)

var inlineMatchers = []matcher{matchBold, matchItalic, matchCode}

// nextSpan finds the leftmost token at or after from. At a given position
// bold wins over italic, italic over code.
func nextSpan(s string, from int, matchers []matcher) (span, bool) {
	for i := from; i < len(s); i++ {
		for _, m := range matchers {
			if sp, ok := m(s, i); ok {
				return sp, true
			}
		}
	}
	return span{}, false
}

// style maps a span to its segment style. Bold and italic only restyle
// Normal text; inside headings and quotes they keep the base style. Code
// always wins.
func (k spanKind) style(base StyleTag) StyleTag {
	switch {
	case k == spanCode:
		return StyleCode
	case base != StyleNormal:
		return base
	case k == spanBold:
		return StyleBold
	default:
		return StyleItalic
	}
}

// parseInline splits text into styled segments. Matched spans are not
// re-scanned, so nothing nests. Unmatched runs, and emphasis outside Normal
// text, carry baseStyle. The result always has at least one segment.
func parseInline(text string, baseStyle StyleTag) []Segment {
	if text == "" {
		return []Segment{{Text: "", Style: baseStyle}}
	}
	var segs []Segment
	pos := 0
	for {
		sp, ok := nextSpan(text, pos, inlineMatchers)
		if !ok {
			break
		}
		if sp.start > pos {
			segs = append(segs, Segment{Text: text[pos:sp.start], Style: baseStyle})
		}
		segs = append(segs, Segment{Text: sp.content, Style: sp.kind.style(baseStyle)})
		pos = sp.end
	}
	if pos < len(text) {
		segs = append(segs, Segment{Text: text[pos:], Style: baseStyle})
	}
	if len(segs) == 0 {
		segs = append(segs, Segment{Text: text, Style: baseStyle})
	}
	return segs
}

// unwrapAll replaces every token found by m with its content, scanning left
// to right.
func unwrapAll(s string, m matcher) string {
	var b strings.Builder
	pos := 0
	for {
		sp, ok := nextSpan(s, pos, []matcher{m})
		if !ok {
			break
		}
		b.WriteString(s[pos:sp.start])
		b.WriteString(sp.content)
		pos = sp.end
	}
	if pos == 0 {
		return s
	}
	b.WriteString(s[pos:])
	return b.String()
}

func stripEmphasis(s string) string {
	for {
		next := unwrapAll(s, matchBold)
		next = unwrapAll(next, matchItalic)
		next = unwrapAll(next, matchCode)
		if next == s {
			return s
		}
		s = next
	}
}

var (
	stripHeadingRe = regexp.MustCompile(`^#{1,3}\s+`)
	stripListRe    = regexp.MustCompile(`^(\s*)[-*]\s+`)
	stripQuoteRe   = regexp.MustCompile(`^(>\s*)+`)
)

// StripMarkup removes memo markup and returns plain text. Fence lines are
// dropped, list markers become BulletGlyph, and emphasis markers are removed
// until none remain. Every line is stripped until stable, so a second call
// changes nothing.
func StripMarkup(text string) string {
	lines := splitLines(text)
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if stripped, ok := stripLine(line); ok {
			out = append(out, stripped)
		}
	}
	return strings.Join(out, "\n")
}

// stripLine reports false for lines that are, or reduce to, a fence.
func stripLine(line string) (string, bool) {
	for {
		if strings.HasPrefix(strings.TrimSpace(line), codeFence) {
			return "", false
		}
		next := stripQuoteRe.ReplaceAllString(line, "")
		next = stripHeadingRe.ReplaceAllString(next, "")
		// List markers go before emphasis so "* a *b*" keeps its bullet.
		next = stripListRe.ReplaceAllString(next, "${1}"+BulletGlyph)
		next = stripEmphasis(next)
		if next == line {
			return line, true
		}
		line = next
	}
}

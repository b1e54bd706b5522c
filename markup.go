package memowall

import (
	"regexp"
	"strings"
)

// Segment is a run of text drawn in a single style.
type Segment struct {
	Text  string
	Style StyleTag
}

// TableRow is one row of a pipe table.
type TableRow struct {
	Cells       []string
	IsHeader    bool
	IsSeparator bool
}

// Line is one parsed line of a Document. The concrete types are Heading,
// ListItem, Quote, CodeLine, TableLine and Plain.
type Line interface {
	isLine()
}

type Heading struct {
	Level    int // 1-3
	Segments []Segment
}

type ListItem struct {
	Indent   int // leading whitespace characters
	Segments []Segment
}

type Quote struct {
	Segments []Segment
}

// CodeLine is a verbatim line inside a fenced code block.
type CodeLine struct {
	Text string
}

type TableLine struct {
	Row TableRow
}

type Plain struct {
	Segments []Segment
}

func (Heading) isLine()   {}
func (ListItem) isLine()  {}
func (Quote) isLine()     {}
func (CodeLine) isLine()  {}
func (TableLine) isLine() {}
func (Plain) isLine()     {}

// Document is the ordered list of parsed lines. Fence delimiter lines never
// appear in it.
type Document []Line

// Segments returns the inline segments of l, or nil for code and table lines.
func Segments(l Line) []Segment {
	switch v := l.(type) {
	case Heading:
		return v.Segments
	case ListItem:
		return v.Segments
	case Quote:
		return v.Segments
	case Plain:
		return v.Segments
	}
	return nil
}

// BulletGlyph replaces list markers in parsed and stripped output.
const BulletGlyph = "• "

const codeFence = "```"

var (
	headingRe   = regexp.MustCompile(`^(#{1,3})\s+(.*)$`)
	listItemRe  = regexp.MustCompile(`^(\s*)[-*]\s+(.*)$`)
	separatorRe = regexp.MustCompile(`^[\-:\s]+$`)
)

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimSuffix(ln, "\r")
	}
	return lines
}

// Parse turns memo markdown into a Document. It never fails: anything it
// does not recognise becomes Plain text.
func Parse(text string) Document {
	lines := splitLines(text)
	doc := make(Document, 0, len(lines))
	inCode := false
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), codeFence) {
			inCode = !inCode
			continue
		}
		if inCode {
			doc = append(doc, CodeLine{Text: line})
			continue
		}
		if isTableRow(line) {
			next := ""
			hasNext := i+1 < len(lines)
			if hasNext {
				next = lines[i+1]
			}
			doc = append(doc, TableLine{Row: parseTableRow(line, next, hasNext)})
			continue
		}
		if trimmed := strings.TrimSpace(line); strings.HasPrefix(trimmed, ">") {
			content := strings.TrimPrefix(trimmed[1:], " ")
			doc = append(doc, Quote{Segments: parseInline(content, StyleQuote)})
			continue
		}
		doc = append(doc, parseLine(line))
	}
	return doc
}

// ParseLiteral builds a Document without interpreting any markup: each raw
// line becomes a single Normal segment.
func ParseLiteral(text string) Document {
	lines := splitLines(text)
	doc := make(Document, 0, len(lines))
	for _, line := range lines {
		doc = append(doc, Plain{Segments: []Segment{{Text: line, Style: StyleNormal}}})
	}
	return doc
}

func parseLine(line string) Line {
	if m := headingRe.FindStringSubmatch(line); m != nil {
		level := len(m[1])
		return Heading{Level: level, Segments: parseInline(m[2], headingStyle(level))}
	}
	if m := listItemRe.FindStringSubmatch(line); m != nil {
		segs := []Segment{{Text: BulletGlyph, Style: StyleNormal}}
		segs = append(segs, parseInline(m[2], StyleNormal)...)
		return ListItem{Indent: len([]rune(m[1])), Segments: segs}
	}
	return Plain{Segments: parseInline(line, StyleNormal)}
}

func isTableRow(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed != "" && strings.Contains(trimmed, "|")
}

func splitTableCells(line string) []string {
	s := strings.TrimSpace(line)
	s = strings.TrimPrefix(s, "|")
	s = strings.TrimSuffix(s, "|")
	cells := strings.Split(s, "|")
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}

func isSeparatorCells(cells []string) bool {
	for _, c := range cells {
		if c != "" && !separatorRe.MatchString(c) {
			return false
		}
	}
	return true
}

// parseTableRow classifies line; next is the following raw line and is only
// consulted when hasNext is set.
func parseTableRow(line, next string, hasNext bool) TableRow {
	cells := splitTableCells(line)
	if isSeparatorCells(cells) {
		return TableRow{Cells: cells, IsSeparator: true}
	}
	header := hasNext && isTableRow(next) && isSeparatorCells(splitTableCells(next))
	return TableRow{Cells: cells, IsHeader: header}
}

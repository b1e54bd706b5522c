package memowall

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extensionAST "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Dialect selects the markup front-end.
type Dialect string

const (
	// DialectMemo is the line-oriented memo syntax handled by Parse.
	DialectMemo Dialect = "memo"
	// DialectCommonMark parses with goldmark (GFM tables) and maps the
	// result onto the same line kinds.
	DialectCommonMark Dialect = "commonmark"
)

// ParseDialect validates a dialect name. Empty selects DialectMemo.
func ParseDialect(name string) (Dialect, error) {
	switch Dialect(strings.ToLower(name)) {
	case "", DialectMemo:
		return DialectMemo, nil
	case DialectCommonMark, "gfm":
		return DialectCommonMark, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDialect, name)
}

const cmListIndent = 2

type cmBuilder struct {
	src []byte
	doc Document
}

// ParseCommonMark parses src with goldmark. Like Parse it never fails.
// Nested emphasis collapses to the outermost style and headings deeper than
// level 3 render as level 3.
func ParseCommonMark(src []byte) Document {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	root := md.Parser().Parse(text.NewReader(src))
	b := &cmBuilder{src: src}
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		b.block(n, 0, StyleNormal)
		if n.NextSibling() != nil {
			b.doc = append(b.doc, Plain{Segments: []Segment{{Style: StyleNormal}}})
		}
	}
	return b.doc
}

func (b *cmBuilder) block(n ast.Node, depth int, base StyleTag) {
	switch nd := n.(type) {
	case *ast.Heading:
		level := min(nd.Level, 3)
		for _, segs := range b.inlineLines(nd, headingStyle(level)) {
			b.doc = append(b.doc, Heading{Level: level, Segments: segs})
		}
	case *ast.Paragraph, *ast.TextBlock:
		for _, segs := range b.inlineLines(n, base) {
			if base == StyleQuote {
				b.doc = append(b.doc, Quote{Segments: segs})
			} else {
				b.doc = append(b.doc, Plain{Segments: segs})
			}
		}
	case *ast.List:
		b.list(nd, depth)
	case *ast.Blockquote:
		for c := nd.FirstChild(); c != nil; c = c.NextSibling() {
			b.block(c, depth, StyleQuote)
		}
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			ln := strings.TrimRight(string(seg.Value(b.src)), "\r\n")
			b.doc = append(b.doc, CodeLine{Text: ln})
		}
	case *extensionAST.Table:
		b.table(nd)
	case *ast.ThematicBreak:
		b.doc = append(b.doc, TableLine{Row: TableRow{Cells: []string{"---"}, IsSeparator: true}})
	default:
		// HTML blocks and unknown extensions keep their raw text.
		lines := n.Lines()
		for i := 0; lines != nil && i < lines.Len(); i++ {
			seg := lines.At(i)
			ln := strings.TrimRight(string(seg.Value(b.src)), "\r\n")
			b.doc = append(b.doc, Plain{Segments: []Segment{{Text: ln, Style: base}}})
		}
	}
}

func (b *cmBuilder) list(list *ast.List, depth int) {
	start := list.Start
	if !list.IsOrdered() || start == 0 {
		start = 1
	}
	index := 0
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		li, ok := item.(*ast.ListItem)
		if !ok {
			continue
		}
		marker := BulletGlyph
		if list.IsOrdered() {
			marker = fmt.Sprintf("%d%c ", start+index, list.Marker)
		}
		first := true
		for c := li.FirstChild(); c != nil; c = c.NextSibling() {
			switch cn := c.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				for _, segs := range b.inlineLines(cn, StyleNormal) {
					if first {
						segs = append([]Segment{{Text: marker, Style: StyleNormal}}, segs...)
						first = false
					}
					b.doc = append(b.doc, ListItem{Indent: depth * cmListIndent, Segments: segs})
				}
			case *ast.List:
				b.list(cn, depth+1)
			default:
				b.block(cn, depth+1, StyleNormal)
			}
		}
		if first {
			b.doc = append(b.doc, ListItem{Indent: depth * cmListIndent, Segments: []Segment{{Text: marker, Style: StyleNormal}}})
		}
		index++
	}
}

func (b *cmBuilder) table(tbl *extensionAST.Table) {
	for node := tbl.FirstChild(); node != nil; node = node.NextSibling() {
		switch n := node.(type) {
		case *extensionAST.TableHeader:
			cells := b.cells(n)
			b.doc = append(b.doc, TableLine{Row: TableRow{Cells: cells, IsHeader: true}})
			sep := make([]string, len(cells))
			for i := range sep {
				sep[i] = "---"
			}
			b.doc = append(b.doc, TableLine{Row: TableRow{Cells: sep, IsSeparator: true}})
		case *extensionAST.TableRow:
			b.doc = append(b.doc, TableLine{Row: TableRow{Cells: b.cells(n)}})
		}
	}
}

func (b *cmBuilder) cells(row ast.Node) []string {
	var cells []string
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		if _, ok := cell.(*extensionAST.TableCell); !ok {
			continue
		}
		var sb strings.Builder
		for _, seg := range b.inlineSegments(cell, StyleNormal) {
			sb.WriteString(seg.Text)
		}
		cells = append(cells, strings.TrimSpace(sb.String()))
	}
	return cells
}

// inlineLines collects the inline content of n split at soft and hard line
// breaks, one segment slice per output line.
func (b *cmBuilder) inlineLines(n ast.Node, base StyleTag) [][]Segment {
	var lines [][]Segment
	var cur []Segment
	b.collectInline(n, base, false, &cur, &lines)
	if len(cur) > 0 || len(lines) == 0 {
		lines = append(lines, cur)
	}
	for i, segs := range lines {
		if len(segs) == 0 {
			lines[i] = []Segment{{Style: base}}
		}
	}
	return lines
}

func (b *cmBuilder) inlineSegments(n ast.Node, base StyleTag) []Segment {
	var cur []Segment
	var lines [][]Segment
	b.collectInline(n, base, false, &cur, &lines)
	var out []Segment
	for _, l := range lines {
		out = append(out, l...)
	}
	return append(out, cur...)
}

// collectInline walks inline children. styled marks that an enclosing
// emphasis already fixed the style, so inner emphasis does not nest.
// Emphasis inside headings and quotes keeps the base style.
func (b *cmBuilder) collectInline(node ast.Node, style StyleTag, styled bool, cur *[]Segment, lines *[][]Segment) {
	add := func(s string, st StyleTag) {
		if s == "" {
			return
		}
		if n := len(*cur); n > 0 && (*cur)[n-1].Style == st {
			(*cur)[n-1].Text += s
			return
		}
		*cur = append(*cur, Segment{Text: s, Style: st})
	}
	breakLine := func() {
		*lines = append(*lines, *cur)
		*cur = nil
	}
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			add(string(c.Segment.Value(b.src)), style)
			if c.SoftLineBreak() || c.HardLineBreak() {
				breakLine()
			}
		case *ast.String:
			add(string(c.Value), style)
		case *ast.Emphasis:
			next := style
			if !styled && style == StyleNormal {
				next = StyleItalic
				if c.Level >= 2 {
					next = StyleBold
				}
			}
			b.collectInline(c, next, true, cur, lines)
		case *ast.CodeSpan:
			var sb strings.Builder
			for g := c.FirstChild(); g != nil; g = g.NextSibling() {
				if t, ok := g.(*ast.Text); ok {
					sb.Write(t.Segment.Value(b.src))
				}
			}
			add(sb.String(), StyleCode)
		case *ast.AutoLink:
			add(string(c.Label(b.src)), style)
		case *ast.RawHTML:
			segs := c.Segments
			for i := 0; i < segs.Len(); i++ {
				seg := segs.At(i)
				add(string(seg.Value(b.src)), style)
			}
		default:
			// Links, images and extension inlines contribute their text.
			if child.HasChildren() {
				b.collectInline(child, style, styled, cur, lines)
			}
		}
	}
}

package memowall

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseInline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		base StyleTag
		want []Segment
	}{
		{"empty", "", StyleNormal, []Segment{{"", StyleNormal}}},
		{"plain keeps base", "just text", StyleQuote, []Segment{{"just text", StyleQuote}}},
		{"bold swallows inner stars", "**a*b*c**", StyleNormal, []Segment{{"a*b*c", StyleBold}}},
		{
			"italic pair",
			"*one* and *two*",
			StyleNormal,
			[]Segment{{"one", StyleItalic}, {" and ", StyleNormal}, {"two", StyleItalic}},
		},
		{
			"code in heading",
			"a `x` b",
			StyleHeading1,
			[]Segment{{"a ", StyleHeading1}, {"x", StyleCode}, {" b", StyleHeading1}},
		},
		{
			"all three kinds",
			"**b** *i* `c`",
			StyleNormal,
			[]Segment{{"b", StyleBold}, {" ", StyleNormal}, {"i", StyleItalic}, {" ", StyleNormal}, {"c", StyleCode}},
		},
		{
			"bold in heading keeps heading style",
			"Hello **World**",
			StyleHeading1,
			[]Segment{{"Hello ", StyleHeading1}, {"World", StyleHeading1}},
		},
		{
			"italic in quote keeps quote style",
			"said *softly*",
			StyleQuote,
			[]Segment{{"said ", StyleQuote}, {"softly", StyleQuote}},
		},
		{
			"code overrides quote",
			"run `make` **now**",
			StyleQuote,
			[]Segment{{"run ", StyleQuote}, {"make", StyleCode}, {" ", StyleQuote}, {"now", StyleQuote}},
		},
		{"code body is not scanned", "`**x**`", StyleNormal, []Segment{{"**x**", StyleCode}}},
		{"stars with spaces", "a * b", StyleNormal, []Segment{{"a * b", StyleNormal}}},
		{"unterminated bold", "**open", StyleNormal, []Segment{{"**open", StyleNormal}}},
		{"unterminated code", "`open", StyleNormal, []Segment{{"`open", StyleNormal}}},
		{"empty code span", "``", StyleNormal, []Segment{{"``", StyleNormal}}},
		{"empty bold body", "****", StyleNormal, []Segment{{"****", StyleNormal}}},
		{"triple stars", "***x***", StyleNormal, []Segment{{"*x", StyleBold}, {"*", StyleNormal}}},
		{
			"italic between digits",
			"2*3*4",
			StyleNormal,
			[]Segment{{"2", StyleNormal}, {"3", StyleItalic}, {"4", StyleNormal}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := parseInline(tt.in, tt.base)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseInline(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestParseInlineConcatenatesToVisibleText(t *testing.T) {
	in := "x **y** z *w* `v`"
	var out string
	for _, s := range parseInline(in, StyleNormal) {
		out += s.Text
	}
	if out != "x y z w v" {
		t.Fatalf("joined segments = %q", out)
	}
}

func TestStripMarkup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"heading", "## Title", "Title"},
		{"list", "- item **b**", BulletGlyph + "item b"},
		{"nested list keeps indent", "  * a *b*", "  " + BulletGlyph + "a b"},
		{"quote", "> > deep *i*", "deep i"},
		{"fences dropped", "```\ncode\n```", "code"},
		{"code span", "run `make`", "run make"},
		{"nested emphasis unwraps fully", "**a *b* c**", "a b c"},
		{"plain untouched", "nothing here", "nothing here"},
		{"heading inside quote", "> # x", "x"},
		{"quote inside heading", "# > x", "x"},
		{"fence inside quote dropped", "> ```\nkept", "kept"},
		{
			"mixed document",
			"# Title\n- item **b**\n> quote *i*\n```\ncode\n```",
			"Title\n" + BulletGlyph + "item b\nquote i\ncode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := StripMarkup(tt.in); got != tt.want {
				t.Errorf("StripMarkup(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripMarkupIsIdempotent(t *testing.T) {
	inputs := []string{
		"# Title\n\nNormal **bold** text",
		"- a\n  - b *c*\n> `d`",
		"***x***",
		"**a*b*c**",
		"| a | b |\n|---|---|",
		"> # x",
		"# > *y*",
		"> ```",
		"**-** item",
	}
	for _, in := range inputs {
		once := StripMarkup(in)
		if twice := StripMarkup(once); twice != once {
			t.Errorf("StripMarkup not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

package markdown

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// summary is a compact view of a paragraph for comparisons.
type summary struct {
	Text    string
	Bullet  bool
	Ordered bool
	Level   int
	Heading int
}

func summarize(ps []Paragraph) []summary {
	var out []summary
	for _, p := range ps {
		out = append(out, summary{p.Text(), p.Bullet, p.Ordered, p.Level, p.Heading})
	}
	return out
}

func TestParagraphs(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []summary
	}{
		{
			name: "empty",
			src:  "   ",
			want: nil,
		},
		{
			name: "star bullets",
			src:  "* one\n* two",
			want: []summary{{Text: "one", Bullet: true}, {Text: "two", Bullet: true}},
		},
		{
			name: "dash bullets with nesting",
			src:  "- parent\n  - child\n- sibling",
			want: []summary{
				{Text: "parent", Bullet: true},
				{Text: "child", Bullet: true, Level: 1},
				{Text: "sibling", Bullet: true},
			},
		},
		{
			name: "ordered",
			src:  "1. first\n2. second",
			want: []summary{{Text: "first", Bullet: true, Ordered: true}, {Text: "second", Bullet: true, Ordered: true}},
		},
		{
			name: "one paragraph per line",
			src:  "line one\nline two\n\nline three",
			want: []summary{{Text: "line one"}, {Text: "line two"}, {Text: "line three"}},
		},
		{
			name: "heading",
			src:  "## Setup\nInstall it.",
			want: []summary{{Text: "Setup", Heading: 2}, {Text: "Install it."}},
		},
		{
			name: "bullet box drops trailing prose",
			src:  "* one\n* two\n\nTrailing prose",
			want: []summary{{Text: "one", Bullet: true}, {Text: "two", Bullet: true}},
		},
		{
			name: "bullet box keeps later lists",
			src:  "- a\n\n## Aside\n\nprose\n\n- b",
			want: []summary{{Text: "a", Bullet: true}, {Text: "b", Bullet: true}},
		},
		{
			name: "list after prose is not a bullet box",
			src:  "Intro\n\n* a",
			want: []summary{{Text: "Intro"}, {Text: "a", Bullet: true}},
		},
		{
			name: "loose list item joins paragraphs",
			src:  "* first part\n\n  second part\n* next",
			want: []summary{{Text: "first part second part", Bullet: true}, {Text: "next", Bullet: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := summarize(Paragraphs(tt.src))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Paragraphs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParagraphsInlineRuns(t *testing.T) {
	ps := Paragraphs("Use **bold**, *italic*, `code` and ~~old~~ [docs](https://go.dev).")
	if len(ps) != 1 {
		t.Fatalf("len = %d, want 1", len(ps))
	}
	want := []Inline{
		{Text: "Use "},
		{Text: "bold", Bold: true},
		{Text: ", "},
		{Text: "italic", Italic: true},
		{Text: ", "},
		{Text: "code", Code: true},
		{Text: " and "},
		{Text: "old", Strike: true},
		{Text: " "},
		{Text: "docs", Link: "https://go.dev"},
		{Text: "."},
	}
	if diff := cmp.Diff(want, ps[0].Runs); diff != "" {
		t.Errorf("runs mismatch (-want +got):\n%s", diff)
	}
}

func TestParagraphsCodeBlock(t *testing.T) {
	ps := Paragraphs("Run:\n\n```\nmake\n\nmake test\n```")
	got := summarize(ps)
	want := []summary{{Text: "Run:"}, {Text: "make"}, {Text: ""}, {Text: "make test"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Paragraphs() mismatch (-want +got):\n%s", diff)
	}
	if !ps[1].Code || !ps[2].Code {
		t.Error("code block lines should be marked Code")
	}
}

func TestParagraphsEscapes(t *testing.T) {
	ps := Paragraphs(`Fish &amp; chips`)
	if len(ps) != 1 {
		t.Fatalf("len = %d, want 1", len(ps))
	}
	if got := ps[0].Text(); got != "Fish & chips" {
		t.Errorf("Text() = %q", got)
	}
}

func TestIsBulleted(t *testing.T) {
	tests := map[string]bool{
		"* a\n* b":       true,
		"- a":            true,
		"**bold** intro": false,
		"text\n* later":  false,
		"":               false,
	}
	for src, want := range tests {
		if got := IsBulleted(src); got != want {
			t.Errorf("IsBulleted(%q) = %v, want %v", src, got, want)
		}
	}
}

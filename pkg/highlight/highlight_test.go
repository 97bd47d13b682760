package highlight

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/slidegen/pkg/deck"
	apperrors "github.com/matzehuels/slidegen/pkg/errors"
)

func newTest(style string) *Highlighter {
	cs := deck.DefaultTheme().Code
	cs.Style = style
	return New(cs)
}

func lineTexts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text()
	}
	return out
}

func TestLinesPreserveText(t *testing.T) {
	tests := []struct {
		name string
		code string
		lang string
	}{
		{"python", "def f(x):\n    return x < 2 and x > 0", "python"},
		{"go", "package main\n\nfunc main() {}", "go"},
		{"unknown language", "some & text\nmore", "no-such-lang"},
		{"configured default", "print('hi')", ""},
		{"trailing newline", "x = 1\n", "python"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := newTest("monokai").Lines(tt.code, tt.lang)
			if err != nil {
				t.Fatalf("Lines() error = %v", err)
			}
			want := strings.Split(tt.code, "\n")
			if diff := cmp.Diff(want, lineTexts(lines)); diff != "" {
				t.Errorf("lines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLinesExpandTabs(t *testing.T) {
	lines, err := newTest("monokai").Lines("if x:\n\tpass", "python")
	if err != nil {
		t.Fatal(err)
	}
	if got := lines[1].Text(); got != "    pass" {
		t.Errorf("line = %q, want tab expanded", got)
	}
}

func TestLinesColorsReadable(t *testing.T) {
	code := "import os\n\n# comment\ndef main():\n    return \"s\" + str(42)"
	for _, style := range []string{"monokai", "github", "bw", "solarized-light", "dracula"} {
		t.Run(style, func(t *testing.T) {
			h := newTest(style)
			lines, err := h.Lines(code, "python")
			if err != nil {
				t.Fatalf("Lines() error = %v", err)
			}
			for _, line := range lines {
				for _, tok := range line {
					if tok.Color == nil {
						t.Fatalf("token %q has no color", tok.Text)
					}
					if r := tok.Color.ContrastRatio(h.Fill); r < deck.MinCodeContrast {
						t.Errorf("token %q color %v contrast %.2f", tok.Text, *tok.Color, r)
					}
				}
			}
		})
	}
}

func TestLinesHighlights(t *testing.T) {
	lines, err := newTest("monokai").Lines("def main():\n    pass", "python")
	if err != nil {
		t.Fatal(err)
	}
	colors := map[deck.Color]bool{}
	for _, line := range lines {
		for _, tok := range line {
			colors[*tok.Color] = true
		}
	}
	if len(colors) < 2 {
		t.Errorf("got %d distinct colors, want keywords highlighted", len(colors))
	}
	if len(lines[0]) < 2 {
		t.Errorf("first line has %d tokens, want several", len(lines[0]))
	}
}

func TestBWUsesFallback(t *testing.T) {
	h := newTest("bw")
	lines, err := h.Lines("x = 1", "python")
	if err != nil {
		t.Fatal(err)
	}
	for _, tok := range lines[0] {
		if *tok.Color != h.Fallback {
			t.Errorf("token %q color = %v, want fallback %v", tok.Text, *tok.Color, h.Fallback)
		}
	}
}

func TestHTML(t *testing.T) {
	out, err := newTest("monokai").HTML("x = 1", "python")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "<pre") {
		t.Errorf("HTML() wraps output in <pre>: %s", out)
	}
	if !strings.Contains(out, "style=\"") || strings.Contains(out, "class=\"") {
		t.Errorf("HTML() should use inline styles: %s", out)
	}
}

func TestUnknownStyle(t *testing.T) {
	_, err := newTest("no-such-style").Lines("x", "python")
	if !apperrors.Is(err, apperrors.ErrCodeInvalidTheme) {
		t.Errorf("error = %v, want INVALID_THEME", err)
	}
}

func TestSpanStyleMerge(t *testing.T) {
	red := deck.RGB(255, 0, 0)
	tests := []struct {
		attr string
		want spanStyle
	}{
		{"color:#ff0000", spanStyle{color: &red}},
		{"background-color:#ffffff", spanStyle{}},
		{"color: #FF0000; font-weight: bold", spanStyle{color: &red, bold: true}},
		{"font-style:italic", spanStyle{italic: true}},
		{"color:inherit", spanStyle{}},
		{"", spanStyle{}},
	}
	for _, tt := range tests {
		t.Run(tt.attr, func(t *testing.T) {
			got := spanStyle{}.merge(tt.attr)
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(spanStyle{})); diff != "" {
				t.Errorf("merge(%q) mismatch (-want +got):\n%s", tt.attr, diff)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	paras, err := newTest("monokai").Format("a = 1\n\nb = 2", "python")
	if err != nil {
		t.Fatal(err)
	}
	if len(paras) != 3 {
		t.Fatalf("got %d paragraphs, want 3", len(paras))
	}
	if len(paras[1].Runs) != 0 {
		t.Errorf("blank line runs = %+v", paras[1].Runs)
	}
	if paras[2].Text() != "b = 2" {
		t.Errorf("third line = %q", paras[2].Text())
	}
}

func TestStyles(t *testing.T) {
	names := Styles()
	if len(names) == 0 {
		t.Fatal("no styles registered")
	}
	if !HasStyle("monokai") || HasStyle("no-such-style") {
		t.Error("HasStyle mismatch")
	}
}

var _ deck.CodeFormatter = (*Highlighter)(nil)

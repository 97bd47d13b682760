package markdown

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/util"
)

// Inline is a run of text sharing one style.
type Inline struct {
	Text   string
	Bold   bool
	Italic bool
	Code   bool
	Strike bool
	Link   string
}

func (in Inline) sameStyle(o Inline) bool {
	return in.Bold == o.Bold && in.Italic == o.Italic && in.Code == o.Code &&
		in.Strike == o.Strike && in.Link == o.Link
}

// PlainText concatenates the text of runs.
func PlainText(runs []Inline) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// inlineWalker flattens an inline subtree into styled runs.
// Soft and hard line breaks are emitted as "\n" when breaks is set and as a
// single space otherwise.
type inlineWalker struct {
	source []byte
	breaks bool
	out    []Inline
}

func (w *inlineWalker) emit(style Inline, s string) {
	if s == "" {
		return
	}
	if n := len(w.out); n > 0 && w.out[n-1].sameStyle(style) {
		w.out[n-1].Text += s
		return
	}
	style.Text = s
	w.out = append(w.out, style)
}

func (w *inlineWalker) lineBreak(style Inline) {
	if w.breaks {
		w.emit(style, "\n")
	} else {
		w.emit(style, " ")
	}
}

func (w *inlineWalker) walk(parent ast.Node, style Inline) {
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		switch n := c.(type) {
		case *ast.Text:
			value := n.Segment.Value(w.source)
			if !style.Code {
				value = util.ResolveEntityNames(util.UnescapePunctuations(value))
			}
			w.emit(style, string(value))
			if n.SoftLineBreak() || n.HardLineBreak() {
				w.lineBreak(style)
			}
		case *ast.String:
			w.emit(style, string(n.Value))
		case *ast.CodeSpan:
			s := style
			s.Code = true
			w.walk(n, s)
		case *ast.Emphasis:
			s := style
			if n.Level >= 2 {
				s.Bold = true
			} else {
				s.Italic = true
			}
			w.walk(n, s)
		case *east.Strikethrough:
			s := style
			s.Strike = true
			w.walk(n, s)
		case *ast.Link:
			s := style
			s.Link = string(n.Destination)
			w.walk(n, s)
		case *ast.AutoLink:
			s := style
			s.Link = string(n.URL(w.source))
			w.emit(s, string(n.Label(w.source)))
		case *ast.RawHTML:
			for i := 0; i < n.Segments.Len(); i++ {
				seg := n.Segments.At(i)
				w.emit(style, string(seg.Value(w.source)))
			}
		default:
			w.walk(n, style)
		}
	}
}

// inlines flattens the inline children of n.
func inlines(n ast.Node, source []byte, breaks bool) []Inline {
	w := &inlineWalker{source: source, breaks: breaks}
	w.walk(n, Inline{})
	return trimRuns(w.out)
}

// trimRuns strips leading and trailing spaces from a run sequence.
func trimRuns(runs []Inline) []Inline {
	for len(runs) > 0 {
		runs[0].Text = strings.TrimLeft(runs[0].Text, " \t")
		if runs[0].Text != "" {
			break
		}
		runs = runs[1:]
	}
	for len(runs) > 0 {
		last := len(runs) - 1
		runs[last].Text = strings.TrimRight(runs[last].Text, " \t")
		if runs[last].Text != "" {
			break
		}
		runs = runs[:last]
	}
	return runs
}

// splitLines cuts a run sequence at "\n" into one sequence per line.
func splitLines(runs []Inline) [][]Inline {
	lines := [][]Inline{nil}
	for _, r := range runs {
		parts := strings.Split(r.Text, "\n")
		for i, p := range parts {
			if i > 0 {
				lines = append(lines, nil)
			}
			if p == "" {
				continue
			}
			seg := r
			seg.Text = p
			lines[len(lines)-1] = append(lines[len(lines)-1], seg)
		}
	}
	return lines
}

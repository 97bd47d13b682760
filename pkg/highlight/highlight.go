package highlight

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	xhtml "golang.org/x/net/html"

	"github.com/matzehuels/slidegen/pkg/deck"
	apperrors "github.com/matzehuels/slidegen/pkg/errors"
)

// Token is a styled span of one line.
type Token struct {
	Text   string
	Color  *deck.Color
	Bold   bool
	Italic bool
}

// Line is the tokens of one source line.
type Line []Token

// Text returns the line's plain text.
func (l Line) Text() string {
	var b strings.Builder
	for _, t := range l {
		b.WriteString(t.Text)
	}
	return b.String()
}

// Highlighter colors code with a chroma style.
type Highlighter struct {
	Style    string     // chroma style name
	Language string     // lexer used when a block has no language
	Fill     deck.Color // code box background
	Fallback deck.Color // text color when the style has none
	TabWidth int
}

// New returns a Highlighter configured from a theme's code style.
func New(cs deck.CodeStyle) *Highlighter {
	return &Highlighter{
		Style:    cs.Style,
		Language: cs.Language,
		Fill:     cs.Fill,
		Fallback: cs.Color,
		TabWidth: cs.TabWidth,
	}
}

// Styles returns the names of every registered chroma style, sorted.
func Styles() []string {
	names := styles.Names()
	sort.Strings(names)
	return names
}

// HasStyle reports whether name is a registered chroma style.
func HasStyle(name string) bool { return lookupStyle(name) != nil }

func lookupStyle(name string) *chroma.Style {
	if s, ok := styles.Registry[name]; ok {
		return s
	}
	return styles.Registry[strings.ToLower(name)]
}

func (h *Highlighter) style() (*chroma.Style, error) {
	if h.Style == "" {
		return styles.Fallback, nil
	}
	s := lookupStyle(h.Style)
	if s == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidTheme, "unknown code style %q", h.Style)
	}
	return s, nil
}

// lexer picks by fence language, then the configured language, then
// chroma's fallback.
func (h *Highlighter) lexer(lang string) chroma.Lexer {
	for _, name := range []string{lang, h.Language} {
		if name == "" {
			continue
		}
		if l := lexers.Get(name); l != nil {
			return chroma.Coalesce(l)
		}
	}
	return chroma.Coalesce(lexers.Fallback)
}

// HTML formats code as inline-styled spans without a surrounding <pre>.
func (h *Highlighter) HTML(code, lang string) (string, error) {
	style, err := h.style()
	if err != nil {
		return "", err
	}
	it, err := h.lexer(lang).Tokenise(nil, deck.ExpandTabs(code, h.TabWidth))
	if err != nil {
		return "", fmt.Errorf("tokenise: %w", err)
	}
	f := html.New(html.WithClasses(false), html.PreventSurroundingPre(true))
	var buf bytes.Buffer
	if err := f.Format(&buf, style, it); err != nil {
		return "", fmt.Errorf("format: %w", err)
	}
	return buf.String(), nil
}

// Lines highlights code and returns one Line per source line.
func (h *Highlighter) Lines(code, lang string) ([]Line, error) {
	style, err := h.style()
	if err != nil {
		return nil, err
	}
	markup, err := h.HTML(code, lang)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<div id="code">` + markup + `</div>`))
	if err != nil {
		return nil, fmt.Errorf("parse highlighted html: %w", err)
	}

	base := h.baseColor(style)
	w := &walker{lines: []Line{nil}}
	w.walk(doc.Find("#code"), spanStyle{})

	want := strings.Count(code, "\n") + 1
	lines := w.lines
	if len(lines) > want {
		lines = lines[:want]
	}
	for len(lines) < want {
		lines = append(lines, nil)
	}
	for _, line := range lines {
		for i := range line {
			c := base
			if line[i].Color != nil {
				c = deck.Readable(*line[i].Color, h.Fill, base)
			}
			line[i].Color = &c
		}
	}
	return lines, nil
}

// Format implements deck.CodeFormatter.
func (h *Highlighter) Format(code, lang string) ([]deck.Paragraph, error) {
	lines, err := h.Lines(code, lang)
	if err != nil {
		return nil, err
	}
	out := make([]deck.Paragraph, len(lines))
	for i, line := range lines {
		for _, t := range line {
			out[i].Runs = append(out[i].Runs, deck.Run{
				Text:   t.Text,
				Color:  t.Color,
				Bold:   t.Bold,
				Italic: t.Italic,
			})
		}
	}
	return out, nil
}

// baseColor is the style's default text color if it reads on the fill,
// else the configured fallback.
func (h *Highlighter) baseColor(style *chroma.Style) deck.Color {
	for _, tt := range []chroma.TokenType{chroma.Text, chroma.Background} {
		if c := style.Get(tt).Colour; c.IsSet() {
			return deck.Readable(deck.RGB(c.Red(), c.Green(), c.Blue()), h.Fill, h.Fallback)
		}
	}
	return h.Fallback
}

type spanStyle struct {
	color  *deck.Color
	bold   bool
	italic bool
}

// merge overlays the declarations of a style attribute on s. Only the
// color declaration sets the text color; background-color is ignored.
func (s spanStyle) merge(attr string) spanStyle {
	for _, decl := range strings.Split(attr, ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		val = strings.ToLower(strings.TrimSpace(val))
		switch prop {
		case "color":
			if c, err := deck.ParseColor(val); err == nil {
				s.color = &c
			}
		case "font-weight":
			s.bold = val == "bold"
		case "font-style":
			s.italic = val == "italic"
		}
	}
	return s
}

type walker struct {
	lines []Line
}

func (w *walker) walk(sel *goquery.Selection, st spanStyle) {
	sel.Contents().Each(func(_ int, child *goquery.Selection) {
		n := child.Get(0)
		switch n.Type {
		case xhtml.TextNode:
			w.text(n.Data, st)
		case xhtml.ElementNode:
			inner := st
			if attr, ok := child.Attr("style"); ok {
				inner = st.merge(attr)
			}
			w.walk(child, inner)
		}
	})
}

func (w *walker) text(s string, st spanStyle) {
	for i, part := range strings.Split(s, "\n") {
		if i > 0 {
			w.lines = append(w.lines, nil)
		}
		if part == "" {
			continue
		}
		last := &w.lines[len(w.lines)-1]
		*last = append(*last, Token{Text: part, Color: st.color, Bold: st.bold, Italic: st.italic})
	}
}

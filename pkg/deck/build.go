package deck

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/matzehuels/slidegen/pkg/errors"
	"github.com/matzehuels/slidegen/pkg/markdown"
	"github.com/matzehuels/slidegen/pkg/outline"
)

// CodeFormatter turns source code into code-box paragraphs, one per line.
type CodeFormatter interface {
	Format(source, language string) ([]Paragraph, error)
}

// PlainCode formats code without highlighting.
type PlainCode struct {
	TabWidth int
}

// Format implements CodeFormatter.
func (p PlainCode) Format(source, _ string) ([]Paragraph, error) {
	source = ExpandTabs(source, p.TabWidth)
	lines := strings.Split(source, "\n")
	out := make([]Paragraph, len(lines))
	for i, line := range lines {
		if line != "" {
			out[i].Runs = []Run{{Text: line}}
		}
	}
	return out, nil
}

// ExpandTabs replaces tabs with spaces up to the next tab stop.
func ExpandTabs(s string, width int) string {
	if width <= 0 || !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		switch r {
		case '\t':
			n := width - col%width
			b.WriteString(strings.Repeat(" ", n))
			col += n
		case '\n':
			b.WriteRune(r)
			col = 0
		default:
			b.WriteRune(r)
			col++
		}
	}
	return b.String()
}

// Builder lays out outlines with one theme.
type Builder struct {
	Theme Theme
	Code  CodeFormatter
	Now   func() time.Time
}

// Build lays out every record of o with theme th. A nil code formatter
// falls back to PlainCode.
func Build(o *outline.Outline, th Theme, code CodeFormatter) (*Deck, error) {
	b := &Builder{Theme: th, Code: code}
	return b.Build(o)
}

// Build lays out o.
func (b *Builder) Build(o *outline.Outline) (*Deck, error) {
	if o == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidOutline, "nil outline")
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if b.Code == nil {
		b.Code = PlainCode{TabWidth: b.Theme.Code.TabWidth}
	}
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}

	d := &Deck{
		ID:      uuid.NewString(),
		Title:   o.DeckTitle(),
		Author:  o.Author,
		Created: now().UTC(),
		Width:   b.Theme.Width,
		Height:  b.Theme.Height,
		Slides:  make([]*Slide, 0, len(o.Slides)),
	}
	for i, rec := range o.Slides {
		s, err := b.slide(i, rec)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
		d.Slides = append(d.Slides, s)
	}
	return d, nil
}

func (b *Builder) slide(i int, rec outline.Slide) (*Slide, error) {
	layout := rec.EffectiveLayout()
	s := &Slide{
		Index:  i,
		Title:  rec.Title,
		Layout: string(layout),
		Kind:   markdown.Classify(rec.Content),
		Notes:  strings.TrimSpace(rec.Notes),
	}
	if layout == outline.LayoutTitle {
		b.titleSlide(s, rec)
		return s, nil
	}

	th := b.Theme
	s.Shapes = append(s.Shapes, &TextBox{
		Role:       RoleTitle,
		Frame:      th.Title,
		Paragraphs: b.lines(rec.Title, th.TitleText, AlignLeft),
		WordWrap:   true,
	})

	explain := strings.TrimSpace(rec.Explain)
	content := strings.TrimSpace(rec.Content)
	if s.Kind == markdown.KindCode && explain == "" {
		explain = markdown.StripCode(content)
	}

	switch layout {
	case outline.LayoutFull:
		body := th.Body()
		switch {
		case content != "":
			if explain != "" {
				s.Notes = joinNotes(s.Notes, explain)
			}
			shape, err := b.content(s.Kind, content, body)
			if err != nil {
				return nil, err
			}
			s.Shapes = append(s.Shapes, shape)
		case explain != "":
			s.Shapes = append(s.Shapes, b.textBox(RoleExplain, explain, body))
		}
	default:
		if explain != "" {
			s.Shapes = append(s.Shapes, b.textBox(RoleExplain, explain, th.Explain))
		}
		if content != "" {
			shape, err := b.content(s.Kind, content, th.Content)
			if err != nil {
				return nil, err
			}
			s.Shapes = append(s.Shapes, shape)
		}
	}
	return s, nil
}

func (b *Builder) titleSlide(s *Slide, rec outline.Slide) {
	th := b.Theme
	hero := th.TitleText
	hero.Size = th.HeroSize
	frame := Rect{X: th.Title.X, Y: th.Height*35/100 - Inches(0.5), W: th.Title.W, H: Inches(1)}
	s.Shapes = append(s.Shapes, &TextBox{
		Role:       RoleTitle,
		Frame:      frame,
		Paragraphs: b.lines(rec.Title, hero, AlignCenter),
		WordWrap:   true,
		Anchor:     "b",
	})
	sub := strings.TrimSpace(rec.Explain)
	if sub == "" {
		return
	}
	style := TextStyle{Size: th.SubtitleSize, Color: th.Text.Color.Blend(RGB(255, 255, 255), 0.35)}
	s.Shapes = append(s.Shapes, &TextBox{
		Role:       RoleSubtitle,
		Frame:      Rect{X: frame.X, Y: frame.Bottom() + Inches(0.2), W: frame.W, H: Inches(1.5)},
		Paragraphs: b.lines(sub, style, AlignCenter),
		WordWrap:   true,
		Anchor:     "t",
	})
}

func (b *Builder) content(kind markdown.Kind, content string, frame Rect) (Shape, error) {
	switch kind {
	case markdown.KindTable:
		t, err := markdown.ParseTable(content)
		if err != nil {
			return b.textBox(RoleContent, content, frame), nil
		}
		return b.table(t, frame), nil
	case markdown.KindCode:
		return b.codeBox(markdown.ExtractCode(content), frame)
	default:
		return b.textBox(RoleContent, content, frame), nil
	}
}

func (b *Builder) styled(text string, st TextStyle, align Align) Paragraph {
	p := Paragraph{Size: st.Size, Align: align}
	if text != "" {
		c := st.Color
		p.Runs = []Run{{Text: text, Font: st.Font, Size: st.Size, Color: &c, Bold: st.Bold}}
	}
	return p
}

// lines gives each non-blank line of text its own paragraph. Text with no
// visible line still yields one empty paragraph so the box keeps its
// formatting.
func (b *Builder) lines(text string, st TextStyle, align Align) []Paragraph {
	var out []Paragraph
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, b.styled(line, st, align))
		}
	}
	if len(out) == 0 {
		out = append(out, b.styled("", st, align))
	}
	return out
}

// textBox renders markdown text. List items become bullets; other blocks
// become one paragraph per line.
func (b *Builder) textBox(role Role, text string, frame Rect) *TextBox {
	th := b.Theme
	box := &TextBox{Role: role, Frame: frame, WordWrap: true, Autofit: true}
	for _, mp := range markdown.Paragraphs(text) {
		p := Paragraph{
			Size:    th.Text.Size,
			Level:   mp.Level,
			Bullet:  mp.Bullet,
			Ordered: mp.Ordered,
		}
		for _, in := range mp.Runs {
			c := th.Text.Color
			r := Run{
				Text:   in.Text,
				Font:   th.Text.Font,
				Size:   th.Text.Size,
				Color:  &c,
				Bold:   in.Bold || mp.Heading > 0,
				Italic: in.Italic,
				Strike: in.Strike,
				Link:   in.Link,
			}
			if in.Code || mp.Code {
				r.Font = th.Code.Font
			}
			p.Runs = append(p.Runs, r)
		}
		box.Paragraphs = append(box.Paragraphs, p)
	}
	return box
}

func (b *Builder) codeBox(code markdown.Code, frame Rect) (*TextBox, error) {
	th := b.Theme
	lang := code.Language
	if lang == "" {
		lang = th.Code.Language
	}
	paras, err := b.Code.Format(code.Source, lang)
	if err != nil {
		return nil, err
	}
	for i := range paras {
		paras[i].Size = th.Code.Size
		for j := range paras[i].Runs {
			r := &paras[i].Runs[j]
			r.Font = th.Code.Font
			r.Size = th.Code.Size
			if r.Color == nil {
				c := th.Code.Color
				r.Color = &c
			}
		}
	}
	fill := th.Code.Fill
	return &TextBox{
		Role:       RoleCode,
		Frame:      frame,
		Paragraphs: paras,
		Fill:       &fill,
		Insets:     &Insets{},
		WordWrap:   true,
		Language:   lang,
	}, nil
}

func (b *Builder) table(t *markdown.Table, frame Rect) *Table {
	th := b.Theme
	cols := t.Columns()
	rows := 1 + len(t.Rows)

	tbl := &Table{
		Frame:      frame,
		Columns:    make([]EMU, cols),
		RowHeight:  frame.H / EMU(rows),
		FontSize:   th.Table.Size,
		HeaderBold: th.Table.HeaderBold,
		StyleID:    th.Table.StyleID,
	}
	w := frame.W / EMU(cols)
	for i := range tbl.Columns {
		tbl.Columns[i] = w
	}
	tbl.Columns[cols-1] += frame.W - w*EMU(cols)

	tbl.Rows = append(tbl.Rows, b.row(t.Header, t.Align, th.Table.HeaderBold))
	for _, r := range t.Rows {
		tbl.Rows = append(tbl.Rows, b.row(r, t.Align, false))
	}
	return tbl
}

func (b *Builder) row(cells []markdown.Cell, aligns []markdown.Align, bold bool) []Cell {
	th := b.Theme
	out := make([]Cell, len(cells))
	for i, cell := range cells {
		out[i].Align = alignOf(aligns[i])
		for _, in := range cell {
			r := Run{
				Text:   in.Text,
				Size:   th.Table.Size,
				Bold:   bold || in.Bold,
				Italic: in.Italic,
				Strike: in.Strike,
				Link:   in.Link,
			}
			if in.Code {
				r.Font = th.Code.Font
			}
			out[i].Runs = append(out[i].Runs, r)
		}
	}
	return out
}

func alignOf(a markdown.Align) Align {
	switch a {
	case markdown.AlignCenter:
		return AlignCenter
	case markdown.AlignRight:
		return AlignRight
	case markdown.AlignLeft:
		return AlignLeft
	default:
		return ""
	}
}

func joinNotes(notes, extra string) string {
	if notes == "" {
		return extra
	}
	return notes + "\n\n" + extra
}

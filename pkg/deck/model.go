package deck

import (
	"time"

	"github.com/matzehuels/slidegen/pkg/markdown"
)

// Align is horizontal paragraph alignment.
type Align string

const (
	AlignLeft   Align = "l"
	AlignCenter Align = "ctr"
	AlignRight  Align = "r"
)

// Run is a span of text with uniform formatting. Zero values inherit
// from the paragraph (Size) or the renderer's defaults.
type Run struct {
	Text   string  `json:"text"`
	Font   string  `json:"font,omitempty"`
	Size   float64 `json:"size,omitempty"` // points
	Color  *Color  `json:"color,omitempty"`
	Bold   bool    `json:"bold,omitempty"`
	Italic bool    `json:"italic,omitempty"`
	Strike bool    `json:"strike,omitempty"`
	Link   string  `json:"link,omitempty"`
}

// Paragraph is a line of runs in a text frame.
type Paragraph struct {
	Runs    []Run   `json:"runs,omitempty"`
	Size    float64 `json:"size,omitempty"` // end-of-paragraph size in points
	Level   int     `json:"level,omitempty"`
	Bullet  bool    `json:"bullet,omitempty"`
	Ordered bool    `json:"ordered,omitempty"`
	Align   Align   `json:"align,omitempty"`
}

// Text returns the concatenated run text.
func (p Paragraph) Text() string {
	s := ""
	for _, r := range p.Runs {
		s += r.Text
	}
	return s
}

// Insets are text frame margins. A nil *Insets keeps renderer defaults.
type Insets struct {
	L EMU `json:"l"`
	T EMU `json:"t"`
	R EMU `json:"r"`
	B EMU `json:"b"`
}

// Role tells sinks what a shape is for.
type Role string

const (
	RoleTitle    Role = "title"
	RoleSubtitle Role = "subtitle"
	RoleExplain  Role = "explain"
	RoleContent  Role = "content"
	RoleCode     Role = "code"
	RoleTable    Role = "table"
)

// Shape is anything placed on a slide.
type Shape interface {
	Bounds() Rect
	ShapeRole() Role
}

// TextBox is a positioned text frame.
type TextBox struct {
	Role       Role        `json:"role"`
	Frame      Rect        `json:"frame"`
	Paragraphs []Paragraph `json:"paragraphs"`
	Fill       *Color      `json:"fill,omitempty"`
	Insets     *Insets     `json:"insets,omitempty"`
	WordWrap   bool        `json:"word_wrap"`
	Autofit    bool        `json:"autofit,omitempty"`
	Anchor     string      `json:"anchor,omitempty"` // "t", "ctr", "b"
	Language   string      `json:"language,omitempty"` // code boxes only
}

func (t *TextBox) Bounds() Rect    { return t.Frame }
func (t *TextBox) ShapeRole() Role { return t.Role }

// Cell is one table cell.
type Cell struct {
	Runs  []Run `json:"runs,omitempty"`
	Align Align `json:"align,omitempty"`
}

// Table is a positioned grid. Every row has len(Columns) cells; row 0 is
// the header.
type Table struct {
	Frame      Rect     `json:"frame"`
	Columns    []EMU    `json:"columns"`
	RowHeight  EMU      `json:"row_height"`
	Rows       [][]Cell `json:"rows"`
	FontSize   float64  `json:"font_size"`
	HeaderBold bool     `json:"header_bold"`
	StyleID    string   `json:"style_id,omitempty"`
}

func (t *Table) Bounds() Rect    { return t.Frame }
func (t *Table) ShapeRole() Role { return RoleTable }

// Slide is one rendered outline record.
type Slide struct {
	Index  int           `json:"index"`
	Title  string        `json:"title"`
	Layout string        `json:"layout"`
	Kind   markdown.Kind `json:"-"`
	Shapes []Shape       `json:"-"`
	Notes  string        `json:"notes,omitempty"`
}

// ContentKind returns the kind name of the content column.
func (s *Slide) ContentKind() string { return s.Kind.String() }

// Deck is a fully laid-out presentation.
type Deck struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Author  string    `json:"author,omitempty"`
	Created time.Time `json:"created"`
	Width   EMU       `json:"width"`
	Height  EMU       `json:"height"`
	Slides  []*Slide  `json:"slides"`
}

// HasNotes reports whether any slide carries speaker notes.
func (d *Deck) HasNotes() bool {
	for _, s := range d.Slides {
		if s.Notes != "" {
			return true
		}
	}
	return false
}

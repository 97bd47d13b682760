package sink

import (
	"encoding/json"

	"github.com/matzehuels/slidegen/pkg/deck"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	inches bool
	theme  string
}

// WithJSONInches reports geometry in inches instead of EMU.
func WithJSONInches() JSONOption { return func(r *jsonRenderer) { r.inches = true } }

// WithJSONStyle records the code style name in the output.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.theme = s } }

type jsonOutput struct {
	ID      string      `json:"id"`
	Title   string      `json:"title,omitempty"`
	Author  string      `json:"author,omitempty"`
	Created string      `json:"created"`
	Unit    string      `json:"unit"`
	Width   float64     `json:"width"`
	Height  float64     `json:"height"`
	Style   string      `json:"style,omitempty"`
	Slides  []jsonSlide `json:"slides"`
}

type jsonSlide struct {
	Index   int         `json:"index"`
	Title   string      `json:"title"`
	Layout  string      `json:"layout"`
	Content string      `json:"content"`
	Notes   string      `json:"notes,omitempty"`
	Shapes  []jsonShape `json:"shapes"`
}

type jsonShape struct {
	Role       string            `json:"role"`
	X          float64           `json:"x"`
	Y          float64           `json:"y"`
	Width      float64           `json:"width"`
	Height     float64           `json:"height"`
	Fill       string            `json:"fill,omitempty"`
	Paragraphs []deck.Paragraph  `json:"paragraphs,omitempty"`
	Rows       [][]deck.Cell     `json:"rows,omitempty"`
	Columns    []float64         `json:"columns,omitempty"`
	Style      map[string]string `json:"style,omitempty"`
}

// RenderJSON exports the resolved slide geometry as pretty-printed JSON.
// Text boxes carry their paragraphs and tables their rows, so external
// tools can redraw a deck without re-running layout.
func RenderJSON(d *deck.Deck, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	unit := "emu"
	conv := func(e deck.EMU) float64 { return float64(e) }
	if r.inches {
		unit = "in"
		conv = func(e deck.EMU) float64 { return e.Inches() }
	}

	out := jsonOutput{
		ID:      d.ID,
		Title:   d.Title,
		Author:  d.Author,
		Created: d.Created.Format("2006-01-02T15:04:05Z07:00"),
		Unit:    unit,
		Width:   conv(d.Width),
		Height:  conv(d.Height),
		Style:   r.theme,
		Slides:  make([]jsonSlide, 0, len(d.Slides)),
	}
	for _, s := range d.Slides {
		js := jsonSlide{
			Index:   s.Index,
			Title:   s.Title,
			Layout:  s.Layout,
			Content: s.ContentKind(),
			Notes:   s.Notes,
			Shapes:  make([]jsonShape, 0, len(s.Shapes)),
		}
		for _, sh := range s.Shapes {
			js.Shapes = append(js.Shapes, buildJSONShape(sh, conv))
		}
		out.Slides = append(out.Slides, js)
	}
	return json.MarshalIndent(out, "", "  ")
}

func buildJSONShape(sh deck.Shape, conv func(deck.EMU) float64) jsonShape {
	b := sh.Bounds()
	js := jsonShape{
		Role:   string(sh.ShapeRole()),
		X:      conv(b.X),
		Y:      conv(b.Y),
		Width:  conv(b.W),
		Height: conv(b.H),
	}
	switch v := sh.(type) {
	case *deck.TextBox:
		js.Paragraphs = v.Paragraphs
		if v.Fill != nil {
			js.Fill = v.Fill.String()
		}
	case *deck.Table:
		js.Rows = v.Rows
		for _, c := range v.Columns {
			js.Columns = append(js.Columns, conv(c))
		}
		if v.StyleID != "" {
			js.Style = map[string]string{"table_style_id": v.StyleID}
		}
	}
	return js
}

package outline

import (
	"fmt"
	"strings"

	apperrors "github.com/matzehuels/slidegen/pkg/errors"
)

// Layout selects how a slide record is arranged on the canvas.
type Layout string

const (
	// LayoutTwoColumn puts explain on the left and content on the right.
	LayoutTwoColumn Layout = "two-column"
	// LayoutFull gives the body the full slide width.
	LayoutFull Layout = "full"
	// LayoutTitle renders a section/title slide with an optional subtitle.
	LayoutTitle Layout = "title"
)

// ValidLayouts is the set of supported layouts. The empty layout means
// LayoutTwoColumn.
var ValidLayouts = map[Layout]bool{
	"":              true,
	LayoutTwoColumn: true,
	LayoutFull:      true,
	LayoutTitle:     true,
}

// Slide is a single outline record.
type Slide struct {
	Title   string `json:"title,omitempty" toml:"title" yaml:"title,omitempty"`
	Explain string `json:"explain,omitempty" toml:"explain" yaml:"explain,omitempty"`
	Content string `json:"content,omitempty" toml:"content" yaml:"content,omitempty"`
	Notes   string `json:"notes,omitempty" toml:"notes" yaml:"notes,omitempty"`
	Layout  Layout `json:"layout,omitempty" toml:"layout" yaml:"layout,omitempty"`
}

// EffectiveLayout returns the slide's layout, defaulting to LayoutTwoColumn.
func (s Slide) EffectiveLayout() Layout {
	if s.Layout == "" {
		return LayoutTwoColumn
	}
	return s.Layout
}

// IsEmpty reports whether the record carries no visible text.
func (s Slide) IsEmpty() bool {
	return strings.TrimSpace(s.Title) == "" &&
		strings.TrimSpace(s.Explain) == "" &&
		strings.TrimSpace(s.Content) == ""
}

// Outline is an ordered list of slides plus optional document metadata.
type Outline struct {
	Title  string  `json:"title,omitempty" toml:"title" yaml:"title,omitempty"`
	Author string  `json:"author,omitempty" toml:"author" yaml:"author,omitempty"`
	Slides []Slide `json:"slides" toml:"slides" yaml:"slides"`
}

// Len returns the number of slides.
func (o *Outline) Len() int { return len(o.Slides) }

// DeckTitle returns the outline title, falling back to the first non-empty
// slide title.
func (o *Outline) DeckTitle() string {
	if o.Title != "" {
		return o.Title
	}
	for _, s := range o.Slides {
		if t := strings.TrimSpace(s.Title); t != "" {
			return t
		}
	}
	return ""
}

// Validate checks the outline for structural problems.
// Empty records are allowed; see Warnings.
func (o *Outline) Validate() error {
	if len(o.Slides) == 0 {
		return apperrors.Wrap(apperrors.ErrCodeInvalidOutline,
			&apperrors.ValidationError{Index: -1, Field: "slides", Msg: "outline is empty"},
			"outline has no slides")
	}
	for i, s := range o.Slides {
		if !ValidLayouts[s.Layout] {
			return apperrors.Wrap(apperrors.ErrCodeInvalidOutline,
				&apperrors.ValidationError{Index: i, Field: "layout", Msg: fmt.Sprintf("unknown layout %q", s.Layout)},
				"invalid slide %d", i+1)
		}
		if s.Layout == LayoutTitle && strings.TrimSpace(s.Content) != "" {
			return apperrors.Wrap(apperrors.ErrCodeInvalidOutline,
				&apperrors.ValidationError{Index: i, Field: "content", Msg: "title slides cannot carry content"},
				"invalid slide %d", i+1)
		}
	}
	return nil
}

// Warnings returns non-fatal problems worth logging.
func (o *Outline) Warnings() []string {
	var out []string
	for i, s := range o.Slides {
		if s.IsEmpty() {
			out = append(out, fmt.Sprintf("slide %d has no title, explain, or content", i+1))
		}
	}
	return out
}

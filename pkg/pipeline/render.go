package pipeline

import (
	"fmt"

	"github.com/matzehuels/slidegen/pkg/buildinfo"
	"github.com/matzehuels/slidegen/pkg/deck"
	"github.com/matzehuels/slidegen/pkg/highlight"
	"github.com/matzehuels/slidegen/pkg/outline"
	"github.com/matzehuels/slidegen/pkg/render/sink"
)

// Build lays out o with the theme in opts, highlighting code with chroma.
func Build(o *outline.Outline, opts Options) (*deck.Deck, error) {
	b := &deck.Builder{
		Theme: opts.Theme,
		Code:  highlight.New(opts.Theme.Code),
		Now:   opts.Now,
	}
	return b.Build(o)
}

// Render writes d in every requested format.
func Render(d *deck.Deck, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(d, format, opts.Theme)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat writes d in one format.
func RenderFormat(d *deck.Deck, format string, th deck.Theme) ([]byte, error) {
	switch format {
	case FormatPPTX:
		return sink.RenderPPTX(d,
			sink.WithPPTXApplication(buildinfo.Application()),
			sink.WithPPTXFonts(th.TitleText.Font, th.Text.Font),
			sink.WithPPTXTextColor(th.Text.Color),
		)
	case FormatJSON:
		return sink.RenderJSON(d, sink.WithJSONStyle(th.Code.Style))
	case FormatMarkdown:
		return sink.RenderMarkdown(d), nil
	default:
		return nil, ValidateFormat(format)
	}
}

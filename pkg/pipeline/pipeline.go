// Package pipeline turns outlines into rendered presentations.
//
// The pipeline has three stages, used by the CLI and the HTTP server alike:
//
//  1. Load: read an outline from a file, a URL, or request bytes
//  2. Build: lay out every record as a slide of positioned shapes
//  3. Render: write the deck as PPTX, JSON, or a markdown preview
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "talk.json",
//	    Formats: []string{pipeline.FormatPPTX},
//	})
//	if err != nil {
//	    return err
//	}
//	pptx := result.Artifacts[pipeline.FormatPPTX]
//
// Rendered artifacts are cached by the outline's content, the theme, and
// the format. Outlines fetched over HTTP are cached by URL.
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/slidegen/pkg/cache"
	"github.com/matzehuels/slidegen/pkg/deck"
	apperrors "github.com/matzehuels/slidegen/pkg/errors"
	"github.com/matzehuels/slidegen/pkg/outline"
)

// Format constants for output formats.
const (
	FormatPPTX     = "pptx"
	FormatJSON     = "json"
	FormatMarkdown = "md"
)

// DefaultFormat is rendered when no format is requested.
const DefaultFormat = FormatPPTX

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPPTX:     true,
	FormatJSON:     true,
	FormatMarkdown: true,
}

// Extension returns the file extension for an output format.
func Extension(format string) string { return "." + format }

// ContentType returns the MIME type of an output format.
func ContentType(format string) string {
	switch format {
	case FormatPPTX:
		return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	case FormatJSON:
		return "application/json"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperrors.New(apperrors.ErrCodeInvalidFormat,
			"invalid format %q (must be one of: pptx, json, md)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma separated format list, trimming blanks and
// dropping duplicates.
func ParseFormats(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// Options configures one pipeline run.
type Options struct {
	// Input is an outline path or an http(s) URL. It is ignored when Data
	// is set.
	Input string
	// Data holds outline bytes read by the caller, in InputFormat.
	Data        []byte
	InputFormat outline.Format

	Formats []string
	Theme   deck.Theme
	// Refresh bypasses the cache for reads. Results are still stored.
	Refresh bool

	Logger *log.Logger
	Now    func() time.Time

	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" && o.Data == nil {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "outline input is required")
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Theme.Width == 0 {
		o.Theme = deck.DefaultTheme()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	o.validated = true
	return nil
}

// Source describes where the outline came from, for logs and errors.
func (o *Options) Source() string {
	if o.Data != nil {
		return fmt.Sprintf("<%d bytes %s>", len(o.Data), o.InputFormat)
	}
	return o.Input
}

// IsRemote reports whether Input is an http(s) URL.
func (o *Options) IsRemote() bool {
	return o.Data == nil && apperrors.IsURL(o.Input)
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format, themeHash string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format, ThemeHash: themeHash}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Outline *outline.Outline
	// OutlineHash identifies the outline's content independent of its
	// encoding.
	OutlineHash string
	Deck        *deck.Deck
	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte
	Warnings  []string
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Slides     int
	LoadTime   time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	OutlineHit bool // fetched outline came from cache
	RenderHit  bool // every artifact came from cache
}

package sink

import (
	"archive/zip"
	"bytes"
	"embed"
	"encoding/xml"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/matzehuels/slidegen/pkg/buildinfo"
	"github.com/matzehuels/slidegen/pkg/deck"
)

//go:embed templates/*
var templateFS embed.FS

var templates = template.Must(template.New("pptx").Funcs(template.FuncMap{
	"xml": escape,
}).ParseFS(templateFS, "templates/*"))

// firstSlideID is the lowest id PowerPoint accepts in sldIdLst.
const firstSlideID = 256

// PPTXOption configures PPTX rendering via [RenderPPTX].
type PPTXOption func(*pptxRenderer)

type pptxRenderer struct {
	application string
	headingFont string
	bodyFont    string
	dark        deck.Color
	modified    time.Time
}

// WithPPTXApplication sets the producing application recorded in
// docProps/app.xml.
func WithPPTXApplication(name string) PPTXOption {
	return func(r *pptxRenderer) { r.application = name }
}

// WithPPTXFonts sets the theme's heading and body fonts. Runs without an
// explicit font use the body font.
func WithPPTXFonts(heading, body string) PPTXOption {
	return func(r *pptxRenderer) {
		if heading != "" {
			r.headingFont = heading
		}
		if body != "" {
			r.bodyFont = body
		}
	}
}

// WithPPTXTextColor sets the theme's dark text color.
func WithPPTXTextColor(c deck.Color) PPTXOption {
	return func(r *pptxRenderer) { r.dark = c }
}

// part is one zip entry rendered from a template.
type part struct {
	name string
	tmpl string
	data any
}

type link struct {
	ID     string
	Target string
}

type slidePart struct {
	Num      int
	SldID    int
	RelID    string
	Notes    bool
	Shapes   string
	NotesXML string
	Links    []link
}

type packageData struct {
	Application string
	Title       string
	Author      string
	ID          string
	Created     string
	Width       deck.EMU
	Height      deck.EMU
	TableStyle  string

	Slides     []slidePart
	HasNotes   bool
	NotesCount int

	PresPropsRel   string
	ViewPropsRel   string
	ThemeRel       string
	TableStylesRel string
	NotesMasterRel string
}

type themeData struct {
	Name        string
	Dark        string
	HeadingFont string
	BodyFont    string
}

// RenderPPTX writes d as an Office Open XML presentation.
//
// The package holds one blank master and layout, a theme, table styles,
// one part per slide, and a notes slide for every slide with notes. The
// output is deterministic for a given deck: zip entries are stamped with
// the deck's creation time.
func RenderPPTX(d *deck.Deck, opts ...PPTXOption) ([]byte, error) {
	r := pptxRenderer{
		application: buildinfo.Application(),
		headingFont: "Calibri Light",
		bodyFont:    "Calibri",
		dark:        deck.RGB(0, 0, 0),
		modified:    d.Created,
	}
	for _, opt := range opts {
		opt(&r)
	}
	if r.modified.IsZero() {
		r.modified = time.Now()
	}

	data := r.packageData(d)
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	add := func(name, tmpl string, v any) error {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: r.modified})
		if err != nil {
			return err
		}
		if err := templates.ExecuteTemplate(w, tmpl, v); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	}

	theme := themeData{
		Name:        "Office Theme",
		Dark:        r.dark.Hex(),
		HeadingFont: r.headingFont,
		BodyFont:    r.bodyFont,
	}
	files := []part{
		{"[Content_Types].xml", "content_types.xml", data},
		{"_rels/.rels", "root.rels", data},
		{"docProps/app.xml", "app.xml", data},
		{"docProps/core.xml", "core.xml", data},
		{"ppt/presentation.xml", "presentation.xml", data},
		{"ppt/_rels/presentation.xml.rels", "presentation.rels", data},
		{"ppt/presProps.xml", "presProps.xml", data},
		{"ppt/viewProps.xml", "viewProps.xml", data},
		{"ppt/tableStyles.xml", "tableStyles.xml", data},
		{"ppt/theme/theme1.xml", "theme.xml", theme},
		{"ppt/slideMasters/slideMaster1.xml", "slideMaster.xml", data},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", "slideMaster.rels", data},
		{"ppt/slideLayouts/slideLayout1.xml", "slideLayout.xml", data},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", "slideLayout.rels", data},
	}
	if data.HasNotes {
		files = append(files,
			part{"ppt/notesMasters/notesMaster1.xml", "notesMaster.xml", data},
			part{"ppt/notesMasters/_rels/notesMaster1.xml.rels", "notesMaster.rels", data},
			part{"ppt/theme/theme2.xml", "theme.xml", theme},
		)
	}
	for _, f := range files {
		if err := add(f.name, f.tmpl, f.data); err != nil {
			return nil, err
		}
	}

	for _, s := range data.Slides {
		if err := add(fmt.Sprintf("ppt/slides/slide%d.xml", s.Num), "slide.xml", s); err != nil {
			return nil, err
		}
		if err := add(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", s.Num), "slide.rels", s); err != nil {
			return nil, err
		}
		if !s.Notes {
			continue
		}
		if err := add(fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", s.Num), "notesSlide.xml", s); err != nil {
			return nil, err
		}
		if err := add(fmt.Sprintf("ppt/notesSlides/_rels/notesSlide%d.xml.rels", s.Num), "notesSlide.rels", s); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *pptxRenderer) packageData(d *deck.Deck) packageData {
	data := packageData{
		Application: r.application,
		Title:       d.Title,
		Author:      d.Author,
		ID:          d.ID,
		Created:     d.Created.UTC().Format("2006-01-02T15:04:05Z"),
		Width:       d.Width,
		Height:      d.Height,
		TableStyle:  deck.MediumStyle2Accent1,
		Slides:      make([]slidePart, 0, len(d.Slides)),
	}
	for i, s := range d.Slides {
		sw := &slideWriter{}
		sw.shapes(s.Shapes)
		part := slidePart{
			Num:    i + 1,
			SldID:  firstSlideID + i,
			RelID:  fmt.Sprintf("rId%d", i+2),
			Notes:  s.Notes != "",
			Shapes: sw.b.String(),
			Links:  sw.links,
		}
		if part.Notes {
			part.NotesXML = notesXML(s.Notes)
			data.NotesCount++
			data.HasNotes = true
		}
		data.Slides = append(data.Slides, part)
	}
	for _, s := range d.Slides {
		for _, sh := range s.Shapes {
			if t, ok := sh.(*deck.Table); ok && t.StyleID != "" {
				data.TableStyle = t.StyleID
			}
		}
	}

	next := len(d.Slides) + 2
	rel := func() string {
		id := fmt.Sprintf("rId%d", next)
		next++
		return id
	}
	data.PresPropsRel = rel()
	data.ViewPropsRel = rel()
	data.ThemeRel = rel()
	data.TableStylesRel = rel()
	data.NotesMasterRel = rel()
	return data
}

// escape returns s as XML character data.
func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func notesXML(notes string) string {
	var b strings.Builder
	for _, line := range strings.Split(notes, "\n") {
		b.WriteString("<a:p>")
		if line != "" {
			fmt.Fprintf(&b, `<a:r><a:rPr lang="en-US" dirty="0"/><a:t>%s</a:t></a:r>`, escape(line))
		}
		b.WriteString(`<a:endParaRPr lang="en-US" dirty="0"/></a:p>`)
	}
	return b.String()
}

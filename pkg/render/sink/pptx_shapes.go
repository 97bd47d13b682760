package sink

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/slidegen/pkg/deck"
)

// bulletIndent is the hanging indent per outline level (0.3125in).
const bulletIndent = 285750

// slideWriter serializes the shapes of one slide into p:spTree children.
type slideWriter struct {
	b      strings.Builder
	nextID int
	links  []link
}

func (w *slideWriter) shapes(shapes []deck.Shape) {
	w.nextID = 2
	for _, sh := range shapes {
		switch v := sh.(type) {
		case *deck.TextBox:
			w.textBox(v)
		case *deck.Table:
			w.table(v)
		}
		w.nextID++
	}
}

func (w *slideWriter) name(role deck.Role) string {
	return fmt.Sprintf("%s %d", strings.ToUpper(string(role[:1]))+string(role[1:]), w.nextID-1)
}

func (w *slideWriter) textBox(tb *deck.TextBox) {
	b := &w.b
	fmt.Fprintf(b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`,
		w.nextID, escape(w.name(tb.Role)))
	b.WriteString(`<p:spPr>`)
	xfrm(b, "a", tb.Frame)
	b.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom>`)
	if tb.Fill != nil {
		fmt.Fprintf(b, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, tb.Fill.Hex())
	} else {
		b.WriteString(`<a:noFill/>`)
	}
	b.WriteString(`</p:spPr><p:txBody>`)

	wrap := "none"
	if tb.WordWrap {
		wrap = "square"
	}
	fmt.Fprintf(b, `<a:bodyPr wrap="%s" rtlCol="0"`, wrap)
	if tb.Insets != nil {
		fmt.Fprintf(b, ` lIns="%d" tIns="%d" rIns="%d" bIns="%d"`, tb.Insets.L, tb.Insets.T, tb.Insets.R, tb.Insets.B)
	}
	if tb.Anchor != "" {
		fmt.Fprintf(b, ` anchor="%s"`, tb.Anchor)
	}
	b.WriteString(`>`)
	if tb.Autofit {
		b.WriteString(`<a:normAutofit/>`)
	} else {
		b.WriteString(`<a:noAutofit/>`)
	}
	b.WriteString(`</a:bodyPr><a:lstStyle/>`)

	if len(tb.Paragraphs) == 0 {
		b.WriteString(`<a:p><a:endParaRPr lang="en-US" dirty="0"/></a:p>`)
	}
	for _, p := range tb.Paragraphs {
		w.paragraph(p)
	}
	b.WriteString(`</p:txBody></p:sp>`)
}

func (w *slideWriter) paragraph(p deck.Paragraph) {
	b := &w.b
	b.WriteString(`<a:p>`)
	if p.Bullet || p.Align != "" {
		b.WriteString(`<a:pPr`)
		if p.Bullet {
			fmt.Fprintf(b, ` marL="%d" indent="%d"`, bulletIndent*(p.Level+1), -bulletIndent)
			if p.Level > 0 {
				fmt.Fprintf(b, ` lvl="%d"`, p.Level)
			}
		}
		if p.Align != "" {
			fmt.Fprintf(b, ` algn="%s"`, p.Align)
		}
		b.WriteString(`>`)
		switch {
		case p.Bullet && p.Ordered:
			b.WriteString(`<a:buFont typeface="+mj-lt"/><a:buAutoNum type="arabicPeriod"/>`)
		case p.Bullet:
			b.WriteString(`<a:buFont typeface="Arial"/><a:buChar char="&#8226;"/>`)
		}
		b.WriteString(`</a:pPr>`)
	}
	for _, r := range p.Runs {
		w.run(r)
	}
	b.WriteString(`<a:endParaRPr lang="en-US"`)
	if p.Size > 0 {
		fmt.Fprintf(b, ` sz="%d"`, hundredths(p.Size))
	}
	b.WriteString(` dirty="0"/></a:p>`)
}

// run writes r, turning embedded newlines into line breaks that carry the
// run's formatting.
func (w *slideWriter) run(r deck.Run) {
	props := w.runProps(r)
	text := strings.ReplaceAll(r.Text, "\r\n", "\n")
	for i, part := range strings.Split(text, "\n") {
		if i > 0 {
			fmt.Fprintf(&w.b, `<a:br>%s</a:br>`, props)
		}
		fmt.Fprintf(&w.b, `<a:r>%s<a:t>%s</a:t></a:r>`, props, escape(part))
	}
}

func (w *slideWriter) runProps(r deck.Run) string {
	var b strings.Builder
	b.WriteString(`<a:rPr lang="en-US"`)
	if r.Size > 0 {
		fmt.Fprintf(&b, ` sz="%d"`, hundredths(r.Size))
	}
	if r.Bold {
		b.WriteString(` b="1"`)
	}
	if r.Italic {
		b.WriteString(` i="1"`)
	}
	if r.Strike {
		b.WriteString(` strike="sngStrike"`)
	}
	b.WriteString(` dirty="0">`)
	if r.Color != nil {
		fmt.Fprintf(&b, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, r.Color.Hex())
	}
	if r.Font != "" {
		f := escape(r.Font)
		fmt.Fprintf(&b, `<a:latin typeface="%s"/><a:cs typeface="%s"/>`, f, f)
	}
	if r.Link != "" {
		id := fmt.Sprintf("rId%d", len(w.links)+3)
		w.links = append(w.links, link{ID: id, Target: r.Link})
		fmt.Fprintf(&b, `<a:hlinkClick r:id="%s"/>`, id)
	}
	b.WriteString(`</a:rPr>`)
	return b.String()
}

func (w *slideWriter) table(t *deck.Table) {
	b := &w.b
	fmt.Fprintf(b, `<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="%d" name="%s"/>`, w.nextID, escape(w.name(deck.RoleTable)))
	b.WriteString(`<p:cNvGraphicFramePr><a:graphicFrameLocks noGrp="1"/></p:cNvGraphicFramePr><p:nvPr/></p:nvGraphicFramePr>`)
	xfrm(b, "p", t.Frame)
	b.WriteString(`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table"><a:tbl>`)
	b.WriteString(`<a:tblPr firstRow="1" bandRow="1">`)
	if t.StyleID != "" {
		fmt.Fprintf(b, `<a:tableStyleId>%s</a:tableStyleId>`, escape(t.StyleID))
	}
	b.WriteString(`</a:tblPr><a:tblGrid>`)
	for _, c := range t.Columns {
		fmt.Fprintf(b, `<a:gridCol w="%d"/>`, c)
	}
	b.WriteString(`</a:tblGrid>`)
	for _, row := range t.Rows {
		fmt.Fprintf(b, `<a:tr h="%d">`, t.RowHeight)
		for _, c := range row {
			b.WriteString(`<a:tc><a:txBody><a:bodyPr/><a:lstStyle/>`)
			w.paragraph(deck.Paragraph{Runs: c.Runs, Size: t.FontSize, Align: c.Align})
			b.WriteString(`</a:txBody><a:tcPr/></a:tc>`)
		}
		b.WriteString(`</a:tr>`)
	}
	b.WriteString(`</a:tbl></a:graphicData></a:graphic></p:graphicFrame>`)
}

// xfrm writes a transform in namespace ns ("a" for shapes, "p" for
// graphic frames).
func xfrm(b *strings.Builder, ns string, r deck.Rect) {
	fmt.Fprintf(b, `<%s:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></%s:xfrm>`, ns, r.X, r.Y, r.W, r.H, ns)
}

// hundredths converts points to the hundredths-of-a-point font size unit.
func hundredths(pt float64) int { return int(math.Round(pt * 100)) }

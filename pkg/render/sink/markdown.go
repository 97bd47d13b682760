package sink

import (
	"fmt"
	"strings"

	"github.com/matzehuels/slidegen/pkg/deck"
)

// RenderMarkdown writes a plain markdown preview of d: one section per
// slide with bullets, fenced code, and pipe tables.
func RenderMarkdown(d *deck.Deck) []byte {
	var b strings.Builder
	if d.Title != "" {
		fmt.Fprintf(&b, "# %s\n\n", d.Title)
	}
	for i, s := range d.Slides {
		if i > 0 {
			b.WriteString("---\n\n")
		}
		title := s.Title
		if title == "" {
			title = fmt.Sprintf("Slide %d", s.Index+1)
		}
		fmt.Fprintf(&b, "## %s\n\n", title)

		for _, sh := range s.Shapes {
			switch v := sh.(type) {
			case *deck.TextBox:
				writeTextBox(&b, v)
			case *deck.Table:
				writeTable(&b, v)
			}
		}
		if s.Notes != "" {
			for _, line := range strings.Split(s.Notes, "\n") {
				fmt.Fprintf(&b, "> %s\n", line)
			}
			b.WriteString("\n")
		}
	}
	return []byte(b.String())
}

func writeTextBox(b *strings.Builder, tb *deck.TextBox) {
	switch tb.Role {
	case deck.RoleTitle:
		return
	case deck.RoleCode:
		b.WriteString("```" + tb.Language + "\n")
		for _, p := range tb.Paragraphs {
			b.WriteString(p.Text())
			b.WriteString("\n")
		}
		b.WriteString("```\n\n")
		return
	}
	counters := map[int]int{}
	wrote := false
	for _, p := range tb.Paragraphs {
		text := runsMarkdown(p.Runs, true)
		if text == "" {
			continue
		}
		wrote = true
		if !p.Bullet {
			b.WriteString(text + "\n")
			continue
		}
		indent := strings.Repeat("  ", p.Level)
		if p.Ordered {
			counters[p.Level]++
			fmt.Fprintf(b, "%s%d. %s\n", indent, counters[p.Level], text)
		} else {
			fmt.Fprintf(b, "%s- %s\n", indent, text)
		}
	}
	if wrote {
		b.WriteString("\n")
	}
}

func writeTable(b *strings.Builder, t *deck.Table) {
	for i, row := range t.Rows {
		cells := make([]string, len(row))
		for j, c := range row {
			cells[j] = strings.ReplaceAll(runsMarkdown(c.Runs, i > 0), "|", `\|`)
		}
		fmt.Fprintf(b, "| %s |\n", strings.Join(cells, " | "))
		if i == 0 {
			seps := make([]string, len(row))
			for j, c := range row {
				seps[j] = delimiter(c.Align)
			}
			fmt.Fprintf(b, "| %s |\n", strings.Join(seps, " | "))
		}
	}
	b.WriteString("\n")
}

func delimiter(a deck.Align) string {
	switch a {
	case deck.AlignLeft:
		return ":---"
	case deck.AlignCenter:
		return ":---:"
	case deck.AlignRight:
		return "---:"
	default:
		return "---"
	}
}

// runsMarkdown re-applies inline markup to runs. Bold is written only when
// bold is set, since table headers are bold by theme.
func runsMarkdown(runs []deck.Run, bold bool) string {
	var b strings.Builder
	for _, r := range runs {
		text := r.Text
		if strings.TrimSpace(text) == "" {
			b.WriteString(text)
			continue
		}
		if r.Strike {
			text = emphasize(text, "~~")
		}
		if r.Italic {
			text = emphasize(text, "*")
		}
		if r.Bold && bold {
			text = emphasize(text, "**")
		}
		if r.Link != "" {
			text = "[" + text + "](" + r.Link + ")"
		}
		b.WriteString(text)
	}
	return b.String()
}

// emphasize wraps text in mark, keeping surrounding spaces outside the
// markers so the emphasis still parses.
func emphasize(text, mark string) string {
	core := strings.TrimSpace(text)
	lead := text[:strings.Index(text, core)]
	trail := text[len(lead)+len(core):]
	return lead + mark + core + mark + trail
}

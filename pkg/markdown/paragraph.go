package markdown

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

// maxLevel is the deepest outline level a presentation paragraph supports.
const maxLevel = 8

// Paragraph is one rendered line of a text column.
type Paragraph struct {
	Runs    []Inline
	Bullet  bool
	Ordered bool // numbered list item
	Level   int  // nesting depth, 0 for top-level items
	Heading int  // heading level, 0 for body text
	Code    bool // line from a code block
}

// Text returns the paragraph's plain text.
func (p Paragraph) Text() string { return PlainText(p.Runs) }

// Paragraphs splits markdown text into presentation paragraphs.
//
// Text that opens with a list is a bullet box: only list items are kept,
// each a bullet paragraph whose Level is its nesting depth, and any other
// block is dropped. Otherwise plain paragraphs become one paragraph per
// source line and headings keep their level so callers can embolden them.
func Paragraphs(src string) []Paragraph {
	if strings.TrimSpace(src) == "" {
		return nil
	}
	doc, source := parse(strings.TrimSpace(src))
	c := &collector{source: source}
	if !opensWithList(doc) {
		c.blocks(doc, 0)
		return c.out
	}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if l, ok := n.(*ast.List); ok {
			c.list(l, 0)
		}
	}
	return c.out
}

// IsBulleted reports whether text opens with a list, which makes
// [Paragraphs] keep list items only.
func IsBulleted(src string) bool {
	if strings.TrimSpace(src) == "" {
		return false
	}
	doc, _ := parse(strings.TrimSpace(src))
	return opensWithList(doc)
}

func opensWithList(doc ast.Node) bool {
	_, ok := doc.FirstChild().(*ast.List)
	return ok
}

type collector struct {
	source []byte
	out    []Paragraph
}

func (c *collector) blocks(parent ast.Node, level int) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch b := n.(type) {
		case *ast.List:
			c.list(b, level)
		case *ast.Heading:
			c.out = append(c.out, Paragraph{Runs: inlines(b, c.source, false), Heading: b.Level})
		case *ast.Paragraph, *ast.TextBlock:
			for _, line := range splitLines(inlines(b, c.source, true)) {
				if line = trimRuns(line); len(line) > 0 {
					c.out = append(c.out, Paragraph{Runs: line})
				}
			}
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			body := strings.TrimSuffix(blockText(b, c.source), "\n")
			for _, line := range strings.Split(body, "\n") {
				p := Paragraph{Code: true}
				if line != "" {
					p.Runs = []Inline{{Text: line, Code: true}}
				}
				c.out = append(c.out, p)
			}
		case *east.Table:
			c.table(b)
		case *ast.Blockquote:
			c.blocks(b, level)
		case *ast.HTMLBlock:
			if s := strings.TrimSpace(blockText(b, c.source)); s != "" {
				c.out = append(c.out, Paragraph{Runs: []Inline{{Text: s}}})
			}
		}
	}
}

func (c *collector) list(l *ast.List, level int) {
	if level > maxLevel {
		level = maxLevel
	}
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		p := Paragraph{Bullet: true, Ordered: l.IsOrdered(), Level: level}
		var nested []*ast.List
		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			switch b := child.(type) {
			case *ast.List:
				nested = append(nested, b)
			case *ast.Paragraph, *ast.TextBlock:
				runs := inlines(b, c.source, false)
				if len(p.Runs) > 0 && len(runs) > 0 {
					p.Runs = append(p.Runs, Inline{Text: " "})
				}
				p.Runs = append(p.Runs, runs...)
			}
		}
		c.out = append(c.out, p)
		for _, sub := range nested {
			c.list(sub, level+1)
		}
	}
}

// table renders a table in a text column as one " | "-joined line per row.
func (c *collector) table(t *east.Table) {
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		var runs []Inline
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			if len(runs) > 0 {
				runs = append(runs, Inline{Text: " | "})
			}
			runs = append(runs, inlines(cell, c.source, false)...)
		}
		_, header := row.(*east.TableHeader)
		if header {
			for i := range runs {
				runs[i].Bold = true
			}
		}
		c.out = append(c.out, Paragraph{Runs: runs})
	}
}

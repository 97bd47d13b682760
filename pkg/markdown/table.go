package markdown

import (
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	apperrors "github.com/matzehuels/slidegen/pkg/errors"
)

// Align is a column alignment taken from the delimiter row.
type Align int

const (
	AlignNone Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Cell is the styled content of one table cell.
type Cell []Inline

// Text returns the cell's plain text.
func (c Cell) Text() string { return PlainText(c) }

// Table is a parsed GFM table. Every row has exactly len(Header) cells.
type Table struct {
	Header []Cell
	Rows   [][]Cell
	Align  []Align
}

// Columns returns the number of columns.
func (t *Table) Columns() int { return len(t.Header) }

// ParseTable parses the first table in content.
// Rows shorter than the header are padded with empty cells; longer rows
// are truncated.
func ParseTable(content string) (*Table, error) {
	doc, source := parse(content)

	var node *east.Table
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*east.Table); ok && entering {
			node = t
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	if node == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidMarkdown, "content has no table")
	}

	t := &Table{}
	for row := node.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []Cell
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, Cell(inlines(cell, source, false)))
		}
		if _, ok := row.(*east.TableHeader); ok {
			t.Header = cells
			continue
		}
		t.Rows = append(t.Rows, cells)
	}
	if len(t.Header) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidMarkdown, "table has no header row")
	}

	for i, row := range t.Rows {
		t.Rows[i] = fit(row, len(t.Header))
	}
	t.Align = make([]Align, len(t.Header))
	for i := range t.Align {
		if i < len(node.Alignments) {
			t.Align[i] = alignOf(node.Alignments[i])
		}
	}
	return t, nil
}

func fit(row []Cell, n int) []Cell {
	if len(row) >= n {
		return row[:n]
	}
	out := make([]Cell, n)
	copy(out, row)
	return out
}

func alignOf(a east.Alignment) Align {
	switch a {
	case east.AlignLeft:
		return AlignLeft
	case east.AlignCenter:
		return AlignCenter
	case east.AlignRight:
		return AlignRight
	default:
		return AlignNone
	}
}

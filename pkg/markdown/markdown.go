package markdown

import (
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Kind is the content type of a slide's right-hand column.
type Kind int

const (
	KindText Kind = iota
	KindCode
	KindTable
)

func (k Kind) String() string {
	switch k {
	case KindCode:
		return "code"
	case KindTable:
		return "table"
	default:
		return "text"
	}
}

var md = goldmark.New(
	goldmark.WithExtensions(
		extension.Table,
		extension.Strikethrough,
	),
)

// parse returns the document node and the source it indexes into.
func parse(src string) (ast.Node, []byte) {
	source := []byte(src)
	return md.Parser().Parse(text.NewReader(source)), source
}

// Classify decides how content is rendered. Tables are checked first.
func Classify(content string) Kind {
	if strings.TrimSpace(content) == "" {
		return KindText
	}
	doc, _ := parse(content)

	kind := KindText
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *east.Table:
			kind = KindTable
			return ast.WalkStop, nil
		case *ast.FencedCodeBlock:
			kind = KindCode
		}
		return ast.WalkContinue, nil
	})
	return kind
}

// Code is the concatenation of every fenced block in a document.
type Code struct {
	Language string // info string of the first block, e.g. "python"
	Source   string
	Blocks   int
}

// ExtractCode joins every fenced code block with "\n" in document order.
func ExtractCode(content string) Code {
	doc, source := parse(content)

	var (
		code  Code
		parts []string
	)
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !entering || !ok {
			return ast.WalkContinue, nil
		}
		if code.Blocks == 0 {
			code.Language = strings.ToLower(string(fcb.Language(source)))
		}
		code.Blocks++
		parts = append(parts, strings.TrimSuffix(blockText(fcb, source), "\n"))
		return ast.WalkSkipChildren, nil
	})
	code.Source = strings.Join(parts, "\n")
	return code
}

// StripCode removes fenced code blocks, fences included, and trims what is
// left. Blocks come from the same parse as [Classify] and [ExtractCode], so
// an unclosed fence removes the rest of the text here too.
func StripCode(content string) string {
	doc, _ := parse(content)
	lines := strings.SplitAfter(content, "\n")
	starts := make([]int, len(lines))
	off := 0
	for i, l := range lines {
		starts[i] = off
		off += len(l)
	}
	lineOf := func(pos int) int {
		return sort.Search(len(starts), func(i int) bool { return starts[i] > pos }) - 1
	}

	drop := make([]bool, len(lines))
	next := 0
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !entering || !ok {
			return ast.WalkContinue, nil
		}
		body := fcb.Lines()
		open := -1
		switch {
		case body.Len() > 0:
			open = lineOf(body.At(0).Start) - 1
		case fcb.Info != nil:
			open = lineOf(fcb.Info.Segment.Start)
		default:
			for i := next; i < len(lines); i++ {
				if _, _, ok := fence(lines[i]); ok {
					open = i
					break
				}
			}
		}
		if open < next || open >= len(lines) {
			return ast.WalkSkipChildren, nil
		}
		char, width, _ := fence(lines[open])
		last := open
		if body.Len() > 0 {
			last = lineOf(body.At(body.Len() - 1).Start)
		}
		if last+1 < len(lines) && closesFence(lines[last+1], char, width) {
			last++
		}
		for i := open; i <= last; i++ {
			drop[i] = true
		}
		next = last + 1
		return ast.WalkSkipChildren, nil
	})

	var b strings.Builder
	for i, l := range lines {
		if !drop[i] {
			b.WriteString(l)
		}
	}
	return strings.TrimSpace(b.String())
}

// fence reports the character and run length of a fence opening line.
func fence(line string) (byte, int, bool) {
	t := strings.TrimLeft(line, " \t")
	if t == "" || (t[0] != '`' && t[0] != '~') {
		return 0, 0, false
	}
	n := len(t) - len(strings.TrimLeft(t, t[:1]))
	return t[0], n, n >= 3
}

// closesFence reports whether line closes a fence of char at least width
// long.
func closesFence(line string, char byte, width int) bool {
	t := strings.TrimLeft(line, " \t")
	rest := strings.TrimLeft(t, string(char))
	return len(t)-len(rest) >= width && strings.TrimSpace(rest) == ""
}

// blockText returns the raw lines of a code block.
func blockText(n ast.Node, source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return b.String()
}

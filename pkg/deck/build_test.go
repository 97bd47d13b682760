package deck

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	apperrors "github.com/matzehuels/slidegen/pkg/errors"
	"github.com/matzehuels/slidegen/pkg/outline"
)

func build(t *testing.T, slides ...outline.Slide) *Deck {
	t.Helper()
	d, err := Build(&outline.Outline{Slides: slides}, DefaultTheme(), nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return d
}

func roles(s *Slide) []Role {
	var out []Role
	for _, sh := range s.Shapes {
		out = append(out, sh.ShapeRole())
	}
	return out
}

func texts(tb *TextBox) []string {
	var out []string
	for _, p := range tb.Paragraphs {
		out = append(out, p.Text())
	}
	return out
}

func TestBuildTwoColumn(t *testing.T) {
	d := build(t,
		outline.Slide{Title: "Intro", Explain: "* one\n* two", Content: "plain words"},
		outline.Slide{Title: "Code", Content: "```go\nfmt.Println(1)\n```"},
		outline.Slide{Title: "Table", Content: "| a | b |\n|---|---|\n| 1 | 2 |"},
		outline.Slide{},
	)

	tests := []struct {
		name string
		idx  int
		want []Role
	}{
		{"text", 0, []Role{RoleTitle, RoleExplain, RoleContent}},
		{"code", 1, []Role{RoleTitle, RoleCode}},
		{"table", 2, []Role{RoleTitle, RoleTable}},
		{"empty", 3, []Role{RoleTitle}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, roles(d.Slides[tt.idx])); diff != "" {
				t.Errorf("roles mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildGeometry(t *testing.T) {
	th := DefaultTheme()
	d := build(t, outline.Slide{Title: "T", Explain: "e", Content: "c"})

	if d.Width != th.Width || d.Height != th.Height {
		t.Errorf("deck size = %dx%d", d.Width, d.Height)
	}
	s := d.Slides[0]
	want := []Rect{th.Title, th.Explain, th.Content}
	for i, sh := range s.Shapes {
		if sh.Bounds() != want[i] {
			t.Errorf("shape %d bounds = %+v, want %+v", i, sh.Bounds(), want[i])
		}
	}

	title := s.Shapes[0].(*TextBox)
	r := title.Paragraphs[0].Runs[0]
	if !r.Bold || r.Size != 28 {
		t.Errorf("title run = %+v, want bold 28pt", r)
	}
}

func TestBuildEmptyTitleKeepsBox(t *testing.T) {
	d := build(t, outline.Slide{Content: "x"})
	title := d.Slides[0].Shapes[0].(*TextBox)
	if title.Role != RoleTitle {
		t.Fatalf("first shape = %s, want title", title.Role)
	}
	if len(title.Paragraphs) != 1 || len(title.Paragraphs[0].Runs) != 0 {
		t.Errorf("empty title paragraphs = %+v", title.Paragraphs)
	}
}

func TestBuildBullets(t *testing.T) {
	d := build(t, outline.Slide{Explain: "* one\n  * nested\n* **two**"})
	box := d.Slides[0].Shapes[1].(*TextBox)

	if diff := cmp.Diff([]string{"one", "nested", "two"}, texts(box)); diff != "" {
		t.Errorf("texts mismatch (-want +got):\n%s", diff)
	}
	levels := []int{0, 1, 0}
	for i, p := range box.Paragraphs {
		if !p.Bullet || p.Level != levels[i] {
			t.Errorf("paragraph %d bullet=%v level=%d, want bullet level %d", i, p.Bullet, p.Level, levels[i])
		}
		if p.Size != 18 {
			t.Errorf("paragraph %d size = %v", i, p.Size)
		}
	}
	if !box.Paragraphs[2].Runs[0].Bold {
		t.Error("strong run should be bold")
	}
}

func TestBuildPlainTextLines(t *testing.T) {
	d := build(t, outline.Slide{Explain: "first line\nsecond line"})
	box := d.Slides[0].Shapes[1].(*TextBox)
	if diff := cmp.Diff([]string{"first line", "second line"}, texts(box)); diff != "" {
		t.Errorf("texts mismatch (-want +got):\n%s", diff)
	}
	for _, p := range box.Paragraphs {
		if p.Bullet {
			t.Error("plain lines should not be bullets")
		}
	}
}

func TestBuildCodeBox(t *testing.T) {
	th := DefaultTheme()
	d := build(t, outline.Slide{Content: "```python\nif x:\n\tpass\n```"})
	box := d.Slides[0].Shapes[1].(*TextBox)

	if box.Fill == nil || *box.Fill != th.Code.Fill {
		t.Errorf("fill = %v, want %v", box.Fill, th.Code.Fill)
	}
	if box.Insets == nil || *box.Insets != (Insets{}) {
		t.Errorf("insets = %v, want zero", box.Insets)
	}
	if diff := cmp.Diff([]string{"if x:", "    pass"}, texts(box)); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
	for _, p := range box.Paragraphs {
		for _, r := range p.Runs {
			if r.Font != "Courier New" || r.Size != 12 {
				t.Errorf("run %q font=%q size=%v", r.Text, r.Font, r.Size)
			}
			if r.Color == nil || *r.Color != th.Code.Color {
				t.Errorf("run %q color = %v", r.Text, r.Color)
			}
		}
	}
}

func TestBuildMovesProseToExplain(t *testing.T) {
	d := build(t, outline.Slide{Content: "Run this:\n\n```sh\nmake\n```"})
	s := d.Slides[0]
	if diff := cmp.Diff([]Role{RoleTitle, RoleExplain, RoleCode}, roles(s)); diff != "" {
		t.Fatalf("roles mismatch (-want +got):\n%s", diff)
	}
	if got := texts(s.Shapes[1].(*TextBox)); len(got) != 1 || got[0] != "Run this:" {
		t.Errorf("explain = %q", got)
	}

	// An explicit explain wins.
	d = build(t, outline.Slide{Explain: "mine", Content: "Run this:\n\n```sh\nmake\n```"})
	if got := texts(d.Slides[0].Shapes[1].(*TextBox)); got[0] != "mine" {
		t.Errorf("explain = %q, want mine", got)
	}
}

func TestBuildUnclosedFenceProse(t *testing.T) {
	d := build(t, outline.Slide{Content: "Intro\n```python\nprint(1)"})
	s := d.Slides[0]
	if diff := cmp.Diff([]Role{RoleTitle, RoleExplain, RoleCode}, roles(s)); diff != "" {
		t.Fatalf("roles mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Intro"}, texts(s.Shapes[1].(*TextBox))); diff != "" {
		t.Errorf("explain mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"print(1)"}, texts(s.Shapes[2].(*TextBox))); diff != "" {
		t.Errorf("code mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildBulletExplainDropsProse(t *testing.T) {
	d := build(t, outline.Slide{Explain: "* one\n* two\n\nTrailing prose", Content: "x"})
	box := d.Slides[0].Shapes[1].(*TextBox)
	if diff := cmp.Diff([]string{"one", "two"}, texts(box)); diff != "" {
		t.Errorf("explain mismatch (-want +got):\n%s", diff)
	}
	for _, p := range box.Paragraphs {
		if !p.Bullet {
			t.Errorf("paragraph %q is not a bullet", p.Text())
		}
	}
}

func TestBuildMultilineTitle(t *testing.T) {
	d := build(t,
		outline.Slide{Title: "Part one\nthe setup", Content: "x"},
		outline.Slide{Title: "Hello\r\nworld", Layout: outline.LayoutTitle},
		outline.Slide{Title: "\n", Content: "x"},
	)
	for i, want := range [][]string{{"Part one", "the setup"}, {"Hello", "world"}, {""}} {
		title := d.Slides[i].Shapes[0].(*TextBox)
		if diff := cmp.Diff(want, texts(title)); diff != "" {
			t.Errorf("slide %d title mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestBuildTable(t *testing.T) {
	th := DefaultTheme()
	d := build(t, outline.Slide{Content: "| Name | Qty |\n|:---|---:|\n| apple | 3 |\n| pear |"})
	tbl := d.Slides[0].Shapes[1].(*Table)

	if len(tbl.Rows) != 3 || len(tbl.Columns) != 2 {
		t.Fatalf("table = %d rows x %d cols", len(tbl.Rows), len(tbl.Columns))
	}
	var total EMU
	for _, w := range tbl.Columns {
		total += w
	}
	if total != th.Content.W {
		t.Errorf("column widths sum to %d, want %d", total, th.Content.W)
	}
	for _, r := range tbl.Rows[0][0].Runs {
		if !r.Bold || r.Size != 18 {
			t.Errorf("header run = %+v", r)
		}
	}
	if tbl.Rows[1][0].Runs[0].Bold {
		t.Error("body cells should not be bold")
	}
	if tbl.Rows[1][1].Align != AlignRight {
		t.Errorf("align = %q, want right", tbl.Rows[1][1].Align)
	}
	if len(tbl.Rows[2][1].Runs) != 0 {
		t.Errorf("padded cell = %+v, want empty", tbl.Rows[2][1])
	}
}

func TestBuildFullLayout(t *testing.T) {
	th := DefaultTheme()
	d := build(t,
		outline.Slide{Layout: outline.LayoutFull, Explain: "only explain"},
		outline.Slide{Layout: outline.LayoutFull, Explain: "aside", Content: "body", Notes: "note"},
	)

	first := d.Slides[0]
	if got := first.Shapes[1].Bounds(); got != th.Body() {
		t.Errorf("body bounds = %+v, want %+v", got, th.Body())
	}
	second := d.Slides[1]
	if len(second.Shapes) != 2 || second.Shapes[1].ShapeRole() != RoleContent {
		t.Fatalf("roles = %v", roles(second))
	}
	if second.Notes != "note\n\naside" {
		t.Errorf("notes = %q", second.Notes)
	}
}

func TestBuildTitleLayout(t *testing.T) {
	d := build(t, outline.Slide{Layout: outline.LayoutTitle, Title: "Welcome", Explain: "Subtitle"})
	s := d.Slides[0]
	if diff := cmp.Diff([]Role{RoleTitle, RoleSubtitle}, roles(s)); diff != "" {
		t.Fatalf("roles mismatch (-want +got):\n%s", diff)
	}
	title := s.Shapes[0].(*TextBox)
	if title.Paragraphs[0].Align != AlignCenter || title.Paragraphs[0].Runs[0].Size != 40 {
		t.Errorf("title paragraph = %+v", title.Paragraphs[0])
	}
}

func TestBuildMetadata(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	b := &Builder{Theme: DefaultTheme(), Now: func() time.Time { return now }}
	d, err := b.Build(&outline.Outline{Author: "ann", Slides: []outline.Slide{{Title: "First"}}})
	if err != nil {
		t.Fatal(err)
	}
	if d.Title != "First" || d.Author != "ann" || !d.Created.Equal(now) {
		t.Errorf("metadata = %q %q %v", d.Title, d.Author, d.Created)
	}
	if len(d.ID) != 36 {
		t.Errorf("ID = %q, want a uuid", d.ID)
	}
}

func TestBuildRejectsInvalid(t *testing.T) {
	_, err := Build(&outline.Outline{}, DefaultTheme(), nil)
	if !apperrors.Is(err, apperrors.ErrCodeInvalidOutline) {
		t.Errorf("empty outline error = %v", err)
	}
	_, err = Build(&outline.Outline{Slides: []outline.Slide{{Layout: "grid"}}}, DefaultTheme(), nil)
	var ve *apperrors.ValidationError
	if !errors.As(err, &ve) || ve.Field != "layout" {
		t.Errorf("bad layout error = %v", err)
	}
}

type failingFormatter struct{}

func (failingFormatter) Format(string, string) ([]Paragraph, error) {
	return nil, errors.New("boom")
}

func TestBuildFormatterError(t *testing.T) {
	o := &outline.Outline{Slides: []outline.Slide{{Content: "```\nx\n```"}}}
	_, err := Build(o, DefaultTheme(), failingFormatter{})
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("error = %v, want formatter error", err)
	}
}

func TestExpandTabs(t *testing.T) {
	tests := []struct{ in, want string }{
		{"\tx", "    x"},
		{"ab\tc", "ab  c"},
		{"a\n\tb", "a\n    b"},
		{"none", "none"},
	}
	for _, tt := range tests {
		if got := ExpandTabs(tt.in, 4); got != tt.want {
			t.Errorf("ExpandTabs(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

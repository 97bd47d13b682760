package sink

import (
	"encoding/json"
	"testing"
)

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(testDeck(t), WithJSONInches(), WithJSONStyle("monokai"))
	if err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if out.Unit != "in" || out.Width != 10 || out.Height != 5.625 {
		t.Errorf("canvas = %v %vx%v", out.Unit, out.Width, out.Height)
	}
	if out.Style != "monokai" || out.Title != "Tour" || out.Created != "2024-03-01T09:30:00Z" {
		t.Errorf("metadata = %+v", out)
	}
	if len(out.Slides) != 3 {
		t.Fatalf("got %d slides", len(out.Slides))
	}

	tests := []struct {
		slide   int
		content string
		roles   []string
	}{
		{0, "text", []string{"title", "explain", "content"}},
		{1, "code", []string{"title", "code"}},
		{2, "table", []string{"title", "table"}},
	}
	for _, tt := range tests {
		s := out.Slides[tt.slide]
		if s.Content != tt.content {
			t.Errorf("slide %d content = %q, want %q", tt.slide, s.Content, tt.content)
		}
		if len(s.Shapes) != len(tt.roles) {
			t.Fatalf("slide %d has %d shapes, want %d", tt.slide, len(s.Shapes), len(tt.roles))
		}
		for i, role := range tt.roles {
			if s.Shapes[i].Role != role {
				t.Errorf("slide %d shape %d role = %q, want %q", tt.slide, i, s.Shapes[i].Role, role)
			}
		}
	}

	title := out.Slides[0].Shapes[0]
	if title.X != 0.5 || title.Width != 9 {
		t.Errorf("title frame = %+v", title)
	}
	code := out.Slides[1].Shapes[1]
	if code.Fill != "#282828" {
		t.Errorf("code fill = %q", code.Fill)
	}
	table := out.Slides[2].Shapes[1]
	if len(table.Rows) != 2 || len(table.Columns) != 2 {
		t.Errorf("table = %d rows, %d columns", len(table.Rows), len(table.Columns))
	}
	if out.Slides[1].Notes == "" {
		t.Error("notes missing")
	}
}

func TestRenderJSONDefaultsToEMU(t *testing.T) {
	data, err := RenderJSON(testDeck(t))
	if err != nil {
		t.Fatal(err)
	}
	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Unit != "emu" || out.Width != 9144000 {
		t.Errorf("canvas = %v %v", out.Unit, out.Width)
	}
}

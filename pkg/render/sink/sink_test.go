package sink

import (
	"testing"
	"time"

	"github.com/matzehuels/slidegen/pkg/deck"
	"github.com/matzehuels/slidegen/pkg/outline"
)

var created = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

// testDeck builds a deck covering every shape kind.
func testDeck(t *testing.T) *deck.Deck {
	t.Helper()
	o := &outline.Outline{
		Title:  "Tour",
		Author: "Ada",
		Slides: []outline.Slide{
			{Title: "Intro", Explain: "* one\n* [two](https://example.com/a?b=1&c=2)", Content: "Fish & chips > fries"},
			{Title: "Code", Content: "```go\nfmt.Println(1)\n```", Notes: "say hi\nthen leave"},
			{Title: "Table", Content: "| a | b |\n|:-:|---|\n| 1 | 2 |"},
		},
	}
	b := &deck.Builder{Theme: deck.DefaultTheme(), Now: func() time.Time { return created }}
	d, err := b.Build(o)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	d.ID = "00000000-0000-0000-0000-000000000001"
	return d
}

// Package outline reads slide outlines.
//
// An outline is an ordered list of slide records. The canonical form is a
// JSON array:
//
//	[
//	  {"title": "Why Go", "explain": "* simple\n* fast", "content": "```go\nfmt.Println(1)\n```"},
//	  {"title": "Numbers", "content": "| a | b |\n|---|---|\n| 1 | 2 |"}
//	]
//
// The same records can be wrapped in an object that also names the deck:
//
//	{"title": "Onboarding", "author": "Platform team", "slides": [ ... ]}
//
// TOML outlines use [[slides]] tables and YAML outlines use either form.
//
// # Record Fields
//
//   - title: slide heading (may be empty)
//   - explain: markdown for the left column
//   - content: markdown table, fenced code, or text for the right column
//   - notes: speaker notes
//   - layout: "two-column" (default), "full", or "title"
//
// Unknown keys are ignored.
package outline

// Package deck turns an outline into positioned slide shapes.
//
// A [Deck] is the resolved, renderer-independent form of a presentation:
// every slide is a list of shapes ([TextBox] or [Table]) with absolute
// geometry in EMU (English Metric Units, 914400 per inch). Sinks in
// render/sink serialize a Deck to PPTX, JSON, or markdown without making
// layout decisions of their own.
//
// # Layout
//
// The default canvas is 10in x 5.625in (16:9). A two-column slide has a
// title strip across the top, the explain column on the left, and the
// content column on the right:
//
//	┌──────────────────────────────────────┐
//	│ Title                                │
//	├──────────────────┬───────────────────┤
//	│ explain          │ content           │
//	│ (bullets/text)   │ (table/code/text) │
//	└──────────────────┴───────────────────┘
//
// All geometry, fonts, and colors come from a [Theme]; [DefaultTheme]
// reproduces the classic layout.
//
// # Code
//
// Code content is formatted by a [CodeFormatter]. The highlight package
// provides one backed by chroma; [PlainCode] renders code without colors.
package deck

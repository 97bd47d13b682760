// Package render groups the output writers for laid out decks.
//
// The [sink] subpackage turns a [deck.Deck] into bytes:
//
//   - PPTX: an Office Open XML presentation built from embedded templates
//   - JSON: resolved shape geometry for inspection and external tools
//   - Markdown: a plain preview used by "slidegen inspect --markdown"
//
// Renderers never lay out slides themselves; every position and style comes
// from the deck.
//
// [sink]: github.com/matzehuels/slidegen/pkg/render/sink
// [deck.Deck]: github.com/matzehuels/slidegen/pkg/deck.Deck
package render

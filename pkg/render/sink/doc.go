// Package sink writes laid-out decks to output formats.
//
// [RenderPPTX] produces an Office Open XML presentation, [RenderJSON] the
// resolved geometry, and [RenderMarkdown] a plain preview. Sinks never
// change layout: everything they need is already on the [deck.Deck].
package sink

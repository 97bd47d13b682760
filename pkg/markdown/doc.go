// Package markdown inspects the markdown carried by outline records.
//
// Slide content is one of three kinds, decided by [Classify]:
//
//   - a GFM pipe table ([KindTable]), parsed by [ParseTable]
//   - one or more fenced code blocks ([KindCode]), joined by [ExtractCode]
//   - anything else ([KindText]), split into paragraphs by [Paragraphs]
//
// Tables win over code, so a record that has both renders as a table.
// Inline markup (bold, italic, code spans, strikethrough, links) is kept as
// styled [Inline] runs instead of literal asterisks.
//
// All functions are single pass over a goldmark AST and are safe for
// concurrent use.
package markdown

// Package markdown assembles reconstructed blocks into GitHub-Flavored
// Markdown text.
//
// The [Assembler] merges a page's table blocks and classified text blocks
// into one sequence ordered top to bottom (ties broken left to right) and
// serializes each kind:
//
//   - Heading: "#" repeated per level, then the text
//   - List item: two spaces per depth, the item marker, then the text
//   - Paragraph: the text as-is, link markup already embedded
//   - Table: a GFM pipe table with a header and separator row
//
// Consecutive list items stay on adjacent lines; every other block pair
// is separated by a blank line, as are pages within a document:
//
//	assembler := markdown.NewAssembler()
//	page := assembler.AssemblePage(blocks)
//	doc := assembler.AssembleDocument([]string{page})
//
// [ParsePipeTables] goes the other way, recovering cell matrices from
// rendered tables; it backs the round-trip tests and is exported for
// consumers that validate output structurally.
package markdown

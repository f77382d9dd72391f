// Package model provides the intermediate representation (IR) shared by
// every stage of the reconstruction pipeline.
//
// This package defines both sides of the pipeline contract: the geometric
// primitives a layout provider extracts from a PDF page, and the semantic
// structures the detectors derive from them.
//
// # Input Primitives
//
// A [Page] bundles everything known about one page:
//
//   - [TextSpan] - a positioned run of text with font metadata
//   - [LineSegment] - a drawn line or thin rectangle with stroke width
//   - [Link] - a hyperlink annotation rectangle with its target URI
//
// All primitives are produced once per page and treated as immutable.
//
// # Derived Structures
//
// Table detection produces a [Grid] (canonical row/column boundaries), then
// a [Table] of [Cell] values with optional row and column spans. Block
// classification produces [Block] values, a tagged variant over headings,
// list items, paragraphs and tables; the Kind field selects the variant and
// consumers switch over it exhaustively.
//
// # Geometry
//
// Geometric primitives support position and layout calculations:
//
//   - [BBox] - bounding box with intersection, union, overlap and coverage
//   - [Point] - 2D point with distance calculation
//
// Coordinates follow the PDF convention throughout: the origin sits at the
// bottom-left of the page with Y increasing upward, so "top of the page"
// means the highest Y value.
package model

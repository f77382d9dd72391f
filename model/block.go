package model

// BlockKind identifies the variant held by a Block
type BlockKind int

const (
	// BlockHeading is a section heading with a level from 1 to 6
	BlockHeading BlockKind = iota
	// BlockListItem is a single bulleted or numbered list entry
	BlockListItem
	// BlockParagraph is plain flowing text
	BlockParagraph
	// BlockTable wraps a detected table
	BlockTable
)

// String returns a human-readable kind name
func (k BlockKind) String() string {
	switch k {
	case BlockHeading:
		return "heading"
	case BlockListItem:
		return "list_item"
	case BlockParagraph:
		return "paragraph"
	case BlockTable:
		return "table"
	default:
		return "unknown"
	}
}

// Block is one structural unit of a reconstructed page. It is a tagged
// variant: exactly the fields belonging to Kind are meaningful. Blocks per
// page are ordered top-to-bottom, ties broken left-to-right.
type Block struct {
	Kind BlockKind
	BBox BBox

	// Level is the heading level (1-6); meaningful for BlockHeading
	Level int
	// Depth is the nesting depth (0 = top level); meaningful for BlockListItem
	Depth int
	// Marker is the list marker as it renders: "-" for bullets, the literal
	// "1." or "1)" for numbered items; meaningful for BlockListItem
	Marker string
	// Text holds the rendered content, with any link markup already
	// embedded; meaningful for all kinds except BlockTable
	Text string
	// Table holds the table payload; meaningful for BlockTable
	Table *Table
}

// NewHeading creates a heading block. Levels outside 1-6 are clamped.
func NewHeading(level int, text string, bbox BBox) Block {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return Block{Kind: BlockHeading, Level: level, Text: text, BBox: bbox}
}

// NewListItem creates a list item block. Negative depths are clamped to 0
// and an empty marker defaults to the bullet dash.
func NewListItem(depth int, marker, text string, bbox BBox) Block {
	if depth < 0 {
		depth = 0
	}
	if marker == "" {
		marker = "-"
	}
	return Block{Kind: BlockListItem, Depth: depth, Marker: marker, Text: text, BBox: bbox}
}

// NewParagraph creates a paragraph block
func NewParagraph(text string, bbox BBox) Block {
	return Block{Kind: BlockParagraph, Text: text, BBox: bbox}
}

// NewTableBlock wraps a table as a block
func NewTableBlock(t *Table) Block {
	var bbox BBox
	if t != nil {
		bbox = t.BBox
	}
	return Block{Kind: BlockTable, Table: t, BBox: bbox}
}

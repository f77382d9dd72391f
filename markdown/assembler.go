package markdown

import (
	"math"
	"sort"
	"strings"

	"github.com/tsawler/scriba/model"
)

// tieTolerance is the vertical window within which two blocks count as
// sitting on the same row and order left to right (points)
const tieTolerance = 0.5

// Assembler serializes reconstructed blocks to Markdown text.
type Assembler struct{}

// NewAssembler creates an assembler
func NewAssembler() *Assembler {
	return &Assembler{}
}

// AssemblePage merges the page's blocks into reading order and renders
// them. Consecutive list items sit on adjacent lines; all other blocks
// are separated by a blank line. Empty blocks vanish.
func (a *Assembler) AssemblePage(blocks []model.Block) string {
	ordered := orderBlocks(blocks)

	var sb strings.Builder
	var prev model.BlockKind
	first := true

	for _, block := range ordered {
		rendered := renderBlock(block)
		if rendered == "" {
			continue
		}
		if !first {
			if block.Kind == model.BlockListItem && prev == model.BlockListItem {
				sb.WriteString("\n")
			} else {
				sb.WriteString("\n\n")
			}
		}
		sb.WriteString(rendered)
		prev = block.Kind
		first = false
	}
	return sb.String()
}

// AssembleDocument joins page renderings with a blank line. A non-empty
// document ends with exactly one newline.
func (a *Assembler) AssembleDocument(pages []string) string {
	nonEmpty := make([]string, 0, len(pages))
	for _, page := range pages {
		if page != "" {
			nonEmpty = append(nonEmpty, page)
		}
	}
	if len(nonEmpty) == 0 {
		return ""
	}
	return strings.Join(nonEmpty, "\n\n") + "\n"
}

// orderBlocks sorts blocks by descending top edge; blocks whose top edges
// agree within the tie window order by ascending left edge. The input
// slice is not modified.
func orderBlocks(blocks []model.Block) []model.Block {
	ordered := make([]model.Block, len(blocks))
	copy(ordered, blocks)
	sort.SliceStable(ordered, func(i, j int) bool {
		ti, tj := ordered[i].BBox.Top(), ordered[j].BBox.Top()
		if math.Abs(ti-tj) > tieTolerance {
			return ti > tj
		}
		return ordered[i].BBox.Left() < ordered[j].BBox.Left()
	})
	return ordered
}

// renderBlock serializes one block; the switch is exhaustive over the
// block kinds
func renderBlock(block model.Block) string {
	switch block.Kind {
	case model.BlockHeading:
		return strings.Repeat("#", block.Level) + " " + block.Text
	case model.BlockListItem:
		return strings.Repeat("  ", block.Depth) + itemMarker(block) + " " + block.Text
	case model.BlockTable:
		return strings.TrimRight(WriteTable(block.Table), "\n")
	default:
		return block.Text
	}
}

func itemMarker(block model.Block) string {
	if block.Marker == "" {
		return "-"
	}
	return block.Marker
}

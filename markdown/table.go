package markdown

import (
	"strings"

	"github.com/tsawler/scriba/model"
)

// WriteTable renders a table as a GFM pipe table: the first row as the
// header, a separator row of dashes, then the data rows. Merged regions
// render their text at the anchor cell with empty cells underneath.
func WriteTable(t *model.Table) string {
	if t == nil || t.RowCount() == 0 || t.ColCount() == 0 {
		return ""
	}

	var sb strings.Builder
	writeRow(&sb, t.Cells[0])

	for range t.Cells[0] {
		sb.WriteString("|---")
	}
	sb.WriteString("|\n")

	for _, row := range t.Cells[1:] {
		writeRow(&sb, row)
	}
	return sb.String()
}

func writeRow(sb *strings.Builder, row []model.Cell) {
	for _, cell := range row {
		sb.WriteString("| ")
		sb.WriteString(escapeCell(cell.Text))
		sb.WriteString(" ")
	}
	sb.WriteString("|\n")
}

var cellEscaper = strings.NewReplacer("\n", " ", "|", `\|`)

// escapeCell flattens newlines and protects pipe characters so cell text
// cannot break the table structure
func escapeCell(text string) string {
	return cellEscaper.Replace(text)
}

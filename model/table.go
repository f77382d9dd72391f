package model

import "fmt"

// Grid is the canonical boundary structure of a detected table: ordered
// row boundary Y coordinates and column boundary X coordinates, both
// strictly increasing. A grid with fewer than two boundaries on either
// axis describes no cells.
type Grid struct {
	Rows []float64 // Y coordinates of row boundaries, ascending
	Cols []float64 // X coordinates of column boundaries, ascending
}

// RowCount returns the number of cell rows
func (g Grid) RowCount() int {
	if len(g.Rows) <= 1 {
		return 0
	}
	return len(g.Rows) - 1
}

// ColCount returns the number of cell columns
func (g Grid) ColCount() int {
	if len(g.Cols) <= 1 {
		return 0
	}
	return len(g.Cols) - 1
}

// BBox returns the outer bounds of the grid
func (g Grid) BBox() BBox {
	if g.RowCount() == 0 || g.ColCount() == 0 {
		return BBox{}
	}
	return BBox{
		X:      g.Cols[0],
		Y:      g.Rows[0],
		Width:  g.Cols[len(g.Cols)-1] - g.Cols[0],
		Height: g.Rows[len(g.Rows)-1] - g.Rows[0],
	}
}

// CellBox returns the bounding box of the cell at the given indices.
// Row 0 is the top row of the table (highest Y interval).
func (g Grid) CellBox(row, col int) BBox {
	nRows, nCols := g.RowCount(), g.ColCount()
	if row < 0 || row >= nRows || col < 0 || col >= nCols {
		return BBox{}
	}
	bottom := g.Rows[nRows-1-row]
	top := g.Rows[nRows-row]
	return BBox{
		X:      g.Cols[col],
		Y:      bottom,
		Width:  g.Cols[col+1] - g.Cols[col],
		Height: top - bottom,
	}
}

// ColumnIndex returns the cell column containing the X coordinate, or -1
// when x lies outside the grid. A coordinate exactly on an interior
// boundary belongs to the higher-index (right) column.
func (g Grid) ColumnIndex(x float64) int {
	n := g.ColCount()
	if n == 0 || x < g.Cols[0] || x > g.Cols[n] {
		return -1
	}
	for c := 0; c < n; c++ {
		if x < g.Cols[c+1] {
			return c
		}
	}
	// x is exactly the outer right boundary
	return n - 1
}

// RowIndex returns the cell row containing the Y coordinate, or -1 when y
// lies outside the grid. A coordinate exactly on an interior boundary
// belongs to the higher-index row (the cell below it on the page).
func (g Grid) RowIndex(y float64) int {
	n := g.RowCount()
	if n == 0 || y < g.Rows[0] || y > g.Rows[n] {
		return -1
	}
	if y == g.Rows[0] {
		return n - 1
	}
	for k := 1; k <= n; k++ {
		if y <= g.Rows[k] {
			return n - k
		}
	}
	return 0
}

// CellIndex locates the cell containing a point. Either index is -1 when
// the point lies outside the grid on that axis.
func (g Grid) CellIndex(p Point) (row, col int) {
	return g.RowIndex(p.Y), g.ColumnIndex(p.X)
}

// Cell represents a table cell. RowSpan and ColSpan are at least 1; a
// span greater than 1 marks a merged region anchored at this cell, with
// the covered cells left empty.
type Cell struct {
	Text    string
	RowSpan int
	ColSpan int
}

// Table represents a detected table: cells in row-major order with
// contiguous indices from 0, plus the grid and outer bounding box it was
// recovered from. The bounding box lets downstream stages exclude the
// table's spans from normal text flow.
type Table struct {
	Cells [][]Cell
	BBox  BBox
	Grid  Grid
}

// NewTable creates a table with the given dimensions, all cells empty
// with unit spans.
func NewTable(rows, cols int) *Table {
	t := &Table{Cells: make([][]Cell, rows)}
	for i := 0; i < rows; i++ {
		t.Cells[i] = make([]Cell, cols)
		for j := 0; j < cols; j++ {
			t.Cells[i][j] = Cell{RowSpan: 1, ColSpan: 1}
		}
	}
	return t
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Cells)
}

// ColCount returns the number of columns in the first row
func (t *Table) ColCount() int {
	if len(t.Cells) == 0 {
		return 0
	}
	return len(t.Cells[0])
}

// CellAt returns the cell at the given row and column (0-indexed), or nil
// when the indices are out of bounds.
func (t *Table) CellAt(row, col int) *Cell {
	if row < 0 || row >= len(t.Cells) {
		return nil
	}
	if col < 0 || col >= len(t.Cells[row]) {
		return nil
	}
	return &t.Cells[row][col]
}

// SetCell sets the cell at the given position
func (t *Table) SetCell(row, col int, cell Cell) error {
	if row < 0 || row >= len(t.Cells) {
		return fmt.Errorf("row index %d out of bounds", row)
	}
	if col < 0 || col >= len(t.Cells[row]) {
		return fmt.Errorf("col index %d out of bounds", col)
	}
	t.Cells[row][col] = cell
	return nil
}

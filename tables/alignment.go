package tables

import (
	"math"
	"sort"

	"github.com/tsawler/scriba/model"
)

// AlignmentDetector infers tables from text positioning alone. It is the
// fallback path for grids drawn without visible borders: spans cluster
// into rows by baseline, columns emerge from left edges that repeat
// across rows, and a region qualifies only when enough rows share enough
// columns. Best effort by design: a missed table degrades to paragraphs,
// and incidental alignment can produce a false positive.
type AlignmentDetector struct {
	config Config
}

// NewAlignmentDetector creates an alignment detector with default configuration
func NewAlignmentDetector() *AlignmentDetector {
	return &AlignmentDetector{config: DefaultConfig()}
}

// NewAlignmentDetectorWithConfig creates an alignment detector with custom configuration
func NewAlignmentDetectorWithConfig(config Config) *AlignmentDetector {
	return &AlignmentDetector{config: config}
}

// Name returns the detector name
func (d *AlignmentDetector) Name() string {
	return "alignment"
}

// Configure sets detector parameters
func (d *AlignmentDetector) Configure(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	d.config = config
	return nil
}

// textRow is one baseline-aligned run of spans, sorted left to right
type textRow struct {
	baseline float64
	spans    []model.TextSpan
}

// alignedColumn is a left-edge cluster and the rows that touch it
type alignedColumn struct {
	position float64
	count    int
	rows     map[int]bool
}

// Detect finds unbordered tables among the page's spans. The caller is
// expected to pass only spans not already consumed by bordered grids.
func (d *AlignmentDetector) Detect(page model.Page) ([]*model.Table, error) {
	rows := d.groupRows(page.Spans)

	var tables []*model.Table
	for _, region := range d.groupRegions(rows) {
		if table := d.detectRegion(region); table != nil {
			tables = append(tables, table)
		}
	}
	return tables, nil
}

// groupRows clusters spans into baseline-aligned rows, top row first
func (d *AlignmentDetector) groupRows(spans []model.TextSpan) []textRow {
	if len(spans) == 0 {
		return nil
	}

	sorted := make([]model.TextSpan, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Baseline > sorted[j].Baseline
	})

	var rows []textRow
	current := textRow{baseline: sorted[0].Baseline}

	for _, span := range sorted {
		if len(current.spans) > 0 && current.baseline-span.Baseline > d.config.RowGapTolerance {
			rows = append(rows, current)
			current = textRow{baseline: span.Baseline}
		}
		current.spans = append(current.spans, span)
	}
	rows = append(rows, current)

	for i := range rows {
		sort.SliceStable(rows[i].spans, func(a, b int) bool {
			return rows[i].spans[a].BBox.X < rows[i].spans[b].BBox.X
		})
	}

	return rows
}

// groupRegions splits rows into maximal runs of vertically adjacent rows.
// A baseline gap above MaxRowGap ends the current region: distant text
// belongs to separate candidate tables.
func (d *AlignmentDetector) groupRegions(rows []textRow) [][]textRow {
	if len(rows) == 0 {
		return nil
	}

	var regions [][]textRow
	start := 0
	for i := 1; i < len(rows); i++ {
		if rows[i-1].baseline-rows[i].baseline > d.config.MaxRowGap {
			regions = append(regions, rows[start:i])
			start = i
		}
	}
	regions = append(regions, rows[start:])

	return regions
}

// detectRegion accepts a region as a table only when it yields at least
// MinRows rows and MinCols repeated columns, with more than half the rows
// aligned to two or more of those columns. Leading and trailing rows that
// match fewer than two columns are prose hugging the table; they are
// trimmed off and fall through to paragraph classification, as does the
// whole region when it is rejected.
func (d *AlignmentDetector) detectRegion(rows []textRow) *model.Table {
	var columns []alignedColumn
	for {
		if len(rows) < d.config.MinRows {
			return nil
		}
		columns = d.findColumns(rows)
		if len(columns) < d.config.MinCols {
			return nil
		}

		trimmed := len(rows)
		for len(rows) > 0 && d.columnMatches(rows[0], columns) < 2 {
			rows = rows[1:]
		}
		for len(rows) > 0 && d.columnMatches(rows[len(rows)-1], columns) < 2 {
			rows = rows[:len(rows)-1]
		}
		if len(rows) == trimmed {
			break
		}
	}

	consistent := 0
	for _, row := range rows {
		if d.columnMatches(row, columns) >= 2 {
			consistent++
		}
	}
	if consistent*2 <= len(rows) {
		return nil
	}

	grid, ok := d.buildGrid(rows, columns)
	if !ok {
		return nil
	}

	table := model.NewTable(len(rows), len(columns))
	table.Grid = grid
	table.BBox = grid.BBox()

	for r, row := range rows {
		for _, span := range row.spans {
			c := grid.ColumnIndex(span.BBox.X)
			if c < 0 {
				continue
			}
			cell := &table.Cells[r][c]
			if cell.Text == "" {
				cell.Text = span.Text
			} else {
				cell.Text += " " + span.Text
			}
		}
	}

	return table
}

// findColumns clusters span left edges across the region and keeps the
// clusters appearing in at least two distinct rows.
func (d *AlignmentDetector) findColumns(rows []textRow) []alignedColumn {
	type edge struct {
		x   float64
		row int
	}

	var edges []edge
	for r, row := range rows {
		for _, span := range row.spans {
			edges = append(edges, edge{x: span.BBox.X, row: r})
		}
	}
	if len(edges) == 0 {
		return nil
	}

	sort.Slice(edges, func(i, j int) bool { return edges[i].x < edges[j].x })

	var clusters []alignedColumn
	current := alignedColumn{position: edges[0].x, rows: make(map[int]bool)}

	flush := func() {
		if current.count > 0 {
			clusters = append(clusters, current)
		}
	}

	for _, e := range edges {
		if current.count > 0 && e.x-current.position > d.config.ColumnAlignTolerance {
			flush()
			current = alignedColumn{position: e.x, rows: make(map[int]bool)}
		}
		// Running average keeps the cluster centered on its members
		current.position = (current.position*float64(current.count) + e.x) / float64(current.count+1)
		current.count++
		current.rows[e.row] = true
	}
	flush()

	columns := clusters[:0]
	for _, cl := range clusters {
		if len(cl.rows) >= 2 {
			columns = append(columns, cl)
		}
	}
	return columns
}

// columnMatches counts how many accepted columns the row aligns with
func (d *AlignmentDetector) columnMatches(row textRow, columns []alignedColumn) int {
	matches := 0
	for _, col := range columns {
		for _, span := range row.spans {
			if math.Abs(span.BBox.X-col.position) <= d.config.ColumnAlignTolerance {
				matches++
				break
			}
		}
	}
	return matches
}

// buildGrid synthesizes boundary coordinates for the accepted region.
// Column boundaries sit one tolerance left of each column position so
// cluster members near the position always land in their own column; row
// boundaries sit midway between adjacent row extents.
func (d *AlignmentDetector) buildGrid(rows []textRow, columns []alignedColumn) (model.Grid, bool) {
	minX, maxX := math.Inf(1), math.Inf(-1)
	for _, row := range rows {
		for _, span := range row.spans {
			minX = math.Min(minX, span.BBox.X)
			maxX = math.Max(maxX, span.BBox.Right())
		}
	}

	cols := make([]float64, 0, len(columns)+1)
	cols = append(cols, math.Min(minX, columns[0].position-d.config.ColumnAlignTolerance))
	for _, col := range columns[1:] {
		cols = append(cols, col.position-d.config.ColumnAlignTolerance)
	}
	cols = append(cols, maxX)

	// Row boundaries from top of the first row down to the bottom of the
	// last, midpoints in between, then reversed to ascending order.
	tops := make([]float64, len(rows))
	bottoms := make([]float64, len(rows))
	for i, row := range rows {
		top, bottom := math.Inf(-1), math.Inf(1)
		for _, span := range row.spans {
			top = math.Max(top, span.BBox.Top())
			bottom = math.Min(bottom, span.BBox.Bottom())
		}
		tops[i], bottoms[i] = top, bottom
	}

	descending := make([]float64, 0, len(rows)+1)
	descending = append(descending, tops[0])
	for i := 1; i < len(rows); i++ {
		descending = append(descending, (bottoms[i-1]+tops[i])/2)
	}
	descending = append(descending, bottoms[len(rows)-1])

	rowBounds := make([]float64, len(descending))
	for i, v := range descending {
		rowBounds[len(descending)-1-i] = v
	}

	if !strictlyIncreasing(rowBounds) || !strictlyIncreasing(cols) {
		return model.Grid{}, false
	}

	return model.Grid{Rows: rowBounds, Cols: cols}, true
}

// strictlyIncreasing verifies the grid boundary invariant
func strictlyIncreasing(values []float64) bool {
	for i := 1; i < len(values); i++ {
		if values[i] <= values[i-1] {
			return false
		}
	}
	return true
}

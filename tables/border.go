package tables

import (
	"math"
	"sort"
	"strings"

	"github.com/tsawler/scriba/model"
)

// BorderDetector recovers tables from drawn cell borders. It is the
// primary detection path: segments are grouped into spatially connected
// regions, each region's segments are normalized to canonical boundaries,
// and a region qualifies as a table only when the resulting grid is large
// enough and actually enclosed by a full-width and a full-height border.
type BorderDetector struct {
	config     Config
	normalizer *Normalizer
}

// NewBorderDetector creates a border detector with default configuration
func NewBorderDetector() *BorderDetector {
	return &BorderDetector{
		config:     DefaultConfig(),
		normalizer: NewNormalizer(),
	}
}

// NewBorderDetectorWithConfig creates a border detector with custom configuration
func NewBorderDetectorWithConfig(config Config) *BorderDetector {
	return &BorderDetector{
		config:     config,
		normalizer: NewNormalizerWithConfig(config),
	}
}

// Name returns the detector name
func (d *BorderDetector) Name() string {
	return "border"
}

// Configure sets detector parameters
func (d *BorderDetector) Configure(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	d.config = config
	d.normalizer = NewNormalizerWithConfig(config)
	return nil
}

// Detect finds bordered tables on a page. Pages without qualifying grids
// yield no tables and no error; ambiguity is not a failure.
func (d *BorderDetector) Detect(page model.Page) ([]*model.Table, error) {
	horizontals, verticals := d.normalizer.classify(page.Segments)
	if len(horizontals) == 0 || len(verticals) == 0 {
		return nil, nil
	}

	all := make([]model.LineSegment, 0, len(horizontals)+len(verticals))
	all = append(all, horizontals...)
	all = append(all, verticals...)

	var tables []*model.Table
	for _, region := range d.groupConnected(all) {
		if table := d.detectRegion(region, page.Spans); table != nil {
			tables = append(tables, table)
		}
	}

	// Reading order: top table first, ties left to right
	sort.Slice(tables, func(i, j int) bool {
		if tables[i].BBox.Top() != tables[j].BBox.Top() {
			return tables[i].BBox.Top() > tables[j].BBox.Top()
		}
		return tables[i].BBox.X < tables[j].BBox.X
	})

	return tables, nil
}

// groupConnected partitions segments into spatially connected regions.
// Segments of one grid touch at corners, so boxes expanded by the line
// tolerance intersect transitively across the whole table while disjoint
// tables stay separate.
func (d *BorderDetector) groupConnected(segments []model.LineSegment) [][]model.LineSegment {
	n := len(segments)
	if n == 0 {
		return nil
	}

	margin := math.Max(d.config.LineTolerance, 1.0)
	expanded := make([]model.BBox, n)
	for i, seg := range segments {
		expanded[i] = seg.BBox.Expand(margin)
	}

	visited := make([]bool, n)
	var regions [][]model.LineSegment

	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}

		queue := []int{i}
		visited[i] = true
		var region []model.LineSegment

		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			region = append(region, segments[cur])

			for j := 0; j < n; j++ {
				if !visited[j] && expanded[cur].Intersects(expanded[j]) {
					visited[j] = true
					queue = append(queue, j)
				}
			}
		}

		regions = append(regions, region)
	}

	return regions
}

// detectRegion builds a table from one connected segment region, or
// returns nil when the region does not qualify.
func (d *BorderDetector) detectRegion(segments []model.LineSegment, spans []model.TextSpan) *model.Table {
	horizontals, verticals := splitByOrientation(segments, d.config.AspectRatioThreshold)

	rows := d.normalizer.clusterBoundaries(horizontals, model.OrientationHorizontal)
	cols := d.normalizer.clusterBoundaries(verticals, model.OrientationVertical)

	if len(rows) < d.config.MinRows+1 || len(cols) < d.config.MinCols+1 {
		return nil
	}
	if !d.isEnclosed(rows, cols, horizontals, verticals) {
		return nil
	}

	grid := model.Grid{Rows: rows, Cols: cols}
	table := model.NewTable(grid.RowCount(), grid.ColCount())
	table.Grid = grid
	table.BBox = grid.BBox()

	d.assignSpans(table, spans)

	if d.config.DetectMergedCells {
		d.mergeCells(table, horizontals, verticals)
	}

	return table
}

// isEnclosed verifies that the candidate grid is a real box rather than a
// coincidental line crossing: at least one horizontal segment must span
// the grid's full column extent and one vertical segment its full row
// extent.
func (d *BorderDetector) isEnclosed(rows, cols []float64, horizontals, verticals []model.LineSegment) bool {
	slack := 2 * d.config.LineTolerance
	left, right := cols[0], cols[len(cols)-1]
	bottom, top := rows[0], rows[len(rows)-1]

	hSpans := false
	for _, seg := range horizontals {
		if seg.BBox.Left() <= left+slack && seg.BBox.Right() >= right-slack {
			hSpans = true
			break
		}
	}
	if !hSpans {
		return false
	}

	for _, seg := range verticals {
		if seg.BBox.Bottom() <= bottom+slack && seg.BBox.Top() >= top-slack {
			return true
		}
	}
	return false
}

// assignSpans places each span whose centroid falls inside the grid into
// its containing cell. Centroids exactly on a boundary go to the
// higher-index cell. Spans sharing a cell are concatenated in reading
// order with single spaces.
func (d *BorderDetector) assignSpans(table *model.Table, spans []model.TextSpan) {
	type cellKey struct{ row, col int }
	cellSpans := make(map[cellKey][]model.TextSpan)

	for _, span := range spans {
		row, col := table.Grid.CellIndex(span.Centroid())
		if row < 0 || col < 0 {
			continue
		}
		key := cellKey{row, col}
		cellSpans[key] = append(cellSpans[key], span)
	}

	for key, group := range cellSpans {
		sortSpansReadingOrder(group, d.config.RowGapTolerance)
		table.Cells[key.row][key.col].Text = joinSpanText(group)
	}
}

// mergeCells extends cells across missing interior borders. A vertical
// border between two horizontally adjacent cells (or a horizontal border
// between vertically adjacent ones) that no segment supports marks a
// merged region; the upper-left cell anchors it and absorbs the covered
// cells' text.
func (d *BorderDetector) mergeCells(table *model.Table, horizontals, verticals []model.LineSegment) {
	nRows, nCols := table.RowCount(), table.ColCount()
	covered := make([][]bool, nRows)
	for i := range covered {
		covered[i] = make([]bool, nCols)
	}

	for r := 0; r < nRows; r++ {
		for c := 0; c < nCols; c++ {
			if covered[r][c] {
				continue
			}

			colSpan := 1
			for c+colSpan < nCols &&
				!covered[r][c+colSpan] &&
				!d.hasVerticalBorder(table.Grid, r, c+colSpan, verticals) {
				colSpan++
			}

			rowSpan := 1
		extend:
			for r+rowSpan < nRows {
				for cc := c; cc < c+colSpan; cc++ {
					if covered[r+rowSpan][cc] || d.hasHorizontalBorder(table.Grid, r+rowSpan, cc, horizontals) {
						break extend
					}
				}
				rowSpan++
			}

			if colSpan == 1 && rowSpan == 1 {
				continue
			}

			var parts []string
			for rr := r; rr < r+rowSpan; rr++ {
				for cc := c; cc < c+colSpan; cc++ {
					if text := table.Cells[rr][cc].Text; text != "" {
						parts = append(parts, text)
					}
					if rr != r || cc != c {
						covered[rr][cc] = true
						table.Cells[rr][cc] = model.Cell{RowSpan: 1, ColSpan: 1}
					}
				}
			}

			anchor := &table.Cells[r][c]
			anchor.Text = strings.Join(parts, " ")
			anchor.RowSpan = rowSpan
			anchor.ColSpan = colSpan
		}
	}
}

// hasVerticalBorder reports whether a vertical segment supports the
// boundary left of column col across the given row's interval.
func (d *BorderDetector) hasVerticalBorder(grid model.Grid, row, col int, verticals []model.LineSegment) bool {
	x := grid.Cols[col]
	cell := grid.CellBox(row, 0)
	midY := cell.Y + cell.Height/2

	for _, seg := range verticals {
		tol := math.Max(d.config.LineTolerance, seg.StrokeWidth)
		if math.Abs(seg.CrossAxis(model.OrientationVertical)-x) >= tol {
			continue
		}
		if seg.BBox.Bottom() <= midY && seg.BBox.Top() >= midY {
			return true
		}
	}
	return false
}

// hasHorizontalBorder reports whether a horizontal segment supports the
// boundary above the given row across the given column's interval.
func (d *BorderDetector) hasHorizontalBorder(grid model.Grid, row, col int, horizontals []model.LineSegment) bool {
	cell := grid.CellBox(row, col)
	y := cell.Top()
	midX := cell.X + cell.Width/2

	for _, seg := range horizontals {
		tol := math.Max(d.config.LineTolerance, seg.StrokeWidth)
		if math.Abs(seg.CrossAxis(model.OrientationHorizontal)-y) >= tol {
			continue
		}
		if seg.BBox.Left() <= midX && seg.BBox.Right() >= midX {
			return true
		}
	}
	return false
}

// splitByOrientation separates already-filtered segments by axis
func splitByOrientation(segments []model.LineSegment, ratio float64) (horizontals, verticals []model.LineSegment) {
	for _, seg := range segments {
		switch seg.Orientation(ratio) {
		case model.OrientationHorizontal:
			horizontals = append(horizontals, seg)
		case model.OrientationVertical:
			verticals = append(verticals, seg)
		}
	}
	return horizontals, verticals
}

// sortSpansReadingOrder orders spans top-to-bottom, then left-to-right.
// Baselines within the tolerance count as the same text line.
func sortSpansReadingOrder(spans []model.TextSpan, tolerance float64) {
	sort.SliceStable(spans, func(i, j int) bool {
		if math.Abs(spans[i].Baseline-spans[j].Baseline) > tolerance {
			return spans[i].Baseline > spans[j].Baseline
		}
		return spans[i].BBox.X < spans[j].BBox.X
	})
}

// joinSpanText concatenates span texts with single spaces, skipping empties
func joinSpanText(spans []model.TextSpan) string {
	parts := make([]string, 0, len(spans))
	for _, span := range spans {
		if span.Text != "" {
			parts = append(parts, span.Text)
		}
	}
	return strings.Join(parts, " ")
}

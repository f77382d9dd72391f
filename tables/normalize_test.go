package tables

import (
	"math"
	"sort"
	"testing"

	"github.com/tsawler/scriba/model"
)

// makeHSeg builds a thin horizontal segment on the line y from x1 to x2
func makeHSeg(y, x1, x2 float64) model.LineSegment {
	return model.LineSegment{
		BBox:        model.NewBBox(x1, y-0.25, x2-x1, 0.5),
		StrokeWidth: 0.5,
	}
}

// makeVSeg builds a thin vertical segment on the line x from y1 to y2
func makeVSeg(x, y1, y2 float64) model.LineSegment {
	return model.LineSegment{
		BBox:        model.NewBBox(x-0.25, y1, 0.5, y2-y1),
		StrokeWidth: 0.5,
	}
}

// gridSegments draws a complete rows x cols cell mesh with bottom-left
// corner at (x0, y0) and uniform cell size cellW x cellH.
func gridSegments(x0, y0, cellW, cellH float64, rows, cols int) []model.LineSegment {
	width := float64(cols) * cellW
	height := float64(rows) * cellH

	segs := make([]model.LineSegment, 0, rows+cols+2)
	for i := 0; i <= rows; i++ {
		segs = append(segs, makeHSeg(y0+float64(i)*cellH, x0, x0+width))
	}
	for j := 0; j <= cols; j++ {
		segs = append(segs, makeVSeg(x0+float64(j)*cellW, y0, y0+height))
	}
	return segs
}

func TestNormalizer_FullGrid(t *testing.T) {
	n := NewNormalizer()

	// 2x2 mesh: rows at 500/520/540, cols at 100/200/300
	b := n.Normalize(gridSegments(100, 500, 100, 20, 2, 2))

	if !b.HasGrid() {
		t.Fatal("Expected a grid from a complete mesh")
	}

	wantRows := []float64{500, 520, 540}
	wantCols := []float64{100, 200, 300}

	if len(b.Rows) != len(wantRows) {
		t.Fatalf("Expected %d row boundaries, got %d", len(wantRows), len(b.Rows))
	}
	for i, want := range wantRows {
		if b.Rows[i] != want {
			t.Errorf("Rows[%d] = %v, want %v", i, b.Rows[i], want)
		}
	}

	if len(b.Cols) != len(wantCols) {
		t.Fatalf("Expected %d column boundaries, got %d", len(wantCols), len(b.Cols))
	}
	for i, want := range wantCols {
		if b.Cols[i] != want {
			t.Errorf("Cols[%d] = %v, want %v", i, b.Cols[i], want)
		}
	}
}

func TestNormalizer_FiltersNoise(t *testing.T) {
	n := NewNormalizer()

	segments := gridSegments(100, 500, 100, 20, 2, 2)
	segments = append(segments,
		// Zero extent along the major axis
		model.LineSegment{BBox: model.NewBBox(150, 510, 0, 0)},
		// Shorter than MinSegmentLength
		makeHSeg(510, 150, 154),
		// Near-square: fails the aspect ratio test on both axes
		model.LineSegment{BBox: model.NewBBox(150, 505, 10, 5)},
	)

	b := n.Normalize(segments)

	if len(b.Horizontals) != 3 {
		t.Errorf("Expected 3 horizontal segments after filtering, got %d", len(b.Horizontals))
	}
	if len(b.Verticals) != 3 {
		t.Errorf("Expected 3 vertical segments after filtering, got %d", len(b.Verticals))
	}
	if len(b.Rows) != 3 || len(b.Cols) != 3 {
		t.Errorf("Expected 3x3 boundaries, got %dx%d", len(b.Rows), len(b.Cols))
	}
}

func TestNormalizer_ClustersToMedian(t *testing.T) {
	n := NewNormalizer()

	// Three near-collinear horizontals within the 1pt tolerance chain,
	// one clearly separate horizontal, and two verticals for the grid.
	segments := []model.LineSegment{
		makeHSeg(99.4, 100, 300),
		makeHSeg(100.0, 100, 300),
		makeHSeg(100.6, 100, 300),
		makeHSeg(140, 100, 300),
		makeVSeg(100, 99, 141),
		makeVSeg(300, 99, 141),
	}

	b := n.Normalize(segments)

	if len(b.Rows) != 2 {
		t.Fatalf("Expected 2 row boundaries, got %d: %v", len(b.Rows), b.Rows)
	}
	if b.Rows[0] != 100.0 {
		t.Errorf("Canonical boundary = %v, want median 100.0", b.Rows[0])
	}
	if b.Rows[1] != 140.0 {
		t.Errorf("Second boundary = %v, want 140.0", b.Rows[1])
	}
}

func TestNormalizer_StrokeWidthWidensTolerance(t *testing.T) {
	n := NewNormalizer()

	thick := func(y, stroke float64) model.LineSegment {
		seg := makeHSeg(y, 100, 300)
		seg.StrokeWidth = stroke
		return seg
	}
	verticals := []model.LineSegment{
		makeVSeg(100, 90, 210),
		makeVSeg(300, 90, 210),
	}

	tests := []struct {
		name     string
		stroke   float64
		wantRows int
	}{
		// 1.5pt apart: beyond the 1pt line tolerance, within a 2pt stroke
		{"thick strokes merge", 2.0, 2},
		{"thin strokes stay apart", 0.5, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments := append([]model.LineSegment{
				thick(100.0, tt.stroke),
				thick(101.5, tt.stroke),
				thick(200.0, tt.stroke),
			}, verticals...)

			b := n.Normalize(segments)
			if len(b.Rows) != tt.wantRows {
				t.Errorf("Expected %d row boundaries, got %d: %v", tt.wantRows, len(b.Rows), b.Rows)
			}
		})
	}
}

func TestNormalizer_MergedPairUsesMidpoint(t *testing.T) {
	n := NewNormalizer()

	segments := []model.LineSegment{
		makeHSeg(100.0, 100, 300),
		makeHSeg(100.8, 100, 300),
		makeHSeg(200.0, 100, 300),
		makeVSeg(100, 90, 210),
		makeVSeg(300, 90, 210),
	}

	b := n.Normalize(segments)

	if len(b.Rows) != 2 {
		t.Fatalf("Expected 2 row boundaries, got %d: %v", len(b.Rows), b.Rows)
	}
	if math.Abs(b.Rows[0]-100.4) > 1e-9 {
		t.Errorf("Even cluster canonical = %v, want midpoint 100.4", b.Rows[0])
	}
}

func TestNormalizer_InsufficientBoundaries(t *testing.T) {
	n := NewNormalizer()

	tests := []struct {
		name     string
		segments []model.LineSegment
	}{
		{
			name:     "single horizontal",
			segments: []model.LineSegment{makeHSeg(100, 100, 300)},
		},
		{
			name: "rule plus one vertical",
			segments: []model.LineSegment{
				makeHSeg(100, 100, 300),
				makeHSeg(140, 100, 300),
				makeVSeg(100, 100, 140),
			},
		},
		{
			name:     "empty page",
			segments: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := n.Normalize(tt.segments)
			if b.HasGrid() {
				t.Error("Expected no grid")
			}
			if b.Rows != nil || b.Cols != nil {
				t.Errorf("Expected empty boundary sets, got rows %v cols %v", b.Rows, b.Cols)
			}
		})
	}
}

func TestNormalizer_BoundariesAscending(t *testing.T) {
	n := NewNormalizer()

	// Deliberately out of order
	segments := []model.LineSegment{
		makeHSeg(540, 100, 300),
		makeHSeg(500, 100, 300),
		makeHSeg(520, 100, 300),
		makeVSeg(300, 500, 540),
		makeVSeg(100, 500, 540),
	}

	b := n.Normalize(segments)

	if !sort.Float64sAreSorted(b.Rows) {
		t.Errorf("Rows not ascending: %v", b.Rows)
	}
	if !sort.Float64sAreSorted(b.Cols) {
		t.Errorf("Cols not ascending: %v", b.Cols)
	}
}

package tables

import (
	"math"
	"sort"

	"github.com/tsawler/scriba/model"
)

// Boundaries is the canonical grid skeleton recovered from a page's drawn
// segments: one ordered coordinate set per axis, plus the classified
// segments supporting them. Rows holds Y coordinates of horizontal
// boundaries, Cols holds X coordinates of vertical boundaries, both
// strictly ascending.
type Boundaries struct {
	Rows []float64
	Cols []float64

	Horizontals []model.LineSegment
	Verticals   []model.LineSegment
}

// HasGrid reports whether both axes carry enough boundaries to describe
// at least one cell.
func (b Boundaries) HasGrid() bool {
	return len(b.Rows) >= 2 && len(b.Cols) >= 2
}

// Normalizer clusters raw line and rectangle primitives into canonical
// horizontal and vertical boundaries. Degenerate and near-square
// primitives are dropped, short segments are treated as noise, and
// near-collinear segments collapse into a single boundary at their median
// coordinate.
type Normalizer struct {
	config Config
}

// NewNormalizer creates a normalizer with default configuration
func NewNormalizer() *Normalizer {
	return &Normalizer{config: DefaultConfig()}
}

// NewNormalizerWithConfig creates a normalizer with custom configuration
func NewNormalizerWithConfig(config Config) *Normalizer {
	return &Normalizer{config: config}
}

// Normalize reduces a page's drawing primitives to canonical boundaries.
// When fewer than 2 boundaries exist on either axis the boundary sets are
// left empty: the page has no bordered grid. That outcome is not an
// error, it simply routes detection to the alignment fallback.
func (n *Normalizer) Normalize(segments []model.LineSegment) Boundaries {
	horizontals, verticals := n.classify(segments)

	rows := n.clusterBoundaries(horizontals, model.OrientationHorizontal)
	cols := n.clusterBoundaries(verticals, model.OrientationVertical)

	b := Boundaries{Horizontals: horizontals, Verticals: verticals}
	if len(rows) < 2 || len(cols) < 2 {
		return b
	}
	b.Rows = rows
	b.Cols = cols
	return b
}

// classify filters out degenerate and short primitives and splits the
// remainder by orientation.
func (n *Normalizer) classify(segments []model.LineSegment) (horizontals, verticals []model.LineSegment) {
	for _, seg := range segments {
		if seg.Length() <= 0 {
			continue
		}
		if seg.Length() < n.config.MinSegmentLength {
			continue
		}

		switch seg.Orientation(n.config.AspectRatioThreshold) {
		case model.OrientationHorizontal:
			horizontals = append(horizontals, seg)
		case model.OrientationVertical:
			verticals = append(verticals, seg)
		}
	}
	return horizontals, verticals
}

// clusterBoundaries collapses collinear-equal segments into canonical
// coordinates. Segments are collinear-equal when their cross-axis
// coordinates differ by less than the effective tolerance, which is the
// larger of the configured line tolerance and the stroke width. Each
// cluster's canonical coordinate is the median of its members.
func (n *Normalizer) clusterBoundaries(segments []model.LineSegment, o model.Orientation) []float64 {
	if len(segments) == 0 {
		return nil
	}

	type entry struct {
		pos float64
		tol float64
	}

	entries := make([]entry, 0, len(segments))
	for _, seg := range segments {
		entries = append(entries, entry{
			pos: seg.CrossAxis(o),
			tol: math.Max(n.config.LineTolerance, seg.StrokeWidth),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].pos < entries[j].pos })

	var boundaries []float64
	var cluster []float64
	clusterTol := 0.0

	flush := func() {
		if len(cluster) > 0 {
			boundaries = append(boundaries, median(cluster))
			cluster = cluster[:0]
			clusterTol = 0
		}
	}

	for _, e := range entries {
		if len(cluster) > 0 && e.pos-cluster[len(cluster)-1] >= math.Max(clusterTol, e.tol) {
			flush()
		}
		cluster = append(cluster, e.pos)
		if e.tol > clusterTol {
			clusterTol = e.tol
		}
	}
	flush()

	return boundaries
}

// median returns the median of an ascending-sorted slice
func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

package reader

import (
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/scriba/model"
)

const (
	// rowTolerance groups characters onto one baseline (points)
	rowTolerance = 2.0
	// wordGapFactor times the font size is the horizontal gap that
	// separates two characters into distinct spans
	wordGapFactor = 0.3
	// descentFactor approximates the glyph box extent below the baseline
	descentFactor = 0.2
)

// buildSpans merges character-level text elements into word spans.
// Content stream order is irrelevant: characters regroup by baseline,
// then left to right. A span never mixes fonts or sizes.
func buildSpans(texts []pdf.Text) []model.TextSpan {
	chars := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		chars = append(chars, t)
	}
	if len(chars) == 0 {
		return nil
	}

	sort.SliceStable(chars, func(i, j int) bool {
		if chars[i].Y != chars[j].Y {
			return chars[i].Y > chars[j].Y
		}
		return chars[i].X < chars[j].X
	})

	var spans []model.TextSpan
	var run []pdf.Text

	flush := func() {
		if len(run) > 0 {
			spans = append(spans, mergeRun(run))
			run = nil
		}
	}

	for _, c := range chars {
		if len(run) > 0 {
			prev := run[len(run)-1]
			gap := c.X - (prev.X + prev.W)
			switch {
			case prev.Y-c.Y > rowTolerance:
				flush()
			case gap > wordGapFactor*spacingSize(prev):
				flush()
			case c.Font != prev.Font || c.FontSize != prev.FontSize:
				flush()
			}
		}
		run = append(run, c)
	}
	flush()

	return spans
}

// mergeRun collapses one character run into a span
func mergeRun(run []pdf.Text) model.TextSpan {
	first, last := run[0], run[len(run)-1]
	size := spacingSize(first)

	var sb strings.Builder
	for _, c := range run {
		sb.WriteString(c.S)
	}

	width := last.X + last.W - first.X
	if width <= 0 {
		width = size * 0.5
	}

	return model.TextSpan{
		BBox:     model.NewBBox(first.X, first.Y-descentFactor*size, width, size),
		Text:     norm.NFC.String(sb.String()),
		FontName: first.Font,
		FontSize: first.FontSize,
		Bold:     boldFont(first.Font),
		Italic:   italicFont(first.Font),
		Baseline: first.Y,
	}
}

// spacingSize is the font size with a floor, so degenerate size-0 text
// still gets usable gap thresholds and box heights
func spacingSize(t pdf.Text) float64 {
	if t.FontSize <= 0 {
		return 1
	}
	return t.FontSize
}

// buildSegments converts drawn rectangles to line segments. Tables draw
// their borders as thin filled rectangles; the thin dimension stands in
// for the stroke width.
func buildSegments(rects []pdf.Rect) []model.LineSegment {
	segments := make([]model.LineSegment, 0, len(rects))
	for _, r := range rects {
		bbox := model.NewBBoxFromPoints(
			model.Point{X: r.Min.X, Y: r.Min.Y},
			model.Point{X: r.Max.X, Y: r.Max.Y},
		)
		segments = append(segments, model.LineSegment{
			BBox:        bbox,
			StrokeWidth: math.Min(bbox.Width, bbox.Height),
		})
	}
	return segments
}

// boldFont reports whether the font name marks a bold face
func boldFont(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "bold") ||
		strings.Contains(lower, "black") ||
		strings.Contains(lower, "heavy") ||
		strings.Contains(lower, "semibold") ||
		strings.Contains(lower, "demibold")
}

// italicFont reports whether the font name marks an italic face
func italicFont(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "italic") || strings.Contains(lower, "oblique")
}

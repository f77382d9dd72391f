package layout

import (
	"sort"
	"strings"

	"github.com/tsawler/scriba/model"
)

// Line is one baseline-aligned run of spans, sorted left to right
type Line struct {
	// BBox is the bounding box of the line
	BBox model.BBox

	// Spans are the text spans that make up this line
	Spans []model.TextSpan

	// Text is the assembled text content of the line
	Text string

	// Offsets holds each span's starting byte offset within Text
	Offsets []int

	// Baseline is the Y coordinate of the text baseline
	Baseline float64

	// Height is the line height (max span height)
	Height float64

	// FontSize is the average font size of spans in this line
	FontSize float64

	// Bold is set when every span in the line is bold
	Bold bool
}

// BuildLines groups spans into horizontal lines by baseline proximity.
// The grouping tolerance is half the current line's average span height,
// so large type tolerates more baseline jitter than small type. Lines come
// back top to bottom, spans within a line left to right.
func BuildLines(spans []model.TextSpan) []Line {
	if len(spans) == 0 {
		return nil
	}

	sorted := make([]model.TextSpan, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Baseline > sorted[j].Baseline
	})

	var groups [][]model.TextSpan
	var current []model.TextSpan

	for _, span := range sorted {
		if len(current) > 0 {
			tolerance := 0.5 * averageHeight(current)
			if averageBaseline(current)-span.Baseline > tolerance {
				groups = append(groups, current)
				current = nil
			}
		}
		current = append(current, span)
	}
	groups = append(groups, current)

	lines := make([]Line, 0, len(groups))
	for _, group := range groups {
		lines = append(lines, buildLine(group))
	}
	return lines
}

// VisibleGap reports whether two horizontally adjacent spans read as
// separate words rather than one continued run.
func VisibleGap(prev, next model.TextSpan) bool {
	return next.BBox.X-prev.BBox.Right() > 0.1*next.BBox.Height
}

func buildLine(spans []model.TextSpan) Line {
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].BBox.X < spans[j].BBox.X
	})

	line := Line{
		Spans:    spans,
		BBox:     spans[0].BBox,
		Baseline: averageBaseline(spans),
		Height:   spans[0].BBox.Height,
		Bold:     true,
	}

	totalSize := 0.0
	for _, span := range spans {
		line.BBox = line.BBox.Union(span.BBox)
		if span.BBox.Height > line.Height {
			line.Height = span.BBox.Height
		}
		totalSize += span.FontSize
		if !span.Bold {
			line.Bold = false
		}
	}
	line.FontSize = totalSize / float64(len(spans))
	line.Text, line.Offsets = joinLineText(spans)

	return line
}

// joinLineText assembles line text, inserting a space only across a
// visible gap, and records where each span's text begins.
func joinLineText(spans []model.TextSpan) (string, []int) {
	var sb strings.Builder
	offsets := make([]int, len(spans))
	for i, span := range spans {
		if i > 0 && VisibleGap(spans[i-1], span) {
			sb.WriteString(" ")
		}
		offsets[i] = sb.Len()
		sb.WriteString(span.Text)
	}
	return sb.String(), offsets
}

func averageBaseline(spans []model.TextSpan) float64 {
	total := 0.0
	for _, span := range spans {
		total += span.Baseline
	}
	return total / float64(len(spans))
}

func averageHeight(spans []model.TextSpan) float64 {
	total := 0.0
	for _, span := range spans {
		total += span.BBox.Height
	}
	return total / float64(len(spans))
}

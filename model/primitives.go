package model

// Orientation classifies a line segment as horizontal or vertical
type Orientation int

const (
	// OrientationNone marks primitives that are neither clearly
	// horizontal nor clearly vertical (near-square noise).
	OrientationNone Orientation = iota
	// OrientationHorizontal marks segments wider than tall
	OrientationHorizontal
	// OrientationVertical marks segments taller than wide
	OrientationVertical
)

// String returns a human-readable orientation name
func (o Orientation) String() string {
	switch o {
	case OrientationHorizontal:
		return "horizontal"
	case OrientationVertical:
		return "vertical"
	default:
		return "none"
	}
}

// TextSpan is a run of text positioned on a page. Spans are produced once
// per page by the layout provider and never mutated afterwards.
type TextSpan struct {
	BBox     BBox
	Text     string
	FontName string
	FontSize float64
	Bold     bool
	Italic   bool
	Baseline float64 // Y coordinate of the text baseline
}

// Centroid returns the center point of the span's bounding box
func (s TextSpan) Centroid() Point {
	return s.BBox.Center()
}

// LineSegment is a drawn line or thin rectangle on a page.
type LineSegment struct {
	BBox        BBox
	StrokeWidth float64
}

// Orientation derives the segment orientation from its aspect ratio.
// A segment is horizontal when its width is at least ratio times its
// height, vertical in the transposed case, and none otherwise.
func (l LineSegment) Orientation(ratio float64) Orientation {
	w, h := l.BBox.Width, l.BBox.Height
	switch {
	case w >= ratio*h && w > 0:
		return OrientationHorizontal
	case h >= ratio*w && h > 0:
		return OrientationVertical
	default:
		return OrientationNone
	}
}

// Length returns the extent of the segment along its major axis
func (l LineSegment) Length() float64 {
	if l.BBox.Width >= l.BBox.Height {
		return l.BBox.Width
	}
	return l.BBox.Height
}

// CrossAxis returns the segment's coordinate on its minor axis (the
// vertical center for horizontal segments, the horizontal center for
// vertical ones). Segments whose cross-axis coordinates agree within a
// width tolerance are collinear-equal and cluster into one boundary.
func (l LineSegment) CrossAxis(o Orientation) float64 {
	if o == OrientationHorizontal {
		return l.BBox.Y + l.BBox.Height/2
	}
	return l.BBox.X + l.BBox.Width/2
}

// Link is a hyperlink annotation: a rectangle on the page pointing at a
// target URI. A link overlaps a span when the intersection covers at least
// half the span's area. Links do not own spans; each link is consumed at
// most once when its markup is embedded.
type Link struct {
	BBox BBox
	URI  string
}

// OverlapsSpan reports whether the link covers enough of the span to
// claim its text.
func (l Link) OverlapsSpan(s TextSpan) bool {
	return l.BBox.CoverageOf(s.BBox) >= 0.5
}

// Page holds the geometric primitives extracted from a single PDF page.
// This is the complete input contract of the reconstruction pipeline: all
// downstream artifacts (grids, tables, blocks) are derived from one Page
// value and the configuration, and nothing persists across pages.
type Page struct {
	Number   int     // 1-indexed page number
	Width    float64 // Page width in points
	Height   float64 // Page height in points
	Spans    []TextSpan
	Segments []LineSegment
	Links    []Link
}

// IsEmpty reports whether the page carries no primitives at all
func (p Page) IsEmpty() bool {
	return len(p.Spans) == 0 && len(p.Segments) == 0 && len(p.Links) == 0
}

// Package tables provides table detection from PDF page geometry.
//
// Detection works on the geometric primitives of a page: drawn line
// segments and positioned text spans. Two complementary algorithms are
// provided, both implementing the [Detector] interface.
//
// # Border-Based Detection
//
// The [BorderDetector] is the primary path. The [Normalizer] first reduces
// the page's drawing primitives to canonical boundaries:
//
//  1. Degenerate and near-square primitives are dropped
//  2. Segments shorter than a minimum length are treated as noise
//  3. Near-collinear segments cluster into one boundary at their median
//
// Connected segment regions then become candidate grids. A candidate is
// accepted only when it has enough rows and columns and is enclosed by at
// least one full-width and one full-height border, so a coincidental line
// crossing never becomes a table. Spans are placed by centroid
// containment, and missing interior borders turn into row/column spans.
//
// # Alignment-Based Detection
//
// The [AlignmentDetector] is the fallback for tables drawn without
// borders. Spans cluster into rows by baseline and into columns by
// repeated left-edge alignment; a region qualifies only when two or more
// columns stay consistent across a majority of its rows. This path is
// deliberately best-effort: a missed table degrades into paragraphs.
//
// # Registry
//
// Detectors are registered globally and can be retrieved by name:
//
//	detector := tables.GetDetector("border")
//	found, err := detector.Detect(page)
//
// # Configuration
//
// Detector behavior is controlled by [Config]:
//
//	config := tables.DefaultConfig()
//	config.MinRows = 3
//	config.LineTolerance = 0.5
//	detector.Configure(config)
//
// Every threshold the algorithms use is an explicit configuration value;
// there are no hidden tuning constants.
package tables

// Package layout classifies text outside tables into headings, list items,
// and paragraphs.
//
// # Pipeline
//
// Spans group into baseline-aligned lines, lines group into blocks by
// vertical gap thresholding, and the [Classifier] assigns each block a
// structural kind:
//
//	classifier := layout.NewClassifier()
//	blocks := classifier.Classify(spans)
//
// # Classification Rules
//
// A block is a heading when its font size strictly exceeds the page's
// median span size by the configured ratio, or when it is entirely bold
// with a size above the median. Heading levels follow the page's distinct
// heading sizes, largest first.
//
// A block is a list item when its first line opens with a bullet glyph or
// a numbered marker such as "1." or "3)". Item depth comes from the
// indent relative to the shallowest list item on the page. Everything
// else is a paragraph.
//
// # Configuration
//
// Thresholds live in [Config]:
//
//	config := layout.DefaultConfig()
//	config.HeadingSizeRatio = 1.3
//	classifier := layout.NewClassifierWithConfig(config)
package layout

package scriba

import (
	"github.com/tsawler/scriba/layout"
	"github.com/tsawler/scriba/links"
	"github.com/tsawler/scriba/markdown"
	"github.com/tsawler/scriba/model"
	"github.com/tsawler/scriba/tables"
)

// ConvertPage reconstructs the structure of a single page and renders it
// as Markdown. It is a pure function of the page and the configuration,
// safe to call from concurrent goroutines.
func ConvertPage(page model.Page, config Config) string {
	return markdown.NewAssembler().AssemblePage(PageBlocks(page, config))
}

// PageBlocks runs the detection pipeline on one page and returns its
// semantic blocks. Border-detected tables claim their spans first, then
// alignment detection runs on what is left, then the remaining spans are
// classified as headings, list items, and paragraphs with hyperlinks
// embedded. Block order is geometric, not reading order; the markdown
// assembler sorts.
func PageBlocks(page model.Page, config Config) []model.Block {
	border := tables.NewBorderDetectorWithConfig(config.Tables)
	found, _ := border.Detect(page)

	remaining := pruneSpans(page.Spans, found)

	alignPage := page
	alignPage.Spans = remaining
	alignment := tables.NewAlignmentDetectorWithConfig(config.Tables)
	aligned, _ := alignment.Detect(alignPage)
	remaining = pruneSpans(remaining, aligned)
	found = append(found, aligned...)

	textBlocks := layout.NewClassifierWithConfig(config.Layout).Classify(remaining)
	blocks := links.NewEmbedder().Embed(textBlocks, page.Links)

	for _, t := range found {
		blocks = append(blocks, model.NewTableBlock(t))
	}
	return blocks
}

// pruneSpans drops spans whose centroid falls inside a detected table.
// A detected table owns its text; later stages only see what is left.
func pruneSpans(spans []model.TextSpan, found []*model.Table) []model.TextSpan {
	if len(found) == 0 {
		return spans
	}
	remaining := make([]model.TextSpan, 0, len(spans))
	for _, span := range spans {
		if !insideAny(span.Centroid(), found) {
			remaining = append(remaining, span)
		}
	}
	return remaining
}

func insideAny(p model.Point, found []*model.Table) bool {
	for _, t := range found {
		if t.BBox.Contains(p) {
			return true
		}
	}
	return false
}

// ConvertFile converts a whole PDF file to Markdown in one call.
//
// Example:
//
//	md, warnings, err := scriba.ConvertFile("document.pdf", scriba.DefaultConfig())
func ConvertFile(path string, config Config) (string, []Warning, error) {
	return Open(path).WithConfig(config).Markdown()
}

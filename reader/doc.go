// Package reader opens PDF files and serves the geometric primitives the
// reconstruction pipeline consumes.
//
// A [Document] wraps the PDF text layer: character-level text elements
// merge into word spans, drawn rectangles become line segments, and link
// annotations become link rectangles, all in PDF user-space coordinates
// (origin bottom-left, Y up):
//
//	doc, err := reader.Open("report.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer doc.Close()
//
//	page, err := doc.Page(1)
//
// [Document.PlainText] serves raw text extraction with no layout
// reconstruction.
//
// Only the embedded text layer is read; scanned image-only PDFs come back
// empty. Borders drawn as stroked paths rather than filled rectangles are
// not visible to the underlying parser and such tables fall to the
// alignment detector.
package reader

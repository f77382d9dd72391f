package reader

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/scriba/model"
)

// Sentinel errors for document access.
var (
	// ErrPageUnavailable marks a page whose object cannot be resolved
	ErrPageUnavailable = errors.New("page unavailable")
	// ErrMalformedPage marks a page whose content cannot be parsed
	ErrMalformedPage = errors.New("malformed page content")
)

// Document is an open PDF file serving per-page geometric primitives. A
// Document is safe for sequential use; page extraction holds no state
// between calls.
type Document struct {
	file  *os.File
	pdf   *pdf.Reader
	fonts map[string]*pdf.Font
}

// Open opens a PDF file for reading
func Open(path string) (*Document, error) {
	file, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return &Document{file: file, pdf: r, fonts: make(map[string]*pdf.Font)}, nil
}

// Close releases the underlying file
func (d *Document) Close() error {
	return d.file.Close()
}

// PageCount returns the number of pages in the document
func (d *Document) PageCount() int {
	return d.pdf.NumPage()
}

// Page extracts the geometric primitives of one page. Pages are numbered
// from 1. A failure is local to the requested page.
func (d *Document) Page(n int) (page model.Page, err error) {
	p := d.pdf.Page(n)
	if p.V.IsNull() {
		return model.Page{}, fmt.Errorf("page %d: %w", n, ErrPageUnavailable)
	}

	// The underlying content stream parser panics on malformed input.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d: %w: %v", n, ErrMalformedPage, r)
		}
	}()

	content := p.Content()
	width, height := pageSize(p)

	return model.Page{
		Number:   n,
		Width:    width,
		Height:   height,
		Spans:    buildSpans(content.Text),
		Segments: buildSegments(content.Rect),
		Links:    pageLinks(p),
	}, nil
}

// PlainText extracts the document's text layer with no layout
// reconstruction, pages separated by blank lines.
func (d *Document) PlainText() (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrMalformedPage, r)
		}
	}()

	var parts []string
	for i := 1; i <= d.pdf.NumPage(); i++ {
		p := d.pdf.Page(i)
		if p.V.IsNull() {
			continue
		}
		d.cacheFonts(p)

		pageText, pageErr := p.GetPlainText(d.fonts)
		if pageErr != nil {
			return "", fmt.Errorf("page %d text: %w", i, pageErr)
		}
		if trimmed := strings.TrimSpace(pageText); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, "\n\n"), nil
}

func (d *Document) cacheFonts(p pdf.Page) {
	for _, name := range p.Fonts() {
		if _, ok := d.fonts[name]; !ok {
			font := p.Font(name)
			d.fonts[name] = &font
		}
	}
}

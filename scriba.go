// Package scriba reconstructs the semantic structure of PDF pages and
// renders it as GitHub Flavored Markdown. It detects tables from ruling
// lines or from text alignment, classifies the remaining text into
// headings, list items, and paragraphs, and re-embeds hyperlink
// annotations as inline links.
//
// Basic usage:
//
//	md, warnings, err := scriba.Open("document.pdf").Markdown()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", scriba.FormatWarnings(warnings))
//	}
//
// With options:
//
//	md, _, err := scriba.Open("report.pdf").
//	    Pages(1, 2, 3).
//	    Workers(4).
//	    Markdown()
//
// For advanced use cases, the lower-level reader, tables, layout, and
// markdown packages are also available.
package scriba

import "github.com/tsawler/scriba/model"

// PageProvider serves the geometric primitives of a document one page at
// a time. Page numbers are 1-indexed. The reader package's Document is
// the standard implementation; tests and callers with pre-parsed
// geometry can supply their own.
type PageProvider interface {
	PageCount() int
	Page(n int) (model.Page, error)
}

// PlainTexter is implemented by providers that can also serve the raw
// text layer of the document without any structure reconstruction.
type PlainTexter interface {
	PlainText() (string, error)
}

// Open prepares a Converter for the named PDF file. The file is opened
// lazily by the first terminal operation and closed when that operation
// returns, so a single chain needs no explicit Close.
//
// Example:
//
//	md, warnings, err := scriba.Open("document.pdf").Markdown()
func Open(filename string) *Converter {
	return &Converter{
		filename: filename,
		config:   DefaultConfig(),
	}
}

// FromProvider creates a Converter from an already-opened page provider.
// The caller keeps ownership of the provider and is responsible for
// closing it if it needs closing.
//
// Example:
//
//	doc, err := reader.Open("document.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer doc.Close()
//	md, warnings, err := scriba.FromProvider(doc).Markdown()
func FromProvider(p PageProvider) *Converter {
	return &Converter{
		provider:       p,
		providerOpened: true,
		config:         DefaultConfig(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := scriba.Must(scriba.Open("document.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustMarkdown is a helper that wraps a call to Markdown() and panics if
// the error is non-nil. It discards warnings and returns just the value.
//
// Example:
//
//	md := scriba.MustMarkdown(scriba.Open("document.pdf").Markdown())
func MustMarkdown[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

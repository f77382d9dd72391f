package scriba

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/tsawler/scriba/markdown"
	"github.com/tsawler/scriba/reader"
)

var (
	// ErrNoSource is returned when a Converter has neither a filename
	// nor a page provider to read from.
	ErrNoSource = errors.New("no input file or page provider")

	// ErrPlainTextUnsupported is returned by Text when the configured
	// page provider cannot serve the raw text layer.
	ErrPlainTextUnsupported = errors.New("page provider does not supply plain text")
)

// Warning records a non-fatal, per-page condition encountered during
// conversion. A page that fails to parse is reported as a warning and
// skipped so the rest of the document still converts.
type Warning struct {
	Page    int
	Message string
}

// FormatWarnings renders warnings one per line, for logging.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = fmt.Sprintf("page %d: %s", w.Page, w.Message)
	}
	return strings.Join(lines, "\n")
}

// Converter provides a fluent interface for converting PDF documents to
// Markdown. Each configuration method returns a new Converter instance,
// making chains safe to share and reuse.
type Converter struct {
	// Source
	filename string
	provider PageProvider

	// Lifecycle
	ownsProvider   bool // true if we opened the provider and should close it
	providerOpened bool // true if provider is ready for use

	// Configuration
	config Config
	pages  []int

	// Accumulated error (fail-fast)
	err error
}

// clone creates a copy of the Converter so that chain methods never
// mutate the instance they were called on.
func (c *Converter) clone() *Converter {
	return &Converter{
		filename:       c.filename,
		provider:       c.provider,
		ownsProvider:   c.ownsProvider,
		providerOpened: c.providerOpened,
		config:         c.config,
		pages:          append([]int(nil), c.pages...),
		err:            c.err,
	}
}

// ensureProvider opens the backing document if not already open.
func (c *Converter) ensureProvider() error {
	if c.providerOpened {
		return nil
	}
	if c.filename == "" {
		return ErrNoSource
	}
	doc, err := reader.Open(c.filename)
	if err != nil {
		return fmt.Errorf("failed to open PDF: %w", err)
	}
	c.provider = doc
	c.ownsProvider = true
	c.providerOpened = true
	return nil
}

// Close releases the backing document if the Converter opened it. It is
// safe to call Close multiple times, and it never touches providers
// passed in via FromProvider.
func (c *Converter) Close() error {
	if !c.ownsProvider {
		return nil
	}
	c.ownsProvider = false
	c.providerOpened = false
	closer, ok := c.provider.(io.Closer)
	c.provider = nil
	if ok {
		return closer.Close()
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Converter instance)
// ============================================================================

// WithConfig replaces the full pipeline configuration. An invalid
// configuration poisons the chain; the error surfaces from the next
// terminal operation.
//
// Example:
//
//	config := scriba.DefaultConfig()
//	config.Tables.MinRows = 3
//	md, _, err := scriba.Open("doc.pdf").WithConfig(config).Markdown()
func (c *Converter) WithConfig(config Config) *Converter {
	newConv := c.clone()
	if err := config.Validate(); err != nil {
		newConv.err = err
		return newConv
	}
	newConv.config = config
	return newConv
}

// Pages specifies which pages to convert (1-indexed). Multiple calls are
// cumulative; duplicates are ignored and output keeps document order.
//
// Example:
//
//	md, _, err := scriba.Open("doc.pdf").Pages(1, 3, 5).Markdown()
func (c *Converter) Pages(pages ...int) *Converter {
	newConv := c.clone()
	newConv.pages = append(newConv.pages, pages...)
	return newConv
}

// PageRange specifies a range of pages to convert (1-indexed, inclusive).
//
// Example:
//
//	md, _, err := scriba.Open("doc.pdf").PageRange(5, 10).Markdown()
func (c *Converter) PageRange(start, end int) *Converter {
	newConv := c.clone()
	for i := start; i <= end; i++ {
		newConv.pages = append(newConv.pages, i)
	}
	return newConv
}

// Workers bounds how many pages are converted concurrently. Zero, the
// default, selects one worker per available CPU.
//
// Example:
//
//	md, _, err := scriba.Open("doc.pdf").Workers(2).Markdown()
func (c *Converter) Workers(n int) *Converter {
	newConv := c.clone()
	if n < 0 {
		newConv.err = ErrInvalidWorkers
		return newConv
	}
	newConv.config.Workers = n
	return newConv
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Markdown converts the selected pages and assembles them into a single
// Markdown document. It returns the document, any per-page warnings, and
// an error if conversion could not run at all. Warnings indicate pages
// that were skipped; the returned document covers the pages that parsed.
//
// Example:
//
//	md, warnings, err := scriba.Open("document.pdf").Markdown()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", scriba.FormatWarnings(warnings))
//	}
func (c *Converter) Markdown() (string, []Warning, error) {
	if c.err != nil {
		return "", nil, c.err
	}
	if err := c.ensureProvider(); err != nil {
		return "", nil, err
	}
	defer c.Close()

	pageNums, err := c.selectPages()
	if err != nil {
		return "", nil, err
	}

	rendered, warnings := c.convertPages(pageNums)
	return markdown.NewAssembler().AssembleDocument(rendered), warnings, nil
}

// Text returns the document's raw text layer without structure
// reconstruction. The provider must implement PlainTexter; the standard
// reader does.
//
// Example:
//
//	text, err := scriba.Open("document.pdf").Text()
func (c *Converter) Text() (string, error) {
	if c.err != nil {
		return "", c.err
	}
	if err := c.ensureProvider(); err != nil {
		return "", err
	}
	defer c.Close()

	texter, ok := c.provider.(PlainTexter)
	if !ok {
		return "", ErrPlainTextUnsupported
	}
	return texter.PlainText()
}

// PageCount returns the number of pages in the document.
//
// Example:
//
//	count, err := scriba.Open("document.pdf").PageCount()
func (c *Converter) PageCount() (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	if err := c.ensureProvider(); err != nil {
		return 0, err
	}
	defer c.Close()

	return c.provider.PageCount(), nil
}

// selectPages resolves the requested page selection against the document,
// returning 1-indexed page numbers in document order.
func (c *Converter) selectPages() ([]int, error) {
	count := c.provider.PageCount()

	// If no pages specified, use all pages
	if len(c.pages) == 0 {
		pageNums := make([]int, count)
		for i := range pageNums {
			pageNums[i] = i + 1
		}
		return pageNums, nil
	}

	seen := make(map[int]bool)
	var pageNums []int
	for _, p := range c.pages {
		if p < 1 || p > count {
			return nil, fmt.Errorf("page %d out of range (1-%d)", p, count)
		}
		if !seen[p] {
			seen[p] = true
			pageNums = append(pageNums, p)
		}
	}

	sort.Ints(pageNums)
	return pageNums, nil
}

// convertPages converts the given pages on a bounded worker pool and
// returns the rendered Markdown in the same order. Pages that fail come
// back empty, with a Warning recording why.
func (c *Converter) convertPages(pageNums []int) ([]string, []Warning) {
	rendered := make([]string, len(pageNums))
	pageErrs := make([]error, len(pageNums))

	workers := c.config.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(pageNums) {
		workers = len(pageNums)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				page, err := c.provider.Page(pageNums[i])
				if err != nil {
					pageErrs[i] = err
					continue
				}
				rendered[i] = ConvertPage(page, c.config)
			}
		}()
	}
	for i := range pageNums {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var warnings []Warning
	for i, err := range pageErrs {
		if err != nil {
			warnings = append(warnings, Warning{Page: pageNums[i], Message: err.Error()})
		}
	}
	return rendered, warnings
}

package links

import (
	"sort"
	"strings"

	"github.com/tidwall/rtree"

	"github.com/tsawler/scriba/layout"
	"github.com/tsawler/scriba/model"
)

// spanRef locates one span inside a classified block slice
type spanRef struct {
	block int
	line  int
	span  int
}

// wrap is one pending link markup insertion, as a byte range over the
// owning block's text
type wrap struct {
	start int
	end   int
	uri   string
}

// Embedder rewrites classified blocks with Markdown link markup and
// finalizes them into model blocks.
type Embedder struct{}

// NewEmbedder creates an embedder
func NewEmbedder() *Embedder {
	return &Embedder{}
}

// Embed matches every link against the blocks' spans and wraps the
// covered text in link markup. The returned blocks are the final model
// blocks, in the same order as the input. Links overlapping no span are
// dropped.
func (e *Embedder) Embed(blocks []layout.TextBlock, pageLinks []model.Link) []model.Block {
	wraps := make([][]wrap, len(blocks))

	if len(pageLinks) > 0 && len(blocks) > 0 {
		index := buildSpanIndex(blocks)
		for _, link := range pageLinks {
			if w, owner, ok := matchLink(blocks, index, link); ok {
				wraps[owner] = append(wraps[owner], w)
			}
		}
	}

	out := make([]model.Block, 0, len(blocks))
	for i, block := range blocks {
		text := applyWraps(block.Text, wraps[i])
		switch block.Kind {
		case model.BlockHeading:
			out = append(out, model.NewHeading(block.Level, text, block.BBox))
		case model.BlockListItem:
			out = append(out, model.NewListItem(block.Depth, block.Marker, text, block.BBox))
		default:
			out = append(out, model.NewParagraph(text, block.BBox))
		}
	}
	return out
}

// buildSpanIndex loads every span box into a spatial index keyed by its
// position in the block slice
func buildSpanIndex(blocks []layout.TextBlock) *rtree.RTreeG[spanRef] {
	var index rtree.RTreeG[spanRef]
	for b := range blocks {
		for l, line := range blocks[b].Lines {
			for s, span := range line.Spans {
				index.Insert(
					[2]float64{span.BBox.Left(), span.BBox.Bottom()},
					[2]float64{span.BBox.Right(), span.BBox.Top()},
					spanRef{block: b, line: l, span: s},
				)
			}
		}
	}
	return &index
}

// matchLink finds the spans a link covers and derives the wrap range over
// the owning block's text. When matched spans cross a block boundary the
// link belongs to the first block in reading order; spans in later blocks
// are left unwrapped.
func matchLink(blocks []layout.TextBlock, index *rtree.RTreeG[spanRef], link model.Link) (wrap, int, bool) {
	var refs []spanRef
	index.Search(
		[2]float64{link.BBox.Left(), link.BBox.Bottom()},
		[2]float64{link.BBox.Right(), link.BBox.Top()},
		func(_, _ [2]float64, ref spanRef) bool {
			if link.OverlapsSpan(blocks[ref.block].Lines[ref.line].Spans[ref.span]) {
				refs = append(refs, ref)
			}
			return true
		},
	)
	if len(refs) == 0 {
		return wrap{}, 0, false
	}

	sort.Slice(refs, func(i, j int) bool {
		if refs[i].block != refs[j].block {
			return refs[i].block < refs[j].block
		}
		if refs[i].line != refs[j].line {
			return refs[i].line < refs[j].line
		}
		return refs[i].span < refs[j].span
	})

	owner := refs[0].block
	block := &blocks[owner]

	start, end := -1, -1
	for _, ref := range refs {
		if ref.block != owner {
			break
		}
		off := block.Offsets[ref.line][ref.span]
		text := block.Lines[ref.line].Spans[ref.span].Text
		// A span swallowed by list marker stripping no longer appears at
		// its recorded offset; it cannot anchor a label.
		if off+len(text) > len(block.Text) || block.Text[off:off+len(text)] != text {
			continue
		}
		if start < 0 {
			start = off
		}
		if off+len(text) > end {
			end = off + len(text)
		}
	}
	if start < 0 || end <= start {
		return wrap{}, 0, false
	}
	return wrap{start: start, end: end, uri: link.URI}, owner, true
}

// applyWraps rewrites text with link markup, leftmost wrap first. A wrap
// reaching into an already-wrapped range is skipped.
func applyWraps(text string, wraps []wrap) string {
	if len(wraps) == 0 {
		return text
	}
	sort.Slice(wraps, func(i, j int) bool {
		if wraps[i].start != wraps[j].start {
			return wraps[i].start < wraps[j].start
		}
		return wraps[i].end < wraps[j].end
	})

	var sb strings.Builder
	cursor := 0
	for _, w := range wraps {
		if w.start < cursor || w.end > len(text) {
			continue
		}
		sb.WriteString(text[cursor:w.start])
		sb.WriteString("[")
		sb.WriteString(escapeLabel(text[w.start:w.end]))
		sb.WriteString("](")
		sb.WriteString(escapeURI(w.uri))
		sb.WriteString(")")
		cursor = w.end
	}
	sb.WriteString(text[cursor:])
	return sb.String()
}

var labelEscaper = strings.NewReplacer(`[`, `\[`, `]`, `\]`)

var uriEscaper = strings.NewReplacer(" ", "%20", "(", "%28", ")", "%29")

// escapeLabel protects square brackets inside a link label
func escapeLabel(label string) string {
	return labelEscaper.Replace(label)
}

// escapeURI percent-encodes the characters that terminate a Markdown link
// destination early
func escapeURI(uri string) string {
	return uriEscaper.Replace(uri)
}

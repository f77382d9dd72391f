// Package links embeds hyperlink annotations into classified text blocks.
//
// A PDF link annotation is a rectangle on the page pointing at a URI; it
// carries no reference to the text it visually covers. The [Embedder]
// reconnects the two: each link claims the spans it covers by at least
// half their area, and the covered stretch of the owning block's text is
// wrapped as a Markdown link:
//
//	embedder := links.NewEmbedder()
//	blocks := embedder.Embed(textBlocks, page.Links)
//
// A link covering spans on consecutive lines wraps them as one label. A
// link covering no span at all is dropped rather than emitted as a bare
// URL. Each link is consumed at most once, and text already inside a link
// label is never wrapped again.
package links

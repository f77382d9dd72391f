package links

import (
	"testing"

	"github.com/tsawler/scriba/layout"
	"github.com/tsawler/scriba/model"
)

// makeSized builds a span whose box is size/2 points per byte wide,
// sitting at the given left edge with its baseline 2 points above the
// box bottom.
func makeSized(text string, x, baseline, size float64, bold bool) model.TextSpan {
	return model.TextSpan{
		BBox:     model.NewBBox(x, baseline-2, float64(len(text))*size*0.5, size),
		Text:     text,
		FontSize: size,
		Bold:     bold,
		Baseline: baseline,
	}
}

// makeSpan builds a regular 10pt span, 5 points per byte
func makeSpan(text string, x, baseline float64) model.TextSpan {
	return makeSized(text, x, baseline, 10, false)
}

// linkAt builds a link annotation from two corner points
func linkAt(uri string, x0, y0, x1, y1 float64) model.Link {
	return model.Link{
		BBox: model.NewBBoxFromPoints(model.Point{X: x0, Y: y0}, model.Point{X: x1, Y: y1}),
		URI:  uri,
	}
}

func classify(spans ...model.TextSpan) []layout.TextBlock {
	return layout.NewClassifier().Classify(spans)
}

func TestEmbedder_NoBlocks(t *testing.T) {
	e := NewEmbedder()

	out := e.Embed(nil, []model.Link{linkAt("https://example.com", 0, 0, 100, 100)})
	if len(out) != 0 {
		t.Errorf("expected no blocks, got %d", len(out))
	}
}

func TestEmbedder_NoLinksPreservesBlocks(t *testing.T) {
	blocks := classify(
		makeSized("Title", 100, 750, 18, false),
		makeSpan("•", 100, 700),
		makeSpan("item", 120, 700),
		makeSpan("plain", 100, 670),
		makeSpan("words", 130, 670),
	)

	out := NewEmbedder().Embed(blocks, nil)
	if len(out) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(out))
	}

	if out[0].Kind != model.BlockHeading || out[0].Level != 1 || out[0].Text != "Title" {
		t.Errorf("block 0 = %v level %d %q, want heading level 1 \"Title\"",
			out[0].Kind, out[0].Level, out[0].Text)
	}
	if out[1].Kind != model.BlockListItem || out[1].Marker != "-" || out[1].Depth != 0 || out[1].Text != "item" {
		t.Errorf("block 1 = %v marker %q depth %d %q, want list item \"-\" depth 0 \"item\"",
			out[1].Kind, out[1].Marker, out[1].Depth, out[1].Text)
	}
	if out[2].Kind != model.BlockParagraph || out[2].Text != "plain words" {
		t.Errorf("block 2 = %v %q, want paragraph \"plain words\"", out[2].Kind, out[2].Text)
	}
}

func TestEmbedder_WrapsFullyCoveredSpan(t *testing.T) {
	blocks := classify(
		makeSpan("Visit", 100, 700),
		makeSpan("example", 130, 700),
		makeSpan("today", 170, 700),
	)

	out := NewEmbedder().Embed(blocks, []model.Link{
		linkAt("https://example.com", 130, 698, 165, 708),
	})
	if len(out) != 1 {
		t.Fatalf("expected 1 block, got %d", len(out))
	}

	want := "Visit [example](https://example.com) today"
	if out[0].Text != want {
		t.Errorf("text = %q, want %q", out[0].Text, want)
	}
}

func TestEmbedder_CoverageBoundary(t *testing.T) {
	// Span box runs x 100..120; a link must cover at least half its
	// area to claim it.
	tests := []struct {
		name string
		x1   float64
		want string
	}{
		{"exactly half is wrapped", 110, "[link](https://example.com)"},
		{"under half stays plain", 109, "link"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := classify(makeSpan("link", 100, 700))
			out := NewEmbedder().Embed(blocks, []model.Link{
				linkAt("https://example.com", 100, 698, tt.x1, 708),
			})
			if len(out) != 1 {
				t.Fatalf("expected 1 block, got %d", len(out))
			}
			if out[0].Text != tt.want {
				t.Errorf("text = %q, want %q", out[0].Text, tt.want)
			}
		})
	}
}

func TestEmbedder_CrossLineLabel(t *testing.T) {
	// The link covers the tail of the first line and the head of the
	// second; the label concatenates across the line break.
	blocks := classify(
		makeSpan("see", 100, 700),
		makeSpan("docs", 120, 700),
		makeSpan("here", 100, 686),
		makeSpan("now", 200, 686),
	)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}

	out := NewEmbedder().Embed(blocks, []model.Link{
		linkAt("https://example.com/a", 108, 684, 141, 708),
	})

	want := "see [docs here](https://example.com/a) now"
	if out[0].Text != want {
		t.Errorf("text = %q, want %q", out[0].Text, want)
	}
}

func TestEmbedder_UnmatchedLinkDropped(t *testing.T) {
	blocks := classify(makeSpan("hello", 100, 700))

	out := NewEmbedder().Embed(blocks, []model.Link{
		linkAt("https://example.com", 400, 400, 500, 420),
	})
	if len(out) != 1 {
		t.Fatalf("expected 1 block, got %d", len(out))
	}
	if out[0].Text != "hello" {
		t.Errorf("text = %q, want unchanged %q", out[0].Text, "hello")
	}
}

func TestEmbedder_RepeatedWordAnchorsCovered(t *testing.T) {
	// Three identical words; only the middle one is covered, and only
	// the middle occurrence may be wrapped.
	blocks := classify(
		makeSpan("go", 100, 700),
		makeSpan("go", 115, 700),
		makeSpan("go", 130, 700),
	)

	out := NewEmbedder().Embed(blocks, []model.Link{
		linkAt("https://go.dev", 115, 698, 125, 708),
	})

	want := "go [go](https://go.dev) go"
	if out[0].Text != want {
		t.Errorf("text = %q, want %q", out[0].Text, want)
	}
}

func TestEmbedder_ListItemMarkerSurvives(t *testing.T) {
	blocks := classify(
		makeSpan("•", 100, 700),
		makeSpan("visit", 120, 700),
		makeSpan("docs", 150, 700),
	)

	out := NewEmbedder().Embed(blocks, []model.Link{
		linkAt("https://docs.example.com", 150, 698, 170, 708),
	})
	if len(out) != 1 {
		t.Fatalf("expected 1 block, got %d", len(out))
	}

	if out[0].Kind != model.BlockListItem || out[0].Marker != "-" {
		t.Fatalf("block = %v marker %q, want list item with \"-\"", out[0].Kind, out[0].Marker)
	}
	want := "visit [docs](https://docs.example.com)"
	if out[0].Text != want {
		t.Errorf("text = %q, want %q", out[0].Text, want)
	}
}

func TestEmbedder_MarkerSpanCannotAnchor(t *testing.T) {
	// The bullet glyph is stripped from the item text, so a link
	// covering only the bullet has nothing to wrap.
	blocks := classify(
		makeSpan("•", 100, 700),
		makeSpan("visit", 120, 700),
		makeSpan("docs", 150, 700),
	)

	out := NewEmbedder().Embed(blocks, []model.Link{
		linkAt("https://example.com", 100, 698, 115, 708),
	})

	if out[0].Text != "visit docs" {
		t.Errorf("text = %q, want unchanged %q", out[0].Text, "visit docs")
	}
}

func TestEmbedder_TwoLinksSameBlock(t *testing.T) {
	blocks := classify(
		makeSpan("see", 100, 700),
		makeSpan("docs", 120, 700),
		makeSpan("and", 145, 700),
		makeSpan("code", 165, 700),
		makeSpan("here", 190, 700),
	)

	// Deliberately out of reading order.
	out := NewEmbedder().Embed(blocks, []model.Link{
		linkAt("https://example.com/code", 165, 698, 185, 708),
		linkAt("https://example.com/docs", 120, 698, 140, 708),
	})

	want := "see [docs](https://example.com/docs) and [code](https://example.com/code) here"
	if out[0].Text != want {
		t.Errorf("text = %q, want %q", out[0].Text, want)
	}
}

func TestEmbedder_NestedWrapSkipped(t *testing.T) {
	// One link covers both words, another covers only the second; the
	// narrower wrap falls inside the wider one and is dropped.
	blocks := classify(
		makeSpan("docs", 100, 700),
		makeSpan("here", 125, 700),
	)

	out := NewEmbedder().Embed(blocks, []model.Link{
		linkAt("https://example.com/inner", 125, 698, 145, 708),
		linkAt("https://example.com/outer", 100, 698, 145, 708),
	})

	want := "[docs here](https://example.com/outer)"
	if out[0].Text != want {
		t.Errorf("text = %q, want %q", out[0].Text, want)
	}
}

func TestEmbedder_LinkAcrossBlocksWrapsFirstOnly(t *testing.T) {
	blocks := classify(
		makeSpan("alpha", 100, 700),
		makeSpan("beta", 100, 660),
	)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}

	out := NewEmbedder().Embed(blocks, []model.Link{
		linkAt("https://example.com", 100, 658, 125, 708),
	})

	if out[0].Text != "[alpha](https://example.com)" {
		t.Errorf("block 0 text = %q, want wrapped alpha", out[0].Text)
	}
	if out[1].Text != "beta" {
		t.Errorf("block 1 text = %q, want unwrapped %q", out[1].Text, "beta")
	}
}

func TestEmbedder_EscapesLabelAndURI(t *testing.T) {
	blocks := classify(makeSpan("[x]", 100, 700))

	out := NewEmbedder().Embed(blocks, []model.Link{
		linkAt("https://e.com/a (b)", 100, 698, 115, 708),
	})

	want := `[\[x\]](https://e.com/a%20%28b%29)`
	if out[0].Text != want {
		t.Errorf("text = %q, want %q", out[0].Text, want)
	}
}

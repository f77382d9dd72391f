package reader

import (
	"github.com/ledongthuc/pdf"

	"github.com/tsawler/scriba/model"
)

// Fallback page size when no MediaBox is resolvable (US Letter, points).
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// pageLinks extracts the page's link annotations. Only URI actions
// qualify; internal GoTo destinations have no target to embed.
func pageLinks(p pdf.Page) []model.Link {
	annots := p.V.Key("Annots")
	if annots.Kind() != pdf.Array {
		return nil
	}

	var links []model.Link
	for i := 0; i < annots.Len(); i++ {
		annot := annots.Index(i)
		if annot.IsNull() || annot.Key("Subtype").Name() != "Link" {
			continue
		}

		uri := annot.Key("A").Key("URI").RawString()
		if uri == "" {
			continue
		}

		rect := annot.Key("Rect")
		if rect.Kind() != pdf.Array || rect.Len() < 4 {
			continue
		}

		links = append(links, model.Link{
			BBox: model.NewBBoxFromPoints(
				model.Point{X: rect.Index(0).Float64(), Y: rect.Index(1).Float64()},
				model.Point{X: rect.Index(2).Float64(), Y: rect.Index(3).Float64()},
			),
			URI: uri,
		})
	}
	return links
}

// pageSize resolves the page dimensions from its MediaBox, walking up the
// page tree for inherited boxes and falling back to US Letter.
func pageSize(p pdf.Page) (width, height float64) {
	if w, h, ok := boxSize(p.V.Key("MediaBox")); ok {
		return w, h
	}

	current := p.V
	for i := 0; i < 10; i++ {
		current = current.Key("Parent")
		if current.IsNull() {
			break
		}
		if w, h, ok := boxSize(current.Key("MediaBox")); ok {
			return w, h
		}
	}
	return defaultPageWidth, defaultPageHeight
}

func boxSize(box pdf.Value) (width, height float64, ok bool) {
	if box.Kind() != pdf.Array || box.Len() != 4 {
		return 0, 0, false
	}
	width = box.Index(2).Float64() - box.Index(0).Float64()
	height = box.Index(3).Float64() - box.Index(1).Float64()
	if width <= 0 || height <= 0 {
		return 0, 0, false
	}
	return width, height, true
}

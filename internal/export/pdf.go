// Package export renders board strokes to PDF.
package export

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jung-kurt/gofpdf"

	"TileBoard/internal/state"
)

const (
	pageW, pageH = 210.0, 297.0 // A4, mm
	margin       = 10.0
)

// PDF writes strokes to w as polylines on a single A4 page, scaled to fit
// the area they cover.
func PDF(w io.Writer, strokes []*state.Stroke) error {
	p := gofpdf.New("P", "mm", "A4", "")
	p.AddPage()
	p.SetDrawColor(0, 0, 0)
	p.SetLineWidth(0.5)
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")

	if area, ok := extent(strokes); ok {
		scale, ox, oy := fit(area)
		for _, st := range strokes {
			prev := st.Start()
			for i := 1; i < st.Len(); i++ {
				cur := st.Vertex(i)
				p.Line(
					ox+(prev.X-area.Min.X)*scale, oy+(prev.Y-area.Min.Y)*scale,
					ox+(cur.X-area.Min.X)*scale, oy+(cur.Y-area.Min.Y)*scale,
				)
				prev = cur
			}
		}
	}

	if err := p.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// PDFFile writes the PDF to path.
func PDFFile(path string, strokes []*state.Stroke) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := PDF(f, strokes); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("[EXPORT] Wrote %d strokes to %s", len(strokes), path)
	return nil
}

func extent(strokes []*state.Stroke) (state.Rect, bool) {
	var area state.Rect
	found := false
	for _, st := range strokes {
		b, ok := st.Bounds()
		if !ok {
			continue
		}
		if !found {
			area, found = b, true
			continue
		}
		area = area.Union(b)
	}
	return area, found
}

// fit returns the scale and page offset mapping area into the printable
// region, never enlarging beyond 1 mm per board unit.
func fit(area state.Rect) (scale, ox, oy float64) {
	availW, availH := pageW-2*margin, pageH-2*margin
	scale = 1.0
	if area.Width() > 0 {
		scale = min(scale, availW/area.Width())
	}
	if area.Height() > 0 {
		scale = min(scale, availH/area.Height())
	}
	return scale, margin, margin
}

package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"MatrixPaint/internal/state"
)

const (
	pageMargin = 10.0 // mm
	cellGap    = 0.3  // mm between cells, so the grid reads like LEDs
)

// WritePDF writes a snapshot of the matrix to w.
func WritePDF(w io.Writer, b *state.Buffer) error {
	return render(b).Output(w)
}

func render(b *state.Buffer) *gofpdf.Fpdf {
	d := b.Dimensions()
	p := gofpdf.New("L", "mm", "A4", "")
	p.SetTitle(fmt.Sprintf("Matrix snapshot %s", d), true)
	p.AddPage()

	pageW, pageH := p.GetPageSize()
	if !d.Valid() {
		return p
	}
	cell := min((pageW-2*pageMargin)/float64(d.Width), (pageH-2*pageMargin)/float64(d.Height))
	x0 := (pageW - cell*float64(d.Width)) / 2
	y0 := (pageH - cell*float64(d.Height)) / 2

	// Black backing so unlit cells look like dark LEDs.
	p.SetFillColor(0, 0, 0)
	p.Rect(x0, y0, cell*float64(d.Width), cell*float64(d.Height), "F")

	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			c := b.Cell(x, y)
			p.SetFillColor(int(state.Quantize(c.R)), int(state.Quantize(c.G)), int(state.Quantize(c.B)))
			p.Rect(x0+float64(x)*cell+cellGap/2, y0+float64(y)*cell+cellGap/2, cell-cellGap, cell-cellGap, "F")
		}
	}
	return p
}

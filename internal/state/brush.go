package state

import "math"

// StampDisc paints every cell whose centre lies within radius cells of
// (cx, cy), both in matrix-cell units. Cell (x, y) has its centre at
// (x+0.5, y+0.5). Matching cells are overwritten with color.
func (b *Buffer) StampDisc(cx, cy, radius float64, color RGBf) {
	if radius < 0 || len(b.data) == 0 {
		return
	}
	w, h := b.dims.Width, b.dims.Height

	// Only cells inside the disc's bounding box can match.
	x0 := max(0, int(math.Floor(cx-radius-0.5)))
	x1 := min(w-1, int(math.Ceil(cx+radius-0.5)))
	y0 := max(0, int(math.Floor(cy-radius-0.5)))
	y1 := min(h-1, int(math.Ceil(cy+radius-0.5)))

	r2 := radius * radius
	for y := y0; y <= y1; y++ {
		dy := float64(y) + 0.5 - cy
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - cx
			if dx*dx+dy*dy <= r2 {
				b.SetCell(x, y, color)
			}
		}
	}
}

// StampPoint stamps one disc at a normalized position.
func (b *Buffer) StampPoint(p Point, brush Brush) {
	cx := p.X * float64(b.dims.Width)
	cy := p.Y * float64(b.dims.Height)
	b.StampDisc(cx, cy, brush.Radius, brush.Color.Float())
}

// StampSegment interpolates a stroke between two normalized positions. The
// segment is sampled at max(1, ceil(2*d)) even steps, d being its length in
// matrix cells, and a disc is stamped at every sample including both ends.
// Sampling twice per cell keeps fast strokes from breaking into dots.
func (b *Buffer) StampSegment(from, to Point, brush Brush) {
	if len(b.data) == 0 {
		return
	}
	w, h := float64(b.dims.Width), float64(b.dims.Height)
	mx1, my1 := from.X*w, from.Y*h
	dx := to.X*w - mx1
	dy := to.Y*h - my1

	steps := max(1, int(math.Ceil(math.Hypot(dx, dy)*2)))
	color := brush.Color.Float()
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		b.StampDisc(mx1+dx*t, my1+dy*t, brush.Radius, color)
	}
}

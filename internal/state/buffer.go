package state

import "math"

// Buffer is the float accumulation buffer: the true colour of every matrix
// cell, row-major, three channels per cell. Values are not clamped at rest;
// readers clamp when they quantize.
type Buffer struct {
	dims Dimensions
	data []float64
}

// NewBuffer allocates a zeroed buffer for d.
func NewBuffer(d Dimensions) *Buffer {
	b := &Buffer{}
	b.Allocate(d.Width, d.Height)
	return b
}

// Allocate replaces the contents with zeros sized for width x height.
func (b *Buffer) Allocate(width, height int) {
	b.dims = Dimensions{Width: width, Height: height}
	n := width * height * 3
	if n < 0 {
		n = 0
	}
	b.data = make([]float64, n)
}

// Clear zeroes the buffer in place.
func (b *Buffer) Clear() {
	clear(b.data)
}

// Dimensions returns the size the buffer was allocated for.
func (b *Buffer) Dimensions() Dimensions {
	return b.dims
}

// Len is the number of float entries, width*height*3.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Values exposes the backing slice. Callers must not retain it across an Allocate.
func (b *Buffer) Values() []float64 {
	return b.data
}

// Cell returns the stored triple at (x, y). No bounds are enforced beyond the slice's own.
func (b *Buffer) Cell(x, y int) RGBf {
	i := b.index(x, y)
	return RGBf{R: b.data[i], G: b.data[i+1], B: b.data[i+2]}
}

// SetCell overwrites the triple at (x, y).
func (b *Buffer) SetCell(x, y int, c RGBf) {
	i := b.index(x, y)
	b.data[i] = c.R
	b.data[i+1] = c.G
	b.data[i+2] = c.B
}

func (b *Buffer) index(x, y int) int {
	return (y*b.dims.Width + x) * 3
}

// Quantize clamps v to [0, 255] and rounds it to the nearest byte.
func Quantize(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}

package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var white = RGB{R: 255, G: 255, B: 255}

func litCells(b *Buffer) map[[2]int]bool {
	lit := map[[2]int]bool{}
	d := b.Dimensions()
	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			if b.Cell(x, y) != (RGBf{}) {
				lit[[2]int{x, y}] = true
			}
		}
	}
	return lit
}

func TestStampDiscZeroRadius(t *testing.T) {
	b := NewBuffer(Dimensions{Width: 8, Height: 8})
	b.StampDisc(3.5, 4.5, 0, white.Float())
	assert.Equal(t, map[[2]int]bool{{3, 4}: true}, litCells(b))

	b.Clear()
	b.StampDisc(3.2, 4.9, 0, white.Float())
	assert.Empty(t, litCells(b))
}

func TestStampDiscInclusiveRadius(t *testing.T) {
	b := NewBuffer(Dimensions{Width: 8, Height: 8})
	// Centre on a cell corner: the four adjacent centres sit at distance sqrt(0.5).
	b.StampDisc(4, 4, 1, white.Float())
	assert.Equal(t, map[[2]int]bool{
		{3, 3}: true, {4, 3}: true, {3, 4}: true, {4, 4}: true,
	}, litCells(b))

	b.Clear()
	// Neighbours of cell (4,4) are exactly one cell away.
	b.StampDisc(4.5, 4.5, 1, white.Float())
	assert.Equal(t, map[[2]int]bool{
		{4, 4}: true, {3, 4}: true, {5, 4}: true, {4, 3}: true, {4, 5}: true,
	}, litCells(b))
}

func TestStampDiscOverwrites(t *testing.T) {
	b := NewBuffer(Dimensions{Width: 2, Height: 1})
	b.SetCell(0, 0, RGBf{R: 500, G: 500, B: 500})
	b.StampDisc(0.5, 0.5, 0, RGB{R: 1, G: 2, B: 3}.Float())
	assert.Equal(t, RGBf{R: 1, G: 2, B: 3}, b.Cell(0, 0))
}

func TestStampDiscClipsAtEdges(t *testing.T) {
	b := NewBuffer(Dimensions{Width: 4, Height: 3})
	b.StampDisc(0, 0, 3, white.Float())
	b.StampDisc(10, 10, 50, white.Float())
	assert.Len(t, litCells(b), 12)
}

func TestStampSegmentZeroLength(t *testing.T) {
	brush := Brush{Color: white, Radius: 1.5}
	p := Point{X: 0.3, Y: 0.6}

	seg := NewBuffer(Dimensions{Width: 20, Height: 10})
	seg.StampSegment(p, p, brush)

	pt := NewBuffer(Dimensions{Width: 20, Height: 10})
	pt.StampPoint(p, brush)

	assert.Equal(t, pt.Values(), seg.Values())
}

func TestStampSegmentHasNoGaps(t *testing.T) {
	b := NewBuffer(Dimensions{Width: 32, Height: 18})
	y := 9.5 / 18
	b.StampSegment(Point{X: 0, Y: y}, Point{X: 1, Y: y}, Brush{Color: white, Radius: 0.5})
	for x := 0; x < 32; x++ {
		assert.Equal(t, white.Float(), b.Cell(x, 9), "cell %d", x)
	}
}

func TestStampSegmentDiagonal(t *testing.T) {
	b := NewBuffer(Dimensions{Width: 10, Height: 10})
	b.StampSegment(Point{X: 0.05, Y: 0.05}, Point{X: 0.95, Y: 0.95}, Brush{Color: white, Radius: 0.5})
	lit := litCells(b)
	for i := 0; i < 10; i++ {
		assert.True(t, lit[[2]int{i, i}], "diagonal cell %d", i)
	}
}

func TestStampOnEmptyBuffer(t *testing.T) {
	var b Buffer
	b.StampPoint(Point{X: 0.5, Y: 0.5}, Brush{Color: white, Radius: 2})
	b.StampSegment(Point{}, Point{X: 1, Y: 1}, Brush{Color: white, Radius: 2})
	assert.Equal(t, 0, b.Len())
}

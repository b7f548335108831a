package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"

	"MatrixPaint/internal/state"
)

func assertPoint(t *testing.T, want, got state.Point) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-5, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-5, "y")
}

func TestNormalizeLetterboxed(t *testing.T) {
	d := state.Dimensions{Width: 32, Height: 18}

	// 640x360 image centred in a 640x480 widget: 60px bars top and bottom.
	size := fyne.NewSize(640, 480)
	assertPoint(t, state.Point{X: 0.5, Y: 0.5}, normalize(fyne.NewPos(320, 240), size, d))
	assertPoint(t, state.Point{X: 0, Y: 0}, normalize(fyne.NewPos(0, 60), size, d))
	assertPoint(t, state.Point{X: 0.25, Y: 0}, normalize(fyne.NewPos(160, 10), size, d))
	assertPoint(t, state.Point{X: 1, Y: 1}, normalize(fyne.NewPos(700, 470), size, d))

	// Pillarboxed: 320x180 image in a 480x180 widget.
	size = fyne.NewSize(480, 180)
	assertPoint(t, state.Point{X: 0, Y: 0.5}, normalize(fyne.NewPos(80, 90), size, d))
	assertPoint(t, state.Point{X: 0.5, Y: 0.5}, normalize(fyne.NewPos(240, 90), size, d))
}

func TestNormalizeWithoutDimensions(t *testing.T) {
	assert.Equal(t, state.Point{}, normalize(fyne.NewPos(10, 10), fyne.NewSize(100, 100), state.Dimensions{}))
}

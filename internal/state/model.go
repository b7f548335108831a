package state

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is a brush colour as it is picked in the UI.
type RGB struct {
	R, G, B uint8
}

// RGBf is the stored, unclamped colour of one matrix cell.
type RGBf struct {
	R, G, B float64
}

// Float widens c to the buffer's representation.
func (c RGB) Float() RGBf {
	return RGBf{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
}

// Hex formats c as "rrggbb", the form used by the swatch strip.
func (c RGB) Hex() string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex reads "rrggbb" or "#rrggbb".
func ParseHex(hex string) (RGB, error) {
	col, err := colorful.Hex("#" + strings.TrimPrefix(hex, "#"))
	if err != nil {
		return RGB{}, fmt.Errorf("parse colour %q: %w", hex, err)
	}
	r, g, b := col.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// Dimensions of the LED matrix, as announced by the server.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Valid reports whether both sides are positive.
func (d Dimensions) Valid() bool {
	return d.Width > 0 && d.Height > 0
}

// Cells returns the number of addressable cells.
func (d Dimensions) Cells() int {
	return d.Width * d.Height
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Mode says who is driving the matrix.
type Mode string

const (
	ModePaint   Mode = "paint"
	ModePattern Mode = "pattern"
)

// Brush is the paint state set by the toolbar. It does not change during a stroke.
type Brush struct {
	Color  RGB
	Radius float64
}

// DecayConfig controls the fade applied while painting. A zero Rate disables it.
type DecayConfig struct {
	Rate float64
}

// Point is a normalized pointer position; both axes are in [0, 1].
type Point struct {
	X, Y float64
}

// PointerPath remembers where the current stroke was last sampled.
type PointerPath struct {
	last  Point
	valid bool
}

// Last returns the previous sample of the stroke, if any.
func (p *PointerPath) Last() (Point, bool) {
	return p.last, p.valid
}

// Move records pt as the latest sample.
func (p *PointerPath) Move(pt Point) {
	p.last = pt
	p.valid = true
}

// Release forgets the stroke.
func (p *PointerPath) Release() {
	p.valid = false
}

// Clamp returns pt with both axes limited to [0, 1].
func (pt Point) Clamp() Point {
	return Point{X: clamp01(pt.X), Y: clamp01(pt.Y)}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package state

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filled(d Dimensions, v float64) *Buffer {
	b := NewBuffer(d)
	for i := range b.Values() {
		b.Values()[i] = v
	}
	return b
}

func TestDecayIsTimeAdditive(t *testing.T) {
	d := Dimensions{Width: 5, Height: 3}
	for _, rate := range []float64{0.1, 1, 3.7, 10} {
		for _, dts := range [][2]float64{{0, 0.5}, {0.016, 0.017}, {1.25, 2.5}} {
			split := filled(d, 200)
			split.ApplyDecay(dts[0], rate)
			split.ApplyDecay(dts[1], rate)

			once := filled(d, 200)
			once.ApplyDecay(dts[0]+dts[1], rate)

			require.InDeltaSlice(t, once.Values(), split.Values(), 1e-9, "rate %v deltas %v", rate, dts)
		}
	}
}

func TestDecayZeroRateUntouched(t *testing.T) {
	b := filled(Dimensions{Width: 4, Height: 4}, 123.456)
	b.SetCell(1, 2, RGBf{R: 999, G: -3, B: 0.001})
	want := append([]float64(nil), b.Values()...)
	for _, dt := range []float64{0, 0.016, 5, 1e6} {
		b.ApplyDecay(dt, 0)
		b.ApplyDecay(dt, -1)
	}
	assert.Equal(t, want, b.Values())
}

func TestDecayHalfLife(t *testing.T) {
	b := filled(Dimensions{Width: 1, Height: 1}, 200)
	halfLife := math.Ln2 / DecayTuning
	b.ApplyDecay(halfLife, 1)
	assert.InDelta(t, 100, b.Cell(0, 0).R, 1e-9)
}

func TestDecayFactor(t *testing.T) {
	assert.Equal(t, 1.0, DecayFactor(10, 0))
	assert.InDelta(t, math.Exp(-2*0.5*DecayTuning), DecayFactor(0.5, 2), 1e-12)
}

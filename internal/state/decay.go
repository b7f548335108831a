package state

import "math"

// DecayTuning scales the user-facing rate into the exponent. A rate of 1
// halves a cell's brightness in about 3.5 seconds.
const DecayTuning = 0.2

// DecayFactor is the multiplier a cell receives after dt seconds at rate.
func DecayFactor(dt, rate float64) float64 {
	if rate <= 0 {
		return 1
	}
	return math.Exp(-rate * dt * DecayTuning)
}

// ApplyDecay fades every channel exponentially over dt seconds. The fade
// depends only on elapsed time, so two steps of dt1 and dt2 equal one step
// of dt1+dt2. A non-positive rate leaves the buffer untouched.
func (b *Buffer) ApplyDecay(dt, rate float64) {
	if rate <= 0 || dt <= 0 {
		return
	}
	m := DecayFactor(dt, rate)
	for i := range b.data {
		b.data[i] *= m
	}
}

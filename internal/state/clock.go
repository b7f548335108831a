package state

import (
	"time"

	"github.com/google/uuid"
)

// clientID names this process to the server for the lifetime of the process.
var clientID = uuid.NewString()

// ClientID returns the identifier sent with every handshake.
func ClientID() string {
	return clientID
}

// FrameClock measures wall-clock time between render ticks.
type FrameClock struct {
	last time.Time
}

// Delta returns the seconds elapsed since the previous call. The first call
// returns 0 so the first frame never decays.
func (c *FrameClock) Delta(now time.Time) float64 {
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	if dt < 0 {
		return 0
	}
	return dt
}

// Reset makes the next Delta behave like the first one.
func (c *FrameClock) Reset() {
	c.last = time.Time{}
}

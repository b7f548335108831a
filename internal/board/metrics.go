package board

import "github.com/rcrowley/go-metrics"

type boardMetrics struct {
	registry metrics.Registry
	ticks    metrics.Meter
	frames   metrics.Meter
	dropped  metrics.Meter
}

// Each board gets its own registry so several boards can share a process.
func newBoardMetrics() *boardMetrics {
	r := metrics.NewRegistry()
	return &boardMetrics{
		registry: r,
		ticks:    metrics.GetOrRegisterMeter("render.ticks", r),
		frames:   metrics.GetOrRegisterMeter("transport.frames", r),
		dropped:  metrics.GetOrRegisterMeter("transport.dropped", r),
	}
}

func (m *boardMetrics) stop() {
	m.ticks.Stop()
	m.frames.Stop()
	m.dropped.Stop()
}

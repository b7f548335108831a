// Package board owns one painting client: the accumulation buffer, the
// brush, the session state mirrored from the server, and the single event
// queue every mutation runs on.
package board

import (
	"context"
	"image"
	"log"
	"time"

	"github.com/rcrowley/go-metrics"

	"MatrixPaint/internal/net"
	"MatrixPaint/internal/state"
)

// View reflects board state to the user. All calls come from the event loop.
type View interface {
	// Present shows a rasterized frame. The board never writes to img
	// again, so the view may keep it.
	Present(img *image.RGBA)
	SetStatus(text string, st net.ConnState)
	SetMatrixInfo(d state.Dimensions)
	SetMode(m state.Mode)
	SetDrawers(drawers []state.Drawer)
	SetActiveDrawer(name string, settings map[string]state.Setting)
	SetPalette(index, count int)
	SetFPS(fps float64)
	SetPatternLabel(name string)
}

type nopView struct{}

func (nopView) Present(*image.RGBA)                              {}
func (nopView) SetStatus(string, net.ConnState)                  {}
func (nopView) SetMatrixInfo(state.Dimensions)                   {}
func (nopView) SetMode(state.Mode)                               {}
func (nopView) SetDrawers([]state.Drawer)                        {}
func (nopView) SetActiveDrawer(string, map[string]state.Setting) {}
func (nopView) SetPalette(int, int)                              {}
func (nopView) SetFPS(float64)                                   {}
func (nopView) SetPatternLabel(string)                           {}

// Channel is the network side of the board. *net.Session implements it.
type Channel interface {
	Start(ctx context.Context)
	Close()
	State() net.ConnState
	Send(v any) bool
	SendFrame(frame []byte) bool
}

// Config holds the local tunables. Nothing here is persisted.
type Config struct {
	// RefreshRate is how many render ticks run per second.
	RefreshRate float64
	// FrameDivisor sends one frame every FrameDivisor paint ticks.
	FrameDivisor int
	// ViewportFill is the share of the viewport the matrix may cover.
	ViewportFill float64
	Brush        state.Brush
	Decay        state.DecayConfig
}

// DefaultConfig matches a 60 Hz display streaming at 20 frames per second.
func DefaultConfig() Config {
	return Config{
		RefreshRate:  60,
		FrameDivisor: 3,
		ViewportFill: 0.94,
		Brush:        state.Brush{Color: state.RGB{R: 255, G: 255, B: 255}, Radius: 1},
	}
}

// Board is the client context. Apart from Post and Run its methods are not
// safe for concurrent use: call them from the event loop, or from a test
// that owns the board outright.
type Board struct {
	cfg     Config
	view    View
	channel Channel
	events  chan func()
	done    chan struct{}

	buf     *state.Buffer
	brush   state.Brush
	decay   state.DecayConfig
	pointer state.PointerPath
	drawing bool
	session state.Session

	clock      state.FrameClock
	frameCount int
	tickCount  int

	viewportW, viewportH float64
	scale                int

	metrics *boardMetrics
}

// New builds a board with no matrix allocated yet; dimensions arrive with
// the server's config message.
func New(cfg Config, view View) *Board {
	def := DefaultConfig()
	if cfg.RefreshRate <= 0 {
		cfg.RefreshRate = def.RefreshRate
	}
	if cfg.FrameDivisor <= 0 {
		cfg.FrameDivisor = def.FrameDivisor
	}
	if cfg.ViewportFill <= 0 || cfg.ViewportFill > 1 {
		cfg.ViewportFill = def.ViewportFill
	}
	if view == nil {
		view = nopView{}
	}
	return &Board{
		cfg:     cfg,
		view:    view,
		events:  make(chan func(), 256),
		done:    make(chan struct{}),
		buf:     &state.Buffer{},
		brush:   cfg.Brush,
		decay:   cfg.Decay,
		session: state.NewSession(),
		scale:   1,
		metrics: newBoardMetrics(),
	}
}

// SetView replaces the view. It must be called before Run.
func (b *Board) SetView(v View) {
	if v == nil {
		v = nopView{}
	}
	b.view = v
}

// SetChannel attaches the network side. It must be called before Run.
func (b *Board) SetChannel(c Channel) {
	b.channel = c
}

// Post queues f to run on the event loop. It returns without running f
// once the loop has stopped.
func (b *Board) Post(f func()) {
	select {
	case b.events <- f:
	case <-b.done:
	}
}

// Run drives the board until ctx is cancelled: it starts the channel, ticks
// the render loop at the refresh rate and runs posted events in order.
func (b *Board) Run(ctx context.Context) error {
	defer close(b.done)
	defer b.metrics.stop()

	interval := time.Duration(float64(time.Second) / b.cfg.RefreshRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if b.channel != nil {
		b.channel.Start(ctx)
		defer b.channel.Close()
	}
	log.Printf("[BOARD] Render loop running at %.0f Hz", b.cfg.RefreshRate)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			b.Tick(now)
		case f := <-b.events:
			f()
		}
	}
}

// Buffer exposes the accumulation buffer.
func (b *Board) Buffer() *state.Buffer {
	return b.buf
}

// Session returns the mirrored server state.
func (b *Board) Session() state.Session {
	return b.session
}

// Brush returns the current brush.
func (b *Board) Brush() state.Brush {
	return b.brush
}

// Decay returns the current decay setting.
func (b *Board) Decay() state.DecayConfig {
	return b.decay
}

// Scale is the display size of one matrix cell in pixels.
func (b *Board) Scale() int {
	return b.scale
}

// Metrics exposes the board's meters.
func (b *Board) Metrics() metrics.Registry {
	return b.metrics.registry
}

func (b *Board) connected() bool {
	return b.channel != nil && b.channel.State() == net.Open
}

// send forwards a control message. Messages are dropped while disconnected.
func (b *Board) send(msg any) {
	if !b.connected() {
		return
	}
	b.channel.Send(msg)
}

package board

import (
	"errors"
	"fmt"
	"io"
	"log"

	"MatrixPaint/internal/export"
	"MatrixPaint/internal/net"
	"MatrixPaint/internal/state"
)

// ErrNoMatrix is returned by operations that need the matrix size before
// the server has sent it.
var ErrNoMatrix = errors.New("matrix size not known yet")

// SetBrushColor changes the colour of the next stroke.
func (b *Board) SetBrushColor(c state.RGB) {
	b.brush.Color = c
}

// SetBrushRadius changes the radius, in cells, of the next stroke.
func (b *Board) SetBrushRadius(r float64) {
	b.brush.Radius = max(0, r)
}

// SetDecayRate changes how fast painted cells fade. Zero stops fading.
func (b *Board) SetDecayRate(rate float64) {
	b.decay.Rate = max(0, rate)
}

// RequestMode flips the mode toggle and asks the server to switch. Only the
// toggle changes now; the session mode follows the server's mode_changed.
func (b *Board) RequestMode(m state.Mode) {
	b.view.SetMode(m)
	b.send(net.NewSetMode(m))
}

// SelectDrawer asks the server to run a pattern.
func (b *Board) SelectDrawer(name string) {
	if name == "" {
		return
	}
	b.send(net.NewSetDrawer(name))
}

// RandomizeDrawer asks the server to pick a pattern.
func (b *Board) RandomizeDrawer() {
	b.send(net.NewRandomizeDrawer())
}

// AdjustSetting changes one setting of the active pattern.
func (b *Board) AdjustSetting(key string, value int) {
	b.send(net.NewSetDrawerSetting(key, value))
}

// SelectPalette asks the server for another palette.
func (b *Board) SelectPalette(index int) {
	b.send(net.NewSetPalette(index))
}

// ClearCanvas blanks the local buffer at once and tells the server.
func (b *Board) ClearCanvas() {
	b.buf.Clear()
	b.render()
	b.send(net.NewClearCanvas())
}

// ExportSnapshotTo writes the current matrix as a PDF to w.
func (b *Board) ExportSnapshotTo(w io.Writer) error {
	if b.buf.Len() == 0 {
		return fmt.Errorf("export snapshot: %w", ErrNoMatrix)
	}
	if err := export.WritePDF(w, b.buf); err != nil {
		return fmt.Errorf("export snapshot: %w", err)
	}
	log.Printf("[BOARD] Snapshot exported (%s)", b.buf.Dimensions())
	return nil
}

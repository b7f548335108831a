package ui

import (
	"fmt"
	"image"

	"fyne.io/fyne/v2"

	"MatrixPaint/internal/board"
	"MatrixPaint/internal/net"
	"MatrixPaint/internal/state"
)

// view hands board updates over to the fyne thread.
type view struct {
	matrix *MatrixWidget
	ctl    *controls
}

var _ board.View = (*view)(nil)

func (v *view) Present(img *image.RGBA) {
	fyne.Do(func() { v.matrix.setFrame(img) })
}

func (v *view) SetStatus(text string, _ net.ConnState) {
	fyne.Do(func() { v.ctl.status.SetText(text) })
}

func (v *view) SetMatrixInfo(d state.Dimensions) {
	fyne.Do(func() {
		v.matrix.setDimensions(d)
		v.ctl.info.SetText("Matrix: " + d.String())
	})
}

func (v *view) SetMode(m state.Mode) {
	fyne.Do(func() { v.ctl.showMode(m) })
}

func (v *view) SetDrawers(drawers []state.Drawer) {
	fyne.Do(func() { v.ctl.setDrawers(drawers) })
}

func (v *view) SetActiveDrawer(name string, settings map[string]state.Setting) {
	fyne.Do(func() { v.ctl.setActiveDrawer(name, settings) })
}

func (v *view) SetPalette(index, count int) {
	fyne.Do(func() { v.ctl.setPalette(index, count) })
}

func (v *view) SetFPS(fps float64) {
	fyne.Do(func() { v.ctl.fps.SetText(fmt.Sprintf("FPS: %.1f", fps)) })
}

func (v *view) SetPatternLabel(name string) {
	fyne.Do(func() { v.ctl.pattern.SetText("Running: " + name) })
}

package ui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"MatrixPaint/internal/board"
	"MatrixPaint/internal/state"
)

// MatrixWidget shows the rasterized matrix and turns pointer input into
// normalized strokes posted to the board.
type MatrixWidget struct {
	widget.BaseWidget
	board   *board.Board
	image   *canvas.Image
	dims    state.Dimensions
	drawing bool
}

var _ fyne.Widget = (*MatrixWidget)(nil)
var _ fyne.Draggable = (*MatrixWidget)(nil)
var _ desktop.Mouseable = (*MatrixWidget)(nil)
var _ desktop.Hoverable = (*MatrixWidget)(nil)

func NewMatrixWidget(b *board.Board) *MatrixWidget {
	img := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScalePixels

	m := &MatrixWidget{board: b, image: img}
	m.ExtendBaseWidget(m)
	return m
}

// setFrame swaps in a new rasterized frame. UI thread only.
func (m *MatrixWidget) setFrame(img *image.RGBA) {
	m.image.Image = img
	m.image.Refresh()
}

// setDimensions records the matrix size used to map pointer positions. UI thread only.
func (m *MatrixWidget) setDimensions(d state.Dimensions) {
	m.dims = d
}

func (m *MatrixWidget) Resize(size fyne.Size) {
	m.BaseWidget.Resize(size)
	b := m.board
	b.Post(func() { b.SetViewport(float64(size.Width), float64(size.Height)) })
}

func (m *MatrixWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	m.drawing = true
	p := normalize(e.Position, m.Size(), m.dims)
	b := m.board
	b.Post(func() { b.PointerDown(p) })
}

func (m *MatrixWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		m.release()
	}
}

func (m *MatrixWidget) Dragged(e *fyne.DragEvent) {
	if !m.drawing {
		return
	}
	p := normalize(e.Position, m.Size(), m.dims)
	b := m.board
	b.Post(func() { b.PointerMove(p) })
}

func (m *MatrixWidget) DragEnd() {
	m.release()
}

func (m *MatrixWidget) MouseIn(*desktop.MouseEvent)    {}
func (m *MatrixWidget) MouseMoved(*desktop.MouseEvent) {}

// MouseOut ends the stroke, like releasing the button would.
func (m *MatrixWidget) MouseOut() {
	m.release()
}

func (m *MatrixWidget) release() {
	if !m.drawing {
		return
	}
	m.drawing = false
	b := m.board
	b.Post(b.PointerUp)
}

func (m *MatrixWidget) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.NRGBA{R: 16, G: 16, B: 20, A: 255})
	return widget.NewSimpleRenderer(container.NewStack(bg, m.image))
}

func (m *MatrixWidget) MinSize() fyne.Size {
	return fyne.NewSize(320, 180)
}

// normalize maps a widget position to [0,1] matrix coordinates, allowing
// for the letterboxing of an aspect-preserving image.
func normalize(pos fyne.Position, size fyne.Size, d state.Dimensions) state.Point {
	if !d.Valid() || size.Width <= 0 || size.Height <= 0 {
		return state.Point{}
	}
	aspect := float32(d.Width) / float32(d.Height)
	w, h := size.Width, size.Height
	if w/h > aspect {
		w = h * aspect
	} else {
		h = w / aspect
	}
	offX := (size.Width - w) / 2
	offY := (size.Height - h) / 2
	return state.Point{
		X: float64((pos.X - offX) / w),
		Y: float64((pos.Y - offY) / h),
	}.Clamp()
}

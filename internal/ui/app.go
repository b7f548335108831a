package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"

	"MatrixPaint/internal/board"
)

// App is the desktop window around one board.
type App struct {
	app    fyne.App
	window fyne.Window
}

// NewApp builds the window and attaches it as b's view. Call it before the
// board's event loop starts.
func NewApp(b *board.Board, title string) *App {
	a := app.New()
	w := a.NewWindow(title)
	w.Resize(fyne.NewSize(1024, 640))

	matrix := NewMatrixWidget(b)
	ctl := newControls(b, w, matrix)
	b.SetView(&view{matrix: matrix, ctl: ctl})

	side := ctl.layout()
	split := container.NewHSplit(matrix, side)
	split.Offset = 0.75
	w.SetContent(split)

	return &App{app: a, window: w}
}

// Run shows the window and blocks until it is closed.
func (a *App) Run() {
	a.window.ShowAndRun()
}

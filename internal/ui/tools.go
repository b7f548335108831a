package ui

import (
	"fmt"
	"image/color"
	"maps"
	"slices"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"MatrixPaint/internal/board"
	"MatrixPaint/internal/state"
)

// swatches are the quick-pick brush colours.
var swatches = []string{"#ffffff", "#ff0000", "#ff8000", "#ffff00", "#00ff00", "#00ffff", "#0000ff", "#ff00ff"}

type colorSwatch struct {
	widget.BaseWidget
	Color    state.RGB
	OnTapped func(state.RGB)
}

func newColorSwatch(c state.RGB, tapped func(state.RGB)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(color.NRGBA{R: s.Color.R, G: s.Color.G, B: s.Color.B, A: 255})
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// controls holds every widget the view updates. Fields are only touched on
// the fyne thread.
type controls struct {
	board   *board.Board
	window  fyne.Window
	surface *MatrixWidget

	status  *widget.Label
	info    *widget.Label
	fps     *widget.Label
	pattern *widget.Label

	paintBtn   *widget.Button
	patternBtn *widget.Button
	paintTools *fyne.Container

	drawers      *widget.Select
	palette      *widget.Slider
	paletteLabel *widget.Label
	settings     *fyne.Container
	patternTools *fyne.Container

	// syncing is set while server state is pushed into widgets, so their
	// change callbacks do not echo it back.
	syncing bool
}

func newControls(b *board.Board, w fyne.Window, m *MatrixWidget) *controls {
	c := &controls{
		board:        b,
		window:       w,
		surface:      m,
		status:       widget.NewLabel("Connecting..."),
		info:         widget.NewLabel("Matrix: -"),
		fps:          widget.NewLabel("FPS: -"),
		pattern:      widget.NewLabel(""),
		paletteLabel: widget.NewLabel("Palette: -"),
		settings:     container.NewVBox(),
	}

	c.paintBtn = widget.NewButton("Paint", func() { c.requestMode(state.ModePaint) })
	c.patternBtn = widget.NewButton("Pattern", func() { c.requestMode(state.ModePattern) })

	c.paintTools = c.buildPaintTools()
	c.patternTools = c.buildPatternTools()
	c.showMode(state.ModePaint)
	return c
}

func (c *controls) buildPaintTools() *fyne.Container {
	b := c.board
	brush := b.Brush()

	colorBox := container.NewHBox()
	for _, hex := range swatches {
		rgb, err := state.ParseHex(hex)
		if err != nil {
			continue
		}
		colorBox.Add(newColorSwatch(rgb, func(rgb state.RGB) {
			b.Post(func() { b.SetBrushColor(rgb) })
		}))
	}

	custom := widget.NewEntry()
	custom.SetPlaceHolder("#" + brush.Color.Hex())
	custom.OnSubmitted = func(text string) {
		rgb, err := state.ParseHex(text)
		if err != nil {
			dialog.ShowError(err, c.window)
			return
		}
		b.Post(func() { b.SetBrushColor(rgb) })
	}

	sizeLabel := widget.NewLabel(fmt.Sprintf("Brush: %.1f", brush.Radius))
	size := widget.NewSlider(0, 6)
	size.Step = 0.5
	size.SetValue(brush.Radius)
	size.OnChanged = func(v float64) {
		sizeLabel.SetText(fmt.Sprintf("Brush: %.1f", v))
		b.Post(func() { b.SetBrushRadius(v) })
	}

	// The decay slider works in tenths.
	decay := b.Decay().Rate
	decayLabel := widget.NewLabel(fmt.Sprintf("Decay: %.1f", decay))
	fade := widget.NewSlider(0, 50)
	fade.SetValue(decay * 10)
	fade.OnChanged = func(v float64) {
		rate := v / 10
		decayLabel.SetText(fmt.Sprintf("Decay: %.1f", rate))
		b.Post(func() { b.SetDecayRate(rate) })
	}

	clearBtn := widget.NewButtonWithIcon("Clear", theme.DeleteIcon(), func() {
		b.Post(b.ClearCanvas)
	})
	exportBtn := widget.NewButtonWithIcon("Export PDF", theme.DocumentSaveIcon(), c.exportSnapshot)

	return container.NewVBox(
		widget.NewLabel("Color:"),
		colorBox,
		custom,
		widget.NewSeparator(),
		sizeLabel,
		size,
		decayLabel,
		fade,
		widget.NewSeparator(),
		container.NewGridWithColumns(2, clearBtn, exportBtn),
	)
}

func (c *controls) buildPatternTools() *fyne.Container {
	b := c.board

	c.drawers = widget.NewSelect(nil, func(name string) {
		if c.syncing {
			return
		}
		b.Post(func() { b.SelectDrawer(name) })
	})
	c.drawers.PlaceHolder = "Select pattern"

	randomize := widget.NewButtonWithIcon("Random", theme.ViewRefreshIcon(), func() {
		b.Post(b.RandomizeDrawer)
	})

	c.palette = widget.NewSlider(0, 1)
	c.palette.OnChanged = func(v float64) {
		if c.syncing {
			return
		}
		index := int(v)
		b.Post(func() { b.SelectPalette(index) })
	}
	c.palette.Disable()

	return container.NewVBox(
		widget.NewLabel("Pattern:"),
		c.drawers,
		randomize,
		widget.NewSeparator(),
		c.paletteLabel,
		c.palette,
		widget.NewSeparator(),
		c.settings,
	)
}

func (c *controls) requestMode(m state.Mode) {
	b := c.board
	b.Post(func() { b.RequestMode(m) })
}

func (c *controls) exportSnapshot() {
	b := c.board
	dialog.ShowFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, c.window)
			return
		}
		if w == nil {
			return
		}
		b.Post(func() {
			err := b.ExportSnapshotTo(w)
			if cerr := w.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				fyne.Do(func() { dialog.ShowError(err, c.window) })
			}
		})
	}, c.window)
}

// showMode swaps the visible control group, highlights the active toggle
// and hides the matrix while the server draws on it.
func (c *controls) showMode(m state.Mode) {
	paint := m == state.ModePaint
	if paint {
		c.paintBtn.Importance = widget.HighImportance
		c.patternBtn.Importance = widget.MediumImportance
		c.paintTools.Show()
		c.patternTools.Hide()
		c.surface.Show()
	} else {
		c.paintBtn.Importance = widget.MediumImportance
		c.patternBtn.Importance = widget.HighImportance
		c.paintTools.Hide()
		c.patternTools.Show()
		c.surface.Hide()
	}
	c.paintBtn.Refresh()
	c.patternBtn.Refresh()
}

func (c *controls) setDrawers(drawers []state.Drawer) {
	names := make([]string, 0, len(drawers))
	for _, d := range drawers {
		names = append(names, d.Name)
	}
	c.syncing = true
	defer func() { c.syncing = false }()
	c.drawers.SetOptions(names)
}

func (c *controls) setActiveDrawer(name string, settings map[string]state.Setting) {
	c.syncing = true
	c.drawers.SetSelected(name)
	c.syncing = false

	c.settings.RemoveAll()
	b := c.board
	for _, key := range slices.Sorted(maps.Keys(settings)) {
		s := settings[key]
		label := widget.NewLabel(fmt.Sprintf("%s: %d", key, s.Value))
		slider := widget.NewSlider(float64(s.Min), float64(max(s.Max, s.Min+1)))
		slider.SetValue(float64(s.Value))
		slider.OnChanged = func(v float64) {
			value := int(v)
			label.SetText(fmt.Sprintf("%s: %d", key, value))
			b.Post(func() { b.AdjustSetting(key, value) })
		}
		c.settings.Add(label)
		c.settings.Add(slider)
	}
	c.settings.Refresh()
}

func (c *controls) setPalette(index, count int) {
	c.paletteLabel.SetText(fmt.Sprintf("Palette: %d / %d", index+1, count))
	c.syncing = true
	defer func() { c.syncing = false }()
	if count <= 1 {
		c.palette.Disable()
		return
	}
	c.palette.Max = float64(count - 1)
	c.palette.SetValue(float64(index))
	c.palette.Enable()
}

// layout assembles the side panel.
func (c *controls) layout() fyne.CanvasObject {
	header := container.NewVBox(
		container.NewGridWithColumns(2, c.paintBtn, c.patternBtn),
		widget.NewSeparator(),
	)
	footer := container.NewVBox(
		widget.NewSeparator(),
		c.pattern,
		c.fps,
		c.info,
		c.status,
	)
	tools := container.NewVBox(c.paintTools, c.patternTools, layout.NewSpacer())
	return container.NewBorder(header, footer, nil, nil, container.NewVScroll(tools))
}

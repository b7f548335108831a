package board

import (
	"log"

	"MatrixPaint/internal/net"
	"MatrixPaint/internal/state"
)

// HandleMessage applies one server message. Unknown types leave every piece
// of state as it was.
func (b *Board) HandleMessage(msg net.ServerMessage) {
	switch msg.Type {
	case net.TypeConfig:
		b.configure(msg)
	case net.TypeStatus:
		b.session.FPS = msg.FPS
		b.view.SetFPS(msg.FPS)
		if msg.Drawer != "" {
			b.view.SetPatternLabel(msg.Drawer)
		}
	case net.TypeModeChanged:
		b.applyMode(msg.Mode)
	case net.TypeDrawerChanged, net.TypeAutoRotated:
		b.applyDrawer(msg.Drawer, msg.Settings)
		if msg.PaletteIndex != nil {
			b.applyPalette(*msg.PaletteIndex, msg.PaletteCount)
		}
	case net.TypeDrawersList:
		b.applyCatalog(msg.Drawers)
	default:
		log.Printf("[BOARD] Ignoring message of type %q", msg.Type)
	}
}

// ConnectionChanged turns the channel lifecycle into status-line text.
func (b *Board) ConnectionChanged(st net.ConnState) {
	text := "Disconnected"
	switch st {
	case net.Connecting:
		text = "Connecting..."
	case net.Open:
		text = "Connected"
	}
	b.view.SetStatus(text, st)
}

// configure reallocates the matrix for new dimensions, then applies any
// initial state the message carries exactly as the dedicated messages would.
func (b *Board) configure(msg net.ServerMessage) {
	d := state.Dimensions{Width: msg.Width, Height: msg.Height}
	if !d.Valid() {
		log.Printf("[BOARD] Ignoring config with dimensions %s", d)
		return
	}
	b.buf.Allocate(d.Width, d.Height)
	b.clock.Reset()
	b.pointer.Release()
	b.drawing = false
	b.rescale()
	b.view.SetMatrixInfo(d)
	log.Printf("[BOARD] Matrix is %s", d)

	if msg.Mode != "" {
		b.applyMode(msg.Mode)
	}
	b.render()
	if msg.Drawers != nil {
		b.applyCatalog(msg.Drawers)
	}
	if msg.ActiveDrawer != "" {
		var settings map[string]state.Setting
		for _, dr := range msg.Drawers {
			if dr.Name == msg.ActiveDrawer {
				settings = dr.Settings
				break
			}
		}
		b.applyDrawer(msg.ActiveDrawer, settings)
	}
	if msg.PaletteIndex != nil {
		b.applyPalette(*msg.PaletteIndex, msg.PaletteCount)
	}
}

// applyMode records who drives the matrix. The buffer is kept either way.
func (b *Board) applyMode(m state.Mode) {
	if m != state.ModePaint && m != state.ModePattern {
		log.Printf("[BOARD] Ignoring unknown mode %q", m)
		return
	}
	prev := b.session.Mode
	b.session.Mode = m
	b.view.SetMode(m)
	if m != state.ModePaint {
		b.PointerUp()
		return
	}
	if prev != state.ModePaint {
		b.render()
	}
}

func (b *Board) applyDrawer(name string, settings map[string]state.Setting) {
	if name == "" {
		return
	}
	b.session.ActiveDrawer = name
	if settings != nil {
		b.session.SetDrawerSettings(name, settings)
	}
	b.view.SetActiveDrawer(name, b.session.ActiveSettings())
}

func (b *Board) applyCatalog(drawers []state.Drawer) {
	b.session.ReplaceCatalog(drawers)
	b.view.SetDrawers(b.session.Drawers)
}

func (b *Board) applyPalette(index int, count *int) {
	b.session.PaletteIndex = index
	if count != nil {
		b.session.PaletteCount = *count
	}
	b.view.SetPalette(b.session.PaletteIndex, b.session.PaletteCount)
}

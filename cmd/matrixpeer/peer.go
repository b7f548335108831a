package main

import (
	"encoding/json"
	"log"
	"math/rand/v2"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"MatrixPaint/internal/net"
	"MatrixPaint/internal/state"
)

const paletteCount = 8

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// defaultDrawers is the catalog the peer pretends to run.
func defaultDrawers() []state.Drawer {
	return []state.Drawer{
		{Name: "off"},
		{Name: "bzr", Settings: map[string]state.Setting{
			"speed": {Min: 1, Max: 10, Value: 3},
			"zoom":  {Min: 1, Max: 100, Value: 40},
		}},
		{Name: "gray_scott", Settings: map[string]state.Setting{
			"feed": {Min: 1, Max: 100, Value: 55},
			"kill": {Min: 1, Max: 100, Value: 62},
		}},
		{Name: "plasma", Settings: map[string]state.Setting{
			"speed": {Min: 1, Max: 20, Value: 5},
		}},
	}
}

// ConnectionManager tracks connected clients.
type ConnectionManager struct {
	connections map[*websocket.Conn]*sync.Mutex
	mu          sync.RWMutex
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[*websocket.Conn]*sync.Mutex),
	}
}

func (cm *ConnectionManager) Add(conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.connections[conn] = &sync.Mutex{}
	log.Printf("[PEER] Added connection: %s", conn.RemoteAddr())
}

func (cm *ConnectionManager) Remove(conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	delete(cm.connections, conn)
	log.Printf("[PEER] Removed connection: %s", conn.RemoteAddr())
}

// Send writes one JSON message to conn. gorilla connections allow a single
// concurrent writer.
func (cm *ConnectionManager) Send(conn *websocket.Conn, v any) {
	cm.mu.RLock()
	lock, ok := cm.connections[conn]
	cm.mu.RUnlock()
	if !ok {
		return
	}
	lock.Lock()
	defer lock.Unlock()
	if err := conn.WriteJSON(v); err != nil {
		log.Printf("[PEER] Error sending to %s: %v", conn.RemoteAddr(), err)
	}
}

func (cm *ConnectionManager) Broadcast(v any) {
	cm.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(cm.connections))
	for conn := range cm.connections {
		conns = append(conns, conn)
	}
	cm.mu.RUnlock()
	for _, conn := range conns {
		cm.Send(conn, v)
	}
}

// Peer holds the pretend server state shared by every client.
type Peer struct {
	conns *ConnectionManager

	mu           sync.Mutex
	dims         state.Dimensions
	mode         state.Mode
	drawers      []state.Drawer
	active       string
	paletteIndex int
	frames       int
}

func NewPeer(width, height int) *Peer {
	drawers := defaultDrawers()
	return &Peer{
		conns:   NewConnectionManager(),
		dims:    state.Dimensions{Width: width, Height: height},
		mode:    state.ModePaint,
		drawers: drawers,
		active:  drawers[1].Name,
	}
}

func (p *Peer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[PEER] Upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	log.Printf("[PEER] Client %s joined as %s", conn.RemoteAddr(), r.Header.Get(net.ClientIDHeader))

	p.conns.Add(conn)
	defer p.conns.Remove(conn)
	p.conns.Send(conn, p.configMessage())

	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			log.Printf("[PEER] Client %s disconnected: %v", conn.RemoteAddr(), err)
			return
		}
		if kind == websocket.BinaryMessage {
			p.frame(data)
			continue
		}
		var msg net.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[PEER] Ignoring malformed message: %v", err)
			continue
		}
		log.Printf("[PEER] Received '%s' from %s", msg.Type, conn.RemoteAddr())
		if reply, ok := p.apply(msg); ok {
			p.conns.Broadcast(reply)
		}
	}
}

func (p *Peer) frame(data []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(data) != p.dims.Cells()*3 {
		log.Printf("[PEER] Frame of %d bytes does not match %s", len(data), p.dims)
		return
	}
	p.frames++
}

// apply updates the pretend state and returns the message to echo.
func (p *Peer) apply(msg net.ClientMessage) (net.ServerMessage, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch msg.Type {
	case net.TypeSetMode:
		if msg.Mode != state.ModePaint && msg.Mode != state.ModePattern {
			return net.ServerMessage{}, false
		}
		p.mode = msg.Mode
		return net.ServerMessage{Type: net.TypeModeChanged, Mode: p.mode}, true
	case net.TypeSetDrawer:
		if p.findDrawer(msg.Drawer) < 0 {
			return net.ServerMessage{}, false
		}
		p.active = msg.Drawer
	case net.TypeRandomizeDrawer:
		p.active = p.drawers[rand.IntN(len(p.drawers))].Name
	case net.TypeSetDrawerSetting:
		i := p.findDrawer(p.active)
		if i < 0 {
			return net.ServerMessage{}, false
		}
		settings := make(map[string]state.Setting, len(p.drawers[i].Settings))
		for k, s := range p.drawers[i].Settings {
			if v, ok := msg.Settings[k]; ok {
				s.Value = min(max(v, s.Min), s.Max)
			}
			settings[k] = s
		}
		p.drawers[i].Settings = settings
	case net.TypeSetPalette:
		p.paletteIndex = min(max(msg.Index, 0), paletteCount-1)
	case net.TypeClearCanvas:
		return net.ServerMessage{}, false
	default:
		return net.ServerMessage{}, false
	}
	return p.drawerMessage(net.TypeDrawerChanged), true
}

func (p *Peer) findDrawer(name string) int {
	for i, d := range p.drawers {
		if d.Name == name {
			return i
		}
	}
	return -1
}

// drawerMessage reports the active drawer. Callers hold p.mu.
func (p *Peer) drawerMessage(typ string) net.ServerMessage {
	msg := net.ServerMessage{Type: typ, Drawer: p.active, PaletteIndex: ptr(p.paletteIndex)}
	if i := p.findDrawer(p.active); i >= 0 {
		msg.Settings = p.drawers[i].Settings
	}
	return msg
}

func (p *Peer) configMessage() net.ServerMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return net.ServerMessage{
		Type:         net.TypeConfig,
		Width:        p.dims.Width,
		Height:       p.dims.Height,
		Mode:         p.mode,
		Drawers:      slices.Clone(p.drawers),
		ActiveDrawer: p.active,
		PaletteIndex: ptr(p.paletteIndex),
		PaletteCount: ptr(paletteCount),
	}
}

// broadcastStatus sends the received frame rate to every client once per
// interval.
func (p *Peer) broadcastStatus(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		p.mu.Lock()
		fps := float64(p.frames) / interval.Seconds()
		p.frames = 0
		msg := net.ServerMessage{Type: net.TypeStatus, FPS: fps, Drawer: p.active}
		p.mu.Unlock()
		p.conns.Broadcast(msg)
	}
}

func ptr(v int) *int { return &v }

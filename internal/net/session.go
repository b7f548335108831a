package net

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"MatrixPaint/internal/state"
)

// ReconnectDelay is the fixed pause between losing the channel and the next
// connection attempt. It does not grow and there is no retry limit.
const ReconnectDelay = 2 * time.Second

// ClientIDHeader carries state.ClientID on the handshake.
const ClientIDHeader = "X-Client-ID"

// ConnState is the lifecycle of the channel to the server.
type ConnState int

const (
	Connecting ConnState = iota
	Open
	Closed
)

func (s ConnState) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("ConnState(%d)", int(s))
	}
}

// Conn is the part of *websocket.Conn the session uses.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Dialer opens a channel to the server.
type Dialer interface {
	Dial(ctx context.Context, url string, header http.Header) (Conn, error)
}

// WebSocketDialer dials with gorilla/websocket.
type WebSocketDialer struct {
	websocket.Dialer
}

func (d *WebSocketDialer) Dial(ctx context.Context, url string, header http.Header) (Conn, error) {
	c, _, err := d.DialContext(ctx, url, header)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return c, nil
}

// AfterFunc calls f once after d has passed, on any goroutine. The returned
// function cancels the call if it has not happened yet.
type AfterFunc func(d time.Duration, f func()) (stop func() bool)

// TimeAfterFunc is AfterFunc backed by time.AfterFunc.
func TimeAfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// Handler receives what the session learns. It is only ever called through
// the session's post function, so it runs on the owner's event loop.
type Handler interface {
	HandleMessage(msg ServerMessage)
	ConnectionChanged(st ConnState)
}

// SessionConfig wires a Session to its environment.
type SessionConfig struct {
	URL            string
	Dialer         Dialer
	Handler        Handler
	Post           func(func())
	AfterFunc      AfterFunc
	ReconnectDelay time.Duration
}

// Session owns the channel to the server: connect, reconnect after a fixed
// delay, dispatch inbound text messages, and send outbound ones. Every
// method must be called from the owner's event loop; network goroutines
// only report back through Post.
type Session struct {
	cfg    SessionConfig
	header http.Header

	ctx    context.Context
	state  ConnState
	link   *link
	retry  func() bool
	closed bool
}

// NewSession fills in defaults. Call Start to begin connecting.
func NewSession(cfg SessionConfig) *Session {
	if cfg.Dialer == nil {
		cfg.Dialer = &WebSocketDialer{Dialer: *websocket.DefaultDialer}
	}
	if cfg.AfterFunc == nil {
		cfg.AfterFunc = TimeAfterFunc
	}
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = ReconnectDelay
	}
	h := http.Header{}
	h.Set(ClientIDHeader, state.ClientID())
	return &Session{cfg: cfg, header: h, state: Closed}
}

// State reports the current connection state.
func (s *Session) State() ConnState {
	return s.state
}

// Start makes the first connection attempt. ctx bounds every dial.
func (s *Session) Start(ctx context.Context) {
	s.ctx = ctx
	s.connect()
}

// Close tears the channel down for good and cancels any pending retry.
func (s *Session) Close() {
	s.closed = true
	if s.retry != nil {
		s.retry()
		s.retry = nil
	}
	if s.link != nil {
		s.link.close()
		s.link = nil
	}
	s.setState(Closed)
}

// Send marshals v and sends it as a text message. It reports false when the
// message was dropped because the channel is not open.
func (s *Session) Send(v any) bool {
	if s.state != Open || s.link == nil {
		return false
	}
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[SESSION] Error encoding message: %v", err)
		return false
	}
	return s.link.enqueue(websocket.TextMessage, data)
}

// SendFrame sends a quantized frame as a binary message. Frames are never
// queued for later: if the channel is not open the frame is dropped.
func (s *Session) SendFrame(frame []byte) bool {
	if s.state != Open || s.link == nil {
		return false
	}
	return s.link.enqueue(websocket.BinaryMessage, frame)
}

func (s *Session) setState(st ConnState) {
	if s.state == st {
		return
	}
	s.state = st
	if s.cfg.Handler != nil {
		s.cfg.Handler.ConnectionChanged(st)
	}
}

func (s *Session) connect() {
	s.retry = nil
	if s.closed {
		return
	}
	s.setState(Connecting)
	ctx := s.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	log.Printf("[SESSION] Connecting to %s", s.cfg.URL)
	go func() {
		c, err := s.cfg.Dialer.Dial(ctx, s.cfg.URL, s.header)
		s.cfg.Post(func() { s.dialed(c, err) })
	}()
}

func (s *Session) dialed(c Conn, err error) {
	if s.closed {
		if c != nil {
			c.Close()
		}
		return
	}
	if err != nil {
		log.Printf("[SESSION] Connection failed: %v", err)
		s.lost()
		return
	}
	l := newLink(c)
	s.link = l
	log.Printf("[SESSION] Connected to %s", s.cfg.URL)
	s.setState(Open)
	go s.readLoop(l)
}

func (s *Session) readLoop(l *link) {
	for {
		kind, data, err := l.conn.ReadMessage()
		if err != nil {
			s.cfg.Post(func() { s.dropped(l, err) })
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		msg, err := DecodeServerMessage(data)
		if err != nil {
			log.Printf("[SESSION] Ignoring malformed message: %v", err)
			continue
		}
		s.cfg.Post(func() {
			if s.link == l && s.cfg.Handler != nil {
				s.cfg.Handler.HandleMessage(msg)
			}
		})
	}
}

func (s *Session) dropped(l *link, err error) {
	if s.link != l {
		return
	}
	log.Printf("[SESSION] Disconnected: %v", err)
	s.link = nil
	l.close()
	s.lost()
}

// lost moves to Closed and schedules exactly one reconnect attempt.
func (s *Session) lost() {
	s.setState(Closed)
	if s.closed || s.retry != nil {
		return
	}
	s.retry = s.cfg.AfterFunc(s.cfg.ReconnectDelay, func() {
		s.cfg.Post(s.connect)
	})
}

package main

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MatrixPaint/internal/net"
	"MatrixPaint/internal/state"
)

func dialPeer(t *testing.T, p *Peer) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(p)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readServerMessage(t *testing.T, conn *websocket.Conn) net.ServerMessage {
	t.Helper()
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	msg, err := net.DecodeServerMessage(data)
	require.NoError(t, err)
	return msg
}

func TestPeerSendsConfigOnConnect(t *testing.T) {
	conn := dialPeer(t, NewPeer(32, 18))

	msg := readServerMessage(t, conn)
	assert.Equal(t, net.TypeConfig, msg.Type)
	assert.Equal(t, 32, msg.Width)
	assert.Equal(t, 18, msg.Height)
	assert.Equal(t, state.ModePaint, msg.Mode)
	assert.Equal(t, "bzr", msg.ActiveDrawer)
	require.NotNil(t, msg.PaletteCount)
	assert.Equal(t, paletteCount, *msg.PaletteCount)
	assert.Len(t, msg.Drawers, len(defaultDrawers()))
}

func TestPeerEchoesControlMessages(t *testing.T) {
	conn := dialPeer(t, NewPeer(32, 18))
	readServerMessage(t, conn)

	require.NoError(t, conn.WriteJSON(net.NewSetMode(state.ModePattern)))
	msg := readServerMessage(t, conn)
	assert.Equal(t, net.TypeModeChanged, msg.Type)
	assert.Equal(t, state.ModePattern, msg.Mode)

	require.NoError(t, conn.WriteJSON(net.NewSetDrawer("gray_scott")))
	msg = readServerMessage(t, conn)
	assert.Equal(t, net.TypeDrawerChanged, msg.Type)
	assert.Equal(t, "gray_scott", msg.Drawer)

	require.NoError(t, conn.WriteJSON(net.NewSetDrawerSetting("feed", 500)))
	msg = readServerMessage(t, conn)
	assert.Equal(t, 100, msg.Settings["feed"].Value)
	assert.Equal(t, 62, msg.Settings["kill"].Value)

	require.NoError(t, conn.WriteJSON(net.NewSetPalette(3)))
	msg = readServerMessage(t, conn)
	require.NotNil(t, msg.PaletteIndex)
	assert.Equal(t, 3, *msg.PaletteIndex)
}

func TestPeerApplyRejectsUnknownInput(t *testing.T) {
	p := NewPeer(8, 4)
	_, ok := p.apply(net.ClientMessage{Type: net.TypeSetMode, Mode: "disco"})
	assert.False(t, ok)
	_, ok = p.apply(net.ClientMessage{Type: net.TypeSetDrawer, Drawer: "nope"})
	assert.False(t, ok)
	_, ok = p.apply(net.ClientMessage{Type: "reboot"})
	assert.False(t, ok)
	assert.Equal(t, "bzr", p.active)
}

func TestPeerCountsOnlyWellSizedFrames(t *testing.T) {
	p := NewPeer(8, 4)
	p.frame(make([]byte, 8*4*3))
	p.frame(make([]byte, 10))
	assert.Equal(t, 1, p.frames)
}

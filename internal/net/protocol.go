package net

import (
	"encoding/json"
	"fmt"

	"MatrixPaint/internal/state"
)

// Inbound message types.
const (
	TypeConfig        = "config"
	TypeStatus        = "status"
	TypeModeChanged   = "mode_changed"
	TypeDrawerChanged = "drawer_changed"
	TypeAutoRotated   = "auto_rotated"
	TypeDrawersList   = "drawers_list"
)

// Outbound message types.
const (
	TypeSetMode          = "set_mode"
	TypeSetDrawer        = "set_drawer"
	TypeRandomizeDrawer  = "randomize_drawer"
	TypeSetDrawerSetting = "set_drawer_settings"
	TypeSetPalette       = "set_palette"
	TypeClearCanvas      = "clear_canvas"
)

// ServerMessage is the union of every text message the server pushes.
// Optional fields are pointers or nil-able so absence can be told apart
// from a zero value.
type ServerMessage struct {
	Type string `json:"type"`

	// config
	Width        int            `json:"width,omitempty"`
	Height       int            `json:"height,omitempty"`
	Mode         state.Mode     `json:"mode,omitempty"`
	Drawers      []state.Drawer `json:"drawers,omitempty"`
	ActiveDrawer string         `json:"active_drawer,omitempty"`
	PaletteIndex *int           `json:"palette_index,omitempty"`
	PaletteCount *int           `json:"palette_count,omitempty"`

	// status
	FPS float64 `json:"fps,omitempty"`

	// status, drawer_changed, auto_rotated
	Drawer   string                   `json:"drawer,omitempty"`
	Settings map[string]state.Setting `json:"settings,omitempty"`
}

// DecodeServerMessage parses one text frame.
func DecodeServerMessage(data []byte) (ServerMessage, error) {
	var msg ServerMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return ServerMessage{}, fmt.Errorf("decode server message: %w", err)
	}
	return msg, nil
}

// SetMode asks the server to switch between paint and pattern mode.
type SetMode struct {
	Type string     `json:"type"`
	Mode state.Mode `json:"mode"`
}

// SetDrawer selects a pattern by name.
type SetDrawer struct {
	Type   string `json:"type"`
	Drawer string `json:"drawer"`
}

// RandomizeDrawer asks the server to pick a pattern.
type RandomizeDrawer struct {
	Type string `json:"type"`
}

// SetDrawerSettings adjusts settings of the active pattern.
type SetDrawerSettings struct {
	Type     string         `json:"type"`
	Settings map[string]int `json:"settings"`
}

// SetPalette selects a palette by index.
type SetPalette struct {
	Type  string `json:"type"`
	Index int    `json:"index"`
}

// ClearCanvas asks the server to blank its own canvas.
type ClearCanvas struct {
	Type string `json:"type"`
}

func NewSetMode(m state.Mode) SetMode { return SetMode{Type: TypeSetMode, Mode: m} }

func NewSetDrawer(name string) SetDrawer { return SetDrawer{Type: TypeSetDrawer, Drawer: name} }

func NewRandomizeDrawer() RandomizeDrawer { return RandomizeDrawer{Type: TypeRandomizeDrawer} }

func NewSetDrawerSetting(key string, value int) SetDrawerSettings {
	return SetDrawerSettings{Type: TypeSetDrawerSetting, Settings: map[string]int{key: value}}
}

func NewSetPalette(index int) SetPalette { return SetPalette{Type: TypeSetPalette, Index: index} }

func NewClearCanvas() ClearCanvas { return ClearCanvas{Type: TypeClearCanvas} }

// ClientMessage is the union of everything a client sends, used by peers
// decoding client traffic.
type ClientMessage struct {
	Type     string         `json:"type"`
	Mode     state.Mode     `json:"mode,omitempty"`
	Drawer   string         `json:"drawer,omitempty"`
	Settings map[string]int `json:"settings,omitempty"`
	Index    int            `json:"index,omitempty"`
}

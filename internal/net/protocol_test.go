package net

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MatrixPaint/internal/state"
)

func intPtr(v int) *int { return &v }

func TestDecodeConfig(t *testing.T) {
	raw := `{"type":"config","width":32,"height":18,"mode":"pattern",
		"drawers":[{"name":"bzr","settings":{"speed":{"min":0,"max":10,"value":4}}},{"name":"off","settings":{}}],
		"active_drawer":"bzr","palette_index":0,"palette_count":12}`
	msg, err := DecodeServerMessage([]byte(raw))
	require.NoError(t, err)

	want := ServerMessage{
		Type:   TypeConfig,
		Width:  32,
		Height: 18,
		Mode:   state.ModePattern,
		Drawers: []state.Drawer{
			{Name: "bzr", Settings: map[string]state.Setting{"speed": {Min: 0, Max: 10, Value: 4}}},
			{Name: "off", Settings: map[string]state.Setting{}},
		},
		ActiveDrawer: "bzr",
		PaletteIndex: intPtr(0),
		PaletteCount: intPtr(12),
	}
	if diff := cmp.Diff(want, msg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeOptionalFieldsAbsent(t *testing.T) {
	msg, err := DecodeServerMessage([]byte(`{"type":"drawer_changed","drawer":"off"}`))
	require.NoError(t, err)
	assert.Equal(t, "off", msg.Drawer)
	assert.Nil(t, msg.Settings)
	assert.Nil(t, msg.PaletteIndex)
}

func TestDecodeMalformed(t *testing.T) {
	_, err := DecodeServerMessage([]byte(`{"type":"config","width":"wide"}`))
	assert.Error(t, err)
	_, err = DecodeServerMessage([]byte(`not json`))
	assert.Error(t, err)
}

func TestOutboundShapes(t *testing.T) {
	cases := []struct {
		msg  any
		want string
	}{
		{NewSetMode(state.ModePaint), `{"type":"set_mode","mode":"paint"}`},
		{NewSetDrawer("bzr"), `{"type":"set_drawer","drawer":"bzr"}`},
		{NewRandomizeDrawer(), `{"type":"randomize_drawer"}`},
		{NewSetDrawerSetting("speed", 7), `{"type":"set_drawer_settings","settings":{"speed":7}}`},
		{NewSetPalette(0), `{"type":"set_palette","index":0}`},
		{NewClearCanvas(), `{"type":"clear_canvas"}`},
	}
	for _, c := range cases {
		got, err := json.Marshal(c.msg)
		require.NoError(t, err)
		assert.JSONEq(t, c.want, string(got))
	}
}

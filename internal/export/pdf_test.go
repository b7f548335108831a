package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MatrixPaint/internal/state"
)

func TestWritePDF(t *testing.T) {
	b := state.NewBuffer(state.Dimensions{Width: 32, Height: 18})
	b.StampDisc(16, 9, 3, state.RGBf{R: 255, G: 64, B: 400})

	var out bytes.Buffer
	require.NoError(t, WritePDF(&out, b))
	assert.True(t, bytes.HasPrefix(out.Bytes(), []byte("%PDF-")))
}

func TestWritePDFWithoutDimensions(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WritePDF(&out, &state.Buffer{}))
	assert.NotZero(t, out.Len())
}

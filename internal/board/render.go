package board

import (
	"image"
	"log"
	"math"
	"time"

	"MatrixPaint/internal/net"
	"MatrixPaint/internal/state"
)

// fpsLogInterval is how many ticks pass between render-rate log lines.
const fpsLogInterval = 600

// Tick runs one render iteration: decay, rasterize, and every
// FrameDivisor-th paint tick a frame to the server. Nothing is touched in
// pattern mode; the buffer waits there until painting resumes.
func (b *Board) Tick(now time.Time) {
	dt := b.clock.Delta(now)
	b.metrics.ticks.Mark(1)
	b.tickCount++
	if b.tickCount%fpsLogInterval == 0 {
		log.Printf("[BOARD] Render %.1f ticks/s, sent %.1f frames/s",
			b.metrics.ticks.RateMean(), b.metrics.frames.RateMean())
	}

	if b.session.Mode != state.ModePaint || b.buf.Len() == 0 {
		return
	}
	b.buf.ApplyDecay(dt, b.decay.Rate)
	b.render()

	b.frameCount++
	if b.frameCount%b.cfg.FrameDivisor == 0 {
		b.sendFrame()
	}
}

// sendFrame quantizes the buffer and ships it. Frames are dropped, never
// queued, when the channel is down or the server owns the matrix.
func (b *Board) sendFrame() {
	if b.session.Mode != state.ModePaint || b.buf.Len() == 0 {
		return
	}
	if !b.connected() {
		b.metrics.dropped.Mark(1)
		return
	}
	if b.channel.SendFrame(net.EncodeFrame(b.buf)) {
		b.metrics.frames.Mark(1)
	} else {
		b.metrics.dropped.Mark(1)
	}
}

// render rasterizes the buffer into a new image and hands it to the view.
// Only paint mode renders; in pattern mode the server owns the matrix.
func (b *Board) render() {
	if b.session.Mode != state.ModePaint || b.buf.Len() == 0 {
		return
	}
	d := b.buf.Dimensions()
	img := image.NewRGBA(image.Rect(0, 0, d.Width*b.scale, d.Height*b.scale))
	Rasterize(img, b.buf, b.scale)
	b.view.Present(img)
}

// Rasterize draws every cell of buf as a scale x scale block into dst,
// clamping and rounding each channel. dst must be at least
// width*scale by height*scale pixels.
func Rasterize(dst *image.RGBA, buf *state.Buffer, scale int) {
	d := buf.Dimensions()
	for my := 0; my < d.Height; my++ {
		for mx := 0; mx < d.Width; mx++ {
			c := buf.Cell(mx, my)
			r, g, bl := state.Quantize(c.R), state.Quantize(c.G), state.Quantize(c.B)
			for sy := 0; sy < scale; sy++ {
				off := dst.PixOffset(mx*scale, my*scale+sy)
				for sx := 0; sx < scale; sx++ {
					dst.Pix[off] = r
					dst.Pix[off+1] = g
					dst.Pix[off+2] = bl
					dst.Pix[off+3] = 255
					off += 4
				}
			}
		}
	}
}

// SetViewport records the space available for the matrix and re-renders at
// the resulting scale.
func (b *Board) SetViewport(width, height float64) {
	b.viewportW, b.viewportH = width, height
	b.rescale()
	b.render()
}

func (b *Board) rescale() {
	b.scale = DisplayScale(b.viewportW, b.viewportH, b.buf.Dimensions(), b.cfg.ViewportFill)
}

// DisplayScale is the largest whole number of pixels per cell that fits the
// matrix into fill of the viewport. It is never below 1.
func DisplayScale(width, height float64, d state.Dimensions, fill float64) int {
	if !d.Valid() || width <= 0 || height <= 0 {
		return 1
	}
	sx := width * fill / float64(d.Width)
	sy := height * fill / float64(d.Height)
	return max(1, int(math.Floor(math.Min(sx, sy))))
}

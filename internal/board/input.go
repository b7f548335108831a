package board

import "MatrixPaint/internal/state"

// PointerDown starts a stroke at a normalized position.
func (b *Board) PointerDown(p state.Point) {
	if !b.canPaint() {
		return
	}
	p = p.Clamp()
	b.drawing = true
	b.pointer.Move(p)
	b.buf.StampPoint(p, b.brush)
}

// PointerMove extends the stroke. Without a previous sample it stamps a
// single disc instead of a segment.
func (b *Board) PointerMove(p state.Point) {
	if !b.drawing || !b.canPaint() {
		return
	}
	p = p.Clamp()
	if last, ok := b.pointer.Last(); ok {
		b.buf.StampSegment(last, p, b.brush)
	} else {
		b.buf.StampPoint(p, b.brush)
	}
	b.pointer.Move(p)
}

// PointerUp ends the stroke, wherever the pointer was released.
func (b *Board) PointerUp() {
	b.drawing = false
	b.pointer.Release()
}

func (b *Board) canPaint() bool {
	return b.session.Mode == state.ModePaint && b.buf.Len() > 0
}

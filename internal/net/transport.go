package net

import (
	"log"
	"sync"

	"MatrixPaint/internal/state"
)

// EncodeFrame quantizes the buffer into the wire frame: width*height*3
// bytes, row-major, R G B per cell, each channel clamped to [0, 255] and
// rounded. The buffer itself is left untouched.
func EncodeFrame(b *state.Buffer) []byte {
	return AppendFrame(nil, b)
}

// AppendFrame is EncodeFrame writing into dst's spare capacity.
func AppendFrame(dst []byte, b *state.Buffer) []byte {
	for _, v := range b.Values() {
		dst = append(dst, state.Quantize(v))
	}
	return dst
}

// outgoing is one queued WebSocket message.
type outgoing struct {
	kind int
	data []byte
}

// sendQueueSize bounds what may be in flight on one link. When the queue
// is full new messages are dropped rather than waited for.
const sendQueueSize = 8

// link is one live connection: a reader owned by the session and a writer
// goroutine draining the send queue.
type link struct {
	conn Conn
	out  chan outgoing
	done chan struct{}
	once sync.Once
}

func newLink(c Conn) *link {
	l := &link{
		conn: c,
		out:  make(chan outgoing, sendQueueSize),
		done: make(chan struct{}),
	}
	go l.writeLoop()
	return l
}

// enqueue hands a message to the writer without blocking.
func (l *link) enqueue(kind int, data []byte) bool {
	select {
	case l.out <- outgoing{kind: kind, data: data}:
		return true
	default:
		return false
	}
}

func (l *link) writeLoop() {
	for {
		select {
		case <-l.done:
			return
		case m := <-l.out:
			if err := l.conn.WriteMessage(m.kind, m.data); err != nil {
				log.Printf("[SESSION] Write failed: %v", err)
				// Closing the conn wakes the reader, which reports the loss.
				l.close()
				return
			}
		}
	}
}

func (l *link) close() {
	l.once.Do(func() {
		close(l.done)
		if err := l.conn.Close(); err != nil {
			log.Printf("[SESSION] Error closing connection: %v", err)
		}
	})
}

package main

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"MatrixPaint/internal/board"
	"MatrixPaint/internal/net"
	"MatrixPaint/internal/ui"
)

const (
	CustomURLScheme = "matrixpaint://"
	DefaultAddr     = "localhost:8000"
	discoverTimeout = 2 * time.Second
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	url := serverURL(os.Args[1:])
	log.Printf("Using server %s", url)

	b := board.New(board.DefaultConfig(), nil)
	session := net.NewSession(net.SessionConfig{
		URL:     url,
		Handler: b,
		Post:    b.Post,
	})
	b.SetChannel(session)

	app := ui.NewApp(b, "Matrix Paint")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("[BOARD] Event loop stopped: %v", err)
		}
	}()

	app.Run()
	cancel()
	<-done
}

// serverURL resolves the channel endpoint from a matrixpaint:// link, an
// mDNS lookup, or the local default, in that order.
func serverURL(args []string) string {
	if len(args) > 0 && strings.HasPrefix(args[0], CustomURLScheme) {
		addr := strings.TrimPrefix(args[0], CustomURLScheme)
		addr = strings.TrimSuffix(addr, "/")
		return net.WebSocketURL(addr)
	}

	url, err := net.Discover(discoverTimeout)
	if err != nil {
		log.Printf("Discovery failed (%v), falling back to %s", err, DefaultAddr)
		return net.WebSocketURL(DefaultAddr)
	}
	return url
}

// Command matrixpeer is a stand-in Aurora server for trying the paint
// client without LED hardware.
package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"MatrixPaint/internal/net"
)

const (
	CustomURLScheme = "matrixpaint://"
	Port            = 8000
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	peer := NewPeer(32, 18)
	go peer.broadcastStatus(time.Second)

	mdnsServer, err := net.Advertise(Port, "Matrix Paint dev peer")
	if err != nil {
		log.Printf("[PEER] mDNS advertisement failed: %v", err)
	} else {
		defer mdnsServer.Shutdown()
	}

	log.Printf("[PEER] Share link: %s", net.ShareLink(CustomURLScheme, net.OutgoingIP(), Port))

	mux := http.NewServeMux()
	mux.Handle("/ws", peer)
	log.Printf("[PEER] Listening on port %d", Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", Port), mux); err != nil {
		log.Fatalf("[PEER] Server failed: %v", err)
	}
}

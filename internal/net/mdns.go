package net

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

// ServiceType is what Aurora servers announce on the local network.
const ServiceType = "_aurora._tcp"

// ErrNoServer is returned when discovery finds nothing before the timeout.
var ErrNoServer = errors.New("no aurora server found")

// Advertise announces a server on port. The caller must Shutdown the
// returned server.
func Advertise(port int, info ...string) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	service, err := mdns.NewMDNSService(host, ServiceType, "", "", port, []net.IP{firstIPv4()}, info)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// Discover browses for an Aurora server and returns the WebSocket URL of
// the first one that answers with an IPv4 address.
func Discover(timeout time.Duration) (string, error) {
	entries := make(chan *mdns.ServiceEntry, 8)
	found := make(chan string, 1)
	go func() {
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			select {
			case found <- WebSocketURL(fmt.Sprintf("%s:%d", e.AddrV4, e.Port)):
			default:
			}
		}
	}()

	params := mdns.DefaultParams(ServiceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true
	err := mdns.Query(params)
	close(entries)
	if err != nil {
		return "", fmt.Errorf("mdns query: %w", err)
	}

	select {
	case url := <-found:
		return url, nil
	case <-time.After(100 * time.Millisecond):
		return "", ErrNoServer
	}
}

// WebSocketURL builds the channel endpoint for a host:port address.
func WebSocketURL(addr string) string {
	return "ws://" + addr + "/ws"
}

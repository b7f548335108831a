package net

import (
	"net"
	"strconv"
)

// OutgoingIP returns the address other machines on the LAN most likely
// reach this host on: the source address of the default route, else the
// first usable IPv4 interface, else loopback.
func OutgoingIP() net.IP {
	conn, err := net.Dial("udp4", "8.8.8.8:80")
	if err != nil {
		return firstIPv4()
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP
}

// ShareLink builds the link a client is started with to reach a server.
func ShareLink(scheme string, ip net.IP, port int) string {
	return scheme + net.JoinHostPort(ip.String(), strconv.Itoa(port))
}

// firstIPv4 falls back to loopback when no interface has a LAN address.
func firstIPv4() net.IP {
	addrs, err := net.InterfaceAddrs()
	if err == nil {
		if ip := lanIPv4(addrs); ip != nil {
			return ip
		}
	}
	return net.IPv4(127, 0, 0, 1)
}

// lanIPv4 picks the first IPv4 address another host could reach: not
// loopback, not link-local, not unspecified.
func lanIPv4(addrs []net.Addr) net.IP {
	for _, a := range addrs {
		ipnet, ok := a.(*net.IPNet)
		if !ok {
			continue
		}
		ip := ipnet.IP.To4()
		if ip == nil || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsUnspecified() {
			continue
		}
		return ip
	}
	return nil
}

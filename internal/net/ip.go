package net

import (
	"errors"
	"fmt"
	"log"
	"net"
	"strings"
)

// Scheme prefixes the links a host hands out to clients.
const Scheme = "tileboard://"

// ErrBadLink is returned for share links that are not tileboard://host:port.
var ErrBadLink = errors.New("bad share link")

// OutgoingIP finds the preferred local IP address for the host to share.
func OutgoingIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// No route to the internet, fall back to checking local interfaces.
		return firstIPv4().String()
	}
	defer conn.Close()

	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}

// firstIPv4 returns the first IPv4 address of an interface that is up and
// not a loopback.
func firstIPv4() net.IP {
	ifaces, _ := net.Interfaces()
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				return ipnet.IP.To4()
			}
		}
	}
	log.Println("[NET] No suitable local IP found, link generation may fail.")
	return net.IPv4(127, 0, 0, 1)
}

// ShareLink builds the link clients use to join a host on port.
func ShareLink(host string, port int) string {
	return Scheme + net.JoinHostPort(host, fmt.Sprint(port))
}

// ParseLink extracts host:port from a share link.
func ParseLink(link string) (string, error) {
	if !strings.HasPrefix(link, Scheme) {
		return "", fmt.Errorf("%w: %q has no %s prefix", ErrBadLink, link, Scheme)
	}
	addr := strings.TrimSuffix(strings.TrimPrefix(link, Scheme), "/")
	host, port, err := net.SplitHostPort(addr)
	if err != nil || host == "" || port == "" {
		return "", fmt.Errorf("%w: %q", ErrBadLink, link)
	}
	return addr, nil
}

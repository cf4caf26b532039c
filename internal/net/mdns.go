package net

import (
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

const serviceType = "_tileboard._tcp"

// ErrNoHost is returned by Browse when no board host answered.
var ErrNoHost = errors.New("no board host found")

// Advertise announces a board host listening on port to the local network.
// The caller shuts the returned server down when hosting ends.
func Advertise(port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	service, err := mdns.NewMDNSService(host, serviceType, "", "", port, []net.IP{firstIPv4()}, []string{"TileBoard"})
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	log.Printf("[MDNS] Advertising %s on port %d", serviceType, port)
	return server, nil
}

// Browse listens for board hosts for up to timeout and returns the address
// of the first one that answered.
func Browse(timeout time.Duration) (string, error) {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	var first string
	go func() {
		defer close(done)
		for e := range entries {
			if addr, ok := entryAddr(e); ok && first == "" {
				first = addr
			}
		}
	}()

	params := mdns.DefaultParams(serviceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true
	err := mdns.Query(params)
	close(entries)
	<-done

	if err != nil {
		return "", fmt.Errorf("mDNS lookup failed: %w", err)
	}
	if first == "" {
		return "", ErrNoHost
	}
	log.Printf("[MDNS] Found host at %s", first)
	return first, nil
}

func entryAddr(e *mdns.ServiceEntry) (string, bool) {
	if e == nil || e.AddrV4 == nil || e.Port == 0 {
		return "", false
	}
	return net.JoinHostPort(e.AddrV4.String(), fmt.Sprint(e.Port)), true
}

package net

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/mdns"

	"InkBoard/internal/logx"
)

const serviceType = "_inkboard._tcp"

// Advertise announces a feed listening on port. Call Shutdown on the
// returned server to withdraw it.
func Advertise(port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}
	service, err := mdns.NewMDNSService(host, serviceType, "", "", port, nil, []string{"InkBoard", "path=/feed"})
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	logx.Logger().Info("[FEED] advertising", "service", serviceType, "host", host, "port", port)
	return server, nil
}

// Service is a feed found on the network.
type Service struct {
	Name string
	Link string
}

// Browse queries the local network for feeds for up to timeout and calls
// found for each one with an IPv4 address.
func Browse(timeout time.Duration, found func(Service)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			found(Service{Name: e.Name, Link: ShareLink(e.AddrV4.String(), e.Port)})
		}
	}()

	params := mdns.DefaultParams(serviceType)
	params.Entries = entries
	params.Timeout = timeout
	err := mdns.Query(params)
	close(entries)
	<-done
	if err != nil {
		return fmt.Errorf("mdns query: %w", err)
	}
	return nil
}

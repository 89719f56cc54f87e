package net

import (
	"fmt"
	"net"
	"strconv"

	"InkBoard/internal/logx"
)

// GetOutgoingIP finds the preferred local IP address for the host to share.
func GetOutgoingIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// no route out; pick an interface address instead
		return firstIPv4().String()
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}

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
	logx.Logger().Warn("[FEED] no usable interface address, share link will be loopback")
	return net.IPv4(127, 0, 0, 1)
}

// ListenPort extracts the port from a listen address such as ":8888".
func ListenPort(addr string) (int, error) {
	_, p, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, fmt.Errorf("listen address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(p)
	if err != nil || port <= 0 || port > 65535 {
		return 0, fmt.Errorf("listen address %q: bad port", addr)
	}
	return port, nil
}

// ShareLink is the websocket URL other machines use to watch the feed.
func ShareLink(host string, port int) string {
	return fmt.Sprintf("ws://%s/feed", net.JoinHostPort(host, strconv.Itoa(port)))
}

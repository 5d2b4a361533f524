package netinfo

import (
	"fmt"
	"net"
	"strconv"
)

// OutgoingIP returns the address the host would use to reach the outside world.
// On networks without a default route it falls back to the first non-loopback
// IPv4 interface address, and finally to 127.0.0.1.
func OutgoingIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return firstIPv4(net.InterfaceAddrs)
	}
	defer conn.Close()

	if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok && addr.IP.To4() != nil {
		return addr.IP.String()
	}
	return firstIPv4(net.InterfaceAddrs)
}

func firstIPv4(addrs func() ([]net.Addr, error)) string {
	list, err := addrs()
	if err != nil {
		return "127.0.0.1"
	}
	for _, address := range list {
		if ipnet, ok := address.(*net.IPNet); ok && !ipnet.IP.IsLoopback() && ipnet.IP.To4() != nil {
			return ipnet.IP.String()
		}
	}
	return "127.0.0.1"
}

// ListenPort extracts the numeric port from a listen address such as ":8080".
func ListenPort(listenAddr string) (int, error) {
	_, portStr, err := net.SplitHostPort(listenAddr)
	if err != nil {
		return 0, fmt.Errorf("listen address %q: %w", listenAddr, err)
	}
	if portStr == "" {
		return 80, nil
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 || port > 65535 {
		return 0, fmt.Errorf("listen address %q: invalid port %q", listenAddr, portStr)
	}
	return port, nil
}

// ShareURL is the address other devices on the LAN open to reach the UI.
func ShareURL(ip string, port int) string {
	host := ip
	if port != 80 {
		host = net.JoinHostPort(ip, strconv.Itoa(port))
	}
	return "http://" + host + "/"
}

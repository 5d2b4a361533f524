package netinfo

import (
	"fmt"
	"net"
	"os"

	"github.com/hashicorp/mdns"
)

const ServiceType = "_sketchpad._tcp"

// Advertiser announces the drawing server on the local network.
type Advertiser struct {
	server *mdns.Server
}

// Advertise starts an mDNS responder for ServiceType on port. ips may be nil to
// let the responder resolve the host's addresses itself.
func Advertise(port int, ips []net.IP) (*Advertiser, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	service, err := mdns.NewMDNSService(host, ServiceType, "", "", port, ips, []string{"sketchpad", "path=/"})
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return &Advertiser{server: server}, nil
}

func (a *Advertiser) Stop() error {
	if a == nil || a.server == nil {
		return nil
	}
	return a.server.Shutdown()
}

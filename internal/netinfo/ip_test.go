package netinfo

import (
	"errors"
	"net"
	"testing"

	"github.com/tdewolff/test"
)

func TestListenPort(t *testing.T) {
	var tts = []struct {
		addr string
		port int
	}{
		{":8080", 8080},
		{"127.0.0.1:3000", 3000},
		{"[::1]:443", 443},
		{":", 80},
	}
	for _, tt := range tts {
		t.Run(tt.addr, func(t *testing.T) {
			port, err := ListenPort(tt.addr)
			test.Error(t, err)
			test.T(t, port, tt.port)
		})
	}

	for _, bad := range []string{"8080", ":http-alt", ":70000"} {
		_, err := ListenPort(bad)
		test.That(t, err != nil, bad)
	}
}

func TestShareURL(t *testing.T) {
	test.String(t, ShareURL("192.168.1.4", 80), "http://192.168.1.4/")
	test.String(t, ShareURL("192.168.1.4", 8080), "http://192.168.1.4:8080/")
}

func TestFirstIPv4(t *testing.T) {
	addrs := func() ([]net.Addr, error) {
		return []net.Addr{
			&net.IPNet{IP: net.IPv4(127, 0, 0, 1), Mask: net.CIDRMask(8, 32)},
			&net.IPNet{IP: net.ParseIP("fe80::1"), Mask: net.CIDRMask(64, 128)},
			&net.IPNet{IP: net.IPv4(10, 1, 2, 3), Mask: net.CIDRMask(24, 32)},
		}, nil
	}
	test.String(t, firstIPv4(addrs), "10.1.2.3")

	failing := func() ([]net.Addr, error) { return nil, errors.New("no interfaces") }
	test.String(t, firstIPv4(failing), "127.0.0.1")
}

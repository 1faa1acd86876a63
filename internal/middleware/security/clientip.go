package security

import (
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ProxyTrust resolves the client address of a request, honouring forwarding
// headers only when the direct peer is a trusted proxy.
type ProxyTrust struct {
	networks []*net.IPNet
}

// NewProxyTrust builds a ProxyTrust from CIDR strings. With no arguments the
// loopback and private ranges are trusted.
func NewProxyTrust(cidrs ...string) (*ProxyTrust, error) {
	if len(cidrs) == 0 {
		cidrs = []string{"127.0.0.0/8", "::1/128", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}
	}
	pt := &ProxyTrust{}
	for _, c := range cidrs {
		_, network, err := net.ParseCIDR(strings.TrimSpace(c))
		if err != nil {
			return nil, fmt.Errorf("parse trusted proxy CIDR %s: %w", c, err)
		}
		pt.networks = append(pt.networks, network)
	}
	return pt, nil
}

var defaultTrust, _ = NewProxyTrust()

// ClientIP returns the client address using the default trusted ranges.
func ClientIP(r *http.Request) string {
	return defaultTrust.ClientIP(r)
}

func (pt *ProxyTrust) trusted(ip net.IP) bool {
	for _, network := range pt.networks {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// ClientIP returns the first valid X-Forwarded-For address, then X-Real-IP,
// when the peer is trusted, otherwise the peer address itself.
func (pt *ProxyTrust) ClientIP(r *http.Request) string {
	directIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		directIP = r.RemoteAddr
	}

	parsed := net.ParseIP(directIP)
	if parsed == nil || !pt.trusted(parsed) {
		return directIP
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		first = strings.TrimSpace(first)
		if net.ParseIP(first) != nil {
			return first
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" && net.ParseIP(xri) != nil {
		return xri
	}
	return directIP
}

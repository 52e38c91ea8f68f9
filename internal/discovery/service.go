package discovery

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// Service represents a solver backend advertised on the network
type Service struct {
	// Instance is the mDNS instance name (e.g., "kitchen-solver")
	Instance string

	// Hostname is the mDNS hostname (e.g., "pi4.local.")
	Hostname string

	// IP is the preferred address, IPv4 when available
	IP string

	// Port is the HTTP port the solver listens on
	Port int

	// Metadata contains the TXT record data.
	// Recognised keys: "path" (URL prefix), "version".
	Metadata map[string]string

	// DiscoveredAt is when the service was seen
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the service
func (s *Service) String() string {
	return fmt.Sprintf("Solver %s (%s) at %s", s.Instance, s.Hostname, s.URL())
}

// URL returns the solver base URL, including any advertised path prefix
func (s *Service) URL() string {
	u := "http://" + net.JoinHostPort(s.IP, strconv.Itoa(s.Port))
	if p := strings.Trim(s.GetMetadata("path"), "/"); p != "" {
		u += "/" + p
	}
	return u
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (s *Service) GetMetadata(key string) string {
	if s.Metadata == nil {
		return ""
	}
	return s.Metadata[key]
}

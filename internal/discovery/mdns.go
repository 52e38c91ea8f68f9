package discovery

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"

	"github.com/muurk/wordlebuddy/internal/logging"
)

const (
	// ServiceType is the mDNS service type solver backends advertise
	ServiceType = "_wordlebuddy._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for discovery
	DefaultScanTimeout = 5 * time.Second

	// DefaultPort is assumed when an advertisement carries no port
	DefaultPort = 8080
)

// Scanner handles mDNS solver discovery
type Scanner struct {
	// Timeout is the maximum time to wait for advertisements
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// Scan browses for solver services until the timeout or ctx ends.
// Services are returned in the order they were seen, one per instance.
func (s *Scanner) Scan(ctx context.Context) ([]*Service, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	c := newCollector()

	go func() {
		for {
			select {
			case entry, ok := <-entries:
				if !ok {
					return
				}
				c.add(parseServiceEntry(entry))
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()
	return c.services(), nil
}

// collector deduplicates services by instance name
type collector struct {
	mu    sync.Mutex
	order []string
	seen  map[string]*Service
}

func newCollector() *collector {
	return &collector{seen: make(map[string]*Service)}
}

func (c *collector) add(svc *Service) {
	if svc == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.seen[svc.Instance]; !ok {
		c.order = append(c.order, svc.Instance)
		logging.Debug("Discovered solver")
	}
	c.seen[svc.Instance] = svc
}

func (c *collector) services() []*Service {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*Service, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.seen[name])
	}
	return out
}

// parseServiceEntry converts a zeroconf service entry to a Service.
// Returns nil if the entry has no usable address.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Service {
	if entry == nil {
		return nil
	}

	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}

	instance := entry.Instance
	if instance == "" {
		instance = strings.TrimSuffix(entry.HostName, ".")
	}

	return &Service{
		Instance:     instance,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// Scan is a convenience function to scan with a custom timeout
func Scan(ctx context.Context, timeout time.Duration) ([]*Service, error) {
	scanner := NewScanner()
	if timeout > 0 {
		scanner.Timeout = timeout
	}
	return scanner.Scan(ctx)
}

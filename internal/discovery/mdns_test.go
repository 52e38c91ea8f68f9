package discovery

import (
	"net"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
)

func entry(instance, host string, port int, v4, v6 []net.IP, txt ...string) *zeroconf.ServiceEntry {
	return &zeroconf.ServiceEntry{
		ServiceRecord: zeroconf.ServiceRecord{Instance: instance, Service: ServiceType, Domain: ServiceDomain},
		HostName:      host,
		Port:          port,
		AddrIPv4:      v4,
		AddrIPv6:      v6,
		Text:          txt,
	}
}

func TestParseServiceEntry(t *testing.T) {
	tests := []struct {
		name         string
		entry        *zeroconf.ServiceEntry
		wantNil      bool
		wantInstance string
		wantIP       string
		wantPort     int
		wantURL      string
	}{
		{
			name:         "IPv4 solver",
			entry:        entry("kitchen", "pi4.local.", 8080, []net.IP{net.ParseIP("192.168.4.16")}, nil),
			wantInstance: "kitchen",
			wantIP:       "192.168.4.16",
			wantPort:     8080,
			wantURL:      "http://192.168.4.16:8080",
		},
		{
			name:         "path prefix in TXT",
			entry:        entry("lab", "lab.local.", 9000, []net.IP{net.ParseIP("10.0.0.5")}, nil, "path=/wordle/"),
			wantInstance: "lab",
			wantIP:       "10.0.0.5",
			wantPort:     9000,
			wantURL:      "http://10.0.0.5:9000/wordle",
		},
		{
			name:         "no port falls back to default",
			entry:        entry("den", "den.local.", 0, []net.IP{net.ParseIP("172.16.0.1")}, nil),
			wantInstance: "den",
			wantIP:       "172.16.0.1",
			wantPort:     DefaultPort,
			wantURL:      "http://172.16.0.1:8080",
		},
		{
			name:         "missing instance uses hostname",
			entry:        entry("", "solver.local.", 8080, []net.IP{net.ParseIP("192.168.1.9")}, nil),
			wantInstance: "solver.local",
			wantIP:       "192.168.1.9",
			wantPort:     8080,
			wantURL:      "http://192.168.1.9:8080",
		},
		{
			name:         "IPv6 only",
			entry:        entry("v6", "v6.local.", 8080, nil, []net.IP{net.ParseIP("fe80::1")}),
			wantInstance: "v6",
			wantIP:       "fe80::1",
			wantPort:     8080,
			wantURL:      "http://[fe80::1]:8080",
		},
		{
			name:         "prefers IPv4",
			entry:        entry("both", "both.local.", 8080, []net.IP{net.ParseIP("192.168.1.50")}, []net.IP{net.ParseIP("fe80::2")}),
			wantInstance: "both",
			wantIP:       "192.168.1.50",
			wantPort:     8080,
			wantURL:      "http://192.168.1.50:8080",
		},
		{
			name:    "no address",
			entry:   entry("ghost", "ghost.local.", 8080, nil, nil),
			wantNil: true,
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := parseServiceEntry(tt.entry)

			if tt.wantNil {
				if svc != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", svc)
				}
				return
			}
			if svc == nil {
				t.Fatal("parseServiceEntry() = nil, want service")
			}

			if svc.Instance != tt.wantInstance {
				t.Errorf("Instance = %v, want %v", svc.Instance, tt.wantInstance)
			}
			if svc.IP != tt.wantIP {
				t.Errorf("IP = %v, want %v", svc.IP, tt.wantIP)
			}
			if svc.Port != tt.wantPort {
				t.Errorf("Port = %v, want %v", svc.Port, tt.wantPort)
			}
			if got := svc.URL(); got != tt.wantURL {
				t.Errorf("URL() = %v, want %v", got, tt.wantURL)
			}
			if time.Since(svc.DiscoveredAt) > time.Second {
				t.Errorf("DiscoveredAt is not recent: %v", svc.DiscoveredAt)
			}
		})
	}
}

func TestParseServiceEntry_Metadata(t *testing.T) {
	svc := parseServiceEntry(entry("kitchen", "pi4.local.", 8080,
		[]net.IP{net.ParseIP("192.168.4.16")}, nil,
		"path=/", "version=1.2", "hardcore"))
	if svc == nil {
		t.Fatal("parseServiceEntry() = nil, want service")
	}

	want := map[string]string{"path": "/", "version": "1.2", "hardcore": ""}
	if len(svc.Metadata) != len(want) {
		t.Errorf("Metadata has %d entries, want %d", len(svc.Metadata), len(want))
	}
	for k, v := range want {
		if got, ok := svc.Metadata[k]; !ok || got != v {
			t.Errorf("Metadata[%q] = %q (present %v), want %q", k, got, ok, v)
		}
	}
	if svc.GetMetadata("missing") != "" {
		t.Error("GetMetadata(missing) should be empty")
	}
}

func TestCollector_Deduplicates(t *testing.T) {
	c := newCollector()
	ip := []net.IP{net.ParseIP("10.0.0.1")}

	c.add(parseServiceEntry(entry("a", "a.local.", 8080, ip, nil)))
	c.add(parseServiceEntry(entry("b", "b.local.", 8080, ip, nil)))
	c.add(parseServiceEntry(entry("a", "a.local.", 9090, ip, nil)))
	c.add(nil)

	got := c.services()
	if len(got) != 2 {
		t.Fatalf("services() returned %d entries, want 2", len(got))
	}
	if got[0].Instance != "a" || got[1].Instance != "b" {
		t.Errorf("order = %s,%s, want a,b", got[0].Instance, got[1].Instance)
	}
	if got[0].Port != 9090 {
		t.Errorf("a.Port = %d, want latest advertisement 9090", got[0].Port)
	}
}

func TestNewScanner(t *testing.T) {
	scanner := NewScanner()

	if scanner.Timeout != DefaultScanTimeout {
		t.Errorf("Timeout = %v, want %v", scanner.Timeout, DefaultScanTimeout)
	}
}

func TestService_String(t *testing.T) {
	svc := &Service{Instance: "kitchen", Hostname: "pi4.local.", IP: "10.0.0.2", Port: 8080}
	want := "Solver kitchen (pi4.local.) at http://10.0.0.2:8080"
	if got := svc.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

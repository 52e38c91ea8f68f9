// Package discovery finds wordle solver backends on the local network.
//
// Solvers that want to be found advertise a "_wordlebuddy._tcp" service over
// multicast DNS. The scanner browses for that service type for a fixed time and
// returns one Service per instance name, with the URL the solver client should
// use. An optional "path" TXT record adds a URL prefix.
//
// # Usage Example
//
//	services, err := discovery.Scan(ctx, 5*time.Second)
//	if err != nil {
//	    return err
//	}
//	for _, svc := range services {
//	    fmt.Println(svc.Instance, svc.URL())
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Solvers must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
package discovery

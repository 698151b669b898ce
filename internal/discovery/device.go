package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Keypad is a remote calcpad keypad server found on the network
type Keypad struct {
	// Instance is the mDNS instance name (e.g., "calcpad-kitchen")
	Instance string

	// Hostname is the mDNS hostname (e.g., "laptop.local.")
	Hostname string

	// IP is the preferred address (IPv4 when available)
	IP string

	// Port is the websocket server port
	Port int

	// Metadata contains the mDNS TXT record data
	// Common fields: "path=/ws", "version=v0.3.0", "repeat=noop"
	Metadata map[string]string

	// DiscoveredAt is when the keypad was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the keypad
func (k *Keypad) String() string {
	return fmt.Sprintf("calcpad keypad %q (%s) at %s", k.Instance, k.Hostname, net.JoinHostPort(k.IP, strconv.Itoa(k.Port)))
}

// URL returns the websocket URL of the keypad
func (k *Keypad) URL() string {
	path := k.GetMetadata("path")
	if path == "" {
		path = DefaultPath
	}
	return fmt.Sprintf("ws://%s%s", net.JoinHostPort(k.IP, strconv.Itoa(k.Port)), path)
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (k *Keypad) GetMetadata(key string) string {
	if k.Metadata == nil {
		return ""
	}
	return k.Metadata[key]
}

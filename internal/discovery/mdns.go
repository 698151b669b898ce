package discovery

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/calcpad/calcpad/internal/logging"
)

const (
	// ServiceType is the mDNS service type for calcpad keypads
	ServiceType = "_calcpad._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for keypad discovery
	DefaultScanTimeout = 3 * time.Second

	// DefaultPath is the websocket endpoint advertised when TXT has no path
	DefaultPath = "/ws"
)

// Advertisement is a registered mDNS service. Call Shutdown to withdraw it.
type Advertisement struct {
	server *zeroconf.Server
}

// Advertise registers a keypad server on port under the given instance name.
// txt entries are "key=value" strings published as TXT records.
func Advertise(instance string, port int, txt []string) (*Advertisement, error) {
	server, err := zeroconf.Register(instance, ServiceType, ServiceDomain, port, txt, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}

	logging.Info("Advertising keypad via mDNS",
		zap.String("instance", instance),
		zap.String("service", ServiceType),
		zap.Int("port", port),
		zap.Strings("txt", txt),
	)

	return &Advertisement{server: server}, nil
}

// Shutdown withdraws the advertisement
func (a *Advertisement) Shutdown() {
	if a == nil || a.server == nil {
		return
	}
	a.server.Shutdown()
	logging.Info("mDNS advertisement withdrawn")
}

// Scanner handles mDNS keypad discovery
type Scanner struct {
	// Timeout is the maximum time to wait for keypad discovery
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// Scan browses for keypads until the timeout expires or ctx is done
func (s *Scanner) Scan(ctx context.Context) ([]*Keypad, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	var (
		mu      sync.Mutex
		keypads []*Keypad
		seen    = make(map[string]bool)
	)

	entries := make(chan *zeroconf.ServiceEntry)
	go func() {
		for entry := range entries {
			keypad := s.parseServiceEntry(entry)
			if keypad == nil {
				continue
			}
			mu.Lock()
			if !seen[keypad.Instance] {
				seen[keypad.Instance] = true
				keypads = append(keypads, keypad)
			}
			mu.Unlock()
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()

	mu.Lock()
	defer mu.Unlock()
	result := make([]*Keypad, len(keypads))
	copy(result, keypads)
	return result, nil
}

// First returns the first keypad found, or an error if none answers in time
func (s *Scanner) First(ctx context.Context) (*Keypad, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	found := make(chan *Keypad, 1)
	go func() {
		for entry := range entries {
			if keypad := s.parseServiceEntry(entry); keypad != nil {
				select {
				case found <- keypad:
				default:
				}
				cancel()
				return
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	select {
	case keypad := <-found:
		return keypad, nil
	case <-ctx.Done():
		select {
		case keypad := <-found:
			return keypad, nil
		default:
		}
		return nil, fmt.Errorf("no keypad found within %s", s.Timeout)
	}
}

// parseServiceEntry converts a zeroconf service entry to a Keypad
// Returns nil if the entry has no usable address
func (s *Scanner) parseServiceEntry(entry *zeroconf.ServiceEntry) *Keypad {
	if entry == nil || entry.Instance == "" {
		return nil
	}

	// Prefer IPv4
	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	}
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" || entry.Port == 0 {
		return nil
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

	return &Keypad{
		Instance:     entry.Instance,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         entry.Port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

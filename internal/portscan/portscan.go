// Package portscan implements the TCP connect probe for a single
// (host, port) pair. A completed three-way handshake marks the port open;
// any dial failure, refusal, or timeout marks it closed. There is exactly
// one attempt per pair.
package portscan

import (
	"context"
	"net"
	"net/netip"
	"time"

	"github.com/lanscout/internal/detect"
	"github.com/lanscout/internal/metrics"
)

// OpenPort is one confirmed-open port on a host, together with whatever
// the service detector learned about it.
type OpenPort struct {
	Port    uint16 `json:"port"`
	Service string `json:"service"`
	Detail  string `json:"detail,omitempty"`
}

// Scanner probes ports with a bounded connect and hands open ports to
// the detector registry.
type Scanner struct {
	timeout  time.Duration
	registry *detect.Registry
}

// New builds a Scanner. connectTimeout bounds the handshake; the
// registry carries its own detection timeout.
func New(connectTimeout time.Duration, registry *detect.Registry) *Scanner {
	return &Scanner{timeout: connectTimeout, registry: registry}
}

// Scan attempts one TCP connect. On success it closes the probe
// connection, runs service detection on a fresh connection, and returns
// the described port. ok is false when the port is closed or filtered;
// the caller records nothing in that case.
func (s *Scanner) Scan(ctx context.Context, addr netip.Addr, port uint16) (OpenPort, bool) {
	dialer := net.Dialer{Timeout: s.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", netip.AddrPortFrom(addr, port).String())
	metrics.GetGlobalMetrics().RecordPortAttempt(err == nil)
	if err != nil {
		return OpenPort{}, false
	}
	// The handshake answered the only question this connection was for.
	// Detection negotiates its own connection per protocol.
	conn.Close()

	service, detail := s.registry.Detect(ctx, addr, port)
	return OpenPort{Port: port, Service: service, Detail: detail}, true
}

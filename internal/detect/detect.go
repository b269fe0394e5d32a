// Package detect identifies the service listening on an open TCP port.
// Identification is a strategy registry: well-known ports map to
// protocol-specific detectors and everything else falls through to a
// generic banner probe. Every detector performs at most one
// request/response exchange on a connection it opens itself, reads at most
// maxBannerBytes, and fails soft: any I/O, timeout, or protocol error is
// absorbed into the detector's generic label with no detail.
package detect

import (
	"context"
	"errors"
	"io"
	"net"
	"net/netip"
	"time"

	"github.com/lanscout/internal/metrics"
)

// maxBannerBytes bounds every detector read so a misbehaving peer cannot
// buffer unbounded data into the scanner.
const maxBannerBytes = 1024

// Detector identifies the service behind an open (host, port). It never
// returns an error; failure degrades to (generic label, "").
type Detector interface {
	// Name identifies the detector variant for logging and metrics.
	Name() string
	// Detect opens its own connection, performs a single bounded
	// exchange, and returns a best-effort service label and optional
	// detail string.
	Detect(ctx context.Context, addr netip.Addr, port uint16) (label, detail string)
}

// Registry maps well-known port numbers to detector variants. Ports
// without an entry dispatch to the generic banner detector. The registry
// is read-only after construction.
type Registry struct {
	byPort  map[uint16]Detector
	generic Detector
}

// NewRegistry builds the default registry. The timeout bounds each
// detector's dial and its single read/write exchange.
func NewRegistry(timeout time.Duration) *Registry {
	httpDet := &HTTPDetector{timeout: timeout}
	tlsDet := &TLSDetector{timeout: timeout}

	return &Registry{
		byPort: map[uint16]Detector{
			21:   &BannerDetector{label: "FTP", timeout: timeout},
			22:   &BannerDetector{label: "SSH", timeout: timeout},
			23:   &BannerDetector{label: "Telnet", timeout: timeout},
			80:   httpDet,
			443:  tlsDet,
			3306: &BannerDetector{label: "MySQL", timeout: timeout},
			8080: httpDet,
			8443: tlsDet,
		},
		generic: &GenericDetector{timeout: timeout},
	}
}

// Lookup returns the detector registered for a port, or the generic
// fallback when none is.
func (r *Registry) Lookup(port uint16) Detector {
	if d, ok := r.byPort[port]; ok {
		return d
	}
	return r.generic
}

// Detect dispatches to the detector registered for the port.
func (r *Registry) Detect(ctx context.Context, addr netip.Addr, port uint16) (string, string) {
	d := r.Lookup(port)
	label, detail := d.Detect(ctx, addr, port)
	metrics.GetGlobalMetrics().RecordDetection(d.Name())
	return label, detail
}

// dial opens a fresh TCP connection with the exchange deadline already
// set. Detectors never reuse the port scanner's connect-probe socket
// because the exchange they issue differs from a bare connect.
func dial(ctx context.Context, addr netip.Addr, port uint16, timeout time.Duration) (net.Conn, error) {
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", netip.AddrPortFrom(addr, port).String())
	if err != nil {
		return nil, err
	}
	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// readBanner performs one bounded read. A clean close before any data
// yields an empty string and no error.
func readBanner(conn net.Conn) (string, error) {
	buf := make([]byte, maxBannerBytes)
	n, err := conn.Read(buf)
	if n > 0 {
		return string(buf[:n]), nil
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return "", nil
}

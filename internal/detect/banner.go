package detect

import (
	"context"
	"net/netip"
	"strings"
	"time"
)

// BannerDetector handles protocols that announce themselves first (SSH,
// FTP, Telnet, MySQL): connect, wait for the greeting, report it
// verbatim as detail.
type BannerDetector struct {
	label   string
	timeout time.Duration
}

func (d *BannerDetector) Name() string { return "banner/" + strings.ToLower(d.label) }

func (d *BannerDetector) Detect(ctx context.Context, addr netip.Addr, port uint16) (string, string) {
	conn, err := dial(ctx, addr, port, d.timeout)
	if err != nil {
		return d.label, ""
	}
	defer conn.Close()

	banner, err := readBanner(conn)
	if err != nil {
		return d.label, ""
	}
	return d.label, strings.TrimSpace(banner)
}

// GenericDetector covers ports with no registered protocol. It nudges
// the peer with a newline and treats whatever comes back as the label; a
// silent or failed exchange yields the "unknown service" sentinel.
type GenericDetector struct {
	timeout time.Duration
}

const unknownService = "unknown service"

func (d *GenericDetector) Name() string { return "generic" }

func (d *GenericDetector) Detect(ctx context.Context, addr netip.Addr, port uint16) (string, string) {
	conn, err := dial(ctx, addr, port, d.timeout)
	if err != nil {
		return unknownService, ""
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("\n")); err != nil {
		return unknownService, ""
	}

	banner, err := readBanner(conn)
	if err != nil {
		return unknownService, ""
	}
	banner = strings.TrimSpace(banner)
	if banner == "" {
		return unknownService, ""
	}
	return banner, ""
}

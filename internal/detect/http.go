package detect

import (
	"context"
	"net/netip"
	"strings"
	"time"
)

// HTTPDetector issues a minimal GET and labels the service by the Server
// response header when the web server volunteers one.
type HTTPDetector struct {
	timeout time.Duration
}

func (d *HTTPDetector) Name() string { return "http" }

func (d *HTTPDetector) Detect(ctx context.Context, addr netip.Addr, port uint16) (string, string) {
	conn, err := dial(ctx, addr, port, d.timeout)
	if err != nil {
		return "HTTP", ""
	}
	defer conn.Close()

	request := "GET / HTTP/1.1\r\nHost: " + addr.String() + "\r\nConnection: close\r\n\r\n"
	if _, err := conn.Write([]byte(request)); err != nil {
		return "HTTP", ""
	}

	response, err := readBanner(conn)
	if err != nil || response == "" {
		return "HTTP", ""
	}

	if server := serverHeader(response); server != "" {
		return "HTTP (" + server + ")", ""
	}
	return "HTTP (unknown web server)", ""
}

// serverHeader extracts the value of the Server header from a raw
// response prefix. Matching is case-insensitive and tolerates a
// truncated header section.
func serverHeader(response string) string {
	for _, line := range strings.Split(response, "\r\n") {
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), "Server") {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

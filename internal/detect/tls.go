package detect

import (
	"context"
	"crypto/tls"
	"net/netip"
	"time"

	zx509 "github.com/zmap/zcrypto/x509"
)

// TLSDetector completes a TLS handshake and reports the certificate
// issuer as detail. Verification is skipped: the scanner records what a
// host presents, it does not judge trust.
type TLSDetector struct {
	timeout time.Duration
}

func (d *TLSDetector) Name() string { return "tls" }

func (d *TLSDetector) Detect(ctx context.Context, addr netip.Addr, port uint16) (string, string) {
	conn, err := dial(ctx, addr, port, d.timeout)
	if err != nil {
		return "HTTPS", ""
	}
	defer conn.Close()

	tlsConn := tls.Client(conn, &tls.Config{
		InsecureSkipVerify: true,
		ServerName:         addr.String(),
	})
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		return "HTTPS", ""
	}

	peers := tlsConn.ConnectionState().PeerCertificates
	if len(peers) == 0 {
		return "HTTPS (SSL/TLS)", ""
	}

	// Reparse the leaf with the lenient parser so certificates that the
	// standard library would only partially describe still yield a
	// usable issuer string.
	cert, err := zx509.ParseCertificate(peers[0].Raw)
	if err != nil {
		return "HTTPS (SSL/TLS)", ""
	}
	return "HTTPS (SSL/TLS)", "certificate issuer: " + cert.Issuer.String()
}

package portscan

import (
	"context"
	"net"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanscout/internal/detect"
)

func newScanner() *Scanner {
	return New(time.Second, detect.NewRegistry(time.Second))
}

func TestScan(t *testing.T) {
	t.Run("reports an open port with its service", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer ln.Close()
		go func() {
			for {
				conn, err := ln.Accept()
				if err != nil {
					return
				}
				go func(c net.Conn) {
					_, _ = c.Write([]byte("SSH-2.0-TestServer\r\n"))
					_ = c.Close()
				}(conn)
			}
		}()

		addrPort := netip.MustParseAddrPort(ln.Addr().String())

		// The ephemeral port is not in the detector registry, so the
		// generic detector runs and takes the banner as the label.
		open, ok := newScanner().Scan(context.Background(), addrPort.Addr(), addrPort.Port())

		require.True(t, ok)
		assert.Equal(t, addrPort.Port(), open.Port)
		assert.Equal(t, "SSH-2.0-TestServer", open.Service)
	})

	t.Run("reports nothing for a closed port", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		addrPort := netip.MustParseAddrPort(ln.Addr().String())
		require.NoError(t, ln.Close())

		_, ok := newScanner().Scan(context.Background(), addrPort.Addr(), addrPort.Port())

		assert.False(t, ok)
	})

	t.Run("reports nothing when the context is already cancelled", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer ln.Close()
		addrPort := netip.MustParseAddrPort(ln.Addr().String())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, ok := newScanner().Scan(ctx, addrPort.Addr(), addrPort.Port())

		assert.False(t, ok)
	})
}

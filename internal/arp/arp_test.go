package arp

import (
	"context"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Run("lowercases and converts hyphens", func(t *testing.T) {
		assert.Equal(t, "aa:bb:cc:dd:ee:ff", Normalize("AA-BB-CC-DD-EE-FF"))
	})

	t.Run("leaves canonical addresses alone", func(t *testing.T) {
		assert.Equal(t, "00:1a:2b:3c:4d:5e", Normalize("00:1a:2b:3c:4d:5e"))
	})
}

func TestParseOutput(t *testing.T) {
	t.Run("parses linux arp output", func(t *testing.T) {
		output := "Address                  HWtype  HWaddress           Flags Mask            Iface\n" +
			"192.168.1.1              ether   a4:2b:b0:c9:12:f0   C                     eth0\n"
		mac, ok := ParseOutput(output)
		require.True(t, ok)
		assert.Equal(t, "a4:2b:b0:c9:12:f0", mac)
	})

	t.Run("parses windows arp output", func(t *testing.T) {
		output := "Interface: 192.168.1.5 --- 0xb\n" +
			"  Internet Address      Physical Address      Type\n" +
			"  192.168.1.1           A4-2B-B0-C9-12-F0     dynamic\n"
		mac, ok := ParseOutput(output)
		require.True(t, ok)
		assert.Equal(t, "a4:2b:b0:c9:12:f0", mac)
	})

	t.Run("parses darwin arp output", func(t *testing.T) {
		output := "? (192.168.1.1) at a4:2b:b0:c9:12:f0 on en0 ifscope [ethernet]\n"
		mac, ok := ParseOutput(output)
		require.True(t, ok)
		assert.Equal(t, "a4:2b:b0:c9:12:f0", mac)
	})

	t.Run("handles single-digit octets", func(t *testing.T) {
		mac, ok := ParseOutput("? (10.0.0.1) at 0:1a:2b:3c:4d:5 on en0\n")
		require.True(t, ok)
		assert.Equal(t, "0:1a:2b:3c:4d:5", mac)
	})

	t.Run("reports no entry", func(t *testing.T) {
		cases := []string{
			"",
			"192.168.1.77 (192.168.1.77) -- no entry\n",
			"No ARP Entries Found.\n",
		}
		for _, output := range cases {
			_, ok := ParseOutput(output)
			assert.False(t, ok)
		}
	})
}

func TestNoEntryError(t *testing.T) {
	err := &NoEntryError{Addr: netip.MustParseAddr("10.0.0.9")}
	assert.Contains(t, err.Error(), "10.0.0.9")
}

func TestFunc(t *testing.T) {
	src := Func(func(_ context.Context, addr netip.Addr) (string, error) {
		return "de:ad:be:ef:00:01", nil
	})
	mac, err := src.Lookup(context.Background(), netip.MustParseAddr("10.0.0.1"))
	require.NoError(t, err)
	assert.Equal(t, "de:ad:be:ef:00:01", mac)
}

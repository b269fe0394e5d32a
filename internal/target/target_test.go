package target

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanscout/internal/errors"
)

func TestParse(t *testing.T) {
	t.Run("accepts a single IPv4 address", func(t *testing.T) {
		tgt, err := Parse("192.168.1.10")
		require.NoError(t, err)
		assert.True(t, tgt.IsSingle())
		assert.Equal(t, "192.168.1.10", tgt.String())
	})

	t.Run("accepts an IPv4 CIDR block", func(t *testing.T) {
		tgt, err := Parse("192.168.1.0/24")
		require.NoError(t, err)
		assert.False(t, tgt.IsSingle())
		assert.Equal(t, "192.168.1.0/24", tgt.String())
	})

	t.Run("rejects invalid specs", func(t *testing.T) {
		cases := []string{
			"",
			"not-an-address",
			"192.168.1.256",
			"192.168.1.0/33",
			"example.com",
			"2001:db8::1",
			"2001:db8::/64",
		}
		for _, spec := range cases {
			t.Run(spec, func(t *testing.T) {
				_, err := Parse(spec)
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.CodeTargetInvalid))
			})
		}
	})
}

func TestHosts(t *testing.T) {
	t.Run("single address yields exactly itself", func(t *testing.T) {
		tgt, err := Parse("10.0.0.5")
		require.NoError(t, err)

		hosts := tgt.Hosts()
		require.Len(t, hosts, 1)
		assert.Equal(t, netip.MustParseAddr("10.0.0.5"), hosts[0])
	})

	t.Run("slash 24 yields 254 hosts without network and broadcast", func(t *testing.T) {
		tgt, err := Parse("192.168.1.0/24")
		require.NoError(t, err)

		hosts := tgt.Hosts()
		require.Len(t, hosts, 254)
		assert.Equal(t, netip.MustParseAddr("192.168.1.1"), hosts[0])
		assert.Equal(t, netip.MustParseAddr("192.168.1.254"), hosts[len(hosts)-1])
		assert.NotContains(t, hosts, netip.MustParseAddr("192.168.1.0"))
		assert.NotContains(t, hosts, netip.MustParseAddr("192.168.1.255"))
	})

	t.Run("slash 31 yields both addresses", func(t *testing.T) {
		tgt, err := Parse("10.0.0.0/31")
		require.NoError(t, err)

		hosts := tgt.Hosts()
		require.Len(t, hosts, 2)
		assert.Equal(t, netip.MustParseAddr("10.0.0.0"), hosts[0])
		assert.Equal(t, netip.MustParseAddr("10.0.0.1"), hosts[1])
	})

	t.Run("slash 32 yields one address", func(t *testing.T) {
		tgt, err := Parse("172.16.0.1/32")
		require.NoError(t, err)

		hosts := tgt.Hosts()
		require.Len(t, hosts, 1)
		assert.Equal(t, netip.MustParseAddr("172.16.0.1"), hosts[0])
	})

	t.Run("hosts come back in ascending order", func(t *testing.T) {
		tgt, err := Parse("10.1.2.0/28")
		require.NoError(t, err)

		hosts := tgt.Hosts()
		for i := 1; i < len(hosts); i++ {
			assert.Negative(t, hosts[i-1].Compare(hosts[i]))
		}
	})
}

func TestSortAddrs(t *testing.T) {
	t.Run("sorts numerically not lexically", func(t *testing.T) {
		addrs := []netip.Addr{
			netip.MustParseAddr("192.168.1.10"),
			netip.MustParseAddr("192.168.1.2"),
			netip.MustParseAddr("192.168.1.9"),
		}
		SortAddrs(addrs)

		assert.Equal(t, []netip.Addr{
			netip.MustParseAddr("192.168.1.2"),
			netip.MustParseAddr("192.168.1.9"),
			netip.MustParseAddr("192.168.1.10"),
		}, addrs)
	})
}

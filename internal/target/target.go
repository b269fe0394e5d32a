// Package target parses scan target specifications and enumerates the
// candidate host addresses they cover. A target is either a single IPv4
// address or a CIDR block; blocks expand to their usable host addresses
// in ascending numeric order.
package target

import (
	"net/netip"
	"slices"

	"github.com/lanscout/internal/errors"
)

// Target is an immutable, validated scan target.
type Target struct {
	spec   string
	prefix netip.Prefix
	single bool
}

// Parse validates a target specification. Accepted forms are a bare IPv4
// address ("192.168.1.5") or an IPv4 CIDR block ("192.168.1.0/24").
// Anything else fails with a TARGET_INVALID error, the one fatal input
// error in the pipeline.
func Parse(spec string) (Target, error) {
	if addr, err := netip.ParseAddr(spec); err == nil {
		addr = addr.Unmap()
		if !addr.Is4() {
			return Target{}, errors.ErrInvalidTarget(spec)
		}
		return Target{
			spec:   spec,
			prefix: netip.PrefixFrom(addr, addr.BitLen()),
			single: true,
		}, nil
	}

	prefix, err := netip.ParsePrefix(spec)
	if err != nil {
		return Target{}, errors.ErrInvalidTarget(spec)
	}
	addr := prefix.Addr().Unmap()
	if !addr.Is4() {
		return Target{}, errors.ErrInvalidTarget(spec)
	}
	return Target{
		spec:   spec,
		prefix: netip.PrefixFrom(addr, prefix.Bits()).Masked(),
		single: prefix.Bits() == addr.BitLen(),
	}, nil
}

// String returns the original target specification.
func (t Target) String() string {
	return t.spec
}

// Prefix returns the covered address block. Single addresses are
// represented as a /32.
func (t Target) Prefix() netip.Prefix {
	return t.prefix
}

// IsSingle reports whether the target is a single address.
func (t Target) IsSingle() bool {
	return t.single
}

// Hosts enumerates the candidate host addresses in ascending numeric order.
// Blocks with more than two addresses exclude the network and broadcast
// addresses; /31 and /32 blocks yield all of their addresses, matching
// point-to-point and host-route conventions.
func (t Target) Hosts() []netip.Addr {
	if t.single {
		return []netip.Addr{t.prefix.Addr()}
	}

	base := addrToUint32(t.prefix.Addr())
	size := uint64(1) << (32 - t.prefix.Bits())

	first := uint64(base)
	last := first + size - 1
	if size > 2 {
		first++ // network address
		last--  // broadcast address
	}

	hosts := make([]netip.Addr, 0, last-first+1)
	for u := first; u <= last; u++ {
		hosts = append(hosts, uint32ToAddr(uint32(u)))
	}
	return hosts
}

func addrToUint32(addr netip.Addr) uint32 {
	b := addr.As4()
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func uint32ToAddr(u uint32) netip.Addr {
	return netip.AddrFrom4([4]byte{byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)})
}

// SortAddrs sorts host addresses in ascending numeric order in place.
// Pool completion order is nondeterministic, so every phase re-sorts
// its output before handing it on.
func SortAddrs(addrs []netip.Addr) {
	slices.SortFunc(addrs, netip.Addr.Compare)
}

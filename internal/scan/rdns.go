package scan

import (
	"context"
	"net/netip"
	"strings"
	"time"

	"github.com/miekg/dns"
)

// HostnameResolver maps an address to a display hostname. An empty
// string means no name is known; resolution never fails loudly.
type HostnameResolver interface {
	Resolve(ctx context.Context, addr netip.Addr) string
}

// HostnameFunc adapts a plain function to HostnameResolver.
type HostnameFunc func(ctx context.Context, addr netip.Addr) string

func (f HostnameFunc) Resolve(ctx context.Context, addr netip.Addr) string {
	return f(ctx, addr)
}

// RDNSResolver answers PTR queries against the system's configured
// nameservers. Every failure path returns "".
type RDNSResolver struct {
	client  *dns.Client
	servers []string
}

// NewRDNSResolver reads the system resolver configuration. A missing or
// unreadable resolv.conf yields a resolver that always reports no name.
func NewRDNSResolver(timeout time.Duration) *RDNSResolver {
	r := &RDNSResolver{
		client: &dns.Client{Timeout: timeout},
	}
	conf, err := dns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil {
		return r
	}
	for _, server := range conf.Servers {
		r.servers = append(r.servers, server+":"+conf.Port)
	}
	return r
}

// Resolve returns the first PTR name for addr, without the trailing
// dot, or "" when no nameserver has one.
func (r *RDNSResolver) Resolve(ctx context.Context, addr netip.Addr) string {
	if len(r.servers) == 0 {
		return ""
	}
	name, err := dns.ReverseAddr(addr.String())
	if err != nil {
		return ""
	}

	msg := new(dns.Msg)
	msg.SetQuestion(name, dns.TypePTR)

	for _, server := range r.servers {
		resp, _, err := r.client.ExchangeContext(ctx, msg, server)
		if err != nil || resp == nil || resp.Rcode != dns.RcodeSuccess {
			continue
		}
		for _, rr := range resp.Answer {
			if ptr, ok := rr.(*dns.PTR); ok {
				return strings.TrimSuffix(ptr.Ptr, ".")
			}
		}
	}
	return ""
}

package scan

import (
	"cmp"
	"net/netip"
	"slices"
	"time"

	"github.com/lanscout/internal/portscan"
	"github.com/lanscout/internal/target"
)

// HostRecord is everything a scan learned about one live host. MAC is
// the "unknown" sentinel when the link layer gave no answer, and
// Hostname is empty when reverse DNS is disabled or returned nothing.
type HostRecord struct {
	Addr     netip.Addr          `json:"address"`
	MAC      string              `json:"mac"`
	Hostname string              `json:"hostname,omitempty"`
	Ports    []portscan.OpenPort `json:"open_ports"`
}

// Result is the merged outcome of one scan run. Hosts is keyed by
// address so phase outputs merge without duplication; consumers iterate
// through SortedHosts for deterministic order.
type Result struct {
	RunID      string
	Target     string
	StartedAt  time.Time
	FinishedAt time.Time

	// Partial marks a run that was cancelled before all phases
	// finished. Everything recorded up to the cancellation point is
	// still present and valid.
	Partial bool

	Hosts map[netip.Addr]*HostRecord
}

// SortedHosts returns the host records in ascending numeric address
// order.
func (r *Result) SortedHosts() []*HostRecord {
	addrs := make([]netip.Addr, 0, len(r.Hosts))
	for addr := range r.Hosts {
		addrs = append(addrs, addr)
	}
	target.SortAddrs(addrs)

	hosts := make([]*HostRecord, len(addrs))
	for i, addr := range addrs {
		hosts[i] = r.Hosts[addr]
	}
	return hosts
}

// TotalOpenPorts counts open ports across all hosts.
func (r *Result) TotalOpenPorts() int {
	n := 0
	for _, rec := range r.Hosts {
		n += len(rec.Ports)
	}
	return n
}

// Duration is the wall-clock time the run took.
func (r *Result) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

func sortOpenPorts(ports []portscan.OpenPort) {
	slices.SortFunc(ports, func(a, b portscan.OpenPort) int {
		return cmp.Compare(a.Port, b.Port)
	})
}

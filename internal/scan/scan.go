// Package scan runs the three-phase sweep pipeline: liveness probing,
// link-layer and name resolution, then port scanning with service
// detection. Phases are separated by full barriers and each runs on its
// own bounded worker pool, so phase N+1 never begins until every task of
// phase N has returned. Cancelling the context stops new work at the next
// submission point; everything already recorded survives in the result.
package scan

import (
	"context"
	"net/netip"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lanscout/internal/arp"
	"github.com/lanscout/internal/config"
	"github.com/lanscout/internal/detect"
	"github.com/lanscout/internal/logging"
	"github.com/lanscout/internal/metrics"
	"github.com/lanscout/internal/portscan"
	"github.com/lanscout/internal/probe"
	"github.com/lanscout/internal/target"
	"github.com/lanscout/internal/workers"
)

// Phase names used in logs and metrics labels.
const (
	phaseProbe   = "probe"
	phaseResolve = "resolve"
	phaseScan    = "portscan"
)

// Orchestrator wires the phases together. The prober and ARP source are
// injected so tests can substitute deterministic fakes for the host
// network.
type Orchestrator struct {
	cfg       config.ScanningConfig
	prober    probe.Prober
	arpSource arp.Source
	scanner   *portscan.Scanner
	hostnames HostnameResolver
	log       *logging.Logger
}

// New builds an orchestrator from configuration. The detector registry
// and port scanner are constructed here; reverse DNS is attached only
// when enabled.
func New(cfg config.ScanningConfig, prober probe.Prober, arpSource arp.Source, log *logging.Logger) *Orchestrator {
	registry := detect.NewRegistry(cfg.DetectTimeout)
	o := &Orchestrator{
		cfg:       cfg,
		prober:    prober,
		arpSource: arpSource,
		scanner:   portscan.New(cfg.ConnectTimeout, registry),
		log:       log.WithComponent("scan"),
	}
	if cfg.ReverseDNS {
		o.hostnames = NewRDNSResolver(cfg.ResolveTimeout)
	}
	return o
}

// SetHostnameResolver overrides the reverse-DNS resolver. A nil resolver
// disables hostname lookup.
func (o *Orchestrator) SetHostnameResolver(r HostnameResolver) {
	o.hostnames = r
}

// Run executes a full sweep of the target. When ports is empty the
// well-known service port list is scanned. A cancelled context yields a
// partial result containing everything recorded before the cancellation.
func (o *Orchestrator) Run(ctx context.Context, tgt target.Target, ports []uint16) *Result {
	if len(ports) == 0 {
		ports = detect.DefaultPorts()
	}

	result := &Result{
		RunID:     uuid.New().String(),
		Target:    tgt.String(),
		StartedAt: time.Now(),
		Hosts:     make(map[netip.Addr]*HostRecord),
	}
	log := o.log.WithRunID(result.RunID).WithTarget(result.Target)

	hosts := tgt.Hosts()
	log.InfoPhase("Starting sweep", phaseProbe,
		"candidates", len(hosts), "ports", len(ports))

	alive := o.probePhase(ctx, log, hosts)
	log.InfoPhase("Liveness probing complete", phaseProbe, "alive", len(alive))

	macs, names := o.resolvePhase(ctx, log, alive)
	log.InfoPhase("Link-layer resolution complete", phaseResolve)

	openPorts := o.portScanPhase(ctx, log, alive, ports)
	log.InfoPhase("Port scanning complete", phaseScan,
		"open_ports", countPorts(openPorts))

	// Merge keyed by address. Every live host gets a record even when
	// nothing else was learned about it.
	for _, addr := range alive {
		rec := &HostRecord{
			Addr:  addr,
			MAC:   arp.Unknown,
			Ports: []portscan.OpenPort{},
		}
		if mac, ok := macs[addr]; ok {
			rec.MAC = mac
		}
		if name, ok := names[addr]; ok {
			rec.Hostname = name
		}
		if ports, ok := openPorts[addr]; ok {
			rec.Ports = ports
		}
		result.Hosts[addr] = rec
	}

	result.FinishedAt = time.Now()
	if ctx.Err() != nil {
		result.Partial = true
		log.Warn("Sweep cancelled, result is partial", "run_id", result.RunID)
	}
	return result
}

// probePhase pings every candidate and returns the live ones in
// ascending address order.
func (o *Orchestrator) probePhase(ctx context.Context, log *logging.Logger, hosts []netip.Addr) []netip.Addr {
	started := time.Now()
	pool := workers.New(phaseProbe, o.cfg.ProbeWorkers)

	var (
		mu    sync.Mutex
		alive []netip.Addr
	)
	for _, addr := range hosts {
		ok := pool.Submit(ctx, func(ctx context.Context) {
			up := o.prober.Probe(ctx, addr, o.cfg.ProbeTimeout)
			outcome := "down"
			if up {
				outcome = "up"
				mu.Lock()
				alive = append(alive, addr)
				mu.Unlock()
			}
			metrics.GetGlobalMetrics().RecordProbe(outcome)
			log.DebugHost("Probe finished", addr.String(), "up", up)
		})
		if !ok {
			break
		}
	}
	pool.Wait()

	target.SortAddrs(alive)
	metrics.GetGlobalMetrics().RecordPhaseDuration(phaseProbe, time.Since(started))
	return alive
}

// resolvePhase looks up the hardware address of every live host, plus
// its PTR name when reverse DNS is enabled. A failed lookup records the
// "unknown" sentinel instead of an error.
func (o *Orchestrator) resolvePhase(ctx context.Context, log *logging.Logger, alive []netip.Addr) (map[netip.Addr]string, map[netip.Addr]string) {
	started := time.Now()
	pool := workers.New(phaseResolve, o.cfg.ResolveWorkers)

	var (
		mu    sync.Mutex
		macs  = make(map[netip.Addr]string, len(alive))
		names = make(map[netip.Addr]string)
	)
	for _, addr := range alive {
		ok := pool.Submit(ctx, func(ctx context.Context) {
			lookupCtx, cancel := context.WithTimeout(ctx, o.cfg.ResolveTimeout)
			defer cancel()

			mac, err := o.arpSource.Lookup(lookupCtx, addr)
			outcome := "resolved"
			if err != nil || mac == "" {
				mac = arp.Unknown
				outcome = "unknown"
				log.DebugHost("No hardware address", addr.String(), "reason", err)
			}
			metrics.GetGlobalMetrics().RecordMACLookup(outcome)

			var name string
			if o.hostnames != nil {
				name = o.hostnames.Resolve(ctx, addr)
			}

			mu.Lock()
			macs[addr] = mac
			if name != "" {
				names[addr] = name
			}
			mu.Unlock()
		})
		if !ok {
			break
		}
	}
	pool.Wait()

	metrics.GetGlobalMetrics().RecordPhaseDuration(phaseResolve, time.Since(started))
	return macs, names
}

// portScanPhase probes the host x port cross product. Each pair is a
// separate pool task so a slow host cannot serialize the phase. Port
// lists come back sorted per host.
func (o *Orchestrator) portScanPhase(ctx context.Context, log *logging.Logger, alive []netip.Addr, ports []uint16) map[netip.Addr][]portscan.OpenPort {
	started := time.Now()
	pool := workers.New(phaseScan, o.cfg.ScanWorkers)

	var (
		mu   sync.Mutex
		open = make(map[netip.Addr][]portscan.OpenPort)
	)
submission:
	for _, addr := range alive {
		for _, port := range ports {
			ok := pool.Submit(ctx, func(ctx context.Context) {
				found, isOpen := o.scanner.Scan(ctx, addr, port)
				if !isOpen {
					return
				}
				log.DebugHost("Open port", addr.String(),
					"port", found.Port, "service", found.Service)
				mu.Lock()
				open[addr] = append(open[addr], found)
				mu.Unlock()
			})
			if !ok {
				break submission
			}
		}
	}
	pool.Wait()

	for addr := range open {
		sortOpenPorts(open[addr])
	}
	metrics.GetGlobalMetrics().RecordPhaseDuration(phaseScan, time.Since(started))
	return open
}

func countPorts(byHost map[netip.Addr][]portscan.OpenPort) int {
	n := 0
	for _, ports := range byHost {
		n += len(ports)
	}
	return n
}

// Package metrics provides Prometheus-based metrics collection for lanscout.
// It tracks probe, resolve, port-scan, and detection activity per scan run
// so long sweeps can be observed while they execute.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	// Namespace for all lanscout metrics.
	namespace = "lanscout"

	// Subsystems.
	subsystemProbe  = "probe"
	subsystemScan   = "scan"
	subsystemDetect = "detect"
)

// Metrics holds all Prometheus metric collectors for the scan pipeline.
type Metrics struct {
	// Probe phase
	probesTotal     *prometheus.CounterVec
	hostsDiscovered prometheus.Counter

	// Resolve phase
	macResolved *prometheus.CounterVec

	// Port-scan phase
	portsScanned prometheus.Counter
	portsOpen    prometheus.Counter

	// Detection
	detectionsTotal *prometheus.CounterVec

	// Phase timing
	phaseDuration *prometheus.HistogramVec

	// Pool observability
	inflightTasks *prometheus.GaugeVec

	registry *prometheus.Registry
}

// New creates a metrics instance with all collectors registered
// on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		probesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemProbe,
			Name:      "probes_total",
			Help:      "Liveness probes issued, labeled by outcome.",
		}, []string{"outcome"}),
		hostsDiscovered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemProbe,
			Name:      "hosts_discovered_total",
			Help:      "Hosts confirmed reachable.",
		}),
		macResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemScan,
			Name:      "mac_lookups_total",
			Help:      "Hardware address lookups, labeled by outcome.",
		}, []string{"outcome"}),
		portsScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemScan,
			Name:      "ports_scanned_total",
			Help:      "TCP connect attempts issued.",
		}),
		portsOpen: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemScan,
			Name:      "ports_open_total",
			Help:      "Ports that accepted a TCP connection.",
		}),
		detectionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemDetect,
			Name:      "detections_total",
			Help:      "Service detections, labeled by detector.",
		}, []string{"detector"}),
		phaseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystemScan,
			Name:      "phase_duration_seconds",
			Help:      "Wall-clock duration of each pipeline phase.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
		}, []string{"phase"}),
		inflightTasks: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystemScan,
			Name:      "inflight_tasks",
			Help:      "Tasks currently executing per worker pool.",
		}, []string{"pool"}),
		registry: registry,
	}

	registry.MustRegister(
		m.probesTotal,
		m.hostsDiscovered,
		m.macResolved,
		m.portsScanned,
		m.portsOpen,
		m.detectionsTotal,
		m.phaseDuration,
		m.inflightTasks,
	)
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return m
}

// Registry returns the underlying Prometheus registry for embedding
// (e.g. behind a promhttp handler in a host application).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordProbe records a liveness probe outcome ("up" or "down").
func (m *Metrics) RecordProbe(outcome string) {
	m.probesTotal.WithLabelValues(outcome).Inc()
	if outcome == "up" {
		m.hostsDiscovered.Inc()
	}
}

// RecordMACLookup records a hardware address lookup outcome
// ("resolved" or "unknown").
func (m *Metrics) RecordMACLookup(outcome string) {
	m.macResolved.WithLabelValues(outcome).Inc()
}

// RecordPortAttempt records a TCP connect attempt and whether it succeeded.
func (m *Metrics) RecordPortAttempt(open bool) {
	m.portsScanned.Inc()
	if open {
		m.portsOpen.Inc()
	}
}

// RecordDetection records a service detection by detector name.
func (m *Metrics) RecordDetection(detector string) {
	m.detectionsTotal.WithLabelValues(detector).Inc()
}

// RecordPhaseDuration records the wall-clock duration of a pipeline phase.
func (m *Metrics) RecordPhaseDuration(phase string, d time.Duration) {
	m.phaseDuration.WithLabelValues(phase).Observe(d.Seconds())
}

// SetInflight sets the number of currently executing tasks for a pool.
func (m *Metrics) SetInflight(pool string, n int) {
	m.inflightTasks.WithLabelValues(pool).Set(float64(n))
}

var (
	globalMetrics *Metrics
	globalOnce    sync.Once
)

// GetGlobalMetrics returns the process-wide metrics instance,
// creating it on first use.
func GetGlobalMetrics() *Metrics {
	globalOnce.Do(func() {
		globalMetrics = New()
	})
	return globalMetrics
}

package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lanscout/internal/logging"
	"github.com/lanscout/internal/metrics"
)

const metricsShutdownGrace = 2 * time.Second

// serveMetrics exposes the scan counters on /metrics for the lifetime
// of the run. Scans are short-lived, so this exists mainly for sweeps of
// large ranges that a Prometheus instance wants to watch in flight.
func serveMetrics(addr string, log *logging.Logger) (shutdown func()) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(
		metrics.GetGlobalMetrics().Registry(),
		promhttp.HandlerOpts{},
	))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("Metrics endpoint listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Metrics endpoint failed", "addr", addr, "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownGrace)
		defer cancel()
		_ = server.Shutdown(ctx)
	}
}

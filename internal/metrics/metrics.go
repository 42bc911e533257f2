// Package metrics provides Prometheus metrics for the gallery session.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	directoryLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rgal_directory_loads_total",
			Help: "Total number of directory loads by outcome",
		},
		[]string{"outcome"},
	)

	directoryLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rgal_directory_load_duration_seconds",
			Help:    "Time spent enumerating and reading one directory",
			Buckets: prometheus.DefBuckets,
		},
	)

	entryReadFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rgal_entry_read_failures_total",
			Help: "Total number of per-entry content reads that failed",
		},
	)

	locatorsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rgal_locators_created_total",
			Help: "Total number of resource locators created",
		},
	)

	locatorsReleasedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rgal_locators_released_total",
			Help: "Total number of resource locators released",
		},
	)

	locatorsLive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rgal_locators_live",
			Help: "Number of resource locators currently live",
		},
	)

	staleLoadsDiscardedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rgal_stale_loads_discarded_total",
			Help: "Total number of load results dropped because a newer navigation started",
		},
	)
)

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordDirectoryLoad records one completed directory load.
func RecordDirectoryLoad(duration time.Duration, success bool) {
	outcome := "ok"
	if !success {
		outcome = "error"
	}
	directoryLoadsTotal.WithLabelValues(outcome).Inc()
	directoryLoadDuration.Observe(duration.Seconds())
}

// RecordEntryReadFailure counts one failed per-entry read.
func RecordEntryReadFailure() {
	entryReadFailuresTotal.Inc()
}

// RecordLocatorCreated counts a created locator.
func RecordLocatorCreated() {
	locatorsCreatedTotal.Inc()
	locatorsLive.Inc()
}

// RecordLocatorReleased counts a released locator.
func RecordLocatorReleased() {
	locatorsReleasedTotal.Inc()
	locatorsLive.Dec()
}

// RecordStaleLoadDiscarded counts a load result that arrived too late.
func RecordStaleLoadDiscarded() {
	staleLoadsDiscardedTotal.Inc()
}

// Server exposes /metrics on a separate listener.
type Server struct {
	srv *http.Server
}

// StartServer begins serving metrics on addr in the background. It returns nil
// when addr is empty.
func StartServer(addr string, onError func(error)) *Server {
	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) && onError != nil {
			onError(err)
		}
	}()
	return &Server{srv: srv}
}

// Close stops the metrics listener.
func (s *Server) Close() error {
	if s == nil || s.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

package service

import (
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the
// scheduling engine.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	runTotal        *prometheus.CounterVec
	runDuration     prometheus.Histogram
	placementsTotal prometheus.Counter
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
}

// NewMetricsService registers the engine collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	runTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduling_runs_total",
		Help: "Total scheduling runs by outcome",
	}, []string{"outcome"})

	runDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "scheduling_run_duration_seconds",
		Help:    "Duration of scheduling runs in seconds",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
	})

	placementsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scheduling_placements_total",
		Help: "Total students placed by the automatic run",
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "board_cache_hits_total",
		Help: "Total schedule board cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "board_cache_misses_total",
		Help: "Total schedule board cache misses",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(runTotal, runDuration, placementsTotal, cacheHits, cacheMisses, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		runTotal:        runTotal,
		runDuration:     runDuration,
		placementsTotal: placementsTotal,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveRun records one scheduling run.
func (m *MetricsService) ObserveRun(outcome string, duration time.Duration, placed int) {
	if m == nil {
		return
	}
	m.runTotal.WithLabelValues(outcome).Inc()
	m.runDuration.Observe(duration.Seconds())
	if placed > 0 {
		m.placementsTotal.Add(float64(placed))
	}
}

// RecordCacheOperation records a board cache lookup.
func (m *MetricsService) RecordCacheOperation(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheHits.Inc()
	} else {
		m.cacheMisses.Inc()
	}
}

package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "fibseq"

// Metrics holds the Prometheus collectors of one server instance. Each
// instance owns its registry, so several servers (or tests) can coexist.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	activeRequests   prometheus.Gauge
	requestsTotal    *prometheus.CounterVec
	requestDuration  prometheus.Histogram
	responsesByKind  *prometheus.CounterVec
	liveTerms        prometheus.Counter
	rejected         prometheus.Counter
	cacheCeiling     prometheus.Gauge
	cacheTerms       prometheus.Gauge
	cacheExtensions  prometheus.Counter
	extensionSeconds prometheus.Histogram
}

// NewMetrics creates the collectors and registers them, together with the Go
// runtime and process collectors, on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "active_requests",
			Help:      "Number of HTTP requests currently being served.",
		}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "requests_total",
			Help:      "Total HTTP requests by status code.",
		}, []string{"code"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		responsesByKind: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "sequence_responses_total",
			Help:      "Sequence responses by kind (empty, cached, live, invalid).",
		}, []string{"kind"}),
		liveTerms: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "live_terms_total",
			Help:      "Terms computed past the cache ceiling.",
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rejected_requests_total",
			Help:      "Requests abandoned while waiting for a worker slot.",
		}),
		cacheCeiling: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "cache_ceiling_terms",
			Help:      "Configured maximum number of cached terms.",
		}),
		cacheTerms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "cache_materialized_terms",
			Help:      "Number of terms currently cached.",
		}),
		cacheExtensions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_extensions_total",
			Help:      "Number of committed cache extensions.",
		}),
		extensionSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "cache_extension_duration_seconds",
			Help:      "Time spent generating terms during a cache extension.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 12),
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.activeRequests,
		m.requestsTotal,
		m.requestDuration,
		m.responsesByKind,
		m.liveTerms,
		m.rejected,
		m.cacheCeiling,
		m.cacheTerms,
		m.cacheExtensions,
		m.extensionSeconds,
	)
	// Pre-create the status label so the family is exported before traffic.
	m.requestsTotal.WithLabelValues(strconv.Itoa(http.StatusOK))
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
	return m
}

// IncrementActiveRequests increments the in-flight gauge.
func (m *Metrics) IncrementActiveRequests() { m.activeRequests.Inc() }

// DecrementActiveRequests decrements the in-flight gauge.
func (m *Metrics) DecrementActiveRequests() { m.activeRequests.Dec() }

// ObserveRequest records a finished HTTP request.
func (m *Metrics) ObserveRequest(code int, elapsed time.Duration) {
	m.requestsTotal.WithLabelValues(strconv.Itoa(code)).Inc()
	m.requestDuration.Observe(elapsed.Seconds())
}

// ObserveResponse records the kind of a sequence response and its live terms.
func (m *Metrics) ObserveResponse(kind string, liveTerms int) {
	m.responsesByKind.WithLabelValues(kind).Inc()
	if liveTerms > 0 {
		m.liveTerms.Add(float64(liveTerms))
	}
}

// ObserveRejected records a request that gave up waiting for a worker slot.
func (m *Metrics) ObserveRejected() { m.rejected.Inc() }

// SetCacheCeiling publishes the configured cache ceiling.
func (m *Metrics) SetCacheCeiling(ceiling int) { m.cacheCeiling.Set(float64(ceiling)) }

// ObserveExtension matches sequence.ExtendObserver and records a committed
// cache extension.
func (m *Metrics) ObserveExtension(_, to int, elapsed time.Duration) {
	m.cacheTerms.Set(float64(to))
	m.cacheExtensions.Inc()
	m.extensionSeconds.Observe(elapsed.Seconds())
}

// WritePrometheus serves the registry in the Prometheus text format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

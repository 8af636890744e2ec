// Package metrics exposes prometheus collectors for the entry store and the
// HTTP API.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"bodycomp/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	registry  *prometheus.Registry
	mutations *prometheus.CounterVec
	entries   prometheus.Gauge
	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bodycomp",
			Name:      "entry_mutations_total",
			Help:      "Entry store mutations by operation and result.",
		}, []string{"op", "result"}),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bodycomp",
			Name:      "entries",
			Help:      "Number of entries in the collection.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bodycomp",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status code.",
		}, []string{"method", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "bodycomp",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
	m.registry.MustRegister(
		m.mutations, m.entries, m.requests, m.latency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Mutation counts one entry store operation.
func (m *Metrics) Mutation(op string, err error) {
	m.mutations.WithLabelValues(op, Result(err)).Inc()
}

// EntryCount sets the collection size gauge.
func (m *Metrics) EntryCount(n int) {
	m.entries.Set(float64(n))
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method string, status int, d time.Duration) {
	m.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(method).Observe(d.Seconds())
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Result maps an operation error to a low-cardinality label value.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrDuplicateDate):
		return "duplicate_date"
	case errors.Is(err, domain.ErrEntryNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrPersistence):
		return "persistence"
	case errors.Is(err, domain.ErrInvalidImportFormat):
		return "invalid_import"
	case errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidNumericInput),
		errors.Is(err, domain.ErrInvalidCircumference):
		return "invalid"
	default:
		return "error"
	}
}

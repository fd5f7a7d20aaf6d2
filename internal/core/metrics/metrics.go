package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the prometheus collectors for the claims pipeline.
// Each instance owns its registry so tests can run in isolation.
type Metrics struct {
	registry *prometheus.Registry

	// RefreshTotal counts refresh cycles by result (success, error, skipped).
	RefreshTotal *prometheus.CounterVec
	// RefreshDuration observes the duration of fetch-normalize-replace cycles.
	RefreshDuration prometheus.Histogram
	// ClaimsLoaded tracks the size of the current canonical record list.
	ClaimsLoaded prometheus.Gauge
	// RowsDropped counts source rows discarded during normalization.
	RowsDropped prometheus.Counter
}

// New creates a Metrics instance with all collectors registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	reg.MustRegister(collectors.NewGoCollector())

	return &Metrics{
		registry: reg,
		RefreshTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "claims_refresh_total",
			Help: "Number of refresh cycles by result.",
		}, []string{"result"}),
		RefreshDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "claims_refresh_duration_seconds",
			Help:    "Duration of refresh cycles.",
			Buckets: prometheus.DefBuckets,
		}),
		ClaimsLoaded: factory.NewGauge(prometheus.GaugeOpts{
			Name: "claims_loaded",
			Help: "Number of claims currently held by the store.",
		}),
		RowsDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "claims_rows_dropped_total",
			Help: "Number of source rows discarded during normalization.",
		}),
	}
}

// ObserveRefresh records one refresh cycle outcome.
func (m *Metrics) ObserveRefresh(result string, duration time.Duration) {
	m.RefreshTotal.WithLabelValues(result).Inc()
	m.RefreshDuration.Observe(duration.Seconds())
}

// Handler returns the HTTP handler exposing the registry in the
// prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CatalogMetrics records feed loading and search health.
type CatalogMetrics struct {
	fetchAttempts  *prometheus.CounterVec
	productsLoaded prometheus.Gauge
	rowsDropped    prometheus.Counter
	reloads        prometheus.Counter
	searchDuration prometheus.Histogram
	searchResults  prometheus.Histogram
}

// NewCatalogMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered, which suits tests.
func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	m := &CatalogMetrics{
		fetchAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "feed",
			Name:      "fetch_attempts_total",
			Help:      "Feed fetch attempts by result.",
		}, []string{"result"}),
		productsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "storefront",
			Subsystem: "catalog",
			Name:      "products",
			Help:      "Products in the current catalog.",
		}),
		rowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "catalog",
			Name:      "rows_dropped_total",
			Help:      "Feed rows rejected for a missing identifier or price.",
		}),
		reloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "catalog",
			Name:      "reloads_total",
			Help:      "Successful catalog loads.",
		}),
		searchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "storefront",
			Subsystem: "search",
			Name:      "duration_seconds",
			Help:      "Time spent ranking and filtering a catalog query.",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
		searchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "storefront",
			Subsystem: "search",
			Name:      "results",
			Help:      "Matches per catalog query before pagination.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.fetchAttempts,
			m.productsLoaded,
			m.rowsDropped,
			m.reloads,
			m.searchDuration,
			m.searchResults,
		)
	}
	return m
}

// ObserveFetch counts one feed fetch attempt by its result label.
func (m *CatalogMetrics) ObserveFetch(result string) {
	if m == nil {
		return
	}
	m.fetchAttempts.WithLabelValues(result).Inc()
}

// ObserveLoad records a successful catalog load.
func (m *CatalogMetrics) ObserveLoad(products, dropped int) {
	if m == nil {
		return
	}
	m.reloads.Inc()
	m.productsLoaded.Set(float64(products))
	m.rowsDropped.Add(float64(dropped))
}

// ObserveSearch records one catalog query.
func (m *CatalogMetrics) ObserveSearch(d time.Duration, results int) {
	if m == nil {
		return
	}
	m.searchDuration.Observe(d.Seconds())
	m.searchResults.Observe(float64(results))
}

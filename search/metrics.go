package search

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metric names as constants for consistency.
const (
	MetricSearchesTotal     = "mediarank_searches_total"
	MetricSearchErrorsTotal = "mediarank_search_errors_total"
	MetricSearchDuration    = "mediarank_search_duration_seconds"
	MetricSearchResults     = "mediarank_search_results"
	MetricSearchCandidates  = "mediarank_search_candidates"
)

// Error stage labels.
const (
	StageLoad   = "load"
	StageCancel = "cancel"
)

// Metrics contains Prometheus metrics for search operations.
// All operations are thread-safe.
type Metrics struct {
	searchesTotal  prometheus.Counter
	searchErrors   *prometheus.CounterVec
	searchDuration prometheus.Histogram
	resultCount    prometheus.Histogram
	candidateCount prometheus.Gauge
}

// NewMetrics creates and returns a new Metrics instance with all collectors initialized.
// The metrics are not registered; call Register to register them with a registry.
func NewMetrics() *Metrics {
	return &Metrics{
		searchesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: MetricSearchesTotal,
				Help: "Total number of completed searches",
			},
		),
		searchErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricSearchErrorsTotal,
				Help: "Total number of failed searches by stage",
			},
			[]string{"stage"},
		),
		searchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    MetricSearchDuration,
				Help:    "Histogram of search duration in seconds, candidate load included",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
			},
		),
		resultCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    MetricSearchResults,
				Help:    "Histogram of ranked result counts per search",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
			},
		),
		candidateCount: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: MetricSearchCandidates,
				Help: "Number of candidates loaded by the most recent search",
			},
		),
	}
}

// Register registers all metrics with the given registry.
// Returns an error if registration fails.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveSearch records one completed search.
func (m *Metrics) ObserveSearch(seconds float64, candidates, results int) {
	m.searchesTotal.Inc()
	m.searchDuration.Observe(seconds)
	m.resultCount.Observe(float64(results))
	m.candidateCount.Set(float64(candidates))
}

// IncSearchErrors increments the search errors counter.
// stage: where the search failed (StageLoad or StageCancel)
func (m *Metrics) IncSearchErrors(stage string) {
	m.searchErrors.WithLabelValues(stage).Inc()
}

// Collectors returns all Prometheus collectors for testing.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.searchesTotal,
		m.searchErrors,
		m.searchDuration,
		m.resultCount,
		m.candidateCount,
	}
}

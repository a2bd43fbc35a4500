package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "market_radar"

// Metrics groups the collectors for feed collection and scoring. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	articlesCollected *prometheus.CounterVec
	articlesFiltered  *prometheus.CounterVec
	sourceFailures    *prometheus.CounterVec
	scoringCalls      *prometheus.CounterVec
	scoringDuration   *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		articlesCollected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "articles_collected_total",
			Help:      "Articles collected within the lookback window, by source.",
		}, []string{"source"}),
		articlesFiltered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "articles_filtered_total",
			Help:      "Articles dropped by source filters, by source.",
		}, []string{"source"}),
		sourceFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_failures_total",
			Help:      "Feed sources that could not be fetched or parsed.",
		}, []string{"source"}),
		scoringCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scoring_calls_total",
			Help:      "Scoring calls by model and outcome.",
		}, []string{"model", "outcome"}),
		scoringDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scoring_duration_seconds",
			Help:      "Latency of scoring calls by model.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 60},
		}, []string{"model"}),
	}

	m.registry.MustRegister(
		m.articlesCollected,
		m.articlesFiltered,
		m.sourceFailures,
		m.scoringCalls,
		m.scoringDuration,
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveSource(source string, collected, filtered int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.sourceFailures.WithLabelValues(source).Inc()
		return
	}
	m.articlesCollected.WithLabelValues(source).Add(float64(collected))
	m.articlesFiltered.WithLabelValues(source).Add(float64(filtered))
}

func (m *Metrics) ObserveScoring(model, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.scoringCalls.WithLabelValues(model, outcome).Inc()
	m.scoringDuration.WithLabelValues(model).Observe(duration.Seconds())
}

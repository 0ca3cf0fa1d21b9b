// Package metrics exposes Prometheus instruments for persona generation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AI call outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeFailed  = "failed"
	OutcomeSkipped = "skipped"
)

// Metrics provides observability for persona generation.
type Metrics struct {
	// Personas generated by outcome
	Generated *prometheus.CounterVec

	// End-to-end generation latency
	GenerateLatency prometheus.Histogram

	// AI collaborator outcomes by call kind ("story", "image")
	AICalls *prometheus.CounterVec

	// Datasets that failed to load and fell back
	DatasetDegraded *prometheus.CounterVec
}

// New registers all persona metrics with reg. A nil reg uses the default
// registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Generated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "zhpersona_personas_generated_total",
			Help: "Total persona generation attempts by outcome",
		}, []string{"outcome"}),

		GenerateLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "zhpersona_generate_duration_seconds",
			Help:    "Duration of persona generation including optional AI calls",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 1, 10, 60},
		}),

		AICalls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "zhpersona_ai_calls_total",
			Help: "AI collaborator calls by kind and outcome",
		}, []string{"kind", "outcome"}),

		DatasetDegraded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "zhpersona_dataset_degraded_total",
			Help: "Datasets that failed to load and degraded to fallbacks",
		}, []string{"dataset"}),
	}
}

// ObserveGenerate records one generation attempt.
func (m *Metrics) ObserveGenerate(err error, d time.Duration) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeFailed
	}
	m.Generated.WithLabelValues(outcome).Inc()
	m.GenerateLatency.Observe(d.Seconds())
}

// IncrementAI records an AI collaborator call.
func (m *Metrics) IncrementAI(kind, outcome string) {
	if m != nil {
		m.AICalls.WithLabelValues(kind, outcome).Inc()
	}
}

// IncrementDegraded records a dataset falling back.
func (m *Metrics) IncrementDegraded(dataset string) {
	if m != nil {
		m.DatasetDegraded.WithLabelValues(dataset).Inc()
	}
}

// Package metrics exports expansion counters to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/neurocontainers/recipekit/pkg/domain"
)

// Recorder holds the expansion metrics on its own registry.
type Recorder struct {
	registry   *prometheus.Registry
	expansions *prometheus.CounterVec
	demotions  *prometheus.CounterVec
	invalid    *prometheus.CounterVec
	children   *prometheus.HistogramVec
}

// New creates a Recorder with its collectors registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		expansions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recipekit_expansions_total",
				Help: "Total number of custom group expansions",
			},
			[]string{"key"},
		),
		demotions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recipekit_demotions_total",
				Help: "Total number of custom groups demoted to plain groups",
			},
			[]string{"key"},
		),
		invalid: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recipekit_invalid_arguments_total",
				Help: "Total number of rejected custom group argument sets",
			},
			[]string{"key"},
		),
		children: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "recipekit_expansion_children",
				Help:    "Number of directives produced by an expansion",
				Buckets: prometheus.LinearBuckets(1, 2, 8),
			},
			[]string{"key"},
		),
	}
	r.registry.MustRegister(r.expansions, r.demotions, r.invalid, r.children)
	return r
}

// Hooks returns expansion hooks that record into r.
func (r *Recorder) Hooks() domain.ExpansionHooks {
	return domain.ExpansionHooks{
		OnExpand: func(e *domain.ExpansionEvent) {
			r.expansions.WithLabelValues(e.Key).Inc()
			r.children.WithLabelValues(e.Key).Observe(float64(e.Children))
		},
		OnDemote: func(e *domain.ExpansionEvent) {
			r.demotions.WithLabelValues(e.Key).Inc()
		},
		OnInvalid: func(e *domain.ExpansionEvent) {
			r.invalid.WithLabelValues(e.Key).Inc()
		},
	}
}

// Handler serves the metrics in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

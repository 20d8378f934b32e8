// Package metrics exposes the pipeline's Prometheus instrumentation.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Set bundles the pipeline collectors with their private registry.
type Set struct {
	registry *prometheus.Registry

	// LeavesBuilt counts the stance leaves attached to the tree during Load.
	LeavesBuilt prometheus.Counter

	// AggregationSeconds observes the wall time of one AverageUp pass,
	// labeled by statistic name.
	AggregationSeconds *prometheus.HistogramVec

	// RestructuresTotal counts completed tree restructures.
	RestructuresTotal prometheus.Counter
}

// New creates and registers the pipeline collectors.
func New() *Set {
	s := &Set{
		registry: prometheus.NewRegistry(),
		LeavesBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pedarprobe_leaves_built_total",
			Help: "Stance leaves attached to the data tree.",
		}),
		AggregationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pedarprobe_aggregation_seconds",
			Help:    "Wall time of one bottom-up aggregation pass.",
			Buckets: prometheus.DefBuckets,
		}, []string{"stat"}),
		RestructuresTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pedarprobe_restructures_total",
			Help: "Completed tree restructures.",
		}),
	}
	s.registry.MustRegister(s.LeavesBuilt, s.AggregationSeconds, s.RestructuresTotal)
	return s
}

// Handler serves the registry in Prometheus exposition format.
func (s *Set) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
}

package projection

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Computations counts handled requests by endpoint and outcome.
var Computations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "feasibility",
	Subsystem: "projection",
	Name:      "requests_total",
	Help:      "Projection API requests by endpoint and outcome.",
}, []string{"endpoint", "outcome"})

// ComputeDuration tracks the time spent in one projection pass.
var ComputeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "feasibility",
	Subsystem: "projection",
	Name:      "compute_seconds",
	Help:      "Duration of a projection pass in seconds.",
	Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
})

// IssuesReported counts validation issues returned with results, by code.
var IssuesReported = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "feasibility",
	Subsystem: "projection",
	Name:      "issues_total",
	Help:      "Validation issues reported with computed results.",
}, []string{"code"})

package store

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"contacttrace/internal/cases/models"
)

var (
	pipelineDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "contacttrace_cases_pipeline_duration_seconds",
		Help:    "Latency of case store pipelines by operation",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
	}, []string{"op"})

	batchOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "contacttrace_cases_batch_outcomes_total",
		Help: "Pipelined case store writes by operation and outcome",
	}, []string{"op", "outcome"})
)

func observe(op string, start time.Time) {
	pipelineDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func countOutcome(op string, outcome models.BatchOutcome) {
	batchOutcomes.WithLabelValues(op, outcome.String()).Inc()
}

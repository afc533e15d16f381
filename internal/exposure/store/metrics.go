package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	inFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "contacttrace_exposure_statements_in_flight",
		Help: "Relational statements currently executing in a bounded fan-out",
	}, []string{"op"})

	fanoutDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "contacttrace_exposure_fanout_duration_seconds",
		Help:    "Duration of bounded relational fan-outs by operation and result",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"op", "result"}) // result: "ok", "partial", "error"

	purgedInteractions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "contacttrace_interactions_purged_total",
		Help: "Expired relational interaction rows deleted",
	})
)

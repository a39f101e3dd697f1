package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics
var (
	loadAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_load_attempts_total",
		Help: "Load cascade attempts by tier and outcome",
	}, []string{"tier", "status"})

	loadDurationHistogram = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "folio_load_duration_seconds",
		Help:    "Time to resolve the content document through the load cascade",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
	}, []string{"source"})

	mutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_mutations_total",
		Help: "Content mutations by kind and outcome",
	}, []string{"kind", "status"})

	persistOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_persist_operations_total",
		Help: "Persistence writes by target and outcome",
	}, []string{"target", "status"})

	cachePayloadBytes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "folio_cache_payload_bytes",
		Help: "Size of the most recent cache payload in bytes",
	})

	changeLogEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "folio_changelog_entries",
		Help: "Entries currently held in the change log",
	})
)

const (
	statusSuccess = "success"
	statusFailure = "failure"
	statusSkipped = "skipped"
)

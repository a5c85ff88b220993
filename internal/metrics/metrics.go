// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ItineraryRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "itinerary_job_runs_total",
			Help: "Total number of itinerary job runs by outcome",
		},
		[]string{"status"},
	)

	ItineraryPairs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "itinerary_pairs_total",
			Help: "Total number of (window, duration) pairs processed by outcome",
		},
		[]string{"outcome"},
	)

	ItineraryPairDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "itinerary_pair_duration_seconds",
			Help:    "Duration of composing and saving one itinerary",
			Buckets: prometheus.DefBuckets,
		},
	)

	NarrativeGenerations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "itinerary_narrative_generations_total",
			Help: "Narrative generation attempts by result",
		},
		[]string{"result"},
	)

	DealTriggers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deal_triggers_detected_total",
			Help: "Deal triggers detected by type",
		},
		[]string{"type"},
	)

	JobRunning = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "itinerary_job_running",
			Help: "1 while an itinerary job run is in progress",
		},
	)
)

// Outcome and result label values.
const (
	OutcomeInserted = "inserted"
	OutcomeSkipped  = "skipped"

	GenerationAccepted = "accepted"
	GenerationRejected = "rejected"
	GenerationFailed   = "failed"
	GenerationSkipped  = "skipped"
)

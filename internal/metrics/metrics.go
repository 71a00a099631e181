// Package metrics holds the service's Prometheus collectors: collection
// run outcomes, cache hit/miss, and quality scores (§2's A2 ambient
// component).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CollectionRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "collection_runs_total",
		Help: "Number of completed collection runs.",
	})

	CollectionResortDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "collection_resort_duration_seconds",
		Help:    "Per-resort collection wall-clock duration.",
		Buckets: prometheus.DefBuckets,
	})

	CollectionFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "collection_failures_total",
		Help: "Classified collection failures by error type.",
	}, []string{"error_type"})

	CacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Cache lookups that found a value, by key prefix.",
	}, []string{"key_prefix"})

	CacheMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Cache lookups that found nothing, by key prefix.",
	}, []string{"key_prefix"})

	QualityScore = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "resort_quality_score",
		Help: "Most recent quality score per resort (0-100).",
	}, []string{"resort_slug"})
)

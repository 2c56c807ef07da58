// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PairsScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_pairs_scored_total",
			Help: "Total number of candidate/job pairs scored",
		},
		[]string{"operation"},
	)

	PairsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_pairs_skipped_total",
			Help: "Total number of pool members skipped during ranking",
		},
		[]string{"reason"},
	)

	RankingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "match_ranking_duration_seconds",
			Help: "Duration of bulk ranking calls in seconds",
		},
		[]string{"direction"},
	)

	PoolSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "match_pool_size",
			Help:    "Size of candidate/job pools supplied to ranking calls",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"direction"},
	)
)

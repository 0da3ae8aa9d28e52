package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RankingCacheHits counts leaderboard cache hits per cache
	RankingCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arcade_ranking_cache_hits_total",
			Help: "Total number of leaderboard cache hits",
		},
		[]string{"cache"},
	)

	// RankingCacheMisses counts leaderboard cache misses per cache
	RankingCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arcade_ranking_cache_misses_total",
			Help: "Total number of leaderboard cache misses",
		},
		[]string{"cache"},
	)

	// RankingBusyRejections counts requests rejected by admission control
	RankingBusyRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "arcade_ranking_busy_rejections_total",
			Help: "Total number of leaderboard requests rejected while busy",
		},
	)

	// RankingQueryDuration tracks leaderboard database query time
	RankingQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "arcade_ranking_query_duration_seconds",
			Help:    "Leaderboard database query duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"board"},
	)

	// GameSubmissions counts submitted game rounds by type and status
	GameSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arcade_game_submissions_total",
			Help: "Total number of game round submissions",
		},
		[]string{"game_type", "status"},
	)

	// AirdropTransfers counts executed airdrop transfers by status
	AirdropTransfers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arcade_airdrop_transfers_total",
			Help: "Total number of airdrop token transfers",
		},
		[]string{"status"},
	)

	// AirdropQueuePending tracks the number of unsettled queue entries
	AirdropQueuePending = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "arcade_airdrop_queue_pending",
			Help: "Number of pending airdrop queue entries",
		},
	)
)

package metrics

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// VotesTotal counts accepted votes by voter class.
	VotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jig_votes_total",
			Help: "Total votes accepted, by voter class.",
		},
		[]string{"class"},
	)

	// RecomputeDuration times one compute-and-persist pass for a project.
	RecomputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "jig_score_recompute_duration_seconds",
			Help:    "Duration of project score recomputations.",
			Buckets: prometheus.DefBuckets,
		},
	)

	// RequestDuration is labelled with the chi route pattern, not the raw path.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jig_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by route and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method", "status"},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jig_ranking_cache_hits_total",
			Help: "Total ranking cache hits.",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jig_ranking_cache_misses_total",
			Help: "Total ranking cache misses.",
		},
	)
)

// RegisterDBStats exports connection pool statistics for db. Call once at startup.
func RegisterDBStats(db *sql.DB) error {
	return prometheus.Register(collectors.NewDBStatsCollector(db, "jig"))
}

// Handler serves the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

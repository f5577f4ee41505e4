// api/cache/metrics.go
package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "intervene_cache_hits_total",
		Help: "Cache lookups served from the store.",
	})
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "intervene_cache_misses_total",
		Help: "Cache lookups that found no entry.",
	})
	cacheErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intervene_cache_errors_total",
			Help: "Cache operations that failed and were degraded to a miss or no-op.",
		},
		[]string{"op"},
	)
	cacheInvalidatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "intervene_cache_invalidated_keys_total",
		Help: "Keys removed by pattern invalidation.",
	})
)

package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(cacheRequestsTotal, conversationStatesGauge) }

var (
	cacheRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_requests_total",
			Help: "Tracks cache hits and misses for various caches.",
		},
		[]string{"cache", "result"}, // e.g., cache="user", result="hit"
	)

	conversationStatesGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "conversation_states_active",
			Help: "Non-idle conversation states held in memory.",
		},
	)
)

func IncCacheRequest(cacheName, result string) {
	cacheRequestsTotal.WithLabelValues(norm(cacheName), norm(result)).Inc()
}

func SetActiveConversations(n int) {
	conversationStatesGauge.Set(float64(n))
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() { register(storeCallDuration, storeCallErrorsTotal) }

var (
	storeCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_call_duration_seconds",
			Help:    "Latency of list store operations.",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"op", "success"},
	)

	storeCallErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_call_errors_total",
			Help: "List store operations that failed, timeouts included.",
		},
		[]string{"op"},
	)
)

// ObserveStoreCall records one store round trip.
func ObserveStoreCall(op string, d time.Duration, err error) {
	success := "true"
	if err != nil {
		success = "false"
		storeCallErrorsTotal.WithLabelValues(norm(op)).Inc()
	}
	storeCallDuration.WithLabelValues(norm(op), success).Observe(d.Seconds())
}

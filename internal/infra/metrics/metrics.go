// File: internal/infra/metrics/metrics.go
package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(itemsAddedTotal, itemsDeletedTotal, listsClearedTotal)
}

var (
	itemsAddedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shopping_items_added_total",
			Help: "Items added to shopping lists.",
		},
	)

	itemsDeletedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopping_items_deleted_total",
			Help: "Items removed from shopping lists by selector kind.",
		},
		[]string{"by"}, // id | name | clear
	)

	listsClearedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shopping_lists_cleared_total",
			Help: "Clear commands executed.",
		},
	)
)

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func IncItemsAdded() { itemsAddedTotal.Inc() }

func AddItemsDeleted(by string, n int64) {
	if n <= 0 {
		return
	}
	itemsDeletedTotal.WithLabelValues(norm(by)).Add(float64(n))
}

func IncListCleared() { listsClearedTotal.Inc() }

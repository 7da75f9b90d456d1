package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		usersRegisteredTotal,
		telegramCommandsReceivedTotal,
		telegramRateLimitTriggeredTotal,
		telegramUpdateDuration,
		commandFailuresTotal,
	)
}

var (
	usersRegisteredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "users_registered_total",
			Help: "Total number of new users registered.",
		},
	)

	telegramCommandsReceivedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_commands_received_total",
			Help: "Counts incoming messages and commands from users.",
		},
		[]string{"command"},
	)

	telegramRateLimitTriggeredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "telegram_rate_limit_triggered_total",
			Help: "Total number of times users have been rate-limited.",
		},
	)

	telegramUpdateDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "telegram_update_duration_seconds",
			Help:    "Time spent handling one Telegram update, reply included.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"}, // message | callback
	)

	commandFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "command_failures_total",
			Help: "Commands answered with the generic failure reply.",
		},
		[]string{"command"},
	)
)

func IncUsersRegistered() {
	usersRegisteredTotal.Inc()
}

func IncTelegramCommand(command string) {
	telegramCommandsReceivedTotal.WithLabelValues(norm(command)).Inc()
}

func IncRateLimitTriggered() {
	telegramRateLimitTriggeredTotal.Inc()
}

func ObserveUpdate(kind string, d time.Duration) {
	telegramUpdateDuration.WithLabelValues(norm(kind)).Observe(d.Seconds())
}

func IncCommandFailure(command string) {
	commandFailuresTotal.WithLabelValues(norm(command)).Inc()
}

package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() { register(scheduleTransitionsTotal, publishAttemptsTotal) }

var scheduleTransitionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "schedule_transitions_total",
		Help: "Scheduled post status transitions, labeled by target status.",
	},
	[]string{"to"}, // 'posted', 'cancelled', 'failed'
)

var publishAttemptsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "publish_attempts_total",
		Help: "Platform publish sub-operations, labeled by platform and success.",
	},
	[]string{"platform", "success"},
)

func IncScheduleTransition(to string) {
	scheduleTransitionsTotal.WithLabelValues(norm(to)).Inc()
}

func IncPublishAttempt(platform string, success bool) {
	publishAttemptsTotal.WithLabelValues(norm(platform), strconv.FormatBool(success)).Inc()
}

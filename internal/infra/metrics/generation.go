package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() { register(generationJobsTotal, generationPolls, generationLatency) }

var generationJobsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "generation_jobs_total",
		Help: "Total number of media generation jobs, labeled by kind and outcome.",
	},
	[]string{"kind", "status"}, // kind='video'|'image', status='completed'|'failed'|'timeout'
)

var generationPolls = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "generation_polls",
		Help:    "Distribution of poll counts per video generation job.",
		Buckets: []float64{1, 2, 5, 10, 20, 30, 45, 60},
	},
)

var generationLatency = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "generation_latency_seconds",
		Help:    "Generation call latency distribution in seconds.",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
	},
	[]string{"kind", "success"},
)

func IncGenerationJob(kind, status string) {
	generationJobsTotal.WithLabelValues(norm(kind), norm(status)).Inc()
}

func ObserveGenerationPolls(n int) {
	generationPolls.Observe(float64(n))
}

func ObserveGenerationLatency(kind string, seconds float64, success bool) {
	generationLatency.WithLabelValues(norm(kind), strconv.FormatBool(success)).Observe(seconds)
}

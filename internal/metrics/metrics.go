package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fittrack",
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fittrack",
			Name:      "http_request_duration_seconds",
			Help:      "Latency of HTTP requests by route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	entriesCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fittrack",
			Name:      "entries_created_total",
			Help:      "Count of log entries created by kind.",
		},
		[]string{"kind"},
	)

	entriesDeleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fittrack",
			Name:      "entries_deleted_total",
			Help:      "Count of log entries deleted by kind.",
		},
		[]string{"kind"},
	)

	imageAnalyses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fittrack",
			Name:      "image_analyses_total",
			Help:      "Count of food photo analyses by outcome.",
		},
		[]string{"outcome"},
	)

	logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fittrack",
			Name:      "auth_attempts_total",
			Help:      "Count of login and registration attempts by result.",
		},
		[]string{"action", "result"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, entriesCreated, entriesDeleted, imageAnalyses, logins)
	})
}

func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func IncEntryCreated(kind string) {
	entriesCreated.WithLabelValues(kind).Inc()
}

func IncEntryDeleted(kind string) {
	entriesDeleted.WithLabelValues(kind).Inc()
}

// IncImageAnalysis records one analysis; outcome is "detected", "empty" or "failed".
func IncImageAnalysis(outcome string) {
	imageAnalyses.WithLabelValues(outcome).Inc()
}

func IncAuth(action string, ok bool) {
	result := "success"
	if !ok {
		result = "failure"
	}
	logins.WithLabelValues(action, result).Inc()
}

package webplayer

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	apiRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "webplayer",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Total session API requests.",
		},
		[]string{"method", "code"},
	)
	apiDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "webplayer",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Session API request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "code"},
	)
)

func registerMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(apiRequests, apiDuration)
	})
}

// observe records one session API round trip. A zero code marks requests
// that never produced a response.
func observe(method string, code int, d time.Duration) {
	registerMetrics()
	status := strconv.Itoa(code)
	apiRequests.WithLabelValues(method, status).Inc()
	apiDuration.WithLabelValues(method, status).Observe(d.Seconds())
}

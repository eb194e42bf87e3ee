package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	availabilityQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "velour",
			Name:      "availability_query_total",
			Help:      "Count of availability queries by operation.",
		},
		[]string{"op"},
	)

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "velour",
			Name:      "availability_cache_lookup_total",
			Help:      "Count of month-availability cache lookups by result.",
		},
		[]string{"result"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "velour",
			Name:      "http_request_total",
			Help:      "Count of HTTP API requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	monthScanDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "velour",
			Name:      "month_scan_seconds",
			Help:      "Time spent computing a full month of availability in memory.",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(availabilityQueries, cacheLookups, httpRequests, monthScanDuration)
	})
}

func IncQuery(op string) {
	availabilityQueries.WithLabelValues(op).Inc()
}

func IncCacheHit() {
	cacheLookups.WithLabelValues("hit").Inc()
}

func IncCacheMiss() {
	cacheLookups.WithLabelValues("miss").Inc()
}

func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

func ObserveMonthScan(seconds float64) {
	monthScanDuration.Observe(seconds)
}

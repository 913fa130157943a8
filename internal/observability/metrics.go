package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	fetchFailureCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "health_trends",
		Subsystem: "provider",
		Name:      "fetch_failures_total",
		Help:      "Number of provider collection fetches that failed or timed out.",
	}, []string{"source"})

	fetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "health_trends",
		Subsystem: "provider",
		Name:      "fetch_duration_seconds",
		Help:      "Latency of provider collection fetches.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source"})

	skippedRecordCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "health_trends",
		Subsystem: "provider",
		Name:      "skipped_records_total",
		Help:      "Number of collection items skipped because they were not JSON objects.",
	}, []string{"source"})

	droppedRecordCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "health_trends",
		Subsystem: "normalizer",
		Name:      "dropped_records_total",
		Help:      "Number of raw records dropped for lacking a parseable timestamp.",
	}, []string{"source"})

	deepSleepCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "health_trends",
		Subsystem: "normalizer",
		Name:      "deep_sleep_values_total",
		Help:      "Deep sleep values grouped by how they were obtained.",
	}, []string{"kind"})

	summaryJobCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "health_trends",
		Subsystem: "summary",
		Name:      "jobs_finished_total",
		Help:      "Number of AI summary jobs reaching a terminal status.",
	}, []string{"status"})

	httpRequestCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "health_trends",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Number of HTTP requests grouped by route and status code.",
	}, []string{"method", "route", "code"})

	httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "health_trends",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Latency of HTTP requests grouped by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	lastDashboardGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "health_trends",
		Subsystem: "dashboard",
		Name:      "last_built_timestamp_seconds",
		Help:      "Unix timestamp of the most recent dashboard computation.",
	})
)

func init() {
	prometheus.MustRegister(
		fetchFailureCounter,
		fetchDuration,
		skippedRecordCounter,
		droppedRecordCounter,
		deepSleepCounter,
		summaryJobCounter,
		httpRequestCounter,
		httpRequestDuration,
		lastDashboardGauge,
	)
}

// RecordFetchFailure counts a failed provider fetch.
func RecordFetchFailure(source string) {
	fetchFailureCounter.WithLabelValues(source).Inc()
}

// RecordFetchDuration observes how long a provider fetch took.
func RecordFetchDuration(source string, d time.Duration) {
	fetchDuration.WithLabelValues(source).Observe(d.Seconds())
}

// RecordSkippedRecords counts collection items the provider client discarded.
func RecordSkippedRecords(source string, n int) {
	if n <= 0 {
		return
	}
	skippedRecordCounter.WithLabelValues(source).Add(float64(n))
}

// RecordDroppedRecords counts records discarded by the normalizer.
func RecordDroppedRecords(source string, n int) {
	if n <= 0 {
		return
	}
	droppedRecordCounter.WithLabelValues(source).Add(float64(n))
}

// RecordDeepSleep counts one deep sleep value by kind.
func RecordDeepSleep(kind string) {
	deepSleepCounter.WithLabelValues(kind).Inc()
}

// RecordSummaryJob counts a summary job reaching a terminal status.
func RecordSummaryJob(status string) {
	summaryJobCounter.WithLabelValues(status).Inc()
}

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(method, route string, code int, d time.Duration) {
	httpRequestCounter.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordDashboardBuilt updates the dashboard watermark gauge.
func RecordDashboardBuilt(ts time.Time) {
	if ts.IsZero() {
		return
	}
	lastDashboardGauge.Set(float64(ts.Unix()))
}

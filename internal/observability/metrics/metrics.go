package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "torque_"

var (
	registerOnce sync.Once

	ingestRequests *prometheus.CounterVec
	ingestLatency  *prometheus.HistogramVec

	sessionsCached   prometheus.Gauge
	sessionEvictions *prometheus.CounterVec

	dispatchFailures prometheus.Counter
	exportTotal      *prometheus.CounterVec
)

// Init registers the bridge metrics. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		ingestRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "ingest_requests_total",
				Help: "Total upload requests by result",
			},
			[]string{"result"},
		)
		ingestLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "ingest_latency_seconds",
				Help:    "Upload handling latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		sessionsCached = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "sessions_cached",
				Help: "Sessions currently held in the in-memory cache",
			},
		)
		sessionEvictions = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "session_evictions_total",
				Help: "Cache evictions by reason",
			},
			[]string{"reason"},
		)

		dispatchFailures = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "dispatch_failures_total",
				Help: "Consumer notifications that returned an error",
			},
		)
		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "export_total",
				Help: "Diagnostic exports by format and result",
			},
			[]string{"format", "result"},
		)

		prometheus.MustRegister(
			ingestRequests,
			ingestLatency,
			sessionsCached,
			sessionEvictions,
			dispatchFailures,
			exportTotal,
		)
	})
}

// ObserveIngest records one upload request outcome.
func ObserveIngest(result string, seconds float64) {
	if ingestRequests == nil {
		return
	}
	ingestRequests.WithLabelValues(result).Inc()
	ingestLatency.WithLabelValues(result).Observe(seconds)
}

// SetSessionsCached updates the cache size gauge.
func SetSessionsCached(n int) {
	if sessionsCached == nil {
		return
	}
	sessionsCached.Set(float64(n))
}

// AddEviction counts one cache eviction.
func AddEviction(reason string) {
	if sessionEvictions == nil {
		return
	}
	sessionEvictions.WithLabelValues(reason).Inc()
}

// AddDispatchFailure counts one failed consumer notification.
func AddDispatchFailure() {
	if dispatchFailures == nil {
		return
	}
	dispatchFailures.Inc()
}

// ObserveExport records one diagnostics export.
func ObserveExport(format, result string) {
	if exportTotal == nil {
		return
	}
	exportTotal.WithLabelValues(format, result).Inc()
}

// Package metrics exposes the service's Prometheus instrumentation.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const prefix = "paisa_"

var (
	// RequestsTotal counts HTTP requests by method, route and status class.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prefix + "http_requests_total",
		Help: "HTTP requests served",
	}, []string{"method", "route", "status"})

	// RequestDuration observes request latency by route.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prefix + "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// RecordOps counts store mutations by operation and outcome.
	RecordOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prefix + "record_operations_total",
		Help: "Record store operations",
	}, []string{"operation", "outcome"})

	// SummaryCacheHits counts summary cache lookups by result.
	SummaryCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prefix + "summary_cache_lookups_total",
		Help: "Summary cache lookups",
	}, []string{"result"})
)

// RecordCounter is the slice of the store the gauge needs.
type RecordCounter interface {
	CountRecords(ctx context.Context) (int64, error)
}

// RegisterStoreGauge exports the stored record count as a gauge. Count
// failures report zero rather than breaking the scrape.
func RegisterStoreGauge(counter RecordCounter) {
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: prefix + "records_stored",
			Help: "Number of expense records in the store",
		},
		func() float64 {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			n, err := counter.CountRecords(ctx)
			if err != nil {
				return 0
			}
			return float64(n)
		},
	))
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveRequest records one served request.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	RequestsTotal.WithLabelValues(method, route, statusClass(status)).Inc()
	RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector provides Prometheus metrics for the request lifecycle. It
// satisfies the client package's Metrics interface and is safe for
// concurrent use. A nil *Collector is a valid no-op sink.
type Collector struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight *prometheus.GaugeVec
	errorsTotal      *prometheus.CounterVec
}

// NewCollector creates a collector on the default registerer.
func NewCollector() *Collector {
	return NewCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewCollectorWithRegistry creates a collector using the supplied registerer.
func NewCollectorWithRegistry(registry prometheus.Registerer) *Collector {
	return &Collector{
		requestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "restkit_requests_total",
				Help: "Total number of HTTP requests made",
			},
			[]string{"method", "status_code", "resource"},
		),
		requestDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "restkit_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "status_code", "resource"},
		),
		requestsInFlight: promauto.With(registry).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "restkit_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
			[]string{"method", "resource"},
		),
		errorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "restkit_errors_total",
				Help: "Total number of request errors by failure class",
			},
			[]string{"class", "method", "resource"},
		),
	}
}

// RecordRequest records request count and duration.
func (c *Collector) RecordRequest(method, resource string, statusCode int, duration time.Duration) {
	if c == nil {
		return
	}

	status := strconv.Itoa(statusCode)
	c.requestsTotal.WithLabelValues(method, status, resource).Inc()
	c.requestDuration.WithLabelValues(method, status, resource).Observe(duration.Seconds())
}

// RecordRequestStart increments the in-flight gauge.
func (c *Collector) RecordRequestStart(method, resource string) {
	if c == nil {
		return
	}

	c.requestsInFlight.WithLabelValues(method, resource).Inc()
}

// RecordRequestEnd decrements the in-flight gauge.
func (c *Collector) RecordRequestEnd(method, resource string) {
	if c == nil {
		return
	}

	c.requestsInFlight.WithLabelValues(method, resource).Dec()
}

// RecordError increments the error counter for a failure class.
func (c *Collector) RecordError(class, method, resource string) {
	if c == nil {
		return
	}

	c.errorsTotal.WithLabelValues(class, method, resource).Inc()
}

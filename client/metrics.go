package client

import "time"

// Metrics receives request lifecycle signals. Implementations must be safe
// for concurrent use; the metrics package provides a Prometheus-backed one.
type Metrics interface {
	// RecordRequestStart marks a request entering transport.
	RecordRequestStart(method, resource string)
	// RecordRequestEnd is the guaranteed counterpart of RecordRequestStart.
	RecordRequestEnd(method, resource string)
	// RecordRequest observes the final status and duration of a request.
	// The status code is 0 when the request never reached the HTTP layer.
	RecordRequest(method, resource string, statusCode int, duration time.Duration)
	// RecordError counts a failed request by error class.
	RecordError(class, method, resource string)
}

// Package metrics provides a Prometheus collector for restkit request
// telemetry.
//
// The Collector satisfies the client package's Metrics interface:
//
//	mc := metrics.NewCollector()
//	c, err := client.New(cfg, client.WithMetrics(mc))
//
// Exposed series:
//
//	restkit_requests_total{method,status_code,resource}
//	restkit_request_duration_seconds{method,status_code,resource}
//	restkit_requests_in_flight{method,resource}
//	restkit_errors_total{class,method,resource}
//
// Use NewCollectorWithRegistry to register on a custom registry, for example
// in tests or when running several collectors in one process.
package metrics

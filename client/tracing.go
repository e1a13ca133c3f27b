package client

import (
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/kbukum/restkit/client"

// Common span names.
const spanHTTPRequest = "http.request"

// TracingMiddleware opens a client span around each request, recording the
// HTTP method, URL, and response status. It uses the global tracer provider
// and is a no-op when none is installed.
func TracingMiddleware() Middleware {
	tracer := otel.Tracer(tracerName)
	return func(req *http.Request, next RoundTripper) (*http.Response, error) {
		ctx, span := tracer.Start(req.Context(), spanHTTPRequest,
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String("http.method", req.Method),
				attribute.String("http.url", req.URL.String()),
			),
		)
		defer span.End()

		resp, err := next.RoundTrip(req.WithContext(ctx))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return resp, err
		}

		span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
		if resp.StatusCode >= 400 {
			span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", resp.StatusCode))
		}
		return resp, nil
	}
}

// WithTracing appends the tracing middleware to the client.
func WithTracing() Option {
	return func(c *Client) { c.middleware = append(c.middleware, TracingMiddleware()) }
}

package client

import "github.com/google/uuid"

// Logger receives debug output from the client. The variadic arguments are
// alternating key-value pairs. Implementations must be safe for concurrent
// use; the logger package provides a zerolog-backed one.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// NopLogger discards all log output. It is the default.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}

// DebugConfig controls per-request debug logging.
type DebugConfig struct {
	// Enabled turns debug logging on.
	Enabled bool
	// LogRequests logs every outbound request before transport.
	LogRequests bool
	// LogResponses logs status and duration after each response.
	LogResponses bool
	// RequestIDGen generates correlation IDs attached to log lines.
	RequestIDGen func() string
}

// DefaultDebugConfig enables request and response logging with UUID
// correlation IDs.
func DefaultDebugConfig() *DebugConfig {
	return &DebugConfig{
		Enabled:      true,
		LogRequests:  true,
		LogResponses: true,
		RequestIDGen: uuid.NewString,
	}
}

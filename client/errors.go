package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// Class groups request errors by failure mode.
type Class int

const (
	// ClassConnection indicates a transport-level failure (refused, DNS, etc).
	ClassConnection Class = iota
	// ClassAbort indicates the request was canceled or timed out before
	// completing. The underlying context error distinguishes the two.
	ClassAbort
	// ClassHTTP indicates the server answered with a non-2xx status.
	ClassHTTP
	// ClassValidation indicates the request was rejected before any
	// transport activity.
	ClassValidation
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case ClassConnection:
		return "connection"
	case ClassAbort:
		return "abort"
	case ClassHTTP:
		return "http"
	case ClassValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error is a structured request error.
type Error struct {
	// StatusCode is the HTTP status code (0 below the HTTP layer).
	StatusCode int
	// Class groups the error by failure mode.
	Class Class
	// Code is the server-assigned error code when the error body carries
	// one, otherwise the status code in text form. Empty below the HTTP
	// layer.
	Code string
	// Message describes the error.
	Message string
	// Body is the raw response body (nil below the HTTP layer).
	Body []byte
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("client: %s (HTTP %d): %s", e.Class, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("client: %s: %s", e.Class, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// newConnectionError creates a transport-level error.
func newConnectionError(err error) *Error {
	return &Error{
		Class:   ClassConnection,
		Message: err.Error(),
		Err:     err,
	}
}

// newAbortError classifies a request that ended because its context was
// done. The cause (usually a *url.Error wrapping the context error) is kept
// in the chain so errors.Is can distinguish a deadline from a manual cancel.
func newAbortError(ctxErr, cause error) *Error {
	if cause == nil {
		cause = ctxErr
	}
	msg := "request canceled"
	if errors.Is(ctxErr, context.DeadlineExceeded) {
		msg = "request timed out"
	}
	return &Error{
		Class:   ClassAbort,
		Message: msg,
		Err:     cause,
	}
}

// newValidationError creates a pre-transport rejection.
func newValidationError(msg string) *Error {
	return &Error{
		Class:   ClassValidation,
		Message: msg,
	}
}

// errorBody is the wire shape servers use for structured failures.
type errorBody struct {
	Message string          `json:"message"`
	Code    json.RawMessage `json:"code"`
}

// newHTTPError builds an error from a non-2xx response. The message falls
// back from the body's message field to the raw body to the standard status
// text; the code falls back from the body's code field to the numeric
// status rendered as text.
func newHTTPError(statusCode int, body []byte) *Error {
	e := &Error{
		StatusCode: statusCode,
		Class:      ClassHTTP,
		Code:       strconv.Itoa(statusCode),
		Message:    http.StatusText(statusCode),
		Body:       body,
	}

	if len(body) > 0 {
		e.Message = string(body)
	}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Message != "" {
			e.Message = eb.Message
		}
		if len(eb.Code) > 0 {
			e.Code = decodeErrorCode(eb.Code, statusCode)
		}
	}

	return e
}

// decodeErrorCode renders a JSON code value (string or number) as text,
// falling back to the status code.
func decodeErrorCode(raw json.RawMessage, statusCode int) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil && n != "" {
		return n.String()
	}
	return strconv.Itoa(statusCode)
}

// AsError extracts a *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// IsConnection checks if an error is a transport-level error.
func IsConnection(err error) bool {
	e, ok := AsError(err)
	return ok && e.Class == ClassConnection
}

// IsAbort checks if an error is an abort (timeout or manual cancel).
func IsAbort(err error) bool {
	e, ok := AsError(err)
	return ok && e.Class == ClassAbort
}

// IsTimeout checks if an error is an abort caused by a deadline.
func IsTimeout(err error) bool {
	return IsAbort(err) && errors.Is(err, context.DeadlineExceeded)
}

// IsCanceled checks if an error is an abort caused by manual cancellation.
func IsCanceled(err error) bool {
	return IsAbort(err) && errors.Is(err, context.Canceled)
}

// IsHTTP checks if an error is an HTTP-level error.
func IsHTTP(err error) bool {
	e, ok := AsError(err)
	return ok && e.Class == ClassHTTP
}

// IsValidation checks if an error is a pre-transport rejection.
func IsValidation(err error) bool {
	e, ok := AsError(err)
	return ok && e.Class == ClassValidation
}

package client

import "net/http"

// RoundTripper is the transport interface the middleware chain operates on.
type RoundTripper interface {
	RoundTrip(*http.Request) (*http.Response, error)
}

// RoundTripperFunc adapts a function to the RoundTripper interface.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

// RoundTrip implements RoundTripper.
func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Middleware wraps a transport call. A middleware may modify the request,
// short-circuit with its own response, or inspect the response on the way
// back.
type Middleware func(req *http.Request, next RoundTripper) (*http.Response, error)

// chainMiddleware folds middlewares around a base transport so that the
// first middleware in the slice sees the request first.
func chainMiddleware(base RoundTripper, mws []Middleware) RoundTripper {
	rt := base
	for i := len(mws) - 1; i >= 0; i-- {
		mw, next := mws[i], rt
		rt = RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			return mw(req, next)
		})
	}
	return rt
}

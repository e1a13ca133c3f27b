package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// RecordedRequest is a snapshot of one request seen by the Transport.
type RecordedRequest struct {
	Method string
	URL    *url.URL
	Header http.Header
	Body   []byte
}

type step struct {
	status int
	header http.Header
	body   []byte
	err    error
	delay  time.Duration
}

// Transport is a scripted http.RoundTripper for client tests. Queued
// responses are consumed in FIFO order and every request is recorded. It is
// safe for concurrent use.
//
//	tr := testutil.NewTransport().
//	    RespondJSON(200, map[string]any{"id": 1}).
//	    Fail(errors.New("connection reset"))
//	c, _ := client.New(cfg, client.WithHTTPClient(&http.Client{Transport: tr}))
type Transport struct {
	mu       sync.Mutex
	script   []*step
	fallback *step
	requests []RecordedRequest
}

// NewTransport creates an empty scripted transport. A request arriving with
// no queued step and no fallback fails loudly.
func NewTransport() *Transport {
	return &Transport{}
}

// Respond queues a response with the given status and literal body.
func (t *Transport) Respond(status int, body string) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.script = append(t.script, &step{status: status, body: []byte(body)})
	return t
}

// RespondJSON queues a response with the JSON encoding of v.
func (t *Transport) RespondJSON(status int, v any) *Transport {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("testutil: marshal scripted response: %v", err))
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.script = append(t.script, &step{
		status: status,
		body:   data,
		header: http.Header{"Content-Type": []string{"application/json"}},
	})
	return t
}

// Fail queues a transport-level error.
func (t *Transport) Fail(err error) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.script = append(t.script, &step{err: err})
	return t
}

// Always sets a sticky response used whenever the queue is empty.
func (t *Transport) Always(status int, body string) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fallback = &step{status: status, body: []byte(body)}
	return t
}

// Delay attaches a delay to the most recently queued step. The delay is
// interrupted by request context cancellation.
func (t *Transport) Delay(d time.Duration) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n := len(t.script); n > 0 {
		t.script[n-1].delay = d
	}
	return t
}

// Header attaches a response header to the most recently queued step.
func (t *Transport) Header(key, value string) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n := len(t.script); n > 0 {
		s := t.script[n-1]
		if s.header == nil {
			s.header = http.Header{}
		}
		s.header.Set(key, value)
	}
	return t
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	rec := RecordedRequest{
		Method: req.Method,
		URL:    req.URL,
		Header: req.Header.Clone(),
	}
	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, fmt.Errorf("testutil: read request body: %w", err)
		}
		_ = req.Body.Close()
		rec.Body = body
	}

	t.mu.Lock()
	t.requests = append(t.requests, rec)
	var s *step
	if len(t.script) > 0 {
		s = t.script[0]
		t.script = t.script[1:]
	} else {
		s = t.fallback
	}
	t.mu.Unlock()

	if s == nil {
		return nil, fmt.Errorf("testutil: no scripted response for %s %s", req.Method, req.URL)
	}

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-req.Context().Done():
			return nil, req.Context().Err()
		}
	}

	if s.err != nil {
		return nil, s.err
	}

	header := s.header
	if header == nil {
		header = http.Header{}
	}
	return &http.Response{
		StatusCode: s.status,
		Status:     fmt.Sprintf("%d %s", s.status, http.StatusText(s.status)),
		Header:     header.Clone(),
		Body:       io.NopCloser(bytes.NewReader(s.body)),
		Request:    req,
	}, nil
}

// Requests returns a copy of all recorded requests.
func (t *Transport) Requests() []RecordedRequest {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]RecordedRequest, len(t.requests))
	copy(out, t.requests)
	return out
}

// Calls returns the number of requests seen so far.
func (t *Transport) Calls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.requests)
}

// Remaining returns the number of unconsumed scripted steps.
func (t *Transport) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.script)
}

// Reset clears the script, the fallback, and the recorded requests.
func (t *Transport) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.script = nil
	t.fallback = nil
	t.requests = nil
}

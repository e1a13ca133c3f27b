package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kbukum/restkit/query"
)

const contentTypeJSON = "application/json; charset=utf-8"

// Client issues resource commands against a configured endpoint.
type Client struct {
	config     Config
	httpClient *http.Client
	transport  RoundTripper
	middleware []Middleware

	logger  Logger
	debug   *DebugConfig
	metrics Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client. The client's own
// Timeout should stay zero: request deadlines are driven by Options.Timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithMiddleware appends middleware to the transport chain. Middleware runs
// in the order given, outermost first.
func WithMiddleware(mws ...Middleware) Option {
	return func(c *Client) { c.middleware = append(c.middleware, mws...) }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithDebug enables debug logging with the default configuration.
func WithDebug() Option {
	return func(c *Client) { c.debug = DefaultDebugConfig() }
}

// WithDebugConfig sets a custom debug configuration.
func WithDebugConfig(cfg *DebugConfig) Option {
	return func(c *Client) { c.debug = cfg }
}

// WithRequestIDGenerator sets the correlation ID generator for debug logs.
func WithRequestIDGenerator(gen func() string) Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.RequestIDGen = gen
	}
}

// WithMetrics sets the metrics sink for request lifecycle signals.
func WithMetrics(m Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a client for the configured endpoint.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config:     cfg,
		httpClient: &http.Client{},
		logger:     NopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}

	// The base of the middleware chain goes through http.Client.Do so
	// redirect handling and cookie jars keep working.
	base := RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return c.httpClient.Do(req)
	})
	c.transport = chainMiddleware(base, c.middleware)

	return c, nil
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (c *Client) Unwrap() *http.Client {
	return c.httpClient
}

// Config returns a copy of the client configuration.
func (c *Client) Config() Config {
	return c.config
}

// Request resolves the options and starts the request. It never blocks: the
// returned Pending settles exactly once with the outcome and can be canceled
// at any time. When Options.Timeout is set, the request is aborted once it
// elapses.
func (c *Client) Request(ctx context.Context, opts Options) *Pending {
	desc := Resolve(opts)

	var cancel context.CancelFunc
	if desc.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, desc.Timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	p := newPending(cancel)

	httpReq, err := c.buildRequest(ctx, desc)
	if err != nil {
		p.settle(nil, err)
		return p
	}

	go func() {
		p.settle(c.send(httpReq, desc))
	}()
	return p
}

// Do executes the request and blocks until it settles.
func (c *Client) Do(ctx context.Context, opts Options) (*Response, error) {
	return c.Request(ctx, opts).Result()
}

// Create issues a create command for the resource with the given payload.
func (c *Client) Create(ctx context.Context, resource string, data any) (*Response, error) {
	return c.Do(ctx, Options{Resource: resource, Command: CommandCreate, Data: data})
}

// Get fetches a single record by primary key.
func (c *Client) Get(ctx context.Context, resource string, pk any) (*Response, error) {
	return c.Do(ctx, Options{Resource: resource, Command: CommandGet, PK: pk})
}

// List fetches the records matching the filter. A nil filter fetches all.
func (c *Client) List(ctx context.Context, resource string, where map[string]any) (*Response, error) {
	return c.Do(ctx, Options{Resource: resource, Command: CommandList, Where: where})
}

// Update replaces the record identified by pk.
func (c *Client) Update(ctx context.Context, resource string, pk, data any) (*Response, error) {
	return c.Do(ctx, Options{Resource: resource, Command: CommandUpdate, PK: pk, Data: data})
}

// Patch partially updates the record identified by pk.
func (c *Client) Patch(ctx context.Context, resource string, pk, data any) (*Response, error) {
	return c.Do(ctx, Options{Resource: resource, Command: CommandPatch, PK: pk, Data: data})
}

// Delete deletes the record identified by pk.
func (c *Client) Delete(ctx context.Context, resource string, pk any) (*Response, error) {
	return c.Do(ctx, Options{Resource: resource, Command: CommandDelete, PK: pk})
}

// DeleteCollection deletes every record matching the filter.
func (c *Client) DeleteCollection(ctx context.Context, resource string, where map[string]any) (*Response, error) {
	return c.Do(ctx, Options{Resource: resource, Command: CommandDeleteCollection, Where: where})
}

// buildRequest constructs the *http.Request described by the descriptor.
func (c *Client) buildRequest(ctx context.Context, desc Descriptor) (*http.Request, error) {
	method, ok := desc.Command.Method()
	if !ok {
		return nil, newValidationError(fmt.Sprintf("unknown command %q", desc.Command))
	}
	if desc.Resource == "" {
		return nil, newValidationError("resource is required")
	}

	url := c.config.BaseURL() + desc.Resource
	if q := query.Values(desc.Query); len(q) > 0 {
		url += "?" + q.Encode()
	}

	body, contentType, err := encodeBody(desc)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, newValidationError(fmt.Sprintf("create request: %v", err))
	}

	// Default headers first so computed headers win.
	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}
	httpReq.Header.Set("User-Agent", c.config.UserAgent)
	httpReq.Header.Set("Content-Type", contentType)

	// Exactly one auth header: a per-request token beats the configured
	// secret, and the secret is withheld when a token is present.
	switch {
	case desc.Token != "":
		httpReq.Header.Set("Authorization", "Bearer "+desc.Token)
	case c.config.Secret != "":
		httpReq.Header.Set("X-Secret", c.config.Secret)
	}

	return httpReq, nil
}

// encodeBody renders the descriptor data and the effective Content-Type.
func encodeBody(desc Descriptor) (io.Reader, string, error) {
	contentType := desc.ContentType
	if contentType == "" {
		contentType = contentTypeJSON
	}

	if desc.Data == nil {
		return nil, contentType, nil
	}

	// Multipart payloads carry their own boundary Content-Type.
	if mb, ok := desc.Data.(*MultipartBody); ok {
		body, mct, err := mb.encode()
		if err != nil {
			return nil, "", newValidationError(fmt.Sprintf("encode multipart body: %v", err))
		}
		return body, mct, nil
	}

	if desc.ContentType != "" {
		// Verbatim transmission: the caller controls the encoding.
		switch v := desc.Data.(type) {
		case io.Reader:
			return v, contentType, nil
		case []byte:
			return bytes.NewReader(v), contentType, nil
		case string:
			return strings.NewReader(v), contentType, nil
		default:
			return nil, "", newValidationError(fmt.Sprintf(
				"content type %q requires io.Reader, []byte, or string data (got %T)", desc.ContentType, desc.Data))
		}
	}

	// Raw carriers pass through; everything else is JSON-encoded.
	switch v := desc.Data.(type) {
	case io.Reader:
		return v, contentType, nil
	case []byte:
		return bytes.NewReader(v), contentType, nil
	}

	encoded, err := json.Marshal(desc.Data)
	if err != nil {
		return nil, "", newValidationError(fmt.Sprintf("encode body: %v", err))
	}
	return bytes.NewReader(encoded), contentType, nil
}

// send runs the transport call and shapes the outcome.
func (c *Client) send(req *http.Request, desc Descriptor) (*Response, error) {
	ctx := req.Context()
	method := req.Method
	start := time.Now()

	var requestID string
	if c.debug != nil && c.debug.Enabled && c.debug.RequestIDGen != nil {
		requestID = c.debug.RequestIDGen()
	}
	if c.debug != nil && c.debug.Enabled && c.debug.LogRequests {
		c.logger.Debug("request started",
			"requestID", requestID, "method", method, "url", req.URL.String(), "resource", desc.Resource)
	}

	if c.metrics != nil {
		c.metrics.RecordRequestStart(method, desc.Resource)
		defer c.metrics.RecordRequestEnd(method, desc.Resource)
	}

	httpResp, err := c.transport.RoundTrip(req)
	if err != nil {
		err = classifyTransportError(ctx, err)
		c.observe(desc, method, requestID, 0, time.Since(start), err)
		return nil, err
	}
	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		err = classifyTransportError(ctx, fmt.Errorf("read response body: %w", err))
		c.observe(desc, method, requestID, httpResp.StatusCode, time.Since(start), err)
		return nil, err
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    flattenHeaders(httpResp.Header),
		Body:       body,
	}

	// Decode before status classification: a malformed payload surfaces as
	// a decode failure even when the status is an error.
	if desc.Format == FormatJSON && len(body) > 0 {
		if jsonErr := json.Unmarshal(body, &resp.Data); jsonErr != nil {
			err := fmt.Errorf("parse response: %w", jsonErr)
			c.observe(desc, method, requestID, resp.StatusCode, time.Since(start), err)
			return resp, err
		}
	}

	if !resp.IsSuccess() {
		httpErr := newHTTPError(resp.StatusCode, body)
		c.observe(desc, method, requestID, resp.StatusCode, time.Since(start), httpErr)
		return resp, httpErr
	}

	c.observe(desc, method, requestID, resp.StatusCode, time.Since(start), nil)
	return resp, nil
}

// classifyTransportError distinguishes aborts from connection failures.
func classifyTransportError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return newAbortError(ctxErr, err)
	}
	return newConnectionError(err)
}

// observe reports the request outcome to metrics and debug logging.
func (c *Client) observe(desc Descriptor, method, requestID string, status int, elapsed time.Duration, err error) {
	if c.metrics != nil {
		c.metrics.RecordRequest(method, desc.Resource, status, elapsed)
		if err != nil {
			c.metrics.RecordError(errorClass(err), method, desc.Resource)
		}
	}

	if c.debug == nil || !c.debug.Enabled {
		return
	}
	if err != nil {
		c.logger.Error("request failed",
			"requestID", requestID, "method", method, "resource", desc.Resource,
			"status", status, "duration", elapsed, "error", err)
		return
	}
	if c.debug.LogResponses {
		c.logger.Debug("request completed",
			"requestID", requestID, "method", method, "resource", desc.Resource,
			"status", status, "duration", elapsed)
	}
}

// errorClass names the error class for metrics labels. Decode failures are
// not *Error values and get their own label.
func errorClass(err error) string {
	if e, ok := AsError(err); ok {
		return e.Class.String()
	}
	return "parse"
}

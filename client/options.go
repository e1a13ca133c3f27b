package client

import "time"

// Format selects how response bodies are handled.
type Format string

const (
	// FormatJSON decodes response bodies as JSON. The default.
	FormatJSON Format = "json"
	// FormatText leaves response bodies undecoded.
	FormatText Format = "text"
)

// Options describes a single resource request.
type Options struct {
	// Resource is the path joined verbatim to the configured base URL.
	// Required.
	Resource string

	// Command selects the operation. Empty defaults to get.
	Command Command

	// Data is the request payload. Without a ContentType override it is
	// JSON-encoded ([]byte and io.Reader pass through as-is); with one it
	// must be an io.Reader, []byte, or string and is sent verbatim. A
	// *MultipartBody is encoded as multipart/form-data either way.
	Data any

	// PK identifies a single record and is folded into the query mapping
	// under the "pk" key. Strings and slices are both accepted.
	PK any

	// Query carries free-form query parameters.
	Query map[string]any

	// Where carries filter parameters. Its entries are merged into the
	// query mapping last and win over colliding keys.
	Where map[string]any

	// Include, Except, Exclude, GroupBy, Order, OrderBy, Limit, Skip,
	// Changes, Count, and Distinct are forwarded into the query mapping
	// when set. Zero values are omitted.
	Include  []string
	Except   []string
	Exclude  []string
	GroupBy  string
	Order    string
	OrderBy  string
	Limit    int
	Skip     int
	Changes  bool
	Count    bool
	Distinct bool

	// Token is a per-request bearer token sent as
	// "Authorization: Bearer <token>". When set, the configured secret is
	// not sent.
	Token string

	// Timeout bounds the whole request. Zero means no deadline.
	Timeout time.Duration

	// Format selects response body handling. Defaults to FormatJSON.
	Format Format

	// ContentType overrides the Content-Type header and switches Data to
	// verbatim transmission.
	ContentType string

	// Nonce is carried on the descriptor for request-signing layers.
	Nonce string

	// NoReply marks the request as fire-and-forget for upstream layers.
	NoReply bool
}

// Descriptor is the canonical form of a request produced by Resolve.
type Descriptor struct {
	Command     Command
	ContentType string
	Format      Format
	Data        any
	Nonce       string
	NoReply     bool
	Resource    string
	Include     []string
	Timeout     time.Duration
	Token       string

	// Query is the merged query mapping. Request-level fields never leak
	// into it; pk and all Where entries always appear.
	Query map[string]any
}

// Resolve normalizes request options into a canonical descriptor. It is a
// pure transformation: no validation, no I/O, inputs are left untouched.
func Resolve(opts Options) Descriptor {
	q := make(map[string]any, len(opts.Query)+len(opts.Where)+8)
	for k, v := range opts.Query {
		q[k] = v
	}

	if len(opts.Include) > 0 {
		q["include"] = opts.Include
	}
	if len(opts.Except) > 0 {
		q["except"] = opts.Except
	}
	if len(opts.Exclude) > 0 {
		q["exclude"] = opts.Exclude
	}
	if opts.GroupBy != "" {
		q["groupBy"] = opts.GroupBy
	}
	if opts.Order != "" {
		q["order"] = opts.Order
	}
	if opts.OrderBy != "" {
		q["orderBy"] = opts.OrderBy
	}
	if opts.Limit > 0 {
		q["limit"] = opts.Limit
	}
	if opts.Skip > 0 {
		q["skip"] = opts.Skip
	}
	if opts.Changes {
		q["changes"] = true
	}
	if opts.Count {
		q["count"] = true
	}
	if opts.Distinct {
		q["distinct"] = true
	}

	if opts.PK != nil {
		q["pk"] = opts.PK
	}

	// Filters merge last so they win over colliding keys.
	for k, v := range opts.Where {
		q[k] = v
	}

	format := opts.Format
	if format == "" {
		format = FormatJSON
	}

	return Descriptor{
		Command:     opts.Command,
		ContentType: opts.ContentType,
		Format:      format,
		Data:        opts.Data,
		Nonce:       opts.Nonce,
		NoReply:     opts.NoReply,
		Resource:    opts.Resource,
		Include:     opts.Include,
		Timeout:     opts.Timeout,
		Token:       opts.Token,
		Query:       q,
	}
}

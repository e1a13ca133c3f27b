package client

import (
	"context"
	"encoding/json"
	"fmt"
)

// Result pairs a decoded payload with response metadata.
type Result[T any] struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers.
	Headers map[string]string
	// Data is the decoded response body.
	Data T
}

// Create issues a create command and decodes the response into T.
func Create[T any](ctx context.Context, c *Client, opts Options) (*Result[T], error) {
	opts.Command = CommandCreate
	return doTyped[T](ctx, c, opts)
}

// Get fetches a single record and decodes it into T.
func Get[T any](ctx context.Context, c *Client, opts Options) (*Result[T], error) {
	opts.Command = CommandGet
	return doTyped[T](ctx, c, opts)
}

// List fetches matching records and decodes them into a slice of T.
func List[T any](ctx context.Context, c *Client, opts Options) (*Result[[]T], error) {
	opts.Command = CommandList
	return doTyped[[]T](ctx, c, opts)
}

// Update replaces a record and decodes the response into T.
func Update[T any](ctx context.Context, c *Client, opts Options) (*Result[T], error) {
	opts.Command = CommandUpdate
	return doTyped[T](ctx, c, opts)
}

// Patch partially updates a record and decodes the response into T.
func Patch[T any](ctx context.Context, c *Client, opts Options) (*Result[T], error) {
	opts.Command = CommandPatch
	return doTyped[T](ctx, c, opts)
}

// Delete deletes a record and decodes the response into T.
func Delete[T any](ctx context.Context, c *Client, opts Options) (*Result[T], error) {
	opts.Command = CommandDelete
	return doTyped[T](ctx, c, opts)
}

// DeleteCollection deletes matching records and decodes the response into T.
func DeleteCollection[T any](ctx context.Context, c *Client, opts Options) (*Result[T], error) {
	opts.Command = CommandDeleteCollection
	return doTyped[T](ctx, c, opts)
}

// doTyped executes the request and decodes the raw body on success. HTTP
// and transport failures pass through unchanged as *Error values.
func doTyped[T any](ctx context.Context, c *Client, opts Options) (*Result[T], error) {
	resp, err := c.Do(ctx, opts)
	if err != nil {
		return nil, err
	}

	res := &Result[T]{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
	}
	if len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, &res.Data); err != nil {
			return nil, fmt.Errorf("client: decode response: %w", err)
		}
	}
	return res, nil
}

// Package client provides a resource-oriented HTTP client: logical commands
// (create, get, list, update, patch, delete, deletecollection) against named
// resources are translated into fully specified HTTP requests, executed
// under an optional timeout with cancellation support, and normalized into
// a response or a classified error.
//
// # Basic Usage
//
//	c, err := client.New(client.Config{
//	    Hostname: "api.example.com",
//	    Secret:   "service-secret",
//	})
//
//	resp, err := c.Do(ctx, client.Options{
//	    Resource: "users",
//	    Command:  client.CommandList,
//	    Where:    map[string]any{"status": "active"},
//	    Limit:    25,
//	})
//
// # Pending Requests
//
// Request never blocks; it returns a Pending that settles exactly once and
// can be canceled:
//
//	p := c.Request(ctx, client.Options{
//	    Resource: "reports",
//	    Timeout:  5 * time.Second,
//	})
//	// ...
//	p.Cancel()
//	resp, err := p.Result()
//
// # Typed Operations
//
// Generic helpers decode responses into caller types:
//
//	user, err := client.Get[User](ctx, c, client.Options{
//	    Resource: "users",
//	    PK:       "42",
//	})
//
// Failures are classified: connection errors, aborts (timeout or cancel),
// HTTP-level errors with the server's message and code, and pre-transport
// validation rejections. Decode failures propagate unclassified.
package client

package client

import "net/http"

// Command is a logical resource operation.
type Command string

const (
	// CommandCreate creates a record (POST).
	CommandCreate Command = "create"
	// CommandGet fetches a single record (GET).
	CommandGet Command = "get"
	// CommandList fetches a collection of records (GET).
	CommandList Command = "list"
	// CommandUpdate replaces a record (PUT).
	CommandUpdate Command = "update"
	// CommandPatch partially updates a record (PATCH).
	CommandPatch Command = "patch"
	// CommandDelete deletes a single record (DELETE).
	CommandDelete Command = "delete"
	// CommandDeleteCollection deletes a collection of records (DELETE).
	CommandDeleteCollection Command = "deletecollection"
)

var commandMethods = map[Command]string{
	CommandCreate:           http.MethodPost,
	CommandGet:              http.MethodGet,
	CommandList:             http.MethodGet,
	CommandUpdate:           http.MethodPut,
	CommandPatch:            http.MethodPatch,
	CommandDelete:           http.MethodDelete,
	CommandDeleteCollection: http.MethodDelete,
}

// Method returns the HTTP method for the command. The zero command is
// treated as get; unknown commands return ok=false.
func (c Command) Method() (string, bool) {
	if c == "" {
		c = CommandGet
	}
	m, ok := commandMethods[c]
	return m, ok
}

// Valid reports whether the command maps to an HTTP method.
func (c Command) Valid() bool {
	_, ok := c.Method()
	return ok
}

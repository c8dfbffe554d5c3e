package codec

import (
	"fmt"

	"github.com/klauern/mcpsync/internal/model"
)

// MalformedError reports a config file that exists but is not valid JSON.
type MalformedError struct {
	Client model.Client
	Path   string
	Err    error
}

// Error returns a formatted error message.
func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s: malformed config %s: %v", e.Client, e.Path, e.Err)
}

// Unwrap returns the underlying parse error.
func (e *MalformedError) Unwrap() error {
	return e.Err
}

// SchemaError reports a config file whose required structural nodes have the
// wrong type (e.g. the server section is not an object or array).
type SchemaError struct {
	Client model.Client
	Path   string
	// Node names the offending node, e.g. "mcpServers".
	Node    string
	Message string
}

// Error returns a formatted error message.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: config %s: node %q: %s", e.Client, e.Path, e.Node, e.Message)
}

// WriteError reports an I/O failure while saving a config file.
type WriteError struct {
	Client model.Client
	Path   string
	Err    error
}

// Error returns a formatted error message.
func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: failed to write config %s: %v", e.Client, e.Path, e.Err)
}

// Unwrap returns the underlying I/O error.
func (e *WriteError) Unwrap() error {
	return e.Err
}

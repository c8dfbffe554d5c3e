package sync

import (
	"fmt"
	"strings"

	"github.com/klauern/mcpsync/internal/model"
)

// SourceUnavailableError reports a sync source whose config is missing
// or unreadable.
type SourceUnavailableError struct {
	Client model.Client
	Path   string
	Err    error
}

// Error returns a formatted error message.
func (e *SourceUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("source %s unavailable (%s): %v", e.Client, e.Path, e.Err)
	}
	return fmt.Sprintf("source %s has no config at %s", e.Client, e.Path)
}

// Unwrap returns the underlying load error, if any.
func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

// NoMatchingServersError reports a name filter that selected nothing.
type NoMatchingServersError struct {
	Requested []string
}

// Error returns a formatted error message.
func (e *NoMatchingServersError) Error() string {
	return fmt.Sprintf("no servers match filter: %s", strings.Join(e.Requested, ", "))
}

// DuplicateServerError reports an add that would clobber an existing
// entry without the replace flag.
type DuplicateServerError struct {
	Client model.Client
	Name   string
}

// Error returns a formatted error message.
func (e *DuplicateServerError) Error() string {
	return fmt.Sprintf("server %q already exists in %s (use force to replace)", e.Name, e.Client)
}

// ServerNotFoundError reports an operation on a server name the client
// does not have.
type ServerNotFoundError struct {
	Client model.Client
	Name   string
}

// Error returns a formatted error message.
func (e *ServerNotFoundError) Error() string {
	return fmt.Sprintf("server %q not found in %s", e.Name, e.Client)
}

package model

import "fmt"

// ValidationError reports a server entry that violates the model invariants.
type ValidationError struct {
	// Field is the name of the offending field.
	Field string
	// Message describes the violation.
	Message string
}

// Error returns a formatted validation error message.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %q: %s", e.Field, e.Message)
}

// UnknownClientError reports an unrecognized client identifier.
type UnknownClientError struct {
	Client string
}

// Error returns a formatted error message.
func (e *UnknownClientError) Error() string {
	return fmt.Sprintf("unknown client %q", e.Client)
}

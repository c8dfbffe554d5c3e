package backup

import "fmt"

// NotFoundError reports a snapshot ID absent from the index or a snapshot
// file missing from disk.
type NotFoundError struct {
	ID string
}

// Error returns a formatted error message.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("backup %q not found", e.ID)
}

// CorruptError reports a snapshot whose content no longer matches its
// recorded hash.
type CorruptError struct {
	ID   string
	Path string
}

// Error returns a formatted error message.
func (e *CorruptError) Error() string {
	return fmt.Sprintf("backup %q corrupted: %s does not match recorded hash", e.ID, e.Path)
}

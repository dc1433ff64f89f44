package retention

import "fmt"

// RemovalError describes a filesystem failure during cleanup.
type RemovalError struct {
	Op    string // "stat", "read" or "remove"
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *RemovalError) Error() string {
	return fmt.Sprintf("retention %s %s: %v", e.Op, e.Path, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *RemovalError) Unwrap() error {
	return e.Cause
}

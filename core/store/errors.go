package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Read when no object exists at the given path.
var ErrNotFound = errors.New("store: object not found")

// ConflictError indicates that a compare-and-swap write was rejected because
// the object (or ref) changed since it was last read. The operation is
// retryable after a fresh read; it must never be retried with the same token.
type ConflictError struct {
	// Path is the object path or ref name the write targeted.
	Path string
	// Expected is the version or parent ref the caller presented.
	Expected string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("store: conflict writing %q (expected version %q no longer current)", e.Path, e.Expected)
}

// UnavailableError indicates the store itself failed to serve a request
// (network failure or an unexpected HTTP status).
type UnavailableError struct {
	// Status is the HTTP status code, or 0 for transport-level failures.
	Status int
	// Body holds a truncated response body for diagnostics.
	Body string
	// Err is the underlying transport error, if any.
	Err error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("store: request failed: %v", e.Err)
	}
	return fmt.Sprintf("store: unexpected status %d: %s", e.Status, e.Body)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

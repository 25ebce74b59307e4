package feed

import (
	"errors"
	"fmt"
)

// ErrMissingCredentials is returned before any network call when the feed
// endpoint or access token is not configured.
var ErrMissingCredentials = errors.New("feed: endpoint or token not configured")

// UnavailableError indicates the feed answered with a non-success status or
// could not be reached at all. No partial results accompany it.
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
		return fmt.Sprintf("feed: request failed: %v", e.Err)
	}
	return fmt.Sprintf("feed: unexpected status %d: %s", e.Status, e.Body)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// ParseError indicates the feed returned a payload that could not be decoded.
type ParseError struct {
	// Page is the page number whose payload failed to decode.
	Page int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("feed: malformed payload on page %d: %v", e.Page, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Package tideerr contains error types shared between the tidegate packages.
package tideerr

import (
	"fmt"
	"time"
)

// TransportError is returned when an operation on the GitHub API failed.
// Events are not retried, the fields are informational.
type TransportError struct {
	// Op is the name of the failed API operation.
	Op string
	// Err is the wrapped original error
	Err error
	// Temporary is true if the server reported an error that usually goes
	// away by itself (5xx, rate-limits).
	Temporary bool
	// RetryAfter is the earliest point in time the operation might
	// succeed, it is zero if it is unknown.
	RetryAfter time.Time
}

func NewTransportError(op string, originalErr error) *TransportError {
	return &TransportError{
		Op:  op,
		Err: originalErr,
	}
}

func NewTemporaryTransportError(op string, originalErr error, retryAfter time.Time) *TransportError {
	return &TransportError{
		Op:         op,
		Err:        originalErr,
		Temporary:  true,
		RetryAfter: retryAfter,
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Error() string {
	if !e.Temporary {
		return fmt.Sprintf("github api: %s failed: %s", e.Op, e.Err)
	}

	if e.RetryAfter.IsZero() {
		return fmt.Sprintf("github api: %s failed temporarily: %s", e.Op, e.Err)
	}

	return fmt.Sprintf("github api: %s failed temporarily (retry after %s): %s", e.Op, e.RetryAfter, e.Err)
}

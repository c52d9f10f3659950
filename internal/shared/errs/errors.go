package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Error taxonomy for the analytics core.
//
// DataUnavailable: a store query failed or timed out. Propagated uncaught to
// the caller; the core never substitutes empty results for a failed read.
// InsufficientData is NOT an error: a user with no events resolves to defined
// defaults (unknown health bucket, dormant segment, zero-rate funnel).
// InvalidWindow: malformed input, rejected before any query runs.

var (
	// ErrInvalidWindow rejects non-positive or inverted time windows.
	ErrInvalidWindow = errors.New("invalid time window")

	// ErrNotFound signals a missing user profile or campaign.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTier rejects an unrecognized subscription tier filter.
	ErrInvalidTier = errors.New("invalid tier")
)

// DataUnavailableError wraps a store-level failure so callers can
// distinguish "the data layer broke" from computation errors.
type DataUnavailableError struct {
	Op  string
	Err error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("data unavailable: %s: %v", e.Op, e.Err)
}

func (e *DataUnavailableError) Unwrap() error {
	return e.Err
}

// DataUnavailable wraps err as a DataUnavailableError for operation op.
// Returns nil when err is nil.
func DataUnavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	return &DataUnavailableError{Op: op, Err: err}
}

// IsDataUnavailable reports whether err is (or wraps) a store failure.
func IsDataUnavailable(err error) bool {
	var due *DataUnavailableError
	return errors.As(err, &due)
}

// HTTPStatus maps a taxonomy error onto an HTTP status code. Controllers use
// it so every endpoint reports the same class of failure the same way.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidWindow), errors.Is(err, ErrInvalidTier):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case IsDataUnavailable(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

package weather

import "errors"

// Error taxonomy for the pipeline. Transient failures are tagged with
// Transient at the boundary that raises them; retry wrappers consult
// IsRetryable instead of blanket-retrying every failure.
var (
	// ErrLocationNotFound means the geocoding provider had no match for the
	// requested location name. Retrying does not help.
	ErrLocationNotFound = errors.New("location not found")

	// ErrFetchFailed covers transport-level failures and non-2xx responses
	// from the forecast endpoint.
	ErrFetchFailed = errors.New("forecast fetch failed")

	// ErrMalformedPayload means the expected top-level payload structure
	// (properties.timeseries, properties.meta.updated_at) is absent.
	ErrMalformedPayload = errors.New("malformed forecast payload")

	// ErrMissingField means a required numeric field is absent from an
	// instant-details object.
	ErrMissingField = errors.New("missing field in payload details")

	// ErrInvalidTimestamp means an input could not be parsed as an ISO-8601
	// instant.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrPersistence covers database connection failures and constraint
	// violations.
	ErrPersistence = errors.New("persistence failure")
)

type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }

func (e *transientError) Unwrap() error { return e.err }

// Transient tags err as safe to retry. errors.Is/As still see the wrapped
// error through Unwrap.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// IsRetryable reports whether err was tagged transient at the boundary
// where it was raised.
func IsRetryable(err error) bool {
	var t *transientError
	return errors.As(err, &t)
}

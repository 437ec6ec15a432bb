package domain

import (
	"errors"
	"fmt"
	"time"
)

// Common domain errors
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCategory is returned for category names or codes outside the
	// four known categories.
	ErrInvalidCategory = errors.New("invalid category")

	// Source errors
	ErrUnsupported       = errors.New("operation not supported by this source")
	ErrSourceUnavailable = errors.New("no source could serve the request")
	ErrPersistence       = errors.New("local persistence failed")
)

// SkippableError marks one malformed catalog entry in a backend payload.
// The rest of the payload is still usable.
type SkippableError struct {
	Err   error
	Kind  string
	Index int
}

func (e *SkippableError) Error() string {
	msg := fmt.Sprintf("%s #%d", e.Kind, e.Index)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SkippableError) Unwrap() error {
	return e.Err
}

// NewSkippableError wraps the decode error of the index-th entry of kind
func NewSkippableError(kind string, index int, err error) *SkippableError {
	return &SkippableError{Err: err, Kind: kind, Index: index}
}

// IsSkippable reports whether err marks a single skippable entry
func IsSkippable(err error) bool {
	var se *SkippableError
	return errors.As(err, &se)
}

// RetryableError is returned when the backend throttles or is temporarily
// down. RetryAfter is the delay it asked for.
type RetryableError struct {
	Err        error
	RetryAfter time.Duration
}

func (e *RetryableError) Error() string {
	msg := "backend temporarily unavailable"
	if e.Err != nil {
		msg = e.Err.Error()
	}
	if e.RetryAfter > 0 {
		msg += fmt.Sprintf(" (retry after %s)", e.RetryAfter)
	}
	return msg
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// NewRetryableError creates a new retryable error
func NewRetryableError(err error, retryAfter time.Duration) *RetryableError {
	return &RetryableError{Err: err, RetryAfter: retryAfter}
}

// IsRetryable returns true if the error should be retried
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// GetRetryAfter returns the requested delay if err is retryable
func GetRetryAfter(err error) (time.Duration, bool) {
	var re *RetryableError
	if errors.As(err, &re) {
		return re.RetryAfter, true
	}
	return 0, false
}

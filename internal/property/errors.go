package property

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks malformed or incomplete addresses and missing coordinates.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when the address search has no match.
	ErrNotFound = errors.New("property not found")
)

// InvalidInputf wraps ErrInvalidInput with a message.
func InvalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// ValidationError is the provider rejecting the search parameters (HTTP 422).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "provider validation error: " + e.Message
}

// UpstreamError is any other provider or network failure.
type UpstreamError struct {
	Status int
	Body   string
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream error: %v", e.Err)
	}
	return fmt.Sprintf("upstream error: status %d: %s", e.Status, e.Body)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

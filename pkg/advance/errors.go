package advance

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when a request carries a value the
	// calculators cannot work with, such as an unknown pay frequency or a
	// non-positive loan term.
	ErrInvalidInput = errors.New("invalid input")
)

// InvalidInputError carries the offending field and reason so the transport
// layer can surface a client error without leaking internals.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

package ledger

import (
	"errors"
	"fmt"
)

// ErrLoanNotFound is returned when a loan id has no ledger entry.
var ErrLoanNotFound = errors.New("loan not found")

// NotFoundError carries the missing id for logging; it unwraps to
// ErrLoanNotFound for errors.Is checks at the transport boundary.
type NotFoundError struct {
	LoanID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("loan %s not found", e.LoanID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrLoanNotFound
}

// IsNotFound returns true if the error indicates a missing loan record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrLoanNotFound)
}

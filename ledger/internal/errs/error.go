package errs

import (
	"context"
	"errors"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrBookUnavailable  = errors.New("book unavailable")
	ErrPatronIneligible = errors.New("patron ineligible")
	ErrAlreadyReturned  = errors.New("loan already returned")
	ErrInvalidDateRange = errors.New("due date before loan date")
	ErrValidation       = errors.New("invalid request")
	// ErrInconsistent means a compensating step failed and loan state and
	// inventory may have diverged.
	ErrInconsistent = errors.New("loan and inventory diverged")
)

// Message returns the user-facing category for err. Errors outside the
// known kinds collapse into a generic message.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInconsistent):
		return "the operation failed and requires manual reconciliation"
	case errors.Is(err, ErrNotFound):
		return "book, patron or loan not found"
	case errors.Is(err, ErrBookUnavailable):
		return "no copies of the book are available"
	case errors.Is(err, ErrPatronIneligible):
		return "patron cannot borrow more books"
	case errors.Is(err, ErrAlreadyReturned):
		return "the book has already been returned"
	case errors.Is(err, ErrInvalidDateRange):
		return "due date cannot be earlier than loan date"
	case errors.Is(err, ErrValidation):
		return "invalid request"
	case errors.Is(err, context.DeadlineExceeded):
		return "the ledger is busy, try again later"
	default:
		return "internal error"
	}
}

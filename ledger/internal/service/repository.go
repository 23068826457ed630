package service

import (
	"context"
	"time"

	"github.com/Astemirdum/loan-ledger/ledger/internal/model"
	"github.com/Astemirdum/loan-ledger/pkg/kafka"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=mocks/mock.go

// LoanRepository persists loan records.
type LoanRepository interface {
	CreateLoan(ctx context.Context, loan model.Loan) (model.Loan, error)
	GetLoan(ctx context.Context, id uuid.UUID) (model.Loan, error)
	// MarkReturned moves an active loan to returned. It fails with
	// errs.ErrAlreadyReturned when the loan is no longer active.
	MarkReturned(ctx context.Context, id uuid.UUID, returnDate time.Time, fine decimal.Decimal) (model.Loan, error)
	// ReopenLoan undoes MarkReturned.
	ReopenLoan(ctx context.Context, id uuid.UUID) error
	// DeleteLoan undoes CreateLoan.
	DeleteLoan(ctx context.Context, id uuid.UUID) error
	ListLoans(ctx context.Context, filter model.LoanFilter) ([]model.Loan, error)
}

// Inventory owns the available-copy counters of books.
type Inventory interface {
	GetAvailableCopies(ctx context.Context, bookID int64) (int, error)
	// DecrementAvailable fails with errs.ErrBookUnavailable instead of
	// going below zero.
	DecrementAvailable(ctx context.Context, bookID int64) error
	IncrementAvailable(ctx context.Context, bookID int64) error
}

type PatronDirectory interface {
	GetStatus(ctx context.Context, patronID int64) (model.PatronStatus, error)
	GetActiveLoanCount(ctx context.Context, patronID int64) (int, error)
}

// Transactor runs fn so that every store call made with the ctx it
// receives commits or rolls back together.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	Publish(ctx context.Context, ev kafka.LoanEvent) error
}

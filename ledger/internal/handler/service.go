package handler

import (
	"context"

	"github.com/Astemirdum/loan-ledger/ledger/internal/model"
	"github.com/Astemirdum/loan-ledger/ledger/internal/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type LedgerService interface {
	Issue(ctx context.Context, req model.IssueRequest) (model.Loan, error)
	ReturnLoan(ctx context.Context, loanID uuid.UUID, returnedBy string) (decimal.Decimal, error)
	GetLoan(ctx context.Context, loanID uuid.UUID) (model.Loan, error)
	ListLoans(ctx context.Context, filter model.LoanFilter) ([]model.Loan, error)
	View(loan model.Loan) model.LoanView
	CanPatronBorrow(ctx context.Context, patronID int64) (bool, error)
	HasActiveLoans(ctx context.Context, patronID int64) (bool, error)
	TotalFinesByPatron(ctx context.Context, patronID int64) (decimal.Decimal, error)
	Stats(ctx context.Context) (model.LoanStats, error)
	ReturnStats(ctx context.Context) (model.ReturnStats, error)
	PopularBooks(ctx context.Context, limit int) ([]model.BookLoans, error)
	MostActivePatrons(ctx context.Context, limit int) ([]model.PatronLoans, error)
	LoansByMonth(ctx context.Context) ([]model.MonthLoans, error)
}

var _ LedgerService = (*service.Ledger)(nil)

package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LoanStatus string

const (
	LoanStatusActive   LoanStatus = "active"
	LoanStatusReturned LoanStatus = "returned"
)

type PatronStatus string

const (
	PatronStatusActive   PatronStatus = "active"
	PatronStatusInactive PatronStatus = "inactive"
	PatronStatusBlocked  PatronStatus = "blocked"
)

// Loan is one book copy lent to one patron. Dates are calendar days at
// midnight in the ledger's location.
type Loan struct {
	ID         uuid.UUID       `json:"loanId" db:"id"`
	BookID     int64           `json:"bookId" db:"book_id"`
	PatronID   int64           `json:"patronId" db:"patron_id"`
	LoanDate   time.Time       `json:"loanDate" db:"loan_date"`
	DueDate    time.Time       `json:"dueDate" db:"due_date"`
	ReturnDate *time.Time      `json:"returnDate" db:"return_date"`
	Status     LoanStatus      `json:"status" db:"status"`
	FineAmount decimal.Decimal `json:"fineAmount" db:"fine_amount"`
	Notes      string          `json:"notes" db:"notes"`
	IssuedBy   string          `json:"issuedBy" db:"issued_by"`
}

func (l Loan) IsActive() bool {
	return l.Status == LoanStatusActive
}

type Book struct {
	ID              int64  `json:"bookId" db:"id"`
	Title           string `json:"title" db:"title"`
	CopiesTotal     int    `json:"copiesTotal" db:"copies_total"`
	CopiesAvailable int    `json:"copiesAvailable" db:"copies_available"`
}

type Patron struct {
	ID        int64        `json:"patronId" db:"id"`
	FirstName string       `json:"firstName" db:"first_name"`
	LastName  string       `json:"lastName" db:"last_name"`
	Status    PatronStatus `json:"status" db:"status"`
}

type IssueRequest struct {
	BookID   int64 `json:"bookId" validate:"required,gt=0"`
	PatronID int64 `json:"patronId" validate:"required,gt=0"`
	// Days is the loan period; zero means the configured default.
	Days int `json:"days"`
	// DueDate overrides Days when set.
	DueDate  *Date  `json:"dueDate,omitempty"`
	Notes    string `json:"notes" validate:"max=1000"`
	IssuedBy string `json:"-"`
}

type ReturnResponse struct {
	LoanID     uuid.UUID       `json:"loanId"`
	FineAmount decimal.Decimal `json:"fineAmount"`
}

// LoanView is a loan together with its state as of today.
type LoanView struct {
	Loan        `json:",inline"`
	Overdue     bool            `json:"overdue"`
	OverdueDays int             `json:"overdueDays"`
	Fine        decimal.Decimal `json:"fine"`
}

type FineResponse struct {
	LoanID      uuid.UUID       `json:"loanId"`
	OverdueDays int             `json:"overdueDays"`
	Fine        decimal.Decimal `json:"fine"`
	Final       bool            `json:"final"`
}

type Eligibility struct {
	PatronID       int64 `json:"patronId"`
	CanBorrow      bool  `json:"canBorrow"`
	HasActiveLoans bool  `json:"hasActiveLoans"`
}

type PatronFines struct {
	PatronID int64           `json:"patronId"`
	Total    decimal.Decimal `json:"total"`
}

type LoanStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Returned int `json:"returned"`
	Overdue  int `json:"overdue"`
}

// ReturnStats splits closed loans by punctuality and counts active loans
// already past due.
type ReturnStats struct {
	OnTime         int `json:"onTime"`
	Late           int `json:"late"`
	CurrentOverdue int `json:"currentOverdue"`
}

type BookLoans struct {
	BookID int64 `json:"bookId"`
	Loans  int   `json:"loans"`
}

type PatronLoans struct {
	PatronID int64 `json:"patronId"`
	Loans    int   `json:"loans"`
}

// MonthLoans counts loans issued in one calendar month, formatted 2006-01.
type MonthLoans struct {
	Month string `json:"month"`
	Loans int    `json:"loans"`
}

// LoanFilter narrows ListLoans. Zero values match everything.
type LoanFilter struct {
	Status      LoanStatus
	PatronID    int64
	BookID      int64
	OverdueOnly bool
	// OverdueAsOf is filled by the ledger from its clock.
	OverdueAsOf time.Time
}

type Date struct {
	time.Time `json:",inline"`
}

func (d *Date) UnmarshalJSON(b []byte) (err error) {
	s := strings.Trim(string(b), "\"")
	date, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return err
	}
	d.Time = date
	return
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(time.DateOnly) + `"`), nil
}

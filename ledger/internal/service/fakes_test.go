package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Astemirdum/loan-ledger/ledger/internal/errs"
	"github.com/Astemirdum/loan-ledger/ledger/internal/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// store is an in-memory stand-in for the Postgres store.
type store struct {
	mu      sync.Mutex
	books   map[int64]*model.Book
	patrons map[int64]model.PatronStatus
	loans   map[uuid.UUID]model.Loan
}

func newStore() *store {
	return &store{
		books:   make(map[int64]*model.Book),
		patrons: make(map[int64]model.PatronStatus),
		loans:   make(map[uuid.UUID]model.Loan),
	}
}

func (s *store) addBook(id int64, total, available int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books[id] = &model.Book{ID: id, CopiesTotal: total, CopiesAvailable: available}
}

func (s *store) addPatron(id int64, status model.PatronStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patrons[id] = status
}

func (s *store) available(id int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.books[id].CopiesAvailable
}

func (s *store) loanCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.loans)
}

func (s *store) CreateLoan(_ context.Context, loan model.Loan) (model.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.books[loan.BookID]; !ok {
		return model.Loan{}, errs.ErrNotFound
	}
	if _, ok := s.patrons[loan.PatronID]; !ok {
		return model.Loan{}, errs.ErrNotFound
	}
	s.loans[loan.ID] = loan
	return loan, nil
}

func (s *store) GetLoan(_ context.Context, id uuid.UUID) (model.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	loan, ok := s.loans[id]
	if !ok {
		return model.Loan{}, errs.ErrNotFound
	}
	return loan, nil
}

func (s *store) MarkReturned(_ context.Context, id uuid.UUID, returnDate time.Time, fine decimal.Decimal) (model.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	loan, ok := s.loans[id]
	if !ok {
		return model.Loan{}, errs.ErrNotFound
	}
	if loan.Status != model.LoanStatusActive {
		return model.Loan{}, errs.ErrAlreadyReturned
	}
	loan.Status = model.LoanStatusReturned
	loan.ReturnDate = &returnDate
	loan.FineAmount = fine
	s.loans[id] = loan
	return loan, nil
}

func (s *store) ReopenLoan(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	loan, ok := s.loans[id]
	if !ok {
		return errs.ErrNotFound
	}
	loan.Status = model.LoanStatusActive
	loan.ReturnDate = nil
	loan.FineAmount = decimal.Zero
	s.loans[id] = loan
	return nil
}

func (s *store) DeleteLoan(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.loans, id)
	return nil
}

func (s *store) ListLoans(_ context.Context, f model.LoanFilter) ([]model.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Loan
	for _, loan := range s.loans {
		if f.Status != "" && loan.Status != f.Status {
			continue
		}
		if f.PatronID != 0 && loan.PatronID != f.PatronID {
			continue
		}
		if f.BookID != 0 && loan.BookID != f.BookID {
			continue
		}
		if f.OverdueOnly && (loan.Status != model.LoanStatusActive || !loan.DueDate.Before(f.OverdueAsOf)) {
			continue
		}
		out = append(out, loan)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LoanDate.After(out[j].LoanDate)
	})
	return out, nil
}

func (s *store) GetAvailableCopies(_ context.Context, bookID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.books[bookID]
	if !ok {
		return 0, errs.ErrNotFound
	}
	return b.CopiesAvailable, nil
}

func (s *store) DecrementAvailable(_ context.Context, bookID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.books[bookID]
	if !ok {
		return errs.ErrNotFound
	}
	if b.CopiesAvailable <= 0 {
		return errs.ErrBookUnavailable
	}
	b.CopiesAvailable--
	return nil
}

func (s *store) IncrementAvailable(_ context.Context, bookID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.books[bookID]
	if !ok {
		return errs.ErrNotFound
	}
	if b.CopiesAvailable >= b.CopiesTotal {
		return errors.Errorf("book %d: all %d copies already available", bookID, b.CopiesTotal)
	}
	b.CopiesAvailable++
	return nil
}

func (s *store) GetStatus(_ context.Context, patronID int64) (model.PatronStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status, ok := s.patrons[patronID]
	if !ok {
		return "", errs.ErrNotFound
	}
	return status, nil
}

func (s *store) GetActiveLoanCount(_ context.Context, patronID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, loan := range s.loans {
		if loan.PatronID == patronID && loan.Status == model.LoanStatusActive {
			n++
		}
	}
	return n, nil
}

// clock is a mutable clock.Clock.
type clock struct {
	mu    sync.Mutex
	today time.Time
}

func newClock(date string) *clock {
	c := &clock{}
	c.set(date)
	return c
}

func (c *clock) set(date string) {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		panic(err)
	}
	c.mu.Lock()
	c.today = t
	c.mu.Unlock()
}

func (c *clock) Today() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.today
}

func day(date string) time.Time {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		panic(err)
	}
	return t
}

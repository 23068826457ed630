package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Astemirdum/loan-ledger/ledger/internal/errs"
	"github.com/Astemirdum/loan-ledger/ledger/internal/model"
	"github.com/Astemirdum/loan-ledger/ledger/internal/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newLedger(st *store, c *clock, opts ...service.Option) *service.Ledger {
	opts = append([]service.Option{service.WithClock(c)}, opts...)
	return service.NewLedger(st, st, st, zap.NewNop(), opts...)
}

func TestLedger_Scenarios(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newStore()
	st.addBook(1, 1, 1)
	st.addPatron(10, model.PatronStatusActive)
	c := newClock("2024-01-01")
	l := newLedger(st, c)

	// issue on 2024-01-01 for 14 days
	loan, err := l.Issue(ctx, model.IssueRequest{BookID: 1, PatronID: 10, Days: 14, IssuedBy: "librarian"})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, loan.ID)
	require.Equal(t, day("2024-01-01"), loan.LoanDate)
	require.Equal(t, day("2024-01-15"), loan.DueDate)
	require.Equal(t, model.LoanStatusActive, loan.Status)
	require.Nil(t, loan.ReturnDate)
	require.True(t, loan.FineAmount.IsZero())
	require.Equal(t, "librarian", loan.IssuedBy)
	require.Equal(t, 0, st.available(1))

	// returned before due
	c.set("2024-01-10")
	fine, err := l.ReturnLoan(ctx, loan.ID, "librarian")
	require.NoError(t, err)
	require.True(t, fine.IsZero())
	returned, err := l.GetLoan(ctx, loan.ID)
	require.NoError(t, err)
	require.Equal(t, model.LoanStatusReturned, returned.Status)
	require.Equal(t, day("2024-01-10"), *returned.ReturnDate)
	require.Equal(t, 1, st.available(1))

	// returned five days late
	c.set("2024-01-01")
	late, err := l.Issue(ctx, model.IssueRequest{BookID: 1, PatronID: 10, Days: 14})
	require.NoError(t, err)
	require.Equal(t, day("2024-01-15"), late.DueDate)
	c.set("2024-01-20")
	require.Equal(t, 5, l.OverdueDays(late))
	fine, err = l.ReturnLoan(ctx, late.ID, "librarian")
	require.NoError(t, err)
	require.Equal(t, "500", fine.String())

	// second return
	_, err = l.ReturnLoan(ctx, late.ID, "librarian")
	require.ErrorIs(t, err, errs.ErrAlreadyReturned)
	stored, err := l.GetLoan(ctx, late.ID)
	require.NoError(t, err)
	require.Equal(t, "500", stored.FineAmount.String())
	require.Equal(t, 1, st.available(1))
}

func TestLedger_Issue_Rejections(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name    string
		prepare func(st *store)
		req     model.IssueRequest
		wantErr error
	}{
		{
			name: "book unavailable",
			prepare: func(st *store) {
				st.addBook(3, 1, 0)
				st.addPatron(10, model.PatronStatusActive)
			},
			req:     model.IssueRequest{BookID: 3, PatronID: 10},
			wantErr: errs.ErrBookUnavailable,
		},
		{
			name: "unknown book",
			prepare: func(st *store) {
				st.addPatron(10, model.PatronStatusActive)
			},
			req:     model.IssueRequest{BookID: 404, PatronID: 10},
			wantErr: errs.ErrNotFound,
		},
		{
			name: "unknown patron",
			prepare: func(st *store) {
				st.addBook(1, 1, 1)
			},
			req:     model.IssueRequest{BookID: 1, PatronID: 404},
			wantErr: errs.ErrNotFound,
		},
		{
			name: "blocked patron",
			prepare: func(st *store) {
				st.addBook(1, 1, 1)
				st.addPatron(10, model.PatronStatusBlocked)
			},
			req:     model.IssueRequest{BookID: 1, PatronID: 10},
			wantErr: errs.ErrPatronIneligible,
		},
		{
			name: "inactive patron",
			prepare: func(st *store) {
				st.addBook(1, 1, 1)
				st.addPatron(10, model.PatronStatusInactive)
			},
			req:     model.IssueRequest{BookID: 1, PatronID: 10},
			wantErr: errs.ErrPatronIneligible,
		},
		{
			name: "negative period",
			prepare: func(st *store) {
				st.addBook(1, 1, 1)
				st.addPatron(10, model.PatronStatusActive)
			},
			req:     model.IssueRequest{BookID: 1, PatronID: 10, Days: -3},
			wantErr: errs.ErrInvalidDateRange,
		},
		{
			name: "explicit due date in the past",
			prepare: func(st *store) {
				st.addBook(1, 1, 1)
				st.addPatron(10, model.PatronStatusActive)
			},
			req:     model.IssueRequest{BookID: 1, PatronID: 10, DueDate: &model.Date{Time: day("2023-12-31")}},
			wantErr: errs.ErrInvalidDateRange,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			st := newStore()
			tt.prepare(st)
			l := newLedger(st, newClock("2024-01-01"))
			before := make(map[int64]int, len(st.books))
			for id, b := range st.books {
				before[id] = b.CopiesAvailable
			}

			_, err := l.Issue(ctx, tt.req)
			require.ErrorIs(t, err, tt.wantErr)
			require.Zero(t, st.loanCount())
			for id, available := range before {
				require.Equal(t, available, st.available(id))
			}
		})
	}
}

func TestLedger_Issue_PatronCap(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newStore()
	st.addBook(2, 10, 10)
	st.addPatron(11, model.PatronStatusActive)
	l := newLedger(st, newClock("2024-01-01"))

	for i := 0; i < service.MaxLoansPerPatron; i++ {
		_, err := l.Issue(ctx, model.IssueRequest{BookID: 2, PatronID: 11})
		require.NoError(t, err)
	}
	ok, err := l.CanPatronBorrow(ctx, 11)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = l.Issue(ctx, model.IssueRequest{BookID: 2, PatronID: 11})
	require.ErrorIs(t, err, errs.ErrPatronIneligible)
	require.Equal(t, 5, st.available(2))
	require.Equal(t, 5, st.loanCount())
}

func TestLedger_Issue_DueDates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newStore()
	st.addBook(1, 5, 5)
	st.addPatron(10, model.PatronStatusActive)
	l := newLedger(st, newClock("2024-01-01"), service.WithConfig(service.Config{
		DefaultLoanDays:   7,
		MaxLoansPerPatron: 3,
		FinePerDay:        decimal.RequireFromString("12.5"),
	}))

	byDefault, err := l.Issue(ctx, model.IssueRequest{BookID: 1, PatronID: 10})
	require.NoError(t, err)
	require.Equal(t, day("2024-01-08"), byDefault.DueDate)

	sameDay, err := l.Issue(ctx, model.IssueRequest{BookID: 1, PatronID: 10, DueDate: &model.Date{Time: day("2024-01-01")}})
	require.NoError(t, err)
	require.Equal(t, sameDay.LoanDate, sameDay.DueDate)

	explicit, err := l.Issue(ctx, model.IssueRequest{BookID: 1, PatronID: 10, Days: 3, DueDate: &model.Date{Time: day("2024-02-01")}})
	require.NoError(t, err)
	require.Equal(t, day("2024-02-01"), explicit.DueDate)

	for _, loan := range []model.Loan{byDefault, sameDay, explicit} {
		require.False(t, loan.DueDate.Before(loan.LoanDate))
	}

	_, err = l.Issue(ctx, model.IssueRequest{BookID: 1, PatronID: 10})
	require.ErrorIs(t, err, errs.ErrPatronIneligible)

	c := newClock("2024-01-11")
	require.Equal(t, "37.5", newLedger(st, c, service.WithConfig(service.Config{
		FinePerDay: decimal.RequireFromString("12.5"),
	})).CalculateFine(byDefault).String())
}

func TestLedger_OverdueAndFine(t *testing.T) {
	t.Parallel()
	c := newClock("2024-01-15")
	l := newLedger(newStore(), c)
	loan := model.Loan{
		ID:         uuid.New(),
		LoanDate:   day("2024-01-01"),
		DueDate:    day("2024-01-15"),
		Status:     model.LoanStatusActive,
		FineAmount: decimal.Zero,
	}

	require.False(t, l.IsOverdue(loan))
	require.Zero(t, l.OverdueDays(loan))
	require.True(t, l.CalculateFine(loan).IsZero())

	c.set("2024-01-16")
	require.True(t, l.IsOverdue(loan))
	require.Equal(t, 1, l.OverdueDays(loan))
	first := l.CalculateFine(loan)
	require.Equal(t, "100", first.String())
	require.True(t, first.Equal(l.CalculateFine(loan)))

	returnDate := day("2024-01-17")
	loan.ReturnDate = &returnDate
	loan.Status = model.LoanStatusReturned
	loan.FineAmount = decimal.NewFromInt(200)
	c.set("2024-03-01")
	require.False(t, l.IsOverdue(loan))
	require.Zero(t, l.OverdueDays(loan))
	require.Equal(t, "200", l.CalculateFine(loan).String())

	view := l.View(loan)
	require.False(t, view.Overdue)
	require.Equal(t, "200", view.Fine.String())
}

func TestLedger_RoundTripSameDay(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newStore()
	st.addBook(1, 3, 2)
	st.addPatron(10, model.PatronStatusActive)
	l := newLedger(st, newClock("2024-05-05"))

	loan, err := l.Issue(ctx, model.IssueRequest{BookID: 1, PatronID: 10})
	require.NoError(t, err)
	fine, err := l.ReturnLoan(ctx, loan.ID, "librarian")
	require.NoError(t, err)
	require.True(t, fine.IsZero())
	require.Equal(t, 2, st.available(1))

	got, err := l.GetLoan(ctx, loan.ID)
	require.NoError(t, err)
	require.Equal(t, got.Status == model.LoanStatusReturned, got.ReturnDate != nil)
}

func TestLedger_ReturnUnknownLoan(t *testing.T) {
	t.Parallel()
	l := newLedger(newStore(), newClock("2024-01-01"))
	_, err := l.ReturnLoan(context.Background(), uuid.New(), "librarian")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestLedger_PatronQueries(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newStore()
	st.addBook(1, 5, 5)
	st.addPatron(10, model.PatronStatusActive)
	st.addPatron(12, model.PatronStatusBlocked)
	c := newClock("2024-01-01")
	l := newLedger(st, c)

	ok, err := l.CanPatronBorrow(ctx, 10)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = l.CanPatronBorrow(ctx, 12)
	require.NoError(t, err)
	require.False(t, ok)
	_, err = l.CanPatronBorrow(ctx, 99)
	require.ErrorIs(t, err, errs.ErrNotFound)

	has, err := l.HasActiveLoans(ctx, 10)
	require.NoError(t, err)
	require.False(t, has)

	first, err := l.Issue(ctx, model.IssueRequest{BookID: 1, PatronID: 10})
	require.NoError(t, err)
	c.set("2024-01-05")
	second, err := l.Issue(ctx, model.IssueRequest{BookID: 1, PatronID: 10, Days: 1})
	require.NoError(t, err)

	c.set("2024-01-20")
	fine, err := l.ReturnLoan(ctx, first.ID, "librarian")
	require.NoError(t, err)
	require.Equal(t, "500", fine.String())

	// second is 14 days late and still out
	total, err := l.TotalFinesByPatron(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, "1900", total.String())

	has, err = l.HasActiveLoans(ctx, 10)
	require.NoError(t, err)
	require.True(t, has)

	overdue, err := l.ListLoans(ctx, model.LoanFilter{OverdueOnly: true})
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	require.Equal(t, second.ID, overdue[0].ID)

	byPatron, err := l.ListLoans(ctx, model.LoanFilter{PatronID: 10, Status: model.LoanStatusReturned})
	require.NoError(t, err)
	require.Len(t, byPatron, 1)
	require.Equal(t, first.ID, byPatron[0].ID)

	stats, err := l.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, model.LoanStats{Total: 2, Active: 1, Returned: 1, Overdue: 1}, stats)

	_, err = l.TotalFinesByPatron(ctx, 99)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestLedger_ConcurrentIssueLastCopy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newStore()
	st.addBook(1, 1, 1)
	const n = 20
	for i := int64(1); i <= n; i++ {
		st.addPatron(100+i, model.PatronStatusActive)
	}
	l := newLedger(st, newClock("2024-01-01"))

	var (
		wg          sync.WaitGroup
		mu          sync.Mutex
		succeeded   int
		unavailable int
	)
	for i := int64(1); i <= n; i++ {
		wg.Add(1)
		go func(patronID int64) {
			defer wg.Done()
			_, err := l.Issue(ctx, model.IssueRequest{BookID: 1, PatronID: patronID})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, errs.ErrBookUnavailable):
				unavailable++
			}
		}(100 + i)
	}
	wg.Wait()

	require.Equal(t, 1, succeeded)
	require.Equal(t, n-1, unavailable)
	require.Equal(t, 0, st.available(1))
	require.Equal(t, 1, st.loanCount())
}

func TestLedger_ConcurrentIssuePatronCap(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newStore()
	st.addPatron(10, model.PatronStatusActive)
	const n = 12
	for i := int64(1); i <= n; i++ {
		st.addBook(i, 1, 1)
	}
	l := newLedger(st, newClock("2024-01-01"))

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		succeeded  int
		ineligible int
	)
	for i := int64(1); i <= n; i++ {
		wg.Add(1)
		go func(bookID int64) {
			defer wg.Done()
			_, err := l.Issue(ctx, model.IssueRequest{BookID: bookID, PatronID: 10})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, errs.ErrPatronIneligible):
				ineligible++
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, service.MaxLoansPerPatron, succeeded)
	require.Equal(t, n-service.MaxLoansPerPatron, ineligible)
	count, err := st.GetActiveLoanCount(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, service.MaxLoansPerPatron, count)
}

func TestLedger_ConcurrentReturn(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newStore()
	st.addBook(1, 1, 1)
	st.addPatron(10, model.PatronStatusActive)
	l := newLedger(st, newClock("2024-01-01"))

	loan, err := l.Issue(ctx, model.IssueRequest{BookID: 1, PatronID: 10})
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		already   int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.ReturnLoan(ctx, loan.ID, "librarian")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, errs.ErrAlreadyReturned):
				already++
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, succeeded)
	require.Equal(t, 9, already)
	require.Equal(t, 1, st.available(1))
}

func TestLedger_LoanStatistics(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newStore()
	for _, id := range []int64{1, 2, 3} {
		st.addBook(id, 5, 5)
	}
	for _, id := range []int64{10, 11, 12} {
		st.addPatron(id, model.PatronStatusActive)
	}
	c := newClock("2023-01-10")
	l := newLedger(st, c)

	issue := func(bookID, patronID int64, days int) model.Loan {
		loan, err := l.Issue(ctx, model.IssueRequest{BookID: bookID, PatronID: patronID, Days: days})
		require.NoError(t, err)
		return loan
	}
	ret := func(loan model.Loan) {
		_, err := l.ReturnLoan(ctx, loan.ID, "librarian")
		require.NoError(t, err)
	}

	issue(3, 11, 0) // over a year ago, still out
	c.set("2023-12-20")
	onTime := issue(1, 10, 0)
	c.set("2024-01-02")
	ret(onTime)
	c.set("2024-01-05")
	late := issue(1, 10, 0)
	issue(2, 11, 0)
	c.set("2024-01-25")
	ret(late)
	c.set("2024-02-10")
	issue(1, 12, 3)
	c.set("2024-03-01")

	returns, err := l.ReturnStats(ctx)
	require.NoError(t, err)
	require.Equal(t, model.ReturnStats{OnTime: 1, Late: 1, CurrentOverdue: 3}, returns)

	books, err := l.PopularBooks(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, []model.BookLoans{
		{BookID: 1, Loans: 3},
		{BookID: 2, Loans: 1},
		{BookID: 3, Loans: 1},
	}, books)

	books, err = l.PopularBooks(ctx, 2)
	require.NoError(t, err)
	require.Len(t, books, 2)

	patrons, err := l.MostActivePatrons(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, []model.PatronLoans{
		{PatronID: 10, Loans: 2},
		{PatronID: 11, Loans: 2},
		{PatronID: 12, Loans: 1},
	}, patrons)

	months, err := l.LoansByMonth(ctx)
	require.NoError(t, err)
	require.Equal(t, []model.MonthLoans{
		{Month: "2023-12", Loans: 1},
		{Month: "2024-01", Loans: 2},
		{Month: "2024-02", Loans: 1},
	}, months)
}

func TestLedger_LoanStatistics_Empty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	l := newLedger(newStore(), newClock("2024-01-01"))

	returns, err := l.ReturnStats(ctx)
	require.NoError(t, err)
	require.Zero(t, returns)

	books, err := l.PopularBooks(ctx, 0)
	require.NoError(t, err)
	require.Empty(t, books)

	months, err := l.LoansByMonth(ctx)
	require.NoError(t, err)
	require.Empty(t, months)
}

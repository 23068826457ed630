package service

import (
	"context"
	"sort"
	"time"

	"github.com/Astemirdum/loan-ledger/ledger/internal/errs"
	"github.com/Astemirdum/loan-ledger/ledger/internal/model"
	"github.com/Astemirdum/loan-ledger/pkg/clock"
	"github.com/Astemirdum/loan-ledger/pkg/kafka"
	"github.com/Astemirdum/loan-ledger/pkg/keylock"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	DefaultLoanDays   = 14
	MaxLoansPerPatron = 5
	DefaultTopLimit   = 10
	statsMonths       = 12
)

var DefaultFinePerDay = decimal.NewFromInt(100)

type Config struct {
	DefaultLoanDays   int
	MaxLoansPerPatron int
	FinePerDay        decimal.Decimal
	// OperationTimeout bounds every ledger call; zero disables it.
	OperationTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		DefaultLoanDays:   DefaultLoanDays,
		MaxLoansPerPatron: MaxLoansPerPatron,
		FinePerDay:        DefaultFinePerDay,
		OperationTimeout:  5 * time.Second,
	}
}

type Option func(*Ledger)

func WithConfig(cfg Config) Option {
	return func(l *Ledger) {
		l.cfg = cfg
	}
}

func WithClock(c clock.Clock) Option {
	return func(l *Ledger) {
		l.clock = c
	}
}

// WithTransactor makes issue and return run inside store transactions
// instead of relying on compensation.
func WithTransactor(tx Transactor) Option {
	return func(l *Ledger) {
		l.tx = tx
	}
}

func WithPublisher(p Publisher) Option {
	return func(l *Ledger) {
		l.events = p
	}
}

func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(l *Ledger) {
		l.newID = gen
	}
}

// WithNow sets the time source stamped on published events.
func WithNow(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// Ledger enforces the loan lifecycle: issue, return, overdue detection
// and fines.
type Ledger struct {
	log       *zap.Logger
	cfg       Config
	clock     clock.Clock
	loans     LoanRepository
	inventory Inventory
	patrons   PatronDirectory
	tx        Transactor
	events    Publisher
	newID     func() uuid.UUID
	now       func() time.Time

	bookLocks   *keylock.Locker[int64]
	patronLocks *keylock.Locker[int64]
}

func NewLedger(loans LoanRepository, inventory Inventory, patrons PatronDirectory, log *zap.Logger, opts ...Option) *Ledger {
	l := &Ledger{
		log:         log.Named("ledger"),
		cfg:         DefaultConfig(),
		clock:       clock.New(time.UTC),
		loans:       loans,
		inventory:   inventory,
		patrons:     patrons,
		newID:       uuid.New,
		now:         time.Now,
		bookLocks:   keylock.New[int64](),
		patronLocks: keylock.New[int64](),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.cfg.DefaultLoanDays <= 0 {
		l.cfg.DefaultLoanDays = DefaultLoanDays
	}
	if l.cfg.MaxLoansPerPatron <= 0 {
		l.cfg.MaxLoansPerPatron = MaxLoansPerPatron
	}
	return l
}

func (l *Ledger) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if l.cfg.OperationTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, l.cfg.OperationTimeout)
}

// Issue lends a copy of req.BookID to req.PatronID.
func (l *Ledger) Issue(ctx context.Context, req model.IssueRequest) (model.Loan, error) {
	ctx, cancel := l.withTimeout(ctx)
	defer cancel()

	loanDate := l.clock.Today()
	dueDate, err := l.dueDate(loanDate, req)
	if err != nil {
		return model.Loan{}, err
	}

	// patron before book, always
	unlockPatron, err := l.patronLocks.LockContext(ctx, req.PatronID)
	if err != nil {
		return model.Loan{}, errors.Wrapf(err, "lock patron %d", req.PatronID)
	}
	defer unlockPatron()
	unlockBook, err := l.bookLocks.LockContext(ctx, req.BookID)
	if err != nil {
		return model.Loan{}, errors.Wrapf(err, "lock book %d", req.BookID)
	}
	defer unlockBook()

	loan := model.Loan{
		ID:         l.newID(),
		BookID:     req.BookID,
		PatronID:   req.PatronID,
		LoanDate:   loanDate,
		DueDate:    dueDate,
		Status:     model.LoanStatusActive,
		FineAmount: decimal.Zero,
		Notes:      req.Notes,
		IssuedBy:   req.IssuedBy,
	}
	err = l.atomic(ctx, "issue", func(ctx context.Context, u *undoLog) error {
		if err := l.checkIssue(ctx, req.BookID, req.PatronID); err != nil {
			return err
		}
		created, err := l.loans.CreateLoan(ctx, loan)
		if err != nil {
			return errors.Wrap(err, "create loan")
		}
		u.push("delete loan", func(ctx context.Context) error {
			return l.loans.DeleteLoan(ctx, created.ID)
		})
		if err := l.inventory.DecrementAvailable(ctx, req.BookID); err != nil {
			return errors.Wrapf(err, "decrement available of book %d", req.BookID)
		}
		loan = created
		return nil
	})
	if err != nil {
		l.log.Debug("issue rejected",
			zap.Int64("bookID", req.BookID),
			zap.Int64("patronID", req.PatronID),
			zap.Error(err))
		return model.Loan{}, err
	}

	l.log.Info("loan issued",
		zap.Stringer("loanID", loan.ID),
		zap.Int64("bookID", loan.BookID),
		zap.Int64("patronID", loan.PatronID),
		zap.String("issuedBy", loan.IssuedBy),
		zap.Time("dueDate", loan.DueDate))
	l.publish(ctx, kafka.EventLoanIssued, loan, loan.IssuedBy)
	return loan, nil
}

func (l *Ledger) dueDate(loanDate time.Time, req model.IssueRequest) (time.Time, error) {
	var due time.Time
	switch {
	case req.DueDate != nil:
		y, m, d := req.DueDate.Date()
		due = time.Date(y, m, d, 0, 0, 0, 0, loanDate.Location())
	case req.Days < 0:
		return time.Time{}, errors.Wrapf(errs.ErrInvalidDateRange, "loan period of %d days", req.Days)
	case req.Days == 0:
		due = clock.AddDays(loanDate, l.cfg.DefaultLoanDays)
	default:
		due = clock.AddDays(loanDate, req.Days)
	}
	if clock.DaysBetween(loanDate, due) < 0 {
		return time.Time{}, errors.Wrapf(errs.ErrInvalidDateRange,
			"due %s, loan %s", due.Format(time.DateOnly), loanDate.Format(time.DateOnly))
	}
	return due, nil
}

func (l *Ledger) checkIssue(ctx context.Context, bookID, patronID int64) error {
	available, err := l.inventory.GetAvailableCopies(ctx, bookID)
	if err != nil {
		return errors.Wrapf(err, "book %d", bookID)
	}
	if available <= 0 {
		return errors.Wrapf(errs.ErrBookUnavailable, "book %d", bookID)
	}

	status, err := l.patrons.GetStatus(ctx, patronID)
	if err != nil {
		return errors.Wrapf(err, "patron %d", patronID)
	}
	if status != model.PatronStatusActive {
		return errors.Wrapf(errs.ErrPatronIneligible, "patron %d is %s", patronID, status)
	}

	count, err := l.patrons.GetActiveLoanCount(ctx, patronID)
	if err != nil {
		return errors.Wrapf(err, "active loans of patron %d", patronID)
	}
	if count >= l.cfg.MaxLoansPerPatron {
		return errors.Wrapf(errs.ErrPatronIneligible,
			"patron %d holds %d of %d loans", patronID, count, l.cfg.MaxLoansPerPatron)
	}
	return nil
}

// ReturnLoan closes an active loan on behalf of returnedBy and returns
// the fine charged for it.
func (l *Ledger) ReturnLoan(ctx context.Context, loanID uuid.UUID, returnedBy string) (decimal.Decimal, error) {
	ctx, cancel := l.withTimeout(ctx)
	defer cancel()

	loan, err := l.loans.GetLoan(ctx, loanID)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "loan %s", loanID)
	}
	if !loan.IsActive() {
		return decimal.Zero, errors.Wrapf(errs.ErrAlreadyReturned, "loan %s", loanID)
	}

	unlock, err := l.bookLocks.LockContext(ctx, loan.BookID)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "lock book %d", loan.BookID)
	}
	defer unlock()

	today := l.clock.Today()
	fine := l.fine(loan.DueDate, today)

	err = l.atomic(ctx, "return", func(ctx context.Context, u *undoLog) error {
		returned, err := l.loans.MarkReturned(ctx, loanID, today, fine)
		if err != nil {
			return errors.Wrapf(err, "loan %s", loanID)
		}
		u.push("reopen loan", func(ctx context.Context) error {
			return l.loans.ReopenLoan(ctx, loanID)
		})
		if err := l.inventory.IncrementAvailable(ctx, loan.BookID); err != nil {
			return errors.Wrapf(err, "increment available of book %d", loan.BookID)
		}
		loan = returned
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}

	l.log.Info("loan returned",
		zap.Stringer("loanID", loan.ID),
		zap.Int64("bookID", loan.BookID),
		zap.Int64("patronID", loan.PatronID),
		zap.String("returnedBy", returnedBy),
		zap.Stringer("fine", fine))
	l.publish(ctx, kafka.EventLoanReturned, loan, returnedBy)
	return fine, nil
}

// IsOverdue reports whether an unreturned loan is past its due date.
func (l *Ledger) IsOverdue(loan model.Loan) bool {
	if loan.ReturnDate != nil {
		return false
	}
	return clock.DaysBetween(loan.DueDate, l.clock.Today()) > 0
}

// OverdueDays counts calendar days past the due date. A loan due today
// is not overdue.
func (l *Ledger) OverdueDays(loan model.Loan) int {
	if !l.IsOverdue(loan) {
		return 0
	}
	return clock.DaysBetween(loan.DueDate, l.clock.Today())
}

// CalculateFine returns the stored fine of a returned loan, or the fine
// an active loan would be charged if returned today.
func (l *Ledger) CalculateFine(loan model.Loan) decimal.Decimal {
	if loan.ReturnDate != nil {
		return loan.FineAmount
	}
	return l.fine(loan.DueDate, l.clock.Today())
}

func (l *Ledger) fine(dueDate, on time.Time) decimal.Decimal {
	days := clock.DaysBetween(dueDate, on)
	if days <= 0 {
		return decimal.Zero
	}
	return l.cfg.FinePerDay.Mul(decimal.NewFromInt(int64(days)))
}

func (l *Ledger) CanPatronBorrow(ctx context.Context, patronID int64) (bool, error) {
	ctx, cancel := l.withTimeout(ctx)
	defer cancel()

	status, err := l.patrons.GetStatus(ctx, patronID)
	if err != nil {
		return false, errors.Wrapf(err, "patron %d", patronID)
	}
	if status != model.PatronStatusActive {
		return false, nil
	}
	count, err := l.patrons.GetActiveLoanCount(ctx, patronID)
	if err != nil {
		return false, errors.Wrapf(err, "active loans of patron %d", patronID)
	}
	return count < l.cfg.MaxLoansPerPatron, nil
}

func (l *Ledger) HasActiveLoans(ctx context.Context, patronID int64) (bool, error) {
	ctx, cancel := l.withTimeout(ctx)
	defer cancel()

	if _, err := l.patrons.GetStatus(ctx, patronID); err != nil {
		return false, errors.Wrapf(err, "patron %d", patronID)
	}
	count, err := l.patrons.GetActiveLoanCount(ctx, patronID)
	if err != nil {
		return false, errors.Wrapf(err, "active loans of patron %d", patronID)
	}
	return count > 0, nil
}

func (l *Ledger) GetLoan(ctx context.Context, loanID uuid.UUID) (model.Loan, error) {
	ctx, cancel := l.withTimeout(ctx)
	defer cancel()

	loan, err := l.loans.GetLoan(ctx, loanID)
	if err != nil {
		return model.Loan{}, errors.Wrapf(err, "loan %s", loanID)
	}
	return loan, nil
}

// View decorates loan with its overdue state and fine as of today.
func (l *Ledger) View(loan model.Loan) model.LoanView {
	return model.LoanView{
		Loan:        loan,
		Overdue:     l.IsOverdue(loan),
		OverdueDays: l.OverdueDays(loan),
		Fine:        l.CalculateFine(loan),
	}
}

func (l *Ledger) ListLoans(ctx context.Context, filter model.LoanFilter) ([]model.Loan, error) {
	ctx, cancel := l.withTimeout(ctx)
	defer cancel()

	if filter.OverdueOnly {
		filter.OverdueAsOf = l.clock.Today()
	}
	loans, err := l.loans.ListLoans(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "list loans")
	}
	return loans, nil
}

// TotalFinesByPatron sums stored fines of returned loans and projected
// fines of active ones.
func (l *Ledger) TotalFinesByPatron(ctx context.Context, patronID int64) (decimal.Decimal, error) {
	ctx, cancel := l.withTimeout(ctx)
	defer cancel()

	if _, err := l.patrons.GetStatus(ctx, patronID); err != nil {
		return decimal.Zero, errors.Wrapf(err, "patron %d", patronID)
	}
	loans, err := l.loans.ListLoans(ctx, model.LoanFilter{PatronID: patronID})
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "loans of patron %d", patronID)
	}
	total := decimal.Zero
	for _, loan := range loans {
		total = total.Add(l.CalculateFine(loan))
	}
	return total, nil
}

func (l *Ledger) Stats(ctx context.Context) (model.LoanStats, error) {
	ctx, cancel := l.withTimeout(ctx)
	defer cancel()

	loans, err := l.loans.ListLoans(ctx, model.LoanFilter{})
	if err != nil {
		return model.LoanStats{}, errors.Wrap(err, "list loans")
	}
	var stats model.LoanStats
	for _, loan := range loans {
		stats.Total++
		switch loan.Status {
		case model.LoanStatusActive:
			stats.Active++
		case model.LoanStatusReturned:
			stats.Returned++
		}
		if l.IsOverdue(loan) {
			stats.Overdue++
		}
	}
	return stats, nil
}

// ReturnStats counts returned loans by punctuality and active loans past
// their due date.
func (l *Ledger) ReturnStats(ctx context.Context) (model.ReturnStats, error) {
	ctx, cancel := l.withTimeout(ctx)
	defer cancel()

	loans, err := l.loans.ListLoans(ctx, model.LoanFilter{})
	if err != nil {
		return model.ReturnStats{}, errors.Wrap(err, "list loans")
	}
	var stats model.ReturnStats
	for _, loan := range loans {
		switch {
		case loan.ReturnDate != nil && clock.DaysBetween(loan.DueDate, *loan.ReturnDate) > 0:
			stats.Late++
		case loan.ReturnDate != nil:
			stats.OnTime++
		case l.IsOverdue(loan):
			stats.CurrentOverdue++
		}
	}
	return stats, nil
}

// PopularBooks ranks books by how many times they were lent. A limit
// below one means DefaultTopLimit.
func (l *Ledger) PopularBooks(ctx context.Context, limit int) ([]model.BookLoans, error) {
	counts, err := l.countLoans(ctx, func(loan model.Loan) int64 { return loan.BookID })
	if err != nil {
		return nil, err
	}
	top := make([]model.BookLoans, 0, len(counts))
	for _, c := range topCounts(counts, limit) {
		top = append(top, model.BookLoans{BookID: c.key, Loans: c.loans})
	}
	return top, nil
}

// MostActivePatrons ranks patrons by how many loans they took. A limit
// below one means DefaultTopLimit.
func (l *Ledger) MostActivePatrons(ctx context.Context, limit int) ([]model.PatronLoans, error) {
	counts, err := l.countLoans(ctx, func(loan model.Loan) int64 { return loan.PatronID })
	if err != nil {
		return nil, err
	}
	top := make([]model.PatronLoans, 0, len(counts))
	for _, c := range topCounts(counts, limit) {
		top = append(top, model.PatronLoans{PatronID: c.key, Loans: c.loans})
	}
	return top, nil
}

// LoansByMonth counts loans issued during the last twelve months, oldest
// month first. Months without loans are left out.
func (l *Ledger) LoansByMonth(ctx context.Context) ([]model.MonthLoans, error) {
	ctx, cancel := l.withTimeout(ctx)
	defer cancel()

	loans, err := l.loans.ListLoans(ctx, model.LoanFilter{})
	if err != nil {
		return nil, errors.Wrap(err, "list loans")
	}
	since := l.clock.Today().AddDate(0, -statsMonths, 0)
	byMonth := make(map[string]int)
	for _, loan := range loans {
		if clock.DaysBetween(since, loan.LoanDate) < 0 {
			continue
		}
		byMonth[loan.LoanDate.Format("2006-01")]++
	}
	months := make([]model.MonthLoans, 0, len(byMonth))
	for month, n := range byMonth {
		months = append(months, model.MonthLoans{Month: month, Loans: n})
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Month < months[j].Month })
	return months, nil
}

type loanCount struct {
	key   int64
	loans int
}

func (l *Ledger) countLoans(ctx context.Context, key func(model.Loan) int64) (map[int64]int, error) {
	ctx, cancel := l.withTimeout(ctx)
	defer cancel()

	loans, err := l.loans.ListLoans(ctx, model.LoanFilter{})
	if err != nil {
		return nil, errors.Wrap(err, "list loans")
	}
	counts := make(map[int64]int)
	for _, loan := range loans {
		counts[key(loan)]++
	}
	return counts, nil
}

// topCounts orders by loans descending, ties by key, and keeps limit.
func topCounts(counts map[int64]int, limit int) []loanCount {
	if limit < 1 {
		limit = DefaultTopLimit
	}
	all := make([]loanCount, 0, len(counts))
	for k, n := range counts {
		all = append(all, loanCount{key: k, loans: n})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].loans != all[j].loans {
			return all[i].loans > all[j].loans
		}
		return all[i].key < all[j].key
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all
}

func (l *Ledger) publish(ctx context.Context, typ kafka.EventType, loan model.Loan, actor string) {
	if l.events == nil {
		return
	}
	ev := kafka.LoanEvent{
		Type:       typ,
		LoanID:     loan.ID.String(),
		BookID:     loan.BookID,
		PatronID:   loan.PatronID,
		Actor:      actor,
		DueDate:    loan.DueDate.Format(time.DateOnly),
		Fine:       loan.FineAmount,
		OccurredAt: l.now().UTC(),
	}
	if err := l.events.Publish(ctx, ev); err != nil {
		l.log.Warn("publish loan event",
			zap.String("type", string(typ)),
			zap.Stringer("loanID", loan.ID),
			zap.Error(err))
	}
}

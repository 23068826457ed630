package repository

import (
	"context"
	"time"

	"github.com/Astemirdum/loan-ledger/ledger/internal/errs"
	"github.com/Astemirdum/loan-ledger/ledger/internal/model"
	"github.com/Astemirdum/loan-ledger/ledger/internal/service"
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	loansTableName   = `loans`
	booksTableName   = `books`
	patronsTableName = `patrons`
)

var loanColumns = []string{
	"id", "book_id", "patron_id", "loan_date", "due_date",
	"return_date", "status", "fine_amount", "notes", "issued_by",
}

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Conditional updates: zero affected rows means the guard failed.
const (
	markReturnedSQL = `
update loans
	set status = 'returned', return_date = @return_date, fine_amount = @fine
where id = @id and status = 'active'
returning *`
	reopenLoanSQL = `
update loans
	set status = 'active', return_date = null, fine_amount = 0
where id = @id and status = 'returned'`
	decrementAvailableSQL = `
update books
	set copies_available = copies_available - 1
where id = @id and copies_available > 0`
	incrementAvailableSQL = `
update books
	set copies_available = copies_available + 1
where id = @id and copies_available < copies_total`
	activeLoanCountSQL = `
select count(*) from loans
where patron_id = @patron_id and status = 'active'`
)

// querier is satisfied by both the pool and an open transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txKey struct{}

// Repository is the Postgres store behind the ledger: loans, the copy
// counters of books and patron standing.
type Repository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

var (
	_ service.LoanRepository  = (*Repository)(nil)
	_ service.Inventory       = (*Repository)(nil)
	_ service.PatronDirectory = (*Repository)(nil)
	_ service.Transactor      = (*Repository)(nil)
)

func NewRepository(db *pgxpool.Pool, log *zap.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.Named("repo"),
	}
}

func (r *Repository) conn(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return r.db
}

func inTx(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(pgx.Tx)
	return ok
}

// WithinTx runs fn in one transaction. Calls nested in an open
// transaction join it.
func (r *Repository) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func (r *Repository) CreateLoan(ctx context.Context, loan model.Loan) (model.Loan, error) {
	query, args, err := qb.Insert(loansTableName).
		Columns(loanColumns...).
		Values(loan.ID, loan.BookID, loan.PatronID, loan.LoanDate, loan.DueDate,
			loan.ReturnDate, loan.Status, loan.FineAmount, loan.Notes, loan.IssuedBy).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}

	created, err := r.collectLoan(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return model.Loan{}, errors.Wrap(errs.ErrNotFound, pgErr.ConstraintName)
		}
		r.log.Error("CreateLoan", zap.String("q", query), zap.Error(err))
		return model.Loan{}, err
	}
	return created, nil
}

func (r *Repository) GetLoan(ctx context.Context, id uuid.UUID) (model.Loan, error) {
	query, args, err := qb.Select(loanColumns...).
		From(loansTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}
	return r.collectLoan(ctx, query, args...)
}

func (r *Repository) MarkReturned(ctx context.Context, id uuid.UUID, returnDate time.Time, fine decimal.Decimal) (model.Loan, error) {
	args := pgx.NamedArgs{
		"id":          id,
		"return_date": returnDate,
		"fine":        fine,
	}
	loan, err := r.collectLoan(ctx, markReturnedSQL, args)
	if errors.Is(err, errs.ErrNotFound) {
		// either unknown or returned by someone else
		if _, getErr := r.GetLoan(ctx, id); getErr != nil {
			return model.Loan{}, getErr
		}
		return model.Loan{}, errs.ErrAlreadyReturned
	}
	return loan, err
}

func (r *Repository) ReopenLoan(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, reopenLoanSQL, pgx.NamedArgs{"id": id})
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteLoan(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `delete from loans where id = @id`, pgx.NamedArgs{"id": id})
	return err
}

func (r *Repository) ListLoans(ctx context.Context, filter model.LoanFilter) ([]model.Loan, error) {
	query, args, err := listLoansQuery(filter)
	if err != nil {
		return nil, err
	}
	r.log.Debug("ListLoans", zap.String("query", query), zap.Any("args", args))

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	loans, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Loan])
	if err != nil {
		return nil, errors.Wrap(err, "pgx.CollectRows")
	}
	return loans, nil
}

func listLoansQuery(filter model.LoanFilter) (string, []any, error) {
	q := qb.Select(loanColumns...).From(loansTableName)
	if filter.Status != "" {
		q = q.Where(sq.Eq{"status": filter.Status})
	}
	if filter.PatronID != 0 {
		q = q.Where(sq.Eq{"patron_id": filter.PatronID})
	}
	if filter.BookID != 0 {
		q = q.Where(sq.Eq{"book_id": filter.BookID})
	}
	if filter.OverdueOnly {
		q = q.Where(sq.Eq{"status": model.LoanStatusActive}).
			Where(sq.Lt{"due_date": filter.OverdueAsOf.Format(time.DateOnly)})
	}
	return q.OrderBy("loan_date desc", "id").ToSql()
}

func (r *Repository) collectLoan(ctx context.Context, query string, args ...any) (model.Loan, error) {
	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return model.Loan{}, err
	}
	defer rows.Close()

	loan, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Loan])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Loan{}, errs.ErrNotFound
		}
		return model.Loan{}, err
	}
	return loan, nil
}

// GetAvailableCopies locks the book row when called inside a transaction.
func (r *Repository) GetAvailableCopies(ctx context.Context, bookID int64) (int, error) {
	query, args, err := lockingSelect("copies_available", booksTableName, bookID, inTx(ctx))
	if err != nil {
		return 0, err
	}

	var available int
	if err := r.conn(ctx).QueryRow(ctx, query, args...).Scan(&available); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, errs.ErrNotFound
		}
		return 0, err
	}
	return available, nil
}

func (r *Repository) DecrementAvailable(ctx context.Context, bookID int64) error {
	tag, err := r.conn(ctx).Exec(ctx, decrementAvailableSQL, pgx.NamedArgs{"id": bookID})
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if err := r.bookExists(ctx, bookID); err != nil {
			return err
		}
		return errs.ErrBookUnavailable
	}
	return nil
}

func (r *Repository) IncrementAvailable(ctx context.Context, bookID int64) error {
	tag, err := r.conn(ctx).Exec(ctx, incrementAvailableSQL, pgx.NamedArgs{"id": bookID})
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if err := r.bookExists(ctx, bookID); err != nil {
			return err
		}
		return errors.Errorf("book %d: all copies already available", bookID)
	}
	return nil
}

func (r *Repository) bookExists(ctx context.Context, bookID int64) error {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx,
		`select exists(select 1 from books where id = @id)`,
		pgx.NamedArgs{"id": bookID}).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return errs.ErrNotFound
	}
	return nil
}

// GetStatus locks the patron row when called inside a transaction, so
// concurrent issues to one patron see each other's loans.
func (r *Repository) GetStatus(ctx context.Context, patronID int64) (model.PatronStatus, error) {
	query, args, err := lockingSelect("status", patronsTableName, patronID, inTx(ctx))
	if err != nil {
		return "", err
	}

	var status model.PatronStatus
	if err := r.conn(ctx).QueryRow(ctx, query, args...).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", errs.ErrNotFound
		}
		return "", err
	}
	return status, nil
}

func (r *Repository) GetActiveLoanCount(ctx context.Context, patronID int64) (int, error) {
	var count int
	if err := r.conn(ctx).QueryRow(ctx, activeLoanCountSQL, pgx.NamedArgs{"patron_id": patronID}).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// lockingSelect reads one column of a row by id, taking a row lock when
// forUpdate is set.
func lockingSelect(column, table string, id int64, forUpdate bool) (string, []any, error) {
	q := qb.Select(column).
		From(table).
		Where(sq.Eq{"id": id})
	if forUpdate {
		q = q.Suffix("for update")
	}
	return q.ToSql()
}

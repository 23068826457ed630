package service

import (
	"context"
	"fmt"

	"github.com/Astemirdum/loan-ledger/ledger/internal/errs"
	"go.uber.org/zap"
)

type undoStep struct {
	name string
	fn   func(ctx context.Context) error
}

// undoLog collects compensations for completed sub-steps of a unit.
type undoLog struct {
	steps []undoStep
}

func (u *undoLog) push(name string, fn func(ctx context.Context) error) {
	u.steps = append(u.steps, undoStep{name: name, fn: fn})
}

// atomic runs fn as one unit. With a Transactor the store rolls back on
// error. Without one, the recorded undo steps run in reverse order; a
// failing undo step turns the result into errs.ErrInconsistent.
func (l *Ledger) atomic(ctx context.Context, op string, fn func(ctx context.Context, u *undoLog) error) error {
	if l.tx != nil {
		return l.tx.WithinTx(ctx, func(ctx context.Context) error {
			return fn(ctx, &undoLog{})
		})
	}

	u := &undoLog{}
	err := fn(ctx, u)
	if err == nil || len(u.steps) == 0 {
		return err
	}

	undoCtx, cancel := l.withTimeout(context.WithoutCancel(ctx))
	defer cancel()
	for i := len(u.steps) - 1; i >= 0; i-- {
		step := u.steps[i]
		if undoErr := step.fn(undoCtx); undoErr != nil {
			l.log.Error("rollback failed",
				zap.String("op", op),
				zap.String("step", step.name),
				zap.NamedError("cause", err),
				zap.Error(undoErr))
			return fmt.Errorf("%w: %s: undo %q: %w (cause: %w)", errs.ErrInconsistent, op, step.name, undoErr, err)
		}
		l.log.Debug("rolled back", zap.String("op", op), zap.String("step", step.name))
	}
	return err
}

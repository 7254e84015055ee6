package repository

import (
	"context"
	"errors"
	"fmt"

	"salon-booking/internal/data/entity"
	"salon-booking/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// TxManager runs a unit of work against transaction-bound repositories.
// Every lifecycle transition goes through RunInTx so guard evaluation and
// the resulting update commit or fail as one.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(r *Repository) error) error
}

type pgxTxManager struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTxManager(db database.PgxIface, log *zap.Logger) TxManager {
	return &pgxTxManager{
		db:  db,
		log: log.With(zap.String("component", "txmanager")),
	}
}

func (m *pgxTxManager) RunInTx(ctx context.Context, fn func(r *Repository) error) error {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(NewRepository(tx, m.log)); err != nil {
		return translateLockError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return translateLockError(fmt.Errorf("commit tx: %w", err))
	}

	return nil
}

// translateLockError surfaces row-lock and serialization failures as the
// retryable ErrConcurrencyConflict instead of a raw SQLSTATE.
func translateLockError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", // serialization_failure
			"40P01", // deadlock_detected
			"55P03": // lock_not_available
			return fmt.Errorf("%w: %s", entity.ErrConcurrencyConflict, pgErr.Code)
		}
	}
	return err
}

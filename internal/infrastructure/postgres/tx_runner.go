package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	appclosure "github.com/jhoicas/cierres-api/internal/application/closure"
	"github.com/jhoicas/cierres-api/internal/domain/repository"
)

var _ appclosure.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunClosure inicia una transacción, ejecuta fn con el repo de cierres atado a la tx
// y hace Commit o Rollback. La cabecera y sus renglones se escriben juntos o no se escriben.
func (r *TxRunner) RunClosure(ctx context.Context, fn func(repo repository.ClosureRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewClosureRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

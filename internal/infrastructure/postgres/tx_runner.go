package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	apppayroll "github.com/dkairat/Esep-api/internal/application/payroll"
	"github.com/dkairat/Esep-api/internal/domain/repository"
)

// Проверка контракта на этапе компиляции.
var _ apppayroll.TxRunner = (*TxRunner)(nil)

// TxRunner выполняет коллбэки внутри транзакции PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner собирает runner поверх пула.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunPayroll открывает транзакцию, передаёт fn репозитории, привязанные к ней,
// и делает Commit либо Rollback.
func (r *TxRunner) RunPayroll(ctx context.Context, fn func(
	payrollRepo repository.PayrollRepository,
	actRepo repository.CompletionActRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	payrollRepo := NewPayrollRepository(tx)
	actRepo := NewCompletionActRepository(tx)

	if err := fn(payrollRepo, actRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

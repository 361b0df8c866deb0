package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/dkairat/Esep-api/internal/domain"
	"github.com/dkairat/Esep-api/internal/domain/entity"
	payrollcalc "github.com/dkairat/Esep-api/internal/domain/payroll"
	"github.com/dkairat/Esep-api/internal/domain/repository"
)

// LifecycleUseCase — переходы статуса ведомости: recalculate, approve, mark_paid, delete.
// Каждый переход защищён оптимистической проверкой версии; проигравший гонку
// получает ErrConcurrentModification и должен перечитать ведомость.
type LifecycleUseCase struct {
	txRunner    TxRunner
	payrollRepo repository.PayrollRepository
	rateRepo    repository.RateTableRepository
}

// NewLifecycleUseCase собирает use case.
func NewLifecycleUseCase(txRunner TxRunner, payrollRepo repository.PayrollRepository, rateRepo repository.RateTableRepository) *LifecycleUseCase {
	return &LifecycleUseCase{txRunner: txRunner, payrollRepo: payrollRepo, rateRepo: rateRepo}
}

// Recalculate пересчитывает все записи ведомости по актуальной таблице ставок.
// База начисления записей не меняется, поэтому при неизменных ставках результат
// идентичен прежнему. Разрешено только в draft/calculated.
func (uc *LifecycleUseCase) Recalculate(ctx context.Context, id string) (*entity.Payroll, error) {
	p, err := uc.loadPayroll(id)
	if err != nil {
		return nil, err
	}
	if err := payrollcalc.EnsureRecalculable(p); err != nil {
		return nil, err
	}

	periodStart := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
	rates, err := uc.rateRepo.GetEffective(periodStart)
	if err != nil {
		return nil, err
	}
	if rates == nil {
		return nil, fmt.Errorf("%w: нет таблицы ставок на %s", domain.ErrNotFound, periodStart.Format("2006-01-02"))
	}

	for i := range p.Entries {
		calc, err := payrollcalc.CalculateEmployee(p.Entries[i].GrossSalary, *rates)
		if err != nil {
			return nil, fmt.Errorf("запись %s: %w", p.Entries[i].ID, err)
		}
		calc.Apply(&p.Entries[i])
	}
	applyTotals(p)

	expectedVersion := p.Version
	if err := payrollcalc.MarkCalculated(p); err != nil {
		return nil, err
	}

	err = uc.txRunner.RunPayroll(ctx, func(
		payrollRepo repository.PayrollRepository,
		_ repository.CompletionActRepository,
	) error {
		// проверка версии первой: проигравший гонку откатывается без записи
		if err := payrollRepo.UpdateStatus(p.ID, p.Status, expectedVersion); err != nil {
			return err
		}
		return payrollRepo.ReplaceEntries(p)
	})
	if err != nil {
		return nil, err
	}
	p.Version = expectedVersion + 1
	return p, nil
}

// Approve утверждает ведомость: расчёты штатных записей блокируются.
func (uc *LifecycleUseCase) Approve(ctx context.Context, id string) (*entity.Payroll, error) {
	return uc.transition(ctx, id, payrollcalc.Approve)
}

// MarkPaid помечает ведомость оплаченной. Требует, чтобы все выплаты ГПХ
// были approved или paid, иначе ErrIncompleteGPHPayments.
func (uc *LifecycleUseCase) MarkPaid(ctx context.Context, id string) (*entity.Payroll, error) {
	return uc.transition(ctx, id, payrollcalc.MarkPaid)
}

// Delete удаляет ведомость вместе с записями и выплатами. Только в draft.
func (uc *LifecycleUseCase) Delete(ctx context.Context, id string) error {
	p, err := uc.loadPayroll(id)
	if err != nil {
		return err
	}
	if err := payrollcalc.EnsureDeletable(p); err != nil {
		return err
	}
	return uc.payrollRepo.Delete(p.ID)
}

func (uc *LifecycleUseCase) transition(ctx context.Context, id string, fn func(*entity.Payroll) error) (*entity.Payroll, error) {
	p, err := uc.loadPayroll(id)
	if err != nil {
		return nil, err
	}
	expectedVersion := p.Version
	if err := fn(p); err != nil {
		return nil, err
	}
	if err := uc.payrollRepo.UpdateStatus(p.ID, p.Status, expectedVersion); err != nil {
		return nil, err
	}
	p.Version = expectedVersion + 1
	return p, nil
}

func (uc *LifecycleUseCase) loadPayroll(id string) (*entity.Payroll, error) {
	p, err := uc.payrollRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

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

// GPHUseCase — жизненный цикл выплат ГПХ внутри ведомости:
// утверждение с обязательным флагом вычета МРП и отметка оплаты.
type GPHUseCase struct {
	txRunner    TxRunner
	payrollRepo repository.PayrollRepository
	rateRepo    repository.RateTableRepository
}

// NewGPHUseCase собирает use case.
func NewGPHUseCase(txRunner TxRunner, payrollRepo repository.PayrollRepository, rateRepo repository.RateTableRepository) *GPHUseCase {
	return &GPHUseCase{txRunner: txRunner, payrollRepo: payrollRepo, rateRepo: rateRepo}
}

// Approve утверждает выплату: пересчёт с обязательным флагом, заморозка слепка.
// Повторное утверждение невозможно (pending — единственный допустимый исходный статус).
func (uc *GPHUseCase) Approve(ctx context.Context, paymentID string, applyMRPDeduction bool) (*entity.GPHPayment, error) {
	g, parent, err := uc.loadPayment(paymentID)
	if err != nil {
		return nil, err
	}

	periodStart := time.Date(parent.Year, time.Month(parent.Month), 1, 0, 0, 0, 0, time.UTC)
	rates, err := uc.rateRepo.GetEffective(periodStart)
	if err != nil {
		return nil, err
	}
	if rates == nil {
		return nil, fmt.Errorf("%w: нет таблицы ставок на %s", domain.ErrNotFound, periodStart.Format("2006-01-02"))
	}

	fromStatus := g.Status
	if err := payrollcalc.ApprovePayment(g, applyMRPDeduction, *rates); err != nil {
		return nil, err
	}
	g.UpdatedAt = time.Now()
	// переход из прочитанного статуса: параллельный approve проигрывает гонку
	// и не затирает уже замороженные флаг и слепок
	if err := uc.payrollRepo.UpdatePayment(g, fromStatus); err != nil {
		return nil, err
	}
	return g, nil
}

// MarkPaid помечает выплату оплаченной и закрывает связанный акт.
func (uc *GPHUseCase) MarkPaid(ctx context.Context, paymentID string) (*entity.GPHPayment, error) {
	g, _, err := uc.loadPayment(paymentID)
	if err != nil {
		return nil, err
	}
	fromStatus := g.Status
	if err := payrollcalc.MarkPaymentPaid(g); err != nil {
		return nil, err
	}
	g.UpdatedAt = time.Now()

	err = uc.txRunner.RunPayroll(ctx, func(
		payrollRepo repository.PayrollRepository,
		actRepo repository.CompletionActRepository,
	) error {
		if err := payrollRepo.UpdatePayment(g, fromStatus); err != nil {
			return err
		}
		return actRepo.MarkPaid(g.CompletionActRef)
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (uc *GPHUseCase) loadPayment(paymentID string) (*entity.GPHPayment, *entity.Payroll, error) {
	g, err := uc.payrollRepo.GetPaymentByID(paymentID)
	if err != nil {
		return nil, nil, err
	}
	if g == nil {
		return nil, nil, domain.ErrNotFound
	}
	parent, err := uc.payrollRepo.GetByID(g.PayrollID)
	if err != nil {
		return nil, nil, err
	}
	if parent == nil {
		return nil, nil, domain.ErrNotFound
	}
	return g, parent, nil
}

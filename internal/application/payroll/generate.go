package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dkairat/Esep-api/internal/application/dto"
	"github.com/dkairat/Esep-api/internal/domain"
	"github.com/dkairat/Esep-api/internal/domain/entity"
	payrollcalc "github.com/dkairat/Esep-api/internal/domain/payroll"
	"github.com/dkairat/Esep-api/internal/domain/repository"
)

// GenerateUseCase создаёт ведомость за период: записи по всем действующим
// работникам и pending-выплаты по неоплаченным актам ГПХ, одной транзакцией.
type GenerateUseCase struct {
	txRunner    TxRunner
	payrollRepo repository.PayrollRepository
	workerRepo  repository.WorkerRepository
	actRepo     repository.CompletionActRepository
	rateRepo    repository.RateTableRepository
	attendance  AttendanceProvider
}

// NewGenerateUseCase собирает use case.
func NewGenerateUseCase(
	txRunner TxRunner,
	payrollRepo repository.PayrollRepository,
	workerRepo repository.WorkerRepository,
	actRepo repository.CompletionActRepository,
	rateRepo repository.RateTableRepository,
	attendance AttendanceProvider,
) *GenerateUseCase {
	if attendance == nil {
		attendance = ContractualSalaryProvider{}
	}
	return &GenerateUseCase{
		txRunner:    txRunner,
		payrollRepo: payrollRepo,
		workerRepo:  workerRepo,
		actRepo:     actRepo,
		rateRepo:    rateRepo,
		attendance:  attendance,
	}
}

// Generate создаёт draft-ведомость за (year, month).
// Повторная генерация за существующий период — ErrDuplicate.
func (uc *GenerateUseCase) Generate(ctx context.Context, userID string, in dto.GeneratePayrollRequest) (*entity.Payroll, error) {
	if in.Year < 2000 || in.Year > 2100 || in.Month < 1 || in.Month > 12 {
		return nil, fmt.Errorf("%w: период %d-%02d", domain.ErrInvalidInput, in.Year, in.Month)
	}

	existing, err := uc.payrollRepo.GetByPeriod(in.Year, in.Month)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ведомость за %d-%02d уже существует", domain.ErrDuplicate, in.Year, in.Month)
	}

	periodStart := time.Date(in.Year, time.Month(in.Month), 1, 0, 0, 0, 0, time.UTC)
	rates, err := uc.rateRepo.GetEffective(periodStart)
	if err != nil {
		return nil, err
	}
	if rates == nil {
		return nil, fmt.Errorf("%w: нет таблицы ставок на %s", domain.ErrNotFound, periodStart.Format("2006-01-02"))
	}

	workers, err := uc.workerRepo.ListActive(in.Year, in.Month)
	if err != nil {
		return nil, err
	}
	acts, err := uc.actRepo.ListUnpaidByPeriod(in.Year, in.Month)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	p := &entity.Payroll{
		ID:          uuid.New().String(),
		Year:        in.Year,
		Month:       in.Month,
		Status:      entity.PayrollStatusDraft,
		Version:     1,
		GeneratedBy: userID,
		GeneratedAt: now,
		UpdatedAt:   now,
	}

	for _, w := range workers {
		gross, err := uc.attendance.GrossFor(w, in.Year, in.Month)
		if err != nil {
			return nil, err
		}
		calc, err := payrollcalc.CalculateEmployee(gross, *rates)
		if err != nil {
			return nil, fmt.Errorf("работник %s: %w", w.ID, err)
		}
		e := entity.PayrollEntry{
			ID:           uuid.New().String(),
			PayrollID:    p.ID,
			WorkerID:     w.ID,
			Year:         in.Year,
			Month:        in.Month,
			SalaryAmount: w.SalaryAmount,
			TaxCategory:  w.TaxCategory,
			IsResident:   w.IsResident,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		calc.Apply(&e)
		p.Entries = append(p.Entries, e)
	}

	for _, a := range acts {
		// Предварительный расчёт по намерению заказчика; флаг зафиксируется при approve
		advisory := a.ApplyMRPDeduction != nil && *a.ApplyMRPDeduction
		calc, err := payrollcalc.CalculateGPH(a.GrossAmount, *rates, advisory)
		if err != nil {
			return nil, fmt.Errorf("акт %s: %w", a.ID, err)
		}
		g := entity.GPHPayment{
			ID:               uuid.New().String(),
			PayrollID:        p.ID,
			ContractorName:   a.ContractorName,
			ContractorIIN:    a.ContractorIIN,
			CompletionActRef: a.ID,
			Status:           entity.GPHStatusPending,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		calc.Apply(&g)
		// до утверждения флаг остаётся намерением, не обязательством
		g.ApplyMRPDeduction = a.ApplyMRPDeduction
		p.GPHPayments = append(p.GPHPayments, g)
	}

	p.WorkerCount = len(p.Entries)
	p.GPHPaymentsCount = len(p.GPHPayments)
	applyTotals(p)

	err = uc.txRunner.RunPayroll(ctx, func(
		payrollRepo repository.PayrollRepository,
		_ repository.CompletionActRepository,
	) error {
		if err := payrollRepo.Create(p); err != nil {
			return err
		}
		for i := range p.Entries {
			if err := payrollRepo.CreateEntry(&p.Entries[i]); err != nil {
				return err
			}
		}
		for i := range p.GPHPayments {
			if err := payrollRepo.CreatePayment(&p.GPHPayments[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// applyTotals пересчитывает сводные суммы заголовка из записей и выплат.
func applyTotals(p *entity.Payroll) {
	b := payrollcalc.Aggregate(p.Entries, p.GPHPayments)
	p.GrossTotal = b.Grand.Gross
	p.NetTotal = b.Grand.Net
	p.EmployeeDeductionsTotal = b.Grand.Deductions
	p.EmployerContributionsTotal = b.Grand.EmployerContributions
}

package payroll

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dkairat/Esep-api/internal/domain/entity"
	"github.com/dkairat/Esep-api/internal/domain/repository"
)

// TxRunner выполняет функцию внутри одной транзакции с репозиториями,
// привязанными к этой транзакции. Ошибка из fn — откат.
type TxRunner interface {
	RunPayroll(ctx context.Context, fn func(
		payrollRepo repository.PayrollRepository,
		actRepo repository.CompletionActRepository,
	) error) error
}

// AttendanceProvider отдаёт базу начисления работника за период.
// Табели и их производные — внешняя система; ядро видит только итоговую сумму.
type AttendanceProvider interface {
	GrossFor(w entity.Worker, year, month int) (decimal.Decimal, error)
}

// ContractualSalaryProvider — провайдер по умолчанию: база начисления равна окладу.
type ContractualSalaryProvider struct{}

// GrossFor возвращает оклад работника без пропорции по отработанным дням.
func (ContractualSalaryProvider) GrossFor(w entity.Worker, _, _ int) (decimal.Decimal, error) {
	return w.SalaryAmount, nil
}

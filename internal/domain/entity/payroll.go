package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Статусы расчётной ведомости.
const (
	PayrollStatusDraft      = "draft"
	PayrollStatusCalculated = "calculated"
	PayrollStatusApproved   = "approved"
	PayrollStatusPaid       = "paid"
)

// Payroll — расчётная ведомость организации за один период (год, месяц).
// Создаётся в draft; записи прикрепляются пока не paid; удаляется только в draft.
// Version — счётчик для оптимистической блокировки переходов статуса.
type Payroll struct {
	ID      string
	Year    int
	Month   int
	Status  string
	Version int

	WorkerCount      int
	GPHPaymentsCount int

	// Сводные суммы по ведомости (штатные + ГПХ); разрез по трекам считает агрегатор
	GrossTotal                 decimal.Decimal
	NetTotal                   decimal.Decimal
	EmployeeDeductionsTotal    decimal.Decimal
	EmployerContributionsTotal decimal.Decimal

	Entries     []PayrollEntry
	GPHPayments []GPHPayment

	GeneratedBy string
	GeneratedAt time.Time
	UpdatedAt   time.Time
}

// Editable сообщает, можно ли ещё пересчитывать записи ведомости.
func (p Payroll) Editable() bool {
	return p.Status == PayrollStatusDraft || p.Status == PayrollStatusCalculated
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Категории работников для ИПН (влияют на группировку в отчётах).
const (
	TaxCategoryStandard  = "standard"
	TaxCategoryPensioner = "pensioner"
	TaxCategoryDisabled  = "disabled"
)

// Worker — работник организации (штатный или по договору ГПХ).
type Worker struct {
	ID             string
	FullName       string
	IIN            string // индивидуальный идентификационный номер, 12 цифр
	Position       string
	SalaryAmount   decimal.Decimal // оклад по договору
	TaxCategory    string
	IsResident     bool
	IsGPHContract  bool // true — договор ГПХ, не трудовой
	HiredAt        time.Time
	TerminatedAt   *time.Time // nil — действующий
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ActiveIn сообщает, числится ли работник в заданном периоде (год, месяц).
func (w Worker) ActiveIn(year, month int) bool {
	periodStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, 0)
	if w.HiredAt.After(periodEnd.Add(-time.Nanosecond)) {
		return false
	}
	if w.TerminatedAt != nil && w.TerminatedAt.Before(periodStart) {
		return false
	}
	return true
}

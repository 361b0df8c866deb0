package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollEntry — начисления одного работника за один период.
// Инварианты: NetSalary = GrossSalary − TotalEmployeeDeductions;
// TotalEmployerContributions = OPVR + SO + OOSMS + SN; все суммы ≥ 0.
type PayrollEntry struct {
	ID        string
	PayrollID string
	WorkerID  string
	Year      int
	Month     int

	SalaryAmount decimal.Decimal // оклад по договору
	GrossSalary  decimal.Decimal // база начисления за период (может отличаться при неполном месяце)

	TaxCategory   string
	IsResident    bool
	IsGPHContract bool // в ведомости штатных всегда false

	// Удержания с работника
	OPV                     decimal.Decimal
	IPN                     decimal.Decimal
	VOSMS                   decimal.Decimal
	TotalEmployeeDeductions decimal.Decimal

	// Отчисления работодателя
	OPVR                       decimal.Decimal
	SO                         decimal.Decimal
	OOSMS                      decimal.Decimal
	SN                         decimal.Decimal
	TotalEmployerContributions decimal.Decimal

	NetSalary         decimal.Decimal
	IPNBase           decimal.Decimal
	StandardDeduction decimal.Decimal

	CalculationSnapshot CalculationSnapshot

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EmployerCost — полная стоимость работника для организации.
func (e PayrollEntry) EmployerCost() decimal.Decimal {
	return e.GrossSalary.Add(e.TotalEmployerContributions)
}

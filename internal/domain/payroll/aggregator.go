package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/dkairat/Esep-api/internal/domain/entity"
)

// Totals — сводные суммы по одному треку (штатные или ГПХ) либо по всей ведомости.
// Для ГПХ Deductions означает удержания с подрядчиков (total_withheld).
type Totals struct {
	Gross                 decimal.Decimal
	Net                   decimal.Decimal
	Deductions            decimal.Decimal
	EmployerContributions decimal.Decimal
	EmployerCost          decimal.Decimal
}

// Add возвращает покомпонентную сумму двух Totals.
func (t Totals) Add(o Totals) Totals {
	return Totals{
		Gross:                 t.Gross.Add(o.Gross),
		Net:                   t.Net.Add(o.Net),
		Deductions:            t.Deductions.Add(o.Deductions),
		EmployerContributions: t.EmployerContributions.Add(o.EmployerContributions),
		EmployerCost:          t.EmployerCost.Add(o.EmployerCost),
	}
}

// Breakdown — итоги ведомости: по штатным, по ГПХ и общий итог.
// Закон сохранения: Grand = Employees + Contractors по каждому полю.
type Breakdown struct {
	Employees   Totals
	Contractors Totals
	Grand       Totals
}

// Aggregate сводит записи и выплаты в итоги. Простое decimal-сложение без
// округления; результат не зависит от порядка элементов.
func Aggregate(entries []entity.PayrollEntry, payments []entity.GPHPayment) Breakdown {
	var emp Totals
	for _, e := range entries {
		emp.Gross = emp.Gross.Add(e.GrossSalary)
		emp.Net = emp.Net.Add(e.NetSalary)
		emp.Deductions = emp.Deductions.Add(e.TotalEmployeeDeductions)
		emp.EmployerContributions = emp.EmployerContributions.Add(e.TotalEmployerContributions)
		emp.EmployerCost = emp.EmployerCost.Add(e.EmployerCost())
	}

	var gph Totals
	for _, g := range payments {
		gph.Gross = gph.Gross.Add(g.GrossAmount)
		gph.Net = gph.Net.Add(g.NetAmount)
		gph.Deductions = gph.Deductions.Add(g.TotalWithheld)
		// у ГПХ единственное отчисление работодателя — СО
		gph.EmployerContributions = gph.EmployerContributions.Add(g.SO)
		gph.EmployerCost = gph.EmployerCost.Add(g.TotalCost)
	}

	return Breakdown{
		Employees:   emp,
		Contractors: gph,
		Grand:       emp.Add(gph),
	}
}

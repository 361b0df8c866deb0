package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dkairat/Esep-api/internal/domain"
	"github.com/dkairat/Esep-api/internal/domain/entity"
)

// EmployeeCalculation — результат расчёта начислений штатного работника (доменный сервис, чистая функция).
// Вся арифметика на decimal; округление — забота слоя отображения.
type EmployeeCalculation struct {
	GrossSalary decimal.Decimal

	OPV                     decimal.Decimal
	VOSMS                   decimal.Decimal
	IPN                     decimal.Decimal
	TotalEmployeeDeductions decimal.Decimal

	OPVR                       decimal.Decimal
	SO                         decimal.Decimal
	OOSMS                      decimal.Decimal
	SN                         decimal.Decimal
	TotalEmployerContributions decimal.Decimal

	NetSalary         decimal.Decimal
	IPNBase           decimal.Decimal
	StandardDeduction decimal.Decimal

	Snapshot entity.CalculationSnapshot
}

// CalculateEmployee считает разложение gross → net для одного работника за период.
//
// Порядок удержаний: ОПВ и ВОСМС с брутто, стандартный вычет N×МРП,
// ИПН с уменьшенной базы (не ниже нуля). Отчисления работодателя: ОПВР, СО с базы
// gross−ОПВ, СН с базы gross−ОПВ−ВОСМС за вычетом уже уплаченного СО (не ниже нуля), ООСМС.
func CalculateEmployee(grossSalary decimal.Decimal, rt entity.RateTable) (EmployeeCalculation, error) {
	if grossSalary.IsNegative() {
		return EmployeeCalculation{}, fmt.Errorf("%w: отрицательная база начисления %s", domain.ErrInvalidInput, grossSalary)
	}
	if err := rt.Validate(); err != nil {
		return EmployeeCalculation{}, err
	}

	opv := grossSalary.Mul(rt.OPVRate)
	vosms := grossSalary.Mul(rt.VOSMSRate)
	standardDeduction := rt.StandardDeduction()

	ipnBase := nonNegative(grossSalary.Sub(opv).Sub(vosms).Sub(standardDeduction))
	ipn := ipnBase.Mul(rt.IPNRate)

	totalDeductions := opv.Add(vosms).Add(ipn)

	opvr := grossSalary.Mul(rt.OPVRRate)
	soBase := nonNegative(grossSalary.Sub(opv))
	so := soBase.Mul(rt.SORate)
	snBase := nonNegative(grossSalary.Sub(opv).Sub(vosms))
	// СН уменьшается на уплаченные СО и не бывает отрицательным
	sn := nonNegative(snBase.Mul(rt.SNRate).Sub(so))
	oosms := grossSalary.Mul(rt.OOSMSRate)

	totalContributions := opvr.Add(so).Add(oosms).Add(sn)

	return EmployeeCalculation{
		GrossSalary:                grossSalary,
		OPV:                        opv,
		VOSMS:                      vosms,
		IPN:                        ipn,
		TotalEmployeeDeductions:    totalDeductions,
		OPVR:                       opvr,
		SO:                         so,
		OOSMS:                      oosms,
		SN:                         sn,
		TotalEmployerContributions: totalContributions,
		NetSalary:                  grossSalary.Sub(totalDeductions),
		IPNBase:                    ipnBase,
		StandardDeduction:          standardDeduction,
		Snapshot:                   entity.SnapshotFromRates(rt),
	}, nil
}

// Apply переносит результат расчёта в запись ведомости.
func (c EmployeeCalculation) Apply(e *entity.PayrollEntry) {
	e.GrossSalary = c.GrossSalary
	e.OPV = c.OPV
	e.VOSMS = c.VOSMS
	e.IPN = c.IPN
	e.TotalEmployeeDeductions = c.TotalEmployeeDeductions
	e.OPVR = c.OPVR
	e.SO = c.SO
	e.OOSMS = c.OOSMS
	e.SN = c.SN
	e.TotalEmployerContributions = c.TotalEmployerContributions
	e.NetSalary = c.NetSalary
	e.IPNBase = c.IPNBase
	e.StandardDeduction = c.StandardDeduction
	snap := c.Snapshot
	isResident := e.IsResident
	snap.IsResident = &isResident
	e.CalculationSnapshot = snap
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

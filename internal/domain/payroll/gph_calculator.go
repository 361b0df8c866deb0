package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dkairat/Esep-api/internal/domain"
	"github.com/dkairat/Esep-api/internal/domain/entity"
)

// GPHCalculation — результат расчёта выплаты по договору ГПХ.
// В отличие от штатных: нет ОПВР, ООСМС и СН; с подрядчика удерживаются
// ОПВ, ВОСМС и ИПН, а СО организация платит сверху (не из выплаты).
type GPHCalculation struct {
	GrossAmount decimal.Decimal

	OPV           decimal.Decimal
	VOSMS         decimal.Decimal
	IPN           decimal.Decimal
	TotalWithheld decimal.Decimal
	SO            decimal.Decimal
	NetAmount     decimal.Decimal
	TotalCost     decimal.Decimal

	IPNBase           decimal.Decimal
	Deduction         decimal.Decimal
	ApplyMRPDeduction bool

	Snapshot entity.CalculationSnapshot
}

// CalculateGPH считает выплату подрядчику по акту.
// applyMRPDeduction уменьшает базу ИПН на стандартный вычет N×МРП;
// окончательное значение флага фиксируется при утверждении выплаты.
func CalculateGPH(grossAmount decimal.Decimal, rt entity.RateTable, applyMRPDeduction bool) (GPHCalculation, error) {
	if grossAmount.IsNegative() {
		return GPHCalculation{}, fmt.Errorf("%w: отрицательная сумма по акту %s", domain.ErrInvalidInput, grossAmount)
	}
	if err := rt.Validate(); err != nil {
		return GPHCalculation{}, err
	}

	opv := grossAmount.Mul(rt.OPVRate)
	vosms := grossAmount.Mul(rt.VOSMSRate)

	deduction := decimal.Zero
	if applyMRPDeduction {
		deduction = rt.StandardDeduction()
	}

	ipnBase := nonNegative(grossAmount.Sub(opv).Sub(vosms).Sub(deduction))
	ipn := ipnBase.Mul(rt.IPNRate)

	totalWithheld := opv.Add(vosms).Add(ipn)
	so := nonNegative(grossAmount.Sub(opv)).Mul(rt.SORate)

	flag := applyMRPDeduction
	snap := entity.SnapshotFromRates(rt)
	snap.ApplyMRPDeduction = &flag

	return GPHCalculation{
		GrossAmount:       grossAmount,
		OPV:               opv,
		VOSMS:             vosms,
		IPN:               ipn,
		TotalWithheld:     totalWithheld,
		SO:                so,
		NetAmount:         grossAmount.Sub(totalWithheld),
		TotalCost:         grossAmount.Add(so),
		IPNBase:           ipnBase,
		Deduction:         deduction,
		ApplyMRPDeduction: applyMRPDeduction,
		Snapshot:          snap,
	}, nil
}

// Apply переносит результат расчёта в выплату.
func (c GPHCalculation) Apply(g *entity.GPHPayment) {
	g.GrossAmount = c.GrossAmount
	g.OPV = c.OPV
	g.VOSMS = c.VOSMS
	g.IPN = c.IPN
	g.TotalWithheld = c.TotalWithheld
	g.SO = c.SO
	g.NetAmount = c.NetAmount
	g.TotalCost = c.TotalCost
	flag := c.ApplyMRPDeduction
	g.ApplyMRPDeduction = &flag
	g.CalculationSnapshot = c.Snapshot
}

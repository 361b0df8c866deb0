package payroll_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkairat/Esep-api/internal/domain"
	"github.com/dkairat/Esep-api/internal/domain/entity"
	"github.com/dkairat/Esep-api/internal/domain/payroll"
)

// По акту на 300 000 ₸ без вычета МРП.
func TestCalculateGPH_WithoutDeduction(t *testing.T) {
	calc, err := payroll.CalculateGPH(dec("300000"), testRates(), false)
	require.NoError(t, err)

	assert.True(t, calc.OPV.Equal(dec("30000")), "ОПВ: %s", calc.OPV)
	assert.True(t, calc.VOSMS.Equal(dec("6000")), "ВОСМС: %s", calc.VOSMS)
	assert.True(t, calc.Deduction.IsZero())
	assert.True(t, calc.IPNBase.Equal(dec("264000")), "база ИПН: %s", calc.IPNBase)
	assert.True(t, calc.IPN.Equal(dec("26400")), "ИПН: %s", calc.IPN)
	assert.True(t, calc.TotalWithheld.Equal(dec("62400")), "удержано: %s", calc.TotalWithheld)
	assert.True(t, calc.NetAmount.Equal(dec("237600")), "к выплате: %s", calc.NetAmount)
	// СО считается с базы gross − ОПВ и платится сверху
	assert.True(t, calc.SO.Equal(dec("13500")), "СО: %s", calc.SO)
	assert.True(t, calc.TotalCost.Equal(dec("313500")), "стоимость: %s", calc.TotalCost)
}

// Включение вычета МРП уменьшает базу ИПН ровно на N×МРП и строго снижает ИПН.
func TestCalculateGPH_DeductionLowersIPN(t *testing.T) {
	without, err := payroll.CalculateGPH(dec("300000"), testRates(), false)
	require.NoError(t, err)
	with, err := payroll.CalculateGPH(dec("300000"), testRates(), true)
	require.NoError(t, err)

	assert.True(t, with.Deduction.Equal(dec("60550")))
	assert.True(t, with.IPNBase.Equal(without.IPNBase.Sub(dec("60550"))))
	assert.True(t, with.IPN.LessThan(without.IPN), "ИПН с вычетом %s против %s", with.IPN, without.IPN)
	// ОПВ, ВОСМС и СО от флага не зависят
	assert.True(t, with.OPV.Equal(without.OPV))
	assert.True(t, with.VOSMS.Equal(without.VOSMS))
	assert.True(t, with.SO.Equal(without.SO))
}

// Малая сумма по акту: база ИПН не уходит в минус.
func TestCalculateGPH_SmallAmount(t *testing.T) {
	calc, err := payroll.CalculateGPH(dec("40000"), testRates(), true)
	require.NoError(t, err)
	assert.True(t, calc.IPNBase.IsZero())
	assert.True(t, calc.IPN.IsZero())
}

// Закон сохранения для ГПХ: net + удержания == gross.
func TestCalculateGPH_ConservationLaw(t *testing.T) {
	for _, flag := range []bool{false, true} {
		calc, err := payroll.CalculateGPH(dec("178345.21"), testRates(), flag)
		require.NoError(t, err)
		sum := calc.NetAmount.Add(calc.TotalWithheld)
		assert.True(t, sum.Equal(dec("178345.21")), "flag=%v: %s", flag, sum)
		assert.True(t, calc.TotalCost.Equal(calc.GrossAmount.Add(calc.SO)))
	}
}

func TestCalculateGPH_NegativeAmount(t *testing.T) {
	_, err := payroll.CalculateGPH(dec("-100"), testRates(), false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Apply фиксирует флаг вычета в выплате и слепке.
func TestGPHCalculation_Apply(t *testing.T) {
	calc, err := payroll.CalculateGPH(dec("300000"), testRates(), true)
	require.NoError(t, err)

	g := entity.GPHPayment{ID: "g1", Status: entity.GPHStatusPending}
	calc.Apply(&g)

	require.NotNil(t, g.ApplyMRPDeduction)
	assert.True(t, *g.ApplyMRPDeduction)
	require.NotNil(t, g.CalculationSnapshot.ApplyMRPDeduction)
	assert.True(t, *g.CalculationSnapshot.ApplyMRPDeduction)
	assert.True(t, g.NetAmount.Equal(calc.NetAmount))
}

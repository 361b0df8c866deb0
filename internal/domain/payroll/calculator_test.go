package payroll_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkairat/Esep-api/internal/domain"
	"github.com/dkairat/Esep-api/internal/domain/entity"
	"github.com/dkairat/Esep-api/internal/domain/payroll"
)

// Ставки 2024 года: МРП 4325, вычет 14 МРП.
func testRates() entity.RateTable {
	return entity.RateTable{
		ID:                "rt-2024",
		MRP:               decimal.RequireFromString("4325"),
		MRPDeductionCount: 14,
		OPVRate:           decimal.RequireFromString("0.10"),
		VOSMSRate:         decimal.RequireFromString("0.02"),
		IPNRate:           decimal.RequireFromString("0.10"),
		OPVRRate:          decimal.RequireFromString("0.035"),
		SORate:            decimal.RequireFromString("0.05"),
		OOSMSRate:         decimal.RequireFromString("0.03"),
		SNRate:            decimal.RequireFromString("0.06"),
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Контрольный пример: оклад 500 000 ₸ при ставках 2024 года.
func TestCalculateEmployee_ReferenceCase(t *testing.T) {
	calc, err := payroll.CalculateEmployee(dec("500000"), testRates())
	require.NoError(t, err)

	assert.True(t, calc.OPV.Equal(dec("50000")), "ОПВ: %s", calc.OPV)
	assert.True(t, calc.VOSMS.Equal(dec("10000")), "ВОСМС: %s", calc.VOSMS)
	assert.True(t, calc.StandardDeduction.Equal(dec("60550")), "вычет: %s", calc.StandardDeduction)
	assert.True(t, calc.IPNBase.Equal(dec("379450")), "база ИПН: %s", calc.IPNBase)
	assert.True(t, calc.IPN.Equal(dec("37945")), "ИПН: %s", calc.IPN)
	assert.True(t, calc.TotalEmployeeDeductions.Equal(dec("97945")), "удержания: %s", calc.TotalEmployeeDeductions)
	assert.True(t, calc.NetSalary.Equal(dec("402055")), "на руки: %s", calc.NetSalary)

	// Отчисления работодателя
	assert.True(t, calc.OPVR.Equal(dec("17500")), "ОПВР: %s", calc.OPVR)
	assert.True(t, calc.SO.Equal(dec("22500")), "СО: %s", calc.SO)
	assert.True(t, calc.OOSMS.Equal(dec("15000")), "ООСМС: %s", calc.OOSMS)
	// СН = 440000×0.06 − СО = 26400 − 22500
	assert.True(t, calc.SN.Equal(dec("3900")), "СН: %s", calc.SN)
	assert.True(t, calc.TotalEmployerContributions.Equal(dec("58900")), "отчисления: %s", calc.TotalEmployerContributions)
}

// Закон сохранения: net + удержания == gross, без расхождений в копейках.
func TestCalculateEmployee_ConservationLaw(t *testing.T) {
	for _, gross := range []string{"0", "85000", "123456.78", "500000", "10000000"} {
		calc, err := payroll.CalculateEmployee(dec(gross), testRates())
		require.NoError(t, err, "gross=%s", gross)
		sum := calc.NetSalary.Add(calc.TotalEmployeeDeductions)
		assert.True(t, sum.Equal(dec(gross)), "gross=%s: net+удержания=%s", gross, sum)
	}
}

// Малый оклад: база ИПН прижимается к нулю, ИПН нулевой, на руки gross − ОПВ − ВОСМС.
func TestCalculateEmployee_SmallSalary(t *testing.T) {
	calc, err := payroll.CalculateEmployee(dec("50000"), testRates())
	require.NoError(t, err)

	// 50000 − 5000 − 1000 − 60550 < 0 → база 0
	assert.True(t, calc.IPNBase.IsZero(), "база ИПН: %s", calc.IPNBase)
	assert.True(t, calc.IPN.IsZero(), "ИПН: %s", calc.IPN)
	assert.True(t, calc.NetSalary.Equal(dec("44000")), "на руки: %s", calc.NetSalary)
}

// СН не бывает отрицательным, даже когда СО превышает начисленный СН.
func TestCalculateEmployee_SNClampedAtZero(t *testing.T) {
	rt := testRates()
	rt.SNRate = dec("0.01") // СН меньше СО при любой базе
	calc, err := payroll.CalculateEmployee(dec("500000"), rt)
	require.NoError(t, err)
	assert.True(t, calc.SN.IsZero(), "СН: %s", calc.SN)
}

func TestCalculateEmployee_ZeroSalary(t *testing.T) {
	calc, err := payroll.CalculateEmployee(decimal.Zero, testRates())
	require.NoError(t, err)
	assert.True(t, calc.NetSalary.IsZero())
	assert.True(t, calc.TotalEmployeeDeductions.IsZero())
	assert.True(t, calc.TotalEmployerContributions.IsZero())
}

func TestCalculateEmployee_NegativeGross(t *testing.T) {
	_, err := payroll.CalculateEmployee(dec("-1"), testRates())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCalculateEmployee_RateOutOfRange(t *testing.T) {
	rt := testRates()
	rt.IPNRate = dec("1.5")
	_, err := payroll.CalculateEmployee(dec("100000"), rt)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	rt = testRates()
	rt.OPVRate = dec("-0.1")
	_, err = payroll.CalculateEmployee(dec("100000"), rt)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Повторный расчёт с теми же входами байт-в-байт совпадает с первым,
// включая слепок ставок.
func TestCalculateEmployee_Deterministic(t *testing.T) {
	first, err := payroll.CalculateEmployee(dec("321000.55"), testRates())
	require.NoError(t, err)
	second, err := payroll.CalculateEmployee(dec("321000.55"), testRates())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// Apply переносит все поля в запись и фиксирует резидентство в слепке.
func TestEmployeeCalculation_Apply(t *testing.T) {
	calc, err := payroll.CalculateEmployee(dec("500000"), testRates())
	require.NoError(t, err)

	e := entity.PayrollEntry{ID: "e1", IsResident: true}
	calc.Apply(&e)

	assert.True(t, e.GrossSalary.Equal(dec("500000")))
	assert.True(t, e.NetSalary.Equal(dec("402055")))
	require.NotNil(t, e.CalculationSnapshot.IsResident)
	assert.True(t, *e.CalculationSnapshot.IsResident)
	assert.True(t, e.EmployerCost().Equal(dec("558900")), "стоимость: %s", e.EmployerCost())
}

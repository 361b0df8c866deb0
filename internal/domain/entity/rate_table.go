package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dkairat/Esep-api/internal/domain"
)

// RateTable — версионированный снимок налоговых констант РК, действующих на дату расчёта.
// Таблица ссылается по ID и никогда не мутирует: новая версия — новая запись.
type RateTable struct {
	ID                string
	EffectiveFrom     time.Time
	MRP               decimal.Decimal // месячный расчётный показатель
	MZP               decimal.Decimal // минимальная зарплата (справочно)
	MRPDeductionCount int             // множитель стандартного вычета (N × МРП)
	OPVRate           decimal.Decimal // ОПВ — пенсионный взнос работника
	VOSMSRate         decimal.Decimal // ВОСМС — медстрахование работника
	IPNRate           decimal.Decimal // ИПН — подоходный налог
	OPVRRate          decimal.Decimal // ОПВР — пенсионный взнос работодателя
	SORate            decimal.Decimal // СО — социальные отчисления работодателя
	OOSMSRate         decimal.Decimal // ООСМС — медстрахование работодателя
	SNRate            decimal.Decimal // СН — социальный налог
	CreatedAt         time.Time
}

var one = decimal.NewFromInt(1)

// Validate проверяет инварианты таблицы: все ставки в [0,1], множитель вычета неотрицателен.
func (rt RateTable) Validate() error {
	rates := []decimal.Decimal{
		rt.OPVRate, rt.VOSMSRate, rt.IPNRate,
		rt.OPVRRate, rt.SORate, rt.OOSMSRate, rt.SNRate,
	}
	for _, r := range rates {
		if r.IsNegative() || r.GreaterThan(one) {
			return fmt.Errorf("%w: ставка %s вне диапазона [0,1]", domain.ErrInvalidInput, r)
		}
	}
	if rt.MRPDeductionCount < 0 {
		return fmt.Errorf("%w: отрицательный множитель вычета МРП", domain.ErrInvalidInput)
	}
	if rt.MRP.IsNegative() {
		return fmt.Errorf("%w: отрицательный МРП", domain.ErrInvalidInput)
	}
	return nil
}

// StandardDeduction возвращает стандартный вычет: N × МРП.
func (rt RateTable) StandardDeduction() decimal.Decimal {
	return decimal.NewFromInt(int64(rt.MRPDeductionCount)).Mul(rt.MRP)
}

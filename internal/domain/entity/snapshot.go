package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalculationSnapshot — неизменяемый слепок констант и флагов, по которым посчитана запись.
// Хранится рядом с результатом, чтобы смена RateTable не обесценивала историю.
type CalculationSnapshot struct {
	RateTableID       string          `json:"rate_table_id"`
	EffectiveFrom     time.Time       `json:"effective_from"`
	MRP               decimal.Decimal `json:"mrp"`
	MRPDeductionCount int             `json:"mrp_deduction_count"`
	OPVRate           decimal.Decimal `json:"opv_rate"`
	VOSMSRate         decimal.Decimal `json:"vosms_rate"`
	IPNRate           decimal.Decimal `json:"ipn_rate"`
	OPVRRate          decimal.Decimal `json:"opvr_rate,omitempty"`
	SORate            decimal.Decimal `json:"so_rate"`
	OOSMSRate         decimal.Decimal `json:"oosms_rate,omitempty"`
	SNRate            decimal.Decimal `json:"sn_rate,omitempty"`
	IsResident        *bool           `json:"is_resident,omitempty"`
	ApplyMRPDeduction *bool           `json:"apply_mrp_deduction,omitempty"`
}

// SnapshotFromRates собирает слепок из таблицы ставок.
// Намеренно без отметки времени: повторный расчёт с теми же входами обязан дать байт-в-байт тот же слепок.
func SnapshotFromRates(rt RateTable) CalculationSnapshot {
	return CalculationSnapshot{
		RateTableID:       rt.ID,
		EffectiveFrom:     rt.EffectiveFrom,
		MRP:               rt.MRP,
		MRPDeductionCount: rt.MRPDeductionCount,
		OPVRate:           rt.OPVRate,
		VOSMSRate:         rt.VOSMSRate,
		IPNRate:           rt.IPNRate,
		OPVRRate:          rt.OPVRRate,
		SORate:            rt.SORate,
		OOSMSRate:         rt.OOSMSRate,
		SNRate:            rt.SNRate,
	}
}

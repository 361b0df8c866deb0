package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRateTableRequest — создание новой версии таблицы ставок.
// Ставки задаются долями (0.10 = 10%).
type CreateRateTableRequest struct {
	EffectiveFrom     time.Time       `json:"effective_from" validate:"required"`
	MRP               decimal.Decimal `json:"mrp"`
	MZP               decimal.Decimal `json:"mzp"`
	MRPDeductionCount int             `json:"mrp_deduction_count"`
	OPVRate           decimal.Decimal `json:"opv_rate"`
	VOSMSRate         decimal.Decimal `json:"vosms_rate"`
	IPNRate           decimal.Decimal `json:"ipn_rate"`
	OPVRRate          decimal.Decimal `json:"opvr_rate"`
	SORate            decimal.Decimal `json:"so_rate"`
	OOSMSRate         decimal.Decimal `json:"oosms_rate"`
	SNRate            decimal.Decimal `json:"sn_rate"`
}

// RateTableResponse — таблица ставок в ответе API.
type RateTableResponse struct {
	ID                string          `json:"id"`
	EffectiveFrom     time.Time       `json:"effective_from"`
	MRP               decimal.Decimal `json:"mrp"`
	MZP               decimal.Decimal `json:"mzp"`
	MRPDeductionCount int             `json:"mrp_deduction_count"`
	OPVRate           decimal.Decimal `json:"opv_rate"`
	VOSMSRate         decimal.Decimal `json:"vosms_rate"`
	IPNRate           decimal.Decimal `json:"ipn_rate"`
	OPVRRate          decimal.Decimal `json:"opvr_rate"`
	SORate            decimal.Decimal `json:"so_rate"`
	OOSMSRate         decimal.Decimal `json:"oosms_rate"`
	SNRate            decimal.Decimal `json:"sn_rate"`
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Статусы выплаты по договору ГПХ.
const (
	GPHStatusPending  = "pending"  // создана, расчёт предварительный
	GPHStatusApproved = "approved" // утверждена, флаг вычета МРП зафиксирован
	GPHStatusPaid     = "paid"     // оплачена, терминальный статус
)

// GPHPayment — выплата подрядчику по акту выполненных работ.
// С подрядчика удерживаются только ОПВ, ВОСМС и ИПН; СО платит организация сверху.
// Инварианты: NetAmount = GrossAmount − TotalWithheld;
// TotalWithheld = OPV + VOSMS + IPN; TotalCost = GrossAmount + SO.
type GPHPayment struct {
	ID               string
	PayrollID        string
	ContractorName   string
	ContractorIIN    string
	CompletionActRef string // ссылка на акт выполненных работ

	GrossAmount       decimal.Decimal
	ApplyMRPDeduction *bool // nil до утверждения; фиксируется в момент approve

	OPV           decimal.Decimal
	VOSMS         decimal.Decimal
	IPN           decimal.Decimal
	TotalWithheld decimal.Decimal
	SO            decimal.Decimal // не удерживается с подрядчика
	NetAmount     decimal.Decimal
	TotalCost     decimal.Decimal

	Status              string
	CalculationSnapshot CalculationSnapshot

	CreatedAt time.Time
	UpdatedAt time.Time
}

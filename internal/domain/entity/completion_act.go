package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompletionAct — акт выполненных работ по договору ГПХ.
// Неоплаченный акт периода попадает в ведомость как GPHPayment при генерации.
type CompletionAct struct {
	ID                string
	ContractorName    string
	ContractorIIN     string
	ActNumber         string
	ActDate           time.Time
	GrossAmount       decimal.Decimal
	ApplyMRPDeduction *bool // намерение заказчика; становится обязательным только при утверждении выплаты
	Paid              bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateWorkerRequest — создание работника.
type CreateWorkerRequest struct {
	FullName      string          `json:"full_name" validate:"required"`
	IIN           string          `json:"iin" validate:"required,len=12"`
	Position      string          `json:"position"`
	SalaryAmount  decimal.Decimal `json:"salary_amount"`
	TaxCategory   string          `json:"tax_category"`
	IsResident    *bool           `json:"is_resident"`
	IsGPHContract bool            `json:"is_gph_contract"`
	HiredAt       time.Time       `json:"hired_at"`
}

// WorkerResponse — работник в ответе API.
type WorkerResponse struct {
	ID            string          `json:"id"`
	FullName      string          `json:"full_name"`
	IIN           string          `json:"iin"`
	Position      string          `json:"position"`
	SalaryAmount  decimal.Decimal `json:"salary_amount"`
	TaxCategory   string          `json:"tax_category"`
	IsResident    bool            `json:"is_resident"`
	IsGPHContract bool            `json:"is_gph_contract"`
	HiredAt       time.Time       `json:"hired_at"`
	TerminatedAt  *time.Time      `json:"terminated_at,omitempty"`
}

// CreateCompletionActRequest — регистрация акта выполненных работ.
type CreateCompletionActRequest struct {
	ContractorName    string          `json:"contractor_name" validate:"required"`
	ContractorIIN     string          `json:"contractor_iin" validate:"required,len=12"`
	ActNumber         string          `json:"act_number" validate:"required"`
	ActDate           time.Time       `json:"act_date"`
	GrossAmount       decimal.Decimal `json:"gross_amount"`
	ApplyMRPDeduction *bool           `json:"apply_mrp_deduction,omitempty"`
}

// CompletionActResponse — акт в ответе API.
type CompletionActResponse struct {
	ID                string          `json:"id"`
	ContractorName    string          `json:"contractor_name"`
	ContractorIIN     string          `json:"contractor_iin"`
	ActNumber         string          `json:"act_number"`
	ActDate           time.Time       `json:"act_date"`
	GrossAmount       decimal.Decimal `json:"gross_amount"`
	ApplyMRPDeduction *bool           `json:"apply_mrp_deduction,omitempty"`
	Paid              bool            `json:"paid"`
}

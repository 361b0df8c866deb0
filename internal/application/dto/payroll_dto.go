package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// GeneratePayrollRequest — запрос генерации ведомости за период.
type GeneratePayrollRequest struct {
	Year  int `json:"year" validate:"required,min=2000,max=2100"`
	Month int `json:"month" validate:"required,min=1,max=12"`
}

// PayrollEntryResponse — запись ведомости в ответе API.
type PayrollEntryResponse struct {
	ID           string          `json:"id"`
	WorkerID     string          `json:"worker_id"`
	SalaryAmount decimal.Decimal `json:"salary_amount"`
	GrossSalary  decimal.Decimal `json:"gross_salary"`
	TaxCategory  string          `json:"tax_category"`
	IsResident   bool            `json:"is_resident"`

	OPV                     decimal.Decimal `json:"opv"`
	IPN                     decimal.Decimal `json:"ipn"`
	VOSMS                   decimal.Decimal `json:"vosms"`
	TotalEmployeeDeductions decimal.Decimal `json:"total_employee_deductions"`

	OPVR                       decimal.Decimal `json:"opvr"`
	SO                         decimal.Decimal `json:"so"`
	OOSMS                      decimal.Decimal `json:"oosms"`
	SN                         decimal.Decimal `json:"sn"`
	TotalEmployerContributions decimal.Decimal `json:"total_employer_contributions"`

	NetSalary         decimal.Decimal `json:"net_salary"`
	IPNBase           decimal.Decimal `json:"ipn_base"`
	StandardDeduction decimal.Decimal `json:"standard_deduction"`
}

// GPHPaymentResponse — выплата ГПХ в ответе API.
type GPHPaymentResponse struct {
	ID                string          `json:"id"`
	ContractorName    string          `json:"contractor_name"`
	ContractorIIN     string          `json:"contractor_iin"`
	CompletionActRef  string          `json:"completion_act_ref"`
	GrossAmount       decimal.Decimal `json:"gross_amount"`
	ApplyMRPDeduction *bool           `json:"apply_mrp_deduction,omitempty"`

	OPV           decimal.Decimal `json:"opv"`
	VOSMS         decimal.Decimal `json:"vosms"`
	IPN           decimal.Decimal `json:"ipn"`
	TotalWithheld decimal.Decimal `json:"total_withheld"`
	SO            decimal.Decimal `json:"so"`
	NetAmount     decimal.Decimal `json:"net_amount"`
	TotalCost     decimal.Decimal `json:"total_cost"`

	Status string `json:"status"`
}

// TotalsResponse — сводные суммы одного трека или общего итога.
type TotalsResponse struct {
	Gross                 decimal.Decimal `json:"gross"`
	Net                   decimal.Decimal `json:"net"`
	Deductions            decimal.Decimal `json:"deductions"`
	EmployerContributions decimal.Decimal `json:"employer_contributions"`
	EmployerCost          decimal.Decimal `json:"employer_cost"`
}

// BreakdownResponse — итоги по штатным, ГПХ и общий итог.
type BreakdownResponse struct {
	Employees   TotalsResponse `json:"employees"`
	Contractors TotalsResponse `json:"contractors"`
	Grand       TotalsResponse `json:"grand"`
}

// PayrollResponse — полная ведомость в ответе API.
type PayrollResponse struct {
	ID               string `json:"id"`
	Year             int    `json:"year"`
	Month            int    `json:"month"`
	Status           string `json:"status"`
	Version          int    `json:"version"`
	WorkerCount      int    `json:"worker_count"`
	GPHPaymentsCount int    `json:"gph_payments_count"`

	Entries     []PayrollEntryResponse `json:"entries,omitempty"`
	GPHPayments []GPHPaymentResponse   `json:"gph_payments,omitempty"`
	Totals      *BreakdownResponse     `json:"totals,omitempty"`

	GeneratedBy string    `json:"generated_by"`
	GeneratedAt time.Time `json:"generated_at"`
}

// PayrollListItem — заголовок ведомости в списке.
type PayrollListItem struct {
	ID               string          `json:"id"`
	Year             int             `json:"year"`
	Month            int             `json:"month"`
	Status           string          `json:"status"`
	WorkerCount      int             `json:"worker_count"`
	GPHPaymentsCount int             `json:"gph_payments_count"`
	GrossTotal       decimal.Decimal `json:"gross_total"`
	NetTotal         decimal.Decimal `json:"net_total"`
	GeneratedAt      time.Time       `json:"generated_at"`
}

// ApproveGPHRequest — утверждение выплаты ГПХ с обязательным флагом вычета МРП.
type ApproveGPHRequest struct {
	ApplyMRPDeduction bool `json:"apply_mrp_deduction"`
}

// GroupSummaryResponse — агрегат одной группы сводки.
type GroupSummaryResponse struct {
	Key      string          `json:"key"`
	Count    int             `json:"count"`
	GrossSum decimal.Decimal `json:"gross_sum"`
	NetSum   decimal.Decimal `json:"net_sum"`
}

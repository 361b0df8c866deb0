package payroll

import (
	"context"
	"sort"

	"github.com/dkairat/Esep-api/internal/application/dto"
	"github.com/dkairat/Esep-api/internal/domain"
	"github.com/dkairat/Esep-api/internal/domain/entity"
	payrollcalc "github.com/dkairat/Esep-api/internal/domain/payroll"
	"github.com/dkairat/Esep-api/internal/domain/repository"
)

// QueryUseCase — чтение ведомостей: карточка с итогами, список, сводка по группам.
type QueryUseCase struct {
	payrollRepo repository.PayrollRepository
}

// NewQueryUseCase собирает use case.
func NewQueryUseCase(payrollRepo repository.PayrollRepository) *QueryUseCase {
	return &QueryUseCase{payrollRepo: payrollRepo}
}

// Get возвращает ведомость с записями, выплатами и итогами по трекам.
func (uc *QueryUseCase) Get(ctx context.Context, id string) (*dto.PayrollResponse, error) {
	p, err := uc.payrollRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return ToPayrollResponse(p, true), nil
}

// List возвращает заголовки ведомостей, отсортированные по ключу таблицы.
func (uc *QueryUseCase) List(ctx context.Context, page dto.PageRequest, sortState payrollcalc.SortState) ([]dto.PayrollListItem, error) {
	page.DefaultPage()
	payrolls, err := uc.payrollRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	sorted := payrollcalc.SortPayrolls(payrolls, sortState)
	out := make([]dto.PayrollListItem, 0, len(sorted))
	for _, p := range sorted {
		out = append(out, dto.PayrollListItem{
			ID:               p.ID,
			Year:             p.Year,
			Month:            p.Month,
			Status:           p.Status,
			WorkerCount:      p.WorkerCount,
			GPHPaymentsCount: p.GPHPaymentsCount,
			GrossTotal:       p.GrossTotal,
			NetTotal:         p.NetTotal,
			GeneratedAt:      p.GeneratedAt,
		})
	}
	return out, nil
}

// Summary группирует записи ведомости по ключу (tax_category | residency | contract_type).
func (uc *QueryUseCase) Summary(ctx context.Context, id, groupBy string) ([]dto.GroupSummaryResponse, error) {
	p, err := uc.payrollRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	switch groupBy {
	case payrollcalc.GroupByTaxCategory, payrollcalc.GroupByResidency, payrollcalc.GroupByContractType:
	default:
		return nil, domain.ErrInvalidInput
	}

	groups := payrollcalc.GroupEntries(p.Entries, groupBy)
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]dto.GroupSummaryResponse, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		out = append(out, dto.GroupSummaryResponse{
			Key:      k,
			Count:    g.Count,
			GrossSum: g.GrossSum,
			NetSum:   g.NetSum,
		})
	}
	return out, nil
}

// ToPayrollResponse маппит сущность в ответ API; withDetails добавляет записи, выплаты и итоги.
func ToPayrollResponse(p *entity.Payroll, withDetails bool) *dto.PayrollResponse {
	resp := &dto.PayrollResponse{
		ID:               p.ID,
		Year:             p.Year,
		Month:            p.Month,
		Status:           p.Status,
		Version:          p.Version,
		WorkerCount:      p.WorkerCount,
		GPHPaymentsCount: p.GPHPaymentsCount,
		GeneratedBy:      p.GeneratedBy,
		GeneratedAt:      p.GeneratedAt,
	}
	if !withDetails {
		return resp
	}
	for _, e := range p.Entries {
		resp.Entries = append(resp.Entries, dto.PayrollEntryResponse{
			ID:                         e.ID,
			WorkerID:                   e.WorkerID,
			SalaryAmount:               e.SalaryAmount,
			GrossSalary:                e.GrossSalary,
			TaxCategory:                e.TaxCategory,
			IsResident:                 e.IsResident,
			OPV:                        e.OPV,
			IPN:                        e.IPN,
			VOSMS:                      e.VOSMS,
			TotalEmployeeDeductions:    e.TotalEmployeeDeductions,
			OPVR:                       e.OPVR,
			SO:                         e.SO,
			OOSMS:                      e.OOSMS,
			SN:                         e.SN,
			TotalEmployerContributions: e.TotalEmployerContributions,
			NetSalary:                  e.NetSalary,
			IPNBase:                    e.IPNBase,
			StandardDeduction:          e.StandardDeduction,
		})
	}
	for _, g := range p.GPHPayments {
		resp.GPHPayments = append(resp.GPHPayments, ToGPHPaymentResponse(&g))
	}
	b := payrollcalc.Aggregate(p.Entries, p.GPHPayments)
	resp.Totals = &dto.BreakdownResponse{
		Employees:   toTotalsResponse(b.Employees),
		Contractors: toTotalsResponse(b.Contractors),
		Grand:       toTotalsResponse(b.Grand),
	}
	return resp
}

// ToGPHPaymentResponse маппит выплату ГПХ в ответ API.
func ToGPHPaymentResponse(g *entity.GPHPayment) dto.GPHPaymentResponse {
	return dto.GPHPaymentResponse{
		ID:                g.ID,
		ContractorName:    g.ContractorName,
		ContractorIIN:     g.ContractorIIN,
		CompletionActRef:  g.CompletionActRef,
		GrossAmount:       g.GrossAmount,
		ApplyMRPDeduction: g.ApplyMRPDeduction,
		OPV:               g.OPV,
		VOSMS:             g.VOSMS,
		IPN:               g.IPN,
		TotalWithheld:     g.TotalWithheld,
		SO:                g.SO,
		NetAmount:         g.NetAmount,
		TotalCost:         g.TotalCost,
		Status:            g.Status,
	}
}

func toTotalsResponse(t payrollcalc.Totals) dto.TotalsResponse {
	return dto.TotalsResponse{
		Gross:                 t.Gross,
		Net:                   t.Net,
		Deductions:            t.Deductions,
		EmployerContributions: t.EmployerContributions,
		EmployerCost:          t.EmployerCost,
	}
}

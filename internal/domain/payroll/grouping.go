package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/dkairat/Esep-api/internal/domain/entity"
)

// Ключи группировки записей ведомости.
const (
	GroupByTaxCategory  = "tax_category"
	GroupByResidency    = "residency"
	GroupByContractType = "contract_type"
)

// GroupSummary — агрегат одной группы: количество записей и суммы брутто/нетто.
type GroupSummary struct {
	Count    int
	GrossSum decimal.Decimal
	NetSum   decimal.Decimal
}

// GroupEntries группирует уже рассчитанные записи по ключу.
// Чистая проекция: ничего не пересчитывает и не мутирует записи.
// Неизвестный ключ даёт пустой результат.
func GroupEntries(entries []entity.PayrollEntry, groupBy string) map[string]GroupSummary {
	keyFn := groupKeyFn(groupBy)
	if keyFn == nil {
		return map[string]GroupSummary{}
	}

	out := make(map[string]GroupSummary)
	for _, e := range entries {
		k := keyFn(e)
		s := out[k]
		s.Count++
		s.GrossSum = s.GrossSum.Add(e.GrossSalary)
		s.NetSum = s.NetSum.Add(e.NetSalary)
		out[k] = s
	}
	return out
}

func groupKeyFn(groupBy string) func(entity.PayrollEntry) string {
	switch groupBy {
	case GroupByTaxCategory:
		return func(e entity.PayrollEntry) string { return e.TaxCategory }
	case GroupByResidency:
		return func(e entity.PayrollEntry) string {
			if e.IsResident {
				return "resident"
			}
			return "non_resident"
		}
	case GroupByContractType:
		return func(e entity.PayrollEntry) string {
			if e.IsGPHContract {
				return "gph"
			}
			return "employment"
		}
	default:
		return nil
	}
}

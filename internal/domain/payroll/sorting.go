package payroll

import (
	"sort"

	"github.com/dkairat/Esep-api/internal/domain/entity"
)

// Ключи сортировки списка ведомостей.
const (
	SortByStatus  = "status"
	SortByPeriod  = "period"
	SortByWorkers = "workers"
	SortByGross   = "gross"
	SortByNet     = "net"
)

// SortState — состояние сортируемой таблицы: активный ключ и направление.
// Повторное нажатие того же ключа меняет направление; новый ключ сбрасывает на возрастание.
type SortState struct {
	Key  string
	Desc bool
}

// Toggle применяет нажатие колонки к состоянию.
func (s *SortState) Toggle(key string) {
	if s.Key == key {
		s.Desc = !s.Desc
		return
	}
	s.Key = key
	s.Desc = false
}

// порядок статусов ведомости для сортировки по жизненному циклу
var statusRank = map[string]int{
	entity.PayrollStatusDraft:      0,
	entity.PayrollStatusCalculated: 1,
	entity.PayrollStatusApproved:   2,
	entity.PayrollStatusPaid:       3,
}

// SortPayrolls возвращает отсортированную копию списка; исходный срез не меняется.
// Сортировка стабильная; неизвестный ключ оставляет исходный порядок.
func SortPayrolls(payrolls []entity.Payroll, state SortState) []entity.Payroll {
	out := make([]entity.Payroll, len(payrolls))
	copy(out, payrolls)

	var less func(a, b entity.Payroll) bool
	switch state.Key {
	case SortByStatus:
		less = func(a, b entity.Payroll) bool { return statusRank[a.Status] < statusRank[b.Status] }
	case SortByPeriod:
		less = func(a, b entity.Payroll) bool {
			if a.Year != b.Year {
				return a.Year < b.Year
			}
			return a.Month < b.Month
		}
	case SortByWorkers:
		less = func(a, b entity.Payroll) bool { return a.WorkerCount < b.WorkerCount }
	case SortByGross:
		less = func(a, b entity.Payroll) bool { return a.GrossTotal.LessThan(b.GrossTotal) }
	case SortByNet:
		less = func(a, b entity.Payroll) bool { return a.NetTotal.LessThan(b.NetTotal) }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		if state.Desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// SortPayments возвращает отсортированную копию выплат ГПХ (status | gross | net).
func SortPayments(payments []entity.GPHPayment, state SortState) []entity.GPHPayment {
	out := make([]entity.GPHPayment, len(payments))
	copy(out, payments)

	paymentRank := map[string]int{
		entity.GPHStatusPending:  0,
		entity.GPHStatusApproved: 1,
		entity.GPHStatusPaid:     2,
	}

	var less func(a, b entity.GPHPayment) bool
	switch state.Key {
	case SortByStatus:
		less = func(a, b entity.GPHPayment) bool { return paymentRank[a.Status] < paymentRank[b.Status] }
	case SortByGross:
		less = func(a, b entity.GPHPayment) bool { return a.GrossAmount.LessThan(b.GrossAmount) }
	case SortByNet:
		less = func(a, b entity.GPHPayment) bool { return a.NetAmount.LessThan(b.NetAmount) }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		if state.Desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

package payroll_test

import (
	"context"
	"time"

	"github.com/dkairat/Esep-api/internal/domain"
	"github.com/dkairat/Esep-api/internal/domain/entity"
	"github.com/dkairat/Esep-api/internal/domain/repository"
)

// In-memory репозитории для тестов use case-ов.

type fakePayrollRepo struct {
	payrolls map[string]*entity.Payroll
	// staleReads имитирует гонку: GetByID отдаёт версию на единицу меньше хранимой
	staleReads bool
	// staleStatusReads имитирует гонку с approve: GetByID отдаёт статус draft,
	// хотя хранимая ведомость уже ушла дальше
	staleStatusReads bool
	// stalePaymentReads имитирует гонку двух approve: GetPaymentByID отдаёт
	// выплату такой, какой её видел второй запрос до фиксации первого
	stalePaymentReads bool
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{payrolls: map[string]*entity.Payroll{}}
}

func clonePayroll(p *entity.Payroll) *entity.Payroll {
	cp := *p
	cp.Entries = append([]entity.PayrollEntry(nil), p.Entries...)
	cp.GPHPayments = append([]entity.GPHPayment(nil), p.GPHPayments...)
	return &cp
}

// Create сохраняет только заголовок, как и SQL-реализация; записи и выплаты
// добавляются отдельными CreateEntry/CreatePayment.
func (r *fakePayrollRepo) Create(p *entity.Payroll) error {
	cp := *p
	cp.Entries = nil
	cp.GPHPayments = nil
	r.payrolls[p.ID] = &cp
	return nil
}

func (r *fakePayrollRepo) GetByID(id string) (*entity.Payroll, error) {
	p, ok := r.payrolls[id]
	if !ok {
		return nil, nil
	}
	cp := clonePayroll(p)
	if r.staleReads {
		cp.Version--
	}
	if r.staleStatusReads {
		cp.Status = entity.PayrollStatusDraft
	}
	return cp, nil
}

func (r *fakePayrollRepo) GetByPeriod(year, month int) (*entity.Payroll, error) {
	for _, p := range r.payrolls {
		if p.Year == year && p.Month == month {
			return clonePayroll(p), nil
		}
	}
	return nil, nil
}

func (r *fakePayrollRepo) List(limit, offset int) ([]entity.Payroll, error) {
	out := make([]entity.Payroll, 0, len(r.payrolls))
	for _, p := range r.payrolls {
		out = append(out, *clonePayroll(p))
	}
	return out, nil
}

func (r *fakePayrollRepo) UpdateStatus(id, status string, expectedVersion int) error {
	p, ok := r.payrolls[id]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Version != expectedVersion {
		return domain.ErrConcurrentModification
	}
	p.Status = status
	p.Version++
	return nil
}

func (r *fakePayrollRepo) ReplaceEntries(p *entity.Payroll) error {
	stored, ok := r.payrolls[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Entries = append([]entity.PayrollEntry(nil), p.Entries...)
	stored.GrossTotal = p.GrossTotal
	stored.NetTotal = p.NetTotal
	stored.EmployeeDeductionsTotal = p.EmployeeDeductionsTotal
	stored.EmployerContributionsTotal = p.EmployerContributionsTotal
	return nil
}

func (r *fakePayrollRepo) Delete(id string) error {
	p, ok := r.payrolls[id]
	if !ok || p.Status != entity.PayrollStatusDraft {
		return domain.ErrConcurrentModification
	}
	delete(r.payrolls, id)
	return nil
}

func (r *fakePayrollRepo) CreateEntry(e *entity.PayrollEntry) error {
	p, ok := r.payrolls[e.PayrollID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Entries = append(p.Entries, *e)
	return nil
}

func (r *fakePayrollRepo) CreatePayment(g *entity.GPHPayment) error {
	p, ok := r.payrolls[g.PayrollID]
	if !ok {
		return domain.ErrNotFound
	}
	p.GPHPayments = append(p.GPHPayments, *g)
	return nil
}

func (r *fakePayrollRepo) GetPaymentByID(id string) (*entity.GPHPayment, error) {
	for _, p := range r.payrolls {
		for i := range p.GPHPayments {
			if p.GPHPayments[i].ID == id {
				cp := p.GPHPayments[i]
				if r.stalePaymentReads {
					cp.Status = entity.GPHStatusPending
					cp.ApplyMRPDeduction = nil
				}
				return &cp, nil
			}
		}
	}
	return nil, nil
}

func (r *fakePayrollRepo) UpdatePayment(g *entity.GPHPayment, fromStatus string) error {
	for _, p := range r.payrolls {
		for i := range p.GPHPayments {
			if p.GPHPayments[i].ID == g.ID {
				if p.GPHPayments[i].Status != fromStatus {
					return domain.ErrConcurrentModification
				}
				p.GPHPayments[i] = *g
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

type fakeWorkerRepo struct {
	workers []entity.Worker
}

func (r *fakeWorkerRepo) Create(w *entity.Worker) error { r.workers = append(r.workers, *w); return nil }

func (r *fakeWorkerRepo) GetByID(id string) (*entity.Worker, error) {
	for i := range r.workers {
		if r.workers[i].ID == id {
			cp := r.workers[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeWorkerRepo) GetByIIN(iin string) (*entity.Worker, error) {
	for i := range r.workers {
		if r.workers[i].IIN == iin {
			cp := r.workers[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeWorkerRepo) List(limit, offset int) ([]entity.Worker, error) {
	return append([]entity.Worker(nil), r.workers...), nil
}

func (r *fakeWorkerRepo) ListActive(year, month int) ([]entity.Worker, error) {
	var out []entity.Worker
	for _, w := range r.workers {
		if !w.IsGPHContract && w.ActiveIn(year, month) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *fakeWorkerRepo) Update(w *entity.Worker) error {
	for i := range r.workers {
		if r.workers[i].ID == w.ID {
			r.workers[i] = *w
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeActRepo struct {
	acts []entity.CompletionAct
}

func (r *fakeActRepo) Create(a *entity.CompletionAct) error { r.acts = append(r.acts, *a); return nil }

func (r *fakeActRepo) GetByID(id string) (*entity.CompletionAct, error) {
	for i := range r.acts {
		if r.acts[i].ID == id {
			cp := r.acts[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeActRepo) List(limit, offset int) ([]entity.CompletionAct, error) {
	return append([]entity.CompletionAct(nil), r.acts...), nil
}

func (r *fakeActRepo) ListUnpaidByPeriod(year, month int) ([]entity.CompletionAct, error) {
	var out []entity.CompletionAct
	for _, a := range r.acts {
		if !a.Paid && a.ActDate.Year() == year && int(a.ActDate.Month()) == month {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeActRepo) MarkPaid(id string) error {
	for i := range r.acts {
		if r.acts[i].ID == id {
			r.acts[i].Paid = true
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeRateRepo struct {
	tables []entity.RateTable
}

func (r *fakeRateRepo) Create(rt *entity.RateTable) error { r.tables = append(r.tables, *rt); return nil }

func (r *fakeRateRepo) GetByID(id string) (*entity.RateTable, error) {
	for i := range r.tables {
		if r.tables[i].ID == id {
			cp := r.tables[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRateRepo) GetEffective(asOf time.Time) (*entity.RateTable, error) {
	var best *entity.RateTable
	for i := range r.tables {
		rt := &r.tables[i]
		if rt.EffectiveFrom.After(asOf) {
			continue
		}
		if best == nil || rt.EffectiveFrom.After(best.EffectiveFrom) {
			best = rt
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

func (r *fakeRateRepo) List() ([]entity.RateTable, error) {
	return append([]entity.RateTable(nil), r.tables...), nil
}

// fakeTxRunner выполняет fn прямо над теми же репозиториями, без транзакции.
type fakeTxRunner struct {
	payrollRepo repository.PayrollRepository
	actRepo     repository.CompletionActRepository
}

func (r *fakeTxRunner) RunPayroll(ctx context.Context, fn func(
	payrollRepo repository.PayrollRepository,
	actRepo repository.CompletionActRepository,
) error) error {
	return fn(r.payrollRepo, r.actRepo)
}

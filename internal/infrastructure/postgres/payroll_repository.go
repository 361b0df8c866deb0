package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dkairat/Esep-api/internal/domain"
	"github.com/dkairat/Esep-api/internal/domain/entity"
	"github.com/dkairat/Esep-api/internal/domain/repository"
)

var _ repository.PayrollRepository = (*PayrollRepo)(nil)

// PayrollRepo — реализация PayrollRepository (работает с pool или tx).
type PayrollRepo struct {
	q Querier
}

// NewPayrollRepository собирает адаптер. Передавать pool или tx (Querier).
func NewPayrollRepository(q Querier) *PayrollRepo {
	return &PayrollRepo{q: q}
}

// Create сохраняет заголовок ведомости.
func (r *PayrollRepo) Create(p *entity.Payroll) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO payrolls (id, year, month, status, version, worker_count, gph_payments_count,
		                      gross_total, net_total, employee_deductions_total, employer_contributions_total,
		                      generated_by, generated_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Year, p.Month, p.Status, p.Version, p.WorkerCount, p.GPHPaymentsCount,
		p.GrossTotal, p.NetTotal, p.EmployeeDeductionsTotal, p.EmployerContributionsTotal,
		nullIfEmpty(p.GeneratedBy), p.GeneratedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ведомость за период уже существует", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert payroll: %w", err)
	}
	return nil
}

// GetByID возвращает ведомость с записями и выплатами; nil, если не найдена.
func (r *PayrollRepo) GetByID(id string) (*entity.Payroll, error) {
	p, err := r.getHeader("id = $1", id)
	if err != nil || p == nil {
		return p, err
	}
	if p.Entries, err = r.entriesByPayroll(p.ID); err != nil {
		return nil, err
	}
	if p.GPHPayments, err = r.paymentsByPayroll(p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByPeriod возвращает ведомость периода (заголовок с записями) либо nil.
func (r *PayrollRepo) GetByPeriod(year, month int) (*entity.Payroll, error) {
	p, err := r.getHeader("year = $1 AND month = $2", year, month)
	if err != nil || p == nil {
		return p, err
	}
	if p.Entries, err = r.entriesByPayroll(p.ID); err != nil {
		return nil, err
	}
	if p.GPHPayments, err = r.paymentsByPayroll(p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

const payrollColumns = `id, year, month, status, version, worker_count, gph_payments_count,
	       gross_total, net_total, employee_deductions_total, employer_contributions_total,
	       COALESCE(generated_by, ''), generated_at, updated_at`

func (r *PayrollRepo) getHeader(where string, args ...any) (*entity.Payroll, error) {
	query := `SELECT ` + payrollColumns + ` FROM payrolls WHERE ` + where
	var p entity.Payroll
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&p.ID, &p.Year, &p.Month, &p.Status, &p.Version, &p.WorkerCount, &p.GPHPaymentsCount,
		&p.GrossTotal, &p.NetTotal, &p.EmployeeDeductionsTotal, &p.EmployerContributionsTotal,
		&p.GeneratedBy, &p.GeneratedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payroll: %w", err)
	}
	return &p, nil
}

// List возвращает заголовки ведомостей, новые периоды первыми.
func (r *PayrollRepo) List(limit, offset int) ([]entity.Payroll, error) {
	query := `SELECT ` + payrollColumns + `
		FROM payrolls ORDER BY year DESC, month DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list payrolls: %w", err)
	}
	defer rows.Close()

	var out []entity.Payroll
	for rows.Next() {
		var p entity.Payroll
		if err := rows.Scan(
			&p.ID, &p.Year, &p.Month, &p.Status, &p.Version, &p.WorkerCount, &p.GPHPaymentsCount,
			&p.GrossTotal, &p.NetTotal, &p.EmployeeDeductionsTotal, &p.EmployerContributionsTotal,
			&p.GeneratedBy, &p.GeneratedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payroll: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateStatus меняет статус с оптимистической проверкой версии.
// Версия инкрементируется в той же команде; проигравший гонку не попадает в WHERE.
func (r *PayrollRepo) UpdateStatus(id, status string, expectedVersion int) error {
	query := `
		UPDATE payrolls
		SET status = $2, version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $3`
	tag, err := r.q.Exec(context.Background(), query, id, status, expectedVersion)
	if err != nil {
		return fmt.Errorf("update payroll status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		existing, err := r.getHeader("id = $1", id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		return fmt.Errorf("%w: ведомость %s, версия %d устарела", domain.ErrConcurrentModification, id, expectedVersion)
	}
	return nil
}

// ReplaceEntries заменяет записи ведомости результатами пересчёта и обновляет итоги заголовка.
func (r *PayrollRepo) ReplaceEntries(p *entity.Payroll) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM payroll_entries WHERE payroll_id = $1`, p.ID); err != nil {
		return fmt.Errorf("delete payroll entries: %w", err)
	}
	for i := range p.Entries {
		if err := r.CreateEntry(&p.Entries[i]); err != nil {
			return err
		}
	}
	query := `
		UPDATE payrolls
		SET worker_count = $2, gross_total = $3, net_total = $4,
		    employee_deductions_total = $5, employer_contributions_total = $6,
		    updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, len(p.Entries), p.GrossTotal, p.NetTotal,
		p.EmployeeDeductionsTotal, p.EmployerContributionsTotal,
	)
	if err != nil {
		return fmt.Errorf("update payroll totals: %w", err)
	}
	return nil
}

// Delete удаляет ведомость с записями и выплатами (FK ON DELETE CASCADE).
// Статус в WHERE закрывает гонку с approve: ведомость, успевшая уйти из
// draft между чтением и удалением, не трогается.
func (r *PayrollRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM payrolls WHERE id = $1 AND status = $2`, id, entity.PayrollStatusDraft)
	if err != nil {
		return fmt.Errorf("delete payroll: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConcurrentModification
	}
	return nil
}

// CreateEntry сохраняет запись ведомости со слепком расчёта (JSONB).
func (r *PayrollRepo) CreateEntry(e *entity.PayrollEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	snapshot, err := json.Marshal(e.CalculationSnapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	query := `
		INSERT INTO payroll_entries (id, payroll_id, worker_id, year, month,
		    salary_amount, gross_salary, tax_category, is_resident, is_gph_contract,
		    opv, ipn, vosms, total_employee_deductions,
		    opvr, so, oosms, sn, total_employer_contributions,
		    net_salary, ipn_base, standard_deduction, calculation_snapshot,
		    created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)`
	_, err = r.q.Exec(context.Background(), query,
		e.ID, e.PayrollID, e.WorkerID, e.Year, e.Month,
		e.SalaryAmount, e.GrossSalary, e.TaxCategory, e.IsResident, e.IsGPHContract,
		e.OPV, e.IPN, e.VOSMS, e.TotalEmployeeDeductions,
		e.OPVR, e.SO, e.OOSMS, e.SN, e.TotalEmployerContributions,
		e.NetSalary, e.IPNBase, e.StandardDeduction, snapshot,
		e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payroll entry: %w", err)
	}
	return nil
}

func (r *PayrollRepo) entriesByPayroll(payrollID string) ([]entity.PayrollEntry, error) {
	query := `
		SELECT id, payroll_id, worker_id, year, month,
		       salary_amount, gross_salary, tax_category, is_resident, is_gph_contract,
		       opv, ipn, vosms, total_employee_deductions,
		       opvr, so, oosms, sn, total_employer_contributions,
		       net_salary, ipn_base, standard_deduction, calculation_snapshot,
		       created_at, updated_at
		FROM payroll_entries WHERE payroll_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, payrollID)
	if err != nil {
		return nil, fmt.Errorf("list payroll entries: %w", err)
	}
	defer rows.Close()

	var out []entity.PayrollEntry
	for rows.Next() {
		var e entity.PayrollEntry
		var snapshot []byte
		if err := rows.Scan(
			&e.ID, &e.PayrollID, &e.WorkerID, &e.Year, &e.Month,
			&e.SalaryAmount, &e.GrossSalary, &e.TaxCategory, &e.IsResident, &e.IsGPHContract,
			&e.OPV, &e.IPN, &e.VOSMS, &e.TotalEmployeeDeductions,
			&e.OPVR, &e.SO, &e.OOSMS, &e.SN, &e.TotalEmployerContributions,
			&e.NetSalary, &e.IPNBase, &e.StandardDeduction, &snapshot,
			&e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payroll entry: %w", err)
		}
		if len(snapshot) > 0 {
			if err := json.Unmarshal(snapshot, &e.CalculationSnapshot); err != nil {
				return nil, fmt.Errorf("unmarshal snapshot: %w", err)
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// CreatePayment сохраняет выплату ГПХ со слепком расчёта.
func (r *PayrollRepo) CreatePayment(g *entity.GPHPayment) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	snapshot, err := json.Marshal(g.CalculationSnapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	query := `
		INSERT INTO gph_payments (id, payroll_id, contractor_name, contractor_iin, completion_act_ref,
		    gross_amount, apply_mrp_deduction,
		    opv, vosms, ipn, total_withheld, so, net_amount, total_cost,
		    status, calculation_snapshot, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err = r.q.Exec(context.Background(), query,
		g.ID, g.PayrollID, g.ContractorName, g.ContractorIIN, g.CompletionActRef,
		g.GrossAmount, g.ApplyMRPDeduction,
		g.OPV, g.VOSMS, g.IPN, g.TotalWithheld, g.SO, g.NetAmount, g.TotalCost,
		g.Status, snapshot, g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert gph payment: %w", err)
	}
	return nil
}

const gphColumns = `id, payroll_id, contractor_name, contractor_iin, completion_act_ref,
	       gross_amount, apply_mrp_deduction,
	       opv, vosms, ipn, total_withheld, so, net_amount, total_cost,
	       status, calculation_snapshot, created_at, updated_at`

// GetPaymentByID возвращает выплату ГПХ либо nil.
func (r *PayrollRepo) GetPaymentByID(id string) (*entity.GPHPayment, error) {
	query := `SELECT ` + gphColumns + ` FROM gph_payments WHERE id = $1`
	g, err := scanPayment(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get gph payment: %w", err)
	}
	return g, nil
}

func (r *PayrollRepo) paymentsByPayroll(payrollID string) ([]entity.GPHPayment, error) {
	query := `SELECT ` + gphColumns + ` FROM gph_payments WHERE payroll_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, payrollID)
	if err != nil {
		return nil, fmt.Errorf("list gph payments: %w", err)
	}
	defer rows.Close()

	var out []entity.GPHPayment
	for rows.Next() {
		g, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan gph payment: %w", err)
		}
		out = append(out, *g)
	}
	return out, rows.Err()
}

func scanPayment(row pgx.Row) (*entity.GPHPayment, error) {
	var g entity.GPHPayment
	var snapshot []byte
	err := row.Scan(
		&g.ID, &g.PayrollID, &g.ContractorName, &g.ContractorIIN, &g.CompletionActRef,
		&g.GrossAmount, &g.ApplyMRPDeduction,
		&g.OPV, &g.VOSMS, &g.IPN, &g.TotalWithheld, &g.SO, &g.NetAmount, &g.TotalCost,
		&g.Status, &snapshot, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(snapshot) > 0 {
		if err := json.Unmarshal(snapshot, &g.CalculationSnapshot); err != nil {
			return nil, fmt.Errorf("unmarshal snapshot: %w", err)
		}
	}
	return &g, nil
}

// UpdatePayment сохраняет расчётные поля, слепок и статус выплаты.
// Статус в WHERE — оптимистическая блокировка: если выплату уже перевели
// из fromStatus, строка не обновляется и возвращается ErrConcurrentModification.
func (r *PayrollRepo) UpdatePayment(g *entity.GPHPayment, fromStatus string) error {
	snapshot, err := json.Marshal(g.CalculationSnapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	query := `
		UPDATE gph_payments
		SET apply_mrp_deduction = $2,
		    opv = $3, vosms = $4, ipn = $5, total_withheld = $6,
		    so = $7, net_amount = $8, total_cost = $9,
		    status = $10, calculation_snapshot = $11, updated_at = $12
		WHERE id = $1 AND status = $13`
	tag, err := r.q.Exec(context.Background(), query,
		g.ID, g.ApplyMRPDeduction,
		g.OPV, g.VOSMS, g.IPN, g.TotalWithheld,
		g.SO, g.NetAmount, g.TotalCost,
		g.Status, snapshot, g.UpdatedAt,
		fromStatus,
	)
	if err != nil {
		return fmt.Errorf("update gph payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConcurrentModification
	}
	return nil
}

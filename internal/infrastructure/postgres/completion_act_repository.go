package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dkairat/Esep-api/internal/domain"
	"github.com/dkairat/Esep-api/internal/domain/entity"
	"github.com/dkairat/Esep-api/internal/domain/repository"
)

var _ repository.CompletionActRepository = (*CompletionActRepo)(nil)

// CompletionActRepo — реализация CompletionActRepository.
type CompletionActRepo struct {
	q Querier
}

// NewCompletionActRepository собирает адаптер. Передавать pool или tx (Querier).
func NewCompletionActRepository(q Querier) *CompletionActRepo {
	return &CompletionActRepo{q: q}
}

const actColumns = `id, contractor_name, contractor_iin, act_number, act_date,
	       gross_amount, apply_mrp_deduction, paid, created_at, updated_at`

// Create сохраняет акт. Номер акта у одного подрядчика уникален.
func (r *CompletionActRepo) Create(a *entity.CompletionAct) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	query := `
		INSERT INTO completion_acts (id, contractor_name, contractor_iin, act_number, act_date,
		                             gross_amount, apply_mrp_deduction, paid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.ContractorName, a.ContractorIIN, a.ActNumber, a.ActDate,
		a.GrossAmount, a.ApplyMRPDeduction, a.Paid, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: акт %s уже зарегистрирован", domain.ErrDuplicate, a.ActNumber)
		}
		return fmt.Errorf("insert completion act: %w", err)
	}
	return nil
}

// GetByID возвращает акт либо nil.
func (r *CompletionActRepo) GetByID(id string) (*entity.CompletionAct, error) {
	query := `SELECT ` + actColumns + ` FROM completion_acts WHERE id = $1`
	var a entity.CompletionAct
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.ContractorName, &a.ContractorIIN, &a.ActNumber, &a.ActDate,
		&a.GrossAmount, &a.ApplyMRPDeduction, &a.Paid, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get completion act: %w", err)
	}
	return &a, nil
}

// List возвращает страницу актов, свежие первыми.
func (r *CompletionActRepo) List(limit, offset int) ([]entity.CompletionAct, error) {
	query := `SELECT ` + actColumns + `
		FROM completion_acts ORDER BY act_date DESC, act_number LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// ListUnpaidByPeriod возвращает неоплаченные акты с датой внутри периода.
func (r *CompletionActRepo) ListUnpaidByPeriod(year, month int) ([]entity.CompletionAct, error) {
	periodStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, 0)
	query := `SELECT ` + actColumns + `
		FROM completion_acts
		WHERE paid = false AND act_date >= $1 AND act_date < $2
		ORDER BY act_date, act_number`
	return r.list(query, periodStart, periodEnd)
}

func (r *CompletionActRepo) list(query string, args ...any) ([]entity.CompletionAct, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list completion acts: %w", err)
	}
	defer rows.Close()

	var out []entity.CompletionAct
	for rows.Next() {
		var a entity.CompletionAct
		if err := rows.Scan(
			&a.ID, &a.ContractorName, &a.ContractorIIN, &a.ActNumber, &a.ActDate,
			&a.GrossAmount, &a.ApplyMRPDeduction, &a.Paid, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan completion act: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// MarkPaid закрывает акт после оплаты выплаты ГПХ.
func (r *CompletionActRepo) MarkPaid(id string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE completion_acts SET paid = true, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark completion act paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

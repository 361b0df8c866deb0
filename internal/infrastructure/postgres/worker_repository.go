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

var _ repository.WorkerRepository = (*WorkerRepo)(nil)

// WorkerRepo — реализация WorkerRepository.
type WorkerRepo struct {
	q Querier
}

// NewWorkerRepository собирает адаптер. Передавать pool или tx (Querier).
func NewWorkerRepository(q Querier) *WorkerRepo {
	return &WorkerRepo{q: q}
}

const workerColumns = `id, full_name, iin, COALESCE(position, ''), salary_amount, tax_category,
	       is_resident, is_gph_contract, hired_at, terminated_at, created_at, updated_at`

// Create сохраняет работника. ИИН уникален.
func (r *WorkerRepo) Create(w *entity.Worker) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	query := `
		INSERT INTO workers (id, full_name, iin, position, salary_amount, tax_category,
		                     is_resident, is_gph_contract, hired_at, terminated_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		w.ID, w.FullName, w.IIN, nullIfEmpty(w.Position), w.SalaryAmount, w.TaxCategory,
		w.IsResident, w.IsGPHContract, w.HiredAt, w.TerminatedAt, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ИИН уже зарегистрирован", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert worker: %w", err)
	}
	return nil
}

// GetByID возвращает работника либо nil.
func (r *WorkerRepo) GetByID(id string) (*entity.Worker, error) {
	return r.getOne("id = $1", id)
}

// GetByIIN возвращает работника по ИИН либо nil.
func (r *WorkerRepo) GetByIIN(iin string) (*entity.Worker, error) {
	return r.getOne("iin = $1", iin)
}

func (r *WorkerRepo) getOne(where string, args ...any) (*entity.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers WHERE ` + where
	var w entity.Worker
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&w.ID, &w.FullName, &w.IIN, &w.Position, &w.SalaryAmount, &w.TaxCategory,
		&w.IsResident, &w.IsGPHContract, &w.HiredAt, &w.TerminatedAt, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get worker: %w", err)
	}
	return &w, nil
}

// List возвращает страницу работников по фамилии.
func (r *WorkerRepo) List(limit, offset int) ([]entity.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers ORDER BY full_name LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// ListActive возвращает штатных работников, числящихся в периоде.
// Принят на работу до конца периода и не уволен до его начала; ГПХ не входят.
func (r *WorkerRepo) ListActive(year, month int) ([]entity.Worker, error) {
	periodStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, 0)
	query := `SELECT ` + workerColumns + `
		FROM workers
		WHERE is_gph_contract = false
		  AND hired_at < $2
		  AND (terminated_at IS NULL OR terminated_at >= $1)
		ORDER BY full_name`
	return r.list(query, periodStart, periodEnd)
}

func (r *WorkerRepo) list(query string, args ...any) ([]entity.Worker, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}
	defer rows.Close()

	var out []entity.Worker
	for rows.Next() {
		var w entity.Worker
		if err := rows.Scan(
			&w.ID, &w.FullName, &w.IIN, &w.Position, &w.SalaryAmount, &w.TaxCategory,
			&w.IsResident, &w.IsGPHContract, &w.HiredAt, &w.TerminatedAt, &w.CreatedAt, &w.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan worker: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// Update сохраняет изменяемые поля работника.
func (r *WorkerRepo) Update(w *entity.Worker) error {
	query := `
		UPDATE workers
		SET full_name = $2, position = $3, salary_amount = $4, tax_category = $5,
		    is_resident = $6, terminated_at = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		w.ID, w.FullName, nullIfEmpty(w.Position), w.SalaryAmount, w.TaxCategory,
		w.IsResident, w.TerminatedAt, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("update worker: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

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

var _ repository.RateTableRepository = (*RateTableRepo)(nil)

// RateTableRepo — реализация RateTableRepository.
type RateTableRepo struct {
	q Querier
}

// NewRateTableRepository собирает адаптер. Передавать pool или tx (Querier).
func NewRateTableRepository(q Querier) *RateTableRepo {
	return &RateTableRepo{q: q}
}

const rateColumns = `id, effective_from, mrp, mzp, mrp_deduction_count,
	       opv_rate, vosms_rate, ipn_rate, opvr_rate, so_rate, oosms_rate, sn_rate, created_at`

// Create сохраняет новую версию таблицы ставок. effective_from уникален.
func (r *RateTableRepo) Create(rt *entity.RateTable) error {
	if rt.ID == "" {
		rt.ID = uuid.New().String()
	}
	query := `
		INSERT INTO rate_tables (id, effective_from, mrp, mzp, mrp_deduction_count,
		                         opv_rate, vosms_rate, ipn_rate, opvr_rate, so_rate, oosms_rate, sn_rate, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		rt.ID, rt.EffectiveFrom, rt.MRP, rt.MZP, rt.MRPDeductionCount,
		rt.OPVRate, rt.VOSMSRate, rt.IPNRate, rt.OPVRRate, rt.SORate, rt.OOSMSRate, rt.SNRate, rt.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: таблица ставок на эту дату уже есть", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert rate table: %w", err)
	}
	return nil
}

// GetByID возвращает таблицу ставок либо nil.
func (r *RateTableRepo) GetByID(id string) (*entity.RateTable, error) {
	query := `SELECT ` + rateColumns + ` FROM rate_tables WHERE id = $1`
	return r.getOne(query, id)
}

// GetEffective возвращает таблицу с максимальной effective_from ≤ asOf либо nil.
func (r *RateTableRepo) GetEffective(asOf time.Time) (*entity.RateTable, error) {
	query := `SELECT ` + rateColumns + `
		FROM rate_tables WHERE effective_from <= $1
		ORDER BY effective_from DESC LIMIT 1`
	return r.getOne(query, asOf)
}

func (r *RateTableRepo) getOne(query string, args ...any) (*entity.RateTable, error) {
	var rt entity.RateTable
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&rt.ID, &rt.EffectiveFrom, &rt.MRP, &rt.MZP, &rt.MRPDeductionCount,
		&rt.OPVRate, &rt.VOSMSRate, &rt.IPNRate, &rt.OPVRRate, &rt.SORate, &rt.OOSMSRate, &rt.SNRate, &rt.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rate table: %w", err)
	}
	return &rt, nil
}

// List возвращает все версии, свежие первыми.
func (r *RateTableRepo) List() ([]entity.RateTable, error) {
	query := `SELECT ` + rateColumns + ` FROM rate_tables ORDER BY effective_from DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list rate tables: %w", err)
	}
	defer rows.Close()

	var out []entity.RateTable
	for rows.Next() {
		var rt entity.RateTable
		if err := rows.Scan(
			&rt.ID, &rt.EffectiveFrom, &rt.MRP, &rt.MZP, &rt.MRPDeductionCount,
			&rt.OPVRate, &rt.VOSMSRate, &rt.IPNRate, &rt.OPVRRate, &rt.SORate, &rt.OOSMSRate, &rt.SNRate, &rt.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan rate table: %w", err)
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

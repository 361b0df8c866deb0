package repository

import (
	"time"

	"github.com/dkairat/Esep-api/internal/domain/entity"
)

// RateTableRepository — порт персистентности таблиц ставок.
type RateTableRepository interface {
	Create(rt *entity.RateTable) error
	GetByID(id string) (*entity.RateTable, error)
	// GetEffective возвращает таблицу с максимальной effective_from ≤ asOf.
	GetEffective(asOf time.Time) (*entity.RateTable, error)
	List() ([]entity.RateTable, error)
}

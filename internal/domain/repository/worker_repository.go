package repository

import "github.com/dkairat/Esep-api/internal/domain/entity"

// WorkerRepository — порт персистентности работников.
type WorkerRepository interface {
	Create(w *entity.Worker) error
	GetByID(id string) (*entity.Worker, error)
	GetByIIN(iin string) (*entity.Worker, error)
	List(limit, offset int) ([]entity.Worker, error)
	// ListActive возвращает работников, числящихся в периоде (без ГПХ).
	ListActive(year, month int) ([]entity.Worker, error)
	Update(w *entity.Worker) error
}

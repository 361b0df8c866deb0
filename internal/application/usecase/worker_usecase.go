package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/dkairat/Esep-api/internal/application/dto"
	"github.com/dkairat/Esep-api/internal/domain"
	"github.com/dkairat/Esep-api/internal/domain/entity"
	"github.com/dkairat/Esep-api/internal/domain/repository"
)

// WorkerUseCase — реестр работников.
type WorkerUseCase struct {
	workerRepo repository.WorkerRepository
}

// NewWorkerUseCase собирает use case.
func NewWorkerUseCase(workerRepo repository.WorkerRepository) *WorkerUseCase {
	return &WorkerUseCase{workerRepo: workerRepo}
}

// Create заводит работника. ИИН обязателен и уникален.
func (uc *WorkerUseCase) Create(in dto.CreateWorkerRequest) (*dto.WorkerResponse, error) {
	if in.FullName == "" || len(in.IIN) != 12 {
		return nil, domain.ErrInvalidInput
	}
	if in.SalaryAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.workerRepo.GetByIIN(in.IIN)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	taxCategory := in.TaxCategory
	if taxCategory == "" {
		taxCategory = entity.TaxCategoryStandard
	}
	isResident := true
	if in.IsResident != nil {
		isResident = *in.IsResident
	}
	hiredAt := in.HiredAt
	if hiredAt.IsZero() {
		hiredAt = now
	}
	w := &entity.Worker{
		ID:            uuid.New().String(),
		FullName:      in.FullName,
		IIN:           in.IIN,
		Position:      in.Position,
		SalaryAmount:  in.SalaryAmount,
		TaxCategory:   taxCategory,
		IsResident:    isResident,
		IsGPHContract: in.IsGPHContract,
		HiredAt:       hiredAt,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.workerRepo.Create(w); err != nil {
		return nil, err
	}
	return toWorkerResponse(w), nil
}

// List возвращает страницу работников.
func (uc *WorkerUseCase) List(page dto.PageRequest) ([]dto.WorkerResponse, error) {
	page.DefaultPage()
	workers, err := uc.workerRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WorkerResponse, 0, len(workers))
	for i := range workers {
		out = append(out, *toWorkerResponse(&workers[i]))
	}
	return out, nil
}

// GetByID возвращает работника или ErrNotFound.
// ListActive возвращает штатных работников, числящихся в периоде.
func (uc *WorkerUseCase) ListActive(year, month int) ([]dto.WorkerResponse, error) {
	if year < 2000 || year > 2100 || month < 1 || month > 12 {
		return nil, domain.ErrInvalidInput
	}
	workers, err := uc.workerRepo.ListActive(year, month)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WorkerResponse, 0, len(workers))
	for i := range workers {
		out = append(out, *toWorkerResponse(&workers[i]))
	}
	return out, nil
}

func (uc *WorkerUseCase) GetByID(id string) (*dto.WorkerResponse, error) {
	w, err := uc.workerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	return toWorkerResponse(w), nil
}

func toWorkerResponse(w *entity.Worker) *dto.WorkerResponse {
	return &dto.WorkerResponse{
		ID:            w.ID,
		FullName:      w.FullName,
		IIN:           w.IIN,
		Position:      w.Position,
		SalaryAmount:  w.SalaryAmount,
		TaxCategory:   w.TaxCategory,
		IsResident:    w.IsResident,
		IsGPHContract: w.IsGPHContract,
		HiredAt:       w.HiredAt,
		TerminatedAt:  w.TerminatedAt,
	}
}

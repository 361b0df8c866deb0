package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/dkairat/Esep-api/internal/application/dto"
	"github.com/dkairat/Esep-api/internal/domain"
	"github.com/dkairat/Esep-api/internal/domain/entity"
	"github.com/dkairat/Esep-api/internal/domain/repository"
)

// CompletionActUseCase — реестр актов выполненных работ по договорам ГПХ.
type CompletionActUseCase struct {
	actRepo repository.CompletionActRepository
}

// NewCompletionActUseCase собирает use case.
func NewCompletionActUseCase(actRepo repository.CompletionActRepository) *CompletionActUseCase {
	return &CompletionActUseCase{actRepo: actRepo}
}

// Create регистрирует акт. Сумма по акту не может быть отрицательной.
func (uc *CompletionActUseCase) Create(in dto.CreateCompletionActRequest) (*dto.CompletionActResponse, error) {
	if in.ContractorName == "" || len(in.ContractorIIN) != 12 || in.ActNumber == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.GrossAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	actDate := in.ActDate
	if actDate.IsZero() {
		actDate = now
	}
	a := &entity.CompletionAct{
		ID:                uuid.New().String(),
		ContractorName:    in.ContractorName,
		ContractorIIN:     in.ContractorIIN,
		ActNumber:         in.ActNumber,
		ActDate:           actDate,
		GrossAmount:       in.GrossAmount,
		ApplyMRPDeduction: in.ApplyMRPDeduction,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.actRepo.Create(a); err != nil {
		return nil, err
	}
	return toActResponse(a), nil
}

// List возвращает страницу актов.
func (uc *CompletionActUseCase) List(page dto.PageRequest) ([]dto.CompletionActResponse, error) {
	page.DefaultPage()
	acts, err := uc.actRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompletionActResponse, 0, len(acts))
	for i := range acts {
		out = append(out, *toActResponse(&acts[i]))
	}
	return out, nil
}

func toActResponse(a *entity.CompletionAct) *dto.CompletionActResponse {
	return &dto.CompletionActResponse{
		ID:                a.ID,
		ContractorName:    a.ContractorName,
		ContractorIIN:     a.ContractorIIN,
		ActNumber:         a.ActNumber,
		ActDate:           a.ActDate,
		GrossAmount:       a.GrossAmount,
		ApplyMRPDeduction: a.ApplyMRPDeduction,
		Paid:              a.Paid,
	}
}

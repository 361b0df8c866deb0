package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/dkairat/Esep-api/internal/application/dto"
	"github.com/dkairat/Esep-api/internal/domain"
	"github.com/dkairat/Esep-api/internal/domain/entity"
	"github.com/dkairat/Esep-api/internal/domain/repository"
)

// RateTableUseCase — администрирование таблиц ставок.
// Таблицы версионируются по effective_from; старые не редактируются.
type RateTableUseCase struct {
	rateRepo repository.RateTableRepository
}

// NewRateTableUseCase собирает use case.
func NewRateTableUseCase(rateRepo repository.RateTableRepository) *RateTableUseCase {
	return &RateTableUseCase{rateRepo: rateRepo}
}

// Create сохраняет новую версию таблицы ставок после проверки инвариантов.
func (uc *RateTableUseCase) Create(in dto.CreateRateTableRequest) (*dto.RateTableResponse, error) {
	if in.EffectiveFrom.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	rt := &entity.RateTable{
		ID:                uuid.New().String(),
		EffectiveFrom:     in.EffectiveFrom,
		MRP:               in.MRP,
		MZP:               in.MZP,
		MRPDeductionCount: in.MRPDeductionCount,
		OPVRate:           in.OPVRate,
		VOSMSRate:         in.VOSMSRate,
		IPNRate:           in.IPNRate,
		OPVRRate:          in.OPVRRate,
		SORate:            in.SORate,
		OOSMSRate:         in.OOSMSRate,
		SNRate:            in.SNRate,
		CreatedAt:         time.Now(),
	}
	if err := rt.Validate(); err != nil {
		return nil, err
	}
	if err := uc.rateRepo.Create(rt); err != nil {
		return nil, err
	}
	return toRateTableResponse(rt), nil
}

// List возвращает все версии таблиц ставок.
func (uc *RateTableUseCase) List() ([]dto.RateTableResponse, error) {
	tables, err := uc.rateRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.RateTableResponse, 0, len(tables))
	for i := range tables {
		out = append(out, *toRateTableResponse(&tables[i]))
	}
	return out, nil
}

// GetEffective возвращает таблицу, действующую на дату.
func (uc *RateTableUseCase) GetEffective(asOf time.Time) (*dto.RateTableResponse, error) {
	rt, err := uc.rateRepo.GetEffective(asOf)
	if err != nil {
		return nil, err
	}
	if rt == nil {
		return nil, domain.ErrNotFound
	}
	return toRateTableResponse(rt), nil
}

func toRateTableResponse(rt *entity.RateTable) *dto.RateTableResponse {
	return &dto.RateTableResponse{
		ID:                rt.ID,
		EffectiveFrom:     rt.EffectiveFrom,
		MRP:               rt.MRP,
		MZP:               rt.MZP,
		MRPDeductionCount: rt.MRPDeductionCount,
		OPVRate:           rt.OPVRate,
		VOSMSRate:         rt.VOSMSRate,
		IPNRate:           rt.IPNRate,
		OPVRRate:          rt.OPVRRate,
		SORate:            rt.SORate,
		OOSMSRate:         rt.OOSMSRate,
		SNRate:            rt.SNRate,
	}
}

package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dkairat/Esep-api/internal/application/dto"
	"github.com/dkairat/Esep-api/internal/application/usecase"
)

// RatesHandler обслуживает администрирование таблиц ставок.
type RatesHandler struct {
	uc *usecase.RateTableUseCase
}

// NewRatesHandler собирает handler.
func NewRatesHandler(uc *usecase.RateTableUseCase) *RatesHandler {
	return &RatesHandler{uc: uc}
}

// Create godoc
// @Summary      Новая версия таблицы ставок
// @Description  Таблицы версионируются по effective_from и не редактируются задним числом.
// @Tags         rates
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRateTableRequest  true  "ставки, МРП и дата вступления"
// @Success      201   {object}  dto.RateTableResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/rates [post]
func (h *RatesHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRateTableRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "некорректное тело запроса"})
	}
	rt, err := h.uc.Create(in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rt)
}

// List godoc
// @Summary      Все версии таблиц ставок
// @Tags         rates
// @Produce      json
// @Success      200  {array}  dto.RateTableResponse
// @Security     BearerAuth
// @Router       /api/rates [get]
func (h *RatesHandler) List(c *fiber.Ctx) error {
	tables, err := h.uc.List()
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(tables)
}

// GetEffective godoc
// @Summary      Таблица ставок, действующая на дату
// @Tags         rates
// @Produce      json
// @Param        as_of  query  string  false  "дата YYYY-MM-DD, по умолчанию сегодня"
// @Success      200  {object}  dto.RateTableResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/rates/effective [get]
func (h *RatesHandler) GetEffective(c *fiber.Ctx) error {
	asOf := time.Now()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "as_of должен быть в формате YYYY-MM-DD"})
		}
		asOf = parsed
	}
	rt, err := h.uc.GetEffective(asOf)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(rt)
}

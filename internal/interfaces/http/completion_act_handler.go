package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dkairat/Esep-api/internal/application/dto"
	"github.com/dkairat/Esep-api/internal/application/usecase"
)

// CompletionActHandler обслуживает реестр актов выполненных работ.
type CompletionActHandler struct {
	uc *usecase.CompletionActUseCase
}

// NewCompletionActHandler собирает handler.
func NewCompletionActHandler(uc *usecase.CompletionActUseCase) *CompletionActHandler {
	return &CompletionActHandler{uc: uc}
}

// Create godoc
// @Summary      Зарегистрировать акт выполненных работ
// @Tags         completion-acts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompletionActRequest  true  "contractor_name, contractor_iin, act_number, gross_amount"
// @Success      201   {object}  dto.CompletionActResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/completion-acts [post]
func (h *CompletionActHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompletionActRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "некорректное тело запроса"})
	}
	a, err := h.uc.Create(in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

// List godoc
// @Summary      Список актов
// @Tags         completion-acts
// @Produce      json
// @Param        limit   query  int  false  "размер страницы"
// @Param        offset  query  int  false  "смещение"
// @Success      200  {array}  dto.CompletionActResponse
// @Security     BearerAuth
// @Router       /api/completion-acts [get]
func (h *CompletionActHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "некорректные параметры страницы"})
	}
	acts, err := h.uc.List(page)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(acts)
}

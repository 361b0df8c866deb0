package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dkairat/Esep-api/internal/application/dto"
	"github.com/dkairat/Esep-api/internal/application/usecase"
)

// WorkerHandler обслуживает реестр работников.
type WorkerHandler struct {
	uc *usecase.WorkerUseCase
}

// NewWorkerHandler собирает handler.
func NewWorkerHandler(uc *usecase.WorkerUseCase) *WorkerHandler {
	return &WorkerHandler{uc: uc}
}

// Create godoc
// @Summary      Завести работника
// @Tags         workers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWorkerRequest  true  "full_name, iin, salary_amount"
// @Success      201   {object}  dto.WorkerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/workers [post]
func (h *WorkerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWorkerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "некорректное тело запроса"})
	}
	w, err := h.uc.Create(in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(w)
}

// List godoc
// @Summary      Список работников
// @Description  С параметрами year и month возвращает только числящихся в периоде штатных работников.
// @Tags         workers
// @Produce      json
// @Param        limit   query  int  false  "размер страницы"
// @Param        offset  query  int  false  "смещение"
// @Param        year    query  int  false  "год периода"
// @Param        month   query  int  false  "месяц периода"
// @Success      200  {array}  dto.WorkerResponse
// @Security     BearerAuth
// @Router       /api/workers [get]
func (h *WorkerHandler) List(c *fiber.Ctx) error {
	if year := c.QueryInt("year"); year > 0 {
		workers, err := h.uc.ListActive(year, c.QueryInt("month"))
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(workers)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "некорректные параметры страницы"})
	}
	workers, err := h.uc.List(page)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(workers)
}

// GetByID godoc
// @Summary      Карточка работника
// @Tags         workers
// @Produce      json
// @Param        id  path  string  true  "ID работника"
// @Success      200  {object}  dto.WorkerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/workers/{id} [get]
func (h *WorkerHandler) GetByID(c *fiber.Ctx) error {
	w, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(w)
}

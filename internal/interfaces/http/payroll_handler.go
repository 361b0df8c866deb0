package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dkairat/Esep-api/internal/application/dto"
	apppayroll "github.com/dkairat/Esep-api/internal/application/payroll"
	payrollcalc "github.com/dkairat/Esep-api/internal/domain/payroll"
)

// PayrollHandler обслуживает ведомости: генерация, чтение, жизненный цикл, сводки.
type PayrollHandler struct {
	generateUC  *apppayroll.GenerateUseCase
	lifecycleUC *apppayroll.LifecycleUseCase
	queryUC     *apppayroll.QueryUseCase
}

// NewPayrollHandler собирает handler.
func NewPayrollHandler(generateUC *apppayroll.GenerateUseCase, lifecycleUC *apppayroll.LifecycleUseCase, queryUC *apppayroll.QueryUseCase) *PayrollHandler {
	return &PayrollHandler{generateUC: generateUC, lifecycleUC: lifecycleUC, queryUC: queryUC}
}

// Generate godoc
// @Summary      Сгенерировать ведомость за период
// @Tags         payrolls
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GeneratePayrollRequest  true  "year, month"
// @Success      201   {object}  dto.PayrollResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/payrolls [post]
func (h *PayrollHandler) Generate(c *fiber.Ctx) error {
	var in dto.GeneratePayrollRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "некорректное тело запроса"})
	}
	p, err := h.generateUC.Generate(c.Context(), GetUserID(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(apppayroll.ToPayrollResponse(p, true))
}

// Get godoc
// @Summary      Ведомость с записями, выплатами и итогами
// @Tags         payrolls
// @Produce      json
// @Param        id  path  string  true  "ID ведомости"
// @Success      200  {object}  dto.PayrollResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/payrolls/{id} [get]
func (h *PayrollHandler) Get(c *fiber.Ctx) error {
	resp, err := h.queryUC.Get(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(resp)
}

// List godoc
// @Summary      Список ведомостей
// @Tags         payrolls
// @Produce      json
// @Param        limit   query  int     false  "размер страницы"
// @Param        offset  query  int     false  "смещение"
// @Param        sort    query  string  false  "status | period | workers | gross | net"
// @Param        desc    query  bool    false  "по убыванию"
// @Success      200  {array}  dto.PayrollListItem
// @Security     BearerAuth
// @Router       /api/payrolls [get]
func (h *PayrollHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "некорректные параметры страницы"})
	}
	state := payrollcalc.SortState{
		Key:  c.Query("sort"),
		Desc: c.QueryBool("desc"),
	}
	items, err := h.queryUC.List(c.Context(), page, state)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(items)
}

// Recalculate godoc
// @Summary      Пересчитать ведомость по актуальным ставкам
// @Tags         payrolls
// @Produce      json
// @Param        id  path  string  true  "ID ведомости"
// @Success      200  {object}  dto.PayrollResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/payrolls/{id}/recalculate [post]
func (h *PayrollHandler) Recalculate(c *fiber.Ctx) error {
	p, err := h.lifecycleUC.Recalculate(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(apppayroll.ToPayrollResponse(p, true))
}

// Approve godoc
// @Summary      Утвердить ведомость
// @Tags         payrolls
// @Produce      json
// @Param        id  path  string  true  "ID ведомости"
// @Success      200  {object}  dto.PayrollResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/payrolls/{id}/approve [post]
func (h *PayrollHandler) Approve(c *fiber.Ctx) error {
	p, err := h.lifecycleUC.Approve(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(apppayroll.ToPayrollResponse(p, false))
}

// MarkPaid godoc
// @Summary      Отметить ведомость оплаченной
// @Tags         payrolls
// @Produce      json
// @Param        id  path  string  true  "ID ведомости"
// @Success      200  {object}  dto.PayrollResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/payrolls/{id}/mark-paid [post]
func (h *PayrollHandler) MarkPaid(c *fiber.Ctx) error {
	p, err := h.lifecycleUC.MarkPaid(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(apppayroll.ToPayrollResponse(p, false))
}

// Delete godoc
// @Summary      Удалить черновую ведомость
// @Tags         payrolls
// @Param        id  path  string  true  "ID ведомости"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/payrolls/{id} [delete]
func (h *PayrollHandler) Delete(c *fiber.Ctx) error {
	if err := h.lifecycleUC.Delete(c.Context(), c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Summary godoc
// @Summary      Сводка ведомости по группам
// @Tags         payrolls
// @Produce      json
// @Param        id        path   string  true  "ID ведомости"
// @Param        group_by  query  string  true  "tax_category | residency | contract_type"
// @Success      200  {array}  dto.GroupSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/payrolls/{id}/summary [get]
func (h *PayrollHandler) Summary(c *fiber.Ctx) error {
	groups, err := h.queryUC.Summary(c.Context(), c.Params("id"), c.Query("group_by"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(groups)
}

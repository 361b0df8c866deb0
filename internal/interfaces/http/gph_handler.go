package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dkairat/Esep-api/internal/application/dto"
	apppayroll "github.com/dkairat/Esep-api/internal/application/payroll"
)

// GPHHandler обслуживает жизненный цикл выплат ГПХ.
type GPHHandler struct {
	uc *apppayroll.GPHUseCase
}

// NewGPHHandler собирает handler.
func NewGPHHandler(uc *apppayroll.GPHUseCase) *GPHHandler {
	return &GPHHandler{uc: uc}
}

// Approve godoc
// @Summary      Утвердить выплату ГПХ
// @Description  Флаг apply_mrp_deduction обязателен: он фиксируется в слепке расчёта и далее не меняется.
// @Tags         gph
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID выплаты"
// @Param        body  body  dto.ApproveGPHRequest  true  "apply_mrp_deduction"
// @Success      200   {object}  dto.GPHPaymentResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/gph-payments/{id}/approve [post]
func (h *GPHHandler) Approve(c *fiber.Ctx) error {
	var in dto.ApproveGPHRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "некорректное тело запроса"})
	}
	g, err := h.uc.Approve(c.Context(), c.Params("id"), in.ApplyMRPDeduction)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(apppayroll.ToGPHPaymentResponse(g))
}

// MarkPaid godoc
// @Summary      Отметить выплату ГПХ оплаченной
// @Tags         gph
// @Produce      json
// @Param        id  path  string  true  "ID выплаты"
// @Success      200  {object}  dto.GPHPaymentResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/gph-payments/{id}/mark-paid [post]
func (h *GPHHandler) MarkPaid(c *fiber.Ctx) error {
	g, err := h.uc.MarkPaid(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(apppayroll.ToGPHPaymentResponse(g))
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/papyros/backoffice/internal/application/dto"
	"github.com/papyros/backoffice/internal/application/inventory"
)

// ReceptionHandler recepciones de mercancía contra órdenes de compra.
type ReceptionHandler struct {
	uc *inventory.RegisterReceptionUseCase
}

// NewReceptionHandler construye el handler.
func NewReceptionHandler(uc *inventory.RegisterReceptionUseCase) *ReceptionHandler {
	return &ReceptionHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar recepción
// @Description  Suma stock y registra una ENTRADA por línea con motivo "RECEPCION OC #<id> - <factura>".
// @Tags         receptions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterReceptionRequest  true  "Orden, factura y líneas"
// @Success      201   {object}  dto.ReceptionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse  "PURCHASE_ORDER_NOT_FOUND"
// @Failure      409   {object}  dto.ErrorResponse  "CONFLICT: orden de compra anulada"
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/receptions [post]
func (h *ReceptionHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterReceptionRequest
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	out, err := h.uc.RegisterReception(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID GET /api/receptions/:id
func (h *ReceptionHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.GetReception(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

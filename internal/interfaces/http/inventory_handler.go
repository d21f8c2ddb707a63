package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/papyros/backoffice/internal/application/dto"
	"github.com/papyros/backoffice/internal/application/inventory"
)

// InventoryHandler ajustes manuales y consulta del kardex.
type InventoryHandler struct {
	adjust *inventory.AdjustStockUseCase
	ledger *inventory.LedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(adjust *inventory.AdjustStockUseCase, ledger *inventory.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{adjust: adjust, ledger: ledger}
}

// Adjust godoc
// @Summary      Ajuste manual de stock
// @Description  quantity > 0 registra ENTRADA, quantity < 0 registra SALIDA. El motivo queda como "AJUSTE: <reason>".
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  string                  true  "Código del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "Cantidad y motivo"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "NEGATIVE_STOCK"
// @Router       /api/products/{code}/adjustments [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	code := c.Params("code")
	stock, err := h.adjust.AdjustStock(c.UserContext(), code, in.Quantity, in.Reason)
	if err != nil {
		return err
	}
	return c.JSON(dto.AdjustStockResponse{ProductCode: code, Stock: stock})
}

type movementsQuery struct {
	dto.Period
	dto.PageRequest
}

// Movements godoc
// @Summary      Kardex del producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        code    path   string  true   "Código del producto"
// @Param        from    query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to      query  string  false  "Hasta (YYYY-MM-DD, inclusivo)"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.MovementListResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/products/{code}/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	var q movementsQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	from, to, err := q.Parse()
	if err != nil {
		return err
	}
	out, err := h.ledger.ListMovements(c.UserContext(), c.Params("code"), from, to, q.PageRequest)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// LedgerCheck compara el stock del producto con la suma con signo de su kardex.
// GET /api/products/:code/ledger-check
func (h *InventoryHandler) LedgerCheck(c *fiber.Ctx) error {
	out, err := h.ledger.Check(c.UserContext(), c.Params("code"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

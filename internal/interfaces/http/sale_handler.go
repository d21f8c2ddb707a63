package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/papyros/backoffice/internal/application/dto"
	"github.com/papyros/backoffice/internal/application/inventory"
	"github.com/papyros/backoffice/internal/application/receipt"
	"github.com/papyros/backoffice/internal/application/usecase"
)

// SaleHandler ventas, comprobante PDF y apoyo al punto de venta.
type SaleHandler struct {
	sales    *inventory.RegisterSaleUseCase
	receipts *receipt.UseCase
	products *usecase.ProductUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(sales *inventory.RegisterSaleUseCase, receipts *receipt.UseCase, products *usecase.ProductUseCase) *SaleHandler {
	return &SaleHandler{sales: sales, receipts: receipts, products: products}
}

// Register godoc
// @Summary      Registrar venta
// @Description  Descuenta stock y registra una SALIDA por línea con motivo "VENTA #<id>". Todo o nada.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterSaleRequest  true  "Líneas y método de pago"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK"
// @Failure      422   {object}  dto.ErrorResponse  "PRODUCT_UNAVAILABLE"
// @Router       /api/sales [post]
func (h *SaleHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterSaleRequest
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	out, err := h.sales.RegisterSale(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.sales.GetSale(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante de venta en PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la venta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	pdf, filename, err := h.receipts.DownloadSaleReceipt(c.UserContext(), id)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}

// SearchPOS busca productos activos por código o nombre (máx. 20).
// GET /api/sales/pos/search?q=
func (h *SaleHandler) SearchPOS(c *fiber.Ctx) error {
	out, err := h.products.SearchForSale(c.UserContext(), c.Query("q"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ValidateLine godoc
// @Summary      Validar línea en el punto de venta
// @Description  Vista previa con precio de catálogo y stock restante; no modifica nada.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ValidateSaleLineRequest  true  "Producto y cantidad"
// @Success      200   {object}  dto.ValidateSaleLineResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales/pos/validate-line [post]
func (h *SaleHandler) ValidateLine(c *fiber.Ctx) error {
	var in dto.ValidateSaleLineRequest
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	out, err := h.sales.ValidateLine(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

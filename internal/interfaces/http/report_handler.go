package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/papyros/backoffice/internal/application/dto"
	"github.com/papyros/backoffice/internal/application/usecase"
)

// ReportHandler reportes de ventas y catálogo (solo lectura).
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// TopProducts godoc
// @Summary      Productos más vendidos
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from   query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to     query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        limit  query  int     false  "Top N"  default(10)
// @Success      200    {array}   dto.TopProductDTO
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/reports/top-products [get]
func (h *ReportHandler) TopProducts(c *fiber.Ctx) error {
	var req dto.TopProductsRequest
	if err := bindQuery(c, &req); err != nil {
		return err
	}
	out, err := h.uc.TopProducts(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Productos con stock bajo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockDTO
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// MonthlyRevenue godoc
// @Summary      Ingresos por mes
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        year  query  int  false  "Año (por defecto el actual)"
// @Success      200   {object}  dto.MonthlyRevenueResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/monthly-revenue [get]
func (h *ReportHandler) MonthlyRevenue(c *fiber.Ctx) error {
	year := c.QueryInt("year", time.Now().Year())
	out, err := h.uc.MonthlyRevenue(c.UserContext(), year)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

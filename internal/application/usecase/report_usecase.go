package usecase

import (
	"context"

	"github.com/papyros/backoffice/internal/application/dto"
	"github.com/papyros/backoffice/internal/domain"
	"github.com/papyros/backoffice/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const (
	defaultTopProducts = 10
	maxTopProducts     = 100
)

// ReportUseCase reportes de solo lectura sobre ventas y catálogo.
type ReportUseCase struct {
	repo repository.ReportRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{repo: repo}
}

// TopProducts productos más vendidos (por cantidad) en ventas confirmadas del período.
// Sin fechas considera todo el historial; limit <= 0 usa 10.
func (uc *ReportUseCase) TopProducts(ctx context.Context, req dto.TopProductsRequest) ([]dto.TopProductDTO, error) {
	from, to, err := req.Parse()
	if err != nil {
		return nil, err
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultTopProducts
	}
	if limit > maxTopProducts {
		limit = maxTopProducts
	}
	rows, err := uc.repo.TopProducts(ctx, from, to, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopProductDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopProductDTO{
			ProductCode:  r.ProductCode,
			ProductName:  r.ProductName,
			QuantitySold: r.QuantitySold,
			Revenue:      r.Revenue,
		})
	}
	return out, nil
}

// LowStock productos activos en o bajo el stock mínimo.
func (uc *ReportUseCase) LowStock(ctx context.Context) ([]dto.LowStockDTO, error) {
	rows, err := uc.repo.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.LowStockDTO{
			ProductCode: r.ProductCode,
			ProductName: r.ProductName,
			Stock:       r.Stock,
			MinStock:    r.MinStock,
			Missing:     r.MinStock - r.Stock,
		})
	}
	return out, nil
}

// MonthlyRevenue ingresos por mes del año; siempre devuelve los 12 meses.
func (uc *ReportUseCase) MonthlyRevenue(ctx context.Context, year int) (*dto.MonthlyRevenueResponse, error) {
	if year < 2000 || year > 9999 {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.repo.MonthlyRevenue(ctx, year)
	if err != nil {
		return nil, err
	}
	byMonth := make(map[int]decimal.Decimal, len(rows))
	for _, r := range rows {
		byMonth[r.Month] = r.Revenue
	}
	out := &dto.MonthlyRevenueResponse{Year: year, Months: make([]dto.MonthlyRevenueDTO, 0, 12), Total: decimal.Zero}
	for m := 1; m <= 12; m++ {
		rev, ok := byMonth[m]
		if !ok {
			rev = decimal.Zero
		}
		out.Months = append(out.Months, dto.MonthlyRevenueDTO{Month: m, Revenue: rev})
		out.Total = out.Total.Add(rev)
	}
	return out, nil
}

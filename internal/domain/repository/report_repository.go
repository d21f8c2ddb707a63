package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TopProductRow resultado crudo del ranking de productos vendidos.
type TopProductRow struct {
	ProductCode  string
	ProductName  string
	QuantitySold int
	Revenue      decimal.Decimal
}

// LowStockRow producto activo con stock en o bajo el mínimo.
type LowStockRow struct {
	ProductCode string
	ProductName string
	Stock       int
	MinStock    int
}

// MonthlyRevenueRow ingresos de ventas confirmadas agrupados por mes.
type MonthlyRevenueRow struct {
	Month   int
	Revenue decimal.Decimal
}

// ReportRepository consultas de solo lectura para reportes. No modifica datos.
type ReportRepository interface {
	// TopProducts considera solo ventas CONFIRMADA; from/to opcionales.
	TopProducts(ctx context.Context, from, to *time.Time, limit int) ([]TopProductRow, error)
	LowStock(ctx context.Context) ([]LowStockRow, error)
	MonthlyRevenue(ctx context.Context, year int) ([]MonthlyRevenueRow, error)
}

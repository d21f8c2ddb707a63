package dto

import "github.com/shopspring/decimal"

// TopProductDTO producto más vendido en el período.
type TopProductDTO struct {
	ProductCode  string          `json:"product_code"`
	ProductName  string          `json:"product_name"`
	QuantitySold int             `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// LowStockDTO producto con stock bajo.
type LowStockDTO struct {
	ProductCode string `json:"product_code"`
	ProductName string `json:"product_name"`
	Stock       int    `json:"stock"`
	MinStock    int    `json:"min_stock"`
	Missing     int    `json:"missing"` // MinStock - Stock (0 si está justo en el mínimo)
}

// MonthlyRevenueDTO ingresos de un mes.
type MonthlyRevenueDTO struct {
	Month   int             `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

// MonthlyRevenueResponse serie de 12 meses del año consultado (meses sin ventas en 0).
type MonthlyRevenueResponse struct {
	Year   int                 `json:"year"`
	Months []MonthlyRevenueDTO `json:"months"`
	Total  decimal.Decimal     `json:"total"`
}

// TopProductsRequest query del ranking; fechas opcionales en formato YYYY-MM-DD.
type TopProductsRequest struct {
	Period
	Limit int `query:"limit" validate:"min=0,max=100"`
}

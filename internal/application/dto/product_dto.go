package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. El stock inicial siempre es 0.
type CreateProductRequest struct {
	Code     string          `json:"code" validate:"required,min=1,max=50"`
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	Category string          `json:"category" validate:"required,max=100"`
	Cost     decimal.Decimal `json:"cost"`
	Price    decimal.Decimal `json:"price"`
	MinStock int             `json:"min_stock" validate:"min=0"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Stock ni código).
type UpdateProductRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category *string          `json:"category" validate:"omitempty,max=100"`
	Cost     *decimal.Decimal `json:"cost"`
	Price    *decimal.Decimal `json:"price"`
	MinStock *int             `json:"min_stock" validate:"omitempty,min=0"`
}

// ProductFilter query del listado de productos.
type ProductFilter struct {
	PageRequest
	Query    string `query:"q"`
	LowStock bool   `query:"low_stock"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Cost      decimal.Decimal `json:"cost"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	MinStock  int             `json:"min_stock"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// POSProductResponse producto activo encontrado por la búsqueda del punto de venta.
type POSProductResponse struct {
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
}

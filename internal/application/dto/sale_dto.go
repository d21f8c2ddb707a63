package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest línea solicitada; UnitPrice lo define la caja.
type SaleLineRequest struct {
	ProductCode string          `json:"product_code" validate:"required"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// RegisterSaleRequest body para POST /api/sales.
type RegisterSaleRequest struct {
	PaymentMethod string            `json:"payment_method" validate:"required,max=50"`
	Lines         []SaleLineRequest `json:"lines" validate:"dive"`
}

// SaleLineResponse línea de venta con nombre del producto.
type SaleLineResponse struct {
	ID          int64           `json:"id"`
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta registrada.
type SaleResponse struct {
	ID            int64              `json:"id"`
	CreatedAt     time.Time          `json:"created_at"`
	Total         decimal.Decimal    `json:"total"`
	Status        string             `json:"status"`
	PaymentMethod string             `json:"payment_method"`
	Lines         []SaleLineResponse `json:"lines"`
}

// ValidateSaleLineRequest body para la validación previa de una línea en el punto de venta.
type ValidateSaleLineRequest struct {
	ProductCode string `json:"product_code" validate:"required"`
	Quantity    int    `json:"quantity"`
}

// ValidateSaleLineResponse vista previa de la línea: precio de catálogo y stock restante.
type ValidateSaleLineResponse struct {
	ProductCode    string          `json:"product_code"`
	ProductName    string          `json:"product_name"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	RemainingStock int             `json:"remaining_stock"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderLineRequest línea solicitada al proveedor.
type PurchaseOrderLineRequest struct {
	ProductCode string          `json:"product_code" validate:"required"`
	Quantity    int             `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	SupplierID int64                      `json:"supplier_id" validate:"required"`
	ExpectedAt *time.Time                 `json:"expected_at"`
	Lines      []PurchaseOrderLineRequest `json:"lines" validate:"dive"`
}

// CancelPurchaseOrderRequest body para anular una orden.
type CancelPurchaseOrderRequest struct {
	Reason string `json:"reason" validate:"required,max=200"`
}

// PurchaseOrderLineResponse línea de una orden.
type PurchaseOrderLineResponse struct {
	ID          int64           `json:"id"`
	ProductCode string          `json:"product_code"`
	Quantity    int             `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// PurchaseOrderResponse salida de una orden de compra.
type PurchaseOrderResponse struct {
	ID                 int64                       `json:"id"`
	SupplierID         int64                       `json:"supplier_id"`
	Status             string                      `json:"status"`
	IssuedAt           time.Time                   `json:"issued_at"`
	ExpectedAt         *time.Time                  `json:"expected_at,omitempty"`
	Total              decimal.Decimal             `json:"total"`
	CancellationReason string                      `json:"cancellation_reason,omitempty"`
	Lines              []PurchaseOrderLineResponse `json:"lines"`
}

package dto

import "time"

// AdjustStockRequest body para POST /api/products/:code/adjustments.
// Quantity positiva suma stock, negativa resta.
type AdjustStockRequest struct {
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason" validate:"required,max=200"`
}

// AdjustStockResponse stock resultante tras el ajuste.
type AdjustStockResponse struct {
	ProductCode string `json:"product_code"`
	Stock       int    `json:"stock"`
}

// MovementResponse entrada del kardex.
type MovementResponse struct {
	ID          int64     `json:"id"`
	OperationID string    `json:"operation_id"`
	ProductCode string    `json:"product_code"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	Reason      string    `json:"reason"`
	CreatedAt   time.Time `json:"created_at"`
}

// MovementListResponse kardex paginado de un producto.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// LedgerCheckResponse conciliación entre el stock del producto y la suma del kardex.
type LedgerCheckResponse struct {
	ProductCode   string `json:"product_code"`
	Stock         int    `json:"stock"`
	LedgerBalance int    `json:"ledger_balance"`
	Consistent    bool   `json:"consistent"`
}

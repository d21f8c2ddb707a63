package dto

import "time"

// ReceptionLineRequest cantidad recibida de un producto.
type ReceptionLineRequest struct {
	ProductCode string `json:"product_code" validate:"required"`
	Quantity    int    `json:"quantity"`
}

// RegisterReceptionRequest body para POST /api/receptions.
type RegisterReceptionRequest struct {
	PurchaseOrderID int64                  `json:"purchase_order_id" validate:"required"`
	InvoiceRef      string                 `json:"invoice_ref" validate:"required,max=100"`
	Lines           []ReceptionLineRequest `json:"lines" validate:"dive"`
}

// ReceptionLineResponse línea recibida con nombre del producto.
type ReceptionLineResponse struct {
	ID          int64  `json:"id"`
	ProductCode string `json:"product_code"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// ReceptionResponse recepción registrada.
type ReceptionResponse struct {
	ID              int64                   `json:"id"`
	CreatedAt       time.Time               `json:"created_at"`
	PurchaseOrderID int64                   `json:"purchase_order_id"`
	InvoiceRef      string                  `json:"invoice_ref"`
	Lines           []ReceptionLineResponse `json:"lines"`
}

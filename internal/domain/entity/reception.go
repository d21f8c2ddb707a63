package entity

import "time"

// Reception recepción de mercancía contra una orden de compra.
type Reception struct {
	ID              int64
	CreatedAt       time.Time
	InvoiceRef      string // factura o guía del proveedor
	PurchaseOrderID int64
	Lines           []ReceptionLine
}

// ReceptionLine cantidad recibida de un producto.
type ReceptionLine struct {
	ID          int64
	ReceptionID int64
	ProductCode string
	Quantity    int
}

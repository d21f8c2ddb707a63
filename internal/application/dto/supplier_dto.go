package dto

import "time"

// CreateSupplierRequest entrada para registrar un proveedor.
type CreateSupplierRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	TaxID       string `json:"tax_id" validate:"required,max=30"`
	ContactName string `json:"contact_name" validate:"required,max=200"`
	Phone       string `json:"phone" validate:"required,max=30"`
	Email       string `json:"email" validate:"required,email"`
	Notes       string `json:"notes"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	TaxID       string    `json:"tax_id"`
	ContactName string    `json:"contact_name"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Notes       string    `json:"notes"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

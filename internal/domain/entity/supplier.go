package entity

import "time"

// Supplier proveedor de mercancía.
type Supplier struct {
	ID          int64
	Name        string
	TaxID       string // NIT
	ContactName string
	Phone       string
	Email       string
	Notes       string
	Active      bool
	CreatedAt   time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo identificado por su código.
// Stock solo cambia a través del mutador de stock; nunca se borra, se desactiva con Active.
type Product struct {
	Code      string // único e inmutable
	Name      string
	Category  string
	Cost      decimal.Decimal
	Price     decimal.Decimal // precio de venta sugerido
	Stock     int             // siempre >= 0
	MinStock  int             // umbral de stock bajo
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidatePricing verifica cost >= 0, price >= 0 y price >= cost.
func ValidatePricing(cost, price decimal.Decimal) bool {
	if cost.IsNegative() || price.IsNegative() {
		return false
	}
	return !price.LessThan(cost)
}

// IsLowStock indica si el stock está en o por debajo del mínimo.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}

package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatusConfirmed estado inicial de toda venta registrada.
const SaleStatusConfirmed = "CONFIRMADA"

// Métodos de pago habituales. La lista es abierta: cualquier otro texto se guarda tal cual.
const (
	PaymentMethodCash     = "EFECTIVO"
	PaymentMethodCard     = "TARJETA"
	PaymentMethodTransfer = "TRANSFERENCIA"
)

// MaxPaymentMethodLen largo máximo del método de pago (columna sales.payment_method).
const MaxPaymentMethodLen = 50

// NormalizePaymentMethod recorta espacios y lleva a mayúsculas los métodos habituales
// ("Efectivo" -> "EFECTIVO"). Otros métodos ("Nequi") se conservan como llegan.
func NormalizePaymentMethod(m string) string {
	m = strings.TrimSpace(m)
	for _, known := range []string{PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer} {
		if strings.EqualFold(m, known) {
			return known
		}
	}
	return m
}

// Sale cabecera de una venta. Total = suma de subtotales de las líneas.
type Sale struct {
	ID                 int64
	CreatedAt          time.Time
	Total              decimal.Decimal
	Status             string
	PaymentMethod      string
	CancellationReason *string // sin flujo de anulación en el motor
	Lines              []SaleLine
}

// SaleLine línea de venta; UnitPrice lo envía el cliente (permite sobreescribir el precio de catálogo).
type SaleLine struct {
	ID          int64
	SaleID      int64
	ProductCode string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// NewSaleLine calcula el subtotal exacto quantity × unitPrice.
func NewSaleLine(code string, quantity int, unitPrice decimal.Decimal) SaleLine {
	return SaleLine{
		ProductCode: code,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Subtotal:    unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// RecalculateTotal suma los subtotales de las líneas.
func (s *Sale) RecalculateTotal() {
	total := decimal.Zero
	for _, l := range s.Lines {
		total = total.Add(l.Subtotal)
	}
	s.Total = total
}

package entity

import (
	"fmt"
	"time"

	"github.com/papyros/backoffice/internal/domain"
	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	PurchaseOrderIssued    = "EMITIDA"
	PurchaseOrderClosed    = "CERRADA"
	PurchaseOrderCancelled = "ANULADA"
)

// Violaciones de reglas de la orden; todas cumplen errors.Is(err, domain.ErrConflict).
var (
	errPONotIssued   = fmt.Errorf("%w: la orden de compra no está en estado EMITIDA", domain.ErrConflict)
	errPONoLines     = fmt.Errorf("%w: no se puede cerrar una orden de compra sin líneas", domain.ErrConflict)
	errPOIncomplete  = fmt.Errorf("%w: la orden de compra no está completa", domain.ErrConflict)
	errPOClosedFinal = fmt.Errorf("%w: no se puede anular una orden de compra cerrada", domain.ErrConflict)
)

// PurchaseOrder orden de compra emitida a un proveedor.
type PurchaseOrder struct {
	ID                 int64
	SupplierID         int64
	Status             string
	IssuedAt           time.Time
	ExpectedAt         *time.Time
	Total              decimal.Decimal
	CancellationReason string
	Lines              []PurchaseOrderLine
}

// PurchaseOrderLine cantidad solicitada de un producto a un costo unitario.
type PurchaseOrderLine struct {
	ID              int64
	PurchaseOrderID int64
	ProductCode     string
	Quantity        int
	UnitCost        decimal.Decimal
	Subtotal        decimal.Decimal
}

// Emit valida el estado y recalcula el total.
func (po *PurchaseOrder) Emit() error {
	if po.Status != PurchaseOrderIssued {
		return errPONotIssued
	}
	po.RecalculateTotal()
	return nil
}

// CloseIfComplete cierra una orden EMITIDA si todas sus líneas piden cantidad > 0.
func (po *PurchaseOrder) CloseIfComplete() error {
	if po.Status != PurchaseOrderIssued {
		return errPONotIssued
	}
	if len(po.Lines) == 0 {
		return errPONoLines
	}
	for _, l := range po.Lines {
		if l.Quantity <= 0 {
			return errPOIncomplete
		}
	}
	po.Status = PurchaseOrderClosed
	return nil
}

// Cancel anula la orden; una orden cerrada no se puede anular.
func (po *PurchaseOrder) Cancel(reason string) error {
	if po.Status == PurchaseOrderClosed {
		return errPOClosedFinal
	}
	po.Status = PurchaseOrderCancelled
	po.CancellationReason = reason
	return nil
}

// RecalculateTotal suma los subtotales (quantity × unitCost) de las líneas.
func (po *PurchaseOrder) RecalculateTotal() {
	total := decimal.Zero
	for i := range po.Lines {
		l := &po.Lines[i]
		l.Subtotal = l.UnitCost.Mul(decimal.NewFromInt(int64(l.Quantity)))
		total = total.Add(l.Subtotal)
	}
	po.Total = total
}

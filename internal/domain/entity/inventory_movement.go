package entity

import "time"

// Tipos de movimiento del kardex.
const (
	MovementTypeEntrada = "ENTRADA" // entrada (recepción o ajuste positivo)
	MovementTypeSalida  = "SALIDA"  // salida (venta o ajuste negativo)
	MovementTypeAjuste  = "AJUSTE"  // reservado: el motor registra los ajustes como ENTRADA/SALIDA
)

// InventoryMovement es una entrada inmutable del kardex (append-only).
// Quantity siempre es positiva; el signo lo da Type.
type InventoryMovement struct {
	ID          int64
	OperationID string // agrupa las entradas de una misma operación (venta, recepción, ajuste)
	ProductCode string
	Type        string
	Quantity    int
	Reason      string
	CreatedAt   time.Time
}

// SignedQuantity devuelve la cantidad con signo según el tipo (AJUSTE no aporta).
func (m *InventoryMovement) SignedQuantity() int {
	switch m.Type {
	case MovementTypeEntrada:
		return m.Quantity
	case MovementTypeSalida:
		return -m.Quantity
	}
	return 0
}

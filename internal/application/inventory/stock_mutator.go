package inventory

import (
	"context"
	"time"

	"github.com/papyros/backoffice/internal/domain"
	"github.com/papyros/backoffice/internal/domain/entity"
)

// StockMutator es el único punto que escribe Product.Stock. Cada cambio de stock
// deja exactamente una entrada en el kardex.
type StockMutator struct {
	now func() time.Time
}

// NewStockMutator construye el mutador con el reloj del sistema.
func NewStockMutator() *StockMutator {
	return &StockMutator{now: time.Now}
}

// ApplyDelta aplica delta al stock del producto y registra el movimiento.
// repos debe estar atado a una transacción abierta y product debe haberse leído con bloqueo
// de fila (LockByCodes) en esa misma transacción. Devuelve el nuevo stock.
func (m *StockMutator) ApplyDelta(
	ctx context.Context,
	repos TxRepos,
	product *entity.Product,
	delta int,
	kind, reason, operationID string,
) (int, error) {
	if delta == 0 {
		return product.Stock, domain.ErrZeroAdjustment
	}
	switch kind {
	case entity.MovementTypeEntrada:
		if delta < 0 {
			return product.Stock, domain.ErrInvalidInput
		}
	case entity.MovementTypeSalida:
		if delta > 0 {
			return product.Stock, domain.ErrInvalidInput
		}
	default:
		// AJUSTE está reservado; los ajustes se registran como ENTRADA o SALIDA.
		return product.Stock, domain.ErrInvalidInput
	}

	newStock := product.Stock + delta
	if newStock < 0 {
		return product.Stock, &domain.NegativeStockError{Code: product.Code, Current: product.Stock, Delta: delta}
	}
	if err := repos.Products.UpdateStock(ctx, product.Code, newStock); err != nil {
		return product.Stock, err
	}

	quantity := delta
	if quantity < 0 {
		quantity = -quantity
	}
	mov := &entity.InventoryMovement{
		OperationID: operationID,
		ProductCode: product.Code,
		Type:        kind,
		Quantity:    quantity,
		Reason:      reason,
		CreatedAt:   m.now(),
	}
	if err := repos.Movements.Append(ctx, mov); err != nil {
		return product.Stock, err
	}
	product.Stock = newStock
	return newStock, nil
}

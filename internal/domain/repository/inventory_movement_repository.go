package repository

import (
	"context"
	"time"

	"github.com/papyros/backoffice/internal/domain/entity"
)

// InventoryMovementRepository define el puerto del kardex. Es append-only: no hay Update ni Delete.
type InventoryMovementRepository interface {
	// Append inserta el movimiento y asigna su ID. Rechaza Quantity <= 0.
	Append(ctx context.Context, movement *entity.InventoryMovement) error
	ListByProduct(ctx context.Context, code string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error)
	// Balance devuelve la suma con signo de los movimientos del producto.
	Balance(ctx context.Context, code string) (int, error)
}

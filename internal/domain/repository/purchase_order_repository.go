package repository

import (
	"context"

	"github.com/papyros/backoffice/internal/domain/entity"
)

// PurchaseOrderRepository puerto de persistencia para órdenes de compra.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id int64) (*entity.PurchaseOrder, error)
	// UpdateStatus persiste Status y CancellationReason.
	UpdateStatus(ctx context.Context, order *entity.PurchaseOrder) error
}

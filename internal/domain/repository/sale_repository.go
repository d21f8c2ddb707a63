package repository

import (
	"context"

	"github.com/papyros/backoffice/internal/domain/entity"
)

// SaleRepository persiste ventas con sus líneas.
type SaleRepository interface {
	// Create inserta cabecera y líneas; asigna IDs a la venta y a cada línea.
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
}

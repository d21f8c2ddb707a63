package repository

import (
	"context"

	"github.com/papyros/backoffice/internal/domain/entity"
)

// ProductFilter filtros del listado de catálogo (solo productos activos).
type ProductFilter struct {
	Query    string // coincide con código, nombre o categoría
	LowStock bool   // stock <= stock mínimo
	Limit    int
	Offset   int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// UpdateStock solo debe llamarlo el mutador de stock dentro de una transacción.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// Update actualiza los datos de catálogo; no modifica Stock ni Active.
	Update(ctx context.Context, product *entity.Product) error
	SetActive(ctx context.Context, code string, active bool) error
	// FindActiveByCodes consulta en lote y devuelve solo los productos activos, indexados por código.
	FindActiveByCodes(ctx context.Context, codes []string) (map[string]*entity.Product, error)
	// LockByCodes lee y bloquea las filas (SELECT ... FOR UPDATE) en orden de código.
	// Los códigos inexistentes no aparecen en el mapa.
	LockByCodes(ctx context.Context, codes []string) (map[string]*entity.Product, error)
	UpdateStock(ctx context.Context, code string, stock int) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
}

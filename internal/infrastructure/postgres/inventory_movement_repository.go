package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/papyros/backoffice/internal/domain"
	"github.com/papyros/backoffice/internal/domain/entity"
	"github.com/papyros/backoffice/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo kardex sobre PostgreSQL. Solo INSERT y lecturas.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Append inserta el movimiento y asigna su ID.
func (r *InventoryMovementRepo) Append(ctx context.Context, m *entity.InventoryMovement) error {
	if m.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	query := `
		INSERT INTO inventory_movements (operation_id, product_code, type, quantity, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, m.OperationID, m.ProductCode, m.Type, m.Quantity, m.Reason, m.CreatedAt).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("insert inventory movement: %w", err)
	}
	return nil
}

// ListByProduct historial del producto, más reciente primero.
func (r *InventoryMovementRepo) ListByProduct(ctx context.Context, code string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT id, operation_id, product_code, type, quantity, reason, created_at
		FROM inventory_movements
		WHERE product_code = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)
		ORDER BY id DESC
		LIMIT NULLIF($4, 0) OFFSET $5`
	rows, err := r.q.Query(ctx, query, code, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(&m.ID, &m.OperationID, &m.ProductCode, &m.Type, &m.Quantity, &m.Reason, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Balance suma con signo: ENTRADA suma, SALIDA resta.
func (r *InventoryMovementRepo) Balance(ctx context.Context, code string) (int, error) {
	query := `
		SELECT COALESCE(SUM(CASE type WHEN 'ENTRADA' THEN quantity WHEN 'SALIDA' THEN -quantity ELSE 0 END), 0)
		FROM inventory_movements WHERE product_code = $1`
	var balance int
	if err := r.q.QueryRow(ctx, query, code).Scan(&balance); err != nil {
		return 0, fmt.Errorf("ledger balance: %w", err)
	}
	return balance, nil
}

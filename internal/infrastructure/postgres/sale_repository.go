package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/papyros/backoffice/internal/domain"
	"github.com/papyros/backoffice/internal/domain/entity"
	"github.com/papyros/backoffice/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas (cabecera + líneas) sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta cabecera y líneas. Debe ejecutarse dentro de una transacción.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO sales (created_at, total, status, payment_method, cancellation_reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		s.CreatedAt, s.Total, s.Status, s.PaymentMethod, s.CancellationReason,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	for i := range s.Lines {
		l := &s.Lines[i]
		l.SaleID = s.ID
		err := r.q.QueryRow(ctx, `
			INSERT INTO sale_lines (sale_id, product_code, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			l.SaleID, l.ProductCode, l.Quantity, l.UnitPrice, l.Subtotal,
		).Scan(&l.ID)
		if err != nil {
			return fmt.Errorf("insert sale line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la venta con sus líneas.
func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(ctx, `
		SELECT id, created_at, total, status, payment_method, cancellation_reason
		FROM sales WHERE id = $1`, id,
	).Scan(&s.ID, &s.CreatedAt, &s.Total, &s.Status, &s.PaymentMethod, &s.CancellationReason)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, product_code, quantity, unit_price, subtotal
		FROM sale_lines WHERE sale_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("get sale lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductCode, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		s.Lines = append(s.Lines, l)
	}
	return &s, rows.Err()
}

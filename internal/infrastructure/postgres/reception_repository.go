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

var _ repository.ReceptionRepository = (*ReceptionRepo)(nil)

// ReceptionRepo recepciones de mercancía sobre PostgreSQL.
type ReceptionRepo struct {
	q Querier
}

// NewReceptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReceptionRepository(q Querier) *ReceptionRepo {
	return &ReceptionRepo{q: q}
}

// Create inserta la recepción y sus líneas.
func (r *ReceptionRepo) Create(ctx context.Context, rec *entity.Reception) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO receptions (created_at, invoice_ref, purchase_order_id)
		VALUES ($1, $2, $3)
		RETURNING id`,
		rec.CreatedAt, rec.InvoiceRef, rec.PurchaseOrderID,
	).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("insert reception: %w", err)
	}
	for i := range rec.Lines {
		l := &rec.Lines[i]
		l.ReceptionID = rec.ID
		if err := r.q.QueryRow(ctx, `
			INSERT INTO reception_lines (reception_id, product_code, quantity)
			VALUES ($1, $2, $3)
			RETURNING id`,
			l.ReceptionID, l.ProductCode, l.Quantity,
		).Scan(&l.ID); err != nil {
			return fmt.Errorf("insert reception line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la recepción con sus líneas.
func (r *ReceptionRepo) GetByID(ctx context.Context, id int64) (*entity.Reception, error) {
	var rec entity.Reception
	err := r.q.QueryRow(ctx, `
		SELECT id, created_at, invoice_ref, purchase_order_id
		FROM receptions WHERE id = $1`, id,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.InvoiceRef, &rec.PurchaseOrderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get reception: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, reception_id, product_code, quantity
		FROM reception_lines WHERE reception_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("get reception lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.ReceptionLine
		if err := rows.Scan(&l.ID, &l.ReceptionID, &l.ProductCode, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan reception line: %w", err)
		}
		rec.Lines = append(rec.Lines, l)
	}
	return &rec, rows.Err()
}

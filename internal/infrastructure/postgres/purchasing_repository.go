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

var (
	_ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)
	_ repository.SupplierRepository      = (*SupplierRepo)(nil)
)

// PurchaseOrderRepo órdenes de compra sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create inserta la orden y sus líneas.
func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO purchase_orders (supplier_id, status, issued_at, expected_at, total, cancellation_reason)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		po.SupplierID, po.Status, po.IssuedAt, po.ExpectedAt, po.Total, po.CancellationReason,
	).Scan(&po.ID)
	if err != nil {
		return fmt.Errorf("insert purchase order: %w", err)
	}
	for i := range po.Lines {
		l := &po.Lines[i]
		l.PurchaseOrderID = po.ID
		if err := r.q.QueryRow(ctx, `
			INSERT INTO purchase_order_lines (purchase_order_id, product_code, quantity, unit_cost, subtotal)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			l.PurchaseOrderID, l.ProductCode, l.Quantity, l.UnitCost, l.Subtotal,
		).Scan(&l.ID); err != nil {
			return fmt.Errorf("insert purchase order line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la orden con sus líneas.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id int64) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := r.q.QueryRow(ctx, `
		SELECT id, supplier_id, status, issued_at, expected_at, total, cancellation_reason
		FROM purchase_orders WHERE id = $1`, id,
	).Scan(&po.ID, &po.SupplierID, &po.Status, &po.IssuedAt, &po.ExpectedAt, &po.Total, &po.CancellationReason)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, purchase_order_id, product_code, quantity, unit_cost, subtotal
		FROM purchase_order_lines WHERE purchase_order_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("get purchase order lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.PurchaseOrderLine
		if err := rows.Scan(&l.ID, &l.PurchaseOrderID, &l.ProductCode, &l.Quantity, &l.UnitCost, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan purchase order line: %w", err)
		}
		po.Lines = append(po.Lines, l)
	}
	return &po, rows.Err()
}

// UpdateStatus persiste estado y motivo de anulación.
func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, po *entity.PurchaseOrder) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE purchase_orders SET status = $2, cancellation_reason = $3 WHERE id = $1`,
		po.ID, po.Status, po.CancellationReason,
	)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SupplierRepo proveedores sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierColumns = `id, name, tax_id, contact_name, phone, email, notes, active, created_at`

func scanSupplier(row pgx.Row) (*entity.Supplier, error) {
	var s entity.Supplier
	err := row.Scan(&s.ID, &s.Name, &s.TaxID, &s.ContactName, &s.Phone, &s.Email, &s.Notes, &s.Active, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// Create inserta el proveedor; nombre o NIT repetidos devuelven ErrDuplicate.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO suppliers (name, tax_id, contact_name, phone, email, notes, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		s.Name, s.TaxID, s.ContactName, s.Phone, s.Email, s.Notes, s.Active, s.CreatedAt,
	).Scan(&s.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, id int64) (*entity.Supplier, error) {
	return scanSupplier(r.q.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id))
}

func (r *SupplierRepo) GetByTaxID(ctx context.Context, taxID string) (*entity.Supplier, error) {
	return scanSupplier(r.q.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE tax_id = $1`, taxID))
}

func (r *SupplierRepo) GetByName(ctx context.Context, name string) (*entity.Supplier, error) {
	return scanSupplier(r.q.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE lower(name) = lower($1)`, name))
}

// ListActive proveedores activos ordenados por nombre.
func (r *SupplierRepo) ListActive(ctx context.Context) ([]*entity.Supplier, error) {
	rows, err := r.q.Query(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE active ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

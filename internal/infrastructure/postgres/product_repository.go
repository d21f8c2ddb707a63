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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `code, name, category, cost, price, stock, min_stock, active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.Code, &p.Name, &p.Category, &p.Cost, &p.Price, &p.Stock, &p.MinStock, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		product.Code, product.Name, product.Category, product.Cost, product.Price,
		product.Stock, product.MinStock, product.Active, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByCode obtiene un producto por código.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE code = $1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza datos de catálogo. No modifica stock ni active.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, category = $3, cost = $4, price = $5, min_stock = $6, updated_at = now()
		WHERE code = $1`
	cmd, err := r.q.Exec(ctx, query,
		product.Code, product.Name, product.Category, product.Cost, product.Price, product.MinStock,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetActive activa o desactiva el producto.
func (r *ProductRepo) SetActive(ctx context.Context, code string, active bool) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET active = $2, updated_at = now() WHERE code = $1`, code, active)
	if err != nil {
		return fmt.Errorf("set product active: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FindActiveByCodes consulta en lote (code = ANY($1)) solo productos activos.
func (r *ProductRepo) FindActiveByCodes(ctx context.Context, codes []string) (map[string]*entity.Product, error) {
	return r.byCodes(ctx, `SELECT `+productColumns+` FROM products WHERE code = ANY($1) AND active`, codes)
}

// LockByCodes lee y bloquea las filas (SELECT FOR UPDATE) en orden de código para evitar interbloqueos.
func (r *ProductRepo) LockByCodes(ctx context.Context, codes []string) (map[string]*entity.Product, error) {
	return r.byCodes(ctx, `SELECT `+productColumns+` FROM products WHERE code = ANY($1) ORDER BY code FOR UPDATE`, codes)
}

func (r *ProductRepo) byCodes(ctx context.Context, query string, codes []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(codes))
	if len(codes) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, query, codes)
	if err != nil {
		return nil, fmt.Errorf("query products by codes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out[p.Code] = p
	}
	return out, rows.Err()
}

// UpdateStock escribe el stock. El CHECK (stock >= 0) de la tabla se traduce a ErrNegativeStock.
func (r *ProductRepo) UpdateStock(ctx context.Context, code string, stock int) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET stock = $2, updated_at = now() WHERE code = $1`, code, stock)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrNegativeStock
		}
		return fmt.Errorf("update product stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos activos con búsqueda por código/nombre/categoría y filtro de stock bajo.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE active
		  AND ($1 = '' OR code ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%' OR category ILIKE '%' || $1 || '%')
		  AND (NOT $2 OR stock <= min_stock)
		ORDER BY name, code
		LIMIT NULLIF($3, 0) OFFSET $4`
	rows, err := r.q.Query(ctx, query, f.Query, f.LowStock, f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

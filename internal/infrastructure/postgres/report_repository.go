package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/papyros/backoffice/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de agregación de solo lectura.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// TopProducts ranking por unidades vendidas en ventas CONFIRMADA.
func (r *ReportRepo) TopProducts(ctx context.Context, from, to *time.Time, limit int) ([]repository.TopProductRow, error) {
	query := `
		SELECT l.product_code, COALESCE(p.name, ''), SUM(l.quantity), SUM(l.subtotal)
		FROM sale_lines l
		JOIN sales s ON s.id = l.sale_id
		LEFT JOIN products p ON p.code = l.product_code
		WHERE s.status = 'CONFIRMADA'
		  AND ($1::timestamptz IS NULL OR s.created_at >= $1)
		  AND ($2::timestamptz IS NULL OR s.created_at <= $2)
		GROUP BY l.product_code, p.name
		ORDER BY SUM(l.quantity) DESC, l.product_code
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()
	var out []repository.TopProductRow
	for rows.Next() {
		var row repository.TopProductRow
		if err := rows.Scan(&row.ProductCode, &row.ProductName, &row.QuantitySold, &row.Revenue); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// LowStock productos activos con stock <= stock mínimo.
func (r *ReportRepo) LowStock(ctx context.Context) ([]repository.LowStockRow, error) {
	rows, err := r.q.Query(ctx, `
		SELECT code, name, stock, min_stock
		FROM products
		WHERE active AND stock <= min_stock
		ORDER BY stock, code`)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	defer rows.Close()
	var out []repository.LowStockRow
	for rows.Next() {
		var row repository.LowStockRow
		if err := rows.Scan(&row.ProductCode, &row.ProductName, &row.Stock, &row.MinStock); err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// MonthlyRevenue ingresos de ventas CONFIRMADA agrupados por mes del año.
func (r *ReportRepo) MonthlyRevenue(ctx context.Context, year int) ([]repository.MonthlyRevenueRow, error) {
	rows, err := r.q.Query(ctx, `
		SELECT EXTRACT(MONTH FROM created_at)::int AS month, SUM(total)
		FROM sales
		WHERE status = 'CONFIRMADA' AND EXTRACT(YEAR FROM created_at)::int = $1
		GROUP BY month
		ORDER BY month`, year)
	if err != nil {
		return nil, fmt.Errorf("monthly revenue: %w", err)
	}
	defer rows.Close()
	var out []repository.MonthlyRevenueRow
	for rows.Next() {
		var row repository.MonthlyRevenueRow
		if err := rows.Scan(&row.Month, &row.Revenue); err != nil {
			return nil, fmt.Errorf("scan monthly revenue: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

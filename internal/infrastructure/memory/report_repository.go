package memory

import (
	"context"
	"sort"
	"time"

	"github.com/papyros/backoffice/internal/domain/entity"
	"github.com/papyros/backoffice/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ReportRepository = (*ReportRepository)(nil)

// ReportRepository agregaciones de reportes calculadas sobre el estado confirmado.
type ReportRepository struct {
	sc scope
}

func (r *ReportRepository) TopProducts(_ context.Context, from, to *time.Time, limit int) ([]repository.TopProductRow, error) {
	acc := make(map[string]*repository.TopProductRow)
	err := r.sc.read(func(d *data) error {
		for _, s := range d.sales {
			if s.Status != entity.SaleStatusConfirmed {
				continue
			}
			if from != nil && s.CreatedAt.Before(*from) {
				continue
			}
			if to != nil && s.CreatedAt.After(*to) {
				continue
			}
			for _, l := range s.Lines {
				row, ok := acc[l.ProductCode]
				if !ok {
					row = &repository.TopProductRow{ProductCode: l.ProductCode, Revenue: decimal.Zero}
					if p, ok := d.products[l.ProductCode]; ok {
						row.ProductName = p.Name
					}
					acc[l.ProductCode] = row
				}
				row.QuantitySold += l.Quantity
				row.Revenue = row.Revenue.Add(l.Subtotal)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]repository.TopProductRow, 0, len(acc))
	for _, row := range acc {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].QuantitySold != out[j].QuantitySold {
			return out[i].QuantitySold > out[j].QuantitySold
		}
		return out[i].ProductCode < out[j].ProductCode
	})
	return paginate(out, limit, 0), nil
}

func (r *ReportRepository) LowStock(_ context.Context) ([]repository.LowStockRow, error) {
	var out []repository.LowStockRow
	err := r.sc.read(func(d *data) error {
		for _, p := range d.products {
			if p.Active && p.IsLowStock() {
				out = append(out, repository.LowStockRow{
					ProductCode: p.Code,
					ProductName: p.Name,
					Stock:       p.Stock,
					MinStock:    p.MinStock,
				})
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Stock != out[j].Stock {
			return out[i].Stock < out[j].Stock
		}
		return out[i].ProductCode < out[j].ProductCode
	})
	return out, err
}

func (r *ReportRepository) MonthlyRevenue(_ context.Context, year int) ([]repository.MonthlyRevenueRow, error) {
	byMonth := make(map[int]decimal.Decimal)
	err := r.sc.read(func(d *data) error {
		for _, s := range d.sales {
			if s.Status != entity.SaleStatusConfirmed || s.CreatedAt.Year() != year {
				continue
			}
			m := int(s.CreatedAt.Month())
			byMonth[m] = byMonth[m].Add(s.Total)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]repository.MonthlyRevenueRow, 0, len(byMonth))
	for m, rev := range byMonth {
		out = append(out, repository.MonthlyRevenueRow{Month: m, Revenue: rev})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

package memory

import (
	"context"
	"sort"
	"time"

	"github.com/papyros/backoffice/internal/domain"
	"github.com/papyros/backoffice/internal/domain/entity"
	"github.com/papyros/backoffice/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepository)(nil)

// ProductRepository implementación en memoria de repository.ProductRepository.
type ProductRepository struct {
	sc scope
}

func (r *ProductRepository) Create(_ context.Context, p *entity.Product) error {
	return r.sc.write(func(d *data) error {
		if _, ok := d.products[p.Code]; ok {
			return domain.ErrDuplicate
		}
		d.products[p.Code] = *p
		return nil
	})
}

func (r *ProductRepository) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	var out *entity.Product
	err := r.sc.read(func(d *data) error {
		p, ok := d.products[code]
		if !ok {
			return domain.ErrNotFound
		}
		out = &p
		return nil
	})
	return out, err
}

func (r *ProductRepository) Update(_ context.Context, p *entity.Product) error {
	return r.sc.write(func(d *data) error {
		cur, ok := d.products[p.Code]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Name = p.Name
		cur.Category = p.Category
		cur.Cost = p.Cost
		cur.Price = p.Price
		cur.MinStock = p.MinStock
		cur.UpdatedAt = time.Now()
		d.products[p.Code] = cur
		return nil
	})
}

func (r *ProductRepository) SetActive(_ context.Context, code string, active bool) error {
	return r.sc.write(func(d *data) error {
		cur, ok := d.products[code]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Active = active
		cur.UpdatedAt = time.Now()
		d.products[code] = cur
		return nil
	})
}

func (r *ProductRepository) FindActiveByCodes(_ context.Context, codes []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(codes))
	err := r.sc.read(func(d *data) error {
		for _, c := range codes {
			if p, ok := d.products[c]; ok && p.Active {
				out[c] = &p
			}
		}
		return nil
	})
	return out, err
}

// LockByCodes en memoria no bloquea por fila: la transacción completa ya está serializada.
func (r *ProductRepository) LockByCodes(_ context.Context, codes []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(codes))
	err := r.sc.read(func(d *data) error {
		for _, c := range codes {
			if p, ok := d.products[c]; ok {
				out[c] = &p
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepository) UpdateStock(_ context.Context, code string, stock int) error {
	return r.sc.write(func(d *data) error {
		cur, ok := d.products[code]
		if !ok {
			return domain.ErrNotFound
		}
		if stock < 0 {
			return domain.ErrNegativeStock
		}
		cur.Stock = stock
		cur.UpdatedAt = time.Now()
		d.products[code] = cur
		return nil
	})
}

func (r *ProductRepository) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.sc.read(func(d *data) error {
		q := fold(f.Query)
		for _, p := range d.products {
			if !p.Active {
				continue
			}
			if f.LowStock && !p.IsLowStock() {
				continue
			}
			if q != "" && !containsFolded(p.Code, q) && !containsFolded(p.Name, q) && !containsFolded(p.Category, q) {
				continue
			}
			p := p
			out = append(out, &p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Code < out[j].Code
	})
	return paginate(out, f.Limit, f.Offset), nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/papyros/backoffice/internal/domain"
	"github.com/papyros/backoffice/internal/domain/entity"
	"github.com/papyros/backoffice/internal/domain/repository"
)

var (
	_ repository.PurchaseOrderRepository = (*PurchaseOrderRepository)(nil)
	_ repository.SupplierRepository      = (*SupplierRepository)(nil)
)

// PurchaseOrderRepository órdenes de compra en memoria.
type PurchaseOrderRepository struct {
	sc scope
}

func (r *PurchaseOrderRepository) Create(_ context.Context, po *entity.PurchaseOrder) error {
	return r.sc.write(func(d *data) error {
		d.seq.order++
		po.ID = d.seq.order
		for i := range po.Lines {
			d.seq.orderLine++
			po.Lines[i].ID = d.seq.orderLine
			po.Lines[i].PurchaseOrderID = po.ID
		}
		stored := *po
		stored.Lines = append([]entity.PurchaseOrderLine(nil), po.Lines...)
		d.orders[po.ID] = stored
		return nil
	})
}

func (r *PurchaseOrderRepository) GetByID(_ context.Context, id int64) (*entity.PurchaseOrder, error) {
	var out *entity.PurchaseOrder
	err := r.sc.read(func(d *data) error {
		po, ok := d.orders[id]
		if !ok {
			return domain.ErrNotFound
		}
		po.Lines = append([]entity.PurchaseOrderLine(nil), po.Lines...)
		out = &po
		return nil
	})
	return out, err
}

func (r *PurchaseOrderRepository) UpdateStatus(_ context.Context, po *entity.PurchaseOrder) error {
	return r.sc.write(func(d *data) error {
		cur, ok := d.orders[po.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Status = po.Status
		cur.CancellationReason = po.CancellationReason
		d.orders[po.ID] = cur
		return nil
	})
}

// SupplierRepository proveedores en memoria. Nombre y NIT son únicos.
type SupplierRepository struct {
	sc scope
}

func (r *SupplierRepository) Create(_ context.Context, s *entity.Supplier) error {
	return r.sc.write(func(d *data) error {
		for _, cur := range d.suppliers {
			if strings.EqualFold(cur.Name, s.Name) || cur.TaxID == s.TaxID {
				return domain.ErrDuplicate
			}
		}
		d.seq.supplier++
		s.ID = d.seq.supplier
		d.suppliers[s.ID] = *s
		return nil
	})
}

func (r *SupplierRepository) GetByID(_ context.Context, id int64) (*entity.Supplier, error) {
	return r.find(func(s entity.Supplier) bool { return s.ID == id })
}

func (r *SupplierRepository) GetByTaxID(_ context.Context, taxID string) (*entity.Supplier, error) {
	return r.find(func(s entity.Supplier) bool { return s.TaxID == taxID })
}

func (r *SupplierRepository) GetByName(_ context.Context, name string) (*entity.Supplier, error) {
	return r.find(func(s entity.Supplier) bool { return strings.EqualFold(s.Name, name) })
}

func (r *SupplierRepository) find(match func(entity.Supplier) bool) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.sc.read(func(d *data) error {
		for _, s := range d.suppliers {
			if match(s) {
				s := s
				out = &s
				return nil
			}
		}
		return domain.ErrNotFound
	})
	return out, err
}

func (r *SupplierRepository) ListActive(_ context.Context) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	err := r.sc.read(func(d *data) error {
		for _, s := range d.suppliers {
			if s.Active {
				s := s
				out = append(out, &s)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

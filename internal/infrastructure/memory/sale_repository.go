package memory

import (
	"context"

	"github.com/papyros/backoffice/internal/domain"
	"github.com/papyros/backoffice/internal/domain/entity"
	"github.com/papyros/backoffice/internal/domain/repository"
)

var (
	_ repository.SaleRepository      = (*SaleRepository)(nil)
	_ repository.ReceptionRepository = (*ReceptionRepository)(nil)
)

// SaleRepository ventas en memoria.
type SaleRepository struct {
	sc scope
}

func (r *SaleRepository) Create(_ context.Context, s *entity.Sale) error {
	return r.sc.write(func(d *data) error {
		d.seq.sale++
		s.ID = d.seq.sale
		for i := range s.Lines {
			d.seq.saleLine++
			s.Lines[i].ID = d.seq.saleLine
			s.Lines[i].SaleID = s.ID
		}
		stored := *s
		stored.Lines = append([]entity.SaleLine(nil), s.Lines...)
		d.sales[s.ID] = stored
		return nil
	})
}

func (r *SaleRepository) GetByID(_ context.Context, id int64) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.sc.read(func(d *data) error {
		s, ok := d.sales[id]
		if !ok {
			return domain.ErrNotFound
		}
		s.Lines = append([]entity.SaleLine(nil), s.Lines...)
		out = &s
		return nil
	})
	return out, err
}

// Count número de ventas confirmadas en el almacén.
func (r *SaleRepository) Count() int {
	var n int
	_ = r.sc.read(func(d *data) error {
		n = len(d.sales)
		return nil
	})
	return n
}

// ReceptionRepository recepciones en memoria.
type ReceptionRepository struct {
	sc scope
}

func (r *ReceptionRepository) Create(_ context.Context, rec *entity.Reception) error {
	return r.sc.write(func(d *data) error {
		d.seq.reception++
		rec.ID = d.seq.reception
		for i := range rec.Lines {
			d.seq.receptionLine++
			rec.Lines[i].ID = d.seq.receptionLine
			rec.Lines[i].ReceptionID = rec.ID
		}
		stored := *rec
		stored.Lines = append([]entity.ReceptionLine(nil), rec.Lines...)
		d.receptions[rec.ID] = stored
		return nil
	})
}

func (r *ReceptionRepository) GetByID(_ context.Context, id int64) (*entity.Reception, error) {
	var out *entity.Reception
	err := r.sc.read(func(d *data) error {
		rec, ok := d.receptions[id]
		if !ok {
			return domain.ErrNotFound
		}
		rec.Lines = append([]entity.ReceptionLine(nil), rec.Lines...)
		out = &rec
		return nil
	})
	return out, err
}

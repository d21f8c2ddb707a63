package memory

import (
	"context"
	"sort"
	"time"

	"github.com/papyros/backoffice/internal/domain"
	"github.com/papyros/backoffice/internal/domain/entity"
	"github.com/papyros/backoffice/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepository)(nil)

// InventoryMovementRepository kardex en memoria (append-only).
type InventoryMovementRepository struct {
	sc scope
}

func (r *InventoryMovementRepository) Append(_ context.Context, m *entity.InventoryMovement) error {
	if m.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	return r.sc.write(func(d *data) error {
		d.seq.movement++
		m.ID = d.seq.movement
		d.movements = append(d.movements, *m)
		return nil
	})
}

func (r *InventoryMovementRepository) ListByProduct(_ context.Context, code string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	err := r.sc.read(func(d *data) error {
		for _, m := range d.movements {
			if m.ProductCode != code {
				continue
			}
			if from != nil && m.CreatedAt.Before(*from) {
				continue
			}
			if to != nil && m.CreatedAt.After(*to) {
				continue
			}
			m := m
			out = append(out, &m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return paginate(out, limit, offset), nil
}

func (r *InventoryMovementRepository) Balance(_ context.Context, code string) (int, error) {
	var total int
	err := r.sc.read(func(d *data) error {
		for i := range d.movements {
			if d.movements[i].ProductCode == code {
				total += d.movements[i].SignedQuantity()
			}
		}
		return nil
	})
	return total, err
}

// All devuelve el kardex completo en orden de inserción.
func (r *InventoryMovementRepository) All() []entity.InventoryMovement {
	var out []entity.InventoryMovement
	_ = r.sc.read(func(d *data) error {
		out = append(out, d.movements...)
		return nil
	})
	return out
}

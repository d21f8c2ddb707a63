package repository

import (
	"context"

	"github.com/papyros/backoffice/internal/domain/entity"
)

// ReceptionRepository persiste recepciones con sus líneas.
type ReceptionRepository interface {
	Create(ctx context.Context, reception *entity.Reception) error
	GetByID(ctx context.Context, id int64) (*entity.Reception, error)
}

package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/papyros/backoffice/internal/application/dto"
	"github.com/papyros/backoffice/internal/domain"
	"github.com/papyros/backoffice/internal/domain/entity"
	"github.com/papyros/backoffice/internal/domain/repository"
)

// SupplierUseCase alta y consulta de proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create registra un proveedor activo. Nombre y NIT duplicados devuelven ErrDuplicate.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	s := &entity.Supplier{
		Name:        strings.TrimSpace(in.Name),
		TaxID:       strings.TrimSpace(in.TaxID),
		ContactName: strings.TrimSpace(in.ContactName),
		Phone:       strings.TrimSpace(in.Phone),
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		Notes:       strings.TrimSpace(in.Notes),
		Active:      true,
		CreatedAt:   time.Now(),
	}
	if s.Name == "" || s.TaxID == "" || s.ContactName == "" || s.Phone == "" || s.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.ensureUnique(ctx, s); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

func (uc *SupplierUseCase) ensureUnique(ctx context.Context, s *entity.Supplier) error {
	if _, err := uc.repo.GetByName(ctx, s.Name); err == nil {
		return domain.ErrDuplicate
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if _, err := uc.repo.GetByTaxID(ctx, s.TaxID); err == nil {
		return domain.ErrDuplicate
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}

// GetByID obtiene un proveedor.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id int64) (*dto.SupplierResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// ListActive lista proveedores activos por nombre.
func (uc *SupplierUseCase) ListActive(ctx context.Context) ([]dto.SupplierResponse, error) {
	list, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSupplierResponse(s))
	}
	return out, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		TaxID:       s.TaxID,
		ContactName: s.ContactName,
		Phone:       s.Phone,
		Email:       s.Email,
		Notes:       s.Notes,
		Active:      s.Active,
		CreatedAt:   s.CreatedAt,
	}
}

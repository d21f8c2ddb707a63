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
	"github.com/papyros/backoffice/pkg/logger"
)

// posSearchLimit máximo de resultados de la búsqueda del punto de venta.
const posSearchLimit = 20

// ProductUseCase casos de uso del catálogo. Stock solo cambia vía movimientos (inventory).
type ProductUseCase struct {
	repo repository.ProductRepository
	log  *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{repo: repo, log: log}
}

// Create crea un nuevo producto activo con stock 0.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidatePricing(in.Cost, in.Price) {
		return nil, domain.ErrInvalidPrice
	}
	if in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCode(ctx, code)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		Code:      code,
		Name:      strings.TrimSpace(in.Name),
		Category:  strings.TrimSpace(in.Category),
		Cost:      in.Cost,
		Price:     in.Price,
		Stock:     0,
		MinStock:  in.MinStock,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_code", code).Msg("producto creado")
	return toProductResponse(product), nil
}

// GetByCode obtiene un producto (activo o no); ErrNotFound si no existe.
func (uc *ProductUseCase) GetByCode(ctx context.Context, code string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza datos de catálogo. No permite modificar Stock ni el código.
func (uc *ProductUseCase) Update(ctx context.Context, code string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
	}
	if in.Cost != nil {
		product.Cost = *in.Cost
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.MinStock = *in.MinStock
	}
	if !entity.ValidatePricing(product.Cost, product.Price) {
		return nil, domain.ErrInvalidPrice
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Deactivate oculta el producto del catálogo de venta. No toca stock ni historial.
func (uc *ProductUseCase) Deactivate(ctx context.Context, code string) error {
	if err := uc.repo.SetActive(ctx, code, false); err != nil {
		return err
	}
	uc.log.Info().Str("product_code", code).Msg("producto desactivado")
	return nil
}

// Reactivate vuelve a habilitar un producto desactivado.
func (uc *ProductUseCase) Reactivate(ctx context.Context, code string) error {
	if err := uc.repo.SetActive(ctx, code, true); err != nil {
		return err
	}
	uc.log.Info().Str("product_code", code).Msg("producto reactivado")
	return nil
}

// List lista productos activos con búsqueda y filtro de stock bajo, ordenados por nombre.
func (uc *ProductUseCase) List(ctx context.Context, f dto.ProductFilter) (*dto.ProductListResponse, error) {
	f.DefaultPage()
	list, err := uc.repo.List(ctx, repository.ProductFilter{
		Query:    strings.TrimSpace(f.Query),
		LowStock: f.LowStock,
		Limit:    f.Limit,
		Offset:   f.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}, nil
}

// SearchForSale búsqueda del punto de venta: activos cuyo código, nombre o categoría coincide con q.
func (uc *ProductUseCase) SearchForSale(ctx context.Context, q string) ([]dto.POSProductResponse, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []dto.POSProductResponse{}, nil
	}
	list, err := uc.repo.List(ctx, repository.ProductFilter{Query: q, Limit: posSearchLimit})
	if err != nil {
		return nil, err
	}
	out := make([]dto.POSProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.POSProductResponse{
			Code:     p.Code,
			Name:     p.Name,
			Category: p.Category,
			Price:    p.Price,
			Stock:    p.Stock,
		})
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		Code:      p.Code,
		Name:      p.Name,
		Category:  p.Category,
		Cost:      p.Cost,
		Price:     p.Price,
		Stock:     p.Stock,
		MinStock:  p.MinStock,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
	}
}

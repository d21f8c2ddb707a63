package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/papyros/backoffice/internal/application/dto"
	"github.com/papyros/backoffice/internal/domain"
	"github.com/papyros/backoffice/internal/domain/entity"
	"github.com/papyros/backoffice/internal/domain/repository"
	"github.com/papyros/backoffice/pkg/logger"
)

// PurchaseOrderUseCase emisión, cierre y anulación de órdenes de compra.
// Las órdenes no mueven stock; eso lo hace la recepción.
type PurchaseOrderUseCase struct {
	repo         repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	log          *logger.Logger
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(
	repo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	log *logger.Logger,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{repo: repo, supplierRepo: supplierRepo, productRepo: productRepo, log: log}
}

// Create emite una orden para un proveedor activo con al menos una línea válida.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if !supplier.Active {
		return nil, fmt.Errorf("%w: el proveedor %d está inactivo", domain.ErrConflict, supplier.ID)
	}

	codes := make([]string, 0, len(in.Lines))
	for _, l := range in.Lines {
		codes = append(codes, l.ProductCode)
	}
	active, err := uc.productRepo.FindActiveByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}

	po := &entity.PurchaseOrder{
		SupplierID: supplier.ID,
		Status:     entity.PurchaseOrderIssued,
		IssuedAt:   time.Now(),
		ExpectedAt: in.ExpectedAt,
		Lines:      make([]entity.PurchaseOrderLine, 0, len(in.Lines)),
	}
	for _, l := range in.Lines {
		if _, ok := active[l.ProductCode]; !ok {
			return nil, &domain.ProductUnavailableError{Code: l.ProductCode}
		}
		if l.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if l.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidPrice
		}
		po.Lines = append(po.Lines, entity.PurchaseOrderLine{
			ProductCode: l.ProductCode,
			Quantity:    l.Quantity,
			UnitCost:    l.UnitCost,
		})
	}
	if err := po.Emit(); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, po); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("purchase_order_id", po.ID).Int64("supplier_id", po.SupplierID).Msg("orden de compra emitida")
	return toPurchaseOrderResponse(po), nil
}

// GetByID obtiene la orden; ErrPurchaseOrderNotFound si no existe.
func (uc *PurchaseOrderUseCase) GetByID(ctx context.Context, id int64) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(po), nil
}

// Close cierra una orden EMITIDA y completa.
func (uc *PurchaseOrderUseCase) Close(ctx context.Context, id int64) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := po.CloseIfComplete(); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateStatus(ctx, po); err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(po), nil
}

// Cancel anula la orden con un motivo; una orden cerrada no se puede anular.
func (uc *PurchaseOrderUseCase) Cancel(ctx context.Context, id int64, reason string) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := po.Cancel(reason); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateStatus(ctx, po); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("purchase_order_id", po.ID).Str("reason", reason).Msg("orden de compra anulada")
	return toPurchaseOrderResponse(po), nil
}

func (uc *PurchaseOrderUseCase) get(ctx context.Context, id int64) (*entity.PurchaseOrder, error) {
	po, err := uc.repo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrPurchaseOrderNotFound
	}
	return po, err
}

func toPurchaseOrderResponse(po *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	out := &dto.PurchaseOrderResponse{
		ID:                 po.ID,
		SupplierID:         po.SupplierID,
		Status:             po.Status,
		IssuedAt:           po.IssuedAt,
		ExpectedAt:         po.ExpectedAt,
		Total:              po.Total,
		CancellationReason: po.CancellationReason,
		Lines:              make([]dto.PurchaseOrderLineResponse, 0, len(po.Lines)),
	}
	for _, l := range po.Lines {
		out.Lines = append(out.Lines, dto.PurchaseOrderLineResponse{
			ID:          l.ID,
			ProductCode: l.ProductCode,
			Quantity:    l.Quantity,
			UnitCost:    l.UnitCost,
			Subtotal:    l.Subtotal,
		})
	}
	return out
}

package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/papyros/backoffice/internal/application/dto"
	"github.com/papyros/backoffice/internal/domain"
	"github.com/papyros/backoffice/internal/domain/entity"
	"github.com/papyros/backoffice/internal/domain/repository"
	"github.com/papyros/backoffice/pkg/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RegisterReceptionUseCase registra la entrada de mercancía contra una orden de compra.
// Mismo esquema de dos fases que la venta, sin verificación de suficiencia.
type RegisterReceptionUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	receptionRepo repository.ReceptionRepository
	poRepo        repository.PurchaseOrderRepository
	mutator       *StockMutator
	log           *logger.Logger
	now           func() time.Time
}

// NewRegisterReceptionUseCase construye el caso de uso.
func NewRegisterReceptionUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	receptionRepo repository.ReceptionRepository,
	poRepo repository.PurchaseOrderRepository,
	mutator *StockMutator,
	log *logger.Logger,
) *RegisterReceptionUseCase {
	return &RegisterReceptionUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		receptionRepo: receptionRepo,
		poRepo:        poRepo,
		mutator:       mutator,
		log:           log,
		now:           time.Now,
	}
}

// RegisterReception valida la orden de compra y las líneas, y en una transacción suma el stock
// recibido (ENTRADA) y persiste la recepción.
func (uc *RegisterReceptionUseCase) RegisterReception(ctx context.Context, in dto.RegisterReceptionRequest) (_ *dto.ReceptionResponse, err error) {
	ctx, span := tracer.Start(ctx, "inventory.RegisterReception",
		trace.WithAttributes(
			attribute.Int64("purchase_order.id", in.PurchaseOrderID),
			attribute.Int("reception.lines", len(in.Lines)),
		))
	defer func() { endSpan(span, err) }()

	if len(in.Lines) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	po, err := uc.poRepo.GetByID(ctx, in.PurchaseOrderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrPurchaseOrderNotFound
		}
		return nil, err
	}
	if po.Status == entity.PurchaseOrderCancelled {
		return nil, fmt.Errorf("%w: la orden de compra #%d está anulada", domain.ErrConflict, po.ID)
	}

	codes := make([]string, 0, len(in.Lines))
	for _, l := range in.Lines {
		codes = append(codes, l.ProductCode)
	}
	codes = distinctSorted(codes)

	active, err := uc.productRepo.FindActiveByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}
	for _, l := range in.Lines {
		if _, ok := active[l.ProductCode]; !ok {
			return nil, &domain.ProductUnavailableError{Code: l.ProductCode}
		}
		if l.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
	}

	reception := &entity.Reception{
		CreatedAt:       uc.now(),
		InvoiceRef:      in.InvoiceRef,
		PurchaseOrderID: po.ID,
		Lines:           make([]entity.ReceptionLine, 0, len(in.Lines)),
	}
	for _, l := range in.Lines {
		reception.Lines = append(reception.Lines, entity.ReceptionLine{ProductCode: l.ProductCode, Quantity: l.Quantity})
	}

	operationID := uuid.NewString()
	reason := fmt.Sprintf("RECEPCION OC #%d - %s", po.ID, in.InvoiceRef)
	names := make(map[string]string, len(codes))

	err = uc.txRunner.Run(ctx, func(repos TxRepos) error {
		locked, err := repos.Products.LockByCodes(ctx, codes)
		if err != nil {
			return err
		}
		for _, l := range reception.Lines {
			p, ok := locked[l.ProductCode]
			if !ok || !p.Active {
				return &domain.ProductUnavailableError{Code: l.ProductCode}
			}
			names[l.ProductCode] = p.Name
		}
		if err := repos.Receptions.Create(ctx, reception); err != nil {
			return err
		}
		for _, l := range reception.Lines {
			if _, err := uc.mutator.ApplyDelta(ctx, repos, locked[l.ProductCode], l.Quantity, entity.MovementTypeEntrada, reason, operationID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Ctx(ctx).Info().
		Int64("reception_id", reception.ID).
		Int64("purchase_order_id", po.ID).
		Str("invoice_ref", reception.InvoiceRef).
		Str("operation_id", operationID).
		Msg("recepción registrada")
	return toReceptionResponse(reception, names), nil
}

// GetReception devuelve la recepción con sus líneas; ErrNotFound si no existe.
func (uc *RegisterReceptionUseCase) GetReception(ctx context.Context, id int64) (*dto.ReceptionResponse, error) {
	r, err := uc.receptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(r.Lines))
	for _, l := range r.Lines {
		if _, ok := names[l.ProductCode]; ok {
			continue
		}
		if p, err := uc.productRepo.GetByCode(ctx, l.ProductCode); err == nil {
			names[l.ProductCode] = p.Name
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}
	return toReceptionResponse(r, names), nil
}

func toReceptionResponse(r *entity.Reception, names map[string]string) *dto.ReceptionResponse {
	out := &dto.ReceptionResponse{
		ID:              r.ID,
		CreatedAt:       r.CreatedAt,
		PurchaseOrderID: r.PurchaseOrderID,
		InvoiceRef:      r.InvoiceRef,
		Lines:           make([]dto.ReceptionLineResponse, 0, len(r.Lines)),
	}
	for _, l := range r.Lines {
		out.Lines = append(out.Lines, dto.ReceptionLineResponse{
			ID:          l.ID,
			ProductCode: l.ProductCode,
			ProductName: names[l.ProductCode],
			Quantity:    l.Quantity,
		})
	}
	return out
}

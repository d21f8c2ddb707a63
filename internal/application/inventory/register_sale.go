package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/papyros/backoffice/internal/application/dto"
	"github.com/papyros/backoffice/internal/domain"
	"github.com/papyros/backoffice/internal/domain/entity"
	"github.com/papyros/backoffice/internal/domain/repository"
	"github.com/papyros/backoffice/pkg/logger"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RegisterSaleUseCase registra ventas de forma transaccional: valida todas las líneas contra el
// catálogo, y luego en una sola transacción bloquea los productos (SELECT FOR UPDATE), persiste
// la venta, descuenta stock y escribe el kardex. Commit o Rollback completo.
type RegisterSaleUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	mutator     *StockMutator
	log         *logger.Logger
	now         func() time.Time
}

// NewRegisterSaleUseCase construye el caso de uso.
func NewRegisterSaleUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	mutator *StockMutator,
	log *logger.Logger,
) *RegisterSaleUseCase {
	return &RegisterSaleUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		saleRepo:    saleRepo,
		mutator:     mutator,
		log:         log,
		now:         time.Now,
	}
}

// RegisterSale valida y registra la venta. Errores posibles (antes de abrir la transacción, en
// orden de línea): ErrEmptyOrder, ErrInvalidInput (método de pago vacío o muy largo), *ProductUnavailableError,
// ErrInvalidQuantity, ErrInvalidPrice, *InsufficientStockError (cantidad acumulada por código).
func (uc *RegisterSaleUseCase) RegisterSale(ctx context.Context, in dto.RegisterSaleRequest) (_ *dto.SaleResponse, err error) {
	ctx, span := tracer.Start(ctx, "inventory.RegisterSale",
		trace.WithAttributes(attribute.Int("sale.lines", len(in.Lines))))
	defer func() { endSpan(span, err) }()

	if len(in.Lines) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	paymentMethod := entity.NormalizePaymentMethod(in.PaymentMethod)
	if paymentMethod == "" || utf8.RuneCountInString(paymentMethod) > entity.MaxPaymentMethodLen {
		return nil, fmt.Errorf("%w: método de pago %q", domain.ErrInvalidInput, in.PaymentMethod)
	}

	codes := make([]string, 0, len(in.Lines))
	for _, l := range in.Lines {
		codes = append(codes, l.ProductCode)
	}
	codes = distinctSorted(codes)

	// Fase 1: consulta en lote, solo productos activos
	active, err := uc.productRepo.FindActiveByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}
	requested := make(map[string]int, len(codes))
	for _, l := range in.Lines {
		if _, ok := active[l.ProductCode]; !ok {
			return nil, &domain.ProductUnavailableError{Code: l.ProductCode}
		}
		if l.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if l.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidPrice
		}
		requested[l.ProductCode] += l.Quantity
	}
	// Fase 2: suficiencia de stock con la cantidad acumulada por código
	for _, l := range in.Lines {
		p := active[l.ProductCode]
		if p.Stock < requested[l.ProductCode] {
			return nil, &domain.InsufficientStockError{
				Code:      l.ProductCode,
				Available: p.Stock,
				Requested: requested[l.ProductCode],
			}
		}
	}

	sale := &entity.Sale{
		CreatedAt:     uc.now(),
		Status:        entity.SaleStatusConfirmed,
		PaymentMethod: paymentMethod,
		Lines:         make([]entity.SaleLine, 0, len(in.Lines)),
	}
	for _, l := range in.Lines {
		sale.Lines = append(sale.Lines, entity.NewSaleLine(l.ProductCode, l.Quantity, l.UnitPrice))
	}
	sale.RecalculateTotal()

	operationID := uuid.NewString()
	names := make(map[string]string, len(codes))

	err = uc.txRunner.Run(ctx, func(repos TxRepos) error {
		locked, err := repos.Products.LockByCodes(ctx, codes)
		if err != nil {
			return err
		}
		// Puede haberse desactivado entre la validación y el bloqueo
		for _, l := range sale.Lines {
			p, ok := locked[l.ProductCode]
			if !ok || !p.Active {
				return &domain.ProductUnavailableError{Code: l.ProductCode}
			}
		}
		lockedStock := make(map[string]int, len(locked))
		for code, p := range locked {
			lockedStock[code] = p.Stock
			names[code] = p.Name
		}

		if err := repos.Sales.Create(ctx, sale); err != nil {
			return err
		}
		reason := fmt.Sprintf("VENTA #%d", sale.ID)
		for _, l := range sale.Lines {
			_, err := uc.mutator.ApplyDelta(ctx, repos, locked[l.ProductCode], -l.Quantity, entity.MovementTypeSalida, reason, operationID)
			if err != nil {
				// Otra venta concurrente ganó el bloqueo y consumió el stock
				var neg *domain.NegativeStockError
				if errors.As(err, &neg) {
					return &domain.InsufficientStockError{
						Code:      l.ProductCode,
						Available: lockedStock[l.ProductCode],
						Requested: requested[l.ProductCode],
					}
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int64("sale.id", sale.ID))
	uc.log.Ctx(ctx).Info().
		Int64("sale_id", sale.ID).
		Str("operation_id", operationID).
		Str("total", sale.Total.StringFixed(2)).
		Int("lines", len(sale.Lines)).
		Msg("venta registrada")
	return toSaleResponse(sale, names), nil
}

// GetSale devuelve la venta con sus líneas; ErrNotFound si no existe.
func (uc *RegisterSaleUseCase) GetSale(ctx context.Context, id int64) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(sale.Lines))
	for _, l := range sale.Lines {
		if _, ok := names[l.ProductCode]; ok {
			continue
		}
		p, err := uc.productRepo.GetByCode(ctx, l.ProductCode)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, err
		}
		names[l.ProductCode] = p.Name
	}
	return toSaleResponse(sale, names), nil
}

// ValidateLine vista previa de una línea del punto de venta: precio de catálogo, subtotal y
// stock restante. No modifica nada.
func (uc *RegisterSaleUseCase) ValidateLine(ctx context.Context, in dto.ValidateSaleLineRequest) (*dto.ValidateSaleLineResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	active, err := uc.productRepo.FindActiveByCodes(ctx, []string{in.ProductCode})
	if err != nil {
		return nil, err
	}
	p, ok := active[in.ProductCode]
	if !ok {
		return nil, &domain.ProductUnavailableError{Code: in.ProductCode}
	}
	if p.Stock < in.Quantity {
		return nil, &domain.InsufficientStockError{Code: p.Code, Available: p.Stock, Requested: in.Quantity}
	}
	return &dto.ValidateSaleLineResponse{
		ProductCode:    p.Code,
		ProductName:    p.Name,
		Quantity:       in.Quantity,
		UnitPrice:      p.Price,
		Subtotal:       p.Price.Mul(decimal.NewFromInt(int64(in.Quantity))),
		RemainingStock: p.Stock - in.Quantity,
	}, nil
}

func toSaleResponse(s *entity.Sale, names map[string]string) *dto.SaleResponse {
	out := &dto.SaleResponse{
		ID:            s.ID,
		CreatedAt:     s.CreatedAt,
		Total:         s.Total,
		Status:        s.Status,
		PaymentMethod: s.PaymentMethod,
		Lines:         make([]dto.SaleLineResponse, 0, len(s.Lines)),
	}
	for _, l := range s.Lines {
		out.Lines = append(out.Lines, dto.SaleLineResponse{
			ID:          l.ID,
			ProductCode: l.ProductCode,
			ProductName: names[l.ProductCode],
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal,
		})
	}
	return out
}

package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/papyros/backoffice/internal/domain"
	"github.com/papyros/backoffice/internal/domain/entity"
	"github.com/papyros/backoffice/pkg/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// AdjustStockUseCase ajuste manual de stock (conteo físico, daño, pérdida).
// Se permite sobre productos inactivos.
type AdjustStockUseCase struct {
	txRunner TxRunner
	mutator  *StockMutator
	log      *logger.Logger
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(txRunner TxRunner, mutator *StockMutator, log *logger.Logger) *AdjustStockUseCase {
	return &AdjustStockUseCase{txRunner: txRunner, mutator: mutator, log: log}
}

// AdjustStock suma (delta > 0, ENTRADA) o resta (delta < 0, SALIDA) unidades y devuelve el nuevo stock.
func (uc *AdjustStockUseCase) AdjustStock(ctx context.Context, code string, delta int, reason string) (_ int, err error) {
	ctx, span := tracer.Start(ctx, "inventory.AdjustStock",
		trace.WithAttributes(attribute.String("product.code", code), attribute.Int("adjustment.delta", delta)))
	defer func() { endSpan(span, err) }()

	kind := entity.MovementTypeEntrada
	if delta < 0 {
		kind = entity.MovementTypeSalida
	}
	operationID := uuid.NewString()

	var newStock int
	err = uc.txRunner.Run(ctx, func(repos TxRepos) error {
		locked, err := repos.Products.LockByCodes(ctx, []string{code})
		if err != nil {
			return err
		}
		p, ok := locked[code]
		if !ok {
			return domain.ErrNotFound
		}
		// delta == 0 lo rechaza el mutador con ErrZeroAdjustment, después de ErrNotFound.
		newStock, err = uc.mutator.ApplyDelta(ctx, repos, p, delta, kind, "AJUSTE: "+reason, operationID)
		return err
	})
	if err != nil {
		return 0, err
	}

	uc.log.Ctx(ctx).Info().
		Str("product_code", code).
		Int("delta", delta).
		Int("stock", newStock).
		Str("operation_id", operationID).
		Msg("ajuste de stock registrado")
	return newStock, nil
}

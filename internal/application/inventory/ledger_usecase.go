package inventory

import (
	"context"
	"time"

	"github.com/papyros/backoffice/internal/application/dto"
	"github.com/papyros/backoffice/internal/domain"
	"github.com/papyros/backoffice/internal/domain/repository"
)

// LedgerUseCase lecturas del kardex: historial por producto y conciliación stock vs movimientos.
type LedgerUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.InventoryMovementRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.InventoryMovementRepository,
) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, productRepo: productRepo, movementRepo: movementRepo}
}

// ListMovements historial del producto, más reciente primero; from/to opcionales.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, code string, from, to *time.Time, page dto.PageRequest) (*dto.MovementListResponse, error) {
	if _, err := uc.productRepo.GetByCode(ctx, code); err != nil {
		return nil, err
	}
	page.DefaultPage()
	movs, err := uc.movementRepo.ListByProduct(ctx, code, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		items = append(items, dto.MovementResponse{
			ID:          m.ID,
			OperationID: m.OperationID,
			ProductCode: m.ProductCode,
			Type:        m.Type,
			Quantity:    m.Quantity,
			Reason:      m.Reason,
			CreatedAt:   m.CreatedAt,
		})
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Check compara el stock del producto con la suma con signo de su kardex.
// Lee ambos bajo el bloqueo de la fila para no observar una operación a medias.
func (uc *LedgerUseCase) Check(ctx context.Context, code string) (*dto.LedgerCheckResponse, error) {
	var out *dto.LedgerCheckResponse
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		locked, err := repos.Products.LockByCodes(ctx, []string{code})
		if err != nil {
			return err
		}
		p, ok := locked[code]
		if !ok {
			return domain.ErrNotFound
		}
		balance, err := repos.Movements.Balance(ctx, code)
		if err != nil {
			return err
		}
		out = &dto.LedgerCheckResponse{
			ProductCode:   code,
			Stock:         p.Stock,
			LedgerBalance: balance,
			Consistent:    p.Stock == balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

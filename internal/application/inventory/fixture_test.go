package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/papyros/backoffice/internal/application/inventory"
	"github.com/papyros/backoffice/internal/domain/entity"
	"github.com/papyros/backoffice/internal/infrastructure/memory"
	"github.com/papyros/backoffice/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: almacén en memoria + casos de uso del motor de inventario
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store     *memory.Store
	mutator   *inventory.StockMutator
	sale      *inventory.RegisterSaleUseCase
	reception *inventory.RegisterReceptionUseCase
	adjust    *inventory.AdjustStockUseCase
	ledger    *inventory.LedgerUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithRunner(t, nil)
}

// newFixtureWithRunner permite envolver el TxRunner (p. ej. para inyectar fallos).
func newFixtureWithRunner(t *testing.T, wrap func(inventory.TxRunner) inventory.TxRunner) *fixture {
	t.Helper()
	store := memory.NewStore()
	var runner inventory.TxRunner = store
	if wrap != nil {
		runner = wrap(store)
	}
	log := logger.Nop()
	mutator := inventory.NewStockMutator()
	return &fixture{
		store:     store,
		mutator:   mutator,
		sale:      inventory.NewRegisterSaleUseCase(runner, store.Products(), store.Sales(), mutator, log),
		reception: inventory.NewRegisterReceptionUseCase(runner, store.Products(), store.Receptions(), store.PurchaseOrders(), mutator, log),
		// los ajustes de siembra siempre van por el almacén real
		adjust: inventory.NewAdjustStockUseCase(store, mutator, log),
		ledger: inventory.NewLedgerUseCase(store, store.Products(), store.Movements()),
	}
}

// seedProduct crea el producto con stock 0 y lo lleva a stock mediante un ajuste (queda en el kardex).
func (f *fixture) seedProduct(t *testing.T, code string, stock int, active bool) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, f.store.Products().Create(ctx, &entity.Product{
		Code:      code,
		Name:      "Producto " + code,
		Category:  "Papelería",
		Cost:      decimal.RequireFromString("0.50"),
		Price:     decimal.RequireFromString("1.00"),
		MinStock:  2,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}))
	if stock > 0 {
		_, err := f.adjust.AdjustStock(ctx, code, stock, "inventario inicial")
		require.NoError(t, err)
	}
	if !active {
		require.NoError(t, f.store.Products().SetActive(ctx, code, false))
	}
}

func (f *fixture) stockOf(t *testing.T, code string) int {
	t.Helper()
	p, err := f.store.Products().GetByCode(context.Background(), code)
	require.NoError(t, err)
	return p.Stock
}

// movementsOf devuelve las entradas del kardex del producto filtradas por tipo.
func (f *fixture) movementsOf(code, kind string) []entity.InventoryMovement {
	var out []entity.InventoryMovement
	for _, m := range f.store.Movements().All() {
		if m.ProductCode == code && m.Type == kind {
			out = append(out, m)
		}
	}
	return out
}

// issuedOrder registra una orden de compra EMITIDA y devuelve su ID.
func (f *fixture) issuedOrder(t *testing.T, status string) int64 {
	t.Helper()
	po := &entity.PurchaseOrder{
		SupplierID: 1,
		Status:     status,
		IssuedAt:   time.Now(),
		Lines: []entity.PurchaseOrderLine{
			{ProductCode: "P1", Quantity: 20, UnitCost: decimal.RequireFromString("0.50")},
		},
	}
	po.RecalculateTotal()
	require.NoError(t, f.store.PurchaseOrders().Create(context.Background(), po))
	return po.ID
}

// requireLedgerConsistent verifica stock == suma con signo del kardex para cada código.
func (f *fixture) requireLedgerConsistent(t *testing.T, codes ...string) {
	t.Helper()
	for _, code := range codes {
		res, err := f.ledger.Check(context.Background(), code)
		require.NoError(t, err)
		require.Truef(t, res.Consistent, "kardex inconsistente para %s: stock %d, kardex %d", code, res.Stock, res.LedgerBalance)
		require.GreaterOrEqual(t, res.Stock, 0)
	}
}

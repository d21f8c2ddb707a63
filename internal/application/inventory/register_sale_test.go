package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papyros/backoffice/internal/application/dto"
	"github.com/papyros/backoffice/internal/application/inventory"
	"github.com/papyros/backoffice/internal/domain"
	"github.com/papyros/backoffice/internal/domain/entity"
	"github.com/papyros/backoffice/internal/domain/repository"
)

func saleReq(lines ...dto.SaleLineRequest) dto.RegisterSaleRequest {
	return dto.RegisterSaleRequest{PaymentMethod: entity.PaymentMethodCash, Lines: lines}
}

func line(code string, qty int, price string) dto.SaleLineRequest {
	return dto.SaleLineRequest{ProductCode: code, Quantity: qty, UnitPrice: decimal.RequireFromString(price)}
}

// Venta simple: descuenta stock, una SALIDA en el kardex y total exacto.
func TestRegisterSale_DescuentaStockYRegistraSalida(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "P1", 10, true)

	sale, err := f.sale.RegisterSale(context.Background(), saleReq(line("P1", 5, "1.00")))
	require.NoError(t, err)

	assert.Equal(t, 5, f.stockOf(t, "P1"))
	assert.True(t, sale.Total.Equal(decimal.RequireFromString("5.00")), "total %s", sale.Total)
	assert.Equal(t, entity.SaleStatusConfirmed, sale.Status)
	require.Len(t, sale.Lines, 1)
	assert.Equal(t, "Producto P1", sale.Lines[0].ProductName)

	salidas := f.movementsOf("P1", entity.MovementTypeSalida)
	require.Len(t, salidas, 1)
	assert.Equal(t, 5, salidas[0].Quantity)
	assert.Equal(t, "VENTA #1", salidas[0].Reason)
	f.requireLedgerConsistent(t, "P1")
}

// Stock insuficiente: falla con el disponible y no toca nada.
func TestRegisterSale_StockInsuficiente(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "P1", 3, true)

	_, err := f.sale.RegisterSale(context.Background(), saleReq(line("P1", 5, "1.00")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, "P1", insufficient.Code)
	assert.Equal(t, 3, insufficient.Available)
	assert.Equal(t, 5, insufficient.Requested)

	assert.Equal(t, 3, f.stockOf(t, "P1"))
	assert.Empty(t, f.movementsOf("P1", entity.MovementTypeSalida))
	assert.Equal(t, 0, f.store.Sales().Count())
}

// Una línea con producto inactivo hace fallar toda la venta, sin descuento parcial.
func TestRegisterSale_ProductoInactivoNoDescuentaOtrasLineas(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "P1", 10, true)
	f.seedProduct(t, "P2", 10, false)

	_, err := f.sale.RegisterSale(context.Background(), saleReq(line("P1", 2, "1.00"), line("P2", 1, "2.00")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProductUnavailable))
	var unavailable *domain.ProductUnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, "P2", unavailable.Code)

	assert.Equal(t, 10, f.stockOf(t, "P1"))
	assert.Empty(t, f.movementsOf("P1", entity.MovementTypeSalida))
	assert.Equal(t, 0, f.store.Sales().Count())
}

func TestRegisterSale_CantidadAcumuladaPorCodigo(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "P1", 5, true)

	_, err := f.sale.RegisterSale(context.Background(), saleReq(line("P1", 3, "1.00"), line("P1", 3, "1.00")))
	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 5, insufficient.Available)
	assert.Equal(t, 6, insufficient.Requested)
	assert.Equal(t, 5, f.stockOf(t, "P1"))
}

func TestRegisterSale_ValidacionesDeEntrada(t *testing.T) {
	tests := []struct {
		name string
		req  dto.RegisterSaleRequest
		want error
	}{
		{"sin líneas", saleReq(), domain.ErrEmptyOrder},
		{"método de pago vacío", dto.RegisterSaleRequest{PaymentMethod: "   ", Lines: []dto.SaleLineRequest{line("P1", 1, "1.00")}}, domain.ErrInvalidInput},
		{"código inexistente", saleReq(line("NOPE", 1, "1.00")), domain.ErrProductUnavailable},
		{"cantidad cero", saleReq(line("P1", 0, "1.00")), domain.ErrInvalidQuantity},
		{"cantidad negativa", saleReq(line("P1", -2, "1.00")), domain.ErrInvalidQuantity},
		{"precio negativo", saleReq(line("P1", 1, "-0.01")), domain.ErrInvalidPrice},
		{"inválida en segunda línea", saleReq(line("P1", 1, "1.00"), line("P1", 0, "1.00")), domain.ErrInvalidQuantity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.seedProduct(t, "P1", 10, true)

			_, err := f.sale.RegisterSale(context.Background(), tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 10, f.stockOf(t, "P1"))
			assert.Equal(t, 0, f.store.Sales().Count())
		})
	}
}

// Precio cero es válido (regalo/promoción).
func TestRegisterSale_PrecioCeroPermitido(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "P1", 1, true)

	sale, err := f.sale.RegisterSale(context.Background(), saleReq(line("P1", 1, "0")))
	require.NoError(t, err)
	assert.True(t, sale.Total.IsZero())
}

// Sumas de decimales sin deriva de punto flotante.
func TestRegisterSale_TotalDecimalExacto(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "P1", 100, true)
	f.seedProduct(t, "P2", 100, true)

	lines := make([]dto.SaleLineRequest, 0, 11)
	for i := 0; i < 10; i++ {
		lines = append(lines, line("P1", 1, "0.10"))
	}
	lines = append(lines, line("P2", 3, "0.20"))

	sale, err := f.sale.RegisterSale(context.Background(), saleReq(lines...))
	require.NoError(t, err)
	assert.Equal(t, "1.60", sale.Total.StringFixed(2))
	assert.True(t, sale.Total.Equal(decimal.RequireFromString("1.6")))
	assert.True(t, sale.Lines[10].Subtotal.Equal(decimal.RequireFromString("0.6")))

	got, err := f.sale.GetSale(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.True(t, got.Total.Equal(sale.Total))
	assert.Len(t, got.Lines, 11)
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad: un fallo en la línea k revierte las líneas anteriores
// ──────────────────────────────────────────────────────────────────────────────

var errBoom = errors.New("fallo de almacenamiento")

type failingRunner struct {
	inner  inventory.TxRunner
	failAt int
}

func (r *failingRunner) Run(ctx context.Context, fn func(inventory.TxRepos) error) error {
	return r.inner.Run(ctx, func(repos inventory.TxRepos) error {
		repos.Movements = &failingMovements{InventoryMovementRepository: repos.Movements, failAt: r.failAt}
		return fn(repos)
	})
}

type failingMovements struct {
	repository.InventoryMovementRepository
	failAt int
	calls  int
}

func (m *failingMovements) Append(ctx context.Context, mov *entity.InventoryMovement) error {
	m.calls++
	if m.calls == m.failAt {
		return errBoom
	}
	return m.InventoryMovementRepository.Append(ctx, mov)
}

func TestRegisterSale_FalloEnLineaKRevierteTodo(t *testing.T) {
	f := newFixtureWithRunner(t, func(inner inventory.TxRunner) inventory.TxRunner {
		return &failingRunner{inner: inner, failAt: 3}
	})
	f.seedProduct(t, "P1", 10, true)
	f.seedProduct(t, "P2", 10, true)
	f.seedProduct(t, "P3", 10, true)
	before := len(f.store.Movements().All())

	_, err := f.sale.RegisterSale(context.Background(), saleReq(
		line("P1", 1, "1.00"), line("P2", 2, "1.00"), line("P3", 3, "1.00"),
	))
	require.ErrorIs(t, err, errBoom)

	// Lectura repetida tras el fallo: nada quedó persistido
	for i := 0; i < 2; i++ {
		assert.Equal(t, 10, f.stockOf(t, "P1"))
		assert.Equal(t, 10, f.stockOf(t, "P2"))
		assert.Equal(t, 10, f.stockOf(t, "P3"))
		assert.Len(t, f.store.Movements().All(), before)
		assert.Equal(t, 0, f.store.Sales().Count())
	}
	f.requireLedgerConsistent(t, "P1", "P2", "P3")
}

func TestRegisterSale_ContextoCanceladoNoPersiste(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "P1", 10, true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.sale.RegisterSale(ctx, saleReq(line("P1", 1, "1.00")))
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 10, f.stockOf(t, "P1"))
	assert.Equal(t, 0, f.store.Sales().Count())
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia: ventas simultáneas nunca sobregiran el stock
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterSale_ConcurrenteNoSobregira(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "P1", 10, true)

	const workers = 25
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		ok         int
		rejected   int
		unexpected []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.sale.RegisterSale(context.Background(), saleReq(line("P1", 1, "1.00")))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrInsufficientStock):
				rejected++
			default:
				unexpected = append(unexpected, err)
			}
		}()
	}
	wg.Wait()

	require.Empty(t, unexpected)
	assert.Equal(t, 10, ok)
	assert.Equal(t, workers-10, rejected)
	assert.Equal(t, 0, f.stockOf(t, "P1"))
	assert.Len(t, f.movementsOf("P1", entity.MovementTypeSalida), 10)
	f.requireLedgerConsistent(t, "P1")
}

func TestRegisterSale_DosVentasQueExcedenElStock(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "P1", 5, true)

	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := f.sale.RegisterSale(context.Background(), saleReq(line("P1", 3, "1.00")))
			errs <- err
		}()
	}
	var failed int
	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil {
			require.ErrorIs(t, err, domain.ErrInsufficientStock)
			failed++
		}
	}
	assert.Equal(t, 1, failed)
	assert.Equal(t, 2, f.stockOf(t, "P1"))
	f.requireLedgerConsistent(t, "P1")
}

// ──────────────────────────────────────────────────────────────────────────────
// Vista previa del punto de venta
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateLine_VistaPreviaSinMutar(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "P1", 4, true)

	res, err := f.sale.ValidateLine(context.Background(), dto.ValidateSaleLineRequest{ProductCode: "P1", Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 1, res.RemainingStock)
	assert.True(t, res.UnitPrice.Equal(decimal.RequireFromString("1.00")))
	assert.True(t, res.Subtotal.Equal(decimal.RequireFromString("3")))
	assert.Equal(t, 4, f.stockOf(t, "P1"))

	_, err = f.sale.ValidateLine(context.Background(), dto.ValidateSaleLineRequest{ProductCode: "P1", Quantity: 5})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = f.sale.ValidateLine(context.Background(), dto.ValidateSaleLineRequest{ProductCode: "P9", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrProductUnavailable)
}

// La cantidad se valida antes de buscar el producto.
func TestValidateLine_CantidadAntesQueProducto(t *testing.T) {
	f := newFixture(t)

	_, err := f.sale.ValidateLine(context.Background(), dto.ValidateSaleLineRequest{ProductCode: "NOPE", Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.NotErrorIs(t, err, domain.ErrProductUnavailable)
}

// ──────────────────────────────────────────────────────────────────────────────
// Método de pago
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterSale_MetodoDePagoAbierto(t *testing.T) {
	tests := []struct {
		sent string
		want string
	}{
		{"Efectivo", entity.PaymentMethodCash},
		{"  tarjeta ", entity.PaymentMethodCard},
		{"EFECTIVO", entity.PaymentMethodCash},
		{"Nequi", "Nequi"},
	}
	f := newFixture(t)
	f.seedProduct(t, "P1", 10, true)
	for _, tt := range tests {
		t.Run(tt.sent, func(t *testing.T) {
			sale, err := f.sale.RegisterSale(context.Background(), dto.RegisterSaleRequest{
				PaymentMethod: tt.sent,
				Lines:         []dto.SaleLineRequest{line("P1", 1, "1.00")},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, sale.PaymentMethod)

			stored, err := f.sale.GetSale(context.Background(), sale.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stored.PaymentMethod)
		})
	}
	assert.Equal(t, 6, f.stockOf(t, "P1"))
	f.requireLedgerConsistent(t, "P1")
}

func TestGetSale_NoExiste(t *testing.T) {
	f := newFixture(t)
	_, err := f.sale.GetSale(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/papyros/backoffice/internal/application/inventory"
	"github.com/papyros/backoffice/internal/application/receipt"
	"github.com/papyros/backoffice/internal/application/usecase"
	"github.com/papyros/backoffice/internal/domain/repository"
	"github.com/papyros/backoffice/internal/infrastructure/memory"
	"github.com/papyros/backoffice/internal/infrastructure/observability"
	infrapdf "github.com/papyros/backoffice/internal/infrastructure/pdf"
	"github.com/papyros/backoffice/internal/infrastructure/postgres"
	httpRouter "github.com/papyros/backoffice/internal/interfaces/http"
	"github.com/papyros/backoffice/pkg/config"
	"github.com/papyros/backoffice/pkg/logger"
)

// @title                       Papyros Backoffice API
// @version                     1.0
// @description                 Catálogo, kardex, ventas y recepciones de la papelería.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization

// stores puertos de persistencia de un driver concreto.
type stores struct {
	txRunner   inventory.TxRunner
	products   repository.ProductRepository
	movements  repository.InventoryMovementRepository
	sales      repository.SaleRepository
	receptions repository.ReceptionRepository
	orders     repository.PurchaseOrderRepository
	suppliers  repository.SupplierRepository
	reports    repository.ReportRepository
	ping       func(ctx context.Context) error
	close      func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	shutdownTracing, err := observability.SetupTracing(ctx, cfg.Telemetry)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración de trazas")
	}

	st, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	mutator := inventory.NewStockMutator()
	productUC := usecase.NewProductUseCase(st.products, log)
	saleUC := inventory.NewRegisterSaleUseCase(st.txRunner, st.products, st.sales, mutator, log)
	receiptUC := receipt.NewUseCase(saleUC, infrapdf.NewMarotoPDFGenerator(), receipt.Business{
		Name:    cfg.Business.Name,
		Tagline: cfg.Business.Tagline,
		TaxID:   cfg.Business.TaxID,
		Phone:   cfg.Business.Phone,
	})

	app := httpRouter.NewApp(cfg.App.Name, log, httpRouter.RouterDeps{
		ProductUC:       productUC,
		SupplierUC:      usecase.NewSupplierUseCase(st.suppliers),
		PurchaseOrderUC: usecase.NewPurchaseOrderUseCase(st.orders, st.suppliers, st.products, log),
		ReportUC:        usecase.NewReportUseCase(st.reports),
		SaleUC:          saleUC,
		ReceptionUC:     inventory.NewRegisterReceptionUseCase(st.txRunner, st.products, st.receptions, st.orders, mutator, log),
		AdjustUC:        inventory.NewAdjustStockUseCase(st.txRunner, mutator, log),
		LedgerUC:        inventory.NewLedgerUseCase(st.txRunner, st.products, st.movements),
		ReceiptUC:       receiptUC,
		JWTSecret:       cfg.JWT.Secret,
		Ping:            st.ping,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado de trazas")
	}

	log.Info().Msg("aplicación detenida")
}

// openStores crea los repositorios del driver configurado.
func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		s := memory.NewStore()
		return &stores{
			txRunner:   s,
			products:   s.Products(),
			movements:  s.Movements(),
			sales:      s.Sales(),
			receptions: s.Receptions(),
			orders:     s.PurchaseOrders(),
			suppliers:  s.Suppliers(),
			reports:    s.Reports(),
			close:      func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.Store.AutoSchema {
		if err := postgres.ApplySchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return &stores{
		txRunner:   postgres.NewTxRunner(pool),
		products:   postgres.NewProductRepository(pool),
		movements:  postgres.NewInventoryMovementRepository(pool),
		sales:      postgres.NewSaleRepository(pool),
		receptions: postgres.NewReceptionRepository(pool),
		orders:     postgres.NewPurchaseOrderRepository(pool),
		suppliers:  postgres.NewSupplierRepository(pool),
		reports:    postgres.NewReportRepository(pool),
		ping:       pool.Ping,
		close:      pool.Close,
	}, nil
}

package http

import (
	"context"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/papyros/backoffice/docs"
	"github.com/papyros/backoffice/internal/application/inventory"
	"github.com/papyros/backoffice/internal/application/receipt"
	"github.com/papyros/backoffice/internal/application/usecase"
	"github.com/papyros/backoffice/pkg/jwt"
	"github.com/papyros/backoffice/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC       *usecase.ProductUseCase
	SupplierUC      *usecase.SupplierUseCase
	PurchaseOrderUC *usecase.PurchaseOrderUseCase
	ReportUC        *usecase.ReportUseCase
	SaleUC          *inventory.RegisterSaleUseCase
	ReceptionUC     *inventory.RegisterReceptionUseCase
	AdjustUC        *inventory.AdjustStockUseCase
	LedgerUC        *inventory.LedgerUseCase
	ReceiptUC       *receipt.UseCase
	JWTSecret       string
	// Ping verifica el almacenamiento en /health; nil = siempre ok.
	Ping func(ctx context.Context) error
}

// NewApp crea la aplicación Fiber con el manejador de errores, middlewares, docs y rutas.
func NewApp(appName string, log *logger.Logger, deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      appName,
		ErrorHandler: NewErrorHandler(log),
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(TracingMiddleware())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FilePath:    "swagger.json",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "docs",
		Title:       docs.SwaggerInfo.Title,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if deps.Ping != nil {
			if err := deps.Ping(c.UserContext()); err != nil {
				log.Ctx(c.UserContext()).Error().Err(err).Msg("health: almacenamiento no disponible")
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": appName})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": appName})
	})

	Router(app, deps)
	return app
}

// Router registra las rutas de la API. Todas requieren Bearer Token;
// las que modifican catálogo, compras o reportes además exigen rol admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(jwt.RoleAdmin)
	anyRole := RequireRole(jwt.RoleAdmin, jwt.RoleCashier)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	inventoryHandler := NewInventoryHandler(deps.AdjustUC, deps.LedgerUC)
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/", anyRole, productHandler.List)
	products.Get("/:code", anyRole, productHandler.GetByCode)
	products.Put("/:code", adminOnly, productHandler.Update)
	products.Post("/:code/deactivate", adminOnly, productHandler.Deactivate)
	products.Post("/:code/reactivate", adminOnly, productHandler.Reactivate)
	products.Post("/:code/adjustments", adminOnly, inventoryHandler.Adjust)
	products.Get("/:code/movements", anyRole, inventoryHandler.Movements)
	products.Get("/:code/ledger-check", adminOnly, inventoryHandler.LedgerCheck)

	// Sales + POS
	sales := api.Group("/sales", anyRole)
	saleHandler := NewSaleHandler(deps.SaleUC, deps.ReceiptUC, deps.ProductUC)
	sales.Get("/pos/search", saleHandler.SearchPOS)
	sales.Post("/pos/validate-line", saleHandler.ValidateLine)
	sales.Post("/", saleHandler.Register)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Get("/:id/receipt", saleHandler.Receipt)

	// Receptions
	receptions := api.Group("/receptions")
	receptionHandler := NewReceptionHandler(deps.ReceptionUC)
	receptions.Post("/", adminOnly, receptionHandler.Register)
	receptions.Get("/:id", anyRole, receptionHandler.GetByID)

	// Suppliers
	suppliers := api.Group("/suppliers", adminOnly)
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)

	// Purchase orders
	orders := api.Group("/purchase-orders", adminOnly)
	orderHandler := NewPurchaseOrderHandler(deps.PurchaseOrderUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/close", orderHandler.Close)
	orders.Post("/:id/cancel", orderHandler.Cancel)

	// Reports
	reports := api.Group("/reports", adminOnly)
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/top-products", reportHandler.TopProducts)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/monthly-revenue", reportHandler.MonthlyRevenue)
}

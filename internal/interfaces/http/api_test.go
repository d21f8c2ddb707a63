package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papyros/backoffice/internal/application/dto"
	"github.com/papyros/backoffice/internal/application/inventory"
	"github.com/papyros/backoffice/internal/application/receipt"
	"github.com/papyros/backoffice/internal/application/usecase"
	"github.com/papyros/backoffice/internal/infrastructure/memory"
	"github.com/papyros/backoffice/internal/infrastructure/pdf"
	apphttp "github.com/papyros/backoffice/internal/interfaces/http"
	pkgjwt "github.com/papyros/backoffice/pkg/jwt"
	"github.com/papyros/backoffice/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// API completa sobre el almacén en memoria
// ──────────────────────────────────────────────────────────────────────────────

type apiClient struct {
	t       *testing.T
	app     *fiber.App
	admin   string
	cashier string
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	store := memory.NewStore()
	log := logger.Nop()
	mutator := inventory.NewStockMutator()
	products := usecase.NewProductUseCase(store.Products(), log)
	sales := inventory.NewRegisterSaleUseCase(store, store.Products(), store.Sales(), mutator, log)

	app := apphttp.NewApp("papyros-test", log, apphttp.RouterDeps{
		ProductUC:       products,
		SupplierUC:      usecase.NewSupplierUseCase(store.Suppliers()),
		PurchaseOrderUC: usecase.NewPurchaseOrderUseCase(store.PurchaseOrders(), store.Suppliers(), store.Products(), log),
		ReportUC:        usecase.NewReportUseCase(store.Reports()),
		SaleUC:          sales,
		ReceptionUC:     inventory.NewRegisterReceptionUseCase(store, store.Products(), store.Receptions(), store.PurchaseOrders(), mutator, log),
		AdjustUC:        inventory.NewAdjustStockUseCase(store, mutator, log),
		LedgerUC:        inventory.NewLedgerUseCase(store, store.Products(), store.Movements()),
		ReceiptUC:       receipt.NewUseCase(sales, pdf.NewMarotoPDFGenerator(), receipt.Business{Name: "Papelería Papyros", TaxID: "900123456-7"}),
		JWTSecret:       testJWTSecret,
	})
	return &apiClient{
		t:       t,
		app:     app,
		admin:   tokenForRole(t, pkgjwt.RoleAdmin),
		cashier: tokenForRole(t, pkgjwt.RoleCashier),
	}
}

// do envía la petición con body JSON opcional y devuelve status y cuerpo.
func (a *apiClient) do(method, path, auth string, body any) (int, []byte) {
	a.t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return resp.StatusCode, out
}

func (a *apiClient) decode(raw []byte, v any) {
	a.t.Helper()
	require.NoError(a.t, json.Unmarshal(raw, v), string(raw))
}

func (a *apiClient) errorOf(raw []byte) dto.ErrorResponse {
	a.t.Helper()
	var e dto.ErrorResponse
	a.decode(raw, &e)
	return e
}

// createProduct crea el producto y le carga stock con un ajuste.
func (a *apiClient) createProduct(code string, stock int) {
	a.t.Helper()
	status, body := a.do(http.MethodPost, "/api/products", a.admin, map[string]any{
		"code": code, "name": "Cuaderno " + code, "category": "Cuadernos",
		"cost": "0.50", "price": "1.00", "min_stock": 2,
	})
	require.Equal(a.t, http.StatusCreated, status, string(body))
	if stock > 0 {
		status, body = a.do(http.MethodPost, "/api/products/"+code+"/adjustments", a.admin,
			dto.AdjustStockRequest{Quantity: stock, Reason: "inventario inicial"})
		require.Equal(a.t, http.StatusOK, status, string(body))
	}
}

func (a *apiClient) stockOf(code string) int {
	a.t.Helper()
	status, body := a.do(http.MethodGet, "/api/products/"+code, a.cashier, nil)
	require.Equal(a.t, http.StatusOK, status, string(body))
	var p dto.ProductResponse
	a.decode(body, &p)
	return p.Stock
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_HealthYDocs(t *testing.T) {
	a := newAPI(t)

	status, body := a.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"status":"ok"`)

	status, _ = a.do(http.MethodGet, "/docs", "", nil)
	assert.Equal(t, http.StatusOK, status)

	// La recepción documenta el 409 de orden anulada junto al 404.
	status, body = a.do(http.MethodGet, "/swagger.json", "", nil)
	require.Equal(t, http.StatusOK, status)
	var doc struct {
		Paths map[string]map[string]struct {
			Responses map[string]any `json:"responses"`
		} `json:"paths"`
	}
	a.decode(body, &doc)
	responses := doc.Paths["/api/receptions"]["post"].Responses
	assert.Contains(t, responses, "404")
	assert.Contains(t, responses, "409")
}

func TestAPI_RequiereToken(t *testing.T) {
	a := newAPI(t)

	status, _ := a.do(http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := a.do(http.MethodPost, "/api/products", a.cashier, map[string]any{"code": "X"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", a.errorOf(body).Code)
}

func TestAPI_VentaCompleta(t *testing.T) {
	a := newAPI(t)
	a.createProduct("P1", 10)

	status, body := a.do(http.MethodPost, "/api/sales", a.cashier, map[string]any{
		"payment_method": "EFECTIVO",
		"lines":          []map[string]any{{"product_code": "P1", "quantity": 3, "unit_price": "1.10"}},
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	var sale dto.SaleResponse
	a.decode(body, &sale)
	assert.Equal(t, "3.30", sale.Total.StringFixed(2))
	require.Len(t, sale.Lines, 1)
	assert.Equal(t, "Cuaderno P1", sale.Lines[0].ProductName)
	assert.Equal(t, 7, a.stockOf("P1"))

	// Consulta y comprobante
	status, _ = a.do(http.MethodGet, fmt.Sprintf("/api/sales/%d", sale.ID), a.cashier, nil)
	assert.Equal(t, http.StatusOK, status)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/sales/%d/receipt", sale.ID), nil)
	req.Header.Set("Authorization", a.cashier)
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), receipt.Filename(sale.ID))
	pdfBytes, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(pdfBytes, []byte("%PDF")))

	// Kardex: ajuste inicial + venta
	status, body = a.do(http.MethodGet, "/api/products/P1/movements", a.cashier, nil)
	require.Equal(t, http.StatusOK, status)
	var movs dto.MovementListResponse
	a.decode(body, &movs)
	require.Len(t, movs.Items, 2)
	reasons := []string{movs.Items[0].Reason, movs.Items[1].Reason}
	assert.Contains(t, reasons, fmt.Sprintf("VENTA #%d", sale.ID))

	status, body = a.do(http.MethodGet, "/api/products/P1/ledger-check", a.admin, nil)
	require.Equal(t, http.StatusOK, status)
	var check dto.LedgerCheckResponse
	a.decode(body, &check)
	assert.True(t, check.Consistent)
	assert.Equal(t, 7, check.LedgerBalance)
}

func TestAPI_VentaConMetodoDePagoLibre(t *testing.T) {
	a := newAPI(t)
	a.createProduct("P1", 10)

	for sent, want := range map[string]string{"Efectivo": "EFECTIVO", "Nequi": "Nequi"} {
		status, body := a.do(http.MethodPost, "/api/sales", a.cashier, map[string]any{
			"payment_method": sent,
			"lines":          []map[string]any{{"product_code": "P1", "quantity": 1, "unit_price": "1"}},
		})
		require.Equal(t, http.StatusCreated, status, string(body))
		var sale dto.SaleResponse
		a.decode(body, &sale)
		assert.Equal(t, want, sale.PaymentMethod)
	}
	assert.Equal(t, 8, a.stockOf("P1"))
}

func TestAPI_VentaStockInsuficiente(t *testing.T) {
	a := newAPI(t)
	a.createProduct("P1", 2)

	status, body := a.do(http.MethodPost, "/api/sales", a.cashier, map[string]any{
		"payment_method": "TARJETA",
		"lines":          []map[string]any{{"product_code": "P1", "quantity": 5, "unit_price": "1"}},
	})
	require.Equal(t, http.StatusConflict, status)
	e := a.errorOf(body)
	assert.Equal(t, "INSUFFICIENT_STOCK", e.Code)
	assert.Equal(t, "P1", e.Details["code"])
	assert.EqualValues(t, 2, e.Details["available"])
	assert.EqualValues(t, 5, e.Details["requested"])
	assert.Equal(t, 2, a.stockOf("P1"))
}

func TestAPI_ErroresDeVenta(t *testing.T) {
	a := newAPI(t)
	a.createProduct("P1", 5)

	cases := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"sin lineas", map[string]any{"payment_method": "EFECTIVO", "lines": []any{}}, http.StatusBadRequest, "EMPTY_ORDER"},
		{"cantidad cero", map[string]any{"payment_method": "EFECTIVO",
			"lines": []map[string]any{{"product_code": "P1", "quantity": 0, "unit_price": "1"}}}, http.StatusBadRequest, "INVALID_QUANTITY"},
		{"precio negativo", map[string]any{"payment_method": "EFECTIVO",
			"lines": []map[string]any{{"product_code": "P1", "quantity": 1, "unit_price": "-1"}}}, http.StatusBadRequest, "INVALID_PRICE"},
		{"producto inexistente", map[string]any{"payment_method": "EFECTIVO",
			"lines": []map[string]any{{"product_code": "NOPE", "quantity": 1, "unit_price": "1"}}}, http.StatusUnprocessableEntity, "PRODUCT_UNAVAILABLE"},
		{"sin metodo de pago", map[string]any{
			"lines": []map[string]any{{"product_code": "P1", "quantity": 1, "unit_price": "1"}}}, http.StatusBadRequest, "VALIDATION"},
		{"metodo de pago muy largo", map[string]any{"payment_method": strings.Repeat("x", 51),
			"lines": []map[string]any{{"product_code": "P1", "quantity": 1, "unit_price": "1"}}}, http.StatusBadRequest, "VALIDATION"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := a.do(http.MethodPost, "/api/sales", a.cashier, tc.body)
			assert.Equal(t, tc.status, status, string(body))
			assert.Equal(t, tc.code, a.errorOf(body).Code)
		})
	}
	assert.Equal(t, 5, a.stockOf("P1"))

	req := httptest.NewRequest(http.MethodPost, "/api/sales", bytes.NewBufferString("{no json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", a.cashier)
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_Ajustes(t *testing.T) {
	a := newAPI(t)
	a.createProduct("P1", 3)

	status, body := a.do(http.MethodPost, "/api/products/P1/adjustments", a.admin, dto.AdjustStockRequest{Quantity: 0, Reason: "conteo"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "ZERO_ADJUSTMENT", a.errorOf(body).Code)

	status, body = a.do(http.MethodPost, "/api/products/P1/adjustments", a.admin, dto.AdjustStockRequest{Quantity: -4, Reason: "daño"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "NEGATIVE_STOCK", a.errorOf(body).Code)

	status, body = a.do(http.MethodPost, "/api/products/NOPE/adjustments", a.admin, dto.AdjustStockRequest{Quantity: 1, Reason: "x"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", a.errorOf(body).Code)

	status, body = a.do(http.MethodPost, "/api/products/P1/adjustments", a.admin, dto.AdjustStockRequest{Quantity: -3, Reason: "daño"})
	require.Equal(t, http.StatusOK, status)
	var out dto.AdjustStockResponse
	a.decode(body, &out)
	assert.Equal(t, 0, out.Stock)
}

func TestAPI_PuntoDeVenta(t *testing.T) {
	a := newAPI(t)
	a.createProduct("LAP-01", 4)

	status, body := a.do(http.MethodGet, "/api/sales/pos/search?q=cuaderno", a.cashier, nil)
	require.Equal(t, http.StatusOK, status)
	var found []dto.POSProductResponse
	a.decode(body, &found)
	require.Len(t, found, 1)
	assert.Equal(t, "LAP-01", found[0].Code)

	status, body = a.do(http.MethodPost, "/api/sales/pos/validate-line", a.cashier, dto.ValidateSaleLineRequest{ProductCode: "LAP-01", Quantity: 3})
	require.Equal(t, http.StatusOK, status, string(body))
	var preview dto.ValidateSaleLineResponse
	a.decode(body, &preview)
	assert.Equal(t, 1, preview.RemainingStock)
	assert.Equal(t, "3.00", preview.Subtotal.StringFixed(2))
	assert.Equal(t, 4, a.stockOf("LAP-01"))
}

func TestAPI_ComprasYRecepcion(t *testing.T) {
	a := newAPI(t)
	a.createProduct("P1", 0)

	supplier := dto.CreateSupplierRequest{Name: "Distribuidora Andina", TaxID: "900123456", ContactName: "Ana", Phone: "3001234567", Email: "ventas@andina.co"}
	status, body := a.do(http.MethodPost, "/api/suppliers", a.admin, supplier)
	require.Equal(t, http.StatusCreated, status, string(body))
	var s dto.SupplierResponse
	a.decode(body, &s)

	status, body = a.do(http.MethodPost, "/api/suppliers", a.admin, supplier)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", a.errorOf(body).Code)

	bad := supplier
	bad.Name, bad.TaxID, bad.Email = "Otro", "800", "no-es-correo"
	status, body = a.do(http.MethodPost, "/api/suppliers", a.admin, bad)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", a.errorOf(body).Code)

	status, body = a.do(http.MethodPost, "/api/purchase-orders", a.admin, map[string]any{
		"supplier_id": s.ID,
		"lines":       []map[string]any{{"product_code": "P1", "quantity": 12, "unit_cost": "0.40"}},
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	var po dto.PurchaseOrderResponse
	a.decode(body, &po)
	assert.Equal(t, "4.80", po.Total.StringFixed(2))

	status, body = a.do(http.MethodPost, "/api/receptions", a.admin, dto.RegisterReceptionRequest{
		PurchaseOrderID: po.ID, InvoiceRef: "FACT-77",
		Lines: []dto.ReceptionLineRequest{{ProductCode: "P1", Quantity: 12}},
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	var rec dto.ReceptionResponse
	a.decode(body, &rec)
	assert.Equal(t, 12, a.stockOf("P1"))

	status, _ = a.do(http.MethodGet, fmt.Sprintf("/api/receptions/%d", rec.ID), a.cashier, nil)
	assert.Equal(t, http.StatusOK, status)

	status, body = a.do(http.MethodPost, "/api/receptions", a.admin, dto.RegisterReceptionRequest{
		PurchaseOrderID: 999, InvoiceRef: "FACT-78",
		Lines: []dto.ReceptionLineRequest{{ProductCode: "P1", Quantity: 1}},
	})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "PURCHASE_ORDER_NOT_FOUND", a.errorOf(body).Code)

	status, body = a.do(http.MethodPost, fmt.Sprintf("/api/purchase-orders/%d/cancel", po.ID), a.admin, dto.CancelPurchaseOrderRequest{Reason: "duplicada"})
	require.Equal(t, http.StatusOK, status, string(body))

	status, body = a.do(http.MethodPost, "/api/receptions", a.admin, dto.RegisterReceptionRequest{
		PurchaseOrderID: po.ID, InvoiceRef: "FACT-79",
		Lines: []dto.ReceptionLineRequest{{ProductCode: "P1", Quantity: 1}},
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", a.errorOf(body).Code)
	assert.Equal(t, 12, a.stockOf("P1"))
}

func TestAPI_Reportes(t *testing.T) {
	a := newAPI(t)
	a.createProduct("P1", 10)
	a.createProduct("P2", 1)

	status, body := a.do(http.MethodPost, "/api/sales", a.cashier, map[string]any{
		"payment_method": "EFECTIVO",
		"lines":          []map[string]any{{"product_code": "P1", "quantity": 4, "unit_price": "2.50"}},
	})
	require.Equal(t, http.StatusCreated, status, string(body))

	status, body = a.do(http.MethodGet, "/api/reports/top-products", a.admin, nil)
	require.Equal(t, http.StatusOK, status)
	var top []dto.TopProductDTO
	a.decode(body, &top)
	require.Len(t, top, 1)
	assert.Equal(t, 4, top[0].QuantitySold)

	status, body = a.do(http.MethodGet, "/api/reports/low-stock", a.admin, nil)
	require.Equal(t, http.StatusOK, status)
	var low []dto.LowStockDTO
	a.decode(body, &low)
	require.Len(t, low, 1)
	assert.Equal(t, "P2", low[0].ProductCode)

	status, body = a.do(http.MethodGet, fmt.Sprintf("/api/reports/monthly-revenue?year=%d", time.Now().Year()), a.admin, nil)
	require.Equal(t, http.StatusOK, status)
	var rev dto.MonthlyRevenueResponse
	a.decode(body, &rev)
	assert.Len(t, rev.Months, 12)
	assert.Equal(t, "10.00", rev.Total.StringFixed(2))

	status, body = a.do(http.MethodGet, "/api/reports/top-products?from=2024-13-01", a.admin, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", a.errorOf(body).Code)

	status, _ = a.do(http.MethodGet, "/api/reports/low-stock", a.cashier, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

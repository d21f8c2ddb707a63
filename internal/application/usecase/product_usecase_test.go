package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papyros/backoffice/internal/application/dto"
	"github.com/papyros/backoffice/internal/application/usecase"
	"github.com/papyros/backoffice/internal/domain"
	"github.com/papyros/backoffice/internal/infrastructure/memory"
	"github.com/papyros/backoffice/pkg/logger"
)

func newProductUC(t *testing.T) (*usecase.ProductUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return usecase.NewProductUseCase(store.Products(), logger.Nop()), store
}

func productReq(code, name string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Code:     code,
		Name:     name,
		Category: "Papelería",
		Cost:     decimal.RequireFromString("0.50"),
		Price:    decimal.RequireFromString("1.00"),
		MinStock: 2,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create / Update
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProduct_StockCeroYActivo(t *testing.T) {
	uc, _ := newProductUC(t)

	out, err := uc.Create(context.Background(), productReq(" CU-100 ", "Cuaderno"))
	require.NoError(t, err)
	assert.Equal(t, "CU-100", out.Code)
	assert.Equal(t, 0, out.Stock)
	assert.True(t, out.Active)
}

func TestCreateProduct_Errores(t *testing.T) {
	uc, _ := newProductUC(t)
	ctx := context.Background()
	_, err := uc.Create(ctx, productReq("CU-100", "Cuaderno"))
	require.NoError(t, err)

	_, err = uc.Create(ctx, productReq("CU-100", "Otro"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	bad := productReq("CU-200", "Cuaderno")
	bad.Price = decimal.RequireFromString("0.10")
	_, err = uc.Create(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	bad = productReq("   ", "Cuaderno")
	_, err = uc.Create(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateProduct_NoTocaStock(t *testing.T) {
	uc, _ := newProductUC(t)
	ctx := context.Background()
	_, err := uc.Create(ctx, productReq("CU-100", "Cuaderno"))
	require.NoError(t, err)

	name := "Cuaderno 100 hojas"
	price := decimal.RequireFromString("2.50")
	out, err := uc.Update(ctx, "CU-100", dto.UpdateProductRequest{Name: &name, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, name, out.Name)
	assert.Equal(t, "2.50", out.Price.StringFixed(2))
	assert.Equal(t, 0, out.Stock)

	cost := decimal.RequireFromString("9")
	_, err = uc.Update(ctx, "CU-100", dto.UpdateProductRequest{Cost: &cost})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	_, err = uc.Update(ctx, "NOPE", dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Activación y listados
// ──────────────────────────────────────────────────────────────────────────────

func TestDeactivate_OcultaDelListadoYDelPOS(t *testing.T) {
	uc, _ := newProductUC(t)
	ctx := context.Background()
	_, err := uc.Create(ctx, productReq("CU-100", "Cuaderno"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, productReq("LP-HB", "Lápiz HB"))
	require.NoError(t, err)

	require.NoError(t, uc.Deactivate(ctx, "CU-100"))

	list, err := uc.List(ctx, dto.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "LP-HB", list.Items[0].Code)
	assert.Equal(t, 20, list.Page.Limit)

	found, err := uc.SearchForSale(ctx, "cuaderno")
	require.NoError(t, err)
	assert.Empty(t, found)

	// Sigue consultable por código
	p, err := uc.GetByCode(ctx, "CU-100")
	require.NoError(t, err)
	assert.False(t, p.Active)

	require.NoError(t, uc.Reactivate(ctx, "CU-100"))
	found, err = uc.SearchForSale(ctx, "cuaderno")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	assert.ErrorIs(t, uc.Deactivate(ctx, "NOPE"), domain.ErrNotFound)
}

func TestSearchForSale_SinAcentosYVacio(t *testing.T) {
	uc, _ := newProductUC(t)
	ctx := context.Background()
	_, err := uc.Create(ctx, productReq("LP-HB", "Lápiz HB"))
	require.NoError(t, err)

	found, err := uc.SearchForSale(ctx, "lapiz")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "LP-HB", found[0].Code)

	found, err = uc.SearchForSale(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestList_StockBajo(t *testing.T) {
	uc, store := newProductUC(t)
	ctx := context.Background()
	_, err := uc.Create(ctx, productReq("A", "Borrador"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, productReq("B", "Regla"))
	require.NoError(t, err)
	require.NoError(t, store.Products().UpdateStock(ctx, "B", 10))

	list, err := uc.List(ctx, dto.ProductFilter{LowStock: true})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "A", list.Items[0].Code)
}

package receipt

import (
	"context"

	"github.com/papyros/backoffice/internal/application/dto"
)

// Business datos del negocio impresos en el encabezado del comprobante.
type Business struct {
	Name    string
	Tagline string
	TaxID   string
	Phone   string
}

// Generator genera la representación PDF de una venta (DIP).
type Generator interface {
	GenerateSaleReceipt(ctx context.Context, business Business, sale *dto.SaleResponse) ([]byte, error)
}

// SaleReader lectura de la venta ya enriquecida con nombres de producto.
type SaleReader interface {
	GetSale(ctx context.Context, id int64) (*dto.SaleResponse, error)
}

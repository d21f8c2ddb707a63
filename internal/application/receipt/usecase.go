package receipt

import (
	"context"
	"fmt"
)

// UseCase genera el comprobante de venta en PDF.
type UseCase struct {
	sales     SaleReader
	generator Generator
	business  Business
}

// NewUseCase construye el caso de uso.
func NewUseCase(sales SaleReader, generator Generator, business Business) *UseCase {
	return &UseCase{sales: sales, generator: generator, business: business}
}

// DownloadSaleReceipt devuelve los bytes del PDF y el nombre de archivo
// (comprobante-00000042.pdf). domain.ErrNotFound si la venta no existe.
func (uc *UseCase) DownloadSaleReceipt(ctx context.Context, saleID int64) (pdfBytes []byte, filename string, err error) {
	sale, err := uc.sales.GetSale(ctx, saleID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateSaleReceipt(ctx, uc.business, sale)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: generación fallida: %w", err)
	}
	return pdfBytes, Filename(sale.ID), nil
}

// Filename nombre del archivo del comprobante con el ID a 8 dígitos.
func Filename(saleID int64) string {
	return fmt.Sprintf("comprobante-%08d.pdf", saleID)
}

// Package pdf genera el comprobante de venta en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Negocio + NIT + Tel   │  COMPROBANTE DE VENTA       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  INFO: N° 00000042 | Fecha | Estado | Método de pago         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | Código | P.Unit | Subtotal         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL                                                       │
//	│  FOOTER: Gracias por su compra                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/papyros/backoffice/internal/application/dto"
	"github.com/papyros/backoffice/internal/application/receipt"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ receipt.Generator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa receipt.Generator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateSaleReceipt genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateSaleReceipt(
	_ context.Context,
	business receipt.Business,
	sale *dto.SaleResponse,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle(fmt.Sprintf("Comprobante de venta %08d", sale.ID), true).
		WithAuthor(business.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(business))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(infoRows(sale)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(sale.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(sale.Total))
	m.AddRows(footerRows()...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(b receipt.Business) core.Row {
	left := []core.Component{
		text.New(b.Name, props.Text{Style: fontstyle.Bold, Size: 18, Color: colorPrimary, Top: 1}),
	}
	top := 10.0
	for _, s := range []string{b.Tagline, prefixed("NIT: ", b.TaxID), prefixed("Tel: ", b.Phone)} {
		if s == "" {
			continue
		}
		left = append(left, text.New(s, props.Text{Size: 9, Top: top, Color: colorGray}))
		top += 5
	}
	return row.New(26).Add(
		col.New(7).Add(left...),
		col.New(5).Add(
			text.New("COMPROBANTE DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 13, Align: align.Right, Top: 2,
			}),
		),
	)
}

func infoRows(sale *dto.SaleResponse) []core.Row {
	return []core.Row{
		row.New(8).Add(
			col.New(4).Add(text.New(fmt.Sprintf("Comprobante No: %08d", sale.ID), props.Text{Style: fontstyle.Bold, Top: 2})),
			col.New(4).Add(text.New("Fecha: "+sale.CreatedAt.Format("02/01/2006 15:04"), props.Text{Align: align.Center, Top: 2})),
			col.New(4).Add(text.New("Estado: "+sale.Status, props.Text{Style: fontstyle.Bold, Align: align.Right, Top: 2})),
		),
		row.New(7).Add(
			col.New(12).Add(text.New("Método de pago: "+sale.PaymentMethod, props.Text{Style: fontstyle.Bold, Top: 1})),
		),
	}
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 4, align.Left),
		h("Código", 3, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 2, align.Right),
	)
}

func tableDetailRows(lines []dto.SaleLineResponse) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		name := l.ProductName
		if name == "" {
			name = "Producto"
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", l.Quantity), props.Text{Size: 9, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(name, props.Text{Size: 9, Top: 1})),
			col.New(3).Add(text.New(l.ProductCode, props.Text{Size: 9, Top: 1, Color: colorGray})),
			col.New(2).Add(text.New(formatMoney(l.UnitPrice), props.Text{Size: 9, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New(formatMoney(l.Subtotal), props.Text{Size: 9, Align: align.Right, Top: 1})),
		))
	}
	return result
}

func totalRow(total decimal.Decimal) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Right, Color: colorPrimary, Top: 3, Right: 2,
		})),
		col.New(3).Add(text.New(formatMoney(total), props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Right, Color: colorPrimary, Top: 3,
		})),
	)
}

func footerRows() []core.Row {
	return []core.Row{
		row.New(14).Add(col.New(12).Add(text.New("Gracias por su compra", props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 8,
		}))),
		row.New(6).Add(col.New(12).Add(text.New("Este documento es un comprobante de venta válido", props.Text{
			Size: 8, Align: align.Center, Color: colorGray, Top: 1,
		}))),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func prefixed(prefix, s string) string {
	if s == "" {
		return ""
	}
	return prefix + s
}

// formatMoney redondea a 2 decimales y agrupa miles con coma: 1234567.5 → "$1,234,567.50".
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + "$" + string(buf) + "." + frac
}

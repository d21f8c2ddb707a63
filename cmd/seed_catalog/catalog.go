package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/papyros/backoffice/internal/domain/entity"
)

// seedProduct fila del catálogo a sembrar.
type seedProduct struct {
	Code     string
	Name     string
	Category string
	Cost     decimal.Decimal
	Price    decimal.Decimal
	Stock    int
	MinStock int
}

var csvColumns = []string{"codigo", "nombre", "categoria", "costo", "precio", "stock", "stock_minimo"}

// decodeLatin1 envuelve r para leer texto ISO-8859-1 como UTF-8.
func decodeLatin1(r io.Reader) io.Reader {
	return transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
}

// charsetReader soporta los charsets que exportan las hojas de cálculo locales.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8":
		return input, nil
	case "iso-8859-1", "iso8859-1", "latin1":
		return decodeLatin1(input), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("charset no soportado: %s", charset)
	}
}

// parseCSV lee el catálogo con encabezado; el separador puede ser ',' o ';'.
func parseCSV(r io.Reader, sep rune) ([]seedProduct, error) {
	cr := csv.NewReader(r)
	cr.Comma = sep
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer encabezado: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, col := range csvColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("falta la columna %q", col)
		}
	}

	var out []seedProduct
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		get := func(col string) string { return strings.TrimSpace(rec[idx[col]]) }
		p, err := buildProduct(get("codigo"), get("nombre"), get("categoria"), get("costo"), get("precio"), get("stock"), get("stock_minimo"))
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// parseXML lee <catalogo><producto codigo=".." categoria=".."><nombre/>...</producto></catalogo>.
func parseXML(r io.Reader) ([]seedProduct, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("decodificar XML: %w", err)
	}
	root := doc.SelectElement("catalogo")
	if root == nil {
		return nil, errors.New("falta el elemento raíz <catalogo>")
	}
	text := func(e *etree.Element, tag string) string {
		if c := e.SelectElement(tag); c != nil {
			return strings.TrimSpace(c.Text())
		}
		return ""
	}

	var out []seedProduct
	for i, e := range root.SelectElements("producto") {
		p, err := buildProduct(
			strings.TrimSpace(e.SelectAttrValue("codigo", "")),
			text(e, "nombre"),
			strings.TrimSpace(e.SelectAttrValue("categoria", "")),
			text(e, "costo"), text(e, "precio"), text(e, "stock"), text(e, "stock_minimo"),
		)
		if err != nil {
			return nil, fmt.Errorf("producto %d: %w", i+1, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func buildProduct(code, name, category, cost, price, stock, minStock string) (seedProduct, error) {
	if code == "" || name == "" {
		return seedProduct{}, errors.New("código y nombre son obligatorios")
	}
	p := seedProduct{Code: code, Name: name, Category: category}
	var err error
	if p.Cost, err = decimal.NewFromString(strings.ReplaceAll(cost, ",", ".")); err != nil {
		return seedProduct{}, fmt.Errorf("%s: costo inválido %q", code, cost)
	}
	if p.Price, err = decimal.NewFromString(strings.ReplaceAll(price, ",", ".")); err != nil {
		return seedProduct{}, fmt.Errorf("%s: precio inválido %q", code, price)
	}
	if !entity.ValidatePricing(p.Cost, p.Price) {
		return seedProduct{}, fmt.Errorf("%s: precio debe ser >= costo y ambos >= 0", code)
	}
	if p.Stock, err = atoiDefault(stock); err != nil || p.Stock < 0 {
		return seedProduct{}, fmt.Errorf("%s: stock inválido %q", code, stock)
	}
	if p.MinStock, err = atoiDefault(minStock); err != nil || p.MinStock < 0 {
		return seedProduct{}, fmt.Errorf("%s: stock mínimo inválido %q", code, minStock)
	}
	return p, nil
}

func atoiDefault(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// writeSQL escribe un script idempotente. Cada producto nuevo con stock > 0 recibe su ENTRADA
// inicial en el kardex dentro de la misma sentencia, así stock y kardex quedan conciliados.
func writeSQL(w io.Writer, products []seedProduct, operationID string) error {
	var b strings.Builder
	b.WriteString("-- Catálogo inicial de productos\n")
	b.WriteString("-- Generado por cmd/seed_catalog\n\n")
	b.WriteString("BEGIN;\n\n")
	for _, p := range products {
		fmt.Fprintf(&b, "WITH ins AS (\n")
		fmt.Fprintf(&b, "    INSERT INTO products (code, name, category, cost, price, stock, min_stock)\n")
		fmt.Fprintf(&b, "    VALUES ('%s', '%s', '%s', %s, %s, %d, %d)\n",
			escapeSQL(p.Code), escapeSQL(p.Name), escapeSQL(p.Category),
			p.Cost.String(), p.Price.String(), p.Stock, p.MinStock)
		b.WriteString("    ON CONFLICT (code) DO NOTHING\n")
		b.WriteString("    RETURNING code, stock\n)\n")
		b.WriteString("INSERT INTO inventory_movements (operation_id, product_code, type, quantity, reason)\n")
		fmt.Fprintf(&b, "SELECT '%s', code, '%s', stock, 'AJUSTE: inventario inicial' FROM ins WHERE stock > 0;\n\n",
			operationID, entity.MovementTypeEntrada)
	}
	b.WriteString("COMMIT;\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

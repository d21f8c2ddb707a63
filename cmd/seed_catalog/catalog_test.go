package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestParseCSV_Latin1(t *testing.T) {
	src := "codigo;nombre;categoria;costo;precio;stock;stock_minimo\n" +
		"CU-100;Cuaderno cuadrícula;Cuadernos;1,20;2.00;30;5\n" +
		"LP-HB;Lápiz HB;Escritura;0.15;0.40;;\n"
	latin1, err := charmap.ISO8859_1.NewEncoder().String(src)
	require.NoError(t, err)

	products, err := parseCSV(decodeLatin1(strings.NewReader(latin1)), ';')
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "Cuaderno cuadrícula", products[0].Name)
	assert.Equal(t, "1.2", products[0].Cost.String())
	assert.Equal(t, 30, products[0].Stock)
	assert.Equal(t, "Lápiz HB", products[1].Name)
	assert.Equal(t, 0, products[1].Stock)
}

func TestParseCSV_Errores(t *testing.T) {
	cases := map[string]string{
		"columna faltante": "codigo;nombre\nA;B\n",
		"precio menor que costo": "codigo;nombre;categoria;costo;precio;stock;stock_minimo\n" +
			"A;Borrador;Útiles;2;1;0;0\n",
		"stock negativo": "codigo;nombre;categoria;costo;precio;stock;stock_minimo\n" +
			"A;Borrador;Útiles;1;2;-3;0\n",
		"sin nombre": "codigo;nombre;categoria;costo;precio;stock;stock_minimo\n" +
			"A;;Útiles;1;2;0;0\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseCSV(strings.NewReader(src), ';')
			assert.Error(t, err)
		})
	}
}

func TestParseXML_ISO88591(t *testing.T) {
	src := `<?xml version="1.0" encoding="ISO-8859-1"?>
<catalogo>
  <producto codigo="CU-100" categoria="Cuadernos">
    <nombre>Cuaderno cuadrícula</nombre>
    <costo>1.20</costo><precio>2.00</precio><stock>30</stock><stock_minimo>5</stock_minimo>
  </producto>
  <producto codigo="RG-30" categoria="Geometría">
    <nombre>Regla 30 cm</nombre>
    <costo>0.80</costo><precio>1.50</precio>
  </producto>
</catalogo>`
	latin1, err := charmap.ISO8859_1.NewEncoder().String(src)
	require.NoError(t, err)

	products, err := parseXML(strings.NewReader(latin1))
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Cuaderno cuadrícula", products[0].Name)
	assert.Equal(t, "Geometría", products[1].Category)
	assert.Equal(t, 5, products[0].MinStock)
}

func TestParseXML_SinRaiz(t *testing.T) {
	_, err := parseXML(strings.NewReader(`<productos/>`))
	assert.Error(t, err)
}

func TestWriteSQL_ConciliaKardex(t *testing.T) {
	products, err := parseCSV(strings.NewReader(
		"codigo,nombre,categoria,costo,precio,stock,stock_minimo\n"+
			"CU-100,Cuaderno O'Brien,Cuadernos,1.20,2.00,30,5\n"), ',')
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeSQL(&buf, products, "00000000-0000-0000-0000-000000000001"))
	sql := buf.String()

	assert.Contains(t, sql, "BEGIN;")
	assert.Contains(t, sql, "'Cuaderno O''Brien'")
	assert.Contains(t, sql, "ON CONFLICT (code) DO NOTHING")
	assert.Contains(t, sql, "'ENTRADA', stock, 'AJUSTE: inventario inicial' FROM ins WHERE stock > 0")
	assert.True(t, strings.HasSuffix(sql, "COMMIT;\n"))
}

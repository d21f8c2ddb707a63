// seed_catalog genera un script SQL para poblar el catálogo de productos a partir de un
// archivo CSV (codigo;nombre;categoria;costo;precio;stock;stock_minimo) o XML.
//
// Uso: go run ./cmd/seed_catalog [-encoding latin1] [-sep ';'] [-out archivo.sql] catalogo.csv|catalogo.xml
// Por defecto escribe internal/infrastructure/postgres/migrations/002_seed_catalog.sql
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

func main() {
	encoding := flag.String("encoding", "utf8", "codificación del CSV: utf8 | latin1")
	sep := flag.String("sep", ";", "separador del CSV")
	outFlag := flag.String("out", "", "ruta del script de salida")
	flag.Parse()

	inPath := "catalogo.csv"
	if flag.NArg() > 0 {
		inPath = flag.Arg(0)
	}
	f, err := os.Open(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir catálogo: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var products []seedProduct
	if strings.EqualFold(filepath.Ext(inPath), ".xml") {
		products, err = parseXML(f)
	} else {
		var r io.Reader = f
		if strings.EqualFold(*encoding, "latin1") {
			r = decodeLatin1(f)
		}
		products, err = parseCSV(r, []rune(*sep)[0])
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer catálogo: %v\n", err)
		os.Exit(1)
	}

	outPath := *outFlag
	if outPath == "" {
		outPath = filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "002_seed_catalog.sql")
	}
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, products, uuid.NewString()); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d productos\n", outPath, len(products))
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}

// token emite un JWT firmado con el secreto configurado (JWT_SECRET), para operadores y pruebas.
//
// Uso: go run ./cmd/token -sub caja-01 -role cajero [-exp 480]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/papyros/backoffice/pkg/config"
	"github.com/papyros/backoffice/pkg/jwt"
)

func main() {
	sub := flag.String("sub", "", "identificador del operador (subject)")
	role := flag.String("role", jwt.RoleCashier, "rol: admin | cajero")
	exp := flag.Int("exp", 0, "minutos de vigencia (0 = JWT_EXPIRATION_MINUTES)")
	flag.Parse()

	if *sub == "" {
		fmt.Fprintln(os.Stderr, "-sub es obligatorio")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	minutes := cfg.JWT.Expiration
	if *exp > 0 {
		minutes = *exp
	}

	tok, err := jwt.Generate(cfg.JWT.Secret, *sub, *role, cfg.JWT.Issuer, minutes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}

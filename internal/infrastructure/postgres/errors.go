package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE que el adaptador traduce a errores de dominio.
const (
	sqlStateUniqueViolation = "23505"
	sqlStateCheckViolation  = "23514"
)

func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation código duplicado, NIT o nombre de proveedor repetido.
func isUniqueViolation(err error) bool { return sqlState(err) == sqlStateUniqueViolation }

// isCheckViolation CHECK de la tabla (p. ej. stock >= 0).
func isCheckViolation(err error) bool { return sqlState(err) == sqlStateCheckViolation }

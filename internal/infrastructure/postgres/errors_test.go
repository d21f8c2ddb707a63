package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestSQLState_Envuelto(t *testing.T) {
	unique := fmt.Errorf("insert product: %w", &pgconn.PgError{Code: "23505"})
	check := &pgconn.PgError{Code: "23514"}

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isCheckViolation(unique))
	assert.True(t, isCheckViolation(check))
	assert.False(t, isUniqueViolation(errors.New("23505")))
	assert.Equal(t, "", sqlState(nil))
}

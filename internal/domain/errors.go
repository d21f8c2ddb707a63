package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrConflict              = errors.New("conflicto con el estado actual")
	ErrInvalidPrice          = errors.New("precio o costo inválido")
	ErrInvalidQuantity       = errors.New("la cantidad debe ser mayor a 0")
	ErrEmptyOrder            = errors.New("la operación debe tener al menos una línea")
	ErrZeroAdjustment        = errors.New("la cantidad de ajuste no puede ser 0")
	ErrNegativeStock         = errors.New("el movimiento deja el stock en negativo")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrProductUnavailable    = errors.New("producto no existe o está inactivo")
	ErrPurchaseOrderNotFound = errors.New("orden de compra no existe")
)

// InsufficientStockError indica que una línea pide más unidades de las disponibles.
// errors.Is(err, ErrInsufficientStock) es true.
type InsufficientStockError struct {
	Code      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: disponible %d, solicitado %d", e.Code, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// NegativeStockError lo devuelve el mutador de stock cuando stock+delta < 0.
type NegativeStockError struct {
	Code    string
	Current int
	Delta   int
}

func (e *NegativeStockError) Error() string {
	return fmt.Sprintf("stock negativo para %s: actual %d, delta %d", e.Code, e.Current, e.Delta)
}

func (e *NegativeStockError) Is(target error) bool { return target == ErrNegativeStock }

// ProductUnavailableError identifica el código que no existe o está inactivo.
type ProductUnavailableError struct {
	Code string
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("producto %s no existe o está inactivo", e.Code)
}

func (e *ProductUnavailableError) Is(target error) bool { return target == ErrProductUnavailable }

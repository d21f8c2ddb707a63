package http

import (
	"errors"
	"reflect"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/papyros/backoffice/internal/application/dto"
	"github.com/papyros/backoffice/internal/domain"
	"github.com/papyros/backoffice/pkg/logger"
)

var validate = validator.New()

func init() {
	// decimal.Decimal se valida como número (min, gt, required).
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// errInvalidBody cuerpo JSON ilegible.
var errInvalidBody = errors.New("cuerpo inválido")

// validationError campos que no pasan las reglas del validador (campo -> regla).
type validationError struct {
	fields map[string]string
}

func (e *validationError) Error() string { return "datos inválidos" }

// bindAndValidate parsea el body JSON y aplica los tags de validator.
func bindAndValidate(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return errInvalidBody
	}
	return validateStruct(req)
}

// bindQuery parsea la query string y la valida.
func bindQuery(c *fiber.Ctx, req interface{}) error {
	if err := c.QueryParser(req); err != nil {
		return &validationError{fields: map[string]string{"query": "invalid"}}
	}
	return validateStruct(req)
}

func validateStruct(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Namespace()] = fe.Tag()
	}
	return &validationError{fields: fields}
}

// paramID lee un parámetro de ruta entero positivo.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, &validationError{fields: map[string]string{name: "invalid"}}
	}
	return id, nil
}

// NewErrorHandler traduce los errores de dominio a dto.ErrorResponse con su código HTTP.
// Los 500 se registran con la causa; al cliente solo llega un mensaje genérico.
func NewErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := mapError(err)
		if status >= fiber.StatusInternalServerError {
			log.Ctx(c.UserContext()).Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("error interno")
		}
		return c.Status(status).JSON(body)
	}
}

func mapError(err error) (int, dto.ErrorResponse) {
	var (
		verr   *validationError
		insuf  *domain.InsufficientStockError
		neg    *domain.NegativeStockError
		unav   *domain.ProductUnavailableError
		fibErr *fiber.Error
	)
	switch {
	case errors.As(err, &verr):
		details := make(map[string]any, len(verr.fields))
		for k, v := range verr.fields {
			details[k] = v
		}
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: verr.Error(), Details: details}
	case errors.Is(err, errInvalidBody):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()}
	case errors.Is(err, domain.ErrEmptyOrder):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "EMPTY_ORDER", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidQuantity):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidPrice):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_PRICE", Message: err.Error()}
	case errors.Is(err, domain.ErrZeroAdjustment):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "ZERO_ADJUSTMENT", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrPurchaseOrderNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "PURCHASE_ORDER_NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.As(err, &unav):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{Code: "PRODUCT_UNAVAILABLE", Message: err.Error(),
			Details: map[string]any{"code": unav.Code}}
	case errors.Is(err, domain.ErrProductUnavailable):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{Code: "PRODUCT_UNAVAILABLE", Message: err.Error()}
	case errors.As(err, &insuf):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error(),
			Details: map[string]any{"code": insuf.Code, "available": insuf.Available, "requested": insuf.Requested}}
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()}
	case errors.As(err, &neg):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "NEGATIVE_STOCK", Message: err.Error(),
			Details: map[string]any{"code": neg.Code, "current": neg.Current, "delta": neg.Delta}}
	case errors.Is(err, domain.ErrNegativeStock):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "NEGATIVE_STOCK", Message: err.Error()}
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()}
	case errors.As(err, &fibErr):
		code := "HTTP_ERROR"
		if fibErr.Code == fiber.StatusNotFound {
			code = "NOT_FOUND"
		}
		return fibErr.Code, dto.ErrorResponse{Code: code, Message: fibErr.Message}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"}
	}
}

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
)

// LocalError guarda el error de una respuesta 5xx para el logger de peticiones.
const LocalError = "request_error"

// respondError traduce errores de dominio a status HTTP y cuerpo dto.ErrorResponse.
func respondError(c *fiber.Ctx, err error) error {
	status, body := errorResponse(err)
	if status >= fiber.StatusInternalServerError {
		c.Locals(LocalError, err)
	}
	return c.Status(status).JSON(body)
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	var verr *dto.ValidationError
	if errors.As(err, &verr) {
		details := make(map[string]any, len(verr.Fields))
		for k, v := range verr.Fields {
			details[k] = v
		}
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos", Details: details}
	}

	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		return fiber.StatusConflict, dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: stockErr.Error(),
			Details: map[string]any{
				"product_id": stockErr.ProductID,
				"requested":  stockErr.Requested,
				"available":  stockErr.Available,
			},
		}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()}
	case errors.Is(err, domain.ErrAlreadyOpen):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "ALREADY_OPEN", Message: err.Error()}
	case errors.Is(err, domain.ErrAlreadyClosed):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "ALREADY_CLOSED", Message: err.Error()}
	case errors.Is(err, domain.ErrAlreadyCanceled):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "ALREADY_CANCELED", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidTransition):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"}
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, dto.ErrorResponse{Code: "HTTP", Message: fe.Message}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
}

// ErrorHandler es el fiber.ErrorHandler de la app: mismas reglas que los handlers.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return respondError(c, err)
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

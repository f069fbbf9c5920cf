package http

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
)

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validación", &dto.ValidationError{Fields: map[string]string{"items": "required"}}, fiber.StatusBadRequest, "VALIDATION"},
		{"entrada inválida", domain.Invalid("cantidad %d", -1), fiber.StatusBadRequest, "VALIDATION"},
		{"no encontrado", domain.NotFound("venta", "x"), fiber.StatusNotFound, "NOT_FOUND"},
		{"stock", &domain.InsufficientStockError{ProductID: "p", Requested: 2, Available: 1}, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
		{"stock envuelto", fmt.Errorf("venta: %w", domain.ErrInsufficientStock), fiber.StatusConflict, "INSUFFICIENT_STOCK"},
		{"caja abierta", domain.ErrAlreadyOpen, fiber.StatusConflict, "ALREADY_OPEN"},
		{"caja cerrada", domain.ErrAlreadyClosed, fiber.StatusConflict, "ALREADY_CLOSED"},
		{"ya anulada", domain.ErrAlreadyCanceled, fiber.StatusConflict, "ALREADY_CANCELED"},
		{"transición", fmt.Errorf("%w: DELIVERED -> RECEIVED", domain.ErrInvalidTransition), fiber.StatusConflict, "INVALID_TRANSITION"},
		{"conflicto", domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
		{"prohibido", domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
		{"no autorizado", domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{"fiber", fiber.ErrMethodNotAllowed, fiber.StatusMethodNotAllowed, "HTTP"},
		{"desconocido", errors.New("pool cerrado"), fiber.StatusInternalServerError, "INTERNAL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := errorResponse(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

func TestErrorResponse_NoExponeErroresInternos(t *testing.T) {
	_, body := errorResponse(errors.New("dial tcp 10.0.0.1:5432: connection refused"))
	assert.NotContains(t, body.Message, "10.0.0.1")
}

func TestErrorResponse_DetallesDeStock(t *testing.T) {
	_, body := errorResponse(&domain.InsufficientStockError{ProductID: "p-1", Requested: 5, Available: 2})
	assert.Equal(t, "p-1", body.Details["product_id"])
	assert.Equal(t, 5, body.Details["requested"])
	assert.Equal(t, 2, body.Details["available"])
}

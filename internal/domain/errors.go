package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrItemNotFound      = fmt.Errorf("producto: %w", ErrNotFound)
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInvalidTransition = fmt.Errorf("transición de estado no permitida: %w", ErrConflict)
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrAlreadyOpen       = errors.New("el operador ya tiene una caja abierta")
	ErrAlreadyClosed     = errors.New("la caja ya está cerrada")
	ErrAlreadyCanceled   = errors.New("la operación ya fue anulada")
)

// InsufficientStockError detalla una salida rechazada: cantidad pedida vs disponible.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	name := e.ProductName
	if name == "" {
		name = e.ProductID
	}
	return fmt.Sprintf("%s: producto %s (solicitado %d, disponible %d)",
		ErrInsufficientStock.Error(), name, e.Requested, e.Available)
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// Invalid envuelve ErrInvalidInput con un mensaje legible.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// NotFound envuelve ErrNotFound indicando entidad e id.
func NotFound(entity, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, entity, id)
}

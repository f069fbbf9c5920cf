package inventory

import (
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// NextQuantity calcula el stock resultante de aplicar un movimiento (servicio de dominio).
//
//	IN:         actual + cantidad
//	OUT:        actual - cantidad, rechazado si actual < cantidad
//	ADJUSTMENT: cantidad (valor absoluto de la toma física)
func NextQuantity(current int, movementType string, quantity int) (int, error) {
	switch movementType {
	case entity.MovementTypeIN:
		if quantity <= 0 {
			return 0, domain.Invalid("la cantidad de una entrada debe ser positiva")
		}
		return current + quantity, nil
	case entity.MovementTypeOUT:
		if quantity <= 0 {
			return 0, domain.Invalid("la cantidad de una salida debe ser positiva")
		}
		if current < quantity {
			return 0, domain.ErrInsufficientStock
		}
		return current - quantity, nil
	case entity.MovementTypeADJUSTMENT:
		if quantity < 0 {
			return 0, domain.Invalid("el ajuste no puede dejar stock negativo")
		}
		return quantity, nil
	}
	return 0, domain.Invalid("tipo de movimiento desconocido %q", movementType)
}

// Replay reconstruye el stock partiendo de initial y aplicando los movimientos en orden cronológico.
// Falla si algún movimiento no es coherente con el saldo reconstruido hasta ese punto.
func Replay(initial int, movements []entity.StockMovement) (int, error) {
	qty := initial
	for _, m := range movements {
		if m.QuantityBefore != qty {
			return qty, fmt.Errorf("movimiento %s (seq %d): saldo previo %d, reconstruido %d",
				m.ID, m.Seq, m.QuantityBefore, qty)
		}
		next, err := NextQuantity(qty, m.Type, m.Quantity)
		if err != nil {
			return qty, fmt.Errorf("movimiento %s (seq %d): %w", m.ID, m.Seq, err)
		}
		if next != m.QuantityAfter {
			return qty, fmt.Errorf("movimiento %s (seq %d): saldo posterior %d, reconstruido %d",
				m.ID, m.Seq, m.QuantityAfter, next)
		}
		qty = next
	}
	return qty, nil
}

// SuggestedOrderQty devuelve cuánto pedir para llevar el stock a 1.5 veces el punto de reorden.
func SuggestedOrderQty(stock, minStock int) int {
	ideal := (minStock*3 + 1) / 2 // ceil(minStock * 1.5)
	if ideal <= stock {
		return 0
	}
	return ideal - stock
}

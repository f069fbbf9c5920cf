package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         = "IN"         // entrada
	MovementTypeOUT        = "OUT"        // salida
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste a cantidad absoluta (toma física)
)

// StockMovement es un hecho inmutable del kardex.
// Quantity es la magnitud para IN/OUT y la cantidad objetivo para ADJUSTMENT.
type StockMovement struct {
	ID             string
	Seq            int64 // orden total de aplicación
	ProductID      string
	Type           string
	Quantity       int
	QuantityBefore int
	QuantityAfter  int
	Reason         string
	CreatedBy      string
	CreatedAt      time.Time
}

// Delta devuelve el efecto con signo sobre el stock.
func (m *StockMovement) Delta() int {
	return m.QuantityAfter - m.QuantityBefore
}

// IsValidMovementType valida el tipo de movimiento.
func IsValidMovementType(t string) bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypeADJUSTMENT:
		return true
	}
	return false
}

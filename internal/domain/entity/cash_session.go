package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una sesión de caja.
const (
	CashSessionOpen   = "OPEN"
	CashSessionClosed = "CLOSED"
)

// Tipos de movimiento de efectivo.
const (
	CashMovementIN  = "IN"
	CashMovementOUT = "OUT"
)

// CashSession turno de caja de un operador. EndAmount lo declara el operador al cerrar.
type CashSession struct {
	ID          string
	OperatorID  string
	StartAmount decimal.Decimal
	EndAmount   *decimal.Decimal
	Status      string
	StartTime   time.Time
	EndTime     *time.Time
	Movements   []CashMovement
}

// IsOpen indica si la sesión admite movimientos.
func (s *CashSession) IsOpen() bool {
	return s.Status == CashSessionOpen
}

// CashMovement ingreso o egreso de efectivo durante la sesión.
type CashMovement struct {
	ID        string
	Seq       int64
	SessionID string
	Type      string
	Amount    decimal.Decimal
	Reason    string
	CreatedBy string
	CreatedAt time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta. COMPLETED -> CANCELED es la única transición.
const (
	SaleStatusCompleted = "COMPLETED"
	SaleStatusCanceled  = "CANCELED"
)

// Métodos de pago aceptados en caja.
const (
	PaymentCash     = "CASH"
	PaymentCard     = "CARD"
	PaymentTransfer = "TRANSFER"
	PaymentMixed    = "MIXED"
)

// Sale representa la cabecera de una venta de mostrador.
type Sale struct {
	ID            string
	TicketNumber  string
	ClientID      *string
	OperatorID    string
	PaymentMethod string
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Discount      decimal.Decimal
	Total         decimal.Decimal
	Status        string
	CanceledAt    *time.Time
	CanceledBy    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Lines         []SaleLine
}

// SaleLine es una línea de la venta; Position conserva el orden de captura.
type SaleLine struct {
	ID        string
	SaleID    string
	Position  int
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	TaxRate   decimal.Decimal
	LineTax   decimal.Decimal
	LineTotal decimal.Decimal
}

// IsValidPaymentMethod valida el método de pago.
func IsValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentMixed:
		return true
	}
	return false
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo con stock (repuesto, accesorio o equipo).
// Stock solo cambia a través del libro de movimientos (inventory.Ledger).
type Product struct {
	ID        string
	SKU       string
	Name      string
	Price     decimal.Decimal // precio de venta
	TaxRate   decimal.Decimal // porcentaje, ej. 16 = 16%
	Stock     int             // cantidad disponible, nunca negativa
	MinStock  int             // punto de reorden
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BelowMinStock indica si el producto está en o bajo su punto de reorden.
func (p *Product) BelowMinStock() bool {
	return p.Stock <= p.MinStock
}

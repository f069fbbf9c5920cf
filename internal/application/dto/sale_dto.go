package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// CreateSaleRequest body para POST /api/sales. Discount es un monto absoluto.
type CreateSaleRequest struct {
	ClientID      *string           `json:"client_id,omitempty" validate:"omitempty,min=1"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=CASH CARD TRANSFER MIXED"`
	Discount      decimal.Decimal   `json:"discount"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// SaleItemRequest línea de venta. UnitPrice vacío toma el precio de catálogo.
type SaleItemRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Quantity  int              `json:"quantity" validate:"gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// SaleListQuery filtros de GET /api/sales.
type SaleListQuery struct {
	OperatorID string     `query:"operator_id"`
	ClientID   string     `query:"client_id"`
	Status     string     `query:"status" validate:"omitempty,oneof=COMPLETED CANCELED"`
	From       *time.Time `query:"-"`
	To         *time.Time `query:"-"`
	PageRequest
}

// SaleResponse venta con sus líneas.
type SaleResponse struct {
	ID            string             `json:"id"`
	TicketNumber  string             `json:"ticket_number"`
	ClientID      *string            `json:"client_id,omitempty"`
	OperatorID    string             `json:"operator_id"`
	PaymentMethod string             `json:"payment_method"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Tax           decimal.Decimal    `json:"tax"`
	Discount      decimal.Decimal    `json:"discount"`
	Total         decimal.Decimal    `json:"total"`
	Status        string             `json:"status"`
	CanceledAt    *time.Time         `json:"canceled_at,omitempty"`
	CanceledBy    string             `json:"canceled_by,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	Lines         []SaleLineResponse `json:"lines"`
}

// SaleLineResponse línea de venta en respuestas.
type SaleLineResponse struct {
	Position  int             `json:"position"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	LineTax   decimal.Decimal `json:"line_tax"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// SaleToResponse mapea la entidad a la respuesta HTTP.
func SaleToResponse(s *entity.Sale) SaleResponse {
	lines := make([]SaleLineResponse, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, SaleLineResponse{
			Position:  l.Position,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			TaxRate:   l.TaxRate,
			LineTax:   l.LineTax,
			LineTotal: l.LineTotal,
		})
	}
	return SaleResponse{
		ID:            s.ID,
		TicketNumber:  s.TicketNumber,
		ClientID:      s.ClientID,
		OperatorID:    s.OperatorID,
		PaymentMethod: s.PaymentMethod,
		Subtotal:      s.Subtotal,
		Tax:           s.Tax,
		Discount:      s.Discount,
		Total:         s.Total,
		Status:        s.Status,
		CanceledAt:    s.CanceledAt,
		CanceledBy:    s.CanceledBy,
		CreatedAt:     s.CreatedAt,
		Lines:         lines,
	}
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
// Para ADJUSTMENT, Quantity es la cantidad contada (absoluta).
type RegisterMovementRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=IN OUT ADJUSTMENT"`
	Quantity  int    `json:"quantity" validate:"min=0"`
	Reason    string `json:"reason" validate:"max=500"`
}

// MovementListQuery filtros de GET /api/inventory/movements.
type MovementListQuery struct {
	ProductID string     `query:"product_id"`
	Type      string     `query:"type" validate:"omitempty,oneof=IN OUT ADJUSTMENT"`
	From      *time.Time `query:"-"`
	To        *time.Time `query:"-"`
	PageRequest
}

// StockMovementResponse movimiento del kardex.
type StockMovementResponse struct {
	ID             string    `json:"id"`
	Seq            int64     `json:"seq"`
	ProductID      string    `json:"product_id"`
	Type           string    `json:"type"`
	Quantity       int       `json:"quantity"`
	QuantityBefore int       `json:"quantity_before"`
	QuantityAfter  int       `json:"quantity_after"`
	Reason         string    `json:"reason,omitempty"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
}

// KardexResponse historial de un producto con su saldo actual.
type KardexResponse struct {
	ProductID    string                  `json:"product_id"`
	SKU          string                  `json:"sku"`
	ProductName  string                  `json:"product_name"`
	CurrentStock int                     `json:"current_stock"`
	Movements    []StockMovementResponse `json:"movements"`
	Page         PageResponse            `json:"page"`
}

// LowStockItemDTO producto en o bajo su punto de reorden con la cantidad sugerida de pedido.
type LowStockItemDTO struct {
	ProductID         string          `json:"product_id"`
	SKU               string          `json:"sku"`
	ProductName       string          `json:"product_name"`
	CurrentStock      int             `json:"current_stock"`
	MinStock          int             `json:"min_stock"`
	IdealStock        int             `json:"ideal_stock"`         // ceil(MinStock * 1.5)
	SuggestedOrderQty int             `json:"suggested_order_qty"` // IdealStock - CurrentStock
	UnitPrice         decimal.Decimal `json:"unit_price"`
	DeficitPct        decimal.Decimal `json:"deficit_pct"` // % bajo el punto de reorden
	Priority          int             `json:"priority"`    // 1 = más urgente
}

// MovementToResponse mapea la entidad a la respuesta HTTP.
func MovementToResponse(m *entity.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:             m.ID,
		Seq:            m.Seq,
		ProductID:      m.ProductID,
		Type:           m.Type,
		Quantity:       m.Quantity,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		Reason:         m.Reason,
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt,
	}
}

// MovementsToResponse mapea una lista de movimientos.
func MovementsToResponse(list []*entity.StockMovement) []StockMovementResponse {
	out := make([]StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, MovementToResponse(m))
	}
	return out
}

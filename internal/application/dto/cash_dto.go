package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// OpenCashSessionRequest body para POST /api/cash-register/open.
type OpenCashSessionRequest struct {
	StartAmount decimal.Decimal `json:"start_amount"`
}

// CloseCashSessionRequest body para PUT /api/cash-register/:id/close.
type CloseCashSessionRequest struct {
	EndAmount decimal.Decimal `json:"end_amount"`
}

// CashMovementRequest body para POST /api/cash-register/movements.
type CashMovementRequest struct {
	SessionID string          `json:"session_id" validate:"required"`
	Type      string          `json:"type" validate:"required,oneof=IN OUT"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason,omitempty" validate:"max=500"`
}

// CashSessionResponse sesión de caja con sus movimientos.
type CashSessionResponse struct {
	ID          string                 `json:"id"`
	OperatorID  string                 `json:"operator_id"`
	StartAmount decimal.Decimal        `json:"start_amount"`
	EndAmount   *decimal.Decimal       `json:"end_amount,omitempty"`
	Status      string                 `json:"status"`
	StartTime   time.Time              `json:"start_time"`
	EndTime     *time.Time             `json:"end_time,omitempty"`
	Movements   []CashMovementResponse `json:"movements"`
}

// CashMovementResponse movimiento de efectivo.
type CashMovementResponse struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason,omitempty"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}

// CashMovementToResponse mapea un movimiento de efectivo.
func CashMovementToResponse(m *entity.CashMovement) CashMovementResponse {
	return CashMovementResponse{
		ID:        m.ID,
		Type:      m.Type,
		Amount:    m.Amount,
		Reason:    m.Reason,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
	}
}

// CashSessionToResponse mapea la sesión.
func CashSessionToResponse(s *entity.CashSession) CashSessionResponse {
	movs := make([]CashMovementResponse, 0, len(s.Movements))
	for i := range s.Movements {
		movs = append(movs, CashMovementToResponse(&s.Movements[i]))
	}
	return CashSessionResponse{
		ID:          s.ID,
		OperatorID:  s.OperatorID,
		StartAmount: s.StartAmount,
		EndAmount:   s.EndAmount,
		Status:      s.Status,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		Movements:   movs,
	}
}

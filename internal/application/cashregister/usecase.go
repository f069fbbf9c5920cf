package cashregister

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/ports"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

const defaultHistoryLimit = 50

// CashRegisterUseCase gestiona las sesiones de caja por operador.
// El monto de cierre lo declara el operador; no se recalcula a partir de los movimientos.
type CashRegisterUseCase struct {
	txRunner repository.TxRunner
	store    repository.Store
	metrics  ports.BusinessMetrics
	log      *logger.Logger
	now      func() time.Time
}

// NewCashRegisterUseCase construye el caso de uso.
func NewCashRegisterUseCase(txRunner repository.TxRunner, store repository.Store, metrics ports.BusinessMetrics, log *logger.Logger) *CashRegisterUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &CashRegisterUseCase{
		txRunner: txRunner,
		store:    store,
		metrics:  metrics,
		log:      log.Component("cashregister"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Open abre la caja del operador. Falla con ErrAlreadyOpen si ya tiene una abierta; el índice
// único parcial del almacenamiento cubre el caso de dos aperturas simultáneas.
func (uc *CashRegisterUseCase) Open(ctx context.Context, operatorID string, in dto.OpenCashSessionRequest) (*dto.CashSessionResponse, error) {
	if strings.TrimSpace(operatorID) == "" {
		return nil, domain.Invalid("la caja requiere un operador")
	}
	if in.StartAmount.IsNegative() {
		return nil, domain.Invalid("el monto inicial no puede ser negativo")
	}

	session := &entity.CashSession{
		ID:          uuid.New().String(),
		OperatorID:  operatorID,
		StartAmount: in.StartAmount,
		Status:      entity.CashSessionOpen,
		StartTime:   uc.now(),
	}
	err := uc.txRunner.Run(ctx, func(tx repository.Store) error {
		current, err := tx.CashSessions().GetOpenByOperator(ctx, operatorID)
		if err != nil {
			return err
		}
		if current != nil {
			return domain.ErrAlreadyOpen
		}
		return tx.CashSessions().Create(ctx, session)
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.CashSessionOpened()
	uc.log.Info().
		Str("session_id", session.ID).
		Str("operator", operatorID).
		Str("start_amount", session.StartAmount.StringFixed(2)).
		Msg("caja abierta")

	resp := dto.CashSessionToResponse(session)
	return &resp, nil
}

// Close cierra la sesión con el monto declarado. Solo se cierra una vez.
func (uc *CashRegisterUseCase) Close(ctx context.Context, sessionID string, in dto.CloseCashSessionRequest) (*dto.CashSessionResponse, error) {
	if in.EndAmount.IsNegative() {
		return nil, domain.Invalid("el monto de cierre no puede ser negativo")
	}

	var out *entity.CashSession
	err := uc.txRunner.Run(ctx, func(tx repository.Store) error {
		session, err := lockSession(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		if !session.IsOpen() {
			return domain.ErrAlreadyClosed
		}
		now := uc.now()
		end := in.EndAmount
		session.EndAmount = &end
		session.EndTime = &now
		session.Status = entity.CashSessionClosed
		if err := tx.CashSessions().Close(ctx, session); err != nil {
			return err
		}
		out = session
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.CashSessionClosed()
	uc.log.Info().
		Str("session_id", out.ID).
		Str("operator", out.OperatorID).
		Str("end_amount", out.EndAmount.StringFixed(2)).
		Msg("caja cerrada")

	resp := dto.CashSessionToResponse(out)
	return &resp, nil
}

// RecordMovement agrega un ingreso o egreso de efectivo a una sesión abierta.
func (uc *CashRegisterUseCase) RecordMovement(ctx context.Context, actorID string, in dto.CashMovementRequest) (*dto.CashMovementResponse, error) {
	if strings.TrimSpace(actorID) == "" {
		return nil, domain.Invalid("el movimiento requiere un usuario responsable")
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.Type != entity.CashMovementIN && in.Type != entity.CashMovementOUT {
		return nil, domain.Invalid("tipo de movimiento de caja desconocido %q", in.Type)
	}
	if !in.Amount.IsPositive() {
		return nil, domain.Invalid("el monto debe ser positivo")
	}

	mov := &entity.CashMovement{
		ID:        uuid.New().String(),
		SessionID: in.SessionID,
		Type:      in.Type,
		Amount:    in.Amount,
		Reason:    in.Reason,
		CreatedBy: actorID,
		CreatedAt: uc.now(),
	}
	err := uc.txRunner.Run(ctx, func(tx repository.Store) error {
		session, err := lockSession(ctx, tx, in.SessionID)
		if err != nil {
			return err
		}
		if !session.IsOpen() {
			return domain.ErrAlreadyClosed
		}
		return tx.CashSessions().AddMovement(ctx, mov)
	})
	if err != nil {
		return nil, err
	}

	resp := dto.CashMovementToResponse(mov)
	return &resp, nil
}

// GetCurrentSession devuelve la sesión abierta del operador.
func (uc *CashRegisterUseCase) GetCurrentSession(ctx context.Context, operatorID string) (*dto.CashSessionResponse, error) {
	session, err := uc.store.CashSessions().GetOpenByOperator(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.NotFound("caja abierta del operador", operatorID)
	}
	resp := dto.CashSessionToResponse(session)
	return &resp, nil
}

// GetSessionHistory lista sesiones cerradas, de la más reciente a la más antigua.
// operatorID vacío incluye a todos los operadores.
func (uc *CashRegisterUseCase) GetSessionHistory(ctx context.Context, operatorID string, page dto.PageRequest) ([]dto.CashSessionResponse, error) {
	if err := dto.Validate(page); err != nil {
		return nil, err
	}
	page.DefaultPage(defaultHistoryLimit)
	list, err := uc.store.CashSessions().List(ctx, repository.CashSessionFilter{
		OperatorID: operatorID,
		Status:     entity.CashSessionClosed,
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.CashSessionResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.CashSessionToResponse(s))
	}
	return out, nil
}

func lockSession(ctx context.Context, tx repository.Store, id string) (*entity.CashSession, error) {
	session, err := tx.CashSessions().GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.NotFound("sesión de caja", id)
	}
	return session, nil
}

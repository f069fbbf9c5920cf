package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// CashSessionFilter filtros del historial de cajas.
type CashSessionFilter struct {
	OperatorID string
	Status     string
	Limit      int
	Offset     int
}

// CashSessionRepository define el puerto de persistencia de sesiones de caja.
type CashSessionRepository interface {
	// Create inserta una sesión OPEN. Si el operador ya tiene una abierta devuelve domain.ErrAlreadyOpen.
	Create(ctx context.Context, session *entity.CashSession) error
	GetByID(ctx context.Context, id string) (*entity.CashSession, error)
	GetForUpdate(ctx context.Context, id string) (*entity.CashSession, error)
	GetOpenByOperator(ctx context.Context, operatorID string) (*entity.CashSession, error)
	Close(ctx context.Context, session *entity.CashSession) error
	AddMovement(ctx context.Context, movement *entity.CashMovement) error
	List(ctx context.Context, f CashSessionFilter) ([]*entity.CashSession, error)
}

package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// SaleFilter filtros del listado de ventas.
type SaleFilter struct {
	From, To   *time.Time
	OperatorID string
	ClientID   string
	Status     string
	Limit      int
	Offset     int
}

// SaleRepository define el puerto de persistencia de ventas y sus líneas.
type SaleRepository interface {
	// Create inserta cabecera y líneas. Un ticket repetido devuelve domain.ErrConflict.
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// GetForUpdate bloquea la cabecera y trae las líneas.
	GetForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	MarkCanceled(ctx context.Context, id, actorID string, at time.Time) error
	List(ctx context.Context, f SaleFilter) ([]*entity.Sale, error)
}

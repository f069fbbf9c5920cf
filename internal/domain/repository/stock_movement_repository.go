package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// MovementFilter filtros del listado de movimientos.
type MovementFilter struct {
	ProductID string
	Type      string
	From, To  *time.Time
	Limit     int
	Offset    int
}

// StockMovementRepository define el puerto del kardex (solo inserción y lectura).
type StockMovementRepository interface {
	// Create inserta el movimiento y asigna Seq.
	Create(ctx context.Context, movement *entity.StockMovement) error
	// List devuelve movimientos del más reciente al más antiguo.
	List(ctx context.Context, f MovementFilter) ([]*entity.StockMovement, error)
}

package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// RepairFilter filtros del listado de reparaciones (incluye historial por equipo o cliente).
type RepairFilter struct {
	Status       string
	TechnicianID string
	ClientID     string
	DeviceID     string
	From, To     *time.Time
	Limit        int
	Offset       int
}

// RepairRepository define el puerto de persistencia de órdenes de reparación.
type RepairRepository interface {
	// Create inserta la cabecera. Un ticket repetido devuelve domain.ErrConflict.
	Create(ctx context.Context, repair *entity.RepairTicket) error
	// GetByID trae la orden con bitácora, repuestos, notas y servicios de software.
	GetByID(ctx context.Context, id string) (*entity.RepairTicket, error)
	// GetForUpdate bloquea la cabecera y trae los repuestos.
	GetForUpdate(ctx context.Context, id string) (*entity.RepairTicket, error)
	// Update persiste estado, costo final, entrega y anulación.
	Update(ctx context.Context, repair *entity.RepairTicket) error
	AddStatusLog(ctx context.Context, log *entity.RepairStatusLog) error
	AddItem(ctx context.Context, item *entity.RepairItem) error
	MarkItemsReturned(ctx context.Context, itemIDs []string, at time.Time) error
	AddNote(ctx context.Context, note *entity.RepairNote) error
	AddSoftwareAction(ctx context.Context, action *entity.RepairSoftwareAction) error
	List(ctx context.Context, f RepairFilter) ([]*entity.RepairTicket, error)
}

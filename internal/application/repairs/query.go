package repairs

import (
	"context"
	"strings"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

const defaultRepairLimit = 50

// GetRepair devuelve la orden con bitácora, repuestos, notas y servicios de software.
func (uc *RepairUseCase) GetRepair(ctx context.Context, id string) (*dto.RepairResponse, error) {
	repair, err := uc.store.Repairs().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if repair == nil {
		return nil, domain.NotFound("reparación", id)
	}
	resp := dto.RepairToResponse(repair)
	return &resp, nil
}

// ListRepairs lista órdenes de la más reciente a la más antigua. Filtrar por equipo o cliente
// da el historial de reparaciones de ese equipo o cliente.
func (uc *RepairUseCase) ListRepairs(ctx context.Context, q dto.RepairListQuery) ([]dto.RepairResponse, error) {
	if err := dto.Validate(q); err != nil {
		return nil, err
	}
	q.Status = strings.ToUpper(strings.TrimSpace(q.Status))
	if q.Status != "" && !entity.IsValidRepairStatus(q.Status) {
		return nil, domain.Invalid("estado de reparación desconocido %q", q.Status)
	}
	if q.From != nil && q.To != nil && q.To.Before(*q.From) {
		return nil, domain.Invalid("el rango de fechas está invertido")
	}
	q.DefaultPage(defaultRepairLimit)

	list, err := uc.store.Repairs().List(ctx, repository.RepairFilter{
		Status:       q.Status,
		TechnicianID: q.TechnicianID,
		ClientID:     q.ClientID,
		DeviceID:     q.DeviceID,
		From:         q.From,
		To:           q.To,
		Limit:        q.Limit,
		Offset:       q.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.RepairResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.RepairToResponse(r))
	}
	return out, nil
}

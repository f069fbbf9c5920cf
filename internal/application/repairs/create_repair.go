package repairs

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

func newID() string { return uuid.New().String() }

// CreateRepair registra la recepción del equipo: orden en RECEIVED y primera entrada de la bitácora.
func (uc *RepairUseCase) CreateRepair(ctx context.Context, actorID string, in dto.CreateRepairRequest) (*dto.RepairResponse, error) {
	if strings.TrimSpace(actorID) == "" {
		return nil, domain.Invalid("la orden requiere un usuario responsable")
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.ReportedIssue) == "" {
		return nil, domain.Invalid("reported_issue es obligatorio")
	}
	if in.EstimatedCost.IsNegative() {
		return nil, domain.Invalid("el costo estimado no puede ser negativo")
	}

	now := uc.now()
	repair := &entity.RepairTicket{
		ID:                newID(),
		TicketNumber:      uc.tickets.NextTicket(uc.opts.TicketPrefix),
		ClientID:          in.ClientID,
		DeviceID:          in.DeviceID,
		TechnicianID:      in.TechnicianID,
		Status:            entity.RepairStatusReceived,
		ReportedIssue:     strings.TrimSpace(in.ReportedIssue),
		DiagnosticInitial: in.DiagnosticInitial,
		EstimatedCost:     in.EstimatedCost,
		EstimatedDelivery: in.EstimatedDelivery,
		Warranty:          in.Warranty,
		CreatedBy:         actorID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	var out *entity.RepairTicket
	err := uc.txRunner.Run(ctx, func(tx repository.Store) error {
		if err := tx.Repairs().Create(ctx, repair); err != nil {
			return err
		}
		log := uc.statusLog(repair.ID, entity.RepairStatusReceived, actorID, "Orden de reparación creada", now)
		if err := tx.Repairs().AddStatusLog(ctx, log); err != nil {
			return err
		}
		var err error
		out, err = tx.Repairs().GetByID(ctx, repair.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.RepairStatusChanged(entity.RepairStatusReceived)
	uc.log.Info().
		Str("repair_id", out.ID).
		Str("ticket", out.TicketNumber).
		Str("device_id", out.DeviceID).
		Msg("orden de reparación creada")

	resp := dto.RepairToResponse(out)
	return &resp, nil
}

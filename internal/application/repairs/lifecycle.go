package repairs

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/inventory"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// lockRepair bloquea la orden dentro de tx; NotFound si no existe.
func lockRepair(ctx context.Context, tx repository.Store, id string) (*entity.RepairTicket, error) {
	repair, err := tx.Repairs().GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if repair == nil {
		return nil, domain.NotFound("reparación", id)
	}
	return repair, nil
}

// ChangeStatus cambia el estado y agrega la entrada de bitácora, sin efectos sobre el stock.
// DELIVERED y CANCELED se alcanzan solo con DeliverRepair y CancelRepair.
func (uc *RepairUseCase) ChangeStatus(ctx context.Context, repairID, actorID string, in dto.ChangeRepairStatusRequest) (*dto.RepairResponse, error) {
	if strings.TrimSpace(actorID) == "" {
		return nil, domain.Invalid("el cambio de estado requiere un usuario responsable")
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	status := strings.ToUpper(strings.TrimSpace(in.Status))
	if !entity.IsValidRepairStatus(status) {
		return nil, domain.Invalid("estado de reparación desconocido %q", in.Status)
	}
	switch status {
	case entity.RepairStatusDelivered:
		return nil, domain.Invalid("la entrega se registra con /deliver")
	case entity.RepairStatusCanceled:
		return nil, domain.Invalid("la anulación se registra con DELETE /repairs/:id")
	}

	var out *entity.RepairTicket
	var from string
	err := uc.txRunner.Run(ctx, func(tx repository.Store) error {
		repair, err := lockRepair(ctx, tx, repairID)
		if err != nil {
			return err
		}
		from = repair.Status
		if err := uc.checkTransition(from, status); err != nil {
			return err
		}
		now := uc.now()
		repair.Status = status
		repair.UpdatedAt = now
		if err := tx.Repairs().Update(ctx, repair); err != nil {
			return err
		}
		if err := tx.Repairs().AddStatusLog(ctx, uc.statusLog(repair.ID, status, actorID, in.Notes, now)); err != nil {
			return err
		}
		out, err = tx.Repairs().GetByID(ctx, repair.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.RepairStatusChanged(status)
	uc.log.Info().
		Str("repair_id", out.ID).
		Str("from", from).
		Str("to", status).
		Str("actor", actorID).
		Msg("estado de reparación actualizado")

	resp := dto.RepairToResponse(out)
	return &resp, nil
}

// DeliverRepair fija el costo final, marca DELIVERED y registra la entrega en la bitácora.
func (uc *RepairUseCase) DeliverRepair(ctx context.Context, repairID, actorID string, in dto.DeliverRepairRequest) (*dto.RepairResponse, error) {
	if strings.TrimSpace(actorID) == "" {
		return nil, domain.Invalid("la entrega requiere un usuario responsable")
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.FinalCost.IsNegative() {
		return nil, domain.Invalid("el costo final no puede ser negativo")
	}

	var out *entity.RepairTicket
	err := uc.txRunner.Run(ctx, func(tx repository.Store) error {
		repair, err := lockRepair(ctx, tx, repairID)
		if err != nil {
			return err
		}
		if err := uc.checkTransition(repair.Status, entity.RepairStatusDelivered); err != nil {
			return err
		}
		now := uc.now()
		finalCost := in.FinalCost
		repair.FinalCost = &finalCost
		repair.Status = entity.RepairStatusDelivered
		repair.DeliveredAt = &now
		if in.SignaturePhoto != "" {
			repair.SignaturePhoto = in.SignaturePhoto
		}
		repair.UpdatedAt = now
		if err := tx.Repairs().Update(ctx, repair); err != nil {
			return err
		}
		notes := in.Notes
		if notes == "" {
			notes = "Equipo entregado al cliente"
		}
		if err := tx.Repairs().AddStatusLog(ctx, uc.statusLog(repair.ID, entity.RepairStatusDelivered, actorID, notes, now)); err != nil {
			return err
		}
		out, err = tx.Repairs().GetByID(ctx, repair.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.RepairStatusChanged(entity.RepairStatusDelivered)
	uc.log.Info().
		Str("repair_id", out.ID).
		Str("ticket", out.TicketNumber).
		Str("final_cost", in.FinalCost.StringFixed(2)).
		Msg("reparación entregada")

	resp := dto.RepairToResponse(out)
	return &resp, nil
}

// CancelRepair devuelve al inventario cada repuesto consumido que no haya sido devuelto antes,
// marca la orden CANCELED y registra la anulación. Una orden entregada no se puede anular.
func (uc *RepairUseCase) CancelRepair(ctx context.Context, repairID, actorID, reason string) (*dto.RepairResponse, error) {
	if strings.TrimSpace(actorID) == "" {
		return nil, domain.Invalid("la anulación requiere un usuario responsable")
	}

	var out *entity.RepairTicket
	var movements []*entity.StockMovement
	err := uc.txRunner.Run(ctx, func(tx repository.Store) error {
		repair, err := lockRepair(ctx, tx, repairID)
		if err != nil {
			return err
		}
		switch repair.Status {
		case entity.RepairStatusCanceled:
			return domain.ErrAlreadyCanceled
		case entity.RepairStatusDelivered:
			return fmt.Errorf("%w: la orden %s ya fue entregada", domain.ErrInvalidTransition, repair.TicketNumber)
		}

		pending := make([]entity.RepairItem, 0, len(repair.Items))
		ids := make([]string, 0, len(repair.Items))
		for _, it := range repair.Items {
			if it.ReturnedAt == nil {
				pending = append(pending, it)
				ids = append(ids, it.ProductID)
			}
		}
		if _, err := uc.ledger.LockProducts(ctx, tx, ids); err != nil {
			return err
		}

		movReason := "Anulación reparación " + repair.TicketNumber
		returned := make([]string, 0, len(pending))
		for _, it := range pending {
			mov, err := uc.ledger.ApplyInTx(ctx, tx, inventory.MovementInput{
				ProductID: it.ProductID,
				Type:      entity.MovementTypeIN,
				Quantity:  it.Quantity,
				Reason:    movReason,
				ActorID:   actorID,
			})
			if err != nil {
				return err
			}
			movements = append(movements, mov)
			returned = append(returned, it.ID)
		}

		now := uc.now()
		if len(returned) > 0 {
			if err := tx.Repairs().MarkItemsReturned(ctx, returned, now); err != nil {
				return err
			}
		}
		repair.Status = entity.RepairStatusCanceled
		repair.CanceledAt = &now
		repair.UpdatedAt = now
		if err := tx.Repairs().Update(ctx, repair); err != nil {
			return err
		}
		notes := strings.TrimSpace(reason)
		if notes == "" {
			notes = "Orden anulada"
		}
		if err := tx.Repairs().AddStatusLog(ctx, uc.statusLog(repair.ID, entity.RepairStatusCanceled, actorID, notes, now)); err != nil {
			return err
		}
		out, err = tx.Repairs().GetByID(ctx, repair.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.ledger.Published(movements...)
	uc.metrics.RepairStatusChanged(entity.RepairStatusCanceled)
	uc.log.Info().
		Str("repair_id", out.ID).
		Str("ticket", out.TicketNumber).
		Int("parts_returned", len(movements)).
		Msg("reparación anulada")

	resp := dto.RepairToResponse(out)
	return &resp, nil
}

// UpdateRepair edita los datos de trabajo de una orden abierta: técnico, diagnósticos,
// costo estimado, fecha prometida y garantía. No cambia el estado ni toca el stock.
func (uc *RepairUseCase) UpdateRepair(ctx context.Context, repairID, actorID string, in dto.UpdateRepairRequest) (*dto.RepairResponse, error) {
	if strings.TrimSpace(actorID) == "" {
		return nil, domain.Invalid("la edición requiere un usuario responsable")
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.TechnicianID == nil && in.DiagnosticInitial == nil && in.DiagnosticFinal == nil &&
		in.EstimatedCost == nil && in.EstimatedDelivery == nil && in.Warranty == nil {
		return nil, domain.Invalid("no hay campos para actualizar")
	}
	if in.EstimatedCost != nil && in.EstimatedCost.IsNegative() {
		return nil, domain.Invalid("el costo estimado no puede ser negativo")
	}

	var out *entity.RepairTicket
	err := uc.txRunner.Run(ctx, func(tx repository.Store) error {
		repair, err := lockRepair(ctx, tx, repairID)
		if err != nil {
			return err
		}
		if entity.IsTerminalRepairStatus(repair.Status) {
			return fmt.Errorf("%w: la orden está %s", domain.ErrInvalidTransition, repair.Status)
		}
		if in.TechnicianID != nil {
			repair.TechnicianID = in.TechnicianID
		}
		if in.DiagnosticInitial != nil {
			repair.DiagnosticInitial = *in.DiagnosticInitial
		}
		if in.DiagnosticFinal != nil {
			repair.DiagnosticFinal = *in.DiagnosticFinal
		}
		if in.EstimatedCost != nil {
			repair.EstimatedCost = *in.EstimatedCost
		}
		if in.EstimatedDelivery != nil {
			repair.EstimatedDelivery = in.EstimatedDelivery
		}
		if in.Warranty != nil {
			repair.Warranty = *in.Warranty
		}
		repair.UpdatedAt = uc.now()
		if err := tx.Repairs().Update(ctx, repair); err != nil {
			return err
		}
		out, err = tx.Repairs().GetByID(ctx, repair.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("repair_id", out.ID).
		Str("ticket", out.TicketNumber).
		Str("actor", actorID).
		Msg("orden de reparación actualizada")

	resp := dto.RepairToResponse(out)
	return &resp, nil
}

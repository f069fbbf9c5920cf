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

// AddRepairItem registra un repuesto usado y su salida de inventario en la misma transacción.
// Sin stock suficiente no queda ni la línea ni el movimiento.
func (uc *RepairUseCase) AddRepairItem(ctx context.Context, repairID, actorID string, in dto.AddRepairItemRequest) (*dto.RepairItemDTO, error) {
	if strings.TrimSpace(actorID) == "" {
		return nil, domain.Invalid("el consumo de repuestos requiere un usuario responsable")
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.Quantity <= 0 {
		return nil, domain.Invalid("la cantidad debe ser positiva")
	}
	if in.Cost.IsNegative() {
		return nil, domain.Invalid("el costo no puede ser negativo")
	}

	var item *entity.RepairItem
	var mov *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(tx repository.Store) error {
		repair, err := lockRepair(ctx, tx, repairID)
		if err != nil {
			return err
		}
		if repair.IsTerminal() {
			return fmt.Errorf("%w: la orden %s está %s", domain.ErrConflict, repair.TicketNumber, repair.Status)
		}

		mov, err = uc.ledger.ApplyInTx(ctx, tx, inventory.MovementInput{
			ProductID: in.ProductID,
			Type:      entity.MovementTypeOUT,
			Quantity:  in.Quantity,
			Reason:    "Usado en reparación " + repair.TicketNumber,
			ActorID:   actorID,
		})
		if err != nil {
			return err
		}

		item = &entity.RepairItem{
			ID:        newID(),
			RepairID:  repair.ID,
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			Cost:      in.Cost,
			Warranty:  in.Warranty,
			CreatedAt: uc.now(),
		}
		return tx.Repairs().AddItem(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	uc.ledger.Published(mov)
	uc.log.Info().
		Str("repair_id", repairID).
		Str("product_id", item.ProductID).
		Int("quantity", item.Quantity).
		Msg("repuesto agregado a reparación")

	resp := dto.RepairItemToDTO(item)
	return &resp, nil
}

// AddSoftwareAction agrega un servicio de software a la orden.
func (uc *RepairUseCase) AddSoftwareAction(ctx context.Context, repairID string, in dto.AddSoftwareActionRequest) (*dto.RepairSoftwareActionDTO, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.Cost.IsNegative() {
		return nil, domain.Invalid("el costo no puede ser negativo")
	}

	action := &entity.RepairSoftwareAction{
		ID:                 newID(),
		RepairID:           repairID,
		ServiceType:        strings.TrimSpace(in.ServiceType),
		Cost:               in.Cost,
		Notes:              in.Notes,
		LegalAuthorization: in.LegalAuthorization,
		CreatedAt:          uc.now(),
	}
	err := uc.txRunner.Run(ctx, func(tx repository.Store) error {
		if _, err := lockRepair(ctx, tx, repairID); err != nil {
			return err
		}
		return tx.Repairs().AddSoftwareAction(ctx, action)
	})
	if err != nil {
		return nil, err
	}
	resp := dto.SoftwareActionToDTO(action)
	return &resp, nil
}

// AddNote agrega una nota; IsInternal la oculta al cliente.
func (uc *RepairUseCase) AddNote(ctx context.Context, repairID, actorID string, in dto.AddRepairNoteRequest) (*dto.RepairNoteDTO, error) {
	if strings.TrimSpace(actorID) == "" {
		return nil, domain.Invalid("la nota requiere un autor")
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, domain.Invalid("la nota no puede estar vacía")
	}

	note := &entity.RepairNote{
		ID:         newID(),
		RepairID:   repairID,
		Content:    content,
		IsInternal: in.IsInternal,
		CreatedBy:  actorID,
		CreatedAt:  uc.now(),
	}
	err := uc.txRunner.Run(ctx, func(tx repository.Store) error {
		if _, err := lockRepair(ctx, tx, repairID); err != nil {
			return err
		}
		return tx.Repairs().AddNote(ctx, note)
	})
	if err != nil {
		return nil, err
	}
	resp := dto.RepairNoteToDTO(note)
	return &resp, nil
}

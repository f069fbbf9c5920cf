package sales

import (
	"context"
	"strings"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/inventory"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// CancelSale anula una venta COMPLETED: devuelve al inventario exactamente lo que salió por cada
// línea (movimientos IN) y marca la venta CANCELED, todo en una transacción.
func (uc *SalesUseCase) CancelSale(ctx context.Context, saleID, actorID string) (*dto.SaleResponse, error) {
	if strings.TrimSpace(actorID) == "" {
		return nil, domain.Invalid("la anulación requiere un usuario responsable")
	}

	var sale *entity.Sale
	var movements []*entity.StockMovement
	err := uc.txRunner.Run(ctx, func(tx repository.Store) error {
		var err error
		sale, err = tx.Sales().GetForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.NotFound("venta", saleID)
		}
		if sale.Status == entity.SaleStatusCanceled {
			return domain.ErrAlreadyCanceled
		}

		ids := make([]string, 0, len(sale.Lines))
		for _, l := range sale.Lines {
			ids = append(ids, l.ProductID)
		}
		if _, err := uc.ledger.LockProducts(ctx, tx, ids); err != nil {
			return err
		}

		reason := "Anulación venta " + sale.TicketNumber
		for _, l := range sale.Lines {
			mov, err := uc.ledger.ApplyInTx(ctx, tx, inventory.MovementInput{
				ProductID: l.ProductID,
				Type:      entity.MovementTypeIN,
				Quantity:  l.Quantity,
				Reason:    reason,
				ActorID:   actorID,
			})
			if err != nil {
				return err
			}
			movements = append(movements, mov)
		}

		now := uc.now()
		if err := tx.Sales().MarkCanceled(ctx, sale.ID, actorID, now); err != nil {
			return err
		}
		sale.Status = entity.SaleStatusCanceled
		sale.CanceledAt = &now
		sale.CanceledBy = actorID
		sale.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.ledger.Published(movements...)
	uc.metrics.SaleCanceled()
	uc.log.Info().
		Str("sale_id", sale.ID).
		Str("ticket", sale.TicketNumber).
		Str("actor", actorID).
		Msg("venta anulada")

	resp := dto.SaleToResponse(sale)
	return &resp, nil
}

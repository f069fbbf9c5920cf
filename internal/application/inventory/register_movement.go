package inventory

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

const (
	defaultMovementLimit = 100
	maxMovementLimit     = 500
)

// RegisterMovement registra un movimiento manual (entrada de mercancía, merma, toma física)
// en su propia transacción: Commit si todo sale bien, Rollback si algo falla.
func (l *Ledger) RegisterMovement(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	var mov *entity.StockMovement
	err := l.txRunner.Run(ctx, func(tx repository.Store) error {
		var err error
		mov, err = l.ApplyInTx(ctx, tx, in)
		return err
	})
	if err != nil {
		return nil, err
	}

	l.Published(mov)
	l.log.Info().
		Str("product_id", mov.ProductID).
		Str("type", mov.Type).
		Int("quantity", mov.Quantity).
		Int("stock", mov.QuantityAfter).
		Str("actor", mov.CreatedBy).
		Msg("movimiento de inventario registrado")
	return mov, nil
}

// GetMovementHistory devuelve el kardex de un producto, del movimiento más reciente al más antiguo.
func (l *Ledger) GetMovementHistory(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	product, err := l.store.Products().GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("producto", productID)
	}
	return l.ListMovements(ctx, repository.MovementFilter{
		ProductID: productID,
		Limit:     limit,
		Offset:    offset,
	})
}

// ListMovements lista movimientos filtrados; por defecto los últimos 100.
func (l *Ledger) ListMovements(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	if f.Type != "" && !entity.IsValidMovementType(f.Type) {
		return nil, domain.Invalid("tipo de movimiento desconocido %q", f.Type)
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return nil, domain.Invalid("el rango de fechas está invertido")
	}
	if f.Limit <= 0 {
		f.Limit = defaultMovementLimit
	}
	if f.Limit > maxMovementLimit {
		f.Limit = maxMovementLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	movs, err := l.store.Movements().List(ctx, f)
	if err != nil {
		return nil, err
	}
	if movs == nil {
		movs = []*entity.StockMovement{}
	}
	return movs, nil
}

package repairs

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/application/inventory"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// StockLedger integra reparaciones con inventario (consumo y devolución de repuestos).
// Se invoca siempre con la transacción del caller.
type StockLedger interface {
	LockProducts(ctx context.Context, tx repository.Store, ids []string) (map[string]*entity.Product, error)
	ApplyInTx(ctx context.Context, tx repository.Store, in inventory.MovementInput) (*entity.StockMovement, error)
	Published(movements ...*entity.StockMovement)
}

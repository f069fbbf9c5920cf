package inventory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Taller-api/internal/application/ports"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Taller-api/internal/domain/inventory"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// Ledger es el único punto que modifica el stock de un producto.
// Cada cambio queda como un movimiento del kardex dentro de la misma transacción.
type Ledger struct {
	txRunner repository.TxRunner
	store    repository.Store
	metrics  ports.BusinessMetrics
	log      *logger.Logger
	now      func() time.Time
}

// NewLedger construye el libro de inventario.
func NewLedger(txRunner repository.TxRunner, store repository.Store, metrics ports.BusinessMetrics, log *logger.Logger) *Ledger {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &Ledger{
		txRunner: txRunner,
		store:    store,
		metrics:  metrics,
		log:      log.Component("inventory"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// MovementInput datos de un movimiento. ActorID es obligatorio.
type MovementInput struct {
	ProductID string
	Type      string
	Quantity  int
	Reason    string
	ActorID   string
}

// ApplyInTx aplica un movimiento usando los repositorios de la transacción tx.
// Bloquea la fila del producto (SELECT FOR UPDATE), calcula el nuevo saldo, lo persiste
// y agrega el movimiento al kardex. Si retorna error el llamador debe abortar la transacción.
func (l *Ledger) ApplyInTx(ctx context.Context, tx repository.Store, in MovementInput) (*entity.StockMovement, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, domain.Invalid("product_id es obligatorio")
	}
	if strings.TrimSpace(in.ActorID) == "" {
		return nil, domain.Invalid("el movimiento requiere un usuario responsable")
	}
	if !entity.IsValidMovementType(in.Type) {
		return nil, domain.Invalid("tipo de movimiento desconocido %q", in.Type)
	}

	product, err := tx.Products().GetForUpdate(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("producto", in.ProductID)
	}

	next, err := domaininv.NextQuantity(product.Stock, in.Type, in.Quantity)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			return nil, &domain.InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   in.Quantity,
				Available:   product.Stock,
			}
		}
		return nil, err
	}

	if err := tx.Products().UpdateStock(ctx, product.ID, next); err != nil {
		return nil, err
	}

	mov := &entity.StockMovement{
		ID:             uuid.New().String(),
		ProductID:      product.ID,
		Type:           in.Type,
		Quantity:       in.Quantity,
		QuantityBefore: product.Stock,
		QuantityAfter:  next,
		Reason:         in.Reason,
		CreatedBy:      in.ActorID,
		CreatedAt:      l.now(),
	}
	if err := tx.Movements().Create(ctx, mov); err != nil {
		return nil, err
	}
	product.Stock = next
	return mov, nil
}

// LockProducts bloquea los productos indicados en orden ascendente de id, sin repetir.
// El orden fijo evita interbloqueos entre transacciones que tocan los mismos productos.
// Los ids inexistentes no aparecen en el mapa resultante.
func (l *Ledger) LockProducts(ctx context.Context, tx repository.Store, ids []string) (map[string]*entity.Product, error) {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	sort.Strings(unique)

	locked := make(map[string]*entity.Product, len(unique))
	for _, id := range unique {
		p, err := tx.Products().GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if p != nil {
			locked[id] = p
		}
	}
	return locked, nil
}

// Published registra en métricas los movimientos ya confirmados.
func (l *Ledger) Published(movements ...*entity.StockMovement) {
	for _, m := range movements {
		if m == nil {
			continue
		}
		l.metrics.MovementApplied(m.Type, m.Quantity)
	}
}

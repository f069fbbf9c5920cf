package sales

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/application/inventory"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// StockLedger integra ventas con inventario.
// ApplyInTx ejecuta el movimiento con los repositorios del caller (misma transacción);
// si retorna error (ej: stock insuficiente) el caller debe hacer rollback.
type StockLedger interface {
	LockProducts(ctx context.Context, tx repository.Store, ids []string) (map[string]*entity.Product, error)
	ApplyInTx(ctx context.Context, tx repository.Store, in inventory.MovementInput) (*entity.StockMovement, error)
	Published(movements ...*entity.StockMovement)
}

// ReceiptLine línea del comprobante con los datos de catálogo.
type ReceiptLine struct {
	entity.SaleLine
	SKU         string
	ProductName string
}

// ReceiptPDFGenerator genera el comprobante imprimible de una venta.
type ReceiptPDFGenerator interface {
	GenerateSaleReceipt(ctx context.Context, sale *entity.Sale, lines []ReceiptLine) ([]byte, error)
}

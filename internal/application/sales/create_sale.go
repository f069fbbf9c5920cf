package sales

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/inventory"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// CreateSale crea la venta, registra una salida de inventario por cada línea y guarda cabecera y
// líneas en una sola transacción. Cualquier error deshace todo: no queda stock descontado.
func (uc *SalesUseCase) CreateSale(ctx context.Context, operatorID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if strings.TrimSpace(operatorID) == "" {
		return nil, domain.Invalid("la venta requiere un operador")
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if !entity.IsValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.Invalid("método de pago desconocido %q", in.PaymentMethod)
	}
	if in.Discount.IsNegative() {
		return nil, domain.Invalid("el descuento no puede ser negativo")
	}
	productIDs := make([]string, 0, len(in.Items))
	for i, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, domain.Invalid("línea %d: la cantidad debe ser positiva", i+1)
		}
		if item.UnitPrice != nil && item.UnitPrice.IsNegative() {
			return nil, domain.Invalid("línea %d: el precio no puede ser negativo", i+1)
		}
		productIDs = append(productIDs, item.ProductID)
	}

	ticket := uc.tickets.NextTicket(uc.prefix)
	reason := "Venta " + ticket
	var sale *entity.Sale
	var movements []*entity.StockMovement

	err := uc.txRunner.Run(ctx, func(tx repository.Store) error {
		// 1) Bloquear productos en orden fijo antes de cualquier verificación
		locked, err := uc.ledger.LockProducts(ctx, tx, productIDs)
		if err != nil {
			return err
		}

		// 2) Verificar existencia y disponibilidad en el orden de captura (demanda acumulada por producto)
		demand := make(map[string]int, len(locked))
		for _, item := range in.Items {
			product, ok := locked[item.ProductID]
			if !ok {
				return fmt.Errorf("%w: %s", domain.ErrItemNotFound, item.ProductID)
			}
			demand[item.ProductID] += item.Quantity
			if product.Stock < demand[item.ProductID] {
				return &domain.InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Requested:   demand[item.ProductID],
					Available:   product.Stock,
				}
			}
		}

		// 3) Precios, impuestos y salida de inventario por línea
		now := uc.now()
		saleID := uuid.New().String()
		lines := make([]entity.SaleLine, 0, len(in.Items))
		subtotal, taxTotal := decimal.Zero, decimal.Zero
		for i, item := range in.Items {
			product := locked[item.ProductID]
			unitPrice := product.Price
			if item.UnitPrice != nil {
				unitPrice = *item.UnitPrice
			}
			lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			lineTax := lineTotal.Mul(product.TaxRate).Div(hundred).Round(2)

			mov, err := uc.ledger.ApplyInTx(ctx, tx, inventory.MovementInput{
				ProductID: item.ProductID,
				Type:      entity.MovementTypeOUT,
				Quantity:  item.Quantity,
				Reason:    reason,
				ActorID:   operatorID,
			})
			if err != nil {
				return err
			}
			movements = append(movements, mov)

			lines = append(lines, entity.SaleLine{
				ID:        uuid.New().String(),
				SaleID:    saleID,
				Position:  i + 1,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: unitPrice,
				TaxRate:   product.TaxRate,
				LineTax:   lineTax,
				LineTotal: lineTotal,
			})
			subtotal = subtotal.Add(lineTotal)
			taxTotal = taxTotal.Add(lineTax)
		}

		// 4) Totales; el descuento no puede dejar el total negativo
		total := subtotal.Add(taxTotal).Sub(in.Discount)
		if total.IsNegative() {
			return domain.Invalid("el descuento %s supera el total de la venta %s",
				in.Discount.StringFixed(2), subtotal.Add(taxTotal).StringFixed(2))
		}

		// 5) Persistir cabecera y líneas
		sale = &entity.Sale{
			ID:            saleID,
			TicketNumber:  ticket,
			ClientID:      in.ClientID,
			OperatorID:    operatorID,
			PaymentMethod: in.PaymentMethod,
			Subtotal:      subtotal,
			Tax:           taxTotal,
			Discount:      in.Discount,
			Total:         total,
			Status:        entity.SaleStatusCompleted,
			CreatedAt:     now,
			UpdatedAt:     now,
			Lines:         lines,
		}
		return tx.Sales().Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	uc.ledger.Published(movements...)
	uc.metrics.SaleCreated(sale.Total)
	uc.log.Info().
		Str("sale_id", sale.ID).
		Str("ticket", sale.TicketNumber).
		Str("operator", operatorID).
		Int("lines", len(sale.Lines)).
		Str("total", sale.Total.StringFixed(2)).
		Msg("venta registrada")

	resp := dto.SaleToResponse(sale)
	return &resp, nil
}

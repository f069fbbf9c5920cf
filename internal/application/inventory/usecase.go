package inventory

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// RegisterMovementFromRequest adapta el request HTTP a RegisterMovement.
func (l *Ledger) RegisterMovementFromRequest(ctx context.Context, actorID string, in dto.RegisterMovementRequest) (*dto.StockMovementResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	mov, err := l.RegisterMovement(ctx, MovementInput{
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		ActorID:   actorID,
	})
	if err != nil {
		return nil, err
	}
	resp := dto.MovementToResponse(mov)
	return &resp, nil
}

// Kardex devuelve el saldo actual y la página de movimientos de un producto.
func (l *Ledger) Kardex(ctx context.Context, productID string, page dto.PageRequest) (*dto.KardexResponse, error) {
	page.DefaultPage(defaultMovementLimit)
	product, err := l.store.Products().GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("producto", productID)
	}
	movs, err := l.ListMovements(ctx, repository.MovementFilter{
		ProductID: productID,
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
	if err != nil {
		return nil, err
	}
	// En la primera página el saldo es el del movimiento más reciente listado,
	// así saldo y kardex salen de la misma lectura.
	current := product.Stock
	if page.Offset == 0 && len(movs) > 0 {
		current = movs[0].QuantityAfter
	}
	return &dto.KardexResponse{
		ProductID:    product.ID,
		SKU:          product.SKU,
		ProductName:  product.Name,
		CurrentStock: current,
		Movements:    dto.MovementsToResponse(movs),
		Page:         dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Count: len(movs)},
	}, nil
}

// ListMovementsFromQuery adapta los filtros HTTP a ListMovements.
func (l *Ledger) ListMovementsFromQuery(ctx context.Context, q dto.MovementListQuery) ([]dto.StockMovementResponse, error) {
	if err := dto.Validate(q); err != nil {
		return nil, err
	}
	movs, err := l.ListMovements(ctx, repository.MovementFilter{
		ProductID: q.ProductID,
		Type:      q.Type,
		From:      q.From,
		To:        q.To,
		Limit:     q.Limit,
		Offset:    q.Offset,
	})
	if err != nil {
		return nil, err
	}
	return dto.MovementsToResponse(movs), nil
}

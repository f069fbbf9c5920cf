package sales

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

const defaultSaleLimit = 50

// GetSale devuelve la venta con sus líneas.
func (uc *SalesUseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.store.Sales().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.NotFound("venta", id)
	}
	resp := dto.SaleToResponse(sale)
	return &resp, nil
}

// ListSales lista ventas del más reciente al más antiguo.
func (uc *SalesUseCase) ListSales(ctx context.Context, q dto.SaleListQuery) ([]dto.SaleResponse, error) {
	if err := dto.Validate(q); err != nil {
		return nil, err
	}
	if q.From != nil && q.To != nil && q.To.Before(*q.From) {
		return nil, domain.Invalid("el rango de fechas está invertido")
	}
	q.DefaultPage(defaultSaleLimit)
	list, err := uc.store.Sales().List(ctx, repository.SaleFilter{
		From:       q.From,
		To:         q.To,
		OperatorID: q.OperatorID,
		ClientID:   q.ClientID,
		Status:     q.Status,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.SaleToResponse(s))
	}
	return out, nil
}

package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

type saleRepo struct{ do access }

func (r *saleRepo) Create(_ context.Context, sale *entity.Sale) error {
	return r.do(func(s *state) error {
		for _, existing := range s.sales {
			if existing.TicketNumber == sale.TicketNumber {
				return domain.ErrConflict
			}
		}
		if _, ok := s.sales[sale.ID]; ok {
			return domain.ErrConflict
		}
		s.sales[sale.ID] = copySale(*sale)
		s.saleOrder = append(s.saleOrder, sale.ID)
		return nil
	})
}

func (r *saleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.do(func(s *state) error {
		if sale, ok := s.sales[id]; ok {
			c := copySale(sale)
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *saleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *saleRepo) MarkCanceled(_ context.Context, id, actorID string, at time.Time) error {
	return r.do(func(s *state) error {
		sale, ok := s.sales[id]
		if !ok {
			return domain.NotFound("venta", id)
		}
		sale.Status = entity.SaleStatusCanceled
		sale.CanceledAt = &at
		sale.CanceledBy = actorID
		sale.UpdatedAt = at
		s.sales[id] = sale
		return nil
	})
}

func (r *saleRepo) List(_ context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	var out []*entity.Sale
	err := r.do(func(s *state) error {
		for i := len(s.saleOrder) - 1; i >= 0; i-- {
			sale := copySale(s.sales[s.saleOrder[i]])
			if f.OperatorID != "" && sale.OperatorID != f.OperatorID {
				continue
			}
			if f.ClientID != "" && (sale.ClientID == nil || *sale.ClientID != f.ClientID) {
				continue
			}
			if f.Status != "" && sale.Status != f.Status {
				continue
			}
			if f.From != nil && sale.CreatedAt.Before(*f.From) {
				continue
			}
			if f.To != nil && sale.CreatedAt.After(*f.To) {
				continue
			}
			out = append(out, &sale)
		}
		return nil
	})
	return paginate(out, f.Limit, f.Offset), err
}

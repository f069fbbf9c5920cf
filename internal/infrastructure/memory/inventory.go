package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

type productRepo struct{ do access }

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.do(func(s *state) error {
		if p, ok := s.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) UpdateStock(_ context.Context, id string, quantity int) error {
	return r.do(func(s *state) error {
		p, ok := s.products[id]
		if !ok {
			return domain.NotFound("producto", id)
		}
		if quantity < 0 {
			return domain.Invalid("stock negativo para %s", id)
		}
		p.Stock = quantity
		s.products[id] = p
		return nil
	})
}

func (r *productRepo) ListBelowMinStock(_ context.Context, limit int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.do(func(s *state) error {
		for _, p := range s.products {
			if p.BelowMinStock() {
				p := p
				out = append(out, &p)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return paginate(out, limit, 0), err
}

type movementRepo struct{ do access }

func (r *movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	return r.do(func(s *state) error {
		if _, ok := s.products[m.ProductID]; !ok {
			return domain.NotFound("producto", m.ProductID)
		}
		s.movementSeq++
		m.Seq = s.movementSeq
		s.movements = append(s.movements, *m)
		return nil
	})
}

func (r *movementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.do(func(s *state) error {
		for i := len(s.movements) - 1; i >= 0; i-- {
			m := s.movements[i]
			if f.ProductID != "" && m.ProductID != f.ProductID {
				continue
			}
			if f.Type != "" && m.Type != f.Type {
				continue
			}
			if f.From != nil && m.CreatedAt.Before(*f.From) {
				continue
			}
			if f.To != nil && m.CreatedAt.After(*f.To) {
				continue
			}
			out = append(out, &m)
		}
		return nil
	})
	return paginate(out, f.Limit, f.Offset), err
}

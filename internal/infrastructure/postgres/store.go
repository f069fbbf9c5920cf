package postgres

import "github.com/jhoicas/Taller-api/internal/domain/repository"

var _ repository.Store = (*Store)(nil)

// Store agrupa los repositorios sobre un mismo Querier (pool o tx).
type Store struct {
	products  *ProductRepo
	movements *StockMovementRepo
	sales     *SaleRepo
	repairs   *RepairRepo
	cash      *CashSessionRepo
}

// NewStore construye los repositorios atados a q.
func NewStore(q Querier) *Store {
	return &Store{
		products:  NewProductRepository(q),
		movements: NewStockMovementRepository(q),
		sales:     NewSaleRepository(q),
		repairs:   NewRepairRepository(q),
		cash:      NewCashSessionRepository(q),
	}
}

func (s *Store) Products() repository.ProductRepository         { return s.products }
func (s *Store) Movements() repository.StockMovementRepository  { return s.movements }
func (s *Store) Sales() repository.SaleRepository               { return s.sales }
func (s *Store) Repairs() repository.RepairRepository           { return s.repairs }
func (s *Store) CashSessions() repository.CashSessionRepository { return s.cash }

// Package memory implementa los puertos de repositorio en memoria con transacciones
// serializadas: cada Run trabaja sobre una copia del estado y la publica solo si fn no falla.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

type state struct {
	products  map[string]entity.Product
	movements []entity.StockMovement
	sales     map[string]entity.Sale
	saleOrder []string
	repairs   map[string]entity.RepairTicket
	repOrder  []string
	sessions  map[string]entity.CashSession
	sessOrder []string

	movementSeq int64
	logSeq      int64
	cashSeq     int64
}

func newState() *state {
	return &state{
		products: make(map[string]entity.Product),
		sales:    make(map[string]entity.Sale),
		repairs:  make(map[string]entity.RepairTicket),
		sessions: make(map[string]entity.CashSession),
	}
}

func (s *state) clone() *state {
	c := &state{
		products:    make(map[string]entity.Product, len(s.products)),
		movements:   append([]entity.StockMovement(nil), s.movements...),
		sales:       make(map[string]entity.Sale, len(s.sales)),
		saleOrder:   append([]string(nil), s.saleOrder...),
		repairs:     make(map[string]entity.RepairTicket, len(s.repairs)),
		repOrder:    append([]string(nil), s.repOrder...),
		sessions:    make(map[string]entity.CashSession, len(s.sessions)),
		sessOrder:   append([]string(nil), s.sessOrder...),
		movementSeq: s.movementSeq,
		logSeq:      s.logSeq,
		cashSeq:     s.cashSeq,
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.sales {
		c.sales[k] = copySale(v)
	}
	for k, v := range s.repairs {
		c.repairs[k] = copyRepair(v)
	}
	for k, v := range s.sessions {
		c.sessions[k] = copySession(v)
	}
	return c
}

func copySale(s entity.Sale) entity.Sale {
	s.Lines = append([]entity.SaleLine(nil), s.Lines...)
	return s
}

func copyRepair(r entity.RepairTicket) entity.RepairTicket {
	r.StatusLogs = append([]entity.RepairStatusLog(nil), r.StatusLogs...)
	r.Items = append([]entity.RepairItem(nil), r.Items...)
	r.Notes = append([]entity.RepairNote(nil), r.Notes...)
	r.SoftwareActions = append([]entity.RepairSoftwareAction(nil), r.SoftwareActions...)
	return r
}

func copySession(s entity.CashSession) entity.CashSession {
	s.Movements = append([]entity.CashMovement(nil), s.Movements...)
	return s
}

// access ejecuta fn sobre el estado visible para el llamador.
type access func(fn func(s *state) error) error

// DB es la base en memoria. Implementa repository.Store (lecturas y escrituras sueltas)
// y repository.TxRunner.
type DB struct {
	mu    sync.Mutex
	state *state
}

// New crea una base vacía.
func New() *DB {
	return &DB{state: newState()}
}

var (
	_ repository.Store    = (*DB)(nil)
	_ repository.TxRunner = (*DB)(nil)
)

func (db *DB) locked(fn func(s *state) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return fn(db.state)
}

// Run serializa las transacciones: mantiene el lock durante fn y publica la copia solo si fn no falla.
// fn no debe usar el Store no transaccional (db) o se bloquea.
func (db *DB) Run(ctx context.Context, fn func(tx repository.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	work := db.state.clone()
	tx := newStore(func(f func(s *state) error) error { return f(work) })
	if err := fn(tx); err != nil {
		return err
	}
	db.state = work
	return nil
}

func (db *DB) Products() repository.ProductRepository         { return &productRepo{do: db.locked} }
func (db *DB) Movements() repository.StockMovementRepository  { return &movementRepo{do: db.locked} }
func (db *DB) Sales() repository.SaleRepository               { return &saleRepo{do: db.locked} }
func (db *DB) Repairs() repository.RepairRepository           { return &repairRepo{do: db.locked} }
func (db *DB) CashSessions() repository.CashSessionRepository { return &cashRepo{do: db.locked} }

// SeedProduct inserta o reemplaza un producto fuera del libro de movimientos (datos de prueba y demo).
func (db *DB) SeedProduct(p entity.Product) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.state.products[p.ID] = p
}

type store struct {
	products  *productRepo
	movements *movementRepo
	sales     *saleRepo
	repairs   *repairRepo
	cash      *cashRepo
}

func newStore(do access) *store {
	return &store{
		products:  &productRepo{do: do},
		movements: &movementRepo{do: do},
		sales:     &saleRepo{do: do},
		repairs:   &repairRepo{do: do},
		cash:      &cashRepo{do: do},
	}
}

func (s *store) Products() repository.ProductRepository         { return s.products }
func (s *store) Movements() repository.StockMovementRepository  { return s.movements }
func (s *store) Sales() repository.SaleRepository               { return s.sales }
func (s *store) Repairs() repository.RepairRepository           { return s.repairs }
func (s *store) CashSessions() repository.CashSessionRepository { return s.cash }

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

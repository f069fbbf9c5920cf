package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo kardex sobre PostgreSQL. La tabla rechaza UPDATE y DELETE por trigger.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste el movimiento y asigna Seq desde la secuencia de la tabla.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, product_id, type, quantity, quantity_before, quantity_after, reason, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING seq`
	err := r.q.QueryRow(ctx, query,
		m.ID, m.ProductID, m.Type, m.Quantity, m.QuantityBefore, m.QuantityAfter,
		m.Reason, m.CreatedBy, m.CreatedAt,
	).Scan(&m.Seq)
	if err != nil {
		return mapError("create stock movement", err)
	}
	return nil
}

// List devuelve movimientos filtrados, del más reciente al más antiguo.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, seq, product_id, type, quantity, quantity_before, quantity_after, reason, created_by, created_at
		FROM stock_movements WHERE 1=1`
	w := newWhere(&query)
	if f.ProductID != "" {
		w.add("product_id = $%d", f.ProductID)
	}
	if f.Type != "" {
		w.add("type = $%d", f.Type)
	}
	if f.From != nil {
		w.add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("created_at <= $%d", *f.To)
	}
	query += " ORDER BY seq DESC"
	w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError("list stock movements", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.Seq, &m.ProductID, &m.Type, &m.Quantity,
			&m.QuantityBefore, &m.QuantityAfter, &m.Reason, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

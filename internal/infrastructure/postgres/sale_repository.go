package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, ticket_number, client_id::text, operator_id, payment_method, subtotal, tax, discount, total,
		status, canceled_at, COALESCE(canceled_by, ''), created_at, updated_at`

// SaleRepo ventas y sus líneas sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(&s.ID, &s.TicketNumber, &s.ClientID, &s.OperatorID, &s.PaymentMethod,
		&s.Subtotal, &s.Tax, &s.Discount, &s.Total, &s.Status, &s.CanceledAt, &s.CanceledBy,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserta cabecera y líneas. Un ticket repetido devuelve domain.ErrConflict.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, ticket_number, client_id, operator_id, payment_method, subtotal, tax, discount, total,
			status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.TicketNumber, sale.ClientID, sale.OperatorID, sale.PaymentMethod,
		sale.Subtotal, sale.Tax, sale.Discount, sale.Total, sale.Status, sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		return mapError("insert sale", err)
	}

	lineQuery := `
		INSERT INTO sale_lines (id, sale_id, position, product_id, quantity, unit_price, tax_rate, line_tax, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for i := range sale.Lines {
		l := &sale.Lines[i]
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		l.SaleID = sale.ID
		if _, err := r.q.Exec(ctx, lineQuery,
			l.ID, l.SaleID, l.Position, l.ProductID, l.Quantity, l.UnitPrice, l.TaxRate, l.LineTax, l.LineTotal,
		); err != nil {
			return mapError("insert sale line", err)
		}
	}
	return nil
}

// GetByID obtiene la venta con sus líneas. (nil, nil) si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return r.get(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)
}

// GetForUpdate bloquea la cabecera de la venta y trae las líneas.
func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.get(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1 FOR UPDATE`, id)
}

func (r *SaleRepo) get(ctx context.Context, query, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get sale", err)
	}
	lines, err := r.lines(ctx, []string{s.ID})
	if err != nil {
		return nil, err
	}
	s.Lines = lines[s.ID]
	return s, nil
}

func (r *SaleRepo) lines(ctx context.Context, saleIDs []string) (map[string][]entity.SaleLine, error) {
	out := make(map[string][]entity.SaleLine, len(saleIDs))
	if len(saleIDs) == 0 {
		return out, nil
	}
	query := `
		SELECT id, sale_id, position, product_id, quantity, unit_price, tax_rate, line_tax, line_total
		FROM sale_lines WHERE sale_id = ANY($1::uuid[]) ORDER BY sale_id, position`
	rows, err := r.q.Query(ctx, query, saleIDs)
	if err != nil {
		return nil, mapError("list sale lines", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.Position, &l.ProductID, &l.Quantity,
			&l.UnitPrice, &l.TaxRate, &l.LineTax, &l.LineTotal); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		out[l.SaleID] = append(out[l.SaleID], l)
	}
	return out, rows.Err()
}

// MarkCanceled pasa la venta a CANCELED. Solo actúa sobre ventas COMPLETED.
func (r *SaleRepo) MarkCanceled(ctx context.Context, id, actorID string, at time.Time) error {
	query := `
		UPDATE sales SET status = $2, canceled_at = $3, canceled_by = $4, updated_at = $3
		WHERE id = $1 AND status = $5`
	tag, err := r.q.Exec(ctx, query, id, entity.SaleStatusCanceled, at, actorID, entity.SaleStatusCompleted)
	if err != nil {
		return mapError("cancel sale", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("venta %s: %w", id, domain.ErrAlreadyCanceled)
	}
	return nil
}

// List devuelve ventas filtradas, de la más reciente a la más antigua, con sus líneas.
func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE 1=1`
	w := newWhere(&query)
	if f.OperatorID != "" {
		w.add("operator_id = $%d", f.OperatorID)
	}
	if f.ClientID != "" {
		w.add("client_id = $%d", f.ClientID)
	}
	if f.Status != "" {
		w.add("status = $%d", f.Status)
	}
	if f.From != nil {
		w.add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("created_at <= $%d", *f.To)
	}
	query += " ORDER BY created_at DESC, id"
	w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError("list sales", err)
	}
	var list []*entity.Sale
	var ids []string
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
		ids = append(ids, s.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, mapError("list sales", err)
	}

	lines, err := r.lines(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, s := range list {
		s.Lines = lines[s.ID]
	}
	return list, nil
}

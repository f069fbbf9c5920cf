package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.CashSessionRepository = (*CashSessionRepo)(nil)

const cashSessionColumns = `id, operator_id, start_amount, end_amount, status, start_time, end_time`

// CashSessionRepo sesiones de caja sobre PostgreSQL. El índice parcial
// cash_sessions_one_open_per_operator impide dos cajas abiertas del mismo operador.
type CashSessionRepo struct {
	q Querier
}

// NewCashSessionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashSessionRepository(q Querier) *CashSessionRepo {
	return &CashSessionRepo{q: q}
}

func scanCashSession(row pgx.Row) (*entity.CashSession, error) {
	var s entity.CashSession
	if err := row.Scan(&s.ID, &s.OperatorID, &s.StartAmount, &s.EndAmount, &s.Status, &s.StartTime, &s.EndTime); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserta una sesión OPEN. Una segunda caja abierta del operador devuelve domain.ErrAlreadyOpen.
func (r *CashSessionRepo) Create(ctx context.Context, s *entity.CashSession) error {
	query := `
		INSERT INTO cash_sessions (id, operator_id, start_amount, status, start_time)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, s.ID, s.OperatorID, s.StartAmount, s.Status, s.StartTime); err != nil {
		return mapError("insert cash session", err)
	}
	return nil
}

// GetByID obtiene la sesión con sus movimientos. (nil, nil) si no existe.
func (r *CashSessionRepo) GetByID(ctx context.Context, id string) (*entity.CashSession, error) {
	return r.get(ctx, `SELECT `+cashSessionColumns+` FROM cash_sessions WHERE id = $1`, id)
}

// GetForUpdate bloquea la sesión (SELECT FOR UPDATE).
func (r *CashSessionRepo) GetForUpdate(ctx context.Context, id string) (*entity.CashSession, error) {
	return r.get(ctx, `SELECT `+cashSessionColumns+` FROM cash_sessions WHERE id = $1 FOR UPDATE`, id)
}

// GetOpenByOperator devuelve la caja abierta del operador, o (nil, nil).
func (r *CashSessionRepo) GetOpenByOperator(ctx context.Context, operatorID string) (*entity.CashSession, error) {
	query := `SELECT ` + cashSessionColumns + ` FROM cash_sessions WHERE operator_id = $1 AND status = 'OPEN'`
	return r.get(ctx, query, operatorID)
}

func (r *CashSessionRepo) get(ctx context.Context, query, arg string) (*entity.CashSession, error) {
	s, err := scanCashSession(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get cash session", err)
	}
	if s.Movements, err = r.movements(ctx, s.ID); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *CashSessionRepo) movements(ctx context.Context, sessionID string) ([]entity.CashMovement, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, seq, session_id, type, amount, reason, created_by, created_at
		FROM cash_movements WHERE session_id = $1 ORDER BY seq`, sessionID)
	if err != nil {
		return nil, mapError("list cash movements", err)
	}
	defer rows.Close()
	var list []entity.CashMovement
	for rows.Next() {
		var m entity.CashMovement
		if err := rows.Scan(&m.ID, &m.Seq, &m.SessionID, &m.Type, &m.Amount, &m.Reason, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cash movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Close cierra una sesión abierta; si ya estaba cerrada devuelve domain.ErrAlreadyClosed.
func (r *CashSessionRepo) Close(ctx context.Context, s *entity.CashSession) error {
	query := `
		UPDATE cash_sessions SET status = 'CLOSED', end_amount = $2, end_time = $3
		WHERE id = $1 AND status = 'OPEN'`
	tag, err := r.q.Exec(ctx, query, s.ID, s.EndAmount, s.EndTime)
	if err != nil {
		return mapError("close cash session", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyClosed
	}
	return nil
}

// AddMovement registra un ingreso o egreso y asigna Seq.
func (r *CashSessionRepo) AddMovement(ctx context.Context, m *entity.CashMovement) error {
	query := `
		INSERT INTO cash_movements (id, session_id, type, amount, reason, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING seq`
	if err := r.q.QueryRow(ctx, query, m.ID, m.SessionID, m.Type, m.Amount, m.Reason, m.CreatedBy, m.CreatedAt).Scan(&m.Seq); err != nil {
		return mapError("insert cash movement", err)
	}
	return nil
}

// List devuelve sesiones filtradas, de la más reciente a la más antigua (sin movimientos).
func (r *CashSessionRepo) List(ctx context.Context, f repository.CashSessionFilter) ([]*entity.CashSession, error) {
	query := `SELECT ` + cashSessionColumns + ` FROM cash_sessions WHERE 1=1`
	w := newWhere(&query)
	if f.OperatorID != "" {
		w.add("operator_id = $%d", f.OperatorID)
	}
	if f.Status != "" {
		w.add("status = $%d", f.Status)
	}
	query += " ORDER BY start_time DESC, id"
	w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError("list cash sessions", err)
	}
	defer rows.Close()
	var list []*entity.CashSession
	for rows.Next() {
		s, err := scanCashSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cash session: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

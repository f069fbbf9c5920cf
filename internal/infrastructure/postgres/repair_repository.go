package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.RepairRepository = (*RepairRepo)(nil)

const repairColumns = `id, ticket_number, client_id::text, device_id::text, technician_id::text, status, reported_issue,
		diagnostic_initial, diagnostic_final, estimated_cost, final_cost, estimated_delivery, warranty, signature_photo,
		delivered_at, canceled_at, created_by, created_at, updated_at`

// RepairRepo órdenes de reparación y sus colecciones hijas sobre PostgreSQL.
type RepairRepo struct {
	q Querier
}

// NewRepairRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRepairRepository(q Querier) *RepairRepo {
	return &RepairRepo{q: q}
}

func scanRepair(row pgx.Row) (*entity.RepairTicket, error) {
	var t entity.RepairTicket
	err := row.Scan(&t.ID, &t.TicketNumber, &t.ClientID, &t.DeviceID, &t.TechnicianID, &t.Status,
		&t.ReportedIssue, &t.DiagnosticInitial, &t.DiagnosticFinal, &t.EstimatedCost, &t.FinalCost, &t.EstimatedDelivery,
		&t.Warranty, &t.SignaturePhoto, &t.DeliveredAt, &t.CanceledAt, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserta la cabecera. Un ticket repetido devuelve domain.ErrConflict.
func (r *RepairRepo) Create(ctx context.Context, t *entity.RepairTicket) error {
	query := `
		INSERT INTO repairs (id, ticket_number, client_id, device_id, technician_id, status, reported_issue,
			diagnostic_initial, estimated_cost, final_cost, estimated_delivery, warranty, signature_photo,
			created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.TicketNumber, t.ClientID, t.DeviceID, t.TechnicianID, t.Status, t.ReportedIssue,
		t.DiagnosticInitial, t.EstimatedCost, t.FinalCost, t.EstimatedDelivery, t.Warranty, t.SignaturePhoto,
		t.CreatedBy, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return mapError("insert repair", err)
	}
	return nil
}

// GetByID trae la orden con bitácora, repuestos, notas y servicios de software. (nil, nil) si no existe.
func (r *RepairRepo) GetByID(ctx context.Context, id string) (*entity.RepairTicket, error) {
	t, err := r.header(ctx, `SELECT `+repairColumns+` FROM repairs WHERE id = $1`, id)
	if err != nil || t == nil {
		return t, err
	}
	if t.StatusLogs, err = r.statusLogs(ctx, id); err != nil {
		return nil, err
	}
	if t.Items, err = r.items(ctx, id); err != nil {
		return nil, err
	}
	if t.Notes, err = r.notes(ctx, id); err != nil {
		return nil, err
	}
	if t.SoftwareActions, err = r.softwareActions(ctx, id); err != nil {
		return nil, err
	}
	return t, nil
}

// GetForUpdate bloquea la cabecera y trae los repuestos (lo necesario para anular).
func (r *RepairRepo) GetForUpdate(ctx context.Context, id string) (*entity.RepairTicket, error) {
	t, err := r.header(ctx, `SELECT `+repairColumns+` FROM repairs WHERE id = $1 FOR UPDATE`, id)
	if err != nil || t == nil {
		return t, err
	}
	if t.Items, err = r.items(ctx, id); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *RepairRepo) header(ctx context.Context, query, id string) (*entity.RepairTicket, error) {
	t, err := scanRepair(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get repair", err)
	}
	return t, nil
}

func (r *RepairRepo) statusLogs(ctx context.Context, repairID string) ([]entity.RepairStatusLog, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, seq, repair_id, status, changed_by, notes, created_at
		FROM repair_status_logs WHERE repair_id = $1 ORDER BY seq`, repairID)
	if err != nil {
		return nil, mapError("list repair status logs", err)
	}
	defer rows.Close()
	var list []entity.RepairStatusLog
	for rows.Next() {
		var l entity.RepairStatusLog
		if err := rows.Scan(&l.ID, &l.Seq, &l.RepairID, &l.Status, &l.ChangedBy, &l.Notes, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan status log: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func (r *RepairRepo) items(ctx context.Context, repairID string) ([]entity.RepairItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, repair_id, product_id, quantity, cost, warranty, returned_at, created_at
		FROM repair_items WHERE repair_id = $1 ORDER BY created_at, id`, repairID)
	if err != nil {
		return nil, mapError("list repair items", err)
	}
	defer rows.Close()
	var list []entity.RepairItem
	for rows.Next() {
		var it entity.RepairItem
		if err := rows.Scan(&it.ID, &it.RepairID, &it.ProductID, &it.Quantity, &it.Cost,
			&it.Warranty, &it.ReturnedAt, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan repair item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

func (r *RepairRepo) notes(ctx context.Context, repairID string) ([]entity.RepairNote, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, repair_id, content, is_internal, created_by, created_at
		FROM repair_notes WHERE repair_id = $1 ORDER BY created_at, id`, repairID)
	if err != nil {
		return nil, mapError("list repair notes", err)
	}
	defer rows.Close()
	var list []entity.RepairNote
	for rows.Next() {
		var n entity.RepairNote
		if err := rows.Scan(&n.ID, &n.RepairID, &n.Content, &n.IsInternal, &n.CreatedBy, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan repair note: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

func (r *RepairRepo) softwareActions(ctx context.Context, repairID string) ([]entity.RepairSoftwareAction, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, repair_id, service_type, cost, notes, legal_authorization, created_at
		FROM repair_software_actions WHERE repair_id = $1 ORDER BY created_at, id`, repairID)
	if err != nil {
		return nil, mapError("list software actions", err)
	}
	defer rows.Close()
	var list []entity.RepairSoftwareAction
	for rows.Next() {
		var a entity.RepairSoftwareAction
		if err := rows.Scan(&a.ID, &a.RepairID, &a.ServiceType, &a.Cost, &a.Notes,
			&a.LegalAuthorization, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan software action: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Update persiste estado, técnico, costo final, firma, entrega y anulación.
func (r *RepairRepo) Update(ctx context.Context, t *entity.RepairTicket) error {
	query := `
		UPDATE repairs SET status = $2, technician_id = $3, diagnostic_initial = $4, diagnostic_final = $5,
			estimated_cost = $6, estimated_delivery = $7, warranty = $8, final_cost = $9, signature_photo = $10,
			delivered_at = $11, canceled_at = $12, updated_at = $13
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, t.ID, t.Status, t.TechnicianID, t.DiagnosticInitial, t.DiagnosticFinal,
		t.EstimatedCost, t.EstimatedDelivery, t.Warranty, t.FinalCost, t.SignaturePhoto,
		t.DeliveredAt, t.CanceledAt, t.UpdatedAt)
	if err != nil {
		return mapError("update repair", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("reparación", t.ID)
	}
	return nil
}

// AddStatusLog agrega una entrada a la bitácora y asigna Seq.
func (r *RepairRepo) AddStatusLog(ctx context.Context, l *entity.RepairStatusLog) error {
	query := `
		INSERT INTO repair_status_logs (id, repair_id, status, changed_by, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING seq`
	if err := r.q.QueryRow(ctx, query, l.ID, l.RepairID, l.Status, l.ChangedBy, l.Notes, l.CreatedAt).Scan(&l.Seq); err != nil {
		return mapError("insert repair status log", err)
	}
	return nil
}

// AddItem registra un repuesto consumido.
func (r *RepairRepo) AddItem(ctx context.Context, it *entity.RepairItem) error {
	query := `
		INSERT INTO repair_items (id, repair_id, product_id, quantity, cost, warranty, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.q.Exec(ctx, query, it.ID, it.RepairID, it.ProductID, it.Quantity, it.Cost, it.Warranty, it.CreatedAt); err != nil {
		return mapError("insert repair item", err)
	}
	return nil
}

// MarkItemsReturned fija returned_at en los repuestos aún no devueltos.
func (r *RepairRepo) MarkItemsReturned(ctx context.Context, itemIDs []string, at time.Time) error {
	if len(itemIDs) == 0 {
		return nil
	}
	query := `UPDATE repair_items SET returned_at = $2 WHERE id = ANY($1::uuid[]) AND returned_at IS NULL`
	if _, err := r.q.Exec(ctx, query, itemIDs, at); err != nil {
		return mapError("mark repair items returned", err)
	}
	return nil
}

// AddNote agrega una nota a la orden.
func (r *RepairRepo) AddNote(ctx context.Context, n *entity.RepairNote) error {
	query := `
		INSERT INTO repair_notes (id, repair_id, content, is_internal, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, n.ID, n.RepairID, n.Content, n.IsInternal, n.CreatedBy, n.CreatedAt); err != nil {
		return mapError("insert repair note", err)
	}
	return nil
}

// AddSoftwareAction registra un servicio de software.
func (r *RepairRepo) AddSoftwareAction(ctx context.Context, a *entity.RepairSoftwareAction) error {
	query := `
		INSERT INTO repair_software_actions (id, repair_id, service_type, cost, notes, legal_authorization, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.q.Exec(ctx, query, a.ID, a.RepairID, a.ServiceType, a.Cost, a.Notes, a.LegalAuthorization, a.CreatedAt); err != nil {
		return mapError("insert software action", err)
	}
	return nil
}

// List devuelve órdenes filtradas (solo cabecera), de la más reciente a la más antigua.
func (r *RepairRepo) List(ctx context.Context, f repository.RepairFilter) ([]*entity.RepairTicket, error) {
	query := `SELECT ` + repairColumns + ` FROM repairs WHERE 1=1`
	w := newWhere(&query)
	if f.Status != "" {
		w.add("status = $%d", f.Status)
	}
	if f.TechnicianID != "" {
		w.add("technician_id = $%d", f.TechnicianID)
	}
	if f.ClientID != "" {
		w.add("client_id = $%d", f.ClientID)
	}
	if f.DeviceID != "" {
		w.add("device_id = $%d", f.DeviceID)
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
		return nil, mapError("list repairs", err)
	}
	defer rows.Close()
	var list []*entity.RepairTicket
	for rows.Next() {
		t, err := scanRepair(rows)
		if err != nil {
			return nil, fmt.Errorf("scan repair: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

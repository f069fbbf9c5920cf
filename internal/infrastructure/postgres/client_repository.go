package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo clientes, equipos y técnicos (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// CreateClient persiste un nuevo cliente.
func (r *ClientRepo) CreateClient(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clients (id, name, email, phone, tax_id, created_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6)`
	if _, err := r.q.Exec(ctx, query, c.ID, c.Name, c.Email, c.Phone, c.TaxID, c.CreatedAt); err != nil {
		return mapError("insert client", err)
	}
	return nil
}

// GetClient obtiene un cliente por ID. (nil, nil) si no existe.
func (r *ClientRepo) GetClient(ctx context.Context, id string) (*entity.Client, error) {
	query := `
		SELECT id, name, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(tax_id, ''), created_at
		FROM clients WHERE id = $1`
	var c entity.Client
	err := r.q.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.TaxID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get client", err)
	}
	return &c, nil
}

// CreateDevice registra un equipo; el cliente debe existir.
func (r *ClientRepo) CreateDevice(ctx context.Context, d *entity.Device) error {
	query := `
		INSERT INTO devices (id, client_id, brand, model, serial_number, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)`
	if _, err := r.q.Exec(ctx, query, d.ID, d.ClientID, d.Brand, d.Model, d.SerialNumber, d.CreatedAt); err != nil {
		return mapError("insert device", err)
	}
	return nil
}

// ListDevicesByClient lista los equipos de un cliente, del más reciente al más antiguo.
func (r *ClientRepo) ListDevicesByClient(ctx context.Context, clientID string) ([]*entity.Device, error) {
	query := `
		SELECT id, client_id, brand, model, COALESCE(serial_number, ''), created_at
		FROM devices WHERE client_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, clientID)
	if err != nil {
		return nil, mapError("list devices", err)
	}
	defer rows.Close()
	var list []*entity.Device
	for rows.Next() {
		var d entity.Device
		if err := rows.Scan(&d.ID, &d.ClientID, &d.Brand, &d.Model, &d.SerialNumber, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan device: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// CreateTechnician registra un técnico.
func (r *ClientRepo) CreateTechnician(ctx context.Context, t *entity.Technician) error {
	query := `
		INSERT INTO technicians (id, name, specialty, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4)`
	if _, err := r.q.Exec(ctx, query, t.ID, t.Name, t.Specialty, t.CreatedAt); err != nil {
		return mapError("insert technician", err)
	}
	return nil
}

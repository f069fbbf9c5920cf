package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// ClientRepository alta y consulta de clientes, equipos y técnicos.
// Las ventas y reparaciones solo guardan sus ids; este puerto lo usan la semilla y las consultas.
type ClientRepository interface {
	CreateClient(ctx context.Context, c *entity.Client) error
	GetClient(ctx context.Context, id string) (*entity.Client, error)
	CreateDevice(ctx context.Context, d *entity.Device) error
	ListDevicesByClient(ctx context.Context, clientID string) ([]*entity.Device, error)
	CreateTechnician(ctx context.Context, t *entity.Technician) error
}

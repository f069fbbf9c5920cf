package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para los artículos con stock.
// El catálogo (alta/edición) lo administra otro servicio; aquí solo se lee y se actualiza el stock.
type ProductRepository interface {
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// UpdateStock fija la cantidad; solo debe llamarlo inventory.Ledger.
	UpdateStock(ctx context.Context, id string, quantity int) error
	// ListBelowMinStock lista productos con stock <= min_stock.
	ListBelowMinStock(ctx context.Context, limit int) ([]*entity.Product, error)
}

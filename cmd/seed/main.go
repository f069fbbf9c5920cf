// seed carga datos de demostración: productos, un cliente con sus equipos y técnicos.
// Los IDs son deterministas; volver a ejecutarlo omite lo que ya existe.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Taller-api/pkg/config"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

var seedNamespace = uuid.MustParse("6f1c2a2e-8f57-4c1e-9a43-5a8b7d0c1e21")

func seedID(key string) string {
	return uuid.NewSHA1(seedNamespace, []byte(key)).String()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "taller-seed"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	products := postgres.NewProductRepository(pool)
	clients := postgres.NewClientRepository(pool)
	now := time.Now().UTC()

	for _, p := range []entity.Product{
		{SKU: "LAP-HP-001", Name: "Laptop HP", Price: decimal.RequireFromString("599.99"), TaxRate: decimal.NewFromInt(16), Stock: 15, MinStock: 5},
		{SKU: "MOU-WL-001", Name: "Wireless Mouse", Price: decimal.RequireFromString("24.99"), TaxRate: decimal.NewFromInt(16), Stock: 50, MinStock: 10},
		{SKU: "TSH-001", Name: "T-Shirt", Price: decimal.RequireFromString("19.99"), TaxRate: decimal.NewFromInt(16), Stock: 100, MinStock: 20},
		{SKU: "COF-001", Name: "Coffee", Price: decimal.RequireFromString("29.99"), TaxRate: decimal.NewFromInt(8), Stock: 30, MinStock: 10},
	} {
		p.ID = seedID("product:" + p.SKU)
		p.CreatedAt, p.UpdatedAt = now, now
		report(log, "producto", p.SKU, products.Create(ctx, &p))
	}

	client := entity.Client{ID: seedID("client:john"), Name: "John Doe", Email: "john@example.com", Phone: "+1-555-0100", CreatedAt: now}
	report(log, "cliente", client.Name, clients.CreateClient(ctx, &client))

	for _, d := range []entity.Device{
		{Brand: "Apple", Model: "iPhone 12", SerialNumber: "SN-IP12-0001"},
		{Brand: "Dell", Model: "Inspiron 15", SerialNumber: "SN-DI15-0001"},
	} {
		d.ID = seedID("device:" + d.SerialNumber)
		d.ClientID = client.ID
		d.CreatedAt = now
		report(log, "equipo", d.SerialNumber, clients.CreateDevice(ctx, &d))
	}

	for _, tech := range []entity.Technician{
		{Name: "Ana Pérez", Specialty: "Microsoldadura"},
		{Name: "Luis Gómez", Specialty: "Software"},
	} {
		tech.ID = seedID("technician:" + tech.Name)
		tech.CreatedAt = now
		report(log, "técnico", tech.Name, clients.CreateTechnician(ctx, &tech))
	}

	log.Info().Msg("seed completado")
}

func report(log *logger.Logger, kind, key string, err error) {
	switch {
	case err == nil:
		log.Info().Str("tipo", kind).Str("clave", key).Msg("creado")
	case errors.Is(err, domain.ErrConflict):
		log.Warn().Str("tipo", kind).Str("clave", key).Msg("ya existe, se omite")
	default:
		log.Fatal().Err(err).Str("tipo", kind).Str("clave", key).Msg("seed")
	}
}

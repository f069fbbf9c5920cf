// Package migrations contiene el esquema SQL embebido y el migrador basado en golang-migrate.
package migrations

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // registra el esquema pgx5://
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/jhoicas/Taller-api/pkg/logger"
)

//go:embed *.sql
var files embed.FS

// Migrator aplica o revierte las migraciones embebidas.
type Migrator struct {
	migrate *migrate.Migrate
	log     *logger.Logger
}

// New crea el migrador a partir del connection string (postgres:// o postgresql://).
func New(databaseURL string, log *logger.Logger) (*Migrator, error) {
	src, err := iofs.New(files, ".")
	if err != nil {
		return nil, fmt.Errorf("abrir migraciones embebidas: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, driverURL(databaseURL))
	if err != nil {
		return nil, fmt.Errorf("crear migrador: %w", err)
	}
	return &Migrator{migrate: m, log: log.Component("migrations")}, nil
}

// driverURL cambia el esquema al que registra el driver pgx/v5 de golang-migrate.
func driverURL(databaseURL string) string {
	for _, prefix := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(databaseURL, prefix) {
			return "pgx5://" + strings.TrimPrefix(databaseURL, prefix)
		}
	}
	return databaseURL
}

// Up aplica todas las migraciones pendientes.
func (m *Migrator) Up() error {
	m.log.Info().Msg("aplicando migraciones")
	err := m.migrate.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		m.log.Info().Msg("sin migraciones pendientes")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migración up: %w", err)
	}
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	m.log.Info().Uint("version", version).Bool("dirty", dirty).Msg("migraciones aplicadas")
	return nil
}

// Down revierte todas las migraciones.
func (m *Migrator) Down() error {
	m.log.Warn().Msg("revirtiendo migraciones")
	err := m.migrate.Down()
	if errors.Is(err, migrate.ErrNoChange) {
		m.log.Info().Msg("sin migraciones que revertir")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migración down: %w", err)
	}
	return nil
}

// Steps aplica n migraciones (positivo = up, negativo = down).
func (m *Migrator) Steps(n int) error {
	m.log.Info().Int("steps", n).Msg("aplicando pasos de migración")
	err := m.migrate.Steps(n)
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("migración steps: %w", err)
	}
	return nil
}

// Version devuelve la versión actual; 0 si la base está vacía.
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("versión de migración: %w", err)
	}
	return version, dirty, nil
}

// Force fija la versión sin ejecutar SQL (para salir de un estado dirty).
func (m *Migrator) Force(version int) error {
	m.log.Warn().Int("version", version).Msg("forzando versión de migración")
	if err := m.migrate.Force(version); err != nil {
		return fmt.Errorf("forzar versión %d: %w", version, err)
	}
	return nil
}

// Close libera la fuente y la conexión.
func (m *Migrator) Close() error {
	srcErr, dbErr := m.migrate.Close()
	return errors.Join(srcErr, dbErr)
}

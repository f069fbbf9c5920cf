package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "TICKET", cfg.Tickets.SalePrefix)
	assert.Equal(t, "REP", cfg.Tickets.RepairPrefix)
	assert.False(t, cfg.Repairs.StrictTransitions)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

func TestLoad_EnvGana(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("REPAIRS_STRICT_TRANSITIONS", "1")
	t.Setenv("TICKET_SALE_PREFIX", "VTA")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.True(t, cfg.Repairs.StrictTransitions)
	assert.Equal(t, "VTA", cfg.Tickets.SalePrefix)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
}

func TestLoad_ProductionExigeSecreto(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := DBConfig{User: "app", Password: "p@ss:w/rd", Host: "db", Port: 5432, DBName: "taller", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/taller?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/Taller-api/docs"
	"github.com/jhoicas/Taller-api/internal/application/cashregister"
	"github.com/jhoicas/Taller-api/internal/application/inventory"
	"github.com/jhoicas/Taller-api/internal/application/repairs"
	"github.com/jhoicas/Taller-api/internal/application/sales"
	"github.com/jhoicas/Taller-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Taller-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Taller-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Taller-api/internal/infrastructure/postgres/migrations"
	"github.com/jhoicas/Taller-api/internal/infrastructure/ticket"
	httpRouter "github.com/jhoicas/Taller-api/internal/interfaces/http"
	"github.com/jhoicas/Taller-api/pkg/config"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// @title                       Taller API
// @version                     1.0
// @description                 Inventario, ventas de mostrador, reparaciones y caja de un taller de dispositivos.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Token JWT con el prefijo Bearer
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.DB.AutoMigrate {
		if err := runMigrations(cfg.DB.ConnectionString(), log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	store := postgres.NewStore(pool)
	txRunner := postgres.NewTxRunner(pool)
	m := metrics.New()
	tickets := ticket.New()

	ledger := inventory.NewLedger(txRunner, store, m, log)
	lowStockUC := inventory.NewLowStockUseCase(store.Products())
	salesUC := sales.NewSalesUseCase(txRunner, store, ledger, tickets, cfg.Tickets.SalePrefix, m, log)
	receiptUC := sales.NewReceiptUseCase(store, infrapdf.NewReceiptGenerator(cfg.App.Name))
	repairUC := repairs.NewRepairUseCase(txRunner, store, ledger, tickets, repairs.Options{
		TicketPrefix:      cfg.Tickets.RepairPrefix,
		StrictTransitions: cfg.Repairs.StrictTransitions,
	}, m, log)
	cashUC := cashregister.NewCashRegisterUseCase(txRunner, store, m, log)

	app := httpRouter.NewApp(httpRouter.RouterDeps{
		Ledger:    ledger,
		LowStock:  lowStockUC,
		Sales:     salesUC,
		Receipt:   receiptUC,
		Repairs:   repairUC,
		Cash:      cashUC,
		Metrics:   m,
		APIDocs:   []byte(docs.SwaggerInfo.ReadDoc()),
		Log:       log,
		JWTSecret: cfg.JWT.Secret,
		AppName:   cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func runMigrations(databaseURL string, log *logger.Logger) error {
	m, err := migrations.New(databaseURL, log)
	if err != nil {
		return err
	}
	defer m.Close()
	return m.Up()
}

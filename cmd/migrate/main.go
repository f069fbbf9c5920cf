// migrate aplica o revierte las migraciones embebidas del esquema.
//
// Uso:
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down
//	go run ./cmd/migrate steps -n -1
//	go run ./cmd/migrate force -version 1
//	go run ./cmd/migrate version
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/Taller-api/internal/infrastructure/postgres/migrations"
	"github.com/jhoicas/Taller-api/pkg/config"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: migrate up|down|steps|force|version [flags]")
		os.Exit(2)
	}
	cmd := os.Args[1]
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	steps := fs.Int("n", 1, "pasos para steps (negativo revierte)")
	version := fs.Int("version", -1, "versión para force")
	_ = fs.Parse(os.Args[2:])

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "taller-migrate"})

	m, err := migrations.New(cfg.DB.ConnectionString(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir migraciones")
	}
	defer m.Close()

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "steps":
		err = m.Steps(*steps)
	case "force":
		if *version < 0 {
			log.Fatal().Msg("force requiere -version")
		}
		err = m.Force(*version)
	case "version":
		var (
			v     uint
			dirty bool
		)
		v, dirty, err = m.Version()
		if err == nil {
			log.Info().Uint("version", v).Bool("dirty", dirty).Msg("versión del esquema")
		}
	default:
		log.Fatal().Str("cmd", cmd).Msg("comando desconocido")
	}
	if err != nil {
		log.Fatal().Err(err).Str("cmd", cmd).Msg("migración fallida")
	}
}

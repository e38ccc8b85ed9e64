// migrate aplica o revierte las migraciones SQL embebidas contra la base configurada.
//
// Uso: go run ./cmd/migrate [up|down|version]
// Sin argumento ejecuta "up". Lee la conexión de DATABASE_URL o DB_* (ver pkg/config).
package main

import (
	"fmt"
	"os"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/infrastructure/postgres"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/pkg/config"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/pkg/logger"
)

func main() {
	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	mg, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("migrador")
	}
	defer func() {
		if err := mg.Close(); err != nil {
			log.Warn().Err(err).Msg("cerrar migrador")
		}
	}()

	switch cmd {
	case "up":
		err = mg.Up()
	case "down":
		err = mg.Down()
	case "version":
		var (
			version uint
			dirty   bool
		)
		version, dirty, err = mg.Version()
		if err == nil {
			fmt.Printf("versión %d (dirty=%t)\n", version, dirty)
		}
	default:
		fmt.Fprintf(os.Stderr, "comando desconocido %q: usar up, down o version\n", cmd)
		os.Exit(2)
	}
	if err != nil {
		log.Error().Err(err).Str("cmd", cmd).Msg("migraciones")
		os.Exit(1)
	}
}

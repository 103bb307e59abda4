// Command migrate aplica o inspecciona las migraciones de la base de datos.
//
//	go run ./cmd/migrate            # up
//	go run ./cmd/migrate status
//	go run ./cmd/migrate down
package main

import (
	"context"
	"flag"

	"github.com/fanfanvithon/ProPymeTransparente/internal/infrastructure/postgres"
	"github.com/fanfanvithon/ProPymeTransparente/pkg/config"
	"github.com/fanfanvithon/ProPymeTransparente/pkg/logger"
)

func main() {
	flag.Parse()
	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	dsn := cfg.DB.ConnectionString()

	switch command {
	case "up":
		err = postgres.Migrate(ctx, dsn)
	case "status":
		err = postgres.MigrationStatus(ctx, dsn)
	case "down":
		err = postgres.MigrateDown(ctx, dsn)
	default:
		log.Fatal().Str("command", command).Msg("comando desconocido (up|status|down)")
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", command).Msg("migraciones")
	}
	log.Info().Str("command", command).Msg("migraciones ok")
}

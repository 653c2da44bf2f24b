// migrate aplica los scripts SQL embebidos que aún no figuren en schema_migrations.
//
// Uso: go run ./cmd/migrate
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/taller-inventario/internal/infrastructure/postgres"
	"github.com/jhoicas/taller-inventario/pkg/config"
	"github.com/jhoicas/taller-inventario/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db := postgres.NewDB(cfg.DB)
	defer db.Close()

	if err := postgres.Migrate(ctx, db, log); err != nil {
		log.Error().Err(err).Msg("migraciones")
		os.Exit(1)
	}
	log.Info().Msg("esquema al día")
}

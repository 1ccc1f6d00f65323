package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Rrens/workout-planner/internal/config"
	"github.com/Rrens/workout-planner/internal/logger"
	"github.com/Rrens/workout-planner/internal/repository/postgres"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	down := flag.Bool("down", false, "roll back the last migration instead of applying pending ones")
	source := flag.String("source", "", "migration source URL (default from config)")
	flag.Parse()

	// Load .env file if it exists
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if _, err := logger.Setup(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	if cfg.Database.Driver != config.DriverPostgres {
		log.Info().Str("driver", cfg.Database.Driver).Msg("Migrations only apply to postgres, nothing to do")
		return
	}

	sourceURL := cfg.Database.Postgres.MigrationsURL
	if *source != "" {
		sourceURL = *source
	}

	log.Info().
		Str("host", cfg.Database.Postgres.Host).
		Int("port", cfg.Database.Postgres.Port).
		Str("source", sourceURL).
		Msg("Connecting to database")

	if *down {
		err = postgres.RollbackMigrations(cfg.Database.Postgres.DSN(), sourceURL)
	} else {
		err = postgres.RunMigrations(cfg.Database.Postgres.DSN(), sourceURL)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}

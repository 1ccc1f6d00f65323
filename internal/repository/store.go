// Package repository opens the storage backend selected in config.
package repository

import (
	"context"
	"fmt"

	"github.com/Rrens/workout-planner/internal/config"
	"github.com/Rrens/workout-planner/internal/domain"
	"github.com/Rrens/workout-planner/internal/repository/mongo"
	"github.com/Rrens/workout-planner/internal/repository/postgres"
	"github.com/Rrens/workout-planner/internal/repository/sqlite"
	"github.com/rs/zerolog/log"
)

// Store bundles the repositories of one backend
type Store struct {
	Driver   string
	Users    domain.UserRepository
	Workouts domain.WorkoutRepository

	ping  func(ctx context.Context) error
	close func() error
}

// Ping verifies the backend is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

// Close releases the backend's connections
func (s *Store) Close() error {
	return s.close()
}

// Open connects to the backend named by cfg.Driver
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres, "":
		if cfg.Postgres.AutoMigrate {
			if err := postgres.RunMigrations(cfg.Postgres.DSN(), cfg.Postgres.MigrationsURL); err != nil {
				return nil, err
			}
		}

		db, err := postgres.NewDB(ctx, cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		log.Info().Str("host", cfg.Postgres.Host).Str("database", cfg.Postgres.Database).Msg("Connected to PostgreSQL")

		return &Store{
			Driver:   config.DriverPostgres,
			Users:    postgres.NewUserRepository(db),
			Workouts: postgres.NewWorkoutRepository(db),
			ping:     db.Ping,
			close: func() error {
				db.Close()
				return nil
			},
		}, nil

	case config.DriverMongo:
		db, err := mongo.NewDB(ctx, cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("mongo: %w", err)
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("Connected to MongoDB")

		return &Store{
			Driver:   config.DriverMongo,
			Users:    mongo.NewUserRepository(db),
			Workouts: mongo.NewWorkoutRepository(db),
			ping:     db.Ping,
			close:    db.Close,
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("sqlite: %w", err)
		}
		log.Info().Str("path", cfg.SQLite.Path).Msg("Opened SQLite database")

		return &Store{
			Driver:   config.DriverSQLite,
			Users:    sqlite.NewUserRepository(db),
			Workouts: sqlite.NewWorkoutRepository(db),
			ping:     db.Ping,
			close:    db.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

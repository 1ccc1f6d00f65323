package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Rrens/workout-planner/internal/api"
	"github.com/Rrens/workout-planner/internal/api/handler"
	"github.com/Rrens/workout-planner/internal/config"
	"github.com/Rrens/workout-planner/internal/llm/gemini"
	"github.com/Rrens/workout-planner/internal/logger"
	"github.com/Rrens/workout-planner/internal/repository"
	"github.com/Rrens/workout-planner/internal/repository/redis"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file - try multiple locations
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if err := godotenv.Load(p); err == nil {
			fmt.Printf("Loaded .env from: %s\n", p)
			break
		}
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logCloser, err := logger.Setup(cfg.Logging)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up logging")
	}
	defer logCloser.Close()

	log.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("database", cfg.Database.Driver).
		Msg("Starting Workout Planner API server")

	ctx := context.Background()

	// Initialize storage
	store, err := repository.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer store.Close()

	deps := api.Deps{
		Users:    store.Users,
		Workouts: store.Workouts,
		Ready:    map[string]handler.Pinger{"database": store},
	}

	// Initialize Redis cache
	if cfg.Cache.Enabled {
		redisClient, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()

		deps.Cache = redis.NewWorkoutCache(redisClient, cfg.Cache.TTL)
		deps.Ready["cache"] = redisClient
		log.Info().Str("addr", cfg.Redis.Addr()).Dur("ttl", cfg.Cache.TTL).Msg("Workout cache enabled")
	}

	// Initialize generator
	if cfg.LLM.Gemini.APIKey != "" {
		provider, err := gemini.NewProvider(ctx, cfg.LLM.Gemini)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Gemini client")
		}
		defer provider.Close()
		deps.Generator = provider
	} else {
		log.Warn().Msg("GEMINI_API_KEY is empty, workout generation is disabled")
	}

	router := api.NewRouter(cfg, deps)

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

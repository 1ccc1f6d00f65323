package api

import (
	"net/http"

	"github.com/Rrens/workout-planner/internal/api/handler"
	customMiddleware "github.com/Rrens/workout-planner/internal/api/middleware"
	"github.com/Rrens/workout-planner/internal/config"
	"github.com/Rrens/workout-planner/internal/domain"
	"github.com/Rrens/workout-planner/internal/llm"
	"github.com/Rrens/workout-planner/internal/security"
	"github.com/Rrens/workout-planner/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

// Deps are the long-lived dependencies the router wires into handlers
type Deps struct {
	Users    domain.UserRepository
	Workouts domain.WorkoutRepository

	// Cache is optional
	Cache domain.WorkoutCache

	// Generator is optional; without it generation requests fail with 500
	Generator llm.Provider

	// Ready lists the dependencies checked by /api/ready
	Ready map[string]handler.Pinger
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, deps Deps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	if cfg.Server.MiddlewareTimeout > 0 {
		r.Use(middleware.Timeout(cfg.Server.MiddlewareTimeout))
	}

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	jwtManager := security.NewJWTManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.Issuer,
	)

	if deps.Generator == nil {
		log.Warn().Msg("No workout generator configured, generation requests will fail")
	} else {
		log.Info().Str("provider", deps.Generator.Name()).Str("model", deps.Generator.Model()).Msg("Workout generator registered")
	}
	planClient := llm.NewPlanClient(deps.Generator, cfg.LLM.Gemini.Timeout)

	// Initialize services
	authService := service.NewAuthService(deps.Users, jwtManager)
	workoutService := service.NewWorkoutService(deps.Workouts, deps.Cache)
	generationService := service.NewGenerationService(planClient, workoutService)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	workoutHandler := handler.NewWorkoutHandler(workoutService, generationService)

	authMiddleware := customMiddleware.NewAuthMiddleware(jwtManager)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(deps.Ready))

		// Auth routes (public)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/me", authHandler.Me)

			r.Get("/workouts", workoutHandler.List)
			r.Post("/makeWorkout", workoutHandler.Create)
			r.Put("/workouts/{id}", workoutHandler.Update)
			r.Delete("/workouts/{id}", workoutHandler.Delete)

			r.Post("/generateWorkout", workoutHandler.Generate)
		})
	})

	return r
}

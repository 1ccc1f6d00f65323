package handler

import (
	"context"
	"net/http"

	"github.com/Rrens/workout-planner/internal/api/response"
	"github.com/rs/zerolog/log"
)

// Pinger is a dependency the service needs to be ready
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck returns a simple health check response
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{
		"status": "ok",
	})
}

// ReadyCheck returns readiness status of the store and optional cache
func ReadyCheck(deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for name, dep := range deps {
			if err := dep.Ping(r.Context()); err != nil {
				log.Warn().Err(err).Str("dependency", name).Msg("Readiness check failed")
				response.Error(w, http.StatusServiceUnavailable, name+" not ready")
				return
			}
		}

		response.OK(w, map[string]string{
			"status": "ready",
		})
	}
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Rrens/workout-planner/internal/api/response"
	"github.com/Rrens/workout-planner/internal/domain"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads a JSON request body into dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "invalid request body")
		return false
	}
	return true
}

// writeError maps a service error to its HTTP response. Internal details
// are logged and never returned to the client. Once the request deadline
// has passed nothing is written; the timeout middleware owns the 504.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(r.Context().Err(), context.DeadlineExceeded) {
		logError(r, err, "Request timed out")
		return
	}

	var validationErr *domain.ValidationError

	switch {
	case errors.Is(err, domain.ErrGeneration):
		logError(r, err, "Workout generation failed")
		response.InternalError(w, "generation failed")
	case errors.As(err, &validationErr):
		response.ValidationError(w, "validation failed", validationErr.Fields)
	case errors.Is(err, domain.ErrEmailTaken):
		response.Conflict(w, "email already registered")
	case errors.Is(err, domain.ErrInvalidCredentials):
		response.Unauthorized(w, domain.ErrInvalidCredentials.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		response.Unauthorized(w, "unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		response.NotFound(w, "not found")
	default:
		logError(r, err, "Request failed")
		response.InternalError(w, "server error")
	}
}

func logError(r *http.Request, err error, msg string) {
	log.Error().
		Err(err).
		Str("request_id", chimiddleware.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg(msg)
}

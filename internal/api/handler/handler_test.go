package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Rrens/workout-planner/internal/domain"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	HealthCheck(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"validation", &domain.ValidationError{Fields: map[string]string{"title": "is required"}}, http.StatusBadRequest, "validation failed"},
		{"email taken", fmt.Errorf("register: %w", domain.ErrEmailTaken), http.StatusConflict, "email already registered"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid email or password"},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"not found", domain.ErrNotFound, http.StatusNotFound, "not found"},
		{"generation", fmt.Errorf("%w: gemini timed out", domain.ErrGeneration), http.StatusInternalServerError, "generation failed"},
		{
			"invalid generated plan",
			fmt.Errorf("%w: %w", domain.ErrGeneration, &domain.ValidationError{Fields: map[string]string{"exercises": "is required"}}),
			http.StatusInternalServerError,
			"generation failed",
		},
		{"schema", fmt.Errorf("%w: %w", domain.ErrGeneration, &domain.SchemaError{Field: "exercises[1].sets", Reason: "missing"}), http.StatusInternalServerError, "generation failed"},
		{"unknown", errors.New("pq: connection reset by peer"), http.StatusInternalServerError, "server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/workouts", nil)
			rec := httptest.NewRecorder()

			writeError(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantMessage, body["message"])
			assert.NotContains(t, rec.Body.String(), "connection reset")
			assert.NotContains(t, rec.Body.String(), "exercises[1].sets")
		})
	}
}

func TestWriteError_ValidationFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/makeWorkout", nil)
	rec := httptest.NewRecorder()

	writeError(rec, req, &domain.ValidationError{Fields: map[string]string{
		"title":             "is required",
		"exercises[0].reps": "must be greater than 0",
	}})

	var body struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "is required", body.Errors["title"])
	assert.Contains(t, body.Errors, "exercises[0].reps")
}

func TestWriteError_AfterDeadlineWritesNothing(t *testing.T) {
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	req := httptest.NewRequest(http.MethodPost, "/api/workouts/generate", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	writeError(rec, req, fmt.Errorf("%w: %w", domain.ErrGeneration, ctx.Err()))

	assert.False(t, rec.Flushed)
	assert.Empty(t, rec.Header())
	assert.Zero(t, rec.Body.Len())
}

func TestWriteError_TimeoutMiddlewareOwnsResponse(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		writeError(w, r, fmt.Errorf("%w: %w", domain.ErrGeneration, r.Context().Err()))
	})
	h := chimiddleware.Timeout(10 * time.Millisecond)(slow)

	req := httptest.NewRequest(http.MethodPost, "/api/workouts/generate", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.NotContains(t, rec.Body.String(), "generation failed")
}

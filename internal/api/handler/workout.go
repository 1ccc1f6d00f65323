package handler

import (
	"net/http"

	"github.com/Rrens/workout-planner/internal/api/middleware"
	"github.com/Rrens/workout-planner/internal/api/response"
	"github.com/Rrens/workout-planner/internal/domain"
	"github.com/Rrens/workout-planner/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// WorkoutHandler handles workout endpoints
type WorkoutHandler struct {
	workoutService    *service.WorkoutService
	generationService *service.GenerationService
}

// NewWorkoutHandler creates a new workout handler
func NewWorkoutHandler(workoutService *service.WorkoutService, generationService *service.GenerationService) *WorkoutHandler {
	return &WorkoutHandler{
		workoutService:    workoutService,
		generationService: generationService,
	}
}

// List returns the caller's workouts
func (h *WorkoutHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	workouts, err := h.workoutService.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.OK(w, workouts)
}

// Create stores a workout for the caller
func (h *WorkoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.WorkoutInput
	if !decodeJSON(w, r, &input) {
		return
	}

	workout, err := h.workoutService.Create(r.Context(), userID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.Created(w, workout)
}

// Update replaces one of the caller's workouts
func (h *WorkoutHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	workoutID, ok := workoutIDParam(w, r)
	if !ok {
		return
	}

	var input domain.WorkoutInput
	if !decodeJSON(w, r, &input) {
		return
	}

	workout, err := h.workoutService.Update(r.Context(), userID, workoutID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.OK(w, workout)
}

// Delete removes one of the caller's workouts
func (h *WorkoutHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	workoutID, ok := workoutIDParam(w, r)
	if !ok {
		return
	}

	if err := h.workoutService.Delete(r.Context(), userID, workoutID); err != nil {
		writeError(w, r, err)
		return
	}

	response.Message(w, http.StatusOK, "Workout deleted successfully")
}

// Generate creates a workout for the caller from a free-text description
func (h *WorkoutHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.GenerateRequest
	if !decodeJSON(w, r, &input) {
		return
	}

	workout, err := h.generationService.Generate(r.Context(), userID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.Created(w, workout)
}

// workoutIDParam parses the {id} URL parameter. A malformed id cannot name
// any workout, so it gets the same 404 as a missing one.
func workoutIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w, "not found")
		return uuid.Nil, false
	}
	return id, true
}

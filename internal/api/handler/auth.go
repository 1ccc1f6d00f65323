package handler

import (
	"net/http"

	"github.com/Rrens/workout-planner/internal/api/middleware"
	"github.com/Rrens/workout-planner/internal/api/response"
	"github.com/Rrens/workout-planner/internal/domain"
	"github.com/Rrens/workout-planner/internal/service"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles user registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input domain.UserCreate
	if !decodeJSON(w, r, &input) {
		return
	}

	if _, err := h.authService.Register(r.Context(), input); err != nil {
		writeError(w, r, err)
		return
	}

	response.Message(w, http.StatusCreated, "User registered successfully")
}

// Login handles user login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input domain.UserLogin
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.authService.Login(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.OK(w, result)
}

// Me returns the current authenticated user
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	user, err := h.authService.Profile(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.OK(w, map[string]string{
		"name":  user.Name,
		"email": user.Email,
	})
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jobdeck/jobdeck/internal/services"
	"github.com/jobdeck/jobdeck/internal/store"
	"github.com/jobdeck/jobdeck/types"
)

// UserHandler provides login and signup endpoints plus the admin listing.
type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// AuthRouter registers the login route on the given router.
func AuthRouter(r chi.Router, userService *services.UserService) {
	handler := NewUserHandler(userService)
	r.Post("/", handler.Login)
}

// UsersRouter registers signup and the admin listing on the given router.
func UsersRouter(r chi.Router, userService *services.UserService, adminOnly func(http.Handler) http.Handler) {
	handler := NewUserHandler(userService)
	r.Post("/", handler.Signup)
	r.With(adminOnly).Get("/", handler.List)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	DOB      string `json:"dob"`
}

type UserListResponse struct {
	Users []types.User `json:"users"`
}

// Login checks credentials and returns the identity without its password.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		writeError(w, http.StatusInternalServerError, "authentication failed")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Signup creates a new identity and returns it without its password.
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.DOB = strings.TrimSpace(req.DOB)
	if req.Name == "" || req.Email == "" || req.Password == "" || req.DOB == "" {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	user, err := h.userService.Register(r.Context(), req.Name, req.Email, req.Password, req.DOB)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			writeError(w, http.StatusConflict, "user with this email already exists")
			return
		}
		if errors.Is(err, services.ErrInvalidDOB) {
			writeError(w, http.StatusBadRequest, "invalid date of birth")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// List returns every registered identity. Admin read path.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve users")
		return
	}
	writeJSON(w, http.StatusOK, UserListResponse{Users: users})
}

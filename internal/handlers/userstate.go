package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jobdeck/jobdeck/internal/services"
)

// UserStateHandler provides the user-data endpoints.
type UserStateHandler struct {
	stateService *services.UserStateService
}

func NewUserStateHandler(stateService *services.UserStateService) *UserStateHandler {
	return &UserStateHandler{stateService: stateService}
}

// UserStateRouter registers user-data routes on the given router.
func UserStateRouter(r chi.Router, stateService *services.UserStateService) {
	handler := NewUserStateHandler(stateService)
	r.Get("/", handler.Get)
	r.Post("/", handler.Put)
}

// PutStateRequest carries a user-state upsert. Pointer fields
// distinguish "omitted" (nil: keep the stored value) from
// "present but empty" (clear the stored value).
type PutStateRequest struct {
	UserID         string   `json:"userId"`
	AppliedJobs    *[]int64 `json:"appliedJobs"`
	BookmarkedJobs *[]int64 `json:"bookmarkedJobs"`
}

type PutStateResponse struct {
	Success bool `json:"success"`
}

// Get returns the stored record for the userId query parameter, or the
// default empty record when none exists.
func (h *UserStateHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("userId"))
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	state, err := h.stateService.Get(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve user data")
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// Put upserts the record for the given userId. Omitted fields keep
// their previously stored values.
func (h *UserStateHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req PutStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	err := h.stateService.Put(r.Context(), req.UserID, derefJobs(req.AppliedJobs), derefJobs(req.BookmarkedJobs))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update user data")
		return
	}
	writeJSON(w, http.StatusOK, PutStateResponse{Success: true})
}

// derefJobs maps an absent field to nil and a present field to a
// non-nil slice, preserving the omitted-vs-empty distinction for the
// store's patch contract.
func derefJobs(jobs *[]int64) []int64 {
	if jobs == nil {
		return nil
	}
	if *jobs == nil {
		return []int64{}
	}
	return *jobs
}

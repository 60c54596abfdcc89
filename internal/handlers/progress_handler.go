package handlers

import (
	"net/http"

	"englishpath/internal/logger"
	"englishpath/internal/models"
	"englishpath/internal/service"
)

// ProgressHandler serves module lists, completion maps and practice
type ProgressHandler struct {
	progress *service.ProgressService
	modules  *service.ModuleService
	log      *logger.Logger
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progress *service.ProgressService, modules *service.ModuleService, log *logger.Logger) *ProgressHandler {
	return &ProgressHandler{progress: progress, modules: modules, log: log}
}

type recordItemRequest struct {
	ItemKey   string `json:"itemKey"`
	Completed *bool  `json:"completed"`
}

type practiceRequest struct {
	Completed *bool `json:"completed"`
}

type moduleProgressResponse struct {
	Module   models.ModuleKey `json:"module"`
	Progress map[string]bool  `json:"progress"`
	User     *models.User     `json:"user,omitempty"`
}

type practiceResponse struct {
	Date      string      `json:"date"`
	Completed bool        `json:"completed"`
	User      models.User `json:"user"`
}

// ListModules returns every module with its progress and status
func (h *ProgressHandler) ListModules(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserIDFromContext(r.Context())

	list, err := h.modules.ComputeModuleList(userID)
	if err != nil {
		respondWithServiceError(w, h.log, "failed to compute module list", err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// GetModuleProgress returns {itemKey -> completed} for one module
func (h *ProgressHandler) GetModuleProgress(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserIDFromContext(r.Context())
	module := models.ModuleKey(r.PathValue("module"))

	completion, err := h.progress.ModuleCompletion(userID, module)
	if err != nil {
		respondWithServiceError(w, h.log, "failed to load module progress", err)
		return
	}
	respondJSON(w, http.StatusOK, moduleProgressResponse{Module: module, Progress: completion})
}

// RecordModuleProgress marks one item and awards points when completed
func (h *ProgressHandler) RecordModuleProgress(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserIDFromContext(r.Context())
	module := models.ModuleKey(r.PathValue("module"))

	var req recordItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.log, http.StatusBadRequest, ErrInvalidJSON, "record item body", err)
		return
	}
	if req.Completed == nil {
		respondWithError(w, h.log, http.StatusBadRequest, ErrCompletedRequired, "", nil)
		return
	}

	completion, user, err := h.progress.RecordItem(userID, module, req.ItemKey, *req.Completed)
	if err != nil {
		respondWithServiceError(w, h.log, "failed to record item", err)
		return
	}
	respondJSON(w, http.StatusOK, moduleProgressResponse{Module: module, Progress: completion, User: &user})
}

// CompletePractice records today's daily practice
func (h *ProgressHandler) CompletePractice(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserIDFromContext(r.Context())

	var req practiceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.log, http.StatusBadRequest, ErrInvalidJSON, "practice body", err)
		return
	}
	if req.Completed == nil {
		respondWithError(w, h.log, http.StatusBadRequest, ErrCompletedRequired, "", nil)
		return
	}

	date, user, err := h.progress.CompletePractice(userID, *req.Completed)
	if err != nil {
		respondWithServiceError(w, h.log, "failed to record practice", err)
		return
	}
	respondJSON(w, http.StatusOK, practiceResponse{Date: date, Completed: *req.Completed, User: user})
}

// Summary returns completed modules, exercises and the practice streak
func (h *ProgressHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserIDFromContext(r.Context())

	summary, err := h.progress.Summary(userID)
	if err != nil {
		respondWithServiceError(w, h.log, "failed to load summary", err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

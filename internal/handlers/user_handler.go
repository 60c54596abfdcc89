package handlers

import (
	"errors"
	"net/http"

	"englishpath/internal/credentials"
	"englishpath/internal/logger"
	"englishpath/internal/models"
	"englishpath/internal/security"
	"englishpath/internal/service"
)

// UserHandler handles learner creation and lookup
type UserHandler struct {
	progress *service.ProgressService
	sessions *security.SessionManager
	log      *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(progress *service.ProgressService, sessions *security.SessionManager, log *logger.Logger) *UserHandler {
	return &UserHandler{progress: progress, sessions: sessions, log: log}
}

type createUserRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

type createUserResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// GetCurrentUser returns the learner behind the session
func (h *UserHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserIDFromContext(r.Context())

	user, err := h.progress.CurrentUser(userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			respondWithError(w, h.log, http.StatusNotFound, ErrUserNotFound, "current user", err)
			return
		}
		respondWithServiceError(w, h.log, "failed to load current user", err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// CreateUser registers a learner, creates their records and starts a session
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.log, http.StatusBadRequest, ErrInvalidJSON, "create user body", err)
		return
	}

	user, err := h.progress.CreateUser(req.Username, req.DisplayName)
	if err != nil {
		respondWithServiceError(w, h.log, "failed to create user", err)
		return
	}

	token, expires, err := h.sessions.Issue(user.ID)
	if err != nil {
		respondWithServiceError(w, h.log, "failed to issue session", err)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, token, expires))
	respondJSON(w, http.StatusCreated, createUserResponse{User: user, Token: token})
}

// SuggestUsername returns a random username the client may offer the learner
func (h *UserHandler) SuggestUsername(w http.ResponseWriter, r *http.Request) {
	username, err := credentials.GenerateUsername()
	if err != nil {
		respondWithServiceError(w, h.log, "failed to generate username", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"username": username})
}

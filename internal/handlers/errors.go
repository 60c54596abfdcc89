package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"englishpath/internal/audio"
	"englishpath/internal/logger"
	"englishpath/internal/models"
	"englishpath/internal/service"
	"englishpath/internal/validation"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, log *logger.Logger, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		if status >= http.StatusInternalServerError {
			log.Error(logMsg, "status", status, "error", err)
		} else {
			log.Debug(logMsg, "status", status, "error", err)
		}
	}

	respondJSON(w, status, errorResponse{Error: userMsg})
}

// respondWithServiceError maps domain errors onto HTTP statuses
func respondWithServiceError(w http.ResponseWriter, log *logger.Logger, logMsg string, err error) {
	var ve validation.ValidationError
	switch {
	case errors.As(err, &ve):
		respondWithError(w, log, http.StatusBadRequest, ve.Error(), logMsg, err)
	case errors.Is(err, models.ErrNotFound):
		respondWithError(w, log, http.StatusNotFound, ErrNotFound, logMsg, err)
	case errors.Is(err, models.ErrAlreadyInitialized):
		respondWithError(w, log, http.StatusConflict, ErrAlreadyInitialized, logMsg, err)
	case errors.Is(err, service.ErrEmailDisabled):
		respondWithError(w, log, http.StatusServiceUnavailable, ErrEmailDisabled, logMsg, err)
	case errors.Is(err, audio.ErrUpstream):
		respondWithError(w, log, http.StatusBadGateway, ErrAudioUnavailable, logMsg, err)
	default:
		respondWithError(w, log, http.StatusInternalServerError, ErrInternalServerError, logMsg, err)
	}
}

// decodeJSON reads a size-limited JSON body into dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

package handlers

import (
	"fmt"
	"net/http"

	"englishpath/internal/audio"
	"englishpath/internal/content"
	"englishpath/internal/logger"
	"englishpath/internal/models"
)

// ContentHandler serves the static curriculum and pronunciation audio
type ContentHandler struct {
	catalog *content.Catalog
	tts     *audio.TTSService
	log     *logger.Logger
}

// NewContentHandler creates a new content handler
func NewContentHandler(catalog *content.Catalog, tts *audio.TTSService, log *logger.Logger) *ContentHandler {
	return &ContentHandler{catalog: catalog, tts: tts, log: log}
}

type contentResponse struct {
	Module  models.ModuleKey `json:"module"`
	Title   string           `json:"title"`
	Path    string           `json:"path"`
	Tracked bool             `json:"tracked"`
	Entries []content.Entry  `json:"entries"`
}

// GetContent returns the entries of one module
func (h *ContentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	key := models.ModuleKey(r.PathValue("module"))

	module, ok := h.catalog.Module(key)
	if !ok {
		respondWithError(w, h.log, http.StatusNotFound, ErrNotFound, "", nil)
		return
	}
	entries, _ := h.catalog.Entries(key)

	w.Header().Set("Cache-Control", "public, max-age=3600")
	respondJSON(w, http.StatusOK, contentResponse{
		Module:  module.Key,
		Title:   module.Title,
		Path:    module.Path,
		Tracked: module.Tracked,
		Entries: entries,
	})
}

// GetAudio streams the pronunciation of one entry
func (h *ContentHandler) GetAudio(w http.ResponseWriter, r *http.Request) {
	module := models.ModuleKey(r.PathValue("module"))

	key, err := models.NormalizeItemKey(module, r.PathValue("item"))
	if err != nil {
		respondWithError(w, h.log, http.StatusNotFound, ErrNotFound, "audio item key", err)
		return
	}
	entry, ok := h.catalog.Lookup(module, key)
	if !ok {
		respondWithServiceError(w, h.log, "audio lookup",
			fmt.Errorf("%s item %q: %w", module, key, models.ErrNotFound))
		return
	}

	path, err := h.tts.Pronunciation(r.Context(), string(module), entry.Key, entry.Text)
	if err != nil {
		respondWithServiceError(w, h.log, "failed to fetch pronunciation", err)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeFile(w, r, path)
}

package handlers

import (
	"net/http"

	"englishpath/internal/logger"
	"englishpath/internal/service"
)

// ReportHandler e-mails progress reports
type ReportHandler struct {
	reports *service.ReportService
	log     *logger.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(reports *service.ReportService, log *logger.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, log: log}
}

type reportRequest struct {
	Email string `json:"email"`
}

// SendReport mails the current learner's progress report
func (h *ReportHandler) SendReport(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserIDFromContext(r.Context())

	var req reportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, h.log, http.StatusBadRequest, ErrInvalidJSON, "report body", err)
		return
	}

	if err := h.reports.Send(r.Context(), userID, req.Email); err != nil {
		respondWithServiceError(w, h.log, "failed to send report", err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

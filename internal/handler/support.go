package handler

import (
	"log/slog"
	"net/http"

	"github.com/tanvir/codecollab/internal/service"
	"github.com/tanvir/codecollab/internal/validation"
)

// SupportHandler files support tickets.
type SupportHandler struct {
	support *service.SupportService
	logger  *slog.Logger
}

func NewSupportHandler(support *service.SupportService, logger *slog.Logger) *SupportHandler {
	return &SupportHandler{support: support, logger: logger}
}

func (h *SupportHandler) HandleCreateTicket(w http.ResponseWriter, r *http.Request) {
	var payload validation.CreateSupportTicket
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	ticket, err := h.support.FileTicket(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ticket)
}

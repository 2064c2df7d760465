package handler

import (
	"log/slog"
	"net/http"

	"github.com/tanvir/codecollab/internal/apperror"
	"github.com/tanvir/codecollab/internal/integration"
	"github.com/tanvir/codecollab/internal/service"
)

// IntegrationHandler fronts the external-service stubs: code execution,
// formatting, assistance and video-call room provisioning. Each endpoint
// keeps its request/response contract while the real providers are absent.
type IntegrationHandler struct {
	runner    integration.CodeRunner
	formatter integration.Formatter
	assistant integration.Assistant
	calls     *service.CallService
	logger    *slog.Logger
}

func NewIntegrationHandler(
	runner integration.CodeRunner,
	formatter integration.Formatter,
	assistant integration.Assistant,
	calls *service.CallService,
	logger *slog.Logger,
) *IntegrationHandler {
	return &IntegrationHandler{
		runner:    runner,
		formatter: formatter,
		assistant: assistant,
		calls:     calls,
		logger:    logger,
	}
}

func (h *IntegrationHandler) HandleExecute(w http.ResponseWriter, r *http.Request) {
	var req integration.ExecutionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Code == "" {
		writeError(w, apperror.ValidationFailed("code", "code cannot be empty"))
		return
	}

	result, err := h.runner.Execute(r.Context(), req)
	if err != nil {
		h.logger.Error("code execution failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *IntegrationHandler) HandleFormat(w http.ResponseWriter, r *http.Request) {
	var req integration.FormatRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Code == "" {
		writeError(w, apperror.ValidationFailed("code", "code cannot be empty"))
		return
	}

	result, err := h.formatter.Format(r.Context(), req)
	if err != nil {
		h.logger.Error("code formatting failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *IntegrationHandler) HandleAssist(w http.ResponseWriter, r *http.Request) {
	var req integration.AssistRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Code == "" {
		writeError(w, apperror.ValidationFailed("code", "code cannot be empty"))
		return
	}

	result, err := h.assistant.Assist(r.Context(), req)
	if err != nil {
		h.logger.Error("assist request failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// createRoomRequest is the body for POST /api/daily/room.
type createRoomRequest struct {
	SnippetID string `json:"snippetId"`
	UserID    string `json:"userId"`
}

func (h *IntegrationHandler) HandleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	call, err := h.calls.StartRoom(r.Context(), req.SnippetID, req.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, call)
}

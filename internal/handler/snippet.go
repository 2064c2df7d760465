package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tanvir/codecollab/internal/service"
	"github.com/tanvir/codecollab/internal/validation"
)

// SnippetHandler serves snippets, their chat messages and presence records.
type SnippetHandler struct {
	snippets *service.SnippetService
	logger   *slog.Logger
}

func NewSnippetHandler(snippets *service.SnippetService, logger *slog.Logger) *SnippetHandler {
	return &SnippetHandler{snippets: snippets, logger: logger}
}

func (h *SnippetHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var payload validation.CreateSnippet
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	snippet, err := h.snippets.Create(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, snippet)
}

func (h *SnippetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	snippet, err := h.snippets.GetByShareToken(r.Context(), chi.URLParam(r, "shareToken"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snippet)
}

func (h *SnippetHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload validation.UpdateSnippet
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	snippet, err := h.snippets.Update(r.Context(), chi.URLParam(r, "shareToken"), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snippet)
}

func (h *SnippetHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.snippets.Delete(r.Context(), chi.URLParam(r, "shareToken")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SnippetHandler) HandleCreateMessage(w http.ResponseWriter, r *http.Request) {
	var payload validation.CreateMessage
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	msg, err := h.snippets.PostMessage(r.Context(), chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

func (h *SnippetHandler) HandleListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.snippets.ListMessages(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

func (h *SnippetHandler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	var payload validation.JoinSnippet
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	collab, err := h.snippets.Join(r.Context(), chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, collab)
}

func (h *SnippetHandler) HandleListCollaborators(w http.ResponseWriter, r *http.Request) {
	collabs, err := h.snippets.ListCollaborators(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, collabs)
}

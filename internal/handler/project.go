package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tanvir/codecollab/internal/service"
	"github.com/tanvir/codecollab/internal/validation"
)

// ProjectHandler serves projects and their file trees and secrets.
type ProjectHandler struct {
	projects *service.ProjectService
	logger   *slog.Logger
}

func NewProjectHandler(projects *service.ProjectService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, logger: logger}
}

func (h *ProjectHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var payload validation.CreateProject
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	project, err := h.projects.Create(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

// HandleList returns the caller's projects. The ownerId query parameter is
// mandatory.
func (h *ProjectHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.ListByOwner(r.Context(), r.URL.Query().Get("ownerId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	project, err := h.projects.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) HandleCreateFile(w http.ResponseWriter, r *http.Request) {
	var payload validation.CreateProjectFile
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	file, err := h.projects.CreateFile(r.Context(), chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, file)
}

func (h *ProjectHandler) HandleListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := h.projects.ListFiles(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, files)
}

func (h *ProjectHandler) HandleCreateSecret(w http.ResponseWriter, r *http.Request) {
	var payload validation.CreateProjectSecret
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	secret, err := h.projects.CreateSecret(r.Context(), chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, secret)
}

func (h *ProjectHandler) HandleListSecrets(w http.ResponseWriter, r *http.Request) {
	secrets, err := h.projects.ListSecrets(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, secrets)
}

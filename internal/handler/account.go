package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tanvir/codecollab/internal/service"
	"github.com/tanvir/codecollab/internal/validation"
)

// AccountHandler serves profiles and email-verification tokens.
type AccountHandler struct {
	accounts *service.AccountService
	logger   *slog.Logger
}

func NewAccountHandler(accounts *service.AccountService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{accounts: accounts, logger: logger}
}

func (h *AccountHandler) HandleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var payload validation.CreateProfile
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	profile, err := h.accounts.CreateProfile(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

func (h *AccountHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.accounts.GetProfile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *AccountHandler) HandleMintToken(w http.ResponseWriter, r *http.Request) {
	var payload validation.CreateVerificationToken
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	token, err := h.accounts.MintVerificationToken(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, token)
}

func (h *AccountHandler) HandleGetToken(w http.ResponseWriter, r *http.Request) {
	token, err := h.accounts.GetVerificationToken(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, token)
}

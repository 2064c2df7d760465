package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tanvir/codecollab/internal/service"
	"github.com/tanvir/codecollab/internal/validation"
)

// ChallengeHandler serves practice challenges, submissions, user stats and
// the leaderboard.
type ChallengeHandler struct {
	challenges *service.ChallengeService
	logger     *slog.Logger
}

func NewChallengeHandler(challenges *service.ChallengeService, logger *slog.Logger) *ChallengeHandler {
	return &ChallengeHandler{challenges: challenges, logger: logger}
}

func (h *ChallengeHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var payload validation.GenerateChallenge
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	challenge, err := h.challenges.Generate(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, challenge)
}

func (h *ChallengeHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	challenges, err := h.challenges.List(r.Context(),
		r.URL.Query().Get("difficulty"),
		r.URL.Query().Get("language"),
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, challenges)
}

func (h *ChallengeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	challenge, err := h.challenges.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, challenge)
}

func (h *ChallengeHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var payload validation.SubmitChallenge
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	submission, err := h.challenges.Submit(r.Context(), chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, submission)
}

func (h *ChallengeHandler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	board, err := h.challenges.Leaderboard(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

func (h *ChallengeHandler) HandleUserStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.challenges.UserStats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/carecircle/internal/auth"
	"github.com/dukerupert/carecircle/internal/coordination"
)

type PuzzleHandler struct {
	svc    *coordination.Service
	logger *slog.Logger
}

func NewPuzzleHandler(svc *coordination.Service, logger *slog.Logger) *PuzzleHandler {
	return &PuzzleHandler{svc: svc, logger: logger}
}

// locale prefers the query parameter, then Accept-Language.
func locale(r *http.Request) string {
	if l := r.URL.Query().Get("locale"); l != "" {
		return l
	}
	return r.Header.Get("Accept-Language")
}

// Today handles GET /api/puzzle
func (h *PuzzleHandler) Today(w http.ResponseWriter, r *http.Request) {
	m, _ := auth.FromContext(r.Context())
	writeJSON(w, http.StatusOK, h.svc.TodaysPuzzle(r.Context(), m, locale(r)))
}

// Submit handles POST /api/puzzle/answers
func (h *PuzzleHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req coordination.PuzzleAnswer
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Locale == "" {
		req.Locale = locale(r)
	}

	m, _ := auth.FromContext(r.Context())
	res, err := h.svc.SubmitPuzzleAnswer(r.Context(), m, req)
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to submit answer")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Leaderboard handles GET /api/puzzle/leaderboard
func (h *PuzzleHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Leaderboard(r.Context(), auth.CircleID(r.Context())))
}

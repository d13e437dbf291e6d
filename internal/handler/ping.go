package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/dukerupert/carecircle/internal/auth"
	"github.com/dukerupert/carecircle/internal/coordination"
	"github.com/dukerupert/carecircle/internal/model"
)

type PingHandler struct {
	svc    *coordination.Service
	logger *slog.Logger
}

func NewPingHandler(svc *coordination.Service, logger *slog.Logger) *PingHandler {
	return &PingHandler{svc: svc, logger: logger}
}

type pingRequest struct {
	ToRole model.Role `json:"to_role"`
}

// Send handles POST /api/pings. The body is optional.
func (h *PingHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req pingRequest
	if r.ContentLength != 0 {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 4<<10))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid body")
			return
		}
		if len(body) > 0 {
			if err := json.Unmarshal(body, &req); err != nil {
				writeError(w, http.StatusBadRequest, "invalid JSON")
				return
			}
		}
	}

	m, _ := auth.FromContext(r.Context())
	p, err := h.svc.SendPing(r.Context(), m, req.ToRole)
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to send ping")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// Current handles GET /api/notifications/current
func (h *PingHandler) Current(w http.ResponseWriter, r *http.Request) {
	m, _ := auth.FromContext(r.Context())
	writeJSON(w, http.StatusOK, h.svc.CurrentNotification(r.Context(), m))
}

// Dismiss handles POST /api/notifications/current/dismiss
func (h *PingHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	m, _ := auth.FromContext(r.Context())
	h.svc.DismissNotification(m)
	w.WriteHeader(http.StatusNoContent)
}

// Activity handles GET /api/activity
func (h *PingHandler) Activity(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Activity(r.Context(), auth.CircleID(r.Context())))
}

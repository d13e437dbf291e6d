package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/carecircle/internal/auth"
	"github.com/dukerupert/carecircle/internal/coordination"
)

type TaskHandler struct {
	svc    *coordination.Service
	logger *slog.Logger
}

func NewTaskHandler(svc *coordination.Service, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{svc: svc, logger: logger}
}

// List handles GET /api/tasks
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Tasks(r.Context(), auth.CircleID(r.Context())))
}

// CheckReset handles POST /api/tasks/reset-check. Clients call it on load.
func (h *TaskHandler) CheckReset(w http.ResponseWriter, r *http.Request) {
	circleID := auth.CircleID(r.Context())
	d, err := h.svc.CheckAndApplyDailyReset(r.Context(), circleID)
	if err != nil {
		h.logger.Warn("daily reset check", "circle", circleID, "error", err)
		snap := h.svc.Tasks(r.Context(), circleID)
		snap.Stale = true
		snap.Error = "daily reset failed"
		writeJSON(w, http.StatusOK, snap)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"action": d.Action.String(),
		"date":   d.Today,
		"reset":  len(d.Reset),
		"tasks":  h.svc.Tasks(r.Context(), circleID),
	})
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req coordination.TaskInput
	if !decodeJSON(w, r, &req) {
		return
	}

	m, _ := auth.FromContext(r.Context())
	task, err := h.svc.CreateTask(r.Context(), m, req)
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to create task")
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

type completeRequest struct {
	Completed bool `json:"completed"`
}

// Complete handles POST /api/tasks/{id}/complete
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req completeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	task, err := h.svc.SetTaskCompleted(r.Context(), auth.CircleID(r.Context()), r.PathValue("id"), req.Completed)
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to update task")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteTask(r.Context(), auth.CircleID(r.Context()), r.PathValue("id")); err != nil {
		writeServiceError(w, h.logger, err, "failed to delete task")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

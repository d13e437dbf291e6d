package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/carecircle/internal/auth"
	"github.com/dukerupert/carecircle/internal/coordination"
	"github.com/dukerupert/carecircle/internal/model"
)

type HelpHandler struct {
	svc    *coordination.Service
	logger *slog.Logger
}

func NewHelpHandler(svc *coordination.Service, logger *slog.Logger) *HelpHandler {
	return &HelpHandler{svc: svc, logger: logger}
}

// Catalog handles GET /api/catalog
func (h *HelpHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Catalog())
}

// Board handles GET /api/help
func (h *HelpHandler) Board(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Board(r.Context(), auth.CircleID(r.Context())))
}

// Matches handles GET /api/matches?dismissed=key1,key2
func (h *HelpHandler) Matches(w http.ResponseWriter, r *http.Request) {
	dismissed := make(map[string]bool)
	for _, v := range r.URL.Query()["dismissed"] {
		for _, key := range strings.Split(v, ",") {
			if key = strings.TrimSpace(key); key != "" {
				dismissed[key] = true
			}
		}
	}
	writeJSON(w, http.StatusOK, h.svc.ActiveMatches(r.Context(), auth.CircleID(r.Context()), dismissed))
}

type helpRequest struct {
	ID string `json:"id"`
}

// CreateOffer handles POST /api/offers
func (h *HelpHandler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	var req helpRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	m, _ := auth.FromContext(r.Context())
	offer, err := h.svc.AddOffer(r.Context(), m, strings.TrimSpace(req.ID))
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to add offer")
		return
	}
	writeJSON(w, http.StatusCreated, offer)
}

// DeleteOffer handles DELETE /api/offers/{id}
func (h *HelpHandler) DeleteOffer(w http.ResponseWriter, r *http.Request) {
	m, _ := auth.FromContext(r.Context())
	if err := h.svc.RemoveOffer(r.Context(), m, r.PathValue("id")); err != nil {
		writeServiceError(w, h.logger, err, "failed to remove offer")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateRequest handles POST /api/requests
func (h *HelpHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req helpRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	m, _ := auth.FromContext(r.Context())
	request, err := h.svc.AddRequest(r.Context(), m, strings.TrimSpace(req.ID))
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to add request")
		return
	}
	writeJSON(w, http.StatusCreated, request)
}

// DeleteRequest handles DELETE /api/requests/{id}
func (h *HelpHandler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	m, _ := auth.FromContext(r.Context())
	if err := h.svc.RemoveRequest(r.Context(), m, r.PathValue("id")); err != nil {
		writeServiceError(w, h.logger, err, "failed to remove request")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type statusRequest struct {
	Status model.Status `json:"status"`
}

// SetStatus handles PUT /api/status
func (h *HelpHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	m, _ := auth.FromContext(r.Context())
	ms, err := h.svc.SetStatus(r.Context(), m, req.Status)
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to set status")
		return
	}
	writeJSON(w, http.StatusOK, ms)
}

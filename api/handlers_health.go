package api

import (
	"net/http"

	"github.com/fmizzell/simplecal"
)

type HealthHandler struct {
	store *simplecal.Store
}

func NewHealthHandler(store *simplecal.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Health handles GET /health. The store is degraded when the last save failed.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.LastSaveError(); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "degraded", Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// Snapshot handles GET /snapshot
func (h *HealthHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Snapshot())
}

// Stats handles GET /stats
func (h *HealthHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Stats())
}

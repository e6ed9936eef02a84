package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fmizzell/simplecal"
)

type GoalHandler struct {
	store      *simplecal.Store
	decomposer simplecal.Decomposer
}

func NewGoalHandler(store *simplecal.Store, decomposer simplecal.Decomposer) *GoalHandler {
	return &GoalHandler{store: store, decomposer: decomposer}
}

// List handles GET /goals/{date}
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r, h.store)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.store.GoalsFor(date))
}

// Add handles POST /goals/{date}
func (h *GoalHandler) Add(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r, h.store)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req textRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	entry, ok := h.store.AddGoal(date, req.Text, simplecal.ParseCategory(req.Category))
	if !ok {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// Delete handles DELETE /goals/{date}
func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r, h.store)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req indicesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := h.store.DeleteAt(simplecal.GoalsOn(date), req.Indices); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.store.GoalsFor(date))
}

// Decompose handles POST /goals/{date}/decompose
func (h *GoalHandler) Decompose(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r, h.store)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req textRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if h.decomposer == nil {
		writeStoreError(w, simplecal.ErrCredentialsMissing())
		return
	}
	if err := h.store.DecomposeGoal(r.Context(), h.decomposer, date, req.Text); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.store.GoalsFor(date))
}

// TogglePriority handles POST /goals/{date}/{id}/priority
func (h *GoalHandler) TogglePriority(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r, h.store)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id := chi.URLParam(r, "id")
	if _, c, ok := h.store.Find(id); !ok || c != simplecal.GoalsOn(date) {
		writeError(w, http.StatusNotFound, "goal not found on "+simplecal.DateKey(date))
		return
	}
	h.store.TogglePriority(date, id)
	entry, _, _ := h.store.Find(id)
	writeJSON(w, http.StatusOK, entry)
}

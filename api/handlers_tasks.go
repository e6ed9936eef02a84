package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fmizzell/simplecal"
)

type TaskHandler struct {
	store      *simplecal.Store
	decomposer simplecal.Decomposer
}

func NewTaskHandler(store *simplecal.Store, decomposer simplecal.Decomposer) *TaskHandler {
	return &TaskHandler{store: store, decomposer: decomposer}
}

type decomposeResponse struct {
	Inbox []simplecal.Entry `json:"inbox"`
	Today []simplecal.Entry `json:"today"`
}

type startTimeRequest struct {
	StartTime *time.Time `json:"startTime"`
}

// ListInbox handles GET /inbox
func (h *TaskHandler) ListInbox(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.InboxEntries())
}

// AddInbox handles POST /inbox
func (h *TaskHandler) AddInbox(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	entry, ok := h.store.AddInboxTask(req.Text)
	if !ok {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// DeleteInbox handles DELETE /inbox
func (h *TaskHandler) DeleteInbox(w http.ResponseWriter, r *http.Request) {
	h.deleteAt(w, r, simplecal.Inbox())
}

// ListToday handles GET /today
func (h *TaskHandler) ListToday(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.TodayEntries())
}

// DeleteToday handles DELETE /today
func (h *TaskHandler) DeleteToday(w http.ResponseWriter, r *http.Request) {
	h.deleteAt(w, r, simplecal.Today())
}

func (h *TaskHandler) deleteAt(w http.ResponseWriter, r *http.Request, c simplecal.Collection) {
	var req indicesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := h.store.DeleteAt(c, req.Indices); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.store.Entries(c))
}

// MoveToToday handles POST /inbox/{id}/today
func (h *TaskHandler) MoveToToday(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, c, ok := h.store.Find(id); !ok || c != simplecal.Inbox() {
		writeError(w, http.StatusNotFound, "task not found in inbox")
		return
	}
	h.store.MoveToToday(id)
	writeJSON(w, http.StatusOK, h.store.TodayEntries())
}

// Decompose handles POST /inbox/{id}/decompose
func (h *TaskHandler) Decompose(w http.ResponseWriter, r *http.Request) {
	if h.decomposer == nil {
		writeStoreError(w, simplecal.ErrCredentialsMissing())
		return
	}
	if err := h.store.Decompose(r.Context(), h.decomposer, chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, decomposeResponse{
		Inbox: h.store.InboxEntries(),
		Today: h.store.TodayEntries(),
	})
}

// UpdateStartTime handles PUT /today/{id}/start-time. A null startTime clears it.
func (h *TaskHandler) UpdateStartTime(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req startTimeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if _, c, ok := h.store.Find(id); !ok || c != simplecal.Today() {
		writeError(w, http.StatusNotFound, "task not found in today's focus")
		return
	}
	h.store.UpdateStartTime(id, req.StartTime)
	writeJSON(w, http.StatusOK, h.store.TodayEntries())
}

// Complete handles POST /tasks/{id}/complete
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, _, ok := h.store.Find(id); !ok {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	h.store.CompleteTask(id)
	entry, _, _ := h.store.Find(id)
	writeJSON(w, http.StatusOK, entry)
}

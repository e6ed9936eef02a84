package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fmizzell/simplecal"
)

type CalendarHandler struct {
	store *simplecal.Store
}

func NewCalendarHandler(store *simplecal.Store) *CalendarHandler {
	return &CalendarHandler{store: store}
}

type monthResponse struct {
	simplecal.MonthGrid
	Title string `json:"title"`
}

// Month handles GET /calendar/{month}?week_start=monday
func (h *CalendarHandler) Month(w http.ResponseWriter, r *http.Request) {
	month, err := simplecal.ParseMonth(chi.URLParam(r, "month"), h.store.Now().Location())
	if err != nil {
		writeError(w, http.StatusBadRequest, "month must look like 2026-03")
		return
	}
	firstWeekday := time.Sunday
	if strings.EqualFold(r.URL.Query().Get("week_start"), "monday") {
		firstWeekday = time.Monday
	}

	grid := h.store.MonthGrid(month, firstWeekday)
	writeJSON(w, http.StatusOK, monthResponse{MonthGrid: grid, Title: grid.Title()})
}

// RecordFocusSession handles POST /focus-sessions, sent by a UI timer when a
// session runs out
func (h *CalendarHandler) RecordFocusSession(w http.ResponseWriter, r *http.Request) {
	h.store.RecordFocusSession()
	writeJSON(w, http.StatusOK, h.store.Stats())
}

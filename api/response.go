package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fmizzell/simplecal"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeStoreError maps the store's error kinds onto status codes
func writeStoreError(w http.ResponseWriter, err error) {
	var cfgErr *simplecal.ConfigurationError
	var decErr *simplecal.DecompositionError
	switch {
	case errors.Is(err, simplecal.ErrInvalidIndex):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &cfgErr):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &decErr):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// dateParam parses the {date} URL parameter in the store's location
func dateParam(r *http.Request, store *simplecal.Store) (time.Time, error) {
	return simplecal.ParseDateKey(chi.URLParam(r, "date"), store.Now().Location())
}

type indicesRequest struct {
	Indices []int `json:"indices"`
}

type textRequest struct {
	Text     string `json:"text"`
	Category string `json:"category,omitempty"`
}

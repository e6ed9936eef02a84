package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/fmizzell/simplecal"
)

type EventHandler struct {
	store  *simplecal.Store
	logger *slog.Logger
}

func NewEventHandler(store *simplecal.Store, logger *slog.Logger) *EventHandler {
	return &EventHandler{store: store, logger: logger}
}

type changeMessage struct {
	Type      string          `json:"type"`
	Time      time.Time       `json:"time"`
	Event     simplecal.Event `json:"event"`
	SaveError string          `json:"saveError,omitempty"`
}

// Stream handles GET /events as server-sent events, one per applied change
func (h *EventHandler) Stream(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	// Streams outlive the server's write timeout
	rc.SetWriteDeadline(time.Time{})

	changes, stop := h.store.ChannelListener(32)
	defer stop()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	if err := rc.Flush(); err != nil {
		h.logger.Warn("event stream cannot flush", "error", err)
		return
	}

	keepAlive := time.NewTicker(30 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepAlive.C:
			fmt.Fprint(w, ": ping\n\n")
		case c := <-changes:
			msg := changeMessage{Type: c.Event.Type(), Time: c.Event.Timestamp(), Event: c.Event}
			if c.Err != nil {
				msg.SaveError = c.Err.Error()
			}
			data, err := json.Marshal(msg)
			if err != nil {
				h.logger.Error("failed to encode change", "event", msg.Type, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Type, data)
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}

package live

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"keepsake/internal/platform/middleware"
	"keepsake/pkg/requestcontext"
)

// Handler streams collection snapshots over server-sent events.
type Handler struct {
	hub          *Hub
	logger       *slog.Logger
	jwtValidator middleware.JWTValidator
}

func NewHandler(hub *Hub, logger *slog.Logger, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{hub: hub, logger: logger, jwtValidator: jwtValidator}
}

// Register mounts the live routes. No Timeout middleware here: SSE
// connections are long-lived by design.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Recovery(h.logger))
		r.Use(middleware.RequestID)
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Get("/live/{collection}", h.handleStream)
	})
}

func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	collection := chi.URLParam(r, "collection")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	if _, registered, _ := h.hub.Snapshot(ctx, collection); !registered {
		http.Error(w, "unknown collection", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	wake, cancel := h.hub.subscribe(collection)
	defer cancel()

	// Initial snapshot so clients render immediately, then one snapshot per
	// change notification. Heartbeats keep proxies from closing the stream.
	if !h.send(w, flusher, r, collection) {
		return
	}
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-wake:
			if !h.send(w, flusher, r, collection) {
				return
			}
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func (h *Handler) send(w http.ResponseWriter, flusher http.Flusher, r *http.Request, collection string) bool {
	ctx := r.Context()
	snap, _, err := h.hub.Snapshot(ctx, collection)
	if err != nil {
		h.logger.ErrorContext(ctx, "live snapshot failed",
			"request_id", requestcontext.RequestID(ctx),
			"collection", collection,
			"error", err,
		)
		// Keep the stream open; the next change may succeed.
		return true
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return true
	}
	if _, err := fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", payload); err != nil {
		return false
	}
	flusher.Flush()
	return true
}

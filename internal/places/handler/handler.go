package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"keepsake/internal/places/models"
	"keepsake/internal/platform/metrics"
	"keepsake/internal/platform/middleware"
	"keepsake/internal/transport/http/shared"
	dErrors "keepsake/pkg/domain-errors"
)

// Service defines the interface for place resolution.
type Service interface {
	Resolve(ctx context.Context, place string) (*models.Place, error)
	List(ctx context.Context) ([]*models.Place, error)
}

// Handler handles map pin endpoints.
type Handler struct {
	logger       *slog.Logger
	places       Service
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator
}

func New(places Service, logger *slog.Logger, metrics *metrics.Metrics, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		places:       places,
		metrics:      metrics,
		jwtValidator: jwtValidator,
	}
}

// Register registers the place routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Recovery(h.logger))
		r.Use(middleware.RequestID)
		r.Use(middleware.RequestTime)
		r.Use(middleware.Logger(h.logger))
		r.Use(middleware.Timeout(30 * time.Second))
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.Latency(h.metrics, "places"))
		r.Use(middleware.Trace("places"))
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Get("/places", h.handleList)
		r.Post("/places/resolve", h.handleResolve)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	places, err := h.places.List(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	views := make([]models.View, 0, len(places))
	for _, p := range places {
		views = append(views, p.View())
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"places": views})
}

func (h *Handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	place, err := h.places.Resolve(ctx, req.Place)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, place.View())
}

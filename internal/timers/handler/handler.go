package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"keepsake/internal/platform/metrics"
	"keepsake/internal/platform/middleware"
	"keepsake/internal/timers/models"
	"keepsake/internal/transport/http/shared"
	id "keepsake/pkg/domain"
	dErrors "keepsake/pkg/domain-errors"
)

// Service defines the interface for timer operations.
type Service interface {
	Create(ctx context.Context, req *models.CreateRequest) (*models.Timer, error)
	Update(ctx context.Context, timerID id.TimerID, req *models.UpdateRequest) (*models.Timer, error)
	Delete(ctx context.Context, timerID id.TimerID) error
	Statuses(ctx context.Context) ([]models.Status, error)
}

// Handler handles timer endpoints.
type Handler struct {
	logger       *slog.Logger
	timers       Service
	metrics      *metrics.Metrics
	loc          *time.Location
	jwtValidator middleware.JWTValidator
}

func New(timers Service, logger *slog.Logger, metrics *metrics.Metrics, loc *time.Location, jwtValidator middleware.JWTValidator) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		logger:       logger,
		timers:       timers,
		metrics:      metrics,
		loc:          loc,
		jwtValidator: jwtValidator,
	}
}

// Register registers the timer routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Recovery(h.logger))
		r.Use(middleware.RequestID)
		r.Use(middleware.RequestTime)
		r.Use(middleware.Logger(h.logger))
		r.Use(middleware.Timeout(30 * time.Second))
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.Latency(h.metrics, "timers"))
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Get("/timers", h.handleStatuses)
		r.Post("/timers", h.handleCreate)
		r.Put("/timers/{id}", h.handleUpdate)
		r.Delete("/timers/{id}", h.handleDelete)
	})
}

// handleStatuses returns every timer with its current elapsed or countdown
// value, computed at the request time.
func (h *Handler) handleStatuses(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.timers.Statuses(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"timers": statuses})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	timer, err := h.timers.Create(ctx, &req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, timer.View(h.loc))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	timerID, err := id.ParseTimerID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid timer id"))
		return
	}

	var req models.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	timer, err := h.timers.Update(ctx, timerID, &req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, timer.View(h.loc))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	timerID, err := id.ParseTimerID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid timer id"))
		return
	}
	if err := h.timers.Delete(ctx, timerID); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

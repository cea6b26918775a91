package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"keepsake/internal/events/models"
	"keepsake/internal/platform/metrics"
	"keepsake/internal/platform/middleware"
	"keepsake/internal/transport/http/shared"
	dErrors "keepsake/pkg/domain-errors"
)

// Service defines the interface for calendar operations.
type Service interface {
	Upsert(ctx context.Context, date string, req *models.UpsertRequest) (*models.Event, error)
	Get(ctx context.Context, date string) (*models.Event, error)
	List(ctx context.Context) ([]*models.Event, error)
	Month(ctx context.Context, year, month int) (*models.MonthView, error)
	ExportICS(ctx context.Context) (string, error)
}

// Handler handles emoji calendar endpoints.
type Handler struct {
	logger       *slog.Logger
	events       Service
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator
}

func New(events Service, logger *slog.Logger, metrics *metrics.Metrics, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		events:       events,
		metrics:      metrics,
		jwtValidator: jwtValidator,
	}
}

// Register registers the calendar routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Recovery(h.logger))
		r.Use(middleware.RequestID)
		r.Use(middleware.RequestTime)
		r.Use(middleware.Logger(h.logger))
		r.Use(middleware.Timeout(30 * time.Second))
		r.Use(middleware.Latency(h.metrics, "events"))
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Get("/events", h.handleList)
		r.Get("/events/calendar.ics", h.handleExportICS)
		r.Get("/events/month/{year}/{month}", h.handleMonth)
		r.Get("/events/{date}", h.handleGet)
		r.Put("/events/{date}", h.handleUpsert)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.List(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	views := make([]models.View, 0, len(events))
	for _, e := range events {
		views = append(views, e.View())
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"events": views})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	event, err := h.events.Get(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, event.View())
}

// handleUpsert replaces the whole record for a day; saving an empty record
// clears the day.
func (h *Handler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	event, err := h.events.Upsert(ctx, chi.URLParam(r, "date"), &req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, event.View())
}

func (h *Handler) handleMonth(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid year"))
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid month"))
		return
	}

	view, err := h.events.Month(r.Context(), year, month)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) handleExportICS(w http.ResponseWriter, r *http.Request) {
	body, err := h.events.ExportICS(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="keepsake.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"keepsake/internal/photos/models"
	"keepsake/internal/platform/metrics"
	"keepsake/internal/platform/middleware"
	"keepsake/internal/transport/http/shared"
	id "keepsake/pkg/domain"
	dErrors "keepsake/pkg/domain-errors"
)

// Service defines the interface for gallery operations.
type Service interface {
	Create(ctx context.Context, req *models.CreateRequest) (*models.Photo, error)
	Update(ctx context.Context, photoID id.PhotoID, req *models.UpdateRequest) (*models.Photo, error)
	Delete(ctx context.Context, photoID id.PhotoID) error
	List(ctx context.Context) ([]*models.Photo, error)
	ByDate(ctx context.Context) ([]models.DateGroup, error)
	ByPlace(ctx context.Context) ([]models.PlaceGroup, error)
}

// Handler handles photo gallery endpoints.
type Handler struct {
	logger       *slog.Logger
	photos       Service
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator
}

func New(photos Service, logger *slog.Logger, metrics *metrics.Metrics, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		photos:       photos,
		metrics:      metrics,
		jwtValidator: jwtValidator,
	}
}

// Register registers the gallery routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Recovery(h.logger))
		r.Use(middleware.RequestID)
		r.Use(middleware.RequestTime)
		r.Use(middleware.Logger(h.logger))
		r.Use(middleware.Timeout(30 * time.Second))
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.Latency(h.metrics, "photos"))
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Get("/photos", h.handleList)
		r.Get("/photos/by-date", h.handleByDate)
		r.Get("/photos/by-place", h.handleByPlace)
		r.Post("/photos", h.handleCreate)
		r.Patch("/photos/{id}", h.handleUpdate)
		r.Delete("/photos/{id}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	photos, err := h.photos.List(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	views := make([]models.View, 0, len(photos))
	for _, p := range photos {
		views = append(views, p.View())
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"photos": views})
}

func (h *Handler) handleByDate(w http.ResponseWriter, r *http.Request) {
	groups, err := h.photos.ByDate(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"groups": groups})
}

func (h *Handler) handleByPlace(w http.ResponseWriter, r *http.Request) {
	groups, err := h.photos.ByPlace(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"groups": groups})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	photo, err := h.photos.Create(ctx, &req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, photo.View())
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	photoID, err := id.ParsePhotoID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid photo id"))
		return
	}

	var req models.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	photo, err := h.photos.Update(ctx, photoID, &req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, photo.View())
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	photoID, err := id.ParsePhotoID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid photo id"))
		return
	}
	if err := h.photos.Delete(ctx, photoID); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

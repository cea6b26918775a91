package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"keepsake/internal/notes/models"
	"keepsake/internal/platform/metrics"
	"keepsake/internal/platform/middleware"
	"keepsake/internal/transport/http/shared"
	id "keepsake/pkg/domain"
	dErrors "keepsake/pkg/domain-errors"
)

// Service defines the interface for notes feed operations.
type Service interface {
	Create(ctx context.Context, req *models.CreateRequest) (*models.Note, error)
	List(ctx context.Context) ([]*models.Note, error)
	SetPinned(ctx context.Context, noteID id.NoteID, pinned bool) (*models.Note, error)
	Delete(ctx context.Context, noteID id.NoteID) error
}

// Handler handles notes feed endpoints.
type Handler struct {
	logger       *slog.Logger
	notes        Service
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator
}

func New(notes Service, logger *slog.Logger, metrics *metrics.Metrics, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		notes:        notes,
		metrics:      metrics,
		jwtValidator: jwtValidator,
	}
}

// Register registers the notes routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Recovery(h.logger))
		r.Use(middleware.RequestID)
		r.Use(middleware.RequestTime)
		r.Use(middleware.Logger(h.logger))
		r.Use(middleware.Timeout(30 * time.Second))
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.Latency(h.metrics, "notes"))
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Get("/notes", h.handleList)
		r.Post("/notes", h.handleCreate)
		r.Put("/notes/{id}/pin", h.handlePin)
		r.Delete("/notes/{id}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	notes, err := h.notes.List(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	views := make([]models.View, 0, len(notes))
	for _, n := range notes {
		views = append(views, n.View())
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"notes": views})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	note, err := h.notes.Create(ctx, &req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, note.View())
}

func (h *Handler) handlePin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	noteID, err := id.ParseNoteID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid note id"))
		return
	}

	var req models.PinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	note, err := h.notes.SetPinned(ctx, noteID, req.Pinned)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, note.View())
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	noteID, err := id.ParseNoteID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid note id"))
		return
	}
	if err := h.notes.Delete(ctx, noteID); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

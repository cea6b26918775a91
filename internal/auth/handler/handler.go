package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"

	"keepsake/internal/auth/models"
	"keepsake/internal/platform/metrics"
	"keepsake/internal/platform/middleware"
	"keepsake/internal/transport/http/shared"
	dErrors "keepsake/pkg/domain-errors"
	"keepsake/pkg/requestcontext"
)

// Service defines the interface for authentication operations.
type Service interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.TokenResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*models.User, []*models.Session, error)
	UpdateProfile(ctx context.Context, req *models.UpdateProfileRequest) (*models.User, error)
}

// Handler handles account and session endpoints.
type Handler struct {
	logger       *slog.Logger
	auth         Service
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator
}

func New(auth Service, logger *slog.Logger, metrics *metrics.Metrics, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		auth:         auth,
		metrics:      metrics,
		jwtValidator: jwtValidator,
	}
}

// Register registers the auth routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Recovery(h.logger))
		r.Use(middleware.RequestID)
		r.Use(middleware.RequestTime)
		r.Use(middleware.ClientMetadata)
		r.Use(middleware.Logger(h.logger))
		r.Use(middleware.Timeout(30 * time.Second))
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.Latency(h.metrics, "auth"))
		r.Post("/auth/register", h.handleRegister)
		r.Post("/auth/login", h.handleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Recovery(h.logger))
		r.Use(middleware.RequestID)
		r.Use(middleware.RequestTime)
		r.Use(middleware.ClientMetadata)
		r.Use(middleware.Logger(h.logger))
		r.Use(middleware.Timeout(30 * time.Second))
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.Latency(h.metrics, "auth"))
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Post("/auth/logout", h.handleLogout)
		r.Get("/me", h.handleProfile)
		r.Put("/me", h.handleUpdateProfile)
	})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if !govalidator.IsEmail(req.Email) || !govalidator.StringLength(req.Email, "3", "255") {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "a valid email is required"))
		return
	}
	if !govalidator.StringLength(req.Password, "8", "128") {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "password must be between 8 and 128 characters"))
		return
	}

	resp, err := h.auth.Register(ctx, &req)
	if err != nil {
		h.logger.WarnContext(ctx, "registration failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, resp)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.Email == "" || req.Password == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "email and password are required"))
		return
	}

	resp, err := h.auth.Login(ctx, &req)
	if err != nil {
		h.logger.WarnContext(ctx, "login failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.auth.Logout(ctx); err != nil {
		h.logger.ErrorContext(ctx, "logout failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, sessions, err := h.auth.Profile(ctx)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	views := make([]models.SessionView, 0, len(sessions))
	for _, s := range sessions {
		views = append(views, s.View())
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"user":     user.View(),
		"sessions": views,
	})
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if !govalidator.StringLength(req.DisplayName, "1", "100") {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "display name must be between 1 and 100 characters"))
		return
	}
	if req.AvatarURL != "" && !govalidator.IsURL(req.AvatarURL) {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "avatar URL is not a valid URL"))
		return
	}

	user, err := h.auth.UpdateProfile(ctx, &req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, user.View())
}

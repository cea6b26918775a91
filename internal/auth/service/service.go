package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mssola/useragent"
	"golang.org/x/crypto/bcrypt"

	"keepsake/internal/audit"
	authmetrics "keepsake/internal/auth/metrics"
	"keepsake/internal/auth/models"
	id "keepsake/pkg/domain"
	dErrors "keepsake/pkg/domain-errors"
	"keepsake/pkg/platform/sentinel"
	"keepsake/pkg/requestcontext"
)

// accessTokenTTL bounds how long an issued token is accepted.
const accessTokenTTL = 30 * 24 * time.Hour

// UserStore persists accounts.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
}

// SessionStore persists login sessions.
type SessionStore interface {
	Save(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, sessionID id.SessionID) error
	ListByUser(ctx context.Context, userID id.UserID) ([]*models.Session, error)
}

// TokenIssuer mints signed access tokens.
type TokenIssuer interface {
	GenerateAccessToken(userID id.UserID, sessionID id.SessionID, expiresIn time.Duration) (string, error)
}

// Service implements email/password authentication and profile management.
type Service struct {
	users    UserStore
	sessions SessionStore
	tokens   TokenIssuer
	metrics  *authmetrics.Metrics
	auditor  *audit.Emitter
}

func NewService(users UserStore, sessions SessionStore, tokens TokenIssuer, metrics *authmetrics.Metrics, auditor *audit.Emitter) *Service {
	return &Service{users: users, sessions: sessions, tokens: tokens, metrics: metrics, auditor: auditor}
}

// Register creates an account and logs it straight in.
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.TokenResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	user := &models.User{
		ID:           id.UserID(uuid.New()),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(req.DisplayName),
		CreatedAt:    requestcontext.Now(ctx),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "an account with this email already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create account")
	}

	if s.metrics != nil {
		s.metrics.IncrementUsersCreated()
	}
	s.emit(ctx, "user.registered", user.ID.String())

	return s.issueToken(ctx, user)
}

// Login verifies credentials and opens a session.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(strings.ToLower(req.Email)))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.countFailedLogin()
			// Same message as a bad password so emails can't be probed.
			return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up account")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		s.countFailedLogin()
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
	}

	if s.metrics != nil {
		s.metrics.IncrementLogins()
	}
	s.emit(ctx, "user.login", user.ID.String())

	return s.issueToken(ctx, user)
}

// Logout removes the current session. Unknown sessions are fine: logout is
// idempotent from the client's point of view.
func (s *Service) Logout(ctx context.Context) error {
	sessionID := requestcontext.SessionID(ctx)
	if err := s.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to end session")
	}
	s.emit(ctx, "user.logout", sessionID.String())
	return nil
}

// Profile returns the authenticated user with their sessions.
func (s *Service) Profile(ctx context.Context) (*models.User, []*models.Session, error) {
	userID := requestcontext.UserID(ctx)
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil, dErrors.New(dErrors.CodeNotFound, "account not found")
		}
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load profile")
	}
	sessions, err := s.sessions.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load sessions")
	}
	return user, sessions, nil
}

// UpdateProfile replaces display name and avatar.
func (s *Service) UpdateProfile(ctx context.Context, req *models.UpdateProfileRequest) (*models.User, error) {
	userID := requestcontext.UserID(ctx)
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "account not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load profile")
	}

	user.DisplayName = strings.TrimSpace(req.DisplayName)
	user.AvatarURL = strings.TrimSpace(req.AvatarURL)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update profile")
	}
	s.emit(ctx, "user.profile_updated", user.ID.String())
	return user, nil
}

func (s *Service) issueToken(ctx context.Context, user *models.User) (*models.TokenResponse, error) {
	session := &models.Session{
		ID:        id.SessionID(uuid.New()),
		UserID:    user.ID,
		Device:    describeDevice(requestcontext.UserAgent(ctx)),
		ClientIP:  requestcontext.ClientIP(ctx),
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create session")
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, session.ID, accessTokenTTL)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}
	return &models.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(accessTokenTTL.Seconds()),
		User:        user.View(),
	}, nil
}

// describeDevice turns a raw User-Agent into something a person recognizes
// on their profile page, e.g. "Safari 17.4 on iPhone OS".
func describeDevice(rawUA string) string {
	if rawUA == "" {
		return "unknown device"
	}
	ua := useragent.New(rawUA)
	name, version := ua.Browser()
	parts := make([]string, 0, 2)
	if name != "" {
		parts = append(parts, strings.TrimSpace(name+" "+version))
	}
	if os := ua.OS(); os != "" {
		parts = append(parts, "on "+os)
	}
	if len(parts) == 0 {
		return "unknown device"
	}
	return strings.Join(parts, " ")
}

func (s *Service) countFailedLogin() {
	if s.metrics != nil {
		s.metrics.IncrementLoginsFailed()
	}
}

func (s *Service) emit(ctx context.Context, action, subject string) {
	if s.auditor != nil {
		s.auditor.Emit(ctx, action, "users", subject)
	}
}

package models

import (
	"time"

	id "keepsake/pkg/domain"
)

// User is an authenticated account. Exactly two are expected in practice,
// but nothing below enforces that.
type User struct {
	ID           id.UserID
	Email        string
	PasswordHash string
	DisplayName  string
	AvatarURL    string
	CreatedAt    time.Time
}

// View returns the client-safe projection of a user.
func (u *User) View() UserView {
	return UserView{
		ID:          u.ID.String(),
		Email:       u.Email,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
	}
}

// UserView is the wire shape of a user; the password hash never leaves the
// service layer.
type UserView struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// Session records one login, with a human-readable device description
// parsed from the User-Agent for the profile page's "signed in from" list.
type Session struct {
	ID        id.SessionID
	UserID    id.UserID
	Device    string
	ClientIP  string
	CreatedAt time.Time
}

// SessionView is the wire shape of a session.
type SessionView struct {
	ID        string    `json:"id"`
	Device    string    `json:"device"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Session) View() SessionView {
	return SessionView{ID: s.ID.String(), Device: s.Device, CreatedAt: s.CreatedAt}
}

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
}

// TokenResponse is returned by register and login.
type TokenResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresIn   int      `json:"expires_in"`
	User        UserView `json:"user"`
}

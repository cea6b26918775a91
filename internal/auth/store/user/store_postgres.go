package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"keepsake/internal/auth/models"
	id "keepsake/pkg/domain"
	"keepsake/pkg/platform/sentinel"

	"github.com/google/uuid"
)

// PostgresStore persists users in PostgreSQL. Pure I/O; validation belongs
// in the service layer.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, display_name, avatar_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO NOTHING
	`
	res, err := s.db.ExecContext(ctx, query,
		uuid.UUID(u.ID), strings.ToLower(u.Email), u.PasswordHash, u.DisplayName, u.AvatarURL, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, display_name, avatar_url, created_at
		FROM users WHERE id = $1
	`
	return scanUser(s.db.QueryRowContext(ctx, query, uuid.UUID(userID)))
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, display_name, avatar_url, created_at
		FROM users WHERE email = $1
	`
	return scanUser(s.db.QueryRowContext(ctx, query, strings.ToLower(email)))
}

func (s *PostgresStore) Update(ctx context.Context, u *models.User) error {
	query := `
		UPDATE users SET display_name = $2, avatar_url = $3 WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query, uuid.UUID(u.ID), u.DisplayName, u.AvatarURL)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var userID uuid.UUID
	err := row.Scan(&userID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.AvatarURL, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.ID = id.UserID(userID)
	return &u, nil
}

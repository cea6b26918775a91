package session

import (
	"context"
	"database/sql"
	"fmt"

	"keepsake/internal/auth/models"
	id "keepsake/pkg/domain"
	"keepsake/pkg/platform/sentinel"

	"github.com/google/uuid"
)

// PostgresStore persists sessions in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, device, client_ip, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(session.ID), uuid.UUID(session.UserID), session.Device, session.ClientIP, session.CreatedAt)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, sessionID id.SessionID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, uuid.UUID(sessionID))
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID id.UserID) ([]*models.Session, error) {
	query := `
		SELECT id, user_id, device, client_ip, created_at
		FROM sessions WHERE user_id = $1 ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(userID))
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []*models.Session
	for rows.Next() {
		var session models.Session
		var sessionID, ownerID uuid.UUID
		if err := rows.Scan(&sessionID, &ownerID, &session.Device, &session.ClientIP, &session.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		session.ID = id.SessionID(sessionID)
		session.UserID = id.UserID(ownerID)
		out = append(out, &session)
	}
	return out, rows.Err()
}

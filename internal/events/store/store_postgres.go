package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"keepsake/internal/events/models"
	"keepsake/pkg/platform/sentinel"
)

// PostgresStore persists events in the events table. Emojis travel as JSONB
// so the stdlib driver can round-trip them without array support.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Put(ctx context.Context, e *models.Event) error {
	emojis, err := json.Marshal(e.Emojis)
	if err != nil {
		return fmt.Errorf("encode emojis: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO events (date, emojis, notes, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (date) DO UPDATE SET
			emojis = EXCLUDED.emojis,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at`,
		e.Date, emojis, e.Notes, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("put event: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, date string) (*models.Event, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT date, emojis, notes, updated_at
		FROM events WHERE date = $1`, date)
	return scanEvent(row.Scan)
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, emojis, notes, updated_at
		FROM events ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var out []*models.Event
	for rows.Next() {
		e, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Delete(ctx context.Context, date string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE date = $1`, date)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func scanEvent(scan func(...any) error) (*models.Event, error) {
	var e models.Event
	var emojis []byte
	err := scan(&e.Date, &emojis, &e.Notes, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan event: %w", err)
	}
	if err := json.Unmarshal(emojis, &e.Emojis); err != nil {
		return nil, fmt.Errorf("decode emojis: %w", err)
	}
	return &e, nil
}

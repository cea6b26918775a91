package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"keepsake/internal/timers/models"
	id "keepsake/pkg/domain"
	"keepsake/pkg/platform/sentinel"
)

// PostgresStore persists timers in the timers table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Put(ctx context.Context, t *models.Timer) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO timers (id, kind, label, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			label = EXCLUDED.label,
			date = EXCLUDED.date,
			updated_at = EXCLUDED.updated_at`,
		t.ID.String(), string(t.Kind), t.Label, t.Date, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("put timer: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, timerID id.TimerID) (*models.Timer, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, kind, label, date, created_at, updated_at
		FROM timers WHERE id = $1`, timerID.String())
	return scanTimer(row.Scan)
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Timer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, label, date, created_at, updated_at
		FROM timers ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("list timers: %w", err)
	}
	defer rows.Close()

	var out []*models.Timer
	for rows.Next() {
		t, err := scanTimer(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Delete(ctx context.Context, timerID id.TimerID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM timers WHERE id = $1`, timerID.String())
	if err != nil {
		return fmt.Errorf("delete timer: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func scanTimer(scan func(...any) error) (*models.Timer, error) {
	var t models.Timer
	var rawID, kind string
	err := scan(&rawID, &kind, &t.Label, &t.Date, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan timer: %w", err)
	}
	timerID, err := id.ParseTimerID(rawID)
	if err != nil {
		return nil, fmt.Errorf("scan timer id: %w", err)
	}
	t.ID = timerID
	t.Kind = models.Kind(kind)
	return &t, nil
}

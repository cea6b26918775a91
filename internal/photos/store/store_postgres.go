package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"keepsake/internal/photos/models"
	id "keepsake/pkg/domain"
	"keepsake/pkg/platform/sentinel"
)

// PostgresStore persists photo records in the photos table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Put(ctx context.Context, p *models.Photo) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO photos (id, url, path, caption, date, place, time_of_day, taken_at, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			caption = EXCLUDED.caption,
			place = EXCLUDED.place`,
		p.ID.String(), p.URL, p.Path, p.Caption, p.Date, p.Place, p.Time, p.TakenAt, p.Uploaded)
	if err != nil {
		return fmt.Errorf("put photo: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, photoID id.PhotoID) (*models.Photo, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, url, path, caption, date, place, time_of_day, taken_at, uploaded_at
		FROM photos WHERE id = $1`, photoID.String())
	return scanPhoto(row.Scan)
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Photo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, path, caption, date, place, time_of_day, taken_at, uploaded_at
		FROM photos ORDER BY taken_at`)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	defer rows.Close()

	var out []*models.Photo
	for rows.Next() {
		p, err := scanPhoto(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Delete(ctx context.Context, photoID id.PhotoID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM photos WHERE id = $1`, photoID.String())
	if err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func scanPhoto(scan func(...any) error) (*models.Photo, error) {
	var p models.Photo
	var rawID string
	err := scan(&rawID, &p.URL, &p.Path, &p.Caption, &p.Date, &p.Place, &p.Time, &p.TakenAt, &p.Uploaded)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan photo: %w", err)
	}
	photoID, err := id.ParsePhotoID(rawID)
	if err != nil {
		return nil, fmt.Errorf("scan photo id: %w", err)
	}
	p.ID = photoID
	return &p, nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"keepsake/internal/places/models"
	"keepsake/pkg/platform/sentinel"
)

// PostgresStore persists resolved places in the places table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Put(ctx context.Context, p *models.Place) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO places (slug, place, lat, lng, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (slug) DO UPDATE SET
			place = EXCLUDED.place,
			lat = EXCLUDED.lat,
			lng = EXCLUDED.lng`,
		p.Slug, p.Place, p.Lat, p.Lng, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("put place: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, slug string) (*models.Place, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT slug, place, lat, lng, created_at
		FROM places WHERE slug = $1`, slug)
	return scanPlace(row.Scan)
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Place, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT slug, place, lat, lng, created_at
		FROM places ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("list places: %w", err)
	}
	defer rows.Close()

	var out []*models.Place
	for rows.Next() {
		p, err := scanPlace(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPlace(scan func(...any) error) (*models.Place, error) {
	var p models.Place
	err := scan(&p.Slug, &p.Place, &p.Lat, &p.Lng, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan place: %w", err)
	}
	return &p, nil
}

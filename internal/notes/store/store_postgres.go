package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"keepsake/internal/notes/models"
	id "keepsake/pkg/domain"
	"keepsake/pkg/platform/sentinel"
)

// PostgresStore persists notes in the notes table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Put(ctx context.Context, n *models.Note) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notes (id, content, author, author_photo, pinned, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			content = EXCLUDED.content,
			pinned = EXCLUDED.pinned`,
		n.ID.String(), n.Content, n.Author, n.AuthorPhoto, n.Pinned, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("put note: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, noteID id.NoteID) (*models.Note, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, content, author, author_photo, pinned, created_at
		FROM notes WHERE id = $1`, noteID.String())
	return scanNote(row.Scan)
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Note, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, content, author, author_photo, pinned, created_at
		FROM notes ORDER BY pinned DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var out []*models.Note
	for rows.Next() {
		n, err := scanNote(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Delete(ctx context.Context, noteID id.NoteID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, noteID.String())
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func scanNote(scan func(...any) error) (*models.Note, error) {
	var n models.Note
	var rawID string
	err := scan(&rawID, &n.Content, &n.Author, &n.AuthorPhoto, &n.Pinned, &n.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan note: %w", err)
	}
	noteID, err := id.ParseNoteID(rawID)
	if err != nil {
		return nil, fmt.Errorf("scan note id: %w", err)
	}
	n.ID = noteID
	return &n, nil
}

//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"keepsake/internal/notes/models"
	"keepsake/internal/notes/store"
	id "keepsake/pkg/domain"
	"keepsake/pkg/platform/sentinel"
	"keepsake/pkg/testutil/containers"
)

type PostgresNoteSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresNoteSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresNoteSuite))
}

func (s *PostgresNoteSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresNoteSuite) SetupTest() {
	s.Require().NoError(s.postgres.Truncate(context.Background(), "notes"))
}

func (s *PostgresNoteSuite) newNote(content string) *models.Note {
	return &models.Note{
		ID:        id.NoteID(uuid.New()),
		Content:   content,
		Author:    "alex",
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func (s *PostgresNoteSuite) TestPutGetRoundTrip() {
	ctx := context.Background()
	note := s.newNote("remember the ferry tickets")
	note.AuthorPhoto = "https://cdn.example.com/alex.jpg"

	s.Require().NoError(s.store.Put(ctx, note))

	got, err := s.store.Get(ctx, note.ID)
	s.Require().NoError(err)
	s.Equal(note.Content, got.Content)
	s.Equal(note.Author, got.Author)
	s.Equal(note.AuthorPhoto, got.AuthorPhoto)
	s.False(got.Pinned)
	s.WithinDuration(note.CreatedAt, got.CreatedAt, time.Millisecond)
}

func (s *PostgresNoteSuite) TestPutUpdatesContentAndPinOnly() {
	ctx := context.Background()
	note := s.newNote("original")
	s.Require().NoError(s.store.Put(ctx, note))

	note.Content = "edited"
	note.Pinned = true
	note.Author = "someone-else"
	s.Require().NoError(s.store.Put(ctx, note))

	got, err := s.store.Get(ctx, note.ID)
	s.Require().NoError(err)
	s.Equal("edited", got.Content)
	s.True(got.Pinned)
	s.Equal("alex", got.Author, "author is immutable after creation")
}

func (s *PostgresNoteSuite) TestListOrdersPinnedFirstThenNewest() {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Microsecond)

	oldest := s.newNote("oldest")
	oldest.CreatedAt = base.Add(-2 * time.Hour)
	newest := s.newNote("newest")
	newest.CreatedAt = base
	pinned := s.newNote("pinned")
	pinned.Pinned = true
	pinned.CreatedAt = base.Add(-time.Hour)

	for _, n := range []*models.Note{oldest, newest, pinned} {
		s.Require().NoError(s.store.Put(ctx, n))
	}

	notes, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(notes, 3)
	s.Equal("pinned", notes[0].Content)
	s.Equal("newest", notes[1].Content)
	s.Equal("oldest", notes[2].Content)
}

func (s *PostgresNoteSuite) TestDelete() {
	ctx := context.Background()
	note := s.newNote("short-lived")
	s.Require().NoError(s.store.Put(ctx, note))

	s.Require().NoError(s.store.Delete(ctx, note.ID))

	_, err := s.store.Get(ctx, note.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.ErrorIs(s.store.Delete(ctx, note.ID), sentinel.ErrNotFound)
}

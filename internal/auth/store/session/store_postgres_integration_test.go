//go:build integration

package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"keepsake/internal/auth/models"
	sessionstore "keepsake/internal/auth/store/session"
	userstore "keepsake/internal/auth/store/user"
	id "keepsake/pkg/domain"
	"keepsake/pkg/platform/sentinel"
	"keepsake/pkg/testutil/containers"
)

type PostgresSessionSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *sessionstore.PostgresStore
	users    *userstore.PostgresStore
	userID   id.UserID
}

func TestPostgresSessionSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresSessionSuite))
}

func (s *PostgresSessionSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = sessionstore.NewPostgres(s.postgres.DB)
	s.users = userstore.NewPostgres(s.postgres.DB)
}

// sessions reference users, so each test gets a fresh owner row.
func (s *PostgresSessionSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.Truncate(ctx, "users"))

	s.userID = id.UserID(uuid.New())
	s.Require().NoError(s.users.Create(ctx, &models.User{
		ID:           s.userID,
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		CreatedAt:    time.Now().UTC(),
	}))
}

func (s *PostgresSessionSuite) newSession(createdAt time.Time) *models.Session {
	return &models.Session{
		ID:        id.SessionID(uuid.New()),
		UserID:    s.userID,
		Device:    "Safari 17.4 on iPhone OS",
		ClientIP:  "203.0.113.7",
		CreatedAt: createdAt,
	}
}

func (s *PostgresSessionSuite) TestSaveAndListByUser() {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Microsecond)
	first := s.newSession(base.Add(-time.Hour))
	second := s.newSession(base)

	s.Require().NoError(s.store.Save(ctx, second))
	s.Require().NoError(s.store.Save(ctx, first))

	sessions, err := s.store.ListByUser(ctx, s.userID)
	s.Require().NoError(err)
	s.Require().Len(sessions, 2)
	s.Equal(first.ID, sessions[0].ID, "sessions come back oldest first")
	s.Equal("Safari 17.4 on iPhone OS", sessions[0].Device)
}

func (s *PostgresSessionSuite) TestDelete() {
	ctx := context.Background()
	session := s.newSession(time.Now().UTC())
	s.Require().NoError(s.store.Save(ctx, session))

	s.Require().NoError(s.store.Delete(ctx, session.ID))
	s.ErrorIs(s.store.Delete(ctx, session.ID), sentinel.ErrNotFound)
}

func (s *PostgresSessionSuite) TestDeletingUserCascades() {
	ctx := context.Background()
	session := s.newSession(time.Now().UTC())
	s.Require().NoError(s.store.Save(ctx, session))

	_, err := s.postgres.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, uuid.UUID(s.userID))
	s.Require().NoError(err)

	sessions, err := s.store.ListByUser(ctx, s.userID)
	s.Require().NoError(err)
	s.Empty(sessions)
}

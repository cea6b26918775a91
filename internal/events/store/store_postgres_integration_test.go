//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"keepsake/internal/events/models"
	"keepsake/internal/events/store"
	"keepsake/pkg/platform/sentinel"
	"keepsake/pkg/testutil/containers"
)

type PostgresEventSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresEventSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresEventSuite))
}

func (s *PostgresEventSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresEventSuite) SetupTest() {
	s.Require().NoError(s.postgres.Truncate(context.Background(), "events"))
}

func (s *PostgresEventSuite) TestEmojisRoundTrip() {
	ctx := context.Background()
	event := &models.Event{
		Date:      "2025-04-14",
		Emojis:    []string{"🎂", "🎉"},
		Notes:     "birthday dinner",
		UpdatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	s.Require().NoError(s.store.Put(ctx, event))

	got, err := s.store.Get(ctx, "2025-04-14")
	s.Require().NoError(err)
	s.Equal([]string{"🎂", "🎉"}, got.Emojis)
	s.Equal("birthday dinner", got.Notes)
}

func (s *PostgresEventSuite) TestUpsertReplacesWholesale() {
	ctx := context.Background()
	first := &models.Event{Date: "2025-04-14", Emojis: []string{"🎂"}, UpdatedAt: time.Now().UTC()}
	s.Require().NoError(s.store.Put(ctx, first))

	second := &models.Event{Date: "2025-04-14", Emojis: []string{"✈️"}, Notes: "rebooked", UpdatedAt: time.Now().UTC()}
	s.Require().NoError(s.store.Put(ctx, second))

	got, err := s.store.Get(ctx, "2025-04-14")
	s.Require().NoError(err)
	s.Equal([]string{"✈️"}, got.Emojis)
	s.Equal("rebooked", got.Notes)
}

func (s *PostgresEventSuite) TestListOrdersByDate() {
	ctx := context.Background()
	for _, date := range []string{"2025-05-02", "2025-04-14", "2025-04-30"} {
		s.Require().NoError(s.store.Put(ctx, &models.Event{Date: date, Emojis: []string{"🌊"}, UpdatedAt: time.Now().UTC()}))
	}

	events, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(events, 3)
	s.Equal("2025-04-14", events[0].Date)
	s.Equal("2025-04-30", events[1].Date)
	s.Equal("2025-05-02", events[2].Date)
}

func (s *PostgresEventSuite) TestDelete() {
	ctx := context.Background()
	s.Require().NoError(s.store.Put(ctx, &models.Event{Date: "2025-04-14", Emojis: []string{"🎂"}, UpdatedAt: time.Now().UTC()}))

	s.Require().NoError(s.store.Delete(ctx, "2025-04-14"))
	_, err := s.store.Get(ctx, "2025-04-14")
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.ErrorIs(s.store.Delete(ctx, "2025-04-14"), sentinel.ErrNotFound)
}

//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"keepsake/internal/timers/models"
	"keepsake/internal/timers/store"
	id "keepsake/pkg/domain"
	"keepsake/pkg/platform/sentinel"
	"keepsake/pkg/testutil/containers"
)

type PostgresTimerSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresTimerSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresTimerSuite))
}

func (s *PostgresTimerSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresTimerSuite) SetupTest() {
	s.Require().NoError(s.postgres.Truncate(context.Background(), "timers"))
}

func newTimer(kind models.Kind, label string, date time.Time) *models.Timer {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &models.Timer{
		ID:        id.TimerID(uuid.New()),
		Kind:      kind,
		Label:     label,
		Date:      date,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *PostgresTimerSuite) TestPutGetRoundTrip() {
	ctx := context.Background()
	timer := newTimer(models.KindElapsed, "Together", time.Date(2023, time.May, 14, 0, 0, 0, 0, time.UTC))

	s.Require().NoError(s.store.Put(ctx, timer))

	got, err := s.store.Get(ctx, timer.ID)
	s.Require().NoError(err)
	s.Equal(timer.Kind, got.Kind)
	s.Equal(timer.Label, got.Label)
	s.True(timer.Date.Equal(got.Date), "date column round-trips at day precision")
}

func (s *PostgresTimerSuite) TestUpsertKeepsKind() {
	ctx := context.Background()
	timer := newTimer(models.KindCountdown, "Next trip", time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))
	s.Require().NoError(s.store.Put(ctx, timer))

	timer.Label = "Tokyo trip"
	timer.Kind = models.KindElapsed
	s.Require().NoError(s.store.Put(ctx, timer))

	got, err := s.store.Get(ctx, timer.ID)
	s.Require().NoError(err)
	s.Equal("Tokyo trip", got.Label)
	s.Equal(models.KindCountdown, got.Kind, "kind is immutable after creation")
}

func (s *PostgresTimerSuite) TestListOrdersByDate() {
	ctx := context.Background()
	later := newTimer(models.KindCountdown, "later", time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC))
	sooner := newTimer(models.KindCountdown, "sooner", time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC))
	s.Require().NoError(s.store.Put(ctx, later))
	s.Require().NoError(s.store.Put(ctx, sooner))

	timers, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(timers, 2)
	s.Equal("sooner", timers[0].Label)
	s.Equal("later", timers[1].Label)
}

func (s *PostgresTimerSuite) TestDelete() {
	ctx := context.Background()
	timer := newTimer(models.KindElapsed, "gone", time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC))
	s.Require().NoError(s.store.Put(ctx, timer))

	s.Require().NoError(s.store.Delete(ctx, timer.ID))
	s.ErrorIs(s.store.Delete(ctx, timer.ID), sentinel.ErrNotFound)
}

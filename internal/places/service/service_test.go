package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keepsake/internal/places/geocoder"
	"keepsake/internal/places/models"
	"keepsake/internal/places/store"
	dErrors "keepsake/pkg/domain-errors"
)

type stubGeocoder struct {
	calls   int
	results map[string]*geocoder.Result
	err     error
}

func (g *stubGeocoder) Lookup(_ context.Context, place string) (*geocoder.Result, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	if r, ok := g.results[place]; ok {
		return r, nil
	}
	return nil, dErrors.New(dErrors.CodeNotFound, "place not found")
}

type recordingNotifier struct{ collections []string }

func (n *recordingNotifier) Notify(_ context.Context, collection string) {
	n.collections = append(n.collections, collection)
}

func newTestService(geo *stubGeocoder) (*Service, *store.InMemoryStore) {
	st := store.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, st, geo, &recordingNotifier{}, nil, nil), st
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("answers from the persisted store without calling the geocoder", func(t *testing.T) {
		geo := &stubGeocoder{}
		svc, st := newTestService(geo)
		require.NoError(t, st.Put(ctx, &models.Place{Slug: "rainy-village", Place: "Rainy Village", Lat: 1, Lng: 2}))

		place, err := svc.Resolve(ctx, "Rainy Village")
		require.NoError(t, err)
		assert.Equal(t, 1.0, place.Lat)
		assert.Zero(t, geo.calls)
	})

	t.Run("answers well-known places without calling the geocoder", func(t *testing.T) {
		geo := &stubGeocoder{}
		svc, _ := newTestService(geo)

		place, err := svc.Resolve(ctx, "Oslo, Norway")
		require.NoError(t, err)
		assert.InDelta(t, 59.91, place.Lat, 0.1)
		assert.Zero(t, geo.calls)
	})

	t.Run("falls through to the geocoder and persists the hit", func(t *testing.T) {
		geo := &stubGeocoder{results: map[string]*geocoder.Result{
			"Smalltown, Nowhere": {Lat: 12.5, Lng: -7.25, DisplayName: "Smalltown"},
		}}
		svc, st := newTestService(geo)

		place, err := svc.Resolve(ctx, "Smalltown, Nowhere")
		require.NoError(t, err)
		assert.Equal(t, "smalltown-nowhere", place.Slug)
		assert.Equal(t, 12.5, place.Lat)
		assert.Equal(t, 1, geo.calls)

		persisted, err := st.Get(ctx, "smalltown-nowhere")
		require.NoError(t, err)
		assert.Equal(t, -7.25, persisted.Lng)
	})

	t.Run("second lookup is served from cache", func(t *testing.T) {
		geo := &stubGeocoder{results: map[string]*geocoder.Result{
			"Smalltown, Nowhere": {Lat: 12.5, Lng: -7.25},
		}}
		svc, _ := newTestService(geo)

		_, err := svc.Resolve(ctx, "Smalltown, Nowhere")
		require.NoError(t, err)
		_, err = svc.Resolve(ctx, "Smalltown, Nowhere")
		require.NoError(t, err)
		assert.Equal(t, 1, geo.calls)
	})

	t.Run("negative results are never cached", func(t *testing.T) {
		geo := &stubGeocoder{}
		svc, st := newTestService(geo)

		_, err := svc.Resolve(ctx, "Atlantis")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))

		_, err = st.Get(ctx, "atlantis")
		assert.Error(t, err)

		// The miss goes back to the geocoder next time.
		_, err = svc.Resolve(ctx, "Atlantis")
		require.Error(t, err)
		assert.Equal(t, 2, geo.calls)
	})

	t.Run("geocoder outage surfaces as unavailable", func(t *testing.T) {
		geo := &stubGeocoder{err: dErrors.New(dErrors.CodeUnavailable, "geocoder is unreachable")}
		svc, _ := newTestService(geo)

		_, err := svc.Resolve(ctx, "Somewhere")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
	})

	t.Run("rejects an empty place", func(t *testing.T) {
		svc, _ := newTestService(&stubGeocoder{})
		_, err := svc.Resolve(ctx, "  --  ")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("store read failures do not reach the geocoder", func(t *testing.T) {
		geo := &stubGeocoder{}
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		svc := NewService(logger, failingStore{}, geo, nil, nil, nil)

		_, err := svc.Resolve(ctx, "Somewhere")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
		assert.Zero(t, geo.calls)
	})
}

type failingStore struct{}

func (failingStore) Put(context.Context, *models.Place) error { return errors.New("disk on fire") }
func (failingStore) Get(context.Context, string) (*models.Place, error) {
	return nil, errors.New("disk on fire")
}
func (failingStore) List(context.Context) ([]*models.Place, error) {
	return nil, errors.New("disk on fire")
}

func TestList(t *testing.T) {
	svc, st := newTestService(&stubGeocoder{})
	ctx := context.Background()
	require.NoError(t, st.Put(ctx, &models.Place{Slug: "oslo", Place: "Oslo"}))
	require.NoError(t, st.Put(ctx, &models.Place{Slug: "berlin", Place: "Berlin"}))

	places, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, places, 2)
	assert.Equal(t, "berlin", places[0].Slug)
	assert.Equal(t, "oslo", places[1].Slug)
}

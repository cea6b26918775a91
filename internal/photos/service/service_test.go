package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keepsake/internal/photos/models"
	"keepsake/internal/photos/store"
	id "keepsake/pkg/domain"
	dErrors "keepsake/pkg/domain-errors"
	"keepsake/pkg/requestcontext"
)

type recordingNotifier struct{ collections []string }

func (n *recordingNotifier) Notify(_ context.Context, collection string) {
	n.collections = append(n.collections, collection)
}

func newTestService() (*Service, *recordingNotifier) {
	notifier := &recordingNotifier{}
	return NewService(store.New(), time.UTC, notifier, nil, nil), notifier
}

func at(t time.Time) context.Context {
	return requestcontext.WithTime(context.Background(), t)
}

func create(t *testing.T, svc *Service, date, tod, place string) *models.Photo {
	t.Helper()
	photo, err := svc.Create(at(time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)), &models.CreateRequest{
		URL:   "https://cdn.example.com/" + uuid.NewString() + ".jpg",
		Path:  "photos/" + uuid.NewString(),
		Date:  date,
		Time:  tod,
		Place: place,
	})
	require.NoError(t, err)
	return photo
}

func TestCreate(t *testing.T) {
	t.Run("derives takenAt from date and time", func(t *testing.T) {
		svc, notifier := newTestService()
		photo := create(t, svc, "2025-04-04", "18:45", "Oslo, Norway")
		assert.Equal(t, time.Date(2025, time.April, 4, 18, 45, 0, 0, time.UTC), photo.TakenAt)
		assert.Equal(t, []string{Collection}, notifier.collections)
	})

	t.Run("defaults to noon without a time of day", func(t *testing.T) {
		svc, _ := newTestService()
		photo := create(t, svc, "2025-04-04", "", "")
		assert.Equal(t, time.Date(2025, time.April, 4, 12, 0, 0, 0, time.UTC), photo.TakenAt)
	})

	t.Run("rejects a bad url", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Create(context.Background(), &models.CreateRequest{URL: "::", Path: "p", Date: "2025-04-04"})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects a bad date", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Create(context.Background(), &models.CreateRequest{
			URL: "https://cdn.example.com/x.jpg", Path: "p", Date: "April 4th",
		})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func TestList_SortedByTakenAt(t *testing.T) {
	svc, _ := newTestService()
	create(t, svc, "2025-04-05", "", "")
	create(t, svc, "2025-04-04", "20:00", "")
	create(t, svc, "2025-04-04", "08:00", "")

	photos, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, photos, 3)
	assert.Equal(t, "08:00", photos[0].Time)
	assert.Equal(t, "20:00", photos[1].Time)
	assert.Equal(t, "2025-04-05", photos[2].Date)
}

func TestByDate(t *testing.T) {
	svc, _ := newTestService()
	create(t, svc, "2025-04-04", "08:00", "")
	create(t, svc, "2025-04-05", "09:00", "")
	create(t, svc, "2025-04-04", "20:00", "")

	groups, err := svc.ByDate(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "2025-04-04", groups[0].Date)
	assert.Len(t, groups[0].Photos, 2)
	assert.Equal(t, "2025-04-05", groups[1].Date)
}

func TestByPlace(t *testing.T) {
	svc, _ := newTestService()
	create(t, svc, "2025-04-04", "08:00", "Oslo, Norway")
	create(t, svc, "2025-04-05", "09:00", "oslo, norway")
	create(t, svc, "2025-04-06", "10:00", "Osaka")
	create(t, svc, "2025-04-07", "11:00", "")

	groups, err := svc.ByPlace(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 2)

	// Cosmetic case differences collapse; first-seen casing is displayed.
	assert.Equal(t, "Oslo", groups[0].Place)
	assert.Len(t, groups[0].Photos, 2)
	assert.Equal(t, "Osaka", groups[1].Place)

	// Photos without a place are left out of the by-place view.
	total := len(groups[0].Photos) + len(groups[1].Photos)
	assert.Equal(t, 3, total)
}

func TestUpdate(t *testing.T) {
	svc, _ := newTestService()
	photo := create(t, svc, "2025-04-04", "", "Oslo, Norway")

	caption := "our first trip"
	updated, err := svc.Update(context.Background(), photo.ID, &models.UpdateRequest{Caption: &caption})
	require.NoError(t, err)
	assert.Equal(t, "our first trip", updated.Caption)
	assert.Equal(t, "Oslo, Norway", updated.Place)

	_, err = svc.Update(context.Background(), id.PhotoID(uuid.New()), &models.UpdateRequest{Caption: &caption})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestDelete(t *testing.T) {
	svc, notifier := newTestService()
	photo := create(t, svc, "2025-04-04", "", "")

	require.NoError(t, svc.Delete(context.Background(), photo.ID))
	assert.Len(t, notifier.collections, 2)

	err := svc.Delete(context.Background(), photo.ID)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keepsake/internal/notes/models"
	"keepsake/internal/notes/store"
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
	return NewService(store.New(), notifier, nil, nil), notifier
}

func at(t time.Time) context.Context {
	return requestcontext.WithTime(context.Background(), t)
}

func TestCreate(t *testing.T) {
	t.Run("stores a note and notifies subscribers", func(t *testing.T) {
		svc, notifier := newTestService()
		created := time.Date(2025, time.April, 4, 9, 0, 0, 0, time.UTC)

		note, err := svc.Create(at(created), &models.CreateRequest{
			Content: "remember the cherry blossoms",
			Author:  "Pat",
		})
		require.NoError(t, err)
		assert.Equal(t, "remember the cherry blossoms", note.Content)
		assert.Equal(t, created, note.CreatedAt)
		assert.False(t, note.Pinned)
		assert.Equal(t, []string{Collection}, notifier.collections)
	})

	t.Run("rejects empty content", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Create(context.Background(), &models.CreateRequest{Content: "   ", Author: "Pat"})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects oversized content", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Create(context.Background(), &models.CreateRequest{
			Content: strings.Repeat("x", maxContentLength+1),
			Author:  "Pat",
		})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects a missing author", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Create(context.Background(), &models.CreateRequest{Content: "hi"})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func TestList(t *testing.T) {
	svc, _ := newTestService()
	base := time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)

	first, err := svc.Create(at(base), &models.CreateRequest{Content: "oldest", Author: "Pat"})
	require.NoError(t, err)
	_, err = svc.Create(at(base.Add(time.Hour)), &models.CreateRequest{Content: "middle", Author: "Sam"})
	require.NoError(t, err)
	_, err = svc.Create(at(base.Add(2*time.Hour)), &models.CreateRequest{Content: "newest", Author: "Pat"})
	require.NoError(t, err)

	t.Run("newest first by default", func(t *testing.T) {
		notes, err := svc.List(context.Background())
		require.NoError(t, err)
		require.Len(t, notes, 3)
		assert.Equal(t, "newest", notes[0].Content)
		assert.Equal(t, "middle", notes[1].Content)
		assert.Equal(t, "oldest", notes[2].Content)
	})

	t.Run("pinned notes float to the top", func(t *testing.T) {
		_, err := svc.SetPinned(context.Background(), first.ID, true)
		require.NoError(t, err)

		notes, err := svc.List(context.Background())
		require.NoError(t, err)
		require.Len(t, notes, 3)
		assert.Equal(t, "oldest", notes[0].Content)
		assert.True(t, notes[0].Pinned)
		assert.Equal(t, "newest", notes[1].Content)
	})

	t.Run("unpinning restores feed order", func(t *testing.T) {
		_, err := svc.SetPinned(context.Background(), first.ID, false)
		require.NoError(t, err)

		notes, err := svc.List(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "newest", notes[0].Content)
	})
}

func TestSetPinned_UnknownNote(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.SetPinned(context.Background(), id.NoteID(uuid.New()), true)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestDelete(t *testing.T) {
	svc, notifier := newTestService()
	note, err := svc.Create(at(time.Now()), &models.CreateRequest{Content: "bye", Author: "Pat"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), note.ID))
	assert.Len(t, notifier.collections, 2)

	err = svc.Delete(context.Background(), note.ID)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}
